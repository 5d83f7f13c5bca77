package api

import (
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"
)

func NewRouter(a *API) http.Handler {
	mux := http.NewServeMux()

	// Swagger documentation
	mux.Handle("/swagger/", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
	})

	mux.HandleFunc("/api/cv/parse", a.ParseCVHandler)
	mux.HandleFunc("/api/cv/text", a.ParseTextHandler)
	mux.HandleFunc("/api/parsers", a.ParsersHandler)
	mux.HandleFunc("/api/skills/popular", a.PopularSkillsHandler)

	return mux
}
