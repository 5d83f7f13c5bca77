package api

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"cv-normalizer/internal/cv"
	"cv-normalizer/internal/logger"
	"cv-normalizer/internal/storage"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const maxLoggedError = 500

// ParseResponse is returned for every successfully parsed CV.
type ParseResponse struct {
	JobID            string                 `json:"job_id"`
	Filename         string                 `json:"filename,omitempty"`
	Queued           bool                   `json:"queued"`
	ProcessingTimeMS int64                  `json:"processing_time_ms"`
	Document         *cv.NormalizedDocument `json:"document"`
}

// ParseCVHandler normalizes an uploaded CV file
// @Summary Upload and normalize a CV
// @Description Extract plain text, semantic HTML, metadata and a structural skeleton from a CV file
// @Tags cv
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "CV file (pdf, docx, doc, txt, odt, tex, html, rtf)"
// @Success 200 {object} ParseResponse
// @Failure 400 {object} ErrorResponse
// @Failure 413 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse
// @Failure 502 {object} ErrorResponse
// @Failure 503 {object} ErrorResponse
// @Router /cv/parse [post]
func (a *API) ParseCVHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	startTime := time.Now()
	jobID := uuid.NewString()

	// Multipart framing needs some room on top of the file itself.
	r.Body = http.MaxBytesReader(w, r.Body, a.maxUploadBytes+1<<20)
	if err := r.ParseMultipartForm(a.maxUploadBytes); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge,
				fmt.Sprintf("file too large (max %d MB)", a.maxUploadBytes>>20))
			return
		}
		writeError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "no file uploaded")
		return
	}
	defer file.Close()
	if header.Size > a.maxUploadBytes {
		writeError(w, http.StatusRequestEntityTooLarge,
			fmt.Sprintf("file too large (max %d MB)", a.maxUploadBytes>>20))
		return
	}

	log := logger.WithFields(a.logger, logger.RequestFields(jobID, header.Filename)...)
	log.Info("upload received", zap.Int64("size_bytes", header.Size))

	doc, err := a.parser.ParseFile(r.Context(), header.Filename, file)
	if err != nil {
		// Converter stderr can be long; the full text goes to the client.
		log.Warn("parse failed", zap.String("kind", cv.KindName(err)), zap.String("error", logger.Truncate(err.Error(), maxLoggedError)))
		writeParseError(w, err)
		return
	}

	queued := a.QueuePersistJob(PersistJob{JobID: jobID, Filename: header.Filename, Document: doc, Timestamp: time.Now()})
	processingTime := time.Since(startTime).Milliseconds()
	log.Info("upload parsed",
		zap.String("parser", string(doc.Metadata.ParserUsed)),
		zap.Int("words", doc.Metadata.WordCount),
		zap.Bool("queued", queued),
		zap.Int64("processing_time_ms", processingTime))

	writeJSON(w, http.StatusOK, ParseResponse{
		JobID:            jobID,
		Filename:         header.Filename,
		Queued:           queued,
		ProcessingTimeMS: processingTime,
		Document:         doc,
	})
}

// ParseTextHandler normalizes pasted CV text
// @Summary Normalize CV text
// @Description Normalize text submitted directly and extract its structural skeleton
// @Tags cv
// @Accept x-www-form-urlencoded
// @Produce json
// @Param cv_text formData string true "CV text"
// @Success 200 {object} ParseResponse
// @Failure 400 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse
// @Router /cv/text [post]
func (a *API) ParseTextHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	startTime := time.Now()
	jobID := uuid.NewString()

	r.Body = http.MaxBytesReader(w, r.Body, a.maxUploadBytes)
	if err := r.ParseForm(); err != nil {
		writeError(w, http.StatusBadRequest, "invalid form")
		return
	}
	text := r.PostFormValue("cv_text")
	if strings.TrimSpace(text) == "" {
		writeError(w, http.StatusBadRequest, "cv_text is required")
		return
	}

	log := logger.WithFields(a.logger, logger.RequestFields(jobID, "")...)
	doc, err := a.parser.ParseText(r.Context(), text)
	if err != nil {
		log.Warn("text normalization failed", zap.String("kind", cv.KindName(err)), zap.String("error", logger.Truncate(err.Error(), maxLoggedError)))
		writeParseError(w, err)
		return
	}

	queued := a.QueuePersistJob(PersistJob{JobID: jobID, Filename: "text.txt", Document: doc, Timestamp: time.Now()})
	log.Info("text parsed", zap.Int("words", doc.Metadata.WordCount), zap.Bool("queued", queued))

	writeJSON(w, http.StatusOK, ParseResponse{
		JobID:            jobID,
		Queued:           queued,
		ProcessingTimeMS: time.Since(startTime).Milliseconds(),
		Document:         doc,
	})
}

// ParsersResponse lists extraction capabilities per format.
type ParsersResponse struct {
	Formats []cv.Capability `json:"formats"`
}

// ParsersHandler reports which extraction strategies are available
// @Summary List extraction strategies
// @Description Report every supported format with its strategies in fallback order and whether each is available
// @Tags cv
// @Produce json
// @Success 200 {object} ParsersResponse
// @Router /parsers [get]
func (a *API) ParsersHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	writeJSON(w, http.StatusOK, ParsersResponse{Formats: a.parser.Capabilities()})
}

// PopularSkillsHandler returns the skills found in most stored CVs
// @Summary Get popular skills
// @Description Get the skill keywords detected in the most persisted CVs
// @Tags cv
// @Produce json
// @Param limit query int false "Limit results" default(20)
// @Success 200 {object} map[string]interface{}
// @Failure 503 {object} ErrorResponse
// @Router /skills/popular [get]
func (a *API) PopularSkillsHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	if a.store == nil {
		writeError(w, http.StatusServiceUnavailable, "persistence is not configured")
		return
	}

	limit := 20
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 || n > 500 {
			writeError(w, http.StatusBadRequest, "limit must be between 1 and 500")
			return
		}
		limit = n
	}

	skills, err := a.store.PopularEntities(r.Context(), storage.EntitySkill, limit)
	if err != nil {
		a.logger.Error("popular skills query failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "database error")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"total":  len(skills),
		"skills": skills,
	})
}
