package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"sync"

	"cv-normalizer/internal/cv"
	"cv-normalizer/internal/storage"

	"go.uber.org/zap"
)

// Parser is the document pipeline used by the handlers.
type Parser interface {
	ParseFile(ctx context.Context, filename string, reader io.Reader) (*cv.NormalizedDocument, error)
	ParseText(ctx context.Context, text string) (*cv.NormalizedDocument, error)
	Capabilities() []cv.Capability
}

// Store persists parsed documents. It is optional.
type Store interface {
	SaveCV(ctx context.Context, file *storage.CVFile, entities []storage.CVEntity) (int64, error)
	PopularEntities(ctx context.Context, entityType string, limit int) ([]storage.EntityCount, error)
}

type Options struct {
	MaxUploadBytes int64
	QueueSize      int
	Logger         *zap.Logger
}

type API struct {
	parser         Parser
	store          Store
	maxUploadBytes int64
	persistQueue   chan PersistJob // nil when there is no store
	workers        sync.WaitGroup
	logger         *zap.Logger
}

// NewAPI wires the handlers. A nil store disables persistence.
func NewAPI(parser Parser, store Store, opts Options) *API {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	maxUpload := opts.MaxUploadBytes
	if maxUpload <= 0 {
		maxUpload = 10 << 20
	}
	queueSize := opts.QueueSize
	if queueSize <= 0 {
		queueSize = 50
	}

	a := &API{
		parser:         parser,
		store:          store,
		maxUploadBytes: maxUpload,
		logger:         logger,
	}
	if store != nil {
		a.persistQueue = make(chan PersistJob, queueSize)
		a.StartBackgroundWorkers()
	}
	return a
}

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error    string   `json:"error"`
	Kind     string   `json:"kind,omitempty"`
	Attempts []string `json:"attempts,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, ErrorResponse{Error: msg})
}

// writeParseError maps a pipeline failure to a status code by its kind.
func writeParseError(w http.ResponseWriter, err error) {
	resp := ErrorResponse{Error: err.Error(), Kind: cv.KindName(err)}
	var pe *cv.ParseError
	if errors.As(err, &pe) {
		for _, a := range pe.Attempts() {
			resp.Attempts = append(resp.Attempts, a.String())
		}
	}
	writeJSON(w, statusFor(err), resp)
}

func statusFor(err error) int {
	switch cv.KindOf(err) {
	case cv.ErrUnsupportedFormat, cv.ErrFileNotFound:
		return http.StatusBadRequest
	case cv.ErrEmptyResult, cv.ErrLikelyScannedPdf, cv.ErrEncodingError:
		return http.StatusUnprocessableEntity
	case cv.ErrConversionFailed:
		return http.StatusBadGateway
	case cv.ErrToolUnavailable:
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}
