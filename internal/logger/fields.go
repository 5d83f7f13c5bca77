package logger

import (
	"strings"

	"go.uber.org/zap"
)

const (
	FieldRequestID = "request_id"
	FieldFilename  = "filename"
	FieldJobID     = "job_id"
)

// WithFields attaches fields to logger, defaulting to a no-op logger when nil.
func WithFields(logger *zap.Logger, fields ...zap.Field) *zap.Logger {
	if logger == nil {
		logger = zap.NewNop()
	}
	if len(fields) == 0 {
		return logger
	}
	return logger.With(fields...)
}

// RequestFields returns the fields describing one upload. Blank values are
// left out.
func RequestFields(requestID, filename string) []zap.Field {
	fields := make([]zap.Field, 0, 2)
	if v := strings.TrimSpace(requestID); v != "" {
		fields = append(fields, zap.String(FieldRequestID, v))
	}
	if v := strings.TrimSpace(filename); v != "" {
		fields = append(fields, zap.String(FieldFilename, v))
	}
	return fields
}

// Truncate shortens s to limit runes, appending an ellipsis when cut.
func Truncate(s string, limit int) string {
	s = strings.TrimSpace(s)
	if limit <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit]) + "..."
}
