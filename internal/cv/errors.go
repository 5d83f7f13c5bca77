package cv

import (
	"errors"
	"fmt"
	"strings"
)

// Error kinds. Every failure returned by ParseDocument matches exactly one of
// these with errors.Is.
var (
	ErrFileNotFound      = errors.New("file not found")
	ErrUnsupportedFormat = errors.New("unsupported format")
	ErrToolUnavailable   = errors.New("tool unavailable")
	ErrEmptyResult       = errors.New("empty result")
	ErrConversionFailed  = errors.New("conversion failed")
	ErrEncodingError     = errors.New("encoding error")
	ErrLikelyScannedPdf  = errors.New("likely scanned pdf, needs OCR")
)

var errorKinds = []error{
	ErrFileNotFound,
	ErrUnsupportedFormat,
	ErrToolUnavailable,
	ErrEmptyResult,
	ErrConversionFailed,
	ErrEncodingError,
	ErrLikelyScannedPdf,
}

var kindNames = map[error]string{
	ErrFileNotFound:      "FileNotFound",
	ErrUnsupportedFormat: "UnsupportedFormat",
	ErrToolUnavailable:   "ToolUnavailable",
	ErrEmptyResult:       "EmptyResult",
	ErrConversionFailed:  "ConversionFailed",
	ErrEncodingError:     "EncodingError",
	ErrLikelyScannedPdf:  "LikelyScannedPdf",
}

// KindName returns the stable name of err's kind, or "" for foreign errors.
func KindName(err error) string {
	return kindNames[KindOf(err)]
}

// KindOf returns the taxonomy kind carried by err, or nil when err is not a
// pipeline error. LikelyScannedPdf is checked first so it wins over the empty
// results that caused it.
func KindOf(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrLikelyScannedPdf) {
		return ErrLikelyScannedPdf
	}
	for _, kind := range errorKinds {
		if errors.Is(err, kind) {
			return kind
		}
	}
	return nil
}

// ExtractionError is returned by a single extraction strategy.
type ExtractionError struct {
	Kind     error
	Strategy ParserName
	Tool     string
	Stderr   string
	Err      error
}

func (e *ExtractionError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s: %v", e.Strategy, e.Kind)
	if e.Tool != "" {
		fmt.Fprintf(&b, " (%s)", e.Tool)
	}
	if e.Err != nil {
		fmt.Fprintf(&b, ": %v", e.Err)
	}
	if e.Stderr != "" {
		fmt.Fprintf(&b, ": %s", strings.TrimSpace(e.Stderr))
	}
	return b.String()
}

func (e *ExtractionError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

func toolUnavailable(strategy ParserName, tool string, err error) *ExtractionError {
	return &ExtractionError{Kind: ErrToolUnavailable, Strategy: strategy, Tool: tool, Err: err}
}

func emptyResult(strategy ParserName) *ExtractionError {
	return &ExtractionError{Kind: ErrEmptyResult, Strategy: strategy}
}

func conversionFailed(strategy ParserName, err error) *ExtractionError {
	return &ExtractionError{Kind: ErrConversionFailed, Strategy: strategy, Err: err}
}

// Attempt records one strategy tried by a fallback chain.
type Attempt struct {
	Strategy ParserName
	Err      error
}

func (a Attempt) String() string {
	if a.Err == nil {
		return string(a.Strategy) + ": ok"
	}
	if kind := KindOf(a.Err); kind != nil {
		return fmt.Sprintf("%s: %v", a.Strategy, kind)
	}
	return fmt.Sprintf("%s: %v", a.Strategy, a.Err)
}

// ChainError is the terminal failure of a fallback chain.
type ChainError struct {
	Format   Format
	Kind     error
	Attempts []Attempt
	Err      error
}

func (e *ChainError) Error() string {
	tried := make([]string, 0, len(e.Attempts))
	for _, a := range e.Attempts {
		tried = append(tried, a.String())
	}
	msg := fmt.Sprintf("%s extraction: %v", e.Format, e.Kind)
	if e.Err != nil && e.Err != e.Kind {
		msg += ": " + e.Err.Error()
	}
	return msg + " (tried " + strings.Join(tried, ", ") + ")"
}

func (e *ChainError) Unwrap() []error {
	if e.Err == nil || e.Err == e.Kind {
		return []error{e.Kind}
	}
	// The last error may itself carry a different kind (e.g. empty results
	// behind LikelyScannedPdf); only expose it when the kinds agree.
	if KindOf(e.Err) == e.Kind {
		return []error{e.Kind, e.Err}
	}
	return []error{e.Kind}
}

// ParseError is the error returned from the top-level parse entry points.
type ParseError struct {
	Path   string
	Format Format
	Err    error
}

func (e *ParseError) Error() string {
	if e.Format == "" {
		return fmt.Sprintf("parse %s: %v", e.Path, e.Err)
	}
	return fmt.Sprintf("parse %s (%s): %v", e.Path, e.Format, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Attempts returns the strategies tried before the failure, if any.
func (e *ParseError) Attempts() []Attempt {
	var ce *ChainError
	if errors.As(e.Err, &ce) {
		return ce.Attempts
	}
	return nil
}
