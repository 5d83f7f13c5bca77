package cv

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"code.sajari.com/docconv"
)

type docconvFunc func(io.Reader) (string, map[string]string, error)

// DocconvExtractor wraps one of docconv's per-format converters. The DOC
// converter runs wvText, which docconv starts itself, so the call is bounded
// by timeout rather than killed.
type DocconvExtractor struct {
	name    ParserName
	tool    string
	convert docconvFunc
	timeout time.Duration
}

// NewDocconvDocExtractor converts legacy Word files via wvText.
func NewDocconvDocExtractor(timeout time.Duration) *DocconvExtractor {
	return &DocconvExtractor{name: ParserDocconvDoc, tool: "wvText", convert: docconv.ConvertDoc, timeout: timeout}
}

// NewDocconvODTExtractor reads OpenDocument text in-process.
func NewDocconvODTExtractor(timeout time.Duration) *DocconvExtractor {
	return &DocconvExtractor{name: ParserDocconvODT, convert: docconv.ConvertODT, timeout: timeout}
}

func (e *DocconvExtractor) Name() ParserName { return e.name }

func (e *DocconvExtractor) Probe() error {
	if e.tool == "" {
		return nil
	}
	return probeBinary(e.name, e.tool)
}

func (e *DocconvExtractor) Extract(ctx context.Context, path string) (*ExtractionResult, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, conversionFailed(e.name, err)
	}
	defer f.Close()

	timeout := e.timeout
	if timeout <= 0 {
		timeout = DefaultConverterTimeout
	}
	body, err := boundedCall(ctx, timeout, func() (string, error) {
		text, _, err := e.convert(f)
		return text, err
	})
	if err != nil {
		return nil, &ExtractionError{Kind: ErrConversionFailed, Strategy: e.name, Tool: e.tool, Err: fmt.Errorf("docconv: %w", err)}
	}
	return &ExtractionResult{Text: body}, nil
}
