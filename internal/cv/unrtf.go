package cv

import (
	"context"
	"strings"
	"time"
)

// UnrtfExtractor converts RTF with the unrtf binary, once to HTML and once
// to text, under the same bounded runner as pandoc.
type UnrtfExtractor struct {
	runner Runner
}

func NewUnrtfExtractor(binary string, timeout time.Duration) *UnrtfExtractor {
	if binary == "" {
		binary = "unrtf"
	}
	return &UnrtfExtractor{runner: Runner{Binary: binary, Timeout: timeout}}
}

func (e *UnrtfExtractor) Name() ParserName { return ParserUnrtf }

func (e *UnrtfExtractor) Probe() error { return probeBinary(ParserUnrtf, e.runner.Binary) }

func (e *UnrtfExtractor) Extract(ctx context.Context, path string) (*ExtractionResult, error) {
	htmlOut, _, err := e.runner.Run(ctx, ParserUnrtf, "--nopict", "--html", path)
	if err != nil {
		return nil, err
	}
	textOut, stderr, err := e.runner.Run(ctx, ParserUnrtf, "--nopict", "--text", path)
	if err != nil {
		return nil, err
	}
	return &ExtractionResult{
		Text:     stripUnrtfBanner(string(textOut)),
		HTML:     string(htmlOut),
		Warnings: converterWarnings(stderr),
	}, nil
}

// stripUnrtfBanner drops the "###" comment header and the dashed rule that
// unrtf prints ahead of the document text.
func stripUnrtfBanner(out string) string {
	lines := strings.Split(out, "\n")
	i := 0
	for i < len(lines) && strings.HasPrefix(lines[i], "###") {
		i++
	}
	if i > 0 && i < len(lines) && strings.Trim(lines[i], "-") == "" && lines[i] != "" {
		i++
	}
	return strings.Join(lines[i:], "\n")
}
