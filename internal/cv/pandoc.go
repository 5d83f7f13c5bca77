package cv

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// pandocReaders maps source formats to pandoc's input format names.
var pandocReaders = map[Format]string{
	FormatDOCX: "docx",
	FormatODT:  "odt",
	FormatRTF:  "rtf",
	FormatTEX:  "latex",
}

// PandocExtractor converts a document with pandoc, once to HTML and once to
// plain text. A non-zero exit is a conversion failure.
type PandocExtractor struct {
	runner Runner
	reader string
}

func NewPandocExtractor(format Format, binary string, timeout time.Duration) *PandocExtractor {
	if binary == "" {
		binary = "pandoc"
	}
	return &PandocExtractor{
		runner: Runner{Binary: binary, Timeout: timeout},
		reader: pandocReaders[format],
	}
}

func (e *PandocExtractor) Name() ParserName { return ParserPandoc }

func (e *PandocExtractor) Probe() error {
	if e.reader == "" {
		return toolUnavailable(ParserPandoc, e.runner.Binary, fmt.Errorf("no pandoc reader for this format"))
	}
	return probeBinary(ParserPandoc, e.runner.Binary)
}

func (e *PandocExtractor) Extract(ctx context.Context, path string) (*ExtractionResult, error) {
	htmlOut, htmlWarn, err := e.runner.Run(ctx, ParserPandoc, "-f", e.reader, "-t", "html", path)
	if err != nil {
		return nil, err
	}
	textOut, textWarn, err := e.runner.Run(ctx, ParserPandoc, "-f", e.reader, "-t", "plain", "--wrap=none", path)
	if err != nil {
		return nil, err
	}

	return &ExtractionResult{
		Text:     string(textOut),
		HTML:     string(htmlOut),
		Warnings: converterWarnings(htmlWarn, textWarn),
	}, nil
}

// converterWarnings turns the stderr of successful runs into warning lines,
// dropping duplicates between the html and plain passes.
func converterWarnings(streams ...[]byte) []string {
	var out []string
	seen := make(map[string]bool)
	for _, s := range streams {
		for _, line := range strings.Split(string(s), "\n") {
			line = strings.TrimSpace(line)
			if line == "" || seen[line] {
				continue
			}
			seen[line] = true
			out = append(out, line)
		}
	}
	return out
}
