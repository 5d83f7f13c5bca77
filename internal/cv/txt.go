package cv

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
	xunicode "golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// maxControlRatio is the share of control characters above which decoded
// text is treated as binary rather than a text encoding problem we can fix.
const maxControlRatio = 0.1

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// PlainTextExtractor reads text files as UTF-8, honouring UTF-16 byte order
// marks, and retries as Latin-1 when the bytes are not valid UTF-8.
type PlainTextExtractor struct{}

func NewPlainTextExtractor() *PlainTextExtractor { return &PlainTextExtractor{} }

func (e *PlainTextExtractor) Name() ParserName { return ParserPlainText }

func (e *PlainTextExtractor) Probe() error { return nil }

func (e *PlainTextExtractor) Extract(ctx context.Context, path string) (*ExtractionResult, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, conversionFailed(ParserPlainText, err)
	}
	text, warnings, err := DecodeText(data)
	if err != nil {
		return nil, &ExtractionError{Kind: ErrEncodingError, Strategy: ParserPlainText, Err: err}
	}
	// Plain text carries no layout, so there is no HTML rendition.
	return &ExtractionResult{Text: text, Warnings: warnings}, nil
}

// DecodeText turns raw bytes into a string: UTF-16 with BOM, UTF-8, then
// Latin-1. It fails when the result still looks like binary data.
func DecodeText(data []byte) (string, []string, error) {
	var (
		text     string
		warnings []string
	)

	switch {
	case hasUTF16BOM(data):
		out, _, err := transform.Bytes(xunicode.BOMOverride(xunicode.UTF8.NewDecoder()), data)
		if err != nil {
			return "", nil, fmt.Errorf("decode utf-16: %w", err)
		}
		text = string(out)
	case utf8.Valid(data):
		text = string(bytes.TrimPrefix(data, utf8BOM))
	default:
		out, err := charmap.ISO8859_1.NewDecoder().Bytes(data)
		if err != nil {
			return "", nil, fmt.Errorf("decode latin-1: %w", err)
		}
		text = string(out)
		warnings = append(warnings, "text is not valid UTF-8; decoded as Latin-1")
	}

	if ratio := controlRatio(text); ratio > maxControlRatio {
		return "", nil, fmt.Errorf("content looks binary (%.0f%% control characters)", ratio*100)
	}
	return text, warnings, nil
}

func hasUTF16BOM(data []byte) bool {
	return len(data) >= 2 && ((data[0] == 0xFE && data[1] == 0xFF) || (data[0] == 0xFF && data[1] == 0xFE))
}

func controlRatio(text string) float64 {
	total, control := 0, 0
	for _, r := range text {
		total++
		if unicode.IsControl(r) && !unicode.IsSpace(r) {
			control++
		}
	}
	if total == 0 {
		return 0
	}
	return float64(control) / float64(total)
}
