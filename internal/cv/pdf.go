package cv

import (
	"context"
	"fmt"
	"html"
	"os"
	"strings"
	"time"

	"github.com/ledongthuc/pdf"
	pdfapi "github.com/pdfcpu/pdfcpu/pkg/api"
)

// PageSeparator joins per-page text so page boundaries survive normalization.
const PageSeparator = "\n\n"

// PDFNativeExtractor reads text page by page with a pure Go PDF reader and
// rebuilds a simple per-page HTML view.
type PDFNativeExtractor struct{}

func NewPDFNativeExtractor() *PDFNativeExtractor { return &PDFNativeExtractor{} }

func (e *PDFNativeExtractor) Name() ParserName { return ParserPDFNative }

func (e *PDFNativeExtractor) Probe() error { return nil }

func (e *PDFNativeExtractor) Extract(ctx context.Context, path string) (res *ExtractionResult, err error) {
	// The reader panics on some malformed files.
	defer func() {
		if r := recover(); r != nil {
			res, err = nil, conversionFailed(ParserPDFNative, fmt.Errorf("pdf reader panic: %v", r))
		}
	}()

	if info, err := os.Stat(path); err == nil && info.Size() == 0 {
		return nil, emptyResult(ParserPDFNative)
	}

	f, r, err := pdf.Open(path)
	if err != nil {
		return nil, conversionFailed(ParserPDFNative, fmt.Errorf("open pdf: %w", err))
	}
	defer f.Close()

	numPages := r.NumPage()
	pages := make([]string, 0, numPages)
	var htmlOut strings.Builder
	var warnings []string

	for i := 1; i <= numPages; i++ {
		if err := ctx.Err(); err != nil {
			return nil, conversionFailed(ParserPDFNative, err)
		}

		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("page %d unreadable: %v", i, err))
			continue
		}
		text = strings.TrimSpace(text)
		pages = append(pages, text)
		writePageHTML(&htmlOut, i, text)
	}

	return &ExtractionResult{
		Text:      strings.Join(pages, PageSeparator),
		HTML:      htmlOut.String(),
		PageCount: intPtr(numPages),
		Warnings:  warnings,
	}, nil
}

func writePageHTML(b *strings.Builder, pageNr int, text string) {
	fmt.Fprintf(b, "<div class=\"page\" data-page=\"%d\">\n", pageNr)
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		b.WriteString("<p>")
		b.WriteString(html.EscapeString(line))
		b.WriteString("</p>\n")
	}
	b.WriteString("</div>\n")
}

// PDFToTextExtractor shells out to poppler's pdftotext. It is text-only.
type PDFToTextExtractor struct {
	runner Runner
}

func NewPDFToTextExtractor(binary string, timeout time.Duration) *PDFToTextExtractor {
	if binary == "" {
		binary = "pdftotext"
	}
	return &PDFToTextExtractor{runner: Runner{Binary: binary, Timeout: timeout}}
}

func (e *PDFToTextExtractor) Name() ParserName { return ParserPDFToText }

func (e *PDFToTextExtractor) Probe() error { return probeBinary(ParserPDFToText, e.runner.Binary) }

func (e *PDFToTextExtractor) Extract(ctx context.Context, path string) (*ExtractionResult, error) {
	// Form feeds mark page breaks in pdftotext output.
	out, _, err := e.runner.Run(ctx, ParserPDFToText, "-q", "-enc", "UTF-8", "-eol", "unix", path, "-")
	if err != nil {
		return nil, err
	}

	var pages []string
	for _, p := range strings.Split(string(out), "\f") {
		if p = strings.TrimSpace(p); p != "" {
			pages = append(pages, p)
		}
	}

	res := &ExtractionResult{Text: strings.Join(pages, PageSeparator)}
	if n, err := pdfapi.PageCountFile(path); err == nil {
		res.PageCount = intPtr(n)
	} else {
		res.Warnings = append(res.Warnings, fmt.Sprintf("page count unavailable: %v", err))
	}
	return res, nil
}
