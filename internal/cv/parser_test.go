package cv

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

// fakeRegistry puts one fake extractor behind every supported format.
func fakeRegistry(fakes map[Format]*fakeExtractor) *Registry {
	chains := make(map[Format]*Chain)
	for _, f := range SupportedFormats {
		fake, ok := fakes[f]
		if !ok {
			fake = &fakeExtractor{name: "fake-" + ParserName(f), result: textResult("text")}
			fakes[f] = fake
		}
		c := NewChain(f, nil, fake)
		if f == FormatPDF {
			c.ExhaustedAs(ErrLikelyScannedPdf)
		}
		chains[f] = c
	}
	return NewRegistryWithChains(chains)
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestParseDocumentPlainText(t *testing.T) {
	p := NewCVParser(ParserConfig{UploadsDir: t.TempDir()})
	path := writeFile(t, "cv.txt", strings.Join([]string{
		"Jane Doe",
		"jane.doe@example.com | +1 415 555 0100 | github.com/janedoe",
		"",
		"",
		"",
		"SUMMARY",
		"Backend engineer working with Python and SQL.",
		"EXPERIENCE",
		"Acme Corp   Jan 2020 - Present",
		"• Built   the billing system",
		"- Ran Docker in production",
	}, "\r\n"))

	doc, err := p.ParseDocument(context.Background(), path)
	if err != nil {
		t.Fatalf("ParseDocument: %v", err)
	}

	if doc.SemanticHTML != "" {
		t.Fatalf("txt has no layout, got html %q", doc.SemanticHTML)
	}
	md := doc.Metadata
	if md.SourceFormat != FormatTXT || md.ParserUsed != ParserPlainText || md.PageCount != nil {
		t.Fatalf("unexpected metadata %+v", md)
	}
	if md.WordCount != len(strings.Fields(doc.PlainText)) {
		t.Fatalf("word count %d does not match text", md.WordCount)
	}
	info, _ := os.Stat(path)
	if md.FileSizeBytes != info.Size() {
		t.Fatalf("file size = %d, want %d", md.FileSizeBytes, info.Size())
	}
	if md.Warnings == nil {
		t.Fatal("warnings must be an empty list, not nil")
	}

	st := doc.Structure
	if len(st.Sections) != 2 || st.Sections[0].LineNumber != 3 || st.Sections[1].SectionType != SectionExperience {
		t.Fatalf("sections = %+v", st.Sections)
	}
	if st.Contacts.Email != "jane.doe@example.com" || st.Contacts.GitHub != "github.com/janedoe" || st.Contacts.Phone == "" {
		t.Fatalf("contacts = %+v", st.Contacts)
	}
	// Both patterns match the overlapping range; tokens are raw evidence.
	if strings.Join(st.Dates, "|") != "Jan 2020|2020 - Present" {
		t.Fatalf("dates = %q", st.Dates)
	}
	if strings.Join(st.Bullets, "|") != "Built the billing system|Ran Docker in production" {
		t.Fatalf("bullets = %q", st.Bullets)
	}
	// "git" is found inside the GitHub URL.
	if strings.Join(st.SkillKeywords, ",") != "python,sql,docker,git" {
		t.Fatalf("skills = %q", st.SkillKeywords)
	}
}

func TestParseDocumentHTMLIsSanitized(t *testing.T) {
	p := NewCVParser(ParserConfig{UploadsDir: t.TempDir()})
	path := writeFile(t, "cv.html", `<html><body>
<h1 onclick="steal()">Jane Doe</h1>
<script>alert(1)</script>
<a href="javascript:evil()">site</a>
<ul><li>Led team</li></ul>
</body></html>`)

	doc, err := p.ParseDocument(context.Background(), path)
	if err != nil {
		t.Fatal(err)
	}
	for _, bad := range []string{"<script", "onclick", "javascript:"} {
		if strings.Contains(doc.SemanticHTML, bad) {
			t.Errorf("semantic html still contains %q: %s", bad, doc.SemanticHTML)
		}
	}
	if !strings.Contains(doc.SemanticHTML, "<li>Led team</li>") {
		t.Fatalf("structure lost: %s", doc.SemanticHTML)
	}
	if doc.Metadata.ParserUsed != ParserHTMLDOM {
		t.Fatalf("parser = %s", doc.Metadata.ParserUsed)
	}
	if len(doc.Structure.Bullets) != 1 || doc.Structure.Bullets[0] != "Led team" {
		t.Fatalf("bullets = %q", doc.Structure.Bullets)
	}
}

func TestParseDocumentFileNotFound(t *testing.T) {
	p := NewCVParser(ParserConfig{Registry: fakeRegistry(map[Format]*fakeExtractor{})})
	for _, path := range []string{filepath.Join(t.TempDir(), "missing.pdf"), t.TempDir()} {
		_, err := p.ParseDocument(context.Background(), path)
		var pe *ParseError
		if !errors.As(err, &pe) || KindOf(err) != ErrFileNotFound {
			t.Errorf("%s: err = %v, want FileNotFound", path, err)
		}
	}
}

func TestParseUnsupportedFormatTouchesNothing(t *testing.T) {
	fakes := map[Format]*fakeExtractor{}
	uploads := filepath.Join(t.TempDir(), "uploads")
	p := NewCVParser(ParserConfig{UploadsDir: uploads, Registry: fakeRegistry(fakes)})

	path := writeFile(t, "cv.xyz", "Jane Doe")
	if _, err := p.ParseDocument(context.Background(), path); KindOf(err) != ErrUnsupportedFormat {
		t.Fatalf("ParseDocument err = %v, want UnsupportedFormat", err)
	}
	if _, err := p.ParseFile(context.Background(), "cv.xyz", strings.NewReader("Jane Doe")); KindOf(err) != ErrUnsupportedFormat {
		t.Fatalf("ParseFile err = %v, want UnsupportedFormat", err)
	}

	for f, fake := range fakes {
		if fake.Calls() != 0 {
			t.Errorf("%s extractor invoked for unsupported input", f)
		}
	}
	if _, err := os.Stat(uploads); !os.IsNotExist(err) {
		entries, _ := os.ReadDir(uploads)
		t.Fatalf("uploads dir touched: %v (%d entries)", err, len(entries))
	}
}

func TestParseFileRemovesStagedCopy(t *testing.T) {
	cases := []struct {
		name string
		fake *fakeExtractor
	}{
		{"success", &fakeExtractor{name: "ok", result: textResult("Jane Doe")}},
		{"empty", &fakeExtractor{name: "empty", result: textResult("   ")}},
		{"failure", &fakeExtractor{name: "boom", err: conversionFailed("boom", errors.New("exit status 1"))}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			uploads := t.TempDir()
			p := NewCVParser(ParserConfig{
				UploadsDir: uploads,
				Registry:   fakeRegistry(map[Format]*fakeExtractor{FormatDOCX: tc.fake}),
			})

			_, err := p.ParseFile(context.Background(), "resume.docx", strings.NewReader("PK fake"))
			if tc.name == "success" && err != nil {
				t.Fatal(err)
			}
			if tc.name != "success" {
				var pe *ParseError
				if !errors.As(err, &pe) || pe.Path != "resume.docx" {
					t.Fatalf("error must name the uploaded file: %v", err)
				}
			}

			if !tc.fake.sawFile {
				t.Fatal("extractor did not see the staged file")
			}
			if filepath.Ext(tc.fake.path) != ".docx" || filepath.Dir(tc.fake.path) != uploads {
				t.Fatalf("staged at %s", tc.fake.path)
			}
			entries, _ := os.ReadDir(uploads)
			if len(entries) != 0 {
				t.Fatalf("staged copy left behind: %v", entries)
			}
		})
	}
}

func TestParseFileScannedPDF(t *testing.T) {
	native := &fakeExtractor{name: ParserPDFNative, result: textResult("")}
	poppler := &fakeExtractor{name: ParserPDFToText, result: textResult("\f\f")}
	reg := NewRegistryWithChains(map[Format]*Chain{
		FormatPDF: NewChain(FormatPDF, nil, native, poppler).ExhaustedAs(ErrLikelyScannedPdf),
	})
	p := NewCVParser(ParserConfig{UploadsDir: t.TempDir(), Registry: reg})

	_, err := p.ParseFile(context.Background(), "scan.pdf", strings.NewReader("%PDF-1.4"))
	if KindOf(err) != ErrLikelyScannedPdf {
		t.Fatalf("err = %v, want LikelyScannedPdf", err)
	}
	var pe *ParseError
	if !errors.As(err, &pe) || len(pe.Attempts()) != 2 {
		t.Fatalf("attempts not reported: %v", err)
	}
	if native.Calls() != 1 || poppler.Calls() != 1 {
		t.Fatal("both pdf strategies must run")
	}
}

func TestParseDocumentEmptyAfterNormalization(t *testing.T) {
	fakes := map[Format]*fakeExtractor{
		FormatPDF: {name: ParserPDFNative, result: textResult("\x00\x01\x02")},
		FormatRTF: {name: ParserPandoc, result: textResult("\x00\x01\x02")},
	}
	p := NewCVParser(ParserConfig{Registry: fakeRegistry(fakes)})

	_, err := p.ParseDocument(context.Background(), writeFile(t, "cv.pdf", "x"))
	if KindOf(err) != ErrLikelyScannedPdf {
		t.Fatalf("pdf err = %v, want LikelyScannedPdf", err)
	}
	_, err = p.ParseDocument(context.Background(), writeFile(t, "cv.rtf", "x"))
	if KindOf(err) != ErrEmptyResult {
		t.Fatalf("rtf err = %v, want EmptyResult", err)
	}
}

func TestParseDocumentCarriesExtractorMetadata(t *testing.T) {
	pages := 3
	fakes := map[Format]*fakeExtractor{
		FormatPDF: {name: ParserPDFNative, result: &ExtractionResult{
			Text:      "Page one\n\nPage two",
			HTML:      `<div class="page" data-page="1"><p>Page one</p></div>`,
			PageCount: &pages,
			Warnings:  []string{"page 3 unreadable"},
		}},
	}
	core, logs := observer.New(zapcore.InfoLevel)
	p := NewCVParser(ParserConfig{Registry: fakeRegistry(fakes), Logger: zap.New(core)})

	doc, err := p.ParseDocument(context.Background(), writeFile(t, "cv.pdf", "%PDF"))
	if err != nil {
		t.Fatal(err)
	}
	if doc.Metadata.PageCount == nil || *doc.Metadata.PageCount != 3 {
		t.Fatalf("page count = %v", doc.Metadata.PageCount)
	}
	if len(doc.Metadata.Warnings) != 1 {
		t.Fatalf("warnings = %q", doc.Metadata.Warnings)
	}
	if !strings.Contains(doc.SemanticHTML, `class="page"`) || !strings.Contains(doc.SemanticHTML, `data-page="1"`) {
		t.Fatalf("page markup stripped: %s", doc.SemanticHTML)
	}

	for _, msg := range []string{"format selected", "document normalized", "extraction warning"} {
		if logs.FilterMessage(msg).Len() == 0 {
			t.Errorf("missing %q log entry", msg)
		}
	}
}

func TestParseText(t *testing.T) {
	p := NewCVParser(ParserConfig{})

	doc, err := p.ParseText(context.Background(), "  SKILLS \n\n\n\n python, react  ")
	if err != nil {
		t.Fatal(err)
	}
	if doc.PlainText != "SKILLS\n\npython, react" || doc.Metadata.ParserUsed != ParserDirect {
		t.Fatalf("unexpected document %+v", doc)
	}
	if strings.Join(doc.Structure.SkillKeywords, ",") != "python,react" {
		t.Fatalf("skills = %q", doc.Structure.SkillKeywords)
	}

	if _, err := p.ParseText(context.Background(), " \n\t "); KindOf(err) != ErrEmptyResult {
		t.Fatalf("blank text err = %v, want EmptyResult", err)
	}
}

func TestParseDocumentConcurrent(t *testing.T) {
	p := NewCVParser(ParserConfig{UploadsDir: t.TempDir()})
	dir := t.TempDir()

	var wg sync.WaitGroup
	errs := make(chan error, 16)
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			name := filepath.Join(dir, "cv"+strings.Repeat("x", i)+".txt")
			os.WriteFile(name, []byte("EDUCATION\nMSc 2015-2017"), 0o644)
			doc, err := p.ParseDocument(context.Background(), name)
			if err != nil {
				errs <- err
				return
			}
			if len(doc.Structure.Sections) != 1 || len(doc.Structure.Dates) != 1 {
				errs <- errors.New("unexpected structure")
			}
		}(i)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Error(err)
	}
}

func TestParseZeroByteInput(t *testing.T) {
	cases := []struct {
		name string
		want error
	}{
		{"cv.pdf", ErrLikelyScannedPdf},
		{"cv.docx", ErrEmptyResult},
		{"cv.txt", ErrEmptyResult},
	}
	// A broken pdftotext proves the chain is never reached.
	p := NewCVParser(ParserConfig{
		UploadsDir: t.TempDir(),
		Tools:      ToolOptions{PDFToTextBinary: "no-such-pdftotext", ConverterBinary: "no-such-pandoc"},
	})
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := p.ParseDocument(context.Background(), writeFile(t, tc.name, "")); KindOf(err) != tc.want {
				t.Fatalf("ParseDocument err = %v, want %v", err, tc.want)
			}
			if _, err := p.ParseFile(context.Background(), tc.name, strings.NewReader("")); KindOf(err) != tc.want {
				t.Fatalf("ParseFile err = %v, want %v", err, tc.want)
			}
		})
	}
}
