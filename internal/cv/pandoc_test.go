package cv

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

const fakePandoc = `case "$*" in
  *"-t html"*) echo '<h2>Skills</h2><ul><li>Go</li></ul>' ;;
  *) printf 'Skills\n\n-   Go\n' ;;
esac
echo '[WARNING] Could not convert TeX math' >&2
`

func TestPandocExtractor(t *testing.T) {
	requireShell(t)
	bin := writeScript(t, fakePandoc)
	src := filepath.Join(t.TempDir(), "cv.tex")
	os.WriteFile(src, []byte(`\section{Skills}`), 0o644)

	e := NewPandocExtractor(FormatTEX, bin, time.Second)
	if err := e.Probe(); err != nil {
		t.Fatalf("Probe: %v", err)
	}
	res, err := e.Extract(context.Background(), src)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(res.Text, "Skills") || !strings.Contains(res.HTML, "<li>Go</li>") {
		t.Fatalf("unexpected result %+v", res)
	}
	if len(res.Warnings) != 1 || res.Warnings[0] != "[WARNING] Could not convert TeX math" {
		t.Fatalf("warnings = %q", res.Warnings)
	}
}

func TestPandocExtractorFailure(t *testing.T) {
	requireShell(t)
	bin := writeScript(t, "echo 'pandoc: cannot parse' >&2\nexit 64\n")
	src := filepath.Join(t.TempDir(), "cv.odt")
	os.WriteFile(src, []byte("x"), 0o644)

	_, err := NewPandocExtractor(FormatODT, bin, time.Second).Extract(context.Background(), src)
	var ee *ExtractionError
	if !errors.As(err, &ee) || ee.Kind != ErrConversionFailed || !strings.Contains(ee.Stderr, "cannot parse") {
		t.Fatalf("err = %v, want ConversionFailed with stderr", err)
	}
}

func TestPandocProbe(t *testing.T) {
	if err := NewPandocExtractor(FormatDOCX, "no-such-pandoc", 0).Probe(); !errors.Is(err, ErrToolUnavailable) {
		t.Fatalf("missing binary: %v", err)
	}
	if err := NewPandocExtractor(FormatDOC, "sh", 0).Probe(); !errors.Is(err, ErrToolUnavailable) {
		t.Fatalf("format without reader: %v", err)
	}
}

func TestConverterWarnings(t *testing.T) {
	got := converterWarnings([]byte("a\n\nb\n"), []byte("b\nc"))
	if strings.Join(got, ",") != "a,b,c" {
		t.Fatalf("converterWarnings = %q", got)
	}
}
