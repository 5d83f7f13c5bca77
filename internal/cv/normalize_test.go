package cv

import (
	"strings"
	"testing"
	"testing/quick"
	"unicode"
)

func TestNormalize(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"only whitespace", " \t\r\n\n  ", ""},
		{"collapse spaces and tabs", "Jane \t  Doe", "Jane Doe"},
		{"trim lines", "  SKILLS  \n  Go  ", "SKILLS\nGo"},
		{"crlf", "a\r\nb\rc", "a\nb\nc"},
		{"keep single blank line", "a\n\nb", "a\n\nb"},
		{"collapse blank runs", "a\n\n\n\n\nb", "a\n\nb"},
		{"blank lines with spaces", "a\n  \n\t\n \nb", "a\n\nb"},
		{"drop bom and controls", "\ufeffJane\x00 Doe\x07", "Jane Doe"},
		{"unicode spaces", "Jane\u00a0Doe\u2003\u2003CV", "Jane Doe CV"},
		{"form feed between pages", "page one\fpage two", "page one page two"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Normalize(tc.in); got != tc.want {
				t.Fatalf("Normalize(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	f := func(s string) bool {
		once := Normalize(s)
		return Normalize(once) == once
	}
	if err := quick.Check(f, &quick.Config{MaxCount: 2000}); err != nil {
		t.Fatal(err)
	}

	// Hand-picked inputs that mix every rule.
	for _, s := range []string{
		"\n\n a \t b \r\n\r\n\r\n c \n",
		"\u2028x\u2029\u0085y",
		"\ufeff\ufeff",
		"- one\n\n\n* two\n\n",
	} {
		if once := Normalize(s); Normalize(once) != once {
			t.Errorf("not idempotent for %q", s)
		}
	}
}

func TestNormalizeNeverAddsVisibleCharacters(t *testing.T) {
	visible := func(s string) int {
		n := 0
		for _, r := range s {
			if !unicode.IsSpace(r) {
				n++
			}
		}
		return n
	}
	f := func(s string) bool {
		return visible(Normalize(s)) <= visible(s)
	}
	if err := quick.Check(f, &quick.Config{MaxCount: 2000}); err != nil {
		t.Fatal(err)
	}
}

func TestNormalizeKeepsParagraphOrder(t *testing.T) {
	paras := []string{"Summary", "Experience at Acme", "Education", "Skills: Go"}
	in := strings.Join(paras, "\n\n\n\n")

	got := strings.Split(Normalize(in), "\n\n")
	if len(got) != len(paras) {
		t.Fatalf("got %d paragraphs, want %d", len(got), len(paras))
	}
	for i := range paras {
		if got[i] != paras[i] {
			t.Fatalf("paragraph %d = %q, want %q", i, got[i], paras[i])
		}
	}
}
