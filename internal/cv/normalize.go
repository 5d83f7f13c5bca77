package cv

import (
	"strings"
	"unicode"
)

// Normalize cleans extracted text: line endings become "\n", control
// characters and byte order marks are dropped, horizontal whitespace runs
// collapse to one space, every line is trimmed, runs of blank lines collapse
// to a single blank line and the whole text is trimmed.
//
// Normalize(Normalize(s)) == Normalize(s) for every s.
func Normalize(raw string) string {
	s := strings.ReplaceAll(raw, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	s = strings.Map(repairRune, s)

	var b strings.Builder
	b.Grow(len(s))
	blank := 0
	for _, line := range strings.Split(s, "\n") {
		line = strings.Join(strings.Fields(line), " ")
		if line == "" {
			blank++
			continue
		}
		if b.Len() > 0 {
			b.WriteByte('\n')
			if blank > 0 {
				b.WriteByte('\n')
			}
		}
		b.WriteString(line)
		blank = 0
	}
	return b.String()
}

func repairRune(r rune) rune {
	switch {
	case r == '\n':
		return r
	case r == '\ufeff':
		return -1
	case unicode.IsSpace(r):
		return ' '
	case unicode.IsControl(r):
		return -1
	}
	return r
}
