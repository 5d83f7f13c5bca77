package cv

import (
	"fmt"
	"strings"
	"unicode"
)

// minPrintableRatio below which extracted text is flagged as implausible,
// usually a file whose extension does not match its content.
const minPrintableRatio = 0.85

// PrintableRatio returns the share of printable runes in text. Private use
// area runes and U+FFFD count as garbage.
func PrintableRatio(text string) float64 {
	total, printable := 0, 0
	for _, r := range text {
		total++
		if isGarbageRune(r) {
			continue
		}
		if unicode.IsPrint(r) || r == '\n' || r == '\t' {
			printable++
		}
	}
	if total == 0 {
		return 1
	}
	return float64(printable) / float64(total)
}

func isGarbageRune(r rune) bool {
	return (r >= 0xE000 && r <= 0xF8FF) || r == unicode.ReplacementChar
}

// plausibilityWarnings checks extracted text for signs of a mis-parse. It
// only warns; the document is still returned.
func plausibilityWarnings(text string, format Format) []string {
	var warnings []string
	if ratio := PrintableRatio(text); ratio < minPrintableRatio {
		warnings = append(warnings, fmt.Sprintf(
			"only %.0f%% of extracted characters are printable; the file may not be a real %s",
			ratio*100, strings.ToUpper(string(format))))
	}
	return warnings
}
