package cv

import (
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
)

// maxHeaderRunes is the exclusive upper bound on a section header's length.
const maxHeaderRunes = 50

var (
	emailRe    = regexp.MustCompile(`(?i)[\w.-]+@[\w.-]+\.\w+`)
	phoneRe    = regexp.MustCompile(`[+\d][\d \t()-]{9,}`)
	linkedinRe = regexp.MustCompile(`(?i)linkedin\.com/in/[\w-]+`)
	githubRe   = regexp.MustCompile(`(?i)github\.com/[\w-]+`)

	dateRes = []*regexp.Regexp{
		regexp.MustCompile(`\b\d{4}\s*[-–]\s*\d{4}\b`),
		regexp.MustCompile(`(?i)\b\d{4}\s*[-–]\s*present\b`),
		regexp.MustCompile(`(?i)\b(?:jan(?:uary)?|feb(?:ruary)?|mar(?:ch)?|apr(?:il)?|may|june?|july?|aug(?:ust)?|sep(?:t(?:ember)?)?|oct(?:ober)?|nov(?:ember)?|dec(?:ember)?)\.?\s+\d{4}\b`),
	}
)

var bulletMarkers = []rune{'•', '-', '*', '·'}

// StructuralExtractor derives the heuristic skeleton of a CV.
type StructuralExtractor struct {
	vocab Vocabulary
}

func NewStructuralExtractor(vocab Vocabulary) *StructuralExtractor {
	if len(vocab.Sections) == 0 && len(vocab.Skills) == 0 {
		vocab = DefaultVocabulary()
	}
	return &StructuralExtractor{vocab: vocab}
}

// Extract builds the skeleton from normalized text and optional HTML.
func (s *StructuralExtractor) Extract(text, htmlSrc string) Structure {
	return Structure{
		Sections:      s.Sections(text),
		Contacts:      ExtractContacts(text),
		Dates:         ExtractDates(text),
		SkillKeywords: s.Skills(text),
		Bullets:       ExtractBullets(htmlSrc, text),
	}
}

// Sections tags short lines containing a section keyword.
func (s *StructuralExtractor) Sections(text string) []DetectedSection {
	sections := []DetectedSection{}
	for i, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || utf8.RuneCountInString(trimmed) >= maxHeaderRunes {
			continue
		}
		lower := strings.ToLower(trimmed)
		for _, kw := range s.vocab.Sections {
			if strings.Contains(lower, kw.Keyword) {
				sections = append(sections, DetectedSection{
					Title:       trimmed,
					SectionType: kw.Type,
					LineNumber:  i,
				})
				break
			}
		}
	}
	return sections
}

// Skills returns the vocabulary skills present in text, in vocabulary order.
func (s *StructuralExtractor) Skills(text string) []string {
	lower := strings.ToLower(text)
	found := []string{}
	seen := make(map[string]bool)
	for _, skill := range s.vocab.Skills {
		if seen[skill] {
			continue
		}
		if strings.Contains(lower, skill) {
			found = append(found, skill)
			seen[skill] = true
		}
	}
	return found
}

// ExtractContacts keeps the first match per contact field.
func ExtractContacts(text string) ContactFields {
	return ContactFields{
		Email:    emailRe.FindString(text),
		Phone:    strings.TrimSpace(phoneRe.FindString(text)),
		LinkedIn: linkedinRe.FindString(text),
		GitHub:   githubRe.FindString(text),
	}
}

// ExtractDates returns every date-like token in source order. Tokens are
// neither deduplicated nor validated.
func ExtractDates(text string) []string {
	type match struct {
		start, end, pattern int
	}
	var matches []match
	for p, re := range dateRes {
		for _, loc := range re.FindAllStringIndex(text, -1) {
			matches = append(matches, match{loc[0], loc[1], p})
		}
	}
	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].start != matches[j].start {
			return matches[i].start < matches[j].start
		}
		return matches[i].pattern < matches[j].pattern
	})

	dates := make([]string, 0, len(matches))
	for _, m := range matches {
		dates = append(dates, text[m.start:m.end])
	}
	return dates
}

// ExtractBullets collects list item text from the HTML followed by plain
// text lines starting with a bullet marker. Both passes are kept, so the
// same bullet may appear twice.
func ExtractBullets(htmlSrc, text string) []string {
	bullets := []string{}

	if strings.TrimSpace(htmlSrc) != "" {
		if doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlSrc)); err == nil {
			doc.Find("li").Each(func(_ int, sel *goquery.Selection) {
				if item := strings.Join(strings.Fields(sel.Text()), " "); item != "" {
					bullets = append(bullets, item)
				}
			})
		}
	}

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		first, size := utf8.DecodeRuneInString(line)
		if line == "" || !isBulletMarker(first) {
			continue
		}
		if rest := strings.TrimSpace(line[size:]); rest != "" {
			bullets = append(bullets, rest)
		}
	}
	return bullets
}

func isBulletMarker(r rune) bool {
	for _, m := range bulletMarkers {
		if r == m {
			return true
		}
	}
	return false
}
