package cv

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// SectionKeyword maps a header keyword to its section category.
type SectionKeyword struct {
	Keyword string      `yaml:"keyword" json:"keyword"`
	Type    SectionType `yaml:"type" json:"type"`
}

// Vocabulary holds the keyword lists used by the structural extractor.
// Order matters: the first section keyword found on a line wins.
type Vocabulary struct {
	Sections []SectionKeyword `yaml:"sections" json:"sections"`
	Skills   []string         `yaml:"skills" json:"skills"`
}

// DefaultVocabulary returns the built-in English keyword lists.
func DefaultVocabulary() Vocabulary {
	return Vocabulary{
		Sections: []SectionKeyword{
			{"experience", SectionExperience},
			{"work history", SectionExperience},
			{"employment", SectionExperience},
			{"education", SectionEducation},
			{"academic", SectionEducation},
			{"qualifications", SectionEducation},
			{"skills", SectionSkills},
			{"competencies", SectionSkills},
			{"expertise", SectionSkills},
			{"summary", SectionSummary},
			{"profile", SectionSummary},
			{"objective", SectionSummary},
			{"projects", SectionProjects},
			{"achievements", SectionAchievements},
			{"certifications", SectionCertifications},
		},
		Skills: []string{
			"python", "java", "javascript", "react", "node", "sql",
			"aws", "azure", "docker", "kubernetes", "git",
			"machine learning", "data analysis", "agile", "scrum",
		},
	}
}

// LoadVocabulary reads a YAML vocabulary file. Lists missing from the file
// keep their defaults; keywords are lower-cased.
func LoadVocabulary(path string) (Vocabulary, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Vocabulary{}, fmt.Errorf("read vocabulary: %w", err)
	}

	var v Vocabulary
	if err := yaml.Unmarshal(data, &v); err != nil {
		return Vocabulary{}, fmt.Errorf("parse vocabulary: %w", err)
	}

	def := DefaultVocabulary()
	if len(v.Sections) == 0 {
		v.Sections = def.Sections
	}
	if len(v.Skills) == 0 {
		v.Skills = def.Skills
	}
	return v.normalized()
}

func (v Vocabulary) normalized() (Vocabulary, error) {
	out := Vocabulary{
		Sections: make([]SectionKeyword, 0, len(v.Sections)),
		Skills:   make([]string, 0, len(v.Skills)),
	}
	for _, s := range v.Sections {
		kw := strings.ToLower(strings.TrimSpace(s.Keyword))
		if kw == "" {
			return Vocabulary{}, fmt.Errorf("section keyword with empty text")
		}
		t := SectionType(strings.ToLower(strings.TrimSpace(string(s.Type))))
		if t == "" {
			t = SectionUnknown
		}
		if !t.Valid() {
			return Vocabulary{}, fmt.Errorf("section keyword %q: unknown type %q", kw, s.Type)
		}
		out.Sections = append(out.Sections, SectionKeyword{Keyword: kw, Type: t})
	}
	for _, s := range v.Skills {
		if s = strings.ToLower(strings.TrimSpace(s)); s != "" {
			out.Skills = append(out.Skills, s)
		}
	}
	return out, nil
}
