package cv

// ParserName identifies the extraction strategy that produced a document.
type ParserName string

const (
	ParserPDFNative  ParserName = "pdf-native"
	ParserPDFToText  ParserName = "pdftotext"
	ParserPandoc     ParserName = "pandoc"
	ParserOOXML      ParserName = "ooxml"
	ParserDocconvDoc ParserName = "docconv-doc"
	ParserDocconvODT ParserName = "docconv-odt"
	ParserUnrtf      ParserName = "unrtf"
	ParserPlainText  ParserName = "plaintext"
	ParserHTMLDOM    ParserName = "html-dom"
	ParserHTMLStrip  ParserName = "html-strip"
	ParserDirect     ParserName = "direct"
)

// SectionType is the category of a detected section header.
type SectionType string

const (
	SectionExperience     SectionType = "experience"
	SectionEducation      SectionType = "education"
	SectionSkills         SectionType = "skills"
	SectionSummary        SectionType = "summary"
	SectionProjects       SectionType = "projects"
	SectionAchievements   SectionType = "achievements"
	SectionCertifications SectionType = "certifications"
	SectionUnknown        SectionType = "unknown"
)

// Valid reports whether t is one of the known section categories.
func (t SectionType) Valid() bool {
	switch t {
	case SectionExperience, SectionEducation, SectionSkills, SectionSummary,
		SectionProjects, SectionAchievements, SectionCertifications, SectionUnknown:
		return true
	}
	return false
}

// NormalizedDocument is the format-independent result of parsing one CV.
// It is built once and never modified afterwards.
type NormalizedDocument struct {
	PlainText    string    `json:"plain_text"`
	SemanticHTML string    `json:"semantic_html"`
	Metadata     Metadata  `json:"metadata"`
	Structure    Structure `json:"structure"`
}

type Metadata struct {
	SourceFormat  Format     `json:"source_format"`
	ParserUsed    ParserName `json:"parser_used"`
	PageCount     *int       `json:"page_count,omitempty"`
	WordCount     int        `json:"word_count"`
	FileSizeBytes int64      `json:"file_size_bytes"`
	Warnings      []string   `json:"warnings"`
}

// Structure is the heuristic skeleton derived without AI assistance.
type Structure struct {
	Sections      []DetectedSection `json:"sections"`
	Contacts      ContactFields     `json:"contacts"`
	Dates         []string          `json:"dates"`
	SkillKeywords []string          `json:"skill_keywords"`
	Bullets       []string          `json:"bullets"`
}

// DetectedSection is a line recognised as a section header. LineNumber is a
// zero-based index into PlainText split on "\n".
type DetectedSection struct {
	Title       string      `json:"title"`
	SectionType SectionType `json:"type"`
	LineNumber  int         `json:"line_number"`
}

// ContactFields holds the first pattern match per field. A match is never
// empty, so an empty string means the field was not found.
type ContactFields struct {
	Email    string `json:"email,omitempty"`
	Phone    string `json:"phone,omitempty"`
	LinkedIn string `json:"linkedin,omitempty"`
	GitHub   string `json:"github,omitempty"`
}
