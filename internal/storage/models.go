package storage

import "time"

// Entity types stored in cv_entities.
const (
	EntitySkill    = "skill"
	EntityEmail    = "email"
	EntityPhone    = "phone"
	EntityLinkedIn = "linkedin"
	EntityGitHub   = "github"
	EntityDate     = "date"
	EntitySection  = "section"
)

// Keyword and pattern matches are stored with fixed confidences.
const (
	confidencePattern = 0.9
	confidenceKeyword = 0.8
)

// CVFile is one parsed document as stored in cv_files.
type CVFile struct {
	ID         int64
	JobID      string
	Filename   string
	FileType   string
	FileSize   int64
	ParserUsed string
	PageCount  *int
	WordCount  int
	ParsedText string
	HTML       string
	Warnings   []string
	UploadedAt time.Time
}

// CVEntity is one structural finding linked to a CV file.
type CVEntity struct {
	Type       string
	Value      string
	Confidence float64
}

// EntityCount is a value with the number of CVs it appears in.
type EntityCount struct {
	Value string `json:"value"`
	Count int    `json:"count"`
}
