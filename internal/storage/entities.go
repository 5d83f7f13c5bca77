package storage

import "cv-normalizer/internal/cv"

// FromDocument flattens a normalized document into storage rows.
func FromDocument(jobID, filename string, doc *cv.NormalizedDocument) (*CVFile, []CVEntity) {
	md := doc.Metadata
	file := &CVFile{
		JobID:      jobID,
		Filename:   filename,
		FileType:   string(md.SourceFormat),
		FileSize:   md.FileSizeBytes,
		ParserUsed: string(md.ParserUsed),
		PageCount:  md.PageCount,
		WordCount:  md.WordCount,
		ParsedText: doc.PlainText,
		HTML:       doc.SemanticHTML,
		Warnings:   md.Warnings,
	}

	st := doc.Structure
	var entities []CVEntity
	for _, s := range st.SkillKeywords {
		entities = append(entities, CVEntity{Type: EntitySkill, Value: s, Confidence: confidenceKeyword})
	}
	for _, c := range []struct{ typ, val string }{
		{EntityEmail, st.Contacts.Email},
		{EntityPhone, st.Contacts.Phone},
		{EntityLinkedIn, st.Contacts.LinkedIn},
		{EntityGitHub, st.Contacts.GitHub},
	} {
		if c.val != "" {
			entities = append(entities, CVEntity{Type: c.typ, Value: c.val, Confidence: confidencePattern})
		}
	}
	for _, d := range st.Dates {
		entities = append(entities, CVEntity{Type: EntityDate, Value: d, Confidence: confidencePattern})
	}
	for _, s := range st.Sections {
		entities = append(entities, CVEntity{Type: EntitySection, Value: string(s.SectionType), Confidence: confidenceKeyword})
	}
	return file, entities
}
