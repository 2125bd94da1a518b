package domain

// FulltextCleanedLimit caps the fulltext_cleaned field on every read response.
// The stored value is never mutated.
const FulltextCleanedLimit = 500

// Document is a stored record of metadata about a source text, with five
// associated multi-valued attribute sets. All scalar fields except the title
// are nullable. Fulltext is storage-only: accepted on create, never serialized.
type Document struct {
	ID              int64   `json:"document_id"`
	Title           string  `json:"title"`
	DocumentSource  *string `json:"document_source"`
	Fulltext        *string `json:"-"`
	FulltextCleaned *string `json:"fulltext_cleaned"`
	Abstract        *string `json:"abstract"`
	Date            *string `json:"date"`
	EntryIntoForce  *string `json:"entryintoforce"`
	FulltextLink    *string `json:"fulltextlink"`
	SourceName      *string `json:"sourcename"`
	SourceLink      *string `json:"sourcelink"`
	Status          *string `json:"status"`

	Authors      []string `json:"authors,omitempty"`
	Areas        []string `json:"areas,omitempty"`
	Keywords     []string `json:"keywords,omitempty"`
	Subjects     []string `json:"subjects,omitempty"`
	Participants []string `json:"participants,omitempty"`

	// Similarity is attached only on similar-document responses.
	Similarity *float64 `json:"similarity,omitempty"`
}

// Sanitized returns a copy shaped for output: fulltext dropped and
// fulltext_cleaned truncated to its first FulltextCleanedLimit characters.
func (d Document) Sanitized() Document {
	d.Fulltext = nil
	if d.FulltextCleaned != nil {
		truncated := truncateRunes(*d.FulltextCleaned, FulltextCleanedLimit)
		d.FulltextCleaned = &truncated
	}
	return d
}

func truncateRunes(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}
