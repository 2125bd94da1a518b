package domain

import (
	"encoding/json"
	"strings"
	"testing"
)

func strPtr(s string) *string { return &s }

func TestSanitized_DropsFulltext(t *testing.T) {
	doc := Document{
		ID:       7,
		Title:    "Communication on deforestation",
		Fulltext: strPtr("the entire stored fulltext"),
	}

	got := doc.Sanitized()
	if got.Fulltext != nil {
		t.Error("expected fulltext to be dropped")
	}
}

func TestSanitized_TruncatesFulltextCleaned(t *testing.T) {
	stored := strings.Repeat("a", 1200)
	doc := Document{ID: 7, Title: "t", FulltextCleaned: strPtr(stored)}

	got := doc.Sanitized()
	if got.FulltextCleaned == nil {
		t.Fatal("expected fulltext_cleaned to be kept")
	}
	if len(*got.FulltextCleaned) != FulltextCleanedLimit {
		t.Errorf("expected %d chars, got %d", FulltextCleanedLimit, len(*got.FulltextCleaned))
	}
	if !strings.HasPrefix(stored, *got.FulltextCleaned) {
		t.Error("truncated value must be a prefix of the stored value")
	}
	// The original document is untouched.
	if len(*doc.FulltextCleaned) != 1200 {
		t.Errorf("stored value mutated: %d chars", len(*doc.FulltextCleaned))
	}
}

func TestSanitized_ShortFulltextCleanedUnchanged(t *testing.T) {
	doc := Document{ID: 7, Title: "t", FulltextCleaned: strPtr("short")}

	got := doc.Sanitized()
	if got.FulltextCleaned == nil || *got.FulltextCleaned != "short" {
		t.Errorf("expected unchanged value, got %v", got.FulltextCleaned)
	}
}

func TestSanitized_NilFulltextCleaned(t *testing.T) {
	doc := Document{ID: 7, Title: "t"}

	got := doc.Sanitized()
	if got.FulltextCleaned != nil {
		t.Errorf("expected nil fulltext_cleaned, got %v", got.FulltextCleaned)
	}
}

func TestDocumentJSON_NeverContainsFulltext(t *testing.T) {
	doc := Document{
		ID:       12,
		Title:    "t",
		Fulltext: strPtr("secret storage-only text"),
	}

	data, err := json.Marshal(doc)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if _, ok := m["fulltext"]; ok {
		t.Error("serialized document must not contain a fulltext key")
	}
	if m["document_id"] != float64(12) {
		t.Errorf("expected document_id=12, got %v", m["document_id"])
	}
}

func TestDocumentJSON_SimilarityOmittedWhenAbsent(t *testing.T) {
	data, err := json.Marshal(Document{ID: 1, Title: "t"})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if _, ok := m["similarity"]; ok {
		t.Error("similarity must be omitted when not attached")
	}
}

func TestInsertOutcome(t *testing.T) {
	ins := OutcomeInserted(42)
	if !ins.Inserted() || ins.DocumentID() != 42 {
		t.Errorf("expected Inserted(42), got inserted=%v id=%d", ins.Inserted(), ins.DocumentID())
	}

	skip := OutcomeSkipped()
	if skip.Inserted() {
		t.Error("skipped outcome must not report inserted")
	}
}
