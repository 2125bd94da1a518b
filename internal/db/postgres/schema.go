package postgres

import (
	"context"
	"fmt"
)

// schemaStatements bootstrap the documents table and its five child tables.
// Child rows are keyed by (document_id, value) so duplicate inserts can be
// conflict-skipped, and reference the parent row.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS documents (
		document_id       BIGSERIAL PRIMARY KEY,
		title             TEXT NOT NULL,
		document_source   TEXT,
		fulltext          TEXT,
		fulltext_cleaned  TEXT,
		abstract          TEXT,
		date              TEXT,
		entryintoforce    TEXT,
		fulltextlink      TEXT,
		sourcename        TEXT,
		sourcelink        TEXT,
		status            TEXT,
		UNIQUE (title, document_source)
	)`,
	`CREATE TABLE IF NOT EXISTS document_authors (
		document_id BIGINT NOT NULL REFERENCES documents (document_id),
		author      TEXT NOT NULL,
		PRIMARY KEY (document_id, author)
	)`,
	`CREATE TABLE IF NOT EXISTS document_areas (
		document_id BIGINT NOT NULL REFERENCES documents (document_id),
		area        TEXT NOT NULL,
		PRIMARY KEY (document_id, area)
	)`,
	`CREATE TABLE IF NOT EXISTS document_keywords (
		document_id BIGINT NOT NULL REFERENCES documents (document_id),
		keyword     TEXT NOT NULL,
		PRIMARY KEY (document_id, keyword)
	)`,
	`CREATE TABLE IF NOT EXISTS document_subjects (
		document_id BIGINT NOT NULL REFERENCES documents (document_id),
		subject     TEXT NOT NULL,
		PRIMARY KEY (document_id, subject)
	)`,
	`CREATE TABLE IF NOT EXISTS document_participants (
		document_id BIGINT NOT NULL REFERENCES documents (document_id),
		participant TEXT NOT NULL,
		PRIMARY KEY (document_id, participant)
	)`,
}

// EnsureSchema creates the documents schema if it does not exist.
func (s *Store) EnsureSchema(ctx context.Context) error {
	for _, stmt := range schemaStatements {
		if _, err := s.Execute(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}
