// Package document implements the document repository over the relational
// store: id-set reads with output sanitization and conflict-skip writes with
// child-set batches.
package document

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/doculex/docgate/internal/db"
	"github.com/doculex/docgate/internal/domain"
)

// store is the consumer interface for documents (ISP).
type store interface {
	Execute(ctx context.Context, stmt string, args ...any) ([]db.Row, error)
	ExecuteMany(ctx context.Context, stmt string, argRows [][]any) error
}

// Repo implements usecase/document.Repository.
type Repo struct {
	store store
}

// New creates a document repository.
func New(s store) *Repo {
	return &Repo{store: s}
}

const selectDocuments = `SELECT * FROM documents WHERE document_id = ANY($1)`

const insertDocument = `INSERT INTO documents
	(title, document_source, fulltext, fulltext_cleaned, abstract,
	 date, entryintoforce, fulltextlink, sourcename, sourcelink, status)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	ON CONFLICT DO NOTHING
	RETURNING document_id`

// childSet describes one of the five multi-valued attribute tables.
type childSet struct {
	table  string
	column string
	values func(d *domain.Document) *[]string
}

var childSets = []childSet{
	{"document_authors", "author", func(d *domain.Document) *[]string { return &d.Authors }},
	{"document_areas", "area", func(d *domain.Document) *[]string { return &d.Areas }},
	{"document_keywords", "keyword", func(d *domain.Document) *[]string { return &d.Keywords }},
	{"document_subjects", "subject", func(d *domain.Document) *[]string { return &d.Subjects }},
	{"document_participants", "participant", func(d *domain.Document) *[]string { return &d.Participants }},
}

// FetchByIDs returns the sanitized documents for the given raw id tokens.
// Ids absent from the store are simply missing from the result. Any malformed
// token or lookup failure yields domain.ErrInvalidDocumentIDs.
func (r *Repo) FetchByIDs(ctx context.Context, ids []string) ([]domain.Document, error) {
	parsed, err := parseIDs(ids)
	if err != nil {
		return nil, err
	}

	rows, err := r.store.Execute(ctx, selectDocuments, parsed)
	if err != nil {
		return nil, fmt.Errorf("fetch documents: %w: %w", domain.ErrInvalidDocumentIDs, err)
	}

	docs := make([]domain.Document, 0, len(rows))
	byID := make(map[int64]*domain.Document, len(rows))
	for _, row := range rows {
		doc, err := docFromRow(row)
		if err != nil {
			return nil, fmt.Errorf("fetch documents: %w", err)
		}
		docs = append(docs, doc.Sanitized())
		byID[doc.ID] = &docs[len(docs)-1]
	}

	if err := r.attachChildSets(ctx, parsed, byID); err != nil {
		return nil, err
	}
	return docs, nil
}

// attachChildSets loads the five attribute tables for the fetched parents.
func (r *Repo) attachChildSets(ctx context.Context, ids []int64, byID map[int64]*domain.Document) error {
	if len(byID) == 0 {
		return nil
	}
	for _, cs := range childSets {
		stmt := fmt.Sprintf(
			`SELECT document_id, %s FROM %s WHERE document_id = ANY($1) ORDER BY %s`,
			cs.column, cs.table, cs.column,
		)
		rows, err := r.store.Execute(ctx, stmt, ids)
		if err != nil {
			return fmt.Errorf("fetch %s: %w: %w", cs.table, domain.ErrInvalidDocumentIDs, err)
		}
		for _, row := range rows {
			id, err := int64Field(row, "document_id")
			if err != nil {
				return fmt.Errorf("fetch %s: %w", cs.table, err)
			}
			value, err := stringField(row, cs.column)
			if err != nil {
				return fmt.Errorf("fetch %s: %w", cs.table, err)
			}
			doc, ok := byID[id]
			if !ok {
				continue
			}
			set := cs.values(doc)
			*set = append(*set, value)
		}
	}
	return nil
}

// Create inserts the scalar row with a conflict-skip policy. When the unique
// key already exists no id is returned and the child sets are not written.
func (r *Repo) Create(ctx context.Context, doc domain.Document) (domain.InsertOutcome, error) {
	rows, err := r.store.Execute(ctx, insertDocument,
		nullIfEmpty(doc.Title),
		doc.DocumentSource,
		doc.Fulltext,
		doc.FulltextCleaned,
		doc.Abstract,
		doc.Date,
		doc.EntryIntoForce,
		doc.FulltextLink,
		doc.SourceName,
		doc.SourceLink,
		doc.Status,
	)
	if err != nil {
		return domain.InsertOutcome{}, fmt.Errorf("insert document: %w", err)
	}
	if len(rows) == 0 {
		return domain.OutcomeSkipped(), nil
	}

	id, err := int64Field(rows[0], "document_id")
	if err != nil {
		return domain.InsertOutcome{}, fmt.Errorf("insert document: %w", err)
	}

	for _, cs := range childSets {
		values := *cs.values(&doc)
		if len(values) == 0 {
			continue
		}
		stmt := fmt.Sprintf(
			`INSERT INTO %s (document_id, %s) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
			cs.table, cs.column,
		)
		argRows := make([][]any, 0, len(values))
		for _, v := range values {
			argRows = append(argRows, []any{id, v})
		}
		if err := r.store.ExecuteMany(ctx, stmt, argRows); err != nil {
			return domain.InsertOutcome{}, fmt.Errorf("insert %s: %w", cs.table, err)
		}
	}

	return domain.OutcomeInserted(id), nil
}

// parseIDs converts raw id tokens into int64s. Any malformed token fails the
// whole lookup, matching the backing statement's all-or-nothing behavior.
func parseIDs(ids []string) ([]int64, error) {
	parsed := make([]int64, 0, len(ids))
	for _, raw := range ids {
		id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("parse document id %q: %w", raw, domain.ErrInvalidDocumentIDs)
		}
		parsed = append(parsed, id)
	}
	return parsed, nil
}

func nullIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
