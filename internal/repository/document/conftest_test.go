package document

import (
	"context"
	"strings"
	"testing"

	"github.com/doculex/docgate/internal/db"
	"github.com/doculex/docgate/internal/domain"
)

// mockStore implements the consumer interface for tests and records calls.
type mockStore struct {
	executeFn     func(ctx context.Context, stmt string, args ...any) ([]db.Row, error)
	executeManyFn func(ctx context.Context, stmt string, argRows [][]any) error

	executed []executedCall
	batches  []batchCall
}

type executedCall struct {
	stmt string
	args []any
}

type batchCall struct {
	stmt    string
	argRows [][]any
}

func (m *mockStore) Execute(ctx context.Context, stmt string, args ...any) ([]db.Row, error) {
	m.executed = append(m.executed, executedCall{stmt: stmt, args: args})
	if m.executeFn != nil {
		return m.executeFn(ctx, stmt, args...)
	}
	return nil, nil
}

func (m *mockStore) ExecuteMany(ctx context.Context, stmt string, argRows [][]any) error {
	m.batches = append(m.batches, batchCall{stmt: stmt, argRows: argRows})
	if m.executeManyFn != nil {
		return m.executeManyFn(ctx, stmt, argRows)
	}
	return nil
}

func newTestRepo(t *testing.T) (*Repo, *mockStore) {
	t.Helper()
	ms := &mockStore{}
	repo := New(ms)
	return repo, ms
}

// docRow builds a full documents result row.
func docRow(id int64, title string) db.Row {
	return db.Row{
		"document_id":      id,
		"title":            title,
		"document_source":  "eurlex",
		"fulltext":         "stored fulltext",
		"fulltext_cleaned": "stored cleaned text",
		"abstract":         nil,
		"date":             "17/10/2008",
		"entryintoforce":   nil,
		"fulltextlink":     nil,
		"sourcename":       nil,
		"sourcelink":       nil,
		"status":           nil,
	}
}

// dispatchByTable answers the parent select with parents and each child-set
// select with the given rows.
func dispatchByTable(parents []db.Row, children map[string][]db.Row) func(
	ctx context.Context, stmt string, args ...any,
) ([]db.Row, error) {
	return func(_ context.Context, stmt string, _ ...any) ([]db.Row, error) {
		for _, cs := range childSets {
			if strings.Contains(stmt, cs.table) {
				return children[cs.table], nil
			}
		}
		return parents, nil
	}
}

func testDocument() domain.Document {
	source := "eurlex"
	fulltext := "full text body"
	return domain.Document{
		Title:          "Communication on deforestation",
		DocumentSource: &source,
		Fulltext:       &fulltext,
		Authors:        []string{"A"},
		Areas:          []string{"X"},
	}
}
