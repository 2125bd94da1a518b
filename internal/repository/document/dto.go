package document

import (
	"fmt"

	"github.com/doculex/docgate/internal/db"
	"github.com/doculex/docgate/internal/domain"
)

// docFromRow maps a documents result row onto the domain type.
func docFromRow(row db.Row) (domain.Document, error) {
	id, err := int64Field(row, "document_id")
	if err != nil {
		return domain.Document{}, err
	}
	title, err := stringField(row, "title")
	if err != nil {
		return domain.Document{}, err
	}

	return domain.Document{
		ID:              id,
		Title:           title,
		DocumentSource:  nullableString(row, "document_source"),
		Fulltext:        nullableString(row, "fulltext"),
		FulltextCleaned: nullableString(row, "fulltext_cleaned"),
		Abstract:        nullableString(row, "abstract"),
		Date:            nullableString(row, "date"),
		EntryIntoForce:  nullableString(row, "entryintoforce"),
		FulltextLink:    nullableString(row, "fulltextlink"),
		SourceName:      nullableString(row, "sourcename"),
		SourceLink:      nullableString(row, "sourcelink"),
		Status:          nullableString(row, "status"),
	}, nil
}

func int64Field(row db.Row, name string) (int64, error) {
	switch v := row[name].(type) {
	case int64:
		return v, nil
	case int32:
		return int64(v), nil
	case int:
		return int64(v), nil
	default:
		return 0, fmt.Errorf("column %s: unexpected type %T", name, row[name])
	}
}

func stringField(row db.Row, name string) (string, error) {
	s, ok := row[name].(string)
	if !ok {
		return "", fmt.Errorf("column %s: unexpected type %T", name, row[name])
	}
	return s, nil
}

func nullableString(row db.Row, name string) *string {
	if s, ok := row[name].(string); ok {
		return &s
	}
	return nil
}
