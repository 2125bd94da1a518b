// Package db defines the document store contract. Consumers depend on these
// narrow interfaces; the postgres subpackage provides the implementation.
package db

import "context"

// Row is one result row: column name -> value.
type Row = map[string]any

// Store executes parameterized statements against the relational backend.
type Store interface {
	Pinger
	// Execute runs one statement. Statements that produce column metadata
	// return one Row per result row; DDL/DML without a RETURNING clause
	// return nil rows.
	Execute(ctx context.Context, stmt string, args ...any) ([]Row, error)
	// ExecuteMany runs the statement once per argument row inside a single
	// transaction and commits. An empty argument list executes nothing and
	// succeeds.
	ExecuteMany(ctx context.Context, stmt string, argRows [][]any) error
	Close()
}

// Pinger checks store connectivity.
type Pinger interface {
	Ping(ctx context.Context) error
}
