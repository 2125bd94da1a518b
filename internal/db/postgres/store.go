// Package postgres implements db.Store over a pgx connection pool. The pool
// hands one connection per in-flight statement, so concurrent requests never
// share a cursor.
package postgres

import (
	"context"
	"fmt"
	"net/url"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/doculex/docgate/internal/db"
)

// Config holds the connection settings for the document store.
type Config struct {
	Host     string
	Port     int
	Database string
	User     string
	Password string
}

// Store is a postgres-backed document store. A Store starts disconnected;
// every operation before a successful Connect fails with db.ErrNotConnected.
type Store struct {
	cfg  Config
	pool *pgxpool.Pool
}

var _ db.Store = (*Store)(nil)

// NewStore creates a disconnected store.
func NewStore(cfg Config) *Store {
	return &Store{cfg: cfg}
}

// Connect establishes the connection pool and verifies it with a ping.
// On any failure the store stays disconnected.
func (s *Store) Connect(ctx context.Context) error {
	dsn := fmt.Sprintf("postgres://%s:%s@%s:%d/%s",
		url.QueryEscape(s.cfg.User),
		url.QueryEscape(s.cfg.Password),
		s.cfg.Host,
		s.cfg.Port,
		url.PathEscape(s.cfg.Database),
	)

	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return &db.Error{Op: db.OpConnect, Err: err}
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return &db.Error{Op: db.OpConnect, Err: err}
	}

	s.pool = pool
	return nil
}

// Connected reports whether Connect succeeded.
func (s *Store) Connected() bool { return s.pool != nil }

// Ping checks store connectivity.
func (s *Store) Ping(ctx context.Context) error {
	if s.pool == nil {
		return &db.Error{Op: db.OpPing, Err: db.ErrNotConnected}
	}
	if err := s.pool.Ping(ctx); err != nil {
		return &db.Error{Op: db.OpPing, Err: err}
	}
	return nil
}

// Execute runs one parameterized statement. Statements with result columns
// return one db.Row per row; others return nil.
func (s *Store) Execute(ctx context.Context, stmt string, args ...any) ([]db.Row, error) {
	if s.pool == nil {
		return nil, &db.Error{Op: db.OpQuery, Err: db.ErrNotConnected}
	}

	rows, err := s.pool.Query(ctx, stmt, args...)
	if err != nil {
		return nil, &db.Error{Op: db.OpQuery, Err: err}
	}
	defer rows.Close()

	out, err := collectRows(rows)
	if err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, &db.Error{Op: db.OpQuery, Err: err}
	}
	return out, nil
}

// ExecuteMany runs the statement once per argument row inside a transaction.
// The empty argument list is a successful no-op.
func (s *Store) ExecuteMany(ctx context.Context, stmt string, argRows [][]any) error {
	if s.pool == nil {
		return &db.Error{Op: db.OpExec, Err: db.ErrNotConnected}
	}
	if len(argRows) == 0 {
		return nil
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return &db.Error{Op: db.OpBegin, Err: err}
	}
	defer func() { _ = tx.Rollback(ctx) }()

	for _, args := range argRows {
		if _, err := tx.Exec(ctx, stmt, args...); err != nil {
			return &db.Error{Op: db.OpExec, Err: err}
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return &db.Error{Op: db.OpCommit, Err: err}
	}
	return nil
}

// Close releases the pool. Idempotent.
func (s *Store) Close() {
	if s.pool != nil {
		s.pool.Close()
		s.pool = nil
	}
}

func collectRows(rows pgx.Rows) ([]db.Row, error) {
	fields := rows.FieldDescriptions()
	if len(fields) == 0 {
		// DDL/DML without RETURNING produces no column metadata. The
		// execution error, if any, only surfaces once the result is drained.
		rows.Close()
		if err := rows.Err(); err != nil {
			return nil, &db.Error{Op: db.OpExec, Err: err}
		}
		return nil, nil
	}

	var out []db.Row
	for rows.Next() {
		values, err := rows.Values()
		if err != nil {
			return nil, &db.Error{Op: db.OpScan, Err: err}
		}
		row := make(db.Row, len(fields))
		for i, fd := range fields {
			row[string(fd.Name)] = values[i]
		}
		out = append(out, row)
	}
	return out, nil
}
