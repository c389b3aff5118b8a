// Package adapters hides the differences between pgx, database/sql and sqlx behind
// the two calls the journal engine needs.
package adapters

import (
	"context"
	"database/sql"
)

// DBAdapter runs plain SQL strings built by the engine.
type DBAdapter interface {
	Query(ctx context.Context, query string) (DBRows, error)
	Exec(ctx context.Context, query string) (DBResult, error)
}

// DBRows is the subset of a row cursor the engine scans.
type DBRows interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
	Close() error
}

// DBResult reports how many rows an Exec touched.
type DBResult interface {
	RowsAffected() (int64, error)
}

// stdRows wraps *sql.Rows, shared by the sql and sqlx adapters.
type stdRows struct {
	rows *sql.Rows
}

func (s *stdRows) Next() bool {
	return s.rows.Next()
}

func (s *stdRows) Scan(dest ...any) error {
	return s.rows.Scan(dest...)
}

func (s *stdRows) Err() error {
	return s.rows.Err()
}

func (s *stdRows) Close() error {
	return s.rows.Close()
}
