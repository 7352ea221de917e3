// Package database defines the read-only access contract shared by the
// schema inspector and the card reader.
//
// All layers above this package talk only to these interfaces — they
// never import the sqlite driver package directly.
package database

import "context"

// Reader is the central contract for all database operations. Every data
// source in this system is a local file queried read-only, so the contract
// carries no write or transaction surface.
type Reader interface {
	// Ping verifies the database file is readable.
	Ping(ctx context.Context) error

	// Close releases the underlying connection.
	Close() error

	// Query executes a SQL statement that returns multiple rows.
	Query(ctx context.Context, sql string, args ...any) (Rows, error)

	// QueryRow executes a SQL statement that returns at most one row.
	QueryRow(ctx context.Context, sql string, args ...any) Row
}

// Rows is an abstraction over a database result set.
// Callers must always call Close() when done, even on error.
type Rows interface {
	// Next advances to the next row.
	// Returns false when no more rows exist or on error.
	Next() bool

	// Scan copies the current row's columns into the provided destinations.
	Scan(dest ...any) error

	// Columns returns the column names of the result set.
	Columns() ([]string, error)

	// Close releases resources held by the result set.
	Close()

	// Err returns any error encountered during iteration.
	Err() error
}

// Row is an abstraction over a single database row.
type Row interface {
	Scan(dest ...any) error
}
