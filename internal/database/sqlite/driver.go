// Package sqlite implements database.Reader for local SQLite files using
// the pure-Go modernc.org/sqlite driver. Files are always opened read-only:
// no component of this system ever writes to a game database.
package sqlite

import (
	"context"
	"database/sql"

	_ "modernc.org/sqlite"

	"github.com/Drasnov/mtga-reader/internal/database"
)

// Driver is a SQLite implementation of database.Reader backed by database/sql.
// It is safe for concurrent use by multiple goroutines.
type Driver struct {
	db   *sql.DB
	path string
}

// Open opens the database file at path read-only and returns a Driver.
// It calls Ping to validate the file before returning, so a missing or
// corrupt file fails here rather than on the first query.
func Open(ctx context.Context, path string) (*Driver, error) {
	db, err := sql.Open("sqlite", "file:"+path+"?mode=ro")
	if err != nil {
		return nil, mapError(err, "open "+path)
	}

	d := &Driver{db: db, path: path}

	if err := d.Ping(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}

	return d, nil
}

// Path returns the filesystem path the driver was opened with.
func (d *Driver) Path() string {
	return d.path
}

// --- database.Reader implementation ---

// Ping verifies the database file is readable.
func (d *Driver) Ping(ctx context.Context) error {
	if err := d.db.PingContext(ctx); err != nil {
		return mapError(err, "ping "+d.path)
	}
	return nil
}

// Close releases the underlying connection.
func (d *Driver) Close() error {
	return d.db.Close()
}

// Query executes a SQL statement that returns multiple rows.
func (d *Driver) Query(ctx context.Context, query string, args ...any) (database.Rows, error) {
	rows, err := d.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, mapError(err, "query failed")
	}
	return &sqlRows{rows: rows}, nil
}

// QueryRow executes a SQL statement expected to return at most one row.
func (d *Driver) QueryRow(ctx context.Context, query string, args ...any) database.Row {
	return &sqlRow{row: d.db.QueryRowContext(ctx, query, args...)}
}

// --- database/sql type wrappers ---

// sqlRows wraps *sql.Rows to satisfy database.Rows.
type sqlRows struct {
	rows *sql.Rows
}

func (r *sqlRows) Next() bool                 { return r.rows.Next() }
func (r *sqlRows) Scan(dest ...any) error     { return r.rows.Scan(dest...) }
func (r *sqlRows) Columns() ([]string, error) { return r.rows.Columns() }
func (r *sqlRows) Close()                     { _ = r.rows.Close() }
func (r *sqlRows) Err() error                 { return r.rows.Err() }

// sqlRow wraps *sql.Row to satisfy database.Row. Scan errors are mapped
// so callers can distinguish a missing row from a failed query.
type sqlRow struct {
	row *sql.Row
}

func (r *sqlRow) Scan(dest ...any) error {
	if err := r.row.Scan(dest...); err != nil {
		return mapError(err, "scan row")
	}
	return nil
}
