// Package inspect walks a SQLite database's catalog via PRAGMA queries and
// produces JSON-ready reports: engine pragmas, per-table columns, indexes,
// foreign keys, optional row counts, and view SQL.
package inspect

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/Drasnov/mtga-reader/internal/database"
	"github.com/Drasnov/mtga-reader/internal/database/sqlite"
	"github.com/Drasnov/mtga-reader/internal/errs"
)

// Options control per-file inspection.
type Options struct {
	// IncludeRowCount adds a best-effort SELECT COUNT(*) per table.
	IncludeRowCount bool
}

// File opens the database file at path read-only and returns its Report.
func File(ctx context.Context, path string, opts Options) (*Report, error) {
	st, err := os.Stat(path)
	if err != nil {
		return nil, errs.Wrap(errs.ErrKindNotFound, "stat "+path, err)
	}

	db, err := sqlite.Open(ctx, path)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	report, err := NewInspector(db).Report(ctx, opts)
	if err != nil {
		return nil, err
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	mod := st.ModTime().UTC()
	report.File = abs
	report.SizeBytes = st.Size()
	report.Modified = mod.Unix()
	report.ModifiedISO = mod.Format(time.RFC3339)
	return report, nil
}

// Inspector walks the catalog of one open database.
type Inspector struct {
	db database.Reader
}

// NewInspector returns an Inspector over db.
func NewInspector(db database.Reader) *Inspector {
	return &Inspector{db: db}
}

// Report assembles pragmas, tables, and views for the whole database.
func (in *Inspector) Report(ctx context.Context, opts Options) (*Report, error) {
	pragmas, err := in.Pragmas(ctx)
	if err != nil {
		return nil, err
	}

	names, err := in.listCatalog(ctx, "table")
	if err != nil {
		return nil, err
	}
	tables := make([]Table, 0, len(names))
	for _, entry := range names {
		table, err := in.Table(ctx, entry.name, entry.sql, opts)
		if err != nil {
			return nil, fmt.Errorf("inspect table %q: %w", entry.name, err)
		}
		tables = append(tables, *table)
	}

	viewNames, err := in.listCatalog(ctx, "view")
	if err != nil {
		return nil, err
	}
	views := make([]View, 0, len(viewNames))
	for _, entry := range viewNames {
		views = append(views, View{Name: entry.name, SQL: entry.sql})
	}

	return &Report{Schema: *pragmas, Tables: tables, Views: views}, nil
}

// Pragmas reads the engine-level configuration values.
func (in *Inspector) Pragmas(ctx context.Context) (*Pragmas, error) {
	var p Pragmas
	for _, read := range []struct {
		pragma string
		dest   any
	}{
		{"page_size", &p.PageSize},
		{"user_version", &p.UserVersion},
		{"application_id", &p.ApplicationID},
		{"auto_vacuum", &p.AutoVacuum},
		{"encoding", &p.Encoding},
	} {
		if err := in.db.QueryRow(ctx, "PRAGMA "+read.pragma).Scan(read.dest); err != nil {
			return nil, fmt.Errorf("pragma %s: %w", read.pragma, err)
		}
	}
	return &p, nil
}

// Table assembles the full description of one table.
func (in *Inspector) Table(ctx context.Context, name string, createSQL *string, opts Options) (*Table, error) {
	columns, err := in.Columns(ctx, name)
	if err != nil {
		return nil, err
	}
	indexes, err := in.Indexes(ctx, name)
	if err != nil {
		return nil, err
	}
	fks, err := in.ForeignKeys(ctx, name)
	if err != nil {
		return nil, err
	}

	table := &Table{
		Name:        name,
		SQL:         createSQL,
		Columns:     columns,
		Indexes:     indexes,
		ForeignKeys: fks,
	}
	if opts.IncludeRowCount {
		table.RowCount = in.RowCount(ctx, name)
	}
	return table, nil
}

// Columns lists a table's column definitions in declaration order.
func (in *Inspector) Columns(ctx context.Context, table string) ([]Column, error) {
	rows, err := in.db.Query(ctx, "PRAGMA table_info("+database.QuoteIdent(table)+")")
	if err != nil {
		return nil, fmt.Errorf("table_info: %w", err)
	}
	defer rows.Close()

	cols := make([]Column, 0)
	for rows.Next() {
		var (
			c       Column
			notNull int64
			dflt    sql.NullString
		)
		if err := rows.Scan(&c.CID, &c.Name, &c.Type, &notNull, &dflt, &c.PrimaryKeyPosition); err != nil {
			return nil, fmt.Errorf("scan column: %w", err)
		}
		c.NotNull = notNull != 0
		if dflt.Valid {
			c.DefaultValue = &dflt.String
		}
		cols = append(cols, c)
	}
	return cols, rows.Err()
}

// Indexes lists a table's indexes with their ordered column names.
func (in *Inspector) Indexes(ctx context.Context, table string) ([]Index, error) {
	rows, err := in.db.Query(ctx, "PRAGMA index_list("+database.QuoteIdent(table)+")")
	if err != nil {
		return nil, fmt.Errorf("index_list: %w", err)
	}

	type indexRow struct {
		name    string
		unique  int64
		origin  string
		partial int64
	}
	listed := make([]indexRow, 0)
	for rows.Next() {
		var (
			seq int64
			ir  indexRow
		)
		if err := rows.Scan(&seq, &ir.name, &ir.unique, &ir.origin, &ir.partial); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan index: %w", err)
		}
		listed = append(listed, ir)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, err
	}
	rows.Close()

	indexes := make([]Index, 0, len(listed))
	for _, ir := range listed {
		columns, err := in.indexColumns(ctx, ir.name)
		if err != nil {
			return nil, err
		}
		indexes = append(indexes, Index{
			Name:    ir.name,
			Unique:  ir.unique != 0,
			Origin:  ir.origin,
			Partial: ir.partial != 0,
			Columns: columns,
		})
	}
	return indexes, nil
}

// indexColumns lists the column names of one index in seqno order. Expression
// or rowid members carry a null name and come back as empty strings.
func (in *Inspector) indexColumns(ctx context.Context, index string) ([]string, error) {
	rows, err := in.db.Query(ctx, "PRAGMA index_info("+database.QuoteIdent(index)+")")
	if err != nil {
		return nil, fmt.Errorf("index_info: %w", err)
	}
	defer rows.Close()

	columns := make([]string, 0)
	for rows.Next() {
		var (
			seqno, cid int64
			name       sql.NullString
		)
		if err := rows.Scan(&seqno, &cid, &name); err != nil {
			return nil, fmt.Errorf("scan index column: %w", err)
		}
		columns = append(columns, name.String)
	}
	return columns, rows.Err()
}

// ForeignKeys lists a table's outgoing foreign-key constraints.
func (in *Inspector) ForeignKeys(ctx context.Context, table string) ([]ForeignKey, error) {
	rows, err := in.db.Query(ctx, "PRAGMA foreign_key_list("+database.QuoteIdent(table)+")")
	if err != nil {
		return nil, fmt.Errorf("foreign_key_list: %w", err)
	}
	defer rows.Close()

	fks := make([]ForeignKey, 0)
	for rows.Next() {
		var (
			fk ForeignKey
			to sql.NullString
		)
		if err := rows.Scan(&fk.ID, &fk.Seq, &fk.Table, &fk.FromColumn, &to, &fk.OnUpdate, &fk.OnDelete, &fk.Match); err != nil {
			return nil, fmt.Errorf("scan foreign key: %w", err)
		}
		if to.Valid {
			fk.ToColumn = &to.String
		}
		fks = append(fks, fk)
	}
	return fks, rows.Err()
}

// RowCount counts a table's rows. Best-effort: any failure yields nil,
// never an error, so a single unreadable table cannot abort the report.
func (in *Inspector) RowCount(ctx context.Context, table string) *int64 {
	var count int64
	q := "SELECT COUNT(*) FROM " + database.QuoteIdent(table)
	if err := in.db.QueryRow(ctx, q).Scan(&count); err != nil {
		return nil
	}
	return &count
}

type catalogEntry struct {
	name string
	sql  *string
}

// listCatalog returns sqlite_master entries of the given type in name order,
// excluding the engine's own sqlite_% tables.
func (in *Inspector) listCatalog(ctx context.Context, typ string) ([]catalogEntry, error) {
	const q = `
		SELECT name, sql
		FROM sqlite_master
		WHERE type = ? AND name NOT LIKE 'sqlite_%'
		ORDER BY name`

	rows, err := in.db.Query(ctx, q, typ)
	if err != nil {
		return nil, fmt.Errorf("list %ss: %w", typ, err)
	}
	defer rows.Close()

	entries := make([]catalogEntry, 0)
	for rows.Next() {
		var (
			name     string
			rawSQL   sql.NullString
			entrySQL *string
		)
		if err := rows.Scan(&name, &rawSQL); err != nil {
			return nil, fmt.Errorf("scan %s name: %w", typ, err)
		}
		if rawSQL.Valid {
			s := rawSQL.String
			entrySQL = &s
		}
		entries = append(entries, catalogEntry{name: name, sql: entrySQL})
	}
	return entries, rows.Err()
}
