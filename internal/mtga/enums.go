package mtga

import (
	"context"
	"database/sql"
	"fmt"
)

// loadEnums builds the category -> value -> display-text cache from the
// flat Enums table. Runs once at construction; the underlying tables are
// treated as immutable for the Reader's lifetime, so there is nothing to
// invalidate.
func (r *Reader) loadEnums(ctx context.Context) error {
	rows, err := r.cardDB.Query(ctx, `SELECT "Type" FROM Enums GROUP BY "Type"`)
	if err != nil {
		return fmt.Errorf("list enum types: %w", err)
	}

	var types []string
	for rows.Next() {
		var typ string
		if err := rows.Scan(&typ); err != nil {
			rows.Close()
			return fmt.Errorf("scan enum type: %w", err)
		}
		types = append(types, typ)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return fmt.Errorf("list enum types: %w", err)
	}
	rows.Close()

	enums := make(map[string]map[int64]string, len(types))
	for _, typ := range types {
		values, err := r.loadEnumValues(ctx, typ)
		if err != nil {
			return fmt.Errorf("load enum %q: %w", typ, err)
		}
		enums[typ] = values
	}

	r.enums = enums
	return nil
}

func (r *Reader) loadEnumValues(ctx context.Context, typ string) (map[int64]string, error) {
	rows, err := r.cardDB.Query(ctx, `SELECT Value, LocId FROM Enums WHERE "Type" = ?`, typ)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	values := make(map[int64]string)
	for rows.Next() {
		var (
			value int64
			locID sql.NullInt64
		)
		if err := rows.Scan(&value, &locID); err != nil {
			return nil, err
		}
		if !locID.Valid {
			values[value] = ""
			continue
		}
		values[value] = r.Translation(ctx, locID.Int64)
	}
	return values, rows.Err()
}

// Enums returns the full enum cache. The map is shared and must be
// treated as read-only.
func (r *Reader) Enums() map[string]map[int64]string {
	return r.enums
}

// Enum returns one enum category's value -> display-text mapping.
func (r *Reader) Enum(category string) (map[int64]string, bool) {
	values, ok := r.enums[category]
	return values, ok
}
