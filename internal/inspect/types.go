package inspect

// Report describes one database file. Field names match the JSON the
// inspector emits, so the shapes here are the output contract.
type Report struct {
	File        string  `json:"file"`
	SizeBytes   int64   `json:"size_bytes"`
	Modified    int64   `json:"modified"`
	ModifiedISO string  `json:"modified_iso"`
	Schema      Pragmas `json:"schema"`
	Tables      []Table `json:"tables"`
	Views       []View  `json:"views"`
}

// Pragmas holds engine-level configuration read via PRAGMA queries.
type Pragmas struct {
	PageSize      int64  `json:"page_size"`
	UserVersion   int64  `json:"user_version"`
	ApplicationID int64  `json:"application_id"`
	AutoVacuum    int64  `json:"auto_vacuum"`
	Encoding      string `json:"encoding"`
}

// Table describes one user table.
type Table struct {
	Name        string       `json:"name"`
	SQL         *string      `json:"sql"`
	Columns     []Column     `json:"columns"`
	Indexes     []Index      `json:"indexes"`
	ForeignKeys []ForeignKey `json:"foreign_keys"`

	// RowCount is present only when counting was requested and succeeded.
	RowCount *int64 `json:"row_count,omitempty"`
}

// Column mirrors one PRAGMA table_info row.
type Column struct {
	CID                int64   `json:"cid"`
	Name               string  `json:"name"`
	Type               string  `json:"type"`
	NotNull            bool    `json:"not_null"`
	DefaultValue       *string `json:"default_value"`
	PrimaryKeyPosition int64   `json:"primary_key_position"`
}

// Index mirrors one PRAGMA index_list row plus its ordered columns.
type Index struct {
	Name    string   `json:"name"`
	Unique  bool     `json:"unique"`
	Origin  string   `json:"origin"`
	Partial bool     `json:"partial"`
	Columns []string `json:"columns"`
}

// ForeignKey mirrors one PRAGMA foreign_key_list row. ToColumn is nil when
// the constraint references the parent table's implicit primary key.
type ForeignKey struct {
	ID         int64   `json:"id"`
	Seq        int64   `json:"seq"`
	Table      string  `json:"table"`
	FromColumn string  `json:"from_column"`
	ToColumn   *string `json:"to_column"`
	OnUpdate   string  `json:"on_update"`
	OnDelete   string  `json:"on_delete"`
	Match      string  `json:"match"`
}

// View describes one view; only its defining SQL is inspected.
type View struct {
	Name string  `json:"name"`
	SQL  *string `json:"sql"`
}
