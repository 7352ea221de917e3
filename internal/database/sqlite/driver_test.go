package sqlite

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Drasnov/mtga-reader/internal/database"
	"github.com/Drasnov/mtga-reader/internal/errs"
)

// newFixture writes a throwaway database file and returns its path.
func newFixture(t *testing.T, stmts ...string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "fixture.mtga")
	db, err := sql.Open("sqlite", path)
	require.NoError(t, err)
	defer db.Close()

	for _, stmt := range stmts {
		_, err := db.Exec(stmt)
		require.NoError(t, err)
	}
	return path
}

func TestOpen_MissingFile(t *testing.T) {
	_, err := Open(context.Background(), filepath.Join(t.TempDir(), "absent.mtga"))
	assert.Error(t, err)
}

func TestDriver_QueryAndScan(t *testing.T) {
	path := newFixture(t,
		`CREATE TABLE Cards (GrpId INTEGER PRIMARY KEY, TitleId INTEGER, Power TEXT)`,
		`INSERT INTO Cards VALUES (70001, 10, '3')`,
		`INSERT INTO Cards VALUES (70002, 11, NULL)`,
	)

	d, err := Open(context.Background(), path)
	require.NoError(t, err)
	defer d.Close()

	assert.Equal(t, path, d.Path())

	rows, err := d.Query(context.Background(), `SELECT * FROM Cards ORDER BY GrpId`)
	require.NoError(t, err)

	records, err := database.ScanRows(rows)
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, int64(70001), records[0]["GrpId"])
	assert.Equal(t, int64(10), records[0]["TitleId"])
	assert.Equal(t, "3", records[0]["Power"])
	assert.Nil(t, records[1]["Power"])
}

func TestDriver_ScanRowsEmpty(t *testing.T) {
	path := newFixture(t, `CREATE TABLE Abilities (Id INTEGER, TextId INTEGER)`)

	d, err := Open(context.Background(), path)
	require.NoError(t, err)
	defer d.Close()

	rows, err := d.Query(context.Background(), `SELECT * FROM Abilities`)
	require.NoError(t, err)

	records, err := database.ScanRows(rows)
	require.NoError(t, err)
	assert.NotNil(t, records)
	assert.Empty(t, records)
}

func TestDriver_QueryRowNotFound(t *testing.T) {
	path := newFixture(t, `CREATE TABLE Enums ("Type" TEXT, Value INTEGER, LocId INTEGER)`)

	d, err := Open(context.Background(), path)
	require.NoError(t, err)
	defer d.Close()

	var v int64
	err = d.QueryRow(context.Background(), `SELECT Value FROM Enums WHERE "Type" = ?`, "CardType").Scan(&v)
	assert.True(t, errs.IsNotFound(err))
}

func TestDriver_QuotedIdentifier(t *testing.T) {
	path := newFixture(t,
		`CREATE TABLE "Localizations_enUS" (LocId INTEGER, Formatted INTEGER, Loc TEXT)`,
		`INSERT INTO "Localizations_enUS" VALUES (10, 1, 'Lightning Bolt')`,
	)

	d, err := Open(context.Background(), path)
	require.NoError(t, err)
	defer d.Close()

	var loc string
	q := `SELECT Loc FROM ` + database.QuoteIdent("Localizations_enUS") + ` WHERE LocId = ?`
	err = d.QueryRow(context.Background(), q, 10).Scan(&loc)
	require.NoError(t, err)
	assert.Equal(t, "Lightning Bolt", loc)
}
