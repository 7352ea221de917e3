package inspect

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Drasnov/mtga-reader/internal/database"
	"github.com/Drasnov/mtga-reader/internal/database/sqlite"
)

// newFixture writes a throwaway database file and returns its path.
func newFixture(t *testing.T, stmts ...string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "Raw_CardDatabase_12345.mtga")
	db, err := sql.Open("sqlite", path)
	require.NoError(t, err)
	defer db.Close()

	for _, stmt := range stmts {
		_, err := db.Exec(stmt)
		require.NoError(t, err)
	}
	return path
}

func cardSchemaFixture(t *testing.T) string {
	t.Helper()
	return newFixture(t,
		`CREATE TABLE Cards (GrpId INTEGER PRIMARY KEY, TitleId INTEGER NOT NULL, CollectorNumber TEXT DEFAULT 'X')`,
		`CREATE TABLE Abilities (Id INTEGER PRIMARY KEY, GrpId INTEGER REFERENCES Cards(GrpId) ON DELETE CASCADE)`,
		`CREATE INDEX idx_cards_title ON Cards (TitleId)`,
		`CREATE VIEW CardTitles AS SELECT GrpId, TitleId FROM Cards`,
		`INSERT INTO Cards VALUES (70001, 10, '001')`,
		`INSERT INTO Cards VALUES (70002, 11, '002')`,
	)
}

func TestFile_FullReport(t *testing.T) {
	path := cardSchemaFixture(t)

	report, err := File(context.Background(), path, Options{IncludeRowCount: true})
	require.NoError(t, err)

	assert.True(t, filepath.IsAbs(report.File))
	assert.Greater(t, report.SizeBytes, int64(0))
	assert.Greater(t, report.Modified, int64(0))
	_, err = time.Parse(time.RFC3339, report.ModifiedISO)
	assert.NoError(t, err)

	assert.Greater(t, report.Schema.PageSize, int64(0))
	assert.Equal(t, "UTF-8", report.Schema.Encoding)

	require.Len(t, report.Tables, 2)
	assert.Equal(t, "Abilities", report.Tables[0].Name)
	assert.Equal(t, "Cards", report.Tables[1].Name)

	cards := report.Tables[1]
	require.NotNil(t, cards.SQL)
	assert.Contains(t, *cards.SQL, "CREATE TABLE Cards")

	require.Len(t, cards.Columns, 3)
	assert.Equal(t, Column{CID: 0, Name: "GrpId", Type: "INTEGER", PrimaryKeyPosition: 1}, cards.Columns[0])
	assert.Equal(t, "TitleId", cards.Columns[1].Name)
	assert.True(t, cards.Columns[1].NotNull)
	require.NotNil(t, cards.Columns[2].DefaultValue)
	assert.Equal(t, "'X'", *cards.Columns[2].DefaultValue)

	require.Len(t, cards.Indexes, 1)
	idx := cards.Indexes[0]
	assert.Equal(t, "idx_cards_title", idx.Name)
	assert.False(t, idx.Unique)
	assert.Equal(t, "c", idx.Origin)
	assert.False(t, idx.Partial)
	assert.Equal(t, []string{"TitleId"}, idx.Columns)

	abilities := report.Tables[0]
	require.Len(t, abilities.ForeignKeys, 1)
	fk := abilities.ForeignKeys[0]
	assert.Equal(t, "Cards", fk.Table)
	assert.Equal(t, "GrpId", fk.FromColumn)
	require.NotNil(t, fk.ToColumn)
	assert.Equal(t, "GrpId", *fk.ToColumn)
	assert.Equal(t, "CASCADE", fk.OnDelete)
	assert.Equal(t, "NO ACTION", fk.OnUpdate)

	require.NotNil(t, cards.RowCount)
	assert.Equal(t, int64(2), *cards.RowCount)
	require.NotNil(t, abilities.RowCount)
	assert.Equal(t, int64(0), *abilities.RowCount)

	require.Len(t, report.Views, 1)
	assert.Equal(t, "CardTitles", report.Views[0].Name)
	require.NotNil(t, report.Views[0].SQL)
	assert.Contains(t, *report.Views[0].SQL, "CREATE VIEW")
}

func TestFile_RowCountExcluded(t *testing.T) {
	path := cardSchemaFixture(t)

	report, err := File(context.Background(), path, Options{})
	require.NoError(t, err)

	for _, table := range report.Tables {
		assert.Nil(t, table.RowCount)
	}
}

func TestFile_ZeroTablesOneView(t *testing.T) {
	path := newFixture(t, `CREATE VIEW Only AS SELECT 1 AS one`)

	report, err := File(context.Background(), path, Options{IncludeRowCount: true})
	require.NoError(t, err)

	assert.NotNil(t, report.Tables)
	assert.Empty(t, report.Tables)
	require.Len(t, report.Views, 1)
	require.NotNil(t, report.Views[0].SQL)
	assert.Contains(t, *report.Views[0].SQL, "SELECT 1")
}

func TestFile_Missing(t *testing.T) {
	_, err := File(context.Background(), filepath.Join(t.TempDir(), "absent.mtga"), Options{})
	assert.Error(t, err)
}

// failCountReader delegates everything but COUNT queries, which fail.
type failCountReader struct {
	database.Reader
}

func (r failCountReader) QueryRow(ctx context.Context, q string, args ...any) database.Row {
	if strings.HasPrefix(q, "SELECT COUNT") {
		return errRow{}
	}
	return r.Reader.QueryRow(ctx, q, args...)
}

type errRow struct{}

func (errRow) Scan(dest ...any) error { return errors.New("disk I/O error") }

func TestInspector_RowCountBestEffort(t *testing.T) {
	path := cardSchemaFixture(t)

	drv, err := sqlite.Open(context.Background(), path)
	require.NoError(t, err)
	defer drv.Close()

	report, err := NewInspector(failCountReader{Reader: drv}).Report(context.Background(), Options{IncludeRowCount: true})
	require.NoError(t, err)

	for _, table := range report.Tables {
		assert.Nil(t, table.RowCount, "count failure must degrade to absent, not abort")
	}
}

func TestRender(t *testing.T) {
	path := newFixture(t, `CREATE VIEW Only AS SELECT 1 AS one`)

	report, err := File(context.Background(), path, Options{})
	require.NoError(t, err)

	payload, err := Render([]*Report{report}, 2)
	require.NoError(t, err)

	out := string(payload)
	assert.True(t, strings.HasPrefix(out, "["))
	assert.Contains(t, out, `"tables": []`)
	assert.Contains(t, out, `"views"`)
	assert.Contains(t, out, `"page_size"`)
}
