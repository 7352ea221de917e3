package mtga

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"github.com/Drasnov/mtga-reader/internal/errs"
)

// cardDatabaseDDL seeds a CardDatabase covering both languages, the enum
// table, and three cards: one fully referenced, one with null references,
// one pointing at a missing ability.
var cardDatabaseDDL = []string{
	`CREATE TABLE Localizations_enUS (LocId INTEGER, Formatted INTEGER, Loc TEXT)`,
	`CREATE TABLE Localizations_jaJP (LocId INTEGER, Formatted INTEGER, Loc TEXT)`,
	`CREATE TABLE Enums ("Type" TEXT, Value INTEGER, LocId INTEGER)`,
	`CREATE TABLE Cards (GrpId INTEGER PRIMARY KEY, TitleId INTEGER, FlavorTextId INTEGER, AbilityIds INTEGER, ArtId INTEGER, Power TEXT)`,
	`CREATE TABLE Abilities (Id INTEGER, GrpId INTEGER, TextId INTEGER)`,
	`INSERT INTO Localizations_enUS VALUES
		(10, 1, 'Lightning Bolt'),
		(10, 0, 'lightning bolt'),
		(11, 0, 'Deal 3 damage to any target.'),
		(12, 0, 'The spark.'),
		(20, 0, 'Giant Growth'),
		(21, 0, 'Shock'),
		(30, 0, 'Creature'),
		(32, 0, 'Red')`,
	`INSERT INTO Localizations_jaJP VALUES (10, 0, '稲妻')`,
	`INSERT INTO Enums VALUES
		('CardType', 1, 30),
		('CardType', 2, 31),
		('Color', 5, 32),
		('Color', 6, NULL)`,
	`INSERT INTO Cards VALUES
		(70001, 10, 12, 100, 5001, '3'),
		(70002, 20, NULL, NULL, NULL, NULL),
		(70003, 21, NULL, 9999, NULL, NULL)`,
	`INSERT INTO Abilities VALUES (100, 70001, 11)`,
}

func createDB(t *testing.T, path string, stmts ...string) {
	t.Helper()

	db, err := sql.Open("sqlite", path)
	require.NoError(t, err)
	for _, stmt := range stmts {
		_, err := db.Exec(stmt)
		require.NoError(t, err)
	}
	require.NoError(t, db.Close())
}

// newGameRootWith lays out an install root with every logical database
// present, seeding the card database from the given statements.
func newGameRootWith(t *testing.T, cardDDL []string) string {
	t.Helper()

	root := t.TempDir()
	rawDir := filepath.Join(root, "MTGA_Data", "Downloads", "Raw")
	require.NoError(t, os.MkdirAll(rawDir, 0o755))
	require.NoError(t, os.MkdirAll(filepath.Join(root, "MTGA_Data", "Downloads", "AssetBundle"), 0o755))

	for _, name := range databaseNames {
		path := filepath.Join(rawDir, "Raw_"+name+"_100.mtga")
		if name == cardDatabase {
			createDB(t, path, cardDDL...)
			continue
		}
		createDB(t, path, `CREATE TABLE Meta (Id INTEGER)`)
	}
	return root
}

func newGameRoot(t *testing.T) string {
	return newGameRootWith(t, cardDatabaseDDL)
}

func newReader(t *testing.T, lang string) *Reader {
	t.Helper()

	r, err := New(context.Background(), Config{Root: newGameRoot(t), Language: lang})
	require.NoError(t, err)
	t.Cleanup(func() { _ = r.Close() })
	return r
}

func TestNew_RootRequired(t *testing.T) {
	_, err := New(context.Background(), Config{})
	require.Error(t, err)
	assert.True(t, errs.IsInvalidInput(err))
}

func TestNew_MissingDatabases(t *testing.T) {
	_, err := New(context.Background(), Config{Root: t.TempDir()})
	require.Error(t, err)
	assert.True(t, errs.IsNotFound(err))
}

func TestNew_SelectsNewestDatabaseFile(t *testing.T) {
	root := newGameRoot(t)
	rawDir := filepath.Join(root, "MTGA_Data", "Downloads", "Raw")
	stale := filepath.Join(rawDir, "Raw_CardDatabase_099.mtga")
	createDB(t, stale, `CREATE TABLE Meta (Id INTEGER)`)

	// Backdated, the stale generation loses to the seeded one.
	old := time.Now().Add(-2 * time.Hour)
	require.NoError(t, os.Chtimes(stale, old, old))
	r, err := New(context.Background(), Config{Root: root})
	require.NoError(t, err)
	require.NoError(t, r.Close())

	// Bumped ahead, the stale schema wins and construction fails on it.
	future := time.Now().Add(2 * time.Hour)
	require.NoError(t, os.Chtimes(stale, future, future))
	_, err = New(context.Background(), Config{Root: root})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no localization tables")
}

func TestReader_Database(t *testing.T) {
	r := newReader(t, "")

	db, ok := r.Database("credits")
	assert.True(t, ok)
	assert.NotNil(t, db)

	_, ok = r.Database("SpellDatabase")
	assert.False(t, ok)
}

func TestReader_StatsAfterConstruction(t *testing.T) {
	r := newReader(t, "")

	// Enum LocId 31 has no localization row; everything else resolves.
	s := r.Stats()
	assert.Equal(t, int64(1), s.TextNotFound)
	assert.Zero(t, s.TextErrors)
	assert.Zero(t, s.AbilityMisses)
	assert.Zero(t, s.AbilityErrors)
}
