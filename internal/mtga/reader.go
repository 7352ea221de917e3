// Package mtga reads Magic: The Gathering Arena's local data files.
//
// A Reader owns one read-only connection per logical database name,
// resolved to the newest Raw_<Name>_*.mtga file under the install root.
// Construction validates the requested display language against the
// localization tables discovered in the card database, preloads the enum
// cache, and binds the card-field transforms. All lookups afterwards are
// plain parameterized queries plus a two-level localization fallback:
// requested language, then default language, then the raw identifier.
package mtga

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync/atomic"

	"github.com/Drasnov/mtga-reader/internal/assets"
	"github.com/Drasnov/mtga-reader/internal/database"
	"github.com/Drasnov/mtga-reader/internal/database/sqlite"
	"github.com/Drasnov/mtga-reader/internal/errs"
	"github.com/Drasnov/mtga-reader/internal/logger"
)

// databaseNames are the logical databases every install ships.
var databaseNames = []string{
	"ArtCropDatabase",
	"CardDatabase",
	"ClientLocalization",
	"altArtCredits",
	"altFlavorTexts",
	"credits",
}

// cardDatabase is the logical name all card, ability, enum, and
// localization queries run against.
const cardDatabase = "CardDatabase"

// Config configures a Reader.
type Config struct {
	// Root is the game install root; databases and bundles live under
	// MTGA_Data/Downloads within it.
	Root string

	// Language is the requested display language, e.g. "en-US".
	// Empty selects enUS.
	Language string

	// Logger receives diagnostics. Nil uses the process default.
	Logger *logger.Logger

	// Unpacker overrides the bundle unpacker. Nil uses the zip reader.
	Unpacker assets.Unpacker
}

// Reader is the owned-resource handle over one install's data files.
// Callers must Close it; connections are held for the Reader's lifetime.
type Reader struct {
	dbs    map[string]database.Reader
	cardDB database.Reader

	activeTable  string
	defaultTable string
	activeKey    string
	defaultKey   string
	languages    map[string]string // normalized key -> table name

	enums      map[string]map[int64]string
	cardFields []fieldBinding

	art   *assets.Extractor
	log   *logger.Logger
	stats counters
}

// New opens every logical database under cfg.Root, resolves the language,
// and preloads the enum cache. On any failure the partially opened handle
// set is closed before returning.
func New(ctx context.Context, cfg Config) (*Reader, error) {
	if cfg.Root == "" {
		return nil, errs.New(errs.ErrKindInvalidInput, "install root directory required")
	}

	log := cfg.Logger
	if log == nil {
		log = logger.Global()
	}

	rawDir := filepath.Join(cfg.Root, "MTGA_Data", "Downloads", "Raw")
	assetsDir := filepath.Join(cfg.Root, "MTGA_Data", "Downloads", "AssetBundle")

	r := &Reader{
		dbs: make(map[string]database.Reader, len(databaseNames)),
		log: log,
	}

	for _, name := range databaseNames {
		path, err := latestRawFile(rawDir, name)
		if err != nil {
			_ = r.Close()
			return nil, err
		}
		db, err := sqlite.Open(ctx, path)
		if err != nil {
			_ = r.Close()
			return nil, fmt.Errorf("open %s: %w", name, err)
		}
		r.dbs[name] = db
		log.With().Str("name", name).Str("path", path).Logger().Debug("database opened")
	}
	r.cardDB = r.dbs[cardDatabase]

	if err := r.setLanguage(ctx, cfg.Language); err != nil {
		_ = r.Close()
		return nil, err
	}
	if err := r.loadEnums(ctx); err != nil {
		_ = r.Close()
		return nil, err
	}
	if err := r.bindCardFields(ctx); err != nil {
		_ = r.Close()
		return nil, err
	}

	r.art = assets.NewExtractor(assetsDir, cfg.Unpacker, log)

	log.With().
		Str("language", r.activeKey).
		Str("table", r.activeTable).
		Int("enums", len(r.enums)).
		Logger().
		Info("reader ready")
	return r, nil
}

// Close releases every open database connection.
func (r *Reader) Close() error {
	var errList []error
	for name, db := range r.dbs {
		if err := db.Close(); err != nil {
			errList = append(errList, fmt.Errorf("close %s: %w", name, err))
		}
	}
	return errors.Join(errList...)
}

// Database exposes one logical database handle, for callers that need to
// query the auxiliary databases (credits, alt flavor texts, …) directly.
func (r *Reader) Database(name string) (database.Reader, bool) {
	db, ok := r.dbs[name]
	return db, ok
}

// CardArt extracts the art images bundled for a card identifier.
func (r *Reader) CardArt(id int64) (assets.ArtResult, error) {
	return r.art.Extract(id)
}

// counters accumulate soft failures. Atomic so a shared Reader can serve
// concurrent HTTP requests without extra locking.
type counters struct {
	textNotFound  atomic.Int64
	textErrors    atomic.Int64
	abilityMisses atomic.Int64
	abilityErrors atomic.Int64
}

// Stats is a point-in-time snapshot of the soft-failure counters. A burst
// of text misses usually means the caller is resolving against the wrong
// language table, which the soft-fail policy would otherwise hide.
type Stats struct {
	TextNotFound  int64 `json:"text_not_found"`
	TextErrors    int64 `json:"text_errors"`
	AbilityMisses int64 `json:"ability_misses"`
	AbilityErrors int64 `json:"ability_errors"`
}

// Stats snapshots the soft-failure counters.
func (r *Reader) Stats() Stats {
	return Stats{
		TextNotFound:  r.stats.textNotFound.Load(),
		TextErrors:    r.stats.textErrors.Load(),
		AbilityMisses: r.stats.abilityMisses.Load(),
		AbilityErrors: r.stats.abilityErrors.Load(),
	}
}
