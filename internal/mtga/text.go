package mtga

import (
	"context"
	"strconv"

	"github.com/Drasnov/mtga-reader/internal/database"
	"github.com/Drasnov/mtga-reader/internal/errs"
)

// outcome classifies one resolution attempt. The distinction between a
// missing row and a failed query is collapsed to a fallback value only at
// the flattening boundary, after it has been counted.
type outcome int

const (
	outcomeResolved outcome = iota
	outcomeNotFound
	outcomeError
)

// resolveText resolves a text reference against the active localization
// table, retrying against the default table when the two differ. It never
// returns an error: failures surface as outcomeNotFound or outcomeError
// and feed the soft-failure counters.
func (r *Reader) resolveText(ctx context.Context, id int64) (string, outcome) {
	text, oc := r.lookupLoc(ctx, r.activeTable, id)
	if oc == outcomeResolved {
		return text, oc
	}

	if r.defaultTable != r.activeTable {
		text, fallback := r.lookupLoc(ctx, r.defaultTable, id)
		if fallback == outcomeResolved {
			return text, fallback
		}
		if fallback == outcomeError {
			oc = outcomeError
		}
	}

	switch oc {
	case outcomeError:
		r.stats.textErrors.Add(1)
	default:
		r.stats.textNotFound.Add(1)
	}
	return "", oc
}

// lookupLoc reads one localization row, preferring the formatted variant
// when several rows share the identifier.
func (r *Reader) lookupLoc(ctx context.Context, table string, id int64) (string, outcome) {
	q := `SELECT Loc FROM ` + database.QuoteIdent(table) +
		` WHERE LocId = ? ORDER BY Formatted DESC LIMIT 1`

	var loc string
	err := r.cardDB.QueryRow(ctx, q, id).Scan(&loc)
	switch {
	case err == nil:
		return loc, outcomeResolved
	case errs.IsNotFound(err):
		return "", outcomeNotFound
	default:
		r.log.With().Str("table", table).Int64("loc_id", id).Err(err).Logger().
			Debug("localization lookup failed")
		return "", outcomeError
	}
}

// Translation resolves a text reference to display text. An unresolvable
// reference comes back as the identifier's decimal form, so the value is
// always usable for display (round-trip identity on unresolvable input).
func (r *Reader) Translation(ctx context.Context, id int64) string {
	if text, oc := r.resolveText(ctx, id); oc == outcomeResolved {
		return text
	}
	return strconv.FormatInt(id, 10)
}
