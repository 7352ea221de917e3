package mtga

import (
	"context"
	"fmt"
	"strings"

	"github.com/Drasnov/mtga-reader/internal/database"
)

// Record is a flattened card or ability row.
type Record map[string]any

// fieldKind selects the transform applied to a Cards column when rows are
// flattened.
type fieldKind int

const (
	fieldPlain   fieldKind = iota
	fieldText              // resolve through localization, rename without the Id suffix
	fieldAbility           // resolve to an ability sub-record, rename without the Id suffix
	fieldArt               // raw identifier or extracted images, renamed to "art"
)

// fieldBinding pins one Cards column to its flatten-time transform.
type fieldBinding struct {
	column string
	kind   fieldKind
	out    string
}

// classifyColumn applies the binding rules in order. The rule set is the
// single place column names are interpreted; flattening never re-inspects
// names at row time.
func classifyColumn(name string) fieldBinding {
	switch {
	case strings.Contains(name, "TextId") || strings.Contains(name, "TitleId"):
		return fieldBinding{column: name, kind: fieldText, out: renameRef(name)}
	case strings.Contains(name, "AbilityIds"):
		return fieldBinding{column: name, kind: fieldAbility, out: renameRef(name)}
	case strings.Contains(name, "ArtId"):
		return fieldBinding{column: name, kind: fieldArt, out: "art"}
	default:
		return fieldBinding{column: name, kind: fieldPlain, out: name}
	}
}

// renameRef drops every "Id" fragment and lower-cases the remainder, so
// "TitleId" flattens to "title" and "FlavorTextId" to "flavortext".
func renameRef(name string) string {
	return strings.ToLower(strings.ReplaceAll(name, "Id", ""))
}

// bindCardFields computes the binding list from the Cards schema, in
// declaration order. An install without a Cards table binds nothing and
// fails later at query time, matching the fail-on-use behavior of the
// lookups themselves.
func (r *Reader) bindCardFields(ctx context.Context) error {
	rows, err := r.cardDB.Query(ctx, `PRAGMA table_info("Cards")`)
	if err != nil {
		return fmt.Errorf("inspect Cards columns: %w", err)
	}
	defer rows.Close()

	var bindings []fieldBinding
	for rows.Next() {
		var (
			cid, notNull, pk int64
			name, typ        string
			dflt             any
		)
		if err := rows.Scan(&cid, &name, &typ, &notNull, &dflt, &pk); err != nil {
			return fmt.Errorf("scan Cards column: %w", err)
		}
		bindings = append(bindings, classifyColumn(name))
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("inspect Cards columns: %w", err)
	}

	r.cardFields = bindings
	return nil
}

// CardByID fetches one card row by its primary identifier and flattens
// it. A missing identifier yields (nil, nil), never an error.
func (r *Reader) CardByID(ctx context.Context, id int64, includeArt bool) (Record, error) {
	rows, err := r.cardDB.Query(ctx, `SELECT * FROM Cards WHERE GrpId = ? LIMIT 1`, id)
	if err != nil {
		return nil, fmt.Errorf("fetch card %d: %w", id, err)
	}
	records, err := database.ScanRows(rows)
	if err != nil {
		return nil, fmt.Errorf("fetch card %d: %w", id, err)
	}
	if len(records) == 0 {
		return nil, nil
	}
	return r.flattenCard(ctx, records[0], includeArt)
}

// CardsByName resolves a localized display name to card records. The
// pattern keeps SQL LIKE semantics; limit <= 0 means unbounded. Results
// come back in the database's natural order, possibly empty.
func (r *Reader) CardsByName(ctx context.Context, name string, limit int, includeArt bool) ([]Record, error) {
	q := `SELECT GrpId FROM Cards WHERE TitleId IN (SELECT LocId FROM ` +
		database.QuoteIdent(r.activeTable) + ` WHERE Loc LIKE ?)`
	args := []any{name}
	if limit > 0 {
		q += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := r.cardDB.Query(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("find cards named %q: %w", name, err)
	}

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan card id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, fmt.Errorf("find cards named %q: %w", name, err)
	}
	rows.Close()

	out := make([]Record, 0, len(ids))
	for _, id := range ids {
		card, err := r.CardByID(ctx, id, includeArt)
		if err != nil {
			return nil, err
		}
		if card != nil {
			out = append(out, card)
		}
	}
	return out, nil
}

// flattenCard applies the precomputed field bindings to one raw row.
// Binding order follows the Cards column order, so duplicate output
// labels resolve deterministically to the last column.
func (r *Reader) flattenCard(ctx context.Context, row map[string]any, includeArt bool) (Record, error) {
	out := make(Record, len(row))
	for _, b := range r.cardFields {
		val, ok := row[b.column]
		if !ok {
			continue
		}

		switch b.kind {
		case fieldText:
			if val == nil {
				out[b.out] = nil
				break
			}
			id, ok := asInt64(val)
			if !ok {
				out[b.out] = val
				break
			}
			if text, oc := r.resolveText(ctx, id); oc == outcomeResolved {
				out[b.out] = text
			} else {
				out[b.out] = val
			}

		case fieldAbility:
			if val == nil {
				out[b.out] = nil
				break
			}
			id, ok := asInt64(val)
			if !ok {
				out[b.out] = val
				break
			}
			sub, oc := r.resolveAbility(ctx, id)
			switch oc {
			case outcomeResolved:
				out[b.out] = sub
			case outcomeNotFound:
				out[b.out] = nil
			default:
				out[b.out] = val
			}

		case fieldArt:
			if val == nil || !includeArt {
				out[b.out] = val
				break
			}
			id, ok := asInt64(val)
			if !ok {
				out[b.out] = val
				break
			}
			art, err := r.CardArt(id)
			if err != nil {
				return nil, fmt.Errorf("extract art %d: %w", id, err)
			}
			out[b.out] = art

		default:
			out[b.out] = val
		}
	}
	return out, nil
}

// resolveAbility fetches the first Abilities row for id and resolves its
// TextId in place, keeping the original column name. Failures degrade:
// a missing row is outcomeNotFound, a failed query outcomeError.
func (r *Reader) resolveAbility(ctx context.Context, id int64) (Record, outcome) {
	rows, err := r.cardDB.Query(ctx, `SELECT * FROM Abilities WHERE Id = ?`, id)
	if err != nil {
		r.softAbilityError(id, err)
		return nil, outcomeError
	}
	records, err := database.ScanRows(rows)
	if err != nil {
		r.softAbilityError(id, err)
		return nil, outcomeError
	}
	if len(records) == 0 {
		r.stats.abilityMisses.Add(1)
		return nil, outcomeNotFound
	}

	ability := Record(records[0])
	if raw, ok := ability["TextId"]; ok && raw != nil {
		if textID, ok := asInt64(raw); ok {
			if text, oc := r.resolveText(ctx, textID); oc == outcomeResolved {
				ability["TextId"] = text
			}
		}
	}
	return ability, outcomeResolved
}

func (r *Reader) softAbilityError(id int64, err error) {
	r.stats.abilityErrors.Add(1)
	r.log.With().Int64("ability_id", id).Err(err).Logger().Debug("ability lookup failed")
}

// asInt64 narrows a scanned value to an identifier. The driver hands
// INTEGER columns back as int64; anything else is not a reference.
func asInt64(v any) (int64, bool) {
	n, ok := v.(int64)
	return n, ok
}
