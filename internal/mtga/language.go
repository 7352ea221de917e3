package mtga

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/Drasnov/mtga-reader/internal/errs"
)

// locTablePrefix is carried by every per-language localization table.
const locTablePrefix = "Localizations_"

// defaultLanguage is preferred as the fallback when present.
const defaultLanguage = "enUS"

// normalizeLang reduces a language identifier to its comparable form:
// separators stripped, case folded. "en-US", "en_us", and "enUS" all
// normalize to "enus".
func normalizeLang(lang string) string {
	s := strings.ReplaceAll(lang, "-", "")
	s = strings.ReplaceAll(s, "_", "")
	return strings.ToLower(s)
}

// setLanguage discovers the localization tables in the card database and
// selects the active and default tables. The default is the enUS table
// when present, otherwise the first table in catalog order.
func (r *Reader) setLanguage(ctx context.Context, lang string) error {
	if lang == "" {
		lang = defaultLanguage
	}

	rows, err := r.cardDB.Query(ctx,
		`SELECT name FROM sqlite_master WHERE type = 'table' AND name LIKE ?`,
		locTablePrefix+"%")
	if err != nil {
		return fmt.Errorf("list localization tables: %w", err)
	}
	defer rows.Close()

	available := make(map[string]string)
	first := ""
	for rows.Next() {
		var table string
		if err := rows.Scan(&table); err != nil {
			return fmt.Errorf("scan localization table name: %w", err)
		}
		if first == "" {
			first = table
		}
		available[normalizeLang(strings.TrimPrefix(table, locTablePrefix))] = table
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("list localization tables: %w", err)
	}

	if len(available) == 0 {
		return errs.New(errs.ErrKindNotFound, "no localization tables found in CardDatabase")
	}

	key := normalizeLang(lang)
	table, ok := available[key]
	if !ok {
		keys := make([]string, 0, len(available))
		for k := range available {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		return errs.Newf(errs.ErrKindInvalidInput,
			"language %q not available. Options: %s", lang, strings.Join(keys, ", "))
	}

	r.languages = available
	r.activeTable = table
	r.activeKey = key
	if def, ok := available[normalizeLang(defaultLanguage)]; ok {
		r.defaultTable = def
	} else {
		r.defaultTable = first
	}
	r.defaultKey = normalizeLang(strings.TrimPrefix(r.defaultTable, locTablePrefix))
	return nil
}

// ActiveLanguage returns the normalized key of the active language.
func (r *Reader) ActiveLanguage() string {
	return r.activeKey
}

// DefaultLanguage returns the normalized key of the fallback language.
func (r *Reader) DefaultLanguage() string {
	return r.defaultKey
}

// AvailableLanguages lists every discovered language key in sorted order.
func (r *Reader) AvailableLanguages() []string {
	keys := make([]string, 0, len(r.languages))
	for k := range r.languages {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
