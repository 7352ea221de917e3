package database

import "strings"

// QuoteIdent wraps a SQL identifier in double-quotes (ANSI standard).
// This safely handles reserved words and mixed-case names, and is the only
// sanctioned way to splice a table or column name into SQL text — names
// cannot be parameterized, values always are.
func QuoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}
