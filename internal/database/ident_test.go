package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestQuoteIdent(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "plain name",
			in:   "Cards",
			want: `"Cards"`,
		},
		{
			name: "reserved word",
			in:   "Type",
			want: `"Type"`,
		},
		{
			name: "embedded quote escaped",
			in:   `weird"name`,
			want: `"weird""name"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, QuoteIdent(tt.in))
		})
	}
}
