package mtga

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Drasnov/mtga-reader/internal/errs"
)

func TestNormalizeLang(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"en-US", "enus"},
		{"en_us", "enus"},
		{"enUS", "enus"},
		{"ENUS", "enus"},
		{"ja_JP", "jajp"},
		{"pt-br", "ptbr"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, normalizeLang(tt.in))
		})
	}
}

func TestNew_LanguageVariantsSelectSameTable(t *testing.T) {
	root := newGameRoot(t)

	for _, lang := range []string{"", "en-US", "en_us", "enUS", "ENUS"} {
		t.Run("lang="+lang, func(t *testing.T) {
			r, err := New(context.Background(), Config{Root: root, Language: lang})
			require.NoError(t, err)
			defer r.Close()

			assert.Equal(t, "enus", r.ActiveLanguage())
			assert.Equal(t, "enus", r.DefaultLanguage())
		})
	}
}

func TestNew_UnknownLanguage(t *testing.T) {
	_, err := New(context.Background(), Config{Root: newGameRoot(t), Language: "xx"})
	require.Error(t, err)
	assert.True(t, errs.IsInvalidInput(err))
	assert.Contains(t, err.Error(), "enus")
	assert.Contains(t, err.Error(), "jajp")
}

func TestNew_NoLocalizationTables(t *testing.T) {
	root := newGameRootWith(t, []string{
		`CREATE TABLE Enums ("Type" TEXT, Value INTEGER, LocId INTEGER)`,
		`CREATE TABLE Cards (GrpId INTEGER PRIMARY KEY, TitleId INTEGER)`,
	})

	_, err := New(context.Background(), Config{Root: root})
	require.Error(t, err)
	assert.True(t, errs.IsNotFound(err))
	assert.Contains(t, err.Error(), "no localization tables found in CardDatabase")
}

func TestNew_DefaultFallsBackToFirstTable(t *testing.T) {
	root := newGameRootWith(t, []string{
		`CREATE TABLE Localizations_jaJP (LocId INTEGER, Formatted INTEGER, Loc TEXT)`,
		`CREATE TABLE Enums ("Type" TEXT, Value INTEGER, LocId INTEGER)`,
		`CREATE TABLE Cards (GrpId INTEGER PRIMARY KEY, TitleId INTEGER)`,
		`CREATE TABLE Abilities (Id INTEGER, GrpId INTEGER, TextId INTEGER)`,
	})

	r, err := New(context.Background(), Config{Root: root, Language: "ja-JP"})
	require.NoError(t, err)
	defer r.Close()

	assert.Equal(t, "jajp", r.ActiveLanguage())
	assert.Equal(t, "jajp", r.DefaultLanguage())
}

func TestReader_AvailableLanguages(t *testing.T) {
	r := newReader(t, "ja-JP")

	assert.Equal(t, []string{"enus", "jajp"}, r.AvailableLanguages())
}
