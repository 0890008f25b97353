package ingredient

import (
	"bytes"
	"os"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/kabouzeid/ingredient/dictionary"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// The generated artifacts must be up to date with the dictionary. If these
// tests fail, run go generate.

func loadTables(t *testing.T) (*dictionary.Dictionary, *dictionary.Tables) {
	dict, err := dictionary.LoadFile("dictionaries/en.yml")
	require.NoError(t, err)
	tables, err := dictionary.Compile(dict)
	require.NoError(t, err)
	return dict, tables
}

func TestGeneratedTablesUpToDate(t *testing.T) {
	dict, tables := loadTables(t)
	var b bytes.Buffer
	require.NoError(t, dictionary.WriteGoTables(&b, "ingredient", "dictionaries/en.yml", dict, tables))
	generated, err := os.ReadFile("units_en.go")
	require.NoError(t, err)
	assert.Equal(t, string(generated), b.String(), "units_en.go is out of date")
}

func TestGrammarMatchesTables(t *testing.T) {
	_, tables := loadTables(t)
	setupParser()
	for rule, literals := range map[string][]string{
		"unit":        tables.UnitLiterals,
		"word_digit":  tables.NumberLiterals,
		"preposition": tables.PrepositionLiterals,
	} {
		if diff := cmp.Diff(literals, grammar.Literals(rule)); diff != "" {
			t.Errorf("literals of rule %s differ (-dictionary +grammar):\n%s", rule, diff)
		}
	}
	if diff := cmp.Diff(tables.Canonical, unitCanonical[:]); diff != "" {
		t.Errorf("canonical units differ (-dictionary +generated):\n%s", diff)
	}
	assert.Equal(t, tables.Language, Language)
	assert.Len(t, unitByExpr, len(tables.Units))
	for _, e := range unitExprTable {
		canonical, ok := tables.LookupUnit(e.expr)
		if assert.True(t, ok, e.expr) {
			assert.Equal(t, canonical, e.unit.Canonical(), e.expr)
		}
	}
	assert.Len(t, numberByExpr, len(tables.Numbers))
	for _, e := range numberExprTable {
		v, ok := tables.LookupNumber(e.expr)
		if assert.True(t, ok, e.expr) {
			assert.Equal(t, v, e.value, e.expr)
		}
	}
}
