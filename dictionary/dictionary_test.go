package dictionary

import (
	"bytes"
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/kabouzeid/ingredient/internal/tracing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
)

func dictSource(units, numbers, prepositions string) string {
	return "language: en\nunits:\n" + units + "numbers:\n" + numbers + "prepositions: " + prepositions + "\n"
}

func compileSource(src string) (*Tables, error) {
	dict, err := Load(strings.NewReader(src))
	if err != nil {
		return nil, err
	}
	return Compile(dict)
}

func TestLoadEnglish(t *testing.T) {
	teardown := tracing.SetTestingLog(t)
	defer teardown()
	//
	dict, err := LoadFile("../dictionaries/en.yml")
	require.NoError(t, err)
	assert.Equal(t, language.English, dict.Language)
	require.Len(t, dict.Units, 27)
	assert.Equal(t, "kilogram", dict.Units[0].Canonical)
	assert.Equal(t, "to_taste", dict.Units[26].Canonical)
	assert.Equal(t, "kg", dict.Units[0].Expressions[0].Text)
	assert.Len(t, dict.Numbers, 14)
	assert.Equal(t, "a", dict.Numbers[0].Expression.Text)
	assert.Equal(t, 12, dict.Numbers[13].Value)
	require.Len(t, dict.Prepositions, 2)
	assert.Equal(t, "of the", dict.Prepositions[1].Text)
	//
	tables, err := Compile(dict)
	require.NoError(t, err)
	assert.Equal(t, "fluid ounces", tables.UnitLiterals[0])
	assert.Equal(t, "t", tables.UnitLiterals[len(tables.UnitLiterals)-1])
	assert.Equal(t, []string{"of the", "of"}, tables.PrepositionLiterals)
	assert.Len(t, tables.Canonical, 27)
}

func TestLiteralOrder(t *testing.T) {
	tables, err := compileSource(dictSource(
		"  gram: [g, gram, grams]\n  kilogram: [kg, kilogram]\n",
		"  a: 1\n  one: 1\n  an: 1\n",
		"[of, of the]"))
	require.NoError(t, err)
	// longest first, equal lengths in document order
	assert.Equal(t, []string{"kilogram", "grams", "gram", "kg", "g"}, tables.UnitLiterals)
	assert.Equal(t, []string{"one", "an", "a"}, tables.NumberLiterals)
	assert.Equal(t, []string{"of the", "of"}, tables.PrepositionLiterals)
	assert.Equal(t, []string{"gram", "kilogram"}, tables.Canonical)
}

func TestSortLiteralsIsStable(t *testing.T) {
	var exprs []Expression
	for _, s := range []string{"bb", "a", "cc", "d", "ee", "fff"} {
		exprs = append(exprs, Expression{Text: s})
	}
	assert.Equal(t, []string{"fff", "bb", "cc", "ee", "a", "d"}, SortLiterals(exprs))
	// byte length, not code-points
	exprs = []Expression{{Text: "abc"}, {Text: "½½"}}
	assert.Equal(t, []string{"½½", "abc"}, SortLiterals(exprs))
}

func TestLookupIgnoresCase(t *testing.T) {
	dict, err := LoadFile("../dictionaries/en.yml")
	require.NoError(t, err)
	tables, err := Compile(dict)
	require.NoError(t, err)
	for expr, unit := range map[string]string{
		"kg":          "kilogram",
		"KG":          "kilogram",
		"Kilograms":   "kilogram",
		"FL OZ":       "fluid_ounce",
		"Fl. Oz.":     "fluid_ounce",
		"T":           "teaspoon",
		"to Taste":    "to_taste",
		"MILLILITRES": "milliliter",
	} {
		u, ok := tables.LookupUnit(expr)
		assert.True(t, ok, "unit %q should be found", expr)
		assert.Equal(t, unit, u, "unit of %q", expr)
	}
	_, ok := tables.LookupUnit("kgs.")
	assert.False(t, ok)
	n, ok := tables.LookupNumber("TWELVE")
	assert.True(t, ok)
	assert.Equal(t, 12, n)
	n, ok = tables.LookupNumber("An")
	assert.True(t, ok)
	assert.Equal(t, 1, n)
	_, ok = tables.LookupNumber("thirteen")
	assert.False(t, ok)
}

func TestDictionaryFaults(t *testing.T) {
	teardown := tracing.SetTestingLog(t)
	defer teardown()
	//
	tests := []struct {
		name string
		src  string
		line int
		col  int
		msg  string
	}{
		{"empty", "", 1, 1, "empty dictionary"},
		{"not a mapping", "- a\n- b\n", 1, 1, "must be a mapping"},
		{"missing group", "language: en\nunits:\n  gram: [g]\nnumbers:\n  one: 1\n", 1, 1, `missing group "prepositions"`},
		{"unknown group", "language: en\nfoo: 1\n", 2, 1, `unknown group "foo"`},
		{"duplicate group", "language: en\nlanguage: de\n", 2, 1, `duplicate group "language"`},
		{"bad language", "language: not a tag!\nunits:\n  g: [g]\nnumbers:\n  one: 1\nprepositions: []\n", 1, 11, "invalid language tag"},
		{"unit without expressions", dictSource("  gram: []\n", "  one: 1\n", "[]"), 3, 3, "no expressions"},
		{"unit expressions not a list", dictSource("  gram: g\n", "  one: 1\n", "[]"), 3, 9, "list of expressions"},
		{"float number", dictSource("  gram: [g]\n", "  one: 1.5\n", "[]"), 5, 8, "not an integer"},
		{"string number", dictSource("  gram: [g]\n", "  one: one\n", "[]"), 5, 8, "not an integer"},
		{"negative number", dictSource("  gram: [g]\n", "  one: -1\n", "[]"), 5, 8, "negative"},
		{"empty expression", dictSource("  gram: [g]\n", "  one: 1\n", `[of, ""]`), 6, 20, "empty expression"},
		{"white space", dictSource("  gram: [g, \" gr\"]\n", "  one: 1\n", "[]"), 3, 13, "white space"},
		{"duplicate unit expression", dictSource("  gram: [g, G]\n", "  one: 1\n", "[]"), 3, 13, `duplicate expression "G"`},
		{"duplicate across units", dictSource("  gram: [g]\n  kilo: [kg, G]\n", "  one: 1\n", "[]"), 4, 14, `duplicate expression "G"`},
		{"duplicate number", dictSource("  gram: [g]\n", "  one: 1\n  ONE: 1\n", "[]"), 6, 3, `duplicate expression "ONE"`},
		{"duplicate preposition", dictSource("  gram: [g]\n", "  one: 1\n", "[of, Of]"), 6, 20, `duplicate expression "Of"`},
		{"bad identifier", dictSource("  1st: [g]\n", "  one: 1\n", "[]"), 3, 3, "identifier"},
		{"duplicate identifier", dictSource("  to_taste: [tt]\n  to-taste: [to taste]\n", "  one: 1\n", "[]"), 4, 3, "same identifier"},
	}
	for _, tc := range tests {
		_, err := compileSource(tc.src)
		var derr *Error
		if !assert.True(t, errors.As(err, &derr), "%s: should fail with *Error, is %v", tc.name, err) {
			continue
		}
		t.Logf("%s: %v", tc.name, err)
		assert.Equal(t, tc.line, derr.Pos.Line, "%s: line", tc.name)
		assert.Equal(t, tc.col, derr.Pos.Column, "%s: column", tc.name)
		assert.Contains(t, derr.Msg, tc.msg, tc.name)
	}
}

func TestLoadFileSetsFileName(t *testing.T) {
	path := t.TempDir() + "/broken.yml"
	require.NoError(t, os.WriteFile(path, []byte("language: en\n"), 0o644))
	_, err := LoadFile(path)
	require.Error(t, err)
	assert.True(t, strings.HasPrefix(err.Error(), path+":1:1:"), "error is %v", err)
	_, err = LoadFile(t.TempDir() + "/nonexisting.yml")
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestIdentifier(t *testing.T) {
	for canonical, id := range map[string]string{
		"kilogram":    "Kilogram",
		"fluid_ounce": "FluidOunce",
		"to taste":    "ToTaste",
		"fl-oz":       "FlOz",
		"größe":       "Größe",
	} {
		got, err := Identifier(canonical)
		if assert.NoError(t, err) {
			assert.Equal(t, id, got)
		}
	}
	for _, bad := range []string{"", "_", "1st", "kilo.gram"} {
		_, err := Identifier(bad)
		assert.Error(t, err, "identifier for %q", bad)
	}
}

func TestWriteGrammarMatchesArtifact(t *testing.T) {
	dict, err := LoadFile("../dictionaries/en.yml")
	require.NoError(t, err)
	tables, err := Compile(dict)
	require.NoError(t, err)
	base, err := os.ReadFile("../dictionaries/ingredient.peg")
	require.NoError(t, err)
	artifact, err := os.ReadFile("../grammar_en.peg")
	require.NoError(t, err)
	var b bytes.Buffer
	require.NoError(t, WriteGrammar(&b, string(base), tables))
	assert.Equal(t, string(artifact), b.String(), "grammar_en.peg is out of date, run go generate")
}

func TestWriteGrammarRules(t *testing.T) {
	tables, err := compileSource(dictSource("  gram: [g, grams]\n", "  one: 1\n", "[]"))
	require.NoError(t, err)
	var b strings.Builder
	require.NoError(t, WriteGrammar(&b, "start = unit\n\n\n", tables))
	expected := `start = unit

# --- Dictionary rules, generated from the en dictionary. DO NOT EDIT. ---------

unit = "grams"i !WORD
     / "g"i !WORD

word_digit = "one"i !WORD

preposition = !.* .
`
	assert.Equal(t, expected, b.String())
}

func TestWriteGoTables(t *testing.T) {
	tables, err := compileSource(dictSource(
		"  gram: [g, grams]\n  to_taste: [to taste]\n", "  one: 1\n  a: 1\n", "[of]"))
	require.NoError(t, err)
	dict, err := Load(strings.NewReader(dictSource(
		"  gram: [g, grams]\n  to_taste: [to taste]\n", "  one: 1\n  a: 1\n", "[of]")))
	require.NoError(t, err)
	var b strings.Builder
	require.NoError(t, WriteGoTables(&b, "ingredient", "test.yml", dict, tables))
	src := b.String()
	t.Logf("generated:\n%s", src)
	for _, fragment := range []string{
		"// Code generated by internal/generator from test.yml. DO NOT EDIT.\n",
		"package ingredient\n",
		`var Language = language.MustParse("en")`,
		"\tGram Unit = iota\n\tToTaste\n)",
		`const _Unit_name = "GramToTaste"`,
		"var _Unit_index = [...]uint16{0, 4, 11}",
		"\t\"gram\",\n\t\"to_taste\",\n",
		"\t{\"g\", Gram},\n\t{\"grams\", Gram},\n\t{\"to taste\", ToTaste},\n",
		"\t{\"one\", 1},\n\t{\"a\", 1},\n",
	} {
		assert.Contains(t, src, fragment)
	}
}

func TestWriteGoTablesRejectsClashes(t *testing.T) {
	src := dictSource("  unit: [u]\n", "  one: 1\n", "[]")
	dict, err := Load(strings.NewReader(src))
	require.NoError(t, err)
	tables, err := Compile(dict)
	require.NoError(t, err)
	var b strings.Builder
	err = WriteGoTables(&b, "ingredient", "test.yml", dict, tables)
	var derr *Error
	assert.True(t, errors.As(err, &derr))
}
