package dictionary

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/emirpasic/gods/lists/arraylist"
	"github.com/emirpasic/gods/maps/linkedhashmap"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Tables is a compiled dictionary.
//
// Lookup maps are keyed by case-folded expressions. Literal lists are sorted
// by descending byte length, ties keeping document order; this is the order in
// which a PEG alternation has to try them.
type Tables struct {
	Language            language.Tag
	Units               map[string]string // folded expression → canonical unit
	Numbers             map[string]int    // folded expression → value
	UnitLiterals        []string
	NumberLiterals      []string
	PrepositionLiterals []string
	Canonical           []string // canonical units in document order
}

// Fold returns the case-folded form of s, used as key of the lookup maps.
func Fold(s string) string {
	return cases.Fold().String(s)
}

// LookupUnit returns the canonical unit of a unit expression, ignoring case.
func (t *Tables) LookupUnit(expr string) (string, bool) {
	u, ok := t.Units[Fold(expr)]
	return u, ok
}

// LookupNumber returns the value of a number word, ignoring case.
func (t *Tables) LookupNumber(expr string) (int, bool) {
	n, ok := t.Numbers[Fold(expr)]
	return n, ok
}

// Compile checks a dictionary and compiles it into tables. Faults are reported
// as *Error.
func Compile(dict *Dictionary) (*Tables, error) {
	t := &Tables{
		Language: dict.Language,
		Units:    make(map[string]string),
		Numbers:  make(map[string]int),
	}
	idents := linkedhashmap.New() // Go identifier → canonical name
	var units []Expression
	for _, u := range dict.Units {
		id, err := Identifier(u.Canonical)
		if err != nil {
			return nil, &Error{Pos: u.Pos, Msg: err.Error()}
		}
		if other, dup := idents.Get(id); dup {
			return nil, &Error{Pos: u.Pos, Msg: fmt.Sprintf("units %s and %s have the same identifier %s",
				other, u.Canonical, id)}
		}
		idents.Put(id, u.Canonical)
		t.Canonical = append(t.Canonical, u.Canonical)
		for _, x := range u.Expressions {
			if err := addFolded(x, u.Canonical, t.Units); err != nil {
				return nil, err
			}
			units = append(units, x)
		}
	}
	var numbers []Expression
	for _, n := range dict.Numbers {
		if err := addFolded(n.Expression, n.Value, t.Numbers); err != nil {
			return nil, err
		}
		numbers = append(numbers, n.Expression)
	}
	preps := make(map[string]struct{})
	for _, x := range dict.Prepositions {
		if err := addFolded(x, struct{}{}, preps); err != nil {
			return nil, err
		}
	}
	t.UnitLiterals = SortLiterals(units)
	t.NumberLiterals = SortLiterals(numbers)
	t.PrepositionLiterals = SortLiterals(dict.Prepositions)
	tracer().Infof("compiled %s dictionary: %d unit expressions for %d units, %d number words",
		t.Language, len(t.Units), len(t.Canonical), len(t.Numbers))
	return t, nil
}

// addFolded enters x into a lookup table, rejecting expressions which are
// already present up to case.
func addFolded[V any](x Expression, v V, table map[string]V) error {
	if err := checkExpression(x); err != nil {
		return err
	}
	key := Fold(x.Text)
	if _, dup := table[key]; dup {
		return &Error{Pos: x.Pos, Msg: fmt.Sprintf("duplicate expression %q", x.Text)}
	}
	table[key] = v
	return nil
}

// SortLiterals returns the texts of exprs, longest first. Expressions of equal
// length keep their relative order.
func SortLiterals(exprs []Expression) []string {
	type indexed struct {
		text  string
		index int
	}
	list := arraylist.New()
	for i, x := range exprs {
		list.Add(indexed{x.Text, i})
	}
	list.Sort(func(a, b interface{}) int {
		x, y := a.(indexed), b.(indexed)
		if d := len(y.text) - len(x.text); d != 0 {
			return d
		}
		return x.index - y.index
	})
	lits := make([]string, 0, list.Size())
	for _, v := range list.Values() {
		lits = append(lits, v.(indexed).text)
	}
	return lits
}

// Identifier converts a canonical unit name into an exported Go identifier,
// e.g. "to_taste" → "ToTaste".
func Identifier(canonical string) (string, error) {
	title := cases.Title(language.Und)
	var b strings.Builder
	for _, part := range strings.FieldsFunc(canonical, func(r rune) bool {
		return r == '_' || r == '-' || r == ' '
	}) {
		b.WriteString(title.String(part))
	}
	id := b.String()
	if id == "" {
		return "", fmt.Errorf("canonical name %q is not usable as an identifier", canonical)
	}
	for i, r := range id {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) || (i == 0 && !unicode.IsUpper(r)) {
			return "", fmt.Errorf("canonical name %q is not usable as an identifier", canonical)
		}
	}
	return id, nil
}
