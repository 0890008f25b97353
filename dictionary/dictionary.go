/*
Package dictionary compiles a language dictionary of unit, number and
preposition expressions into lookup tables and grammar rules.

A dictionary is a YAML document:

   language: en
   units:
     kilogram: [kg, kilo, kilograms]
     to_taste: [to taste]
   numbers:
     one: 1
   prepositions: [of, of the]

Units map a canonical unit name to its surface expressions, numbers map a
number word to its value. All expressions are matched case-insensitively.

Compilation happens at build time, driven by the generator in
internal/generator. Its output is the grammar file and the Go tables the
parser uses at run time.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.
*/
package dictionary

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/emirpasic/gods/maps/linkedhashmap"
	"github.com/kabouzeid/ingredient/internal/tracing"
	schuko "github.com/npillmayer/schuko/tracing"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

// tracer traces to ingredient.dictionary .
func tracer() schuko.Trace {
	return tracing.Select(tracing.Dictionary)
}

// Position is a location in the dictionary source.
type Position struct {
	Line   int
	Column int
}

// Expression is a surface expression, as found in the dictionary source.
type Expression struct {
	Text string
	Pos  Position
}

// UnitEntry is a canonical unit together with its surface expressions.
type UnitEntry struct {
	Canonical   string
	Expressions []Expression
	Pos         Position
}

// NumberEntry is a number word and its value.
type NumberEntry struct {
	Expression Expression
	Value      int
}

// Dictionary is the content of a dictionary source, in document order.
type Dictionary struct {
	Language     language.Tag
	Units        []UnitEntry
	Numbers      []NumberEntry
	Prepositions []Expression
}

// Error is a fault in a dictionary source. It aborts compilation.
type Error struct {
	File string // may be empty
	Pos  Position
	Msg  string
}

func (e *Error) Error() string {
	file := e.File
	if file == "" {
		file = "dictionary"
	}
	return fmt.Sprintf("%s:%d:%d: %s", file, e.Pos.Line, e.Pos.Column, e.Msg)
}

func errorAt(n *yaml.Node, format string, args ...interface{}) *Error {
	return &Error{Pos: position(n), Msg: fmt.Sprintf(format, args...)}
}

func position(n *yaml.Node) Position {
	return Position{Line: n.Line, Column: n.Column}
}

// --- Loading ---------------------------------------------------------------

// LoadFile reads a dictionary from a YAML file.
func LoadFile(path string) (*Dictionary, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	dict, err := Load(f)
	var derr *Error
	if errors.As(err, &derr) {
		derr.File = path
	}
	return dict, err
}

// Load reads a dictionary from a YAML document. Structural faults are reported
// as *Error.
func Load(r io.Reader) (*Dictionary, error) {
	var doc yaml.Node
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, &Error{Pos: Position{1, 1}, Msg: "empty dictionary"}
		}
		return nil, &Error{Pos: Position{1, 1}, Msg: err.Error()}
	}
	root := &doc
	if root.Kind == yaml.DocumentNode && len(root.Content) > 0 {
		root = root.Content[0]
	}
	if root.Kind != yaml.MappingNode {
		return nil, errorAt(root, "dictionary must be a mapping")
	}
	groups := linkedhashmap.New() // group name → *yaml.Node
	for i := 0; i+1 < len(root.Content); i += 2 {
		key, value := root.Content[i], root.Content[i+1]
		switch key.Value {
		case "language", "units", "numbers", "prepositions":
		default:
			return nil, errorAt(key, "unknown group %q", key.Value)
		}
		if _, dup := groups.Get(key.Value); dup {
			return nil, errorAt(key, "duplicate group %q", key.Value)
		}
		groups.Put(key.Value, value)
	}
	for _, name := range []string{"language", "units", "numbers", "prepositions"} {
		if _, found := groups.Get(name); !found {
			return nil, errorAt(root, "missing group %q", name)
		}
	}
	dict := &Dictionary{}
	var err error
	it := groups.Iterator()
	for it.Next() && err == nil {
		node := it.Value().(*yaml.Node)
		switch it.Key().(string) {
		case "language":
			dict.Language, err = loadLanguage(node)
		case "units":
			dict.Units, err = loadUnits(node)
		case "numbers":
			dict.Numbers, err = loadNumbers(node)
		case "prepositions":
			dict.Prepositions, err = loadExpressions(node)
		}
	}
	if err != nil {
		return nil, err
	}
	tracer().Debugf("loaded %s dictionary: %d units, %d numbers, %d prepositions",
		dict.Language, len(dict.Units), len(dict.Numbers), len(dict.Prepositions))
	return dict, nil
}

func loadLanguage(n *yaml.Node) (language.Tag, error) {
	if n.Kind != yaml.ScalarNode {
		return language.Und, errorAt(n, "language must be a language tag")
	}
	tag, err := language.Parse(n.Value)
	if err != nil {
		return language.Und, errorAt(n, "invalid language tag %q: %v", n.Value, err)
	}
	return tag, nil
}

func loadUnits(n *yaml.Node) ([]UnitEntry, error) {
	if n.Kind != yaml.MappingNode {
		return nil, errorAt(n, "units must be a mapping of canonical names to expressions")
	}
	var units []UnitEntry
	for i := 0; i+1 < len(n.Content); i += 2 {
		key, value := n.Content[i], n.Content[i+1]
		if key.Kind != yaml.ScalarNode || key.Value == "" {
			return nil, errorAt(key, "invalid canonical unit name")
		}
		exprs, err := loadExpressions(value)
		if err != nil {
			return nil, err
		}
		if len(exprs) == 0 {
			return nil, errorAt(key, "unit %s has no expressions", key.Value)
		}
		units = append(units, UnitEntry{Canonical: key.Value, Expressions: exprs, Pos: position(key)})
	}
	return units, nil
}

func loadNumbers(n *yaml.Node) ([]NumberEntry, error) {
	if n.Kind != yaml.MappingNode {
		return nil, errorAt(n, "numbers must be a mapping of expressions to integers")
	}
	var numbers []NumberEntry
	for i := 0; i+1 < len(n.Content); i += 2 {
		key, value := n.Content[i], n.Content[i+1]
		if key.Kind != yaml.ScalarNode {
			return nil, errorAt(key, "number expression must be a string")
		}
		var v int
		if value.Kind != yaml.ScalarNode || value.Tag != "!!int" || value.Decode(&v) != nil {
			return nil, errorAt(value, "value of number %q is not an integer", key.Value)
		}
		if v < 0 {
			return nil, errorAt(value, "value of number %q is negative", key.Value)
		}
		numbers = append(numbers, NumberEntry{
			Expression: Expression{Text: key.Value, Pos: position(key)},
			Value:      v,
		})
	}
	return numbers, nil
}

func loadExpressions(n *yaml.Node) ([]Expression, error) {
	if n.Kind != yaml.SequenceNode {
		return nil, errorAt(n, "expected a list of expressions")
	}
	exprs := make([]Expression, 0, len(n.Content))
	for _, item := range n.Content {
		if item.Kind != yaml.ScalarNode {
			return nil, errorAt(item, "expression must be a string")
		}
		exprs = append(exprs, Expression{Text: item.Value, Pos: position(item)})
	}
	return exprs, nil
}

// checkExpression reports expressions which cannot be matched as a keyword.
func checkExpression(x Expression) error {
	if x.Text == "" {
		return &Error{Pos: x.Pos, Msg: "empty expression"}
	}
	if strings.TrimSpace(x.Text) != x.Text {
		return &Error{Pos: x.Pos, Msg: fmt.Sprintf("expression %q has surrounding white space", x.Text)}
	}
	return nil
}
