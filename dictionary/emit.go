package dictionary

import (
	"bytes"
	"fmt"
	"go/format"
	"io"
	"strconv"
	"strings"
	"text/template"
)

// WriteGrammar writes the base grammar followed by the keyword rules
// generated from t: unit, word_digit and preposition.
//
// Every alternative is a case-insensitive literal with a boundary guard, so a
// keyword never matches the prefix of a longer word:
//
//    unit = "kilograms"i !WORD
//         / "kg"i !WORD
func WriteGrammar(w io.Writer, base string, t *Tables) error {
	var b strings.Builder
	b.WriteString(strings.TrimRight(base, "\n"))
	b.WriteString("\n\n")
	fmt.Fprintf(&b, "# --- Dictionary rules, generated from the %s dictionary. DO NOT EDIT. ---------\n", t.Language)
	writeKeywordRule(&b, "unit", t.UnitLiterals)
	writeKeywordRule(&b, "word_digit", t.NumberLiterals)
	writeKeywordRule(&b, "preposition", t.PrepositionLiterals)
	_, err := io.WriteString(w, b.String())
	return err
}

func writeKeywordRule(b *strings.Builder, name string, literals []string) {
	b.WriteString("\n")
	if len(literals) == 0 { // a rule which never matches
		fmt.Fprintf(b, "%s = !.* .\n", name)
		return
	}
	pad := strings.Repeat(" ", len(name)+1)
	for i, lit := range literals {
		if i == 0 {
			fmt.Fprintf(b, "%s = %si !WORD\n", name, strconv.Quote(lit))
		} else {
			fmt.Fprintf(b, "%s/ %si !WORD\n", pad, strconv.Quote(lit))
		}
	}
}

// --- Go tables -------------------------------------------------------------

type unitConst struct {
	Ident     string
	Canonical string
}

type exprEntry struct {
	Expr  string
	Ident string
}

type numberEntry struct {
	Expr  string
	Value int
}

type goTables struct {
	Package   string
	Source    string
	Language  string
	Units     []unitConst
	UnitNames string
	UnitIndex []int
	UnitExprs []exprEntry
	Numbers   []numberEntry
}

var templateGoTables = `// Code generated by internal/generator from {{.Source}}. DO NOT EDIT.

package {{.Package}}

import (
	"strconv"

	"golang.org/x/text/language"
)

// Language is the language of the dictionary the unit tables are generated from.
var Language = language.MustParse({{quote .Language}})

// Unit is a canonical unit of measure.
type Unit int

// Units of measure, one per canonical unit of the dictionary.
const (
{{- range $i, $u := .Units}}
	{{$u.Ident}}{{if eq $i 0}} Unit = iota{{end}}
{{- end}}
)

const _Unit_name = {{quote .UnitNames}}

var _Unit_index = [...]uint16{ {{- join .UnitIndex}}}

func (u Unit) String() string {
	if u < 0 || u >= Unit(len(_Unit_index)-1) {
		return "Unit(" + strconv.FormatInt(int64(u), 10) + ")"
	}
	return _Unit_name[_Unit_index[u]:_Unit_index[u+1]]
}

// unitCanonical holds the dictionary name of each unit.
var unitCanonical = [...]string{
{{- range .Units}}
	{{quote .Canonical}},
{{- end}}
}

// unitExprTable maps every unit expression of the dictionary to its unit.
var unitExprTable = []struct {
	expr string
	unit Unit
}{
{{- range .UnitExprs}}
	{ {{- quote .Expr}}, {{.Ident -}} },
{{- end}}
}

// numberExprTable maps every number word of the dictionary to its value.
var numberExprTable = []struct {
	expr  string
	value int
}{
{{- range .Numbers}}
	{ {{- quote .Expr}}, {{.Value -}} },
{{- end}}
}
`

var funcMap = template.FuncMap{
	"quote": strconv.Quote,
	"join": func(ints []int) string {
		s := make([]string, len(ints))
		for i, n := range ints {
			s[i] = strconv.Itoa(n)
		}
		return strings.Join(s, ", ")
	},
}

// WriteGoTables writes a Go source file for package pkg, declaring the Unit
// enumeration with a stringer and the lookup tables of dict. source names the
// dictionary file in the header comment.
func WriteGoTables(w io.Writer, pkg, source string, dict *Dictionary, t *Tables) error {
	data := goTables{Package: pkg, Source: source, Language: t.Language.String()}
	var names strings.Builder
	data.UnitIndex = []int{0}
	for _, u := range dict.Units {
		id, err := Identifier(u.Canonical)
		if err != nil {
			return &Error{Pos: u.Pos, Msg: err.Error()}
		}
		if id == "Unit" || id == "Language" {
			return &Error{Pos: u.Pos, Msg: fmt.Sprintf("unit %s clashes with a declaration of package %s", u.Canonical, pkg)}
		}
		data.Units = append(data.Units, unitConst{Ident: id, Canonical: u.Canonical})
		names.WriteString(id)
		data.UnitIndex = append(data.UnitIndex, names.Len())
		for _, x := range u.Expressions {
			data.UnitExprs = append(data.UnitExprs, exprEntry{Expr: x.Text, Ident: id})
		}
	}
	data.UnitNames = names.String()
	for _, n := range dict.Numbers {
		data.Numbers = append(data.Numbers, numberEntry{Expr: n.Expression.Text, Value: n.Value})
	}
	tmpl, err := template.New("tables").Funcs(funcMap).Parse(templateGoTables)
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return err
	}
	src, err := format.Source(buf.Bytes())
	if err != nil {
		return fmt.Errorf("generated code does not compile: %w", err)
	}
	_, err = w.Write(src)
	return err
}
