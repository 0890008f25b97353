package peg

import (
	"fmt"
	"strings"

	"github.com/kabouzeid/ingredient/internal/tracing"
	schuko "github.com/npillmayer/schuko/tracing"
)

// tracer traces to ingredient.peg .
func tracer() schuko.Trace {
	return tracing.Select(tracing.PEG)
}

// Grammar is a compiled PEG. It is immutable and safe for concurrent use.
type Grammar struct {
	name   string
	rules  []*rule // in order of definition
	byName map[string]*rule
}

type rule struct {
	id       int
	name     string
	silent   bool // name starts with '_'
	atomic   bool // marked with '@'
	expr     expr
	line     int
	col      int
	nullable bool
}

// Compile reads a grammar text and compiles it. name is used in error messages
// only. Errors in the text are reported as *SyntaxError.
func Compile(name, text string) (*Grammar, error) {
	rules, err := readGrammar(name, text)
	if err != nil {
		return nil, err
	}
	g := &Grammar{name: name, rules: rules, byName: make(map[string]*rule, len(rules))}
	for i, r := range rules {
		if _, dup := g.byName[r.name]; dup {
			return nil, &SyntaxError{Grammar: name, Line: r.line, Column: r.col,
				Msg: fmt.Sprintf("duplicate rule %s", r.name)}
		}
		r.id = i
		g.byName[r.name] = r
	}
	if err := g.resolve(); err != nil {
		return nil, err
	}
	g.computeNullable()
	if err := g.checkLeftRecursion(); err != nil {
		return nil, err
	}
	tracer().Debugf("compiled grammar %s with %d rules", name, len(rules))
	return g, nil
}

// MustCompile is like Compile but panics on error. It is meant for grammars
// which are part of a program.
func MustCompile(name, text string) *Grammar {
	g, err := Compile(name, text)
	if err != nil {
		panic("peg: " + err.Error())
	}
	return g
}

// Name returns the name the grammar has been compiled with.
func (g *Grammar) Name() string {
	return g.name
}

// Start returns the name of the start rule.
func (g *Grammar) Start() string {
	return g.rules[0].name
}

// Rules returns the names of all rules in order of definition.
func (g *Grammar) Rules() []string {
	names := make([]string, len(g.rules))
	for i, r := range g.rules {
		names[i] = r.name
	}
	return names
}

// NodeRules returns the names of all rules which may appear in a parse tree,
// i.e. all rules which are not silent, plus EOI.
func (g *Grammar) NodeRules() []string {
	var names []string
	for _, r := range g.rules {
		if !r.silent {
			names = append(names, r.name)
		}
	}
	return append(names, EOI)
}

// Literals returns the literals of rule in grammar order, ignoring literals in
// look-ahead predicates. For a keyword alternation like
//
//    unit = "kg"i !WORD / "g"i !WORD
//
// this is the list of keywords. It returns nil if there is no such rule.
func (g *Grammar) Literals(rule string) []string {
	r, ok := g.byName[rule]
	if !ok {
		return nil
	}
	return collectLiterals(r.expr, nil)
}

// --- Static checks ---------------------------------------------------------

func (g *Grammar) resolve() error {
	for _, r := range g.rules {
		var err error
		walk(r.expr, func(e expr) {
			ref, ok := e.(*ref)
			if !ok || err != nil {
				return
			}
			if ref.rule = g.byName[ref.name]; ref.rule == nil {
				err = &SyntaxError{Grammar: g.name, Line: ref.line, Column: ref.col,
					Msg: fmt.Sprintf("undefined rule %s", ref.name)}
			}
		})
		if err != nil {
			return err
		}
	}
	return nil
}

func (g *Grammar) computeNullable() {
	for changed := true; changed; {
		changed = false
		for _, r := range g.rules {
			if !r.nullable && nullable(r.expr) {
				r.nullable = true
				changed = true
			}
		}
	}
}

func (g *Grammar) checkLeftRecursion() error {
	const (
		unvisited = iota
		active
		done
	)
	state := make([]int, len(g.rules))
	var path []string
	var visit func(r *rule) error
	visit = func(r *rule) error {
		switch state[r.id] {
		case active:
			return &SyntaxError{Grammar: g.name, Line: r.line, Column: r.col,
				Msg: fmt.Sprintf("left recursion: %s -> %s", strings.Join(path, " -> "), r.name)}
		case done:
			return nil
		}
		state[r.id] = active
		path = append(path, r.name)
		for _, call := range leftCalls(r.expr, nil) {
			if err := visit(call.rule); err != nil {
				return err
			}
		}
		path = path[:len(path)-1]
		state[r.id] = done
		return nil
	}
	for _, r := range g.rules {
		if err := visit(r); err != nil {
			return err
		}
	}
	return nil
}

// walk calls f for e and all of its sub-expressions, without following rule
// references.
func walk(e expr, f func(expr)) {
	f(e)
	switch x := e.(type) {
	case sequence:
		for _, s := range x {
			walk(s, f)
		}
	case choice:
		for _, c := range x {
			walk(c, f)
		}
	case *repeat:
		walk(x.e, f)
	case *predicate:
		walk(x.e, f)
	}
}
