package peg

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/unicode/rangetable"
)

// expr is a compiled parsing expression. match tries to match the expression at
// byte position pos of the matcher's input and returns the position after the
// match.
type expr interface {
	match(m *matcher, pos int) (int, bool)
}

// --- Terminals -------------------------------------------------------------

type literal struct {
	text string
	fold bool // case-insensitive
}

func (l *literal) match(m *matcher, pos int) (int, bool) {
	if !l.fold {
		if strings.HasPrefix(m.input[pos:], l.text) {
			return pos + len(l.text), true
		}
		return pos, false
	}
	i := pos
	for _, want := range l.text {
		if i >= len(m.input) {
			return pos, false
		}
		got, size := utf8.DecodeRuneInString(m.input[i:])
		if !equalFold(want, got) {
			return pos, false
		}
		i += size
	}
	return i, true
}

// equalFold compares two code-points under simple Unicode case folding.
func equalFold(a, b rune) bool {
	if a == b {
		return true
	}
	for r := unicode.SimpleFold(a); r != a; r = unicode.SimpleFold(r) {
		if r == b {
			return true
		}
	}
	return false
}

type runeRange struct {
	lo, hi rune
}

type class struct {
	ranges  []runeRange
	negated bool
}

func (c *class) match(m *matcher, pos int) (int, bool) {
	if pos >= len(m.input) {
		return pos, false
	}
	r, size := utf8.DecodeRuneInString(m.input[pos:])
	in := false
	if !(r == utf8.RuneError && size == 1) {
		for _, rr := range c.ranges {
			if r >= rr.lo && r <= rr.hi {
				in = true
				break
			}
		}
	}
	if in != c.negated {
		return pos + size, true
	}
	return pos, false
}

// anyRune matches a single code-point. A byte which is not valid UTF-8 counts
// as one code-point.
type anyRune struct{}

func (anyRune) match(m *matcher, pos int) (int, bool) {
	if pos >= len(m.input) {
		return pos, false
	}
	_, size := utf8.DecodeRuneInString(m.input[pos:])
	return pos + size, true
}

// --- Combinators -----------------------------------------------------------

type sequence []expr

func (s sequence) match(m *matcher, pos int) (int, bool) {
	mark := len(m.out)
	p := pos
	for _, e := range s {
		var ok bool
		if p, ok = e.match(m, p); !ok {
			m.out = m.out[:mark]
			return pos, false
		}
	}
	return p, true
}

type choice []expr

func (c choice) match(m *matcher, pos int) (int, bool) {
	for _, e := range c {
		if p, ok := e.match(m, pos); ok {
			return p, true
		}
	}
	return pos, false
}

// repeat matches e at least min and at most max times (max < 0: unbounded).
// Repetition stops as soon as e matches without consuming input.
type repeat struct {
	e   expr
	min int
	max int
}

func (r *repeat) match(m *matcher, pos int) (int, bool) {
	mark := len(m.out)
	p, n := pos, 0
	for r.max < 0 || n < r.max {
		if !m.step() {
			m.out = m.out[:mark]
			return pos, false
		}
		q, ok := r.e.match(m, p)
		if !ok {
			break
		}
		n++
		if q == p {
			break
		}
		p = q
	}
	if n < r.min {
		m.out = m.out[:mark]
		return pos, false
	}
	return p, true
}

// predicate is a look-ahead: it never consumes input and never produces nodes.
type predicate struct {
	e      expr
	negate bool
}

func (pr *predicate) match(m *matcher, pos int) (int, bool) {
	mark := len(m.out)
	m.lookahead++
	_, ok := pr.e.match(m, pos)
	m.lookahead--
	m.out = m.out[:mark]
	return pos, ok != pr.negate
}

// ref is a reference to a rule, resolved after reading the grammar.
type ref struct {
	name string
	line int
	col  int
	rule *rule
}

func (r *ref) match(m *matcher, pos int) (int, bool) {
	return m.call(r.rule, pos)
}

// --- Builtins --------------------------------------------------------------

type builtin struct {
	name string
	test func(rune) bool
}

func (b *builtin) match(m *matcher, pos int) (int, bool) {
	if pos < len(m.input) {
		r, size := utf8.DecodeRuneInString(m.input[pos:])
		if !(r == utf8.RuneError && size == 1) && b.test(r) {
			return pos + size, true
		}
	}
	return pos, false
}

// eoi matches at the end of input and produces an EOI node.
type eoi struct{}

func (eoi) match(m *matcher, pos int) (int, bool) {
	if pos == len(m.input) {
		m.out = append(m.out, &Node{Rule: EOI, Span: Span{pos, pos}})
		return pos, true
	}
	m.expect(pos, EOI)
	return pos, false
}

// EOI is the rule name of end-of-input nodes.
const EOI = "EOI"

var wordTable = rangetable.Merge(unicode.Letter, unicode.Mark, unicode.Nd, unicode.Pc)

var builtins = map[string]expr{
	EOI:      eoi{},
	"WORD":   &builtin{name: "WORD", test: func(r rune) bool { return unicode.Is(wordTable, r) }},
	"DIGIT":  &builtin{name: "DIGIT", test: func(r rune) bool { return r >= '0' && r <= '9' }},
	"LETTER": &builtin{name: "LETTER", test: unicode.IsLetter},
	"SPACE":  &builtin{name: "SPACE", test: unicode.IsSpace},
}

// --- Static properties -----------------------------------------------------

// nullable reports whether e may succeed without consuming input. Rule
// nullability must have been computed before.
func nullable(e expr) bool {
	switch x := e.(type) {
	case *literal:
		return x.text == ""
	case *class, anyRune, *builtin:
		return false
	case eoi, *predicate:
		return true
	case *repeat:
		return x.min == 0 || nullable(x.e)
	case sequence:
		for _, s := range x {
			if !nullable(s) {
				return false
			}
		}
		return true
	case choice:
		for _, c := range x {
			if nullable(c) {
				return true
			}
		}
		return false
	case *ref:
		return x.rule.nullable
	}
	panic("peg: unknown expression type")
}

// leftCalls appends the rules e may invoke before consuming any input.
func leftCalls(e expr, calls []*ref) []*ref {
	switch x := e.(type) {
	case *ref:
		return append(calls, x)
	case *repeat:
		return leftCalls(x.e, calls)
	case *predicate:
		return leftCalls(x.e, calls)
	case sequence:
		for _, s := range x {
			calls = leftCalls(s, calls)
			if !nullable(s) {
				break
			}
		}
	case choice:
		for _, c := range x {
			calls = leftCalls(c, calls)
		}
	}
	return calls
}

// collectLiterals appends the text of all literals of e outside of look-ahead
// predicates, in grammar order.
func collectLiterals(e expr, lits []string) []string {
	switch x := e.(type) {
	case *literal:
		return append(lits, x.text)
	case *repeat:
		return collectLiterals(x.e, lits)
	case sequence:
		for _, s := range x {
			lits = collectLiterals(s, lits)
		}
	case choice:
		for _, c := range x {
			lits = collectLiterals(c, lits)
		}
	}
	return lits
}
