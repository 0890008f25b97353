package peg

import (
	"fmt"
)

// DefaultMaxSteps is the step budget of a parse if not configured otherwise.
const DefaultMaxSteps = 1 << 24

// Config holds the limits of a parse.
type Config struct {
	MaxSteps int // upper bound of rule invocations and repetitions per parse
}

// Option configures a single parse.
type Option func(*Config)

// MaxSteps sets the step budget of a parse. n ≤ 0 selects DefaultMaxSteps.
func MaxSteps(n int) Option {
	return func(c *Config) {
		c.MaxSteps = n
	}
}

// Parse matches text against the start rule of the grammar, i.e. its first rule.
// The complete input has to be consumed.
func (g *Grammar) Parse(text string, opts ...Option) (*Node, error) {
	return g.parse(g.rules[0], text, opts)
}

// ParseRule is like Parse, but starts with the rule named rule.
func (g *Grammar) ParseRule(rule, text string, opts ...Option) (*Node, error) {
	r, ok := g.byName[rule]
	if !ok {
		return nil, fmt.Errorf("grammar %s has no rule %q", g.name, rule)
	}
	return g.parse(r, text, opts)
}

func (g *Grammar) parse(start *rule, text string, opts []Option) (*Node, error) {
	conf := Config{MaxSteps: DefaultMaxSteps}
	for _, opt := range opts {
		opt(&conf)
	}
	if conf.MaxSteps <= 0 {
		conf.MaxSteps = DefaultMaxSteps
	}
	m := borrowMatcher(text, conf.MaxSteps)
	defer m.releaseIntoPool()
	end, ok := m.call(start, 0)
	if m.exhausted {
		tracer().Infof("parse of %d bytes with %s exceeded %d steps", len(text), start.name, conf.MaxSteps)
		return nil, fmt.Errorf("grammar %s, rule %s: %w", g.name, start.name, ErrStepLimit)
	}
	if ok && end == len(text) {
		root := m.root(start, end)
		tracer().P("rule", start.name).Debugf("matched %d bytes, %d memo entries", end, len(m.memo))
		return root, nil
	}
	err := &MatchError{Grammar: g.name, Rule: start.name, Pos: m.farthest,
		Expected: append([]string(nil), m.expected...)}
	if ok && end >= m.farthest {
		err.Pos, err.Expected = end, []string{"end of input"}
	}
	tracer().P("rule", start.name).Debugf("no match: %v", err)
	return nil, err
}

// --- Matcher ---------------------------------------------------------------

type memoEntry struct {
	end   int
	ok    bool
	nodes []*Node
}

// matcher holds the state of a single parse. It is never shared between
// goroutines, but is reused by later parses (see pool.go).
type matcher struct {
	input     string
	out       []*Node // nodes produced so far, consumed by enclosing rules
	memo      map[uint64]memoEntry
	steps     int
	exhausted bool
	lookahead int // > 0 while inside a look-ahead predicate
	farthest  int
	expected  []string
	pooled    bool // borrowed from globalMatcherPool
}

func (m *matcher) step() bool {
	if m.steps <= 0 {
		m.exhausted = true
		return false
	}
	m.steps--
	return true
}

// call invokes rule r at pos, memoizing the result.
func (m *matcher) call(r *rule, pos int) (int, bool) {
	key := uint64(r.id)<<32 | uint64(pos)
	if e, found := m.memo[key]; found {
		if e.ok {
			m.out = append(m.out, e.nodes...)
		}
		return e.end, e.ok
	}
	if !m.step() {
		return pos, false
	}
	mark := len(m.out)
	end, ok := r.expr.match(m, pos)
	if m.exhausted {
		m.out = m.out[:mark]
		return pos, false
	}
	var nodes []*Node
	if ok {
		if r.silent {
			nodes = append([]*Node(nil), m.out[mark:]...)
		} else {
			n := &Node{Rule: r.name, Span: Span{pos, end}}
			if !r.atomic && len(m.out) > mark {
				n.Children = append([]*Node(nil), m.out[mark:]...)
			}
			nodes = []*Node{n}
		}
	} else if !r.silent {
		m.expect(pos, r.name)
	}
	m.out = append(m.out[:mark], nodes...)
	m.memo[key] = memoEntry{end: end, ok: ok, nodes: nodes}
	return end, ok
}

// root returns the tree of a successful parse. A silent start rule gets wrapped
// into a node of its own.
func (m *matcher) root(start *rule, end int) *Node {
	if !start.silent && len(m.out) == 1 {
		return m.out[0]
	}
	return &Node{Rule: start.name, Span: Span{0, end}, Children: append([]*Node(nil), m.out...)}
}

// expect records a failure to match what at pos, keeping only the farthest
// position.
func (m *matcher) expect(pos int, what string) {
	if m.lookahead > 0 || pos < m.farthest {
		return
	}
	if pos > m.farthest {
		m.farthest = pos
		m.expected = m.expected[:0]
	}
	for _, x := range m.expected {
		if x == what {
			return
		}
	}
	m.expected = append(m.expected, what)
}
