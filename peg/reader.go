package peg

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"
)

// --- Scanner ---------------------------------------------------------------

type tokKind int

const (
	tokEOF tokKind = iota
	tokIdent
	tokLiteral
	tokClass
	tokOp // one of = / ( ) * + ? & ! . @
)

type token struct {
	kind tokKind
	text string // identifier or operator
	expr expr   // for literals and classes
	line int
	col  int
}

type scanner struct {
	grammar string
	src     string
	pos     int
	line    int
	col     int
}

func (s *scanner) errorf(line, col int, format string, args ...interface{}) error {
	return &SyntaxError{Grammar: s.grammar, Line: line, Column: col, Msg: fmt.Sprintf(format, args...)}
}

func (s *scanner) peek() rune {
	if s.pos >= len(s.src) {
		return -1
	}
	r, _ := utf8.DecodeRuneInString(s.src[s.pos:])
	return r
}

func (s *scanner) advance() rune {
	r, size := utf8.DecodeRuneInString(s.src[s.pos:])
	s.pos += size
	if r == '\n' {
		s.line++
		s.col = 1
	} else {
		s.col++
	}
	return r
}

func (s *scanner) skipSpaceAndComments() {
	for s.pos < len(s.src) {
		switch r := s.peek(); {
		case r == '#':
			for s.pos < len(s.src) && s.peek() != '\n' {
				s.advance()
			}
		case r == ' ' || r == '\t' || r == '\n' || r == '\r':
			s.advance()
		default:
			return
		}
	}
}

func isIdentStart(r rune) bool {
	return r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

func isIdentChar(r rune) bool {
	return isIdentStart(r) || (r >= '0' && r <= '9')
}

func (s *scanner) tokens() ([]token, error) {
	var toks []token
	for {
		s.skipSpaceAndComments()
		line, col := s.line, s.col
		if s.pos >= len(s.src) {
			return append(toks, token{kind: tokEOF, line: line, col: col}), nil
		}
		r := s.peek()
		switch {
		case isIdentStart(r):
			start := s.pos
			for isIdentChar(s.peek()) {
				s.advance()
			}
			toks = append(toks, token{kind: tokIdent, text: s.src[start:s.pos], line: line, col: col})
		case r == '"':
			lit, err := s.literal()
			if err != nil {
				return nil, err
			}
			toks = append(toks, token{kind: tokLiteral, expr: lit, line: line, col: col})
		case r == '[':
			cls, err := s.class()
			if err != nil {
				return nil, err
			}
			toks = append(toks, token{kind: tokClass, expr: cls, line: line, col: col})
		case strings.ContainsRune("=/()*+?&!.@", r):
			s.advance()
			toks = append(toks, token{kind: tokOp, text: string(r), line: line, col: col})
		default:
			return nil, s.errorf(line, col, "unexpected character %q", r)
		}
	}
}

// literal scans a double quoted string with Go escapes, optionally followed by
// the flag i.
func (s *scanner) literal() (*literal, error) {
	line, col := s.line, s.col
	start := s.pos
	s.advance() // opening quote
	for {
		switch s.peek() {
		case -1, '\n':
			return nil, s.errorf(line, col, "unterminated string literal")
		case '\\':
			s.advance()
			if s.peek() == -1 {
				return nil, s.errorf(line, col, "unterminated string literal")
			}
			s.advance()
			continue
		case '"':
			s.advance()
		default:
			s.advance()
			continue
		}
		break
	}
	text, err := strconv.Unquote(s.src[start:s.pos])
	if err != nil {
		return nil, s.errorf(line, col, "invalid string literal %s", s.src[start:s.pos])
	}
	lit := &literal{text: text}
	if s.peek() == 'i' {
		s.advance()
		if isIdentChar(s.peek()) {
			return nil, s.errorf(s.line, s.col, "unexpected character %q after string literal", s.peek())
		}
		lit.fold = true
	}
	return lit, nil
}

// class scans a character class like [a-z0-9_] or [^"].
func (s *scanner) class() (*class, error) {
	line, col := s.line, s.col
	s.advance() // [
	cls := &class{}
	if s.peek() == '^' {
		s.advance()
		cls.negated = true
	}
	for s.peek() != ']' {
		lo, err := s.classChar(line, col)
		if err != nil {
			return nil, err
		}
		hi := lo
		if s.peek() == '-' && !strings.HasPrefix(s.src[s.pos:], "-]") {
			s.advance()
			if hi, err = s.classChar(line, col); err != nil {
				return nil, err
			}
			if hi < lo {
				return nil, s.errorf(line, col, "invalid range %q-%q in character class", lo, hi)
			}
		}
		cls.ranges = append(cls.ranges, runeRange{lo, hi})
	}
	s.advance() // ]
	if len(cls.ranges) == 0 {
		return nil, s.errorf(line, col, "empty character class")
	}
	return cls, nil
}

func (s *scanner) classChar(line, col int) (rune, error) {
	switch r := s.peek(); r {
	case -1, '\n':
		return 0, s.errorf(line, col, "unterminated character class")
	case '\\':
		rest := s.src[s.pos:]
		if len(rest) > 1 && strings.ContainsRune(`]-^[`, rune(rest[1])) {
			s.advance()
			return s.advance(), nil
		}
		v, _, tail, err := strconv.UnquoteChar(rest, 0)
		if err != nil {
			return 0, s.errorf(s.line, s.col, "invalid escape in character class")
		}
		for s.pos < len(s.src)-len(tail) {
			s.advance()
		}
		return v, nil
	default:
		return s.advance(), nil
	}
}

// --- Parser ----------------------------------------------------------------

type reader struct {
	scanner *scanner
	toks    []token
	at      int
}

func readGrammar(name, text string) ([]*rule, error) {
	sc := &scanner{grammar: name, src: text, line: 1, col: 1}
	toks, err := sc.tokens()
	if err != nil {
		return nil, err
	}
	rd := &reader{scanner: sc, toks: toks}
	var rules []*rule
	for rd.tok().kind != tokEOF {
		r, err := rd.rule()
		if err != nil {
			return nil, err
		}
		rules = append(rules, r)
	}
	if len(rules) == 0 {
		return nil, &SyntaxError{Grammar: name, Line: 1, Column: 1, Msg: "grammar has no rules"}
	}
	return rules, nil
}

func (rd *reader) tok() token {
	return rd.toks[rd.at]
}

func (rd *reader) isOp(op string) bool {
	t := rd.toks[rd.at]
	return t.kind == tokOp && t.text == op
}

func (rd *reader) errorf(t token, format string, args ...interface{}) error {
	return rd.scanner.errorf(t.line, t.col, format, args...)
}

// atRuleStart reports whether the current token starts a rule definition.
func (rd *reader) atRuleStart() bool {
	if rd.isOp("@") {
		return true
	}
	next := rd.toks[min(rd.at+1, len(rd.toks)-1)]
	return rd.tok().kind == tokIdent && next.kind == tokOp && next.text == "="
}

func (rd *reader) rule() (*rule, error) {
	r := &rule{line: rd.tok().line, col: rd.tok().col}
	if rd.isOp("@") {
		r.atomic = true
		rd.at++
	}
	t := rd.tok()
	if t.kind != tokIdent {
		return nil, rd.errorf(t, "rule name expected")
	}
	if _, ok := builtins[t.text]; ok {
		return nil, rd.errorf(t, "%s is a builtin and cannot be redefined", t.text)
	}
	r.name = t.text
	r.silent = strings.HasPrefix(r.name, "_")
	rd.at++
	if !rd.isOp("=") {
		return nil, rd.errorf(rd.tok(), "'=' expected after rule name %s", r.name)
	}
	rd.at++
	e, err := rd.choice()
	if err != nil {
		return nil, err
	}
	r.expr = e
	return r, nil
}

func (rd *reader) choice() (expr, error) {
	var alts choice
	for {
		e, err := rd.sequence()
		if err != nil {
			return nil, err
		}
		alts = append(alts, e)
		if !rd.isOp("/") {
			break
		}
		rd.at++
	}
	if len(alts) == 1 {
		return alts[0], nil
	}
	return alts, nil
}

func (rd *reader) sequence() (expr, error) {
	var seq sequence
	for {
		t := rd.tok()
		if t.kind == tokEOF || rd.isOp("/") || rd.isOp(")") || rd.atRuleStart() {
			break
		}
		e, err := rd.prefixed()
		if err != nil {
			return nil, err
		}
		seq = append(seq, e)
	}
	if len(seq) == 0 {
		return nil, rd.errorf(rd.tok(), "expression expected")
	}
	if len(seq) == 1 {
		return seq[0], nil
	}
	return seq, nil
}

func (rd *reader) prefixed() (expr, error) {
	if rd.isOp("&") || rd.isOp("!") {
		negate := rd.isOp("!")
		rd.at++
		e, err := rd.suffixed()
		if err != nil {
			return nil, err
		}
		return &predicate{e: e, negate: negate}, nil
	}
	return rd.suffixed()
}

func (rd *reader) suffixed() (expr, error) {
	e, err := rd.primary()
	if err != nil {
		return nil, err
	}
	switch {
	case rd.isOp("*"):
		e = &repeat{e: e, min: 0, max: -1}
	case rd.isOp("+"):
		e = &repeat{e: e, min: 1, max: -1}
	case rd.isOp("?"):
		e = &repeat{e: e, min: 0, max: 1}
	default:
		return e, nil
	}
	rd.at++
	return e, nil
}

func (rd *reader) primary() (expr, error) {
	t := rd.tok()
	switch {
	case t.kind == tokIdent:
		rd.at++
		if b, ok := builtins[t.text]; ok {
			return b, nil
		}
		return &ref{name: t.text, line: t.line, col: t.col}, nil
	case t.kind == tokLiteral, t.kind == tokClass:
		rd.at++
		return t.expr, nil
	case rd.isOp("."):
		rd.at++
		return anyRune{}, nil
	case rd.isOp("("):
		rd.at++
		e, err := rd.choice()
		if err != nil {
			return nil, err
		}
		if !rd.isOp(")") {
			return nil, rd.errorf(rd.tok(), "')' expected")
		}
		rd.at++
		return e, nil
	}
	if t.kind == tokEOF {
		return nil, rd.errorf(t, "unexpected end of grammar")
	}
	return nil, rd.errorf(t, "unexpected %q", t.text)
}
