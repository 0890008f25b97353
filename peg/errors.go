package peg

import (
	"errors"
	"fmt"
	"strings"
)

// ErrStepLimit is returned (wrapped) when a parse exceeds its step budget.
var ErrStepLimit = errors.New("step limit exceeded")

// SyntaxError is an error in a grammar text, found by Compile.
type SyntaxError struct {
	Grammar string // name given to Compile
	Line    int    // 1-based
	Column  int    // 1-based, counted in code-points
	Msg     string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%s:%d:%d: %s", e.Grammar, e.Line, e.Column, e.Msg)
}

// MatchError is returned by Parse if the input does not match the grammar.
// Pos is the farthest byte position at which the parser failed, Expected lists
// what it was looking for there.
type MatchError struct {
	Grammar  string
	Rule     string // start rule of the parse
	Pos      int
	Expected []string
}

func (e *MatchError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s: input does not match %s at byte %d", e.Grammar, e.Rule, e.Pos)
	if len(e.Expected) > 0 {
		b.WriteString(", expected ")
		b.WriteString(strings.Join(e.Expected, " or "))
	}
	return b.String()
}
