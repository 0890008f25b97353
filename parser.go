package ingredient

import (
	_ "embed"
	"errors"
	"fmt"
	"sync"

	"github.com/kabouzeid/ingredient/peg"
)

// MaxLineLength is the maximum length of an ingredient line in bytes. Longer
// lines are rejected with ErrTooLong.
const MaxLineLength = 4096

//go:embed grammar_en.peg
var grammarSource string

var (
	initParser   sync.Once
	grammar      *peg.Grammar
	unitByExpr   map[string]Unit
	numberByExpr map[string]int
)

// setupParser compiles the grammar and builds the lookup tables. It panics if
// the grammar does not compile or does not fit the reducer, as this cannot be
// caused by any input.
func setupParser() {
	initParser.Do(func() {
		grammar = peg.MustCompile("grammar_en.peg", grammarSource)
		if err := checkRuleKinds(grammar); err != nil {
			panic(err.Error())
		}
		buildLookupTables()
		tracer().Infof("ingredient parser set up for language %s: %d rules, %d unit expressions",
			Language, len(grammar.Rules()), len(unitByExpr))
	})
}

// Parse recognizes an ingredient line.
//
// On success every part of the result carries the span of input it has been
// recognized from. Lines without any quantity result in an Info holding just
// the ingredient. On failure no partial result is returned; the error is a
// *ParseError, or an *InternalError if the generated grammar and tables are
// out of sync.
func Parse(text string) (*Info, error) {
	if len(text) > MaxLineLength {
		return nil, &ParseError{Span: Span{MaxLineLength, len(text)}, Reason: ErrTooLong}
	}
	setupParser()
	return parseWith(grammar, text)
}

// ParseOrIngredient is like Parse, but if text cannot be parsed, the whole
// text is returned as the ingredient name.
func ParseOrIngredient(text string) *Info {
	info, err := Parse(text)
	if err != nil {
		tracer().Infof("using line as ingredient name: %v", err)
		return &Info{Ingredient: &ValueWithSpan[string]{Value: text, Span: Span{0, len(text)}}}
	}
	return info
}

func parseWith(g *peg.Grammar, text string) (*Info, error) {
	tree, err := g.Parse(text)
	if err != nil {
		var merr *peg.MatchError
		if errors.As(err, &merr) {
			return nil, &ParseError{Span: Span{merr.Pos, merr.Pos}, Reason: ErrNoMatch, Err: err}
		}
		if errors.Is(err, peg.ErrStepLimit) {
			return nil, &ParseError{Span: Span{0, len(text)}, Reason: ErrTooComplex, Err: err}
		}
		return nil, fmt.Errorf("ingredient: %w", err)
	}
	info, err := reduce(text, tree)
	if err != nil {
		return nil, err
	}
	tracer().P("line", text).Debugf("%s", info)
	return info, nil
}
