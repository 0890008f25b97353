package ingredient

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/kabouzeid/ingredient/peg"
)

// ruleKind is the closed set of rules which may appear in a parse tree of the
// ingredient grammar.
type ruleKind int

const (
	ruleIngredientLine ruleKind = iota
	ruleIngredient
	ruleIngredientAlt
	ruleContainerSize
	ruleAmount
	ruleRange
	ruleConstant
	ruleFloat
	ruleFraction
	ruleSimpleFraction
	ruleVulgarFraction
	ruleInteger
	ruleWordDigit
	ruleUnit
	rulePreposition
	ruleEOI

	ruleInvalid ruleKind = -1
)

var ruleKindNames = [...]string{
	ruleIngredientLine: "ingredient_line",
	ruleIngredient:     "ingredient",
	ruleIngredientAlt:  "ingredient_alt",
	ruleContainerSize:  "container_size",
	ruleAmount:         "amount",
	ruleRange:          "range",
	ruleConstant:       "constant",
	ruleFloat:          "float",
	ruleFraction:       "fraction",
	ruleSimpleFraction: "simple_fraction",
	ruleVulgarFraction: "vulgar_fraction",
	ruleInteger:        "integer",
	ruleWordDigit:      "word_digit",
	ruleUnit:           "unit",
	rulePreposition:    "preposition",
	ruleEOI:            peg.EOI,
}

var ruleKindByName = func() map[string]ruleKind {
	m := make(map[string]ruleKind, len(ruleKindNames))
	for k, name := range ruleKindNames {
		m[name] = ruleKind(k)
	}
	return m
}()

func (k ruleKind) String() string {
	if k < 0 || int(k) >= len(ruleKindNames) {
		return "ruleKind(" + strconv.Itoa(int(k)) + ")"
	}
	return ruleKindNames[k]
}

func kindOf(n *peg.Node) ruleKind {
	if k, ok := ruleKindByName[n.Rule]; ok {
		return k
	}
	return ruleInvalid
}

// checkRuleKinds makes sure that the rules of g which produce nodes are
// exactly the rule kinds the reducer handles.
func checkRuleKinds(g *peg.Grammar) error {
	seen := make(map[string]bool)
	for _, name := range g.NodeRules() {
		if _, ok := ruleKindByName[name]; !ok {
			return fmt.Errorf("grammar %s: rule %s is unknown to the reducer", g.Name(), name)
		}
		seen[name] = true
	}
	for _, name := range ruleKindNames {
		if !seen[name] {
			return fmt.Errorf("grammar %s: rule %s is missing", g.Name(), name)
		}
	}
	if g.Start() != ruleKindNames[ruleIngredientLine] {
		return fmt.Errorf("grammar %s: start rule is %s", g.Name(), g.Start())
	}
	return nil
}

// --- Reducer ---------------------------------------------------------------

func spanOf(n *peg.Node) Span {
	return Span{From: n.Span.From, To: n.Span.To}
}

// reducer turns a parse tree into an Info.
type reducer struct {
	input string
}

func reduce(input string, root *peg.Node) (*Info, error) {
	r := reducer{input: input}
	if kindOf(root) != ruleIngredientLine {
		return nil, r.unexpected(root, "root")
	}
	info := &Info{}
	for _, n := range root.Children {
		var err error
		switch kindOf(n) {
		case ruleAmount:
			if info.Amount != nil {
				return nil, r.unexpected(n, "line with an amount")
			}
			info.Amount, err = r.amountWithSpan(n)
		case ruleContainerSize:
			if info.ContainerAmount != nil {
				return nil, r.unexpected(n, "line with a container size")
			}
			info.ContainerAmount, info.ContainerUnit, err = r.containerSize(n)
		case ruleUnit:
			if info.Unit != nil {
				return nil, r.unexpected(n, "line with a unit")
			}
			info.Unit, err = r.unitWithSpan(n)
		case ruleIngredient, ruleIngredientAlt:
			if info.Ingredient != nil {
				return nil, r.unexpected(n, "line with an ingredient")
			}
			info.Ingredient = &ValueWithSpan[string]{Value: n.Text(input), Span: spanOf(n)}
		case rulePreposition, ruleEOI:
		default:
			return nil, r.unexpected(n, "ingredient line")
		}
		if err != nil {
			return nil, err
		}
	}
	return info, nil
}

func (r reducer) unexpected(n *peg.Node, context string) error {
	return internalError(spanOf(n), "unexpected %s (%s) in %s", n.Rule, kindOf(n), context)
}

// only returns the single child of n, which has to be a node of one of kinds.
func (r reducer) only(n *peg.Node, kinds ...ruleKind) (*peg.Node, ruleKind, error) {
	if len(n.Children) != 1 {
		return nil, ruleInvalid, internalError(spanOf(n), "%s has %d children", n.Rule, len(n.Children))
	}
	ch := n.Children[0]
	k := kindOf(ch)
	for _, want := range kinds {
		if k == want {
			return ch, k, nil
		}
	}
	return nil, ruleInvalid, r.unexpected(ch, n.Rule)
}

func (r reducer) amountWithSpan(n *peg.Node) (*ValueWithSpan[Amount], error) {
	a, err := r.amount(n)
	if err != nil {
		return nil, err
	}
	return &ValueWithSpan[Amount]{Value: a, Span: spanOf(n)}, nil
}

func (r reducer) amount(n *peg.Node) (Amount, error) {
	ch, k, err := r.only(n, ruleRange, ruleConstant)
	if err != nil {
		return nil, err
	}
	if k == ruleConstant {
		c, err := r.constant(ch)
		if err != nil {
			return nil, err
		}
		return ConstantAmount{Value: c}, nil
	}
	if len(ch.Children) != 2 || kindOf(ch.Children[0]) != ruleConstant || kindOf(ch.Children[1]) != ruleConstant {
		return nil, internalError(spanOf(ch), "range needs two constants")
	}
	from, err := r.constant(ch.Children[0])
	if err != nil {
		return nil, err
	}
	to, err := r.constant(ch.Children[1])
	if err != nil {
		return nil, err
	}
	return RangeAmount{From: from, To: to}, nil
}

func (r reducer) constant(n *peg.Node) (Constant, error) {
	ch, k, err := r.only(n, ruleFloat, ruleFraction, ruleInteger, ruleWordDigit)
	if err != nil {
		return nil, err
	}
	switch k {
	case ruleFloat:
		return r.float(ch)
	case ruleFraction:
		return r.fraction(ch)
	case ruleInteger:
		v, err := r.integer(ch)
		if err != nil {
			return nil, err
		}
		return Fraction{Numerator: v, Denominator: 1}, nil
	}
	return r.wordDigit(ch)
}

func (r reducer) float(n *peg.Node) (Constant, error) {
	text := strings.Replace(n.Text(r.input), ",", ".", 1)
	v, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return nil, &ParseError{Span: spanOf(n), Reason: ErrOutOfRange, Err: err}
	}
	return Float(v), nil
}

func (r reducer) integer(n *peg.Node) (uint32, error) {
	v, err := strconv.ParseUint(n.Text(r.input), 10, 32)
	if err != nil {
		return 0, &ParseError{Span: spanOf(n), Reason: ErrOutOfRange, Err: err}
	}
	return uint32(v), nil
}

// fraction handles "1/2", "½", "1 1/2" and "1½". A leading integer w adds w
// times the denominator to the numerator.
func (r reducer) fraction(n *peg.Node) (Constant, error) {
	var whole uint64
	parts := n.Children
	if len(parts) == 2 && kindOf(parts[0]) == ruleInteger {
		w, err := r.integer(parts[0])
		if err != nil {
			return nil, err
		}
		whole = uint64(w)
		parts = parts[1:]
	}
	if len(parts) != 1 {
		return nil, internalError(spanOf(n), "fraction has %d parts", len(n.Children))
	}
	var f Fraction
	var err error
	switch kindOf(parts[0]) {
	case ruleSimpleFraction:
		f, err = r.simpleFraction(parts[0])
	case ruleVulgarFraction:
		f, err = r.vulgarFraction(parts[0])
	default:
		err = r.unexpected(parts[0], "fraction")
	}
	if err != nil {
		return nil, err
	}
	num := whole*uint64(f.Denominator) + uint64(f.Numerator)
	if num > math.MaxUint32 {
		return nil, &ParseError{Span: spanOf(n), Reason: ErrOutOfRange,
			Err: fmt.Errorf("numerator of %s exceeds %d", n.Text(r.input), uint32(math.MaxUint32))}
	}
	f.Numerator = uint32(num)
	return f, nil
}

func (r reducer) simpleFraction(n *peg.Node) (Fraction, error) {
	if len(n.Children) != 2 || kindOf(n.Children[0]) != ruleInteger || kindOf(n.Children[1]) != ruleInteger {
		return Fraction{}, internalError(spanOf(n), "simple fraction needs two integers")
	}
	num, err := r.integer(n.Children[0])
	if err != nil {
		return Fraction{}, err
	}
	den, err := r.integer(n.Children[1])
	if err != nil {
		return Fraction{}, err
	}
	if den == 0 {
		return Fraction{}, internalError(spanOf(n), "zero denominator")
	}
	return Fraction{Numerator: num, Denominator: den}, nil
}

func (r reducer) vulgarFraction(n *peg.Node) (Fraction, error) {
	text := n.Text(r.input)
	g, size := utf8.DecodeRuneInString(text)
	f, ok := vulgarFractions[g]
	if !ok || size != len(text) {
		return Fraction{}, internalError(spanOf(n), "no vulgar fraction %q", text)
	}
	return f, nil
}

func (r reducer) wordDigit(n *peg.Node) (Constant, error) {
	text := n.Text(r.input)
	v, ok := numberByExpr[fold(text)]
	if !ok {
		return nil, internalError(spanOf(n), "number word %q is not in the number table", text)
	}
	if v < 0 || uint64(v) > math.MaxUint32 {
		return nil, &ParseError{Span: spanOf(n), Reason: ErrOutOfRange}
	}
	return Fraction{Numerator: uint32(v), Denominator: 1}, nil
}

func (r reducer) unitWithSpan(n *peg.Node) (*ValueWithSpan[Unit], error) {
	text := n.Text(r.input)
	u, ok := unitByExpr[fold(text)]
	if !ok {
		return nil, internalError(spanOf(n), "unit %q is not in the unit table", text)
	}
	return &ValueWithSpan[Unit]{Value: u, Span: spanOf(n)}, nil
}

func (r reducer) containerSize(n *peg.Node) (*ValueWithSpan[Amount], *ValueWithSpan[Unit], error) {
	if len(n.Children) != 2 || kindOf(n.Children[0]) != ruleAmount || kindOf(n.Children[1]) != ruleUnit {
		return nil, nil, internalError(spanOf(n), "container size needs an amount and a unit")
	}
	a, err := r.amountWithSpan(n.Children[0])
	if err != nil {
		return nil, nil, err
	}
	u, err := r.unitWithSpan(n.Children[1])
	if err != nil {
		return nil, nil, err
	}
	return a, u, nil
}
