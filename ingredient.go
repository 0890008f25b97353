package ingredient

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Span is a half-open range [From, To) of byte offsets into a parsed line.
// Offsets are always on code-point boundaries.
type Span struct {
	From int `json:"from"`
	To   int `json:"to"`
}

func (s Span) String() string {
	return fmt.Sprintf("[%d:%d)", s.From, s.To)
}

// --- Constants -------------------------------------------------------------

// Constant is a single numeric value. It is either a Fraction or a Float.
type Constant interface {
	Float64() float64
	fmt.Stringer
	isConstant()
}

// Fraction is an exact value. Integers have denominator 1. Fractions are kept
// as written, e.g. 2/4 is not reduced to 1/2.
type Fraction struct {
	Numerator   uint32
	Denominator uint32
}

// Float is a decimal number, like 1.5 .
type Float float64

func (Fraction) isConstant() {}
func (Float) isConstant()    {}

// Float64 returns the value of f. A zero denominator yields 0.
func (f Fraction) Float64() float64 {
	if f.Denominator == 0 {
		return 0
	}
	return float64(f.Numerator) / float64(f.Denominator)
}

// Float64 returns f as a float64.
func (f Float) Float64() float64 {
	return float64(f)
}

func (f Fraction) String() string {
	if f.Denominator == 1 {
		return strconv.FormatUint(uint64(f.Numerator), 10)
	}
	return fmt.Sprintf("%d/%d", f.Numerator, f.Denominator)
}

func (f Float) String() string {
	return strconv.FormatFloat(float64(f), 'g', -1, 64)
}

// MarshalJSON encodes a fraction as
// {"kind":"fraction","numerator":n,"denominator":d}.
func (f Fraction) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Kind        string `json:"kind"`
		Numerator   uint32 `json:"numerator"`
		Denominator uint32 `json:"denominator"`
	}{"fraction", f.Numerator, f.Denominator})
}

// MarshalJSON encodes a float as {"kind":"float","value":v}.
func (f Float) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Kind  string  `json:"kind"`
		Value float64 `json:"value"`
	}{"float", float64(f)})
}

// --- Amounts ---------------------------------------------------------------

// Amount is the quantity of an ingredient, either a ConstantAmount or a
// RangeAmount.
type Amount interface {
	fmt.Stringer
	isAmount()
}

// ConstantAmount is a single value, like "2" or "1 1/2".
type ConstantAmount struct {
	Value Constant
}

// RangeAmount is a range like "2-3". From is not guaranteed to be less than To.
type RangeAmount struct {
	From Constant
	To   Constant
}

func (ConstantAmount) isAmount() {}
func (RangeAmount) isAmount()    {}

func (a ConstantAmount) String() string {
	return a.Value.String()
}

func (a RangeAmount) String() string {
	return a.From.String() + "-" + a.To.String()
}

// MarshalJSON encodes a constant amount as {"kind":"constant","value":c}.
func (a ConstantAmount) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Kind  string   `json:"kind"`
		Value Constant `json:"value"`
	}{"constant", a.Value})
}

// MarshalJSON encodes a range as {"kind":"range","from":c,"to":c}.
func (a RangeAmount) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Kind string   `json:"kind"`
		From Constant `json:"from"`
		To   Constant `json:"to"`
	}{"range", a.From, a.To})
}

// --- Result ----------------------------------------------------------------

// ValueWithSpan is a value together with the span of input it has been
// recognized from.
type ValueWithSpan[T any] struct {
	Value T    `json:"value"`
	Span  Span `json:"span"`
}

// Info is the result of parsing an ingredient line. Each part is nil if the
// line does not contain it.
//
// ContainerAmount and ContainerUnit describe a container size in forward
// order, like "(14 oz)" in "2 (14 oz) cans tomatoes".
type Info struct {
	Amount          *ValueWithSpan[Amount] `json:"amount,omitempty"`
	ContainerAmount *ValueWithSpan[Amount] `json:"container_amount,omitempty"`
	ContainerUnit   *ValueWithSpan[Unit]   `json:"container_unit,omitempty"`
	Unit            *ValueWithSpan[Unit]   `json:"unit,omitempty"`
	Ingredient      *ValueWithSpan[string] `json:"ingredient,omitempty"`
}

// Spans returns the spans of all parts of info, ordered by position.
func (info *Info) Spans() []Span {
	var spans []Span
	if info.Amount != nil {
		spans = append(spans, info.Amount.Span)
	}
	if info.ContainerAmount != nil {
		spans = append(spans, info.ContainerAmount.Span)
	}
	if info.ContainerUnit != nil {
		spans = append(spans, info.ContainerUnit.Span)
	}
	if info.Unit != nil {
		spans = append(spans, info.Unit.Span)
	}
	if info.Ingredient != nil {
		spans = append(spans, info.Ingredient.Span)
	}
	sort.Slice(spans, func(i, j int) bool { return spans[i].From < spans[j].From })
	return spans
}

func (info *Info) String() string {
	var parts []string
	if info.Amount != nil {
		parts = append(parts, "amount="+info.Amount.Value.String()+info.Amount.Span.String())
	}
	if info.ContainerAmount != nil {
		parts = append(parts, "container="+info.ContainerAmount.Value.String()+info.ContainerAmount.Span.String())
	}
	if info.ContainerUnit != nil {
		parts = append(parts, "container_unit="+info.ContainerUnit.Value.String()+info.ContainerUnit.Span.String())
	}
	if info.Unit != nil {
		parts = append(parts, "unit="+info.Unit.Value.String()+info.Unit.Span.String())
	}
	if info.Ingredient != nil {
		parts = append(parts, fmt.Sprintf("ingredient=%q%s", info.Ingredient.Value, info.Ingredient.Span))
	}
	return "{" + strings.Join(parts, " ") + "}"
}
