package ingredient

import (
	"strconv"

	"golang.org/x/text/cases"
)

// Canonical returns the dictionary name of a unit, e.g. "fluid_ounce".
func (u Unit) Canonical() string {
	if u < 0 || int(u) >= len(unitCanonical) {
		return "Unit(" + strconv.FormatInt(int64(u), 10) + ")"
	}
	return unitCanonical[u]
}

// MarshalText encodes a unit by its name, e.g. "FluidOunce".
func (u Unit) MarshalText() ([]byte, error) {
	if u < 0 || int(u) >= len(unitCanonical) {
		return nil, &InternalError{Msg: "invalid unit " + u.String()}
	}
	return []byte(u.String()), nil
}

// LookupUnit finds the unit for a unit expression of the dictionary, like
// "Tbsp" or "fluid ounces". Case is ignored.
func LookupUnit(expr string) (Unit, bool) {
	setupParser()
	u, ok := unitByExpr[fold(expr)]
	return u, ok
}

// ParseUnit returns the unit with name s, as returned by Unit.String or
// Unit.Canonical.
func ParseUnit(s string) (Unit, bool) {
	for u := range unitCanonical {
		if unitCanonical[u] == s || Unit(u).String() == s {
			return Unit(u), true
		}
	}
	return 0, false
}

func fold(s string) string {
	return cases.Fold().String(s)
}

// buildLookupTables enters the generated expression tables into maps, keyed
// by folded expression.
func buildLookupTables() {
	unitByExpr = make(map[string]Unit, len(unitExprTable))
	for _, e := range unitExprTable {
		unitByExpr[fold(e.expr)] = e.unit
	}
	numberByExpr = make(map[string]int, len(numberExprTable))
	for _, e := range numberExprTable {
		numberByExpr[fold(e.expr)] = e.value
	}
}
