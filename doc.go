/*
Package ingredient parses single recipe ingredient lines into quantity, unit of
measure and ingredient name:

   info, err := ingredient.Parse("1 1/2 kg potatoes")
   // info.Amount:     3/2    at bytes [0:5)
   // info.Unit:       Kilogram at bytes [6:8)
   // info.Ingredient: "potatoes" at bytes [9:17)

Every extracted value carries the span of input bytes it has been recognized
from, so clients may highlight or replace parts of the original line.

Recognized Formats

Lines are recognized in forward order ("2 (14 oz) cans of tomatoes": amount,
optional container size, unit, preposition, ingredient) and in reverse order
("Flour 1 kg": ingredient, amount, unit). If a line contains neither a
quantity nor a unit in one of these positions, the whole line is the
ingredient.

Amounts are integers, decimal numbers ("1.5" or "1,5"), fractions ("1/2",
"1 1/2", "1½"), number words ("a", "one" … "twelve") and ranges of these
("2-3", "2 – 3", "2 to 3"). Fractions are never reduced and ranges are not
checked for order.

Units, number words and prepositions are taken from a dictionary
(dictionaries/en.yml), which is compiled into the grammar and the unit tables
of this package by

   go generate

Keywords are matched case-insensitively and never as a prefix of a longer word:
in "1 lettuce" there is no unit "l".

Language

The dictionary compiled into this package is English. MatchLanguage tells
hosts whether a user's language is served by it. This package never reads
environment variables; package locale matches the user's locale.

Concurrency

Parse may be called concurrently. The grammar is compiled once, on first use,
and is read-only afterwards.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.
*/
package ingredient

import (
	"github.com/kabouzeid/ingredient/internal/tracing"
	schuko "github.com/npillmayer/schuko/tracing"
)

//go:generate go run ./internal/generator -v

// tracer traces with key 'ingredient'.
func tracer() schuko.Trace {
	return tracing.Select(tracing.Ingredient)
}
