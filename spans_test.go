package ingredient

import (
	"encoding/json"
	"strings"
	"sync"
	"testing"
	"unicode/utf8"

	"github.com/google/go-cmp/cmp"
	"github.com/kabouzeid/ingredient/internal/tracing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var corpus = []string{
	"1 1/2 kg potatoes",
	"2-3 lb potatoes",
	"1½ cups flour",
	"400 ml milk",
	"1 lettuce",
	"8 tomatoes",
	"olive oil",
	"kg",
	"salt & pepper to taste",
	"Flour 1 kg",
	"Flour (2 kg) 1 kg",
	"Sugar 2 to 3 cups",
	"2 (14 oz) cans tomatoes",
	"a pinch of salt",
	"2 cups of the flour",
	"2 – 3 eggs",
	"  3 eggs  ",
	"3 fl. oz. rum",
	"½ tsp salt",
	"Crème fraîche 200 g",
	"200 g crème fraîche",
	"1 ¾ l Brühe",
	"of the lemon",
	"1/0 cup",
	"twelve eggs",
	"",
}

// checkSpans tests the properties every successful parse has to have.
func checkSpans(t testing.TB, text string, info *Info) {
	t.Helper()
	spans := info.Spans()
	for i, s := range spans {
		if s.From < 0 || s.From > s.To || s.To > len(text) {
			t.Fatalf("%q: span %s out of bounds", text, s)
		}
		if i > 0 && spans[i-1].To > s.From {
			t.Fatalf("%q: spans %s and %s overlap", text, spans[i-1], s)
		}
		if utf8.ValidString(text) {
			if s.From < len(text) && !utf8.RuneStart(text[s.From]) {
				t.Fatalf("%q: span %s does not start at a code point", text, s)
			}
			if s.To < len(text) && !utf8.RuneStart(text[s.To]) {
				t.Fatalf("%q: span %s does not end at a code point", text, s)
			}
		}
	}
	if info.Ingredient != nil {
		v, s := info.Ingredient.Value, info.Ingredient.Span
		if v != text[s.From:s.To] {
			t.Fatalf("%q: ingredient %q is not the text of span %s", text, v, s)
		}
		if v == "" || strings.TrimSpace(v) != v {
			t.Fatalf("%q: ingredient %q is empty or has surrounding space", text, v)
		}
	}
	for _, u := range []*ValueWithSpan[Unit]{info.Unit, info.ContainerUnit} {
		if u == nil {
			continue
		}
		if found, ok := LookupUnit(text[u.Span.From:u.Span.To]); !ok || found != u.Value {
			t.Fatalf("%q: text of span %s is not unit %s", text, u.Span, u.Value)
		}
	}
}

func TestSpanProperties(t *testing.T) {
	teardown := tracing.SetTestingLog(t)
	defer teardown()
	//
	for _, line := range corpus {
		info, err := Parse(line)
		require.NoError(t, err, line)
		checkSpans(t, line, info)
		// amounts parse to themselves
		for _, a := range []*ValueWithSpan[Amount]{info.Amount, info.ContainerAmount} {
			if a == nil {
				continue
			}
			sub := line[a.Span.From:a.Span.To]
			again, err := Parse(sub)
			require.NoError(t, err, sub)
			require.NotNil(t, again.Amount, sub)
			if diff := cmp.Diff(a.Value, again.Amount.Value); diff != "" {
				t.Errorf("%q: amount %q parses differently (-want +got):\n%s", line, sub, diff)
			}
		}
	}
}

// Keyword literals must not match a prefix of a longer word.
func TestKeywordBoundaries(t *testing.T) {
	setupParser()
	for _, rule := range []string{"unit", "word_digit", "preposition"} {
		literals := grammar.Literals(rule)
		require.NotEmpty(t, literals, rule)
		for _, lit := range literals {
			line := lit + "xyz"
			info, err := Parse(line)
			require.NoError(t, err, line)
			switch rule {
			case "unit":
				assert.Nil(t, info.Unit, line)
			case "word_digit":
				assert.Nil(t, info.Amount, line)
			}
			if info.Ingredient != nil && info.Ingredient.Span.From > 0 {
				assert.Equal(t, byte(' '), line[info.Ingredient.Span.From-1],
					"%q: ingredient should start at a word", line)
			}
			line = "1 " + lit + "xyz"
			info, err = Parse(line)
			require.NoError(t, err, line)
			assert.Nil(t, info.Unit, line)
			if assert.NotNil(t, info.Amount, line) {
				assert.Equal(t, Span{0, 1}, info.Amount.Span, line)
			}
		}
	}
}

func TestJSON(t *testing.T) {
	for _, tc := range []struct{ line, json string }{
		{"1 1/2 kg potatoes", `{"amount":{"value":{"kind":"constant","value":{"kind":"fraction","numerator":3,"denominator":2}},"span":{"from":0,"to":5}},` +
			`"unit":{"value":"Kilogram","span":{"from":6,"to":8}},"ingredient":{"value":"potatoes","span":{"from":9,"to":17}}}`},
		{"1.5-2 cups", `{"amount":{"value":{"kind":"range","from":{"kind":"float","value":1.5},"to":{"kind":"fraction","numerator":2,"denominator":1}},"span":{"from":0,"to":5}},` +
			`"unit":{"value":"Cup","span":{"from":6,"to":10}}}`},
		{"2 (14 oz) cans", `{"amount":{"value":{"kind":"constant","value":{"kind":"fraction","numerator":2,"denominator":1}},"span":{"from":0,"to":1}},` +
			`"container_amount":{"value":{"kind":"constant","value":{"kind":"fraction","numerator":14,"denominator":1}},"span":{"from":3,"to":5}},` +
			`"container_unit":{"value":"Ounce","span":{"from":6,"to":8}},"unit":{"value":"Can","span":{"from":10,"to":14}}}`},
		{"", `{}`},
	} {
		info, err := Parse(tc.line)
		require.NoError(t, err, tc.line)
		b, err := json.Marshal(info)
		require.NoError(t, err, tc.line)
		assert.JSONEq(t, tc.json, string(b), tc.line)
	}
}

func TestConcurrentParse(t *testing.T) {
	want := make([]*Info, len(corpus))
	for i, line := range corpus {
		info, err := Parse(line)
		require.NoError(t, err, line)
		want[i] = info
	}
	var wg sync.WaitGroup
	for w := 0; w < 8; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i, line := range corpus {
				info, err := Parse(line)
				if err != nil {
					t.Errorf("%q: %v", line, err)
					return
				}
				if diff := cmp.Diff(want[i], info); diff != "" {
					t.Errorf("%q: concurrent result differs (-want +got):\n%s", line, diff)
				}
			}
		}()
	}
	wg.Wait()
}
