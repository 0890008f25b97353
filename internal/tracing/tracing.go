// Package tracing is a thin layer over schuko tracing, shared by all packages
// of this module.
package tracing

import (
	"testing"

	schuko "github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

// Trace keys.
const (
	Ingredient = "ingredient"
	PEG        = "ingredient.peg"
	Dictionary = "ingredient.dictionary"
	Locale     = "ingredient.locale"
)

// Select returns the tracer for key. Without any configuration this is a no-op
// tracer.
func Select(key string) schuko.Trace {
	return schuko.Select(key)
}

// SetTestingLog redirects all tracers of this module to t.Logf, with level Debug.
// It returns a teardown function, to be deferred by the test.
//
// The testing tracer is not safe for concurrent use; parallel tests should not
// call SetTestingLog.
func SetTestingLog(t *testing.T) func() {
	return gotestingadapter.QuickConfig(t, Ingredient, PEG, Dictionary, Locale)
}

// UseGoLog routes tracing to the standard library logger, with the given level.
// Used by command line tools.
func UseGoLog(level schuko.TraceLevel) {
	schuko.SetTraceSelector(schuko.SelectorForAdapter(gologadapter.GetAdapter()))
	schuko.Select(Ingredient).SetTraceLevel(level)
}
