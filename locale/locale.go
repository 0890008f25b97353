/*
Package locale connects the ingredient parser to the user's environment.

Package ingredient never consults environment variables. Hosts which want to
know whether the compiled-in dictionary fits their user's language call
MatchEnvironment once, e.g. at start-up, and decide whether to offer
ingredient parsing at all.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.
*/
package locale

import (
	jj "github.com/cloudfoundry/jibber_jabber"
	"github.com/kabouzeid/ingredient"
	"github.com/kabouzeid/ingredient/internal/tracing"
	schuko "github.com/npillmayer/schuko/tracing"
	"golang.org/x/text/language"
)

// tracer traces with key 'ingredient.locale'.
func tracer() schuko.Trace {
	return tracing.Select(tracing.Locale)
}

// DefaultLocale is assumed if no locale can be found in the environment.
const DefaultLocale = "en-US"

// MatchEnvironment detects the locale of the user's environment (LC_ALL, LANG)
// and reports how well it is served by the dictionary of the ingredient parser.
// If no locale can be found, it assumes DefaultLocale.
func MatchEnvironment() (language.Tag, language.Confidence) {
	userLocale, err := jj.DetectIETF()
	if err != nil {
		tracer().Errorf(err.Error())
		userLocale = DefaultLocale
		tracer().Infof("ingredient parser assumes user locale %v", userLocale)
	} else {
		tracer().Infof("ingredient parser detected user locale %v", userLocale)
	}
	tag := language.Make(userLocale)
	return tag, ingredient.MatchLanguage(tag)
}
