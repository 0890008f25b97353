package ingredient

import (
	"golang.org/x/text/language"
)

// languageMatch matches user languages against the languages the parser has a
// dictionary for.
var languageMatch = language.NewMatcher([]language.Tag{
	Language, // The first language is used as fallback.
})

// MatchLanguage reports how well tag is served by the dictionary of the parser.
// For example, "en-GB" is matched with high confidence by an English
// dictionary, while "de" is not matched at all.
//
// Package locale derives the tag from the user's environment.
func MatchLanguage(tag language.Tag) language.Confidence {
	_, _, confidence := languageMatch.Match(tag)
	return confidence
}
