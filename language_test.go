package ingredient

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/text/language"
)

func TestMatchLanguage(t *testing.T) {
	assert.Equal(t, language.Exact, MatchLanguage(language.English))
	assert.NotEqual(t, language.No, MatchLanguage(language.BritishEnglish))
	assert.Equal(t, language.No, MatchLanguage(language.German))
}
