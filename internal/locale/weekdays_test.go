package locale

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"golang.org/x/text/language"
)

func TestWeek(t *testing.T) {
	tests := []struct {
		name     string
		firstDay time.Weekday
		token    string
		tag      language.Tag
		want     []string
	}{
		{"en default", time.Sunday, DefaultToken, language.English, []string{"S", "M", "T", "W", "T", "F", "S"}},
		{"en monday first", time.Monday, DefaultToken, language.English, []string{"M", "T", "W", "T", "F", "S", "S"}},
		{"en saturday first", time.Saturday, DefaultToken, language.English, []string{"S", "S", "M", "T", "W", "T", "F"}},
		{"en short", time.Sunday, TokenShort, language.English, []string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}},
		{"en full", time.Monday, TokenFull, language.AmericanEnglish, []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}},
		{"en two chars", time.Sunday, TokenTwoChars, language.English, []string{"Su", "Mo", "Tu", "We", "Th", "Fr", "Sa"}},
		{"iso numbers", time.Sunday, TokenNumber, language.English, []string{"7", "1", "2", "3", "4", "5", "6"}},
		{"fr default", time.Sunday, DefaultToken, language.French, []string{"D", "L", "M", "M", "J", "V", "S"}},
		{"fr short", time.Sunday, TokenShort, language.French, []string{"dim.", "lun.", "mar.", "mer.", "jeu.", "ven.", "sam."}},
		{"fr regional", time.Sunday, DefaultToken, language.MustParse("fr-CA"), []string{"D", "L", "M", "M", "J", "V", "S"}},
		{"unknown token", time.Sunday, "EEEE", language.English, []string{"S", "M", "T", "W", "T", "F", "S"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Week(tt.firstDay, tt.token, tt.tag))
		})
	}
}

func TestUnsupportedLanguageFallsBackToEnglish(t *testing.T) {
	assert.Equal(t, language.English, Match(language.Japanese))
	assert.Equal(t, "Mon", Weekday(time.Monday, TokenShort, language.Japanese))
}

func TestTitle(t *testing.T) {
	got := Title(Week(time.Monday, TokenFull, language.French), language.French)
	assert.Equal(t, "Lundi", got[0])
	assert.Equal(t, "Dimanche", got[6])
}

func TestKnown(t *testing.T) {
	assert.True(t, Known("iii"))
	assert.False(t, Known("iiiiiii"))
}
