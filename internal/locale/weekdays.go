// Package locale holds the weekday names used for calendar column labels.
package locale

import (
	"strconv"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Format tokens accepted by Weekday.
const (
	TokenNumber   = "i"      // ISO day of week, Monday = 1
	TokenShort    = "iii"    // Mon
	TokenFull     = "iiii"   // Monday
	TokenNarrow   = "iiiii"  // M
	TokenTwoChars = "iiiiii" // Mo

	DefaultToken = TokenNarrow
)

// names are indexed by time.Weekday.
type names struct {
	narrow, short, abbrev, full [7]string
}

var supported = []language.Tag{
	language.English,
	language.French,
	language.German,
	language.Spanish,
	language.Italian,
	language.Portuguese,
	language.Dutch,
}

var tables = []names{
	{ // en
		narrow: [7]string{"S", "M", "T", "W", "T", "F", "S"},
		short:  [7]string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"},
		abbrev: [7]string{"Su", "Mo", "Tu", "We", "Th", "Fr", "Sa"},
		full:   [7]string{"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday"},
	},
	{ // fr
		narrow: [7]string{"D", "L", "M", "M", "J", "V", "S"},
		short:  [7]string{"dim.", "lun.", "mar.", "mer.", "jeu.", "ven.", "sam."},
		abbrev: [7]string{"di", "lu", "ma", "me", "je", "ve", "sa"},
		full:   [7]string{"dimanche", "lundi", "mardi", "mercredi", "jeudi", "vendredi", "samedi"},
	},
	{ // de
		narrow: [7]string{"S", "M", "D", "M", "D", "F", "S"},
		short:  [7]string{"So", "Mo", "Di", "Mi", "Do", "Fr", "Sa"},
		abbrev: [7]string{"So", "Mo", "Di", "Mi", "Do", "Fr", "Sa"},
		full:   [7]string{"Sonntag", "Montag", "Dienstag", "Mittwoch", "Donnerstag", "Freitag", "Samstag"},
	},
	{ // es
		narrow: [7]string{"D", "L", "M", "X", "J", "V", "S"},
		short:  [7]string{"dom", "lun", "mar", "mié", "jue", "vie", "sáb"},
		abbrev: [7]string{"do", "lu", "ma", "mi", "ju", "vi", "sá"},
		full:   [7]string{"domingo", "lunes", "martes", "miércoles", "jueves", "viernes", "sábado"},
	},
	{ // it
		narrow: [7]string{"D", "L", "M", "M", "G", "V", "S"},
		short:  [7]string{"dom", "lun", "mar", "mer", "gio", "ven", "sab"},
		abbrev: [7]string{"do", "lu", "ma", "me", "gi", "ve", "sa"},
		full:   [7]string{"domenica", "lunedì", "martedì", "mercoledì", "giovedì", "venerdì", "sabato"},
	},
	{ // pt
		narrow: [7]string{"D", "S", "T", "Q", "Q", "S", "S"},
		short:  [7]string{"dom", "seg", "ter", "qua", "qui", "sex", "sáb"},
		abbrev: [7]string{"do", "2ª", "3ª", "4ª", "5ª", "6ª", "sá"},
		full:   [7]string{"domingo", "segunda-feira", "terça-feira", "quarta-feira", "quinta-feira", "sexta-feira", "sábado"},
	},
	{ // nl
		narrow: [7]string{"Z", "M", "D", "W", "D", "V", "Z"},
		short:  [7]string{"zo", "ma", "di", "wo", "do", "vr", "za"},
		abbrev: [7]string{"zo", "ma", "di", "wo", "do", "vr", "za"},
		full:   [7]string{"zondag", "maandag", "dinsdag", "woensdag", "donderdag", "vrijdag", "zaterdag"},
	},
}

var matcher = language.NewMatcher(supported)

// Match returns the supported language closest to tag. Unsupported
// languages resolve to English.
func Match(tag language.Tag) language.Tag {
	_, i, conf := matcher.Match(tag)
	if conf == language.No {
		return language.English
	}
	return supported[i]
}

func lookup(tag language.Tag) names {
	_, i, conf := matcher.Match(tag)
	if conf == language.No {
		return tables[0]
	}
	return tables[i]
}

// Known reports whether token is one of the weekday format tokens.
func Known(token string) bool {
	switch token {
	case TokenNumber, TokenShort, TokenFull, TokenNarrow, TokenTwoChars:
		return true
	}
	return false
}

// Weekday formats wd with token in the language closest to tag. Unknown
// tokens use DefaultToken.
func Weekday(wd time.Weekday, token string, tag language.Tag) string {
	t := lookup(tag)
	switch token {
	case TokenNumber:
		if wd == time.Sunday {
			return "7"
		}
		return strconv.Itoa(int(wd))
	case TokenShort:
		return t.short[wd]
	case TokenFull:
		return t.full[wd]
	case TokenTwoChars:
		return t.abbrev[wd]
	default:
		return t.narrow[wd]
	}
}

// Week returns the seven labels of a week starting on firstDay.
func Week(firstDay time.Weekday, token string, tag language.Tag) []string {
	out := make([]string, 7)
	for i := range out {
		out[i] = Weekday((firstDay+time.Weekday(i))%7, token, tag)
	}
	return out
}

// Title capitalizes labels using the casing rules of tag.
func Title(labels []string, tag language.Tag) []string {
	c := cases.Title(Match(tag))
	out := make([]string, len(labels))
	for i, l := range labels {
		out[i] = c.String(l)
	}
	return out
}
