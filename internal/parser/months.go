package parser

import (
	"log"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// DefaultLocale month names follow Brazilian Portuguese unless configured otherwise
const DefaultLocale = "pt-BR"

var monthTables = map[language.Tag][12]string{
	language.BrazilianPortuguese: {
		"janeiro", "fevereiro", "março", "abril", "maio", "junho",
		"julho", "agosto", "setembro", "outubro", "novembro", "dezembro",
	},
	language.English: {
		"january", "february", "march", "april", "may", "june",
		"july", "august", "september", "october", "november", "december",
	},
}

// English first: it is what the matcher returns when nothing matches.
var monthMatcher = language.NewMatcher([]language.Tag{language.English, language.BrazilianPortuguese})

// MonthNamer produces capitalised month names for one locale.
type MonthNamer struct {
	tag   language.Tag
	names [12]string
}

// NewMonthNamer resolves locale against the supported month tables.
// An unknown or malformed locale falls back to English with a single warning.
func NewMonthNamer(locale string) *MonthNamer {
	supported := language.English
	requested, err := language.Parse(locale)
	if err != nil {
		log.Printf("[months] invalid locale %q (%v), using %s month names", locale, err, supported)
	} else {
		_, idx, conf := monthMatcher.Match(requested)
		if conf == language.No {
			log.Printf("[months] locale %q not available, using %s month names", locale, supported)
		} else if idx == 1 {
			supported = language.BrazilianPortuguese
		}
	}

	caser := cases.Title(supported)
	raw := monthTables[supported]
	n := &MonthNamer{tag: supported}
	for i, name := range raw {
		n.names[i] = caser.String(name)
	}
	return n
}

// Locale returns the tag actually used.
func (n *MonthNamer) Locale() string { return n.tag.String() }

// Name month name for m
func (n *MonthNamer) Name(m time.Month) string {
	if m < time.January || m > time.December {
		return ""
	}
	return n.names[m-1]
}

// Domain returns the twelve names in calendar order, independent of the data.
func (n *MonthNamer) Domain() []string {
	out := make([]string, 12)
	copy(out, n.names[:])
	return out
}
