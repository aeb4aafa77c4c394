package presenter

import (
	"github.com/goodsign/monday"
	"golang.org/x/text/language"
)

// layouts are Go reference layouts; monday translates weekday and month names.
type layouts struct {
	long  string
	short string
	hour  string
}

type localeSpec struct {
	tag     language.Tag
	locale  monday.Locale
	layouts layouts
}

// supported lists the display locales. The first entry is the fallback.
var supported = []localeSpec{
	{
		tag:     language.AmericanEnglish,
		locale:  monday.LocaleEnUS,
		layouts: layouts{long: "Monday, January 2, 2006", short: "Mon, Jan 2", hour: "3 PM"},
	},
	{
		tag:     language.BritishEnglish,
		locale:  monday.LocaleEnGB,
		layouts: layouts{long: "Monday, 2 January 2006", short: "Mon, 2 Jan", hour: "15:00"},
	},
	{
		tag:     language.MustParse("de-DE"),
		locale:  monday.LocaleDeDE,
		layouts: layouts{long: "Monday, 2. January 2006", short: "Mon., 2. Jan.", hour: "15 Uhr"},
	},
	{
		tag:     language.MustParse("fr-FR"),
		locale:  monday.LocaleFrFR,
		layouts: layouts{long: "Monday 2 January 2006", short: "Mon 2 Jan", hour: "15 h"},
	},
	{
		tag:     language.MustParse("es-ES"),
		locale:  monday.LocaleEsES,
		layouts: layouts{long: "Monday, 2 de January de 2006", short: "Mon, 2 Jan", hour: "15:00"},
	},
}

var matcher = language.NewMatcher(func() []language.Tag {
	tags := make([]language.Tag, len(supported))
	for i, s := range supported {
		tags[i] = s.tag
	}
	return tags
}())

// match picks the closest supported locale for the given language
// preferences. Each argument may be a single tag or a full Accept-Language
// header value.
func match(prefs ...string) localeSpec {
	_, idx := language.MatchStrings(matcher, prefs...)
	return supported[idx]
}

// SupportedLocales returns the BCP 47 tags of the display locales
func SupportedLocales() []string {
	out := make([]string, len(supported))
	for i, s := range supported {
		out[i] = s.tag.String()
	}
	return out
}
