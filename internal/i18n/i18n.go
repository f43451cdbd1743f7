// Package i18n renders localized bot messages with named placeholders.
package i18n

import "strings"

// DefaultLanguage is used for users who never picked a language and as
// the fallback for untranslated keys.
const DefaultLanguage = "ar"

// Language pairs a code with its native display name.
type Language struct {
	Code string
	Name string
}

// SupportedLanguages lists every selectable language. A language may
// be selectable before its catalog is complete; lookups then fall back
// to the default catalog.
var SupportedLanguages = []Language{
	{Code: "ar", Name: "العربية"},
	{Code: "en", Name: "English"},
	{Code: "es", Name: "Español"},
	{Code: "fr", Name: "Français"},
	{Code: "ru", Name: "Русский"},
}

// Supported reports whether code is a selectable language.
func Supported(code string) bool {
	for _, l := range SupportedLanguages {
		if l.Code == code {
			return true
		}
	}
	return false
}

// Translator resolves message keys against the catalogs.
type Translator struct {
	defaultLang string
}

// New creates a Translator with the given default language. An
// unsupported default falls back to DefaultLanguage.
func New(defaultLang string) *Translator {
	if _, ok := catalogs[defaultLang]; !ok {
		defaultLang = DefaultLanguage
	}
	return &Translator{defaultLang: defaultLang}
}

// Text renders a message key in the given language, substituting
// {name} placeholders from args. Missing keys fall back to the default
// catalog; a key missing there too renders as the key itself so the
// gap is visible rather than silent.
func (t *Translator) Text(lang, key string, args map[string]string) string {
	msg, ok := catalogs[lang][key]
	if !ok {
		msg, ok = catalogs[t.defaultLang][key]
	}
	if !ok {
		return key
	}

	if len(args) == 0 {
		return msg
	}

	pairs := make([]string, 0, len(args)*2)
	for name, value := range args {
		pairs = append(pairs, "{"+name+"}", value)
	}
	return strings.NewReplacer(pairs...).Replace(msg)
}

// Args is shorthand for placeholder maps at call sites.
type Args = map[string]string
