// Package i18n provides the UI languages, their script direction and speech
// locales, and a key-based message catalog with raw-key fallback.
package i18n

import "strings"

// Language is an ISO-639-1 UI language code.
type Language string

const (
	English Language = "en"
	Arabic  Language = "ar"
	Urdu    Language = "ur"
	Spanish Language = "es"
	French  Language = "fr"
	Hindi   Language = "hi"
	German  Language = "de"
)

// Direction is the script direction of a language.
type Direction int

const (
	LeftToRight Direction = iota
	RightToLeft
)

// Info describes a supported language.
type Info struct {
	Code Language

	// Name is the language's own display name.
	Name string

	// Locale is the BCP-47 speech locale used for recognition and synthesis.
	Locale string

	Direction Direction
}

// Languages lists every supported language in selector order.
var Languages = []Info{
	{English, "English", "en-US", LeftToRight},
	{Arabic, "العربية", "ar-SA", RightToLeft},
	{Urdu, "اردو", "ur-PK", RightToLeft},
	{Spanish, "Español", "es-ES", LeftToRight},
	{French, "Français", "fr-FR", LeftToRight},
	{Hindi, "हिन्दी", "hi-IN", LeftToRight},
	{German, "Deutsch", "de-DE", LeftToRight},
}

// Lookup returns the Info for a language code, defaulting to English for
// unknown codes.
func Lookup(code Language) Info {
	for _, info := range Languages {
		if info.Code == code {
			return info
		}
	}
	return Languages[0]
}

// ByLocale returns the language whose speech locale matches, trying an exact
// match first and then the primary language subtag.
func ByLocale(locale string) (Language, bool) {
	for _, info := range Languages {
		if info.Locale == locale {
			return info.Code, true
		}
	}
	primary := locale
	if i := strings.IndexByte(locale, '-'); i > 0 {
		primary = locale[:i]
	}
	for _, info := range Languages {
		if string(info.Code) == primary {
			return info.Code, true
		}
	}
	return English, false
}

// IsRTL reports whether the language is written right-to-left.
func IsRTL(code Language) bool {
	return Lookup(code).Direction == RightToLeft
}

// Locale returns the speech locale for a language.
func Locale(code Language) string {
	return Lookup(code).Locale
}

// Instruction returns the response-language instruction sent with AI prompts.
func Instruction(code Language) string {
	name := englishNames[code]
	if name == "" {
		name = "English"
	}
	return "Please respond in " + name + "."
}

var englishNames = map[Language]string{
	English: "English",
	Arabic:  "Arabic",
	Urdu:    "Urdu",
	Spanish: "Spanish",
	French:  "French",
	Hindi:   "Hindi",
	German:  "German",
}

// EnglishName returns the English name of a language, for prompt building.
func EnglishName(code Language) string {
	if name, ok := englishNames[code]; ok {
		return name
	}
	return string(code)
}

// Catalog maps a message key to its per-language strings. The active
// language is always passed explicitly; lookups are pure.
type Catalog map[string]map[Language]string

// T resolves a key for a language. A missing key or missing language entry
// falls back to the raw key so untranslated UI stays legible.
func (c Catalog) T(lang Language, key string) string {
	entry, ok := c[key]
	if !ok {
		return key
	}
	if s, ok := entry[lang]; ok && s != "" {
		return s
	}
	return key
}
