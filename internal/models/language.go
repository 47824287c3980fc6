package models

import "strings"

// Language code tables for the subs.ro catalog. The catalog uses its own
// three-ish-letter codes; the host player hands us ISO 639-1 codes.

// DefaultLanguage ranks highest in result ordering; SecondaryLanguage next.
const (
	DefaultLanguage   = "ro"
	SecondaryLanguage = "en"
)

// SupportedLanguages are the codes the catalog's search endpoint accepts.
var SupportedLanguages = []string{"ro", "en", "ita", "fra", "ger", "ung", "gre", "por", "spa", "alt"}

// isoToCatalog maps ISO 639-1 codes to subs.ro codes. Unsupported codes map
// to nothing and are filtered out by the caller.
var isoToCatalog = map[string]string{
	"ro":    "ro",
	"en":    "en",
	"it":    "ita",
	"fr":    "fra",
	"de":    "ger",
	"hu":    "ung",
	"el":    "gre",
	"pt":    "por",
	"es":    "spa",
	"pt-br": "por",
	"pt-pt": "por",
	"pb":    "por",
}

// languageNames maps subs.ro codes to display names.
var languageNames = map[string]string{
	"ro":  "Romanian",
	"en":  "English",
	"ita": "Italian",
	"fra": "French",
	"ger": "German",
	"ung": "Hungarian",
	"gre": "Greek",
	"por": "Portuguese",
	"spa": "Spanish",
	"alt": "Unknown",
}

// flagToLanguage maps the flag-image codes used on the catalog website to
// subs.ro codes.
var flagToLanguage = map[string]string{
	"rom": "ro",
	"ro":  "ro",
	"eng": "en",
	"en":  "en",
	"ita": "ita",
	"fra": "fra",
	"ger": "ger",
	"hun": "ung",
	"ung": "ung",
	"gre": "gre",
	"por": "por",
	"spa": "spa",
}

// CatalogLanguage converts an ISO 639-1 code to a subs.ro code.
// Returns "" for unsupported codes.
func CatalogLanguage(iso string) string {
	return isoToCatalog[strings.ToLower(strings.TrimSpace(iso))]
}

// CatalogLanguages converts an ordered ISO code list to subs.ro codes,
// dropping unsupported codes and duplicates while preserving order.
func CatalogLanguages(iso []string) []string {
	var out []string
	seen := make(map[string]bool)
	for _, code := range iso {
		lang := CatalogLanguage(code)
		if lang == "" {
			// Caller may already pass catalog codes (e.g. from config).
			if isSupported(code) {
				lang = code
			} else {
				continue
			}
		}
		if !seen[lang] {
			seen[lang] = true
			out = append(out, lang)
		}
	}
	return out
}

// LanguageName returns the display name for a subs.ro code.
func LanguageName(code string) string {
	if name, ok := languageNames[code]; ok {
		return name
	}
	return "Unknown"
}

// FlagLanguage maps a website flag-image code to a subs.ro code.
// Unrecognized flags default to the catalog's primary language.
func FlagLanguage(flag string) string {
	if lang, ok := flagToLanguage[strings.ToLower(flag)]; ok {
		return lang
	}
	return DefaultLanguage
}

// LanguagePriority is the fixed per-language sort tier: the default language
// ranks highest, the secondary next, other supported languages tie below,
// and unsupported/unknown codes rank last.
func LanguagePriority(code string) int {
	switch {
	case code == DefaultLanguage:
		return 0
	case code == SecondaryLanguage:
		return 1
	case isSupported(code):
		return 2
	default:
		return 3
	}
}

func isSupported(code string) bool {
	for _, l := range SupportedLanguages {
		if l == code {
			return true
		}
	}
	return false
}
