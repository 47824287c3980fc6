package models

import (
	"regexp"
	"strings"
)

var (
	slugInvalidRe  = regexp.MustCompile(`[^a-z0-9\s-]`)
	slugSpacesRe   = regexp.MustCompile(`\s+`)
	slugHyphensRe  = regexp.MustCompile(`-+`)
	slugYearTailRe = regexp.MustCompile(`-(\d{4})$`)
)

// TitleToSlug derives the URL-safe slug the catalog website uses for a title,
// e.g. "Breaking Bad" -> "breaking-bad".
func TitleToSlug(title string) string {
	slug := strings.ToLower(strings.TrimSpace(title))
	slug = slugInvalidRe.ReplaceAllString(slug, "")
	slug = slugSpacesRe.ReplaceAllString(slug, "-")
	slug = slugHyphensRe.ReplaceAllString(slug, "-")
	return strings.Trim(slug, "-")
}

// SlugToTitle converts a URL slug back to a readable title. A trailing year
// becomes a parenthesized suffix: "shelter-2026" -> "Shelter (2026)".
// Used only as a fallback when the page carries no display title.
func SlugToTitle(slug string) string {
	if slug == "" {
		return ""
	}
	if m := slugYearTailRe.FindStringSubmatchIndex(slug); m != nil {
		year := slug[m[2]:m[3]]
		return titleCaseWords(slug[:m[0]]) + " (" + year + ")"
	}
	return titleCaseWords(slug)
}

func titleCaseWords(slug string) string {
	words := strings.Split(strings.ReplaceAll(slug, "-", " "), " ")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
