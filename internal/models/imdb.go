package models

import "strings"

// CanonicalIMDbID normalizes an IMDb id to the canonical "tt"-prefixed,
// zero-padded-to-7-digit form. A bare digit string like "903747" becomes
// "tt0903747"; an already-canonical id passes through unchanged. Anything
// that is not a digit string after stripping the prefix yields "".
func CanonicalIMDbID(raw string) string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return ""
	}
	if strings.HasPrefix(s, "tt") {
		s = s[2:]
	}
	if s == "" || !isDigits(s) {
		return ""
	}
	for len(s) < 7 {
		s = "0" + s
	}
	return "tt" + s
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
