package models

import "testing"

func TestCanonicalIMDbID(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"bare digits padded", "903747", "tt0903747"},
		{"bare digits long enough", "1234567", "tt1234567"},
		{"eight digits kept", "12345678", "tt12345678"},
		{"already canonical is idempotent", "tt0903747", "tt0903747"},
		{"tt prefix with short digits", "tt12345", "tt0012345"},
		{"whitespace trimmed", "  tt0111161 ", "tt0111161"},
		{"empty", "", ""},
		{"non-numeric", "breaking-bad", ""},
		{"tt alone", "tt", ""},
		{"mixed digits and letters", "tt12a45", ""},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := CanonicalIMDbID(tt.raw); got != tt.want {
				t.Errorf("CanonicalIMDbID(%q) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}

func TestCanonicalIMDbID_MinimumLength(t *testing.T) {
	t.Parallel()

	got := CanonicalIMDbID("1")
	if len(got) < 9 {
		t.Errorf("canonical id %q shorter than tt + 7 digits", got)
	}
	if CanonicalIMDbID(got) != got {
		t.Errorf("canonicalization not idempotent for %q", got)
	}
}
