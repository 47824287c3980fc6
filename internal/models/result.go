package models

// Provenance tags where a search result came from.
type Provenance string

const (
	// SourceAPI marks results from the no-filter strategy pass.
	SourceAPI Provenance = "api"
	// SourceAPIFallback marks results from the per-language retry pass.
	SourceAPIFallback Provenance = "api-fallback"
	// SourceScraper marks results from the web-scraping fallback.
	SourceScraper Provenance = "scraper"
)

// SearchResult is one subtitle entry returned by the catalog. No field is
// guaranteed present; consumers must treat absence as "unknown", not error.
// Results live only for the duration of one search response cycle.
type SearchResult struct {
	ID           string     `json:"id"`
	Title        string     `json:"title"`
	Description  string     `json:"description"`
	Language     string     `json:"language"`
	Translator   string     `json:"translator"`
	Year         int        `json:"year"`
	Downloads    int        `json:"downloads"`
	Type         string     `json:"type"`
	Link         string     `json:"link"`
	DownloadLink string     `json:"downloadLink"`
	Source       Provenance `json:"source"`
}

// MatchText returns the concatenation of the fields season/episode
// heuristics are checked against.
func (r SearchResult) MatchText() string {
	return r.Title + " " + r.Description + " " + r.Link + " " + r.DownloadLink
}

// RankedResult is a SearchResult with its derived sort key.
type RankedResult struct {
	SearchResult

	// LanguageRank is the composite language sort key: 0 when the result's
	// language is among the requested (or default-preferred) languages,
	// offset by the fixed per-language priority.
	LanguageRank int `json:"-"`
}

// DownloadResult carries the raw bytes returned by the catalog's download
// endpoint before extraction.
type DownloadResult struct {
	SubtitleID string
	Content    []byte
}

// QuotaInfo reports the caller's remaining daily download allowance.
type QuotaInfo struct {
	Used      int `json:"used"`
	Limit     int `json:"limit"`
	Remaining int `json:"remaining"`
}
