// Package aggregate deduplicates, filters, and ranks the raw result set
// produced by the search cascade, and narrows TV results to
// season/episode-consistent entries.
package aggregate

import (
	"sort"

	"subres/internal/models"
)

// Dedupe removes duplicate results by id; the first occurrence wins and
// later duplicates are dropped without merging fields.
func Dedupe(results []models.SearchResult) []models.SearchResult {
	seen := make(map[string]bool, len(results))
	out := make([]models.SearchResult, 0, len(results))
	for _, r := range results {
		if seen[r.ID] {
			continue
		}
		seen[r.ID] = true
		out = append(out, r)
	}
	return out
}

// FilterLanguages keeps only results whose language is among the requested
// catalog codes. If the filter would eliminate every result it is skipped:
// returning something imperfect beats returning nothing.
func FilterLanguages(results []models.SearchResult, requested []string) []models.SearchResult {
	if len(requested) == 0 {
		return results
	}
	want := make(map[string]bool, len(requested))
	for _, lang := range requested {
		want[lang] = true
	}
	filtered := make([]models.SearchResult, 0, len(results))
	for _, r := range results {
		if want[r.Language] {
			filtered = append(filtered, r)
		}
	}
	if len(filtered) == 0 {
		return results
	}
	return filtered
}

// Rank orders results by requested-language membership, the fixed
// per-language priority table, then descending download count. Full ties
// keep stable input order. When the caller requested no languages the
// default and secondary catalog languages are treated as preferred for
// ranking purposes only, never for filtering.
func Rank(results []models.SearchResult, requested []string) []models.RankedResult {
	preferred := requested
	if len(preferred) == 0 {
		preferred = []string{models.DefaultLanguage, models.SecondaryLanguage}
	}
	member := make(map[string]bool, len(preferred))
	for _, lang := range preferred {
		member[lang] = true
	}

	ranked := make([]models.RankedResult, 0, len(results))
	for _, r := range results {
		rank := models.LanguagePriority(r.Language)
		if !member[r.Language] {
			// Non-requested languages sort behind every requested one.
			rank += len(models.SupportedLanguages)
		}
		ranked = append(ranked, models.RankedResult{SearchResult: r, LanguageRank: rank})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].LanguageRank != ranked[j].LanguageRank {
			return ranked[i].LanguageRank < ranked[j].LanguageRank
		}
		return ranked[i].Downloads > ranked[j].Downloads
	})
	return ranked
}

// Aggregate runs the full pipeline: dedupe, client-side language filter,
// rank. Idempotent: aggregating an already-aggregated list yields the same
// list.
func Aggregate(results []models.SearchResult, requested []string) []models.RankedResult {
	return Rank(FilterLanguages(Dedupe(results), requested), requested)
}
