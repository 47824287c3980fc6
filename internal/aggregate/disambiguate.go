package aggregate

import (
	"strings"
	"unicode/utf8"

	"subres/internal/match"
	"subres/internal/models"
)

// minEpisodeTitleLength guards the episode-title tier against spurious
// substring hits on very short names.
const minEpisodeTitleLength = 3

// Disambiguate narrows a TV result list to season/episode-consistent
// entries using a tiered cascade: exact episode markers, then an
// episode-title substring, then season-level markers. Each result is
// assigned to the first tier it matches; the first non-empty tier is
// returned. When every tier is empty the whole input is returned unchanged:
// a season pack or an untagged release is still useful, and archive member
// selection is the second line of defense.
func Disambiguate(results []models.RankedResult, season, episode int, episodeTitle string) []models.RankedResult {
	if len(results) == 0 || season <= 0 || episode <= 0 {
		return results
	}

	set := match.NewEpisodeSet(season, episode)
	title := strings.ToLower(strings.TrimSpace(episodeTitle))
	useTitle := utf8.RuneCountInString(title) >= minEpisodeTitleLength

	var exact, byTitle, bySeason []models.RankedResult
	for _, r := range results {
		text := r.MatchText()
		switch {
		case set.MatchesEpisode(text):
			exact = append(exact, r)
		case useTitle && strings.Contains(strings.ToLower(text), title):
			byTitle = append(byTitle, r)
		case set.MatchesSeason(text):
			bySeason = append(bySeason, r)
		}
	}

	switch {
	case len(exact) > 0:
		return exact
	case len(byTitle) > 0:
		return byTitle
	case len(bySeason) > 0:
		return bySeason
	default:
		return results
	}
}
