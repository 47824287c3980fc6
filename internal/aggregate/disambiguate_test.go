package aggregate

import (
	"fmt"
	"testing"

	"subres/internal/models"
)

func ranked(id, title, description string) models.RankedResult {
	return models.RankedResult{SearchResult: models.SearchResult{ID: id, Title: title, Description: description}}
}

func TestDisambiguate_ExactEpisodeTierWins(t *testing.T) {
	t.Parallel()

	in := []models.RankedResult{
		ranked("pack", "Breaking Bad", "Sezonul 5 complet"),
		ranked("exact", "Breaking Bad", "Breaking.Bad.S05E14.720p"),
		ranked("named", "Breaking Bad", "Ozymandias episode"),
	}

	got := Disambiguate(in, 5, 14, "Ozymandias")
	if len(got) != 1 || got[0].ID != "exact" {
		t.Errorf("exact tier must win alone, got %v", got)
	}
}

func TestDisambiguate_EpisodeTitleTier(t *testing.T) {
	t.Parallel()

	// The Ozymandias scenario: 40 untagged parent-id results, one of which
	// mentions the episode's proper name in its description.
	in := make([]models.RankedResult, 0, 40)
	for i := 0; i < 39; i++ {
		in = append(in, ranked(fmt.Sprintf("untagged-%d", i), "Breaking Bad", "subtitrare completa"))
	}
	in = append(in, ranked("named", "Breaking Bad", "Episodul Ozymandias, tradus si sincronizat"))

	got := Disambiguate(in, 5, 14, "Ozymandias")
	if len(got) != 1 || got[0].ID != "named" {
		t.Errorf("expected the single episode-title match, got %d results", len(got))
	}
}

func TestDisambiguate_ShortEpisodeTitleIgnored(t *testing.T) {
	t.Parallel()

	in := []models.RankedResult{
		ranked("a", "Show", "something with an it inside"),
		ranked("b", "Show", "another untagged result"),
	}

	// "It" is below the minimum title length; the tier must not fire and the
	// full set comes back.
	got := Disambiguate(in, 1, 2, "It")
	if len(got) != 2 {
		t.Errorf("short episode title must not filter, got %d results", len(got))
	}
}

func TestDisambiguate_SeasonTierFallback(t *testing.T) {
	t.Parallel()

	in := []models.RankedResult{
		ranked("other-season", "Show", "Show.S02E05.HDTV"),
		ranked("season-pack", "Show", "Sezonul 3 complet"),
	}

	got := Disambiguate(in, 3, 9, "")
	if len(got) != 1 || got[0].ID != "season-pack" {
		t.Errorf("season tier must select the season pack, got %v", got)
	}
}

func TestDisambiguate_NeverEmptiesNonEmptyInput(t *testing.T) {
	t.Parallel()

	in := []models.RankedResult{
		ranked("a", "Show", "no markers at all"),
		ranked("b", "Show", "still nothing"),
	}

	got := Disambiguate(in, 7, 7, "Finale")
	if len(got) != len(in) {
		t.Errorf("exhausted cascade must return the unfiltered set, got %d of %d", len(got), len(in))
	}

	for season := 1; season <= 4; season++ {
		for episode := 1; episode <= 4; episode++ {
			if len(Disambiguate(in, season, episode, "")) == 0 {
				t.Fatalf("S%02dE%02d reduced a non-empty input to empty", season, episode)
			}
		}
	}
}

func TestDisambiguate_TiersAreMutuallyExclusive(t *testing.T) {
	t.Parallel()

	// A result matching the exact tier is not re-evaluated for later tiers,
	// so an exact match plus a title mention still yields only tier one.
	in := []models.RankedResult{
		ranked("both", "Show", "Show.S01E02.Pilot"),
		ranked("title-only", "Show", "the Pilot episode"),
	}

	got := Disambiguate(in, 1, 2, "Pilot")
	if len(got) != 1 || got[0].ID != "both" {
		t.Errorf("expected only the exact-tier result, got %v", got)
	}
}
