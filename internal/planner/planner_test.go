package planner

import (
	"testing"

	"subres/internal/models"
)

func labels(strategies []models.Strategy) []string {
	out := make([]string, 0, len(strategies))
	for _, s := range strategies {
		out = append(out, s.Label)
	}
	return out
}

func assertLabels(t *testing.T, got []models.Strategy, want []string) {
	t.Helper()
	gotLabels := labels(got)
	if len(gotLabels) != len(want) {
		t.Fatalf("got %d strategies %v, want %d %v", len(gotLabels), gotLabels, len(want), want)
	}
	for i := range want {
		if gotLabels[i] != want[i] {
			t.Errorf("strategy %d = %q, want %q (full order %v)", i, gotLabels[i], want[i], gotLabels)
		}
	}
}

func TestPlan_TVFullOrder(t *testing.T) {
	t.Parallel()

	q := models.Query{
		IsTV:          true,
		ParentIMDbID:  "tt0903747",
		IMDbID:        "2301451", // episode-specific
		ParentTMDbID:  "1396",
		TMDbID:        "62161",
		Title:         "Breaking Bad",
		OriginalTitle: "Breaking Bad Original",
		EpisodeTitle:  "Ozymandias",
		Season:        5,
		Episode:       14,
		Release:       "Breaking.Bad.S05E14.720p.HDTV.x264-AFG",
	}

	got := Plan(q)
	assertLabels(t, got, []string{
		"parent-imdb", "episode-imdb", "parent-tmdb", "episode-tmdb",
		"title-episode", "title", "episode-title", "title-episode-title",
		"original-title", "original-title-episode", "release",
	})

	if got[0].Field != models.FieldIMDbID || got[0].Value != "tt0903747" {
		t.Errorf("first strategy = %+v, want canonical parent imdb", got[0])
	}
	if got[1].Value != "tt2301451" {
		t.Errorf("episode imdb not canonicalized: %q", got[1].Value)
	}
	if got[4].Value != "Breaking Bad S05E14" {
		t.Errorf("title-episode value = %q", got[4].Value)
	}
}

func TestPlan_TVEpisodeIDEqualParentDropped(t *testing.T) {
	t.Parallel()

	q := models.Query{
		IsTV:         true,
		ParentIMDbID: "903747",
		IMDbID:       "tt0903747", // same id after canonicalization
		Title:        "Breaking Bad",
	}

	got := Plan(q)
	for _, s := range got {
		if s.Label == "episode-imdb" {
			t.Errorf("episode id equal to parent id must be dropped, got %+v", got)
		}
	}
}

func TestPlan_MovieOrder(t *testing.T) {
	t.Parallel()

	q := models.Query{
		IMDbID:        "111161",
		TMDbID:        "278",
		Title:         "The Shawshank Redemption",
		OriginalTitle: "The Shawshank Redemption",
		Release:       "The.Shawshank.Redemption.1994.1080p",
	}

	got := Plan(q)
	assertLabels(t, got, []string{"imdb", "tmdb", "title", "release"})
	if got[0].Value != "tt0111161" {
		t.Errorf("movie imdb not canonicalized: %q", got[0].Value)
	}
}

func TestPlan_MovieOriginalTitleOnlyWhenDifferent(t *testing.T) {
	t.Parallel()

	q := models.Query{
		Title:         "Amelie",
		OriginalTitle: "Le Fabuleux Destin d'Amélie Poulain",
	}

	got := Plan(q)
	assertLabels(t, got, []string{"title", "original-title"})
}

func TestPlan_EmptyQuery(t *testing.T) {
	t.Parallel()

	if got := Plan(models.Query{}); len(got) != 0 {
		t.Errorf("empty query must yield zero strategies, got %v", labels(got))
	}
	if got := Plan(models.Query{IsTV: true, Season: 3, Episode: 4}); len(got) != 0 {
		t.Errorf("id/title/release-less TV query must yield zero strategies, got %v", labels(got))
	}
}

func TestPlan_InvalidIMDbDropped(t *testing.T) {
	t.Parallel()

	q := models.Query{IMDbID: "not-an-id", Title: "Some Movie"}
	got := Plan(q)
	assertLabels(t, got, []string{"title"})
}
