// Package planner builds the ordered search-strategy list for a query.
// The ordering is heuristic, tuned against the catalog's sparse tagging:
// identifiers first, then title combinations, then the raw release name.
package planner

import (
	"fmt"

	"subres/internal/models"
)

// Plan returns the ordered strategy list for q. An empty list is a terminal
// empty state for the search, not an error.
func Plan(q models.Query) []models.Strategy {
	b := &builder{seen: make(map[string]bool)}

	if q.IsTV {
		planTV(b, q)
	} else {
		planMovie(b, q)
	}
	return b.strategies
}

func planTV(b *builder, q models.Query) {
	parentIMDb := models.CanonicalIMDbID(q.ParentIMDbID)
	episodeIMDb := models.CanonicalIMDbID(q.IMDbID)
	if episodeIMDb == parentIMDb {
		// An episode id identical to the parent id would be a redundant
		// duplicate strategy.
		episodeIMDb = ""
	}

	b.add(models.FieldIMDbID, parentIMDb, "parent-imdb")
	b.add(models.FieldIMDbID, episodeIMDb, "episode-imdb")
	b.add(models.FieldTMDbID, q.ParentTMDbID, "parent-tmdb")
	episodeTMDb := q.TMDbID
	if episodeTMDb == q.ParentTMDbID {
		episodeTMDb = ""
	}
	b.add(models.FieldTMDbID, episodeTMDb, "episode-tmdb")

	if q.Title != "" && q.Season > 0 && q.Episode > 0 {
		b.add(models.FieldTitle, fmt.Sprintf("%s S%02dE%02d", q.Title, q.Season, q.Episode), "title-episode")
	}
	b.add(models.FieldTitle, q.Title, "title")
	b.add(models.FieldTitle, q.EpisodeTitle, "episode-title")
	if q.Title != "" && q.EpisodeTitle != "" {
		b.add(models.FieldTitle, q.Title+" "+q.EpisodeTitle, "title-episode-title")
	}
	if q.OriginalTitle != q.Title {
		b.add(models.FieldTitle, q.OriginalTitle, "original-title")
		if q.OriginalTitle != "" && q.Season > 0 && q.Episode > 0 {
			b.add(models.FieldTitle, fmt.Sprintf("%s S%02dE%02d", q.OriginalTitle, q.Season, q.Episode), "original-title-episode")
		}
	}
	b.add(models.FieldRelease, q.Release, "release")
}

func planMovie(b *builder, q models.Query) {
	b.add(models.FieldIMDbID, models.CanonicalIMDbID(q.IMDbID), "imdb")
	b.add(models.FieldTMDbID, q.TMDbID, "tmdb")
	b.add(models.FieldTitle, q.Title, "title")
	if q.OriginalTitle != q.Title {
		b.add(models.FieldTitle, q.OriginalTitle, "original-title")
	}
	b.add(models.FieldRelease, q.Release, "release")
}

type builder struct {
	strategies []models.Strategy
	seen       map[string]bool
}

// add appends a strategy unless the value is empty or the (field, value)
// pair was already planned.
func (b *builder) add(field models.SearchField, value, label string) {
	if value == "" {
		return
	}
	key := string(field) + "\x00" + value
	if b.seen[key] {
		return
	}
	b.seen[key] = true
	b.strategies = append(b.strategies, models.Strategy{Field: field, Value: value, Label: label})
}
