package client

import (
	"context"
	"fmt"

	"subres/internal/config"
	"subres/internal/metrics"
	"subres/internal/models"
	"subres/internal/planner"
)

// Search runs the strategy cascade. Pass one tries every strategy without a
// language filter and stops at the first non-empty result set. Pass two
// retries every strategy once per requested language. Pass three hands the
// query to the scrape fallback. Any catalog error aborts the whole cascade;
// an empty strategy for this query just moves on to the next.
func (c *client) Search(ctx context.Context, query models.Query) ([]models.SearchResult, error) {
	logger := config.GetLogger()

	if !query.HasIdentity() {
		logger.Warn().Msg("Query carries no searchable identity, title, or release")
		return nil, nil
	}

	strategies := planner.Plan(query)
	if len(strategies) == 0 {
		return nil, nil
	}

	// Pass 1: no language filter, first hit wins.
	for _, strategy := range strategies {
		results, err := c.searchCatalog(ctx, strategy.Field, strategy.Value, "", models.SourceAPI)
		if err != nil {
			metrics.SearchStrategiesTotal.WithLabelValues(strategy.Label, "error").Inc()
			return nil, fmt.Errorf("strategy %s: %w", strategy.Label, err)
		}
		results = filterByYear(results, query, strategy)
		if len(results) > 0 {
			metrics.SearchStrategiesTotal.WithLabelValues(strategy.Label, "hit").Inc()
			logger.Info().
				Str("strategy", strategy.Label).
				Int("count", len(results)).
				Msg("Search strategy produced results")
			return results, nil
		}
		metrics.SearchStrategiesTotal.WithLabelValues(strategy.Label, "empty").Inc()
	}

	// Pass 2: same strategies, filtered to each requested language.
	languages := models.CatalogLanguages(query.Languages)
	if len(languages) > 0 {
		for _, strategy := range strategies {
			var combined []models.SearchResult
			for _, language := range languages {
				results, err := c.searchCatalog(ctx, strategy.Field, strategy.Value, language, models.SourceAPIFallback)
				if err != nil {
					metrics.SearchStrategiesTotal.WithLabelValues(strategy.Label, "error").Inc()
					return nil, fmt.Errorf("strategy %s (language %s): %w", strategy.Label, language, err)
				}
				combined = append(combined, results...)
			}
			combined = filterByYear(combined, query, strategy)
			if len(combined) > 0 {
				metrics.SearchStrategiesTotal.WithLabelValues(strategy.Label, "hit").Inc()
				logger.Info().
					Str("strategy", strategy.Label).
					Int("count", len(combined)).
					Msg("Per-language retry produced results")
				return combined, nil
			}
		}
	}

	// Pass 3: scrape the website. Best effort only.
	results := c.fallback.Search(ctx, query)
	if len(results) > 0 {
		metrics.ScrapeFallbacksTotal.WithLabelValues("hit").Inc()
	} else {
		metrics.ScrapeFallbacksTotal.WithLabelValues("empty").Inc()
		logger.Info().Msg("Search exhausted all strategies without results")
	}
	return results, nil
}

// filterByYear drops movie results more than a year away from the query's
// release year. Only title-based strategies need it: identity strategies
// cannot hit the wrong production, and years in the catalog are off by one
// often enough that exact matching loses real subtitles. A filter that would
// empty the set is skipped.
func filterByYear(results []models.SearchResult, query models.Query, strategy models.Strategy) []models.SearchResult {
	if strategy.Field != models.FieldTitle || query.IsTV || query.Year <= 0 {
		return results
	}

	var kept []models.SearchResult
	for _, result := range results {
		if result.Year == 0 {
			kept = append(kept, result)
			continue
		}
		delta := result.Year - query.Year
		if delta >= -1 && delta <= 1 {
			kept = append(kept, result)
		}
	}
	if len(kept) == 0 {
		return results
	}
	return kept
}
