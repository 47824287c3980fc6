package services

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"subres/internal/aggregate"
	"subres/internal/archive"
	"subres/internal/client"
	"subres/internal/config"
	"subres/internal/models"
)

type resolver struct {
	client     client.Client
	stagingDir string
}

// NewResolver builds the resolver from configuration. It fails fast on
// configuration errors such as a missing API key.
func NewResolver(cfg *config.Config) (Resolver, error) {
	apiClient, err := client.NewClient(cfg)
	if err != nil {
		return nil, err
	}

	stagingDir := cfg.StagingDir
	if stagingDir == "" {
		stagingDir = os.TempDir()
	}

	return &resolver{
		client:     apiClient,
		stagingDir: stagingDir,
	}, nil
}

// Search runs the cascade and post-processes the raw results: dedupe,
// language filter, ranking, and for episode queries the tiered
// season/episode narrowing.
func (r *resolver) Search(ctx context.Context, query models.Query) ([]models.RankedResult, error) {
	raw, err := r.client.Search(ctx, query)
	if err != nil {
		return nil, err
	}

	requested := models.CatalogLanguages(query.Languages)
	ranked := aggregate.Aggregate(raw, requested)
	if query.IsTV && query.HasEpisode() {
		ranked = aggregate.Disambiguate(ranked, query.Season, query.Episode, query.EpisodeTitle)
	}

	logger := config.GetLogger()
	logger.Info().
		Int("raw", len(raw)).
		Int("returned", len(ranked)).
		Msg("Search resolved")
	return ranked, nil
}

// ManualSearch treats free text as a title first and as a release name
// second, since users paste both into the same box.
func (r *resolver) ManualSearch(ctx context.Context, text string, languages []string) ([]models.RankedResult, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, nil
	}

	results, err := r.Search(ctx, models.Query{Title: text, Languages: languages})
	if err != nil {
		return nil, err
	}
	if len(results) > 0 {
		return results, nil
	}
	return r.Search(ctx, models.Query{Release: text, Languages: languages})
}

// Download fetches the subtitle archive and extracts a single decoded file
// into a per-subtitle staging directory, wiped before each attempt so stale
// files from a previous download never leak into the result.
func (r *resolver) Download(ctx context.Context, subtitleID string, query models.Query) (string, error) {
	result, err := r.client.Download(ctx, subtitleID)
	if err != nil {
		return "", err
	}

	destDir := filepath.Join(r.stagingDir, "subres", subtitleID)
	if err := os.RemoveAll(destDir); err != nil {
		return "", err
	}

	var hints *archive.EpisodeHints
	if query.IsTV && query.HasEpisode() {
		hints = &archive.EpisodeHints{Season: query.Season, Episode: query.Episode}
	}

	path, err := archive.Extract(result.Content, destDir, hints)
	if err != nil {
		return "", err
	}

	logger := config.GetLogger()
	logger.Info().
		Str("subtitleID", subtitleID).
		Str("path", path).
		Msg("Subtitle downloaded and extracted")
	return path, nil
}

// Quota proxies the catalog's quota endpoint.
func (r *resolver) Quota(ctx context.Context) (*models.QuotaInfo, error) {
	return r.client.Quota(ctx)
}

// Close releases the underlying client's resources.
func (r *resolver) Close() error {
	return r.client.Close()
}
