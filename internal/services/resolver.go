// Package services composes the search cascade, result aggregation, and
// archive extraction into the operations a host application calls.
package services

import (
	"context"

	"subres/internal/models"
)

// Resolver is the top-level subtitle resolution surface.
type Resolver interface {
	// Search resolves a query to a ranked, episode-disambiguated result list.
	Search(ctx context.Context, query models.Query) ([]models.RankedResult, error)

	// ManualSearch resolves free text the way a user typing into a search box
	// expects: as a title first, as a release name if the title finds nothing.
	ManualSearch(ctx context.Context, text string, languages []string) ([]models.RankedResult, error)

	// Download fetches a subtitle by ID and extracts it into the staging
	// area, returning the path of the extracted file.
	Download(ctx context.Context, subtitleID string, query models.Query) (string, error)

	// Quota reports the account's remaining daily downloads.
	Quota(ctx context.Context) (*models.QuotaInfo, error)

	// Close releases held resources.
	Close() error
}
