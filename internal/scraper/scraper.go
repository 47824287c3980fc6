// Package scraper is the last-resort search path: it scrapes the catalog's
// public website when the API cascade comes back empty. Scraping is best
// effort by contract; every failure mode, including panics, degrades to an
// empty result list and is never surfaced to callers.
package scraper

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"subres/internal/config"
	"subres/internal/models"
)

// Client scrapes subtitle listings from the catalog website.
type Client struct {
	httpClient *http.Client
	siteURL    string
	userAgent  string
}

// New creates a scraping client for the given website root.
func New(httpClient *http.Client, siteURL string) *Client {
	return &Client{
		httpClient: httpClient,
		siteURL:    strings.TrimRight(siteURL, "/"),
		userAgent:  config.DefaultScrapeUserAgent,
	}
}

// Search scrapes listing pages for the query: the IMDb listing first, then
// the title-slug listing if the first yields nothing. It never returns an
// error; any failure produces an empty list.
func (c *Client) Search(ctx context.Context, query models.Query) (results []models.SearchResult) {
	logger := config.GetLogger()

	defer func() {
		if r := recover(); r != nil {
			logger.Error().Interface("panic", r).Msg("Scrape fallback panicked, returning no results")
			results = nil
		}
	}()

	if imdbID := query.BestIMDbID(); imdbID != "" {
		results = c.scrapePage(ctx, c.siteURL+"/subtitrari/imdbid/"+imdbID)
		if len(results) > 0 {
			logger.Info().Str("imdbID", imdbID).Int("count", len(results)).Msg("Scraped results via IMDb listing")
			return results
		}
	}

	slug := c.titleSlug(query)
	if slug == "" {
		return nil
	}
	results = c.scrapePage(ctx, c.siteURL+"/subtitrari/"+slug)
	if len(results) > 0 {
		logger.Info().Str("slug", slug).Int("count", len(results)).Msg("Scraped results via title listing")
	}
	return results
}

// titleSlug builds the website listing slug for the query title. Movies with
// a known year get it appended, matching how the website slugs releases.
func (c *Client) titleSlug(query models.Query) string {
	title := query.Title
	if title == "" {
		title = query.OriginalTitle
	}
	if title == "" {
		return ""
	}
	if !query.IsTV && query.Year > 0 {
		return models.TitleToSlug(fmt.Sprintf("%s %d", title, query.Year))
	}
	return models.TitleToSlug(title)
}

// scrapePage fetches and parses one listing page. Non-200 responses and
// unparseable bodies are logged and swallowed.
func (c *Client) scrapePage(ctx context.Context, pageURL string) []models.SearchResult {
	logger := config.GetLogger()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		logger.Debug().Err(err).Str("url", pageURL).Msg("Failed to build scrape request")
		return nil
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")
	req.Header.Set("Accept-Language", "ro,en;q=0.8")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		logger.Debug().Err(err).Str("url", pageURL).Msg("Scrape request failed")
		return nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		logger.Debug().Int("status", resp.StatusCode).Str("url", pageURL).Msg("Scrape request returned non-OK status")
		return nil
	}

	reader, err := newUTF8Reader(resp.Body, resp.Header.Get("Content-Type"))
	if err != nil {
		logger.Debug().Err(err).Str("url", pageURL).Msg("Failed to detect page encoding")
		return nil
	}

	doc, err := goquery.NewDocumentFromReader(reader)
	if err != nil {
		logger.Debug().Err(err).Str("url", pageURL).Msg("Failed to parse listing page")
		return nil
	}

	return parseListing(doc, c.siteURL)
}
