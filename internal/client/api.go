package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"subres/internal/apperrors"
	"subres/internal/cache"
	"subres/internal/config"
	"subres/internal/models"
)

// searchResponse is the catalog's search payload. The result list arrives
// under "items" or "results" depending on the endpoint revision.
type searchResponse struct {
	Items   []subtitleItem `json:"items"`
	Results []subtitleItem `json:"results"`
}

// subtitleItem tolerates the catalog's loose typing: IDs and counts show up
// as both numbers and strings across endpoints.
type subtitleItem struct {
	ID           flexString `json:"id"`
	Title        string     `json:"title"`
	Description  string     `json:"description"`
	Language     string     `json:"language"`
	Translator   string     `json:"translator"`
	Year         flexInt    `json:"year"`
	Downloads    flexInt    `json:"downloads"`
	Type         string     `json:"type"`
	Link         string     `json:"link"`
	DownloadLink string     `json:"downloadLink"`
}

// flexString decodes either a JSON string or number into a string.
type flexString string

func (f *flexString) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	switch v := raw.(type) {
	case string:
		*f = flexString(v)
	case float64:
		*f = flexString(strconv.FormatInt(int64(v), 10))
	case nil:
		*f = ""
	default:
		*f = flexString(string(data))
	}
	return nil
}

// flexInt decodes either a JSON number or a numeric string into an int.
type flexInt int

func (f *flexInt) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	switch v := raw.(type) {
	case float64:
		*f = flexInt(v)
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err == nil {
			*f = flexInt(n)
		}
	}
	return nil
}

// searchCatalog performs one search request against
// {base}/search/{field}/{value}, optionally filtered to a single catalog
// language. 404 means zero matches, not failure. Results are cached per
// (field, value, language) tuple; provenance is stamped on the way out so a
// cached no-filter response can serve the per-language pass too.
func (c *client) searchCatalog(ctx context.Context, field models.SearchField, value, language string, source models.Provenance) ([]models.SearchResult, error) {
	logger := config.GetLogger()

	cacheKey := cache.Key("search", string(field), value, language)
	if cached, ok := c.searchCache.Get(cacheKey); ok {
		var results []models.SearchResult
		if err := json.Unmarshal(cached, &results); err == nil {
			logger.Debug().Str("field", string(field)).Str("value", value).Msg("Search served from cache")
			return stampSource(results, source), nil
		}
	}

	searchURL := c.baseURL + "/search/" + string(field) + "/" + url.PathEscape(value)
	if language != "" {
		searchURL += "?language=" + url.QueryEscape(language)
	}

	body, err := c.doAPIRequest(ctx, searchURL, searchStatusError)
	if err != nil {
		return nil, err
	}
	if body == nil {
		// 404: this strategy has zero matches.
		c.storeCached(cacheKey, nil)
		return nil, nil
	}

	var payload searchResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		logger.Error().Err(err).Str("url", searchURL).Msg("Catalog returned malformed search JSON")
		return nil, &apperrors.ErrProviderContract{Detail: "malformed search response: " + err.Error()}
	}

	items := payload.Items
	if items == nil {
		items = payload.Results
	}

	results := make([]models.SearchResult, 0, len(items))
	for _, item := range items {
		if item.ID == "" {
			continue
		}
		results = append(results, models.SearchResult{
			ID:           string(item.ID),
			Title:        item.Title,
			Description:  item.Description,
			Language:     normalizeLanguage(item.Language),
			Translator:   item.Translator,
			Year:         int(item.Year),
			Downloads:    int(item.Downloads),
			Type:         item.Type,
			Link:         item.Link,
			DownloadLink: item.DownloadLink,
		})
	}

	c.storeCached(cacheKey, results)
	logger.Debug().
		Str("field", string(field)).
		Str("value", value).
		Str("language", language).
		Int("count", len(results)).
		Msg("Catalog search completed")
	return stampSource(results, source), nil
}

func (c *client) storeCached(key string, results []models.SearchResult) {
	if data, err := json.Marshal(results); err == nil {
		c.searchCache.Set(key, data)
	}
}

func stampSource(results []models.SearchResult, source models.Provenance) []models.SearchResult {
	for i := range results {
		results[i].Source = source
	}
	return results
}

func normalizeLanguage(lang string) string {
	lang = strings.ToLower(strings.TrimSpace(lang))
	if lang == "" {
		return models.DefaultLanguage
	}
	if catalog := models.CatalogLanguage(lang); catalog != "" {
		return catalog
	}
	return lang
}

// statusErrorFunc maps a non-2xx, non-404 status to the search- or
// download-specific error for it.
type statusErrorFunc func(statusCode int, body []byte) error

// doAPIRequest performs an authenticated GET and applies the shared status
// mapping. A nil body with a nil error signals 404.
func (c *client) doAPIRequest(ctx context.Context, requestURL string, statusError statusErrorFunc) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return nil, &apperrors.ErrProviderContract{Detail: "building request: " + err.Error()}
	}
	req.Header.Set("X-Subs-Api-Key", c.apiKey)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &apperrors.ErrServiceUnavailable{Cause: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &apperrors.ErrServiceUnavailable{Cause: err}
	}

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		return body, nil
	case resp.StatusCode == http.StatusNotFound:
		return nil, nil
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return nil, &apperrors.ErrAuthentication{StatusCode: resp.StatusCode}
	case resp.StatusCode >= 500:
		return nil, &apperrors.ErrServiceUnavailable{Cause: fmt.Errorf("HTTP %d from catalog", resp.StatusCode)}
	default:
		return nil, statusError(resp.StatusCode, body)
	}
}

func searchStatusError(statusCode int, body []byte) error {
	if statusCode == http.StatusTooManyRequests {
		return &apperrors.ErrRateLimited{}
	}
	return &apperrors.ErrProviderContract{StatusCode: statusCode, Detail: truncateBody(body)}
}

func truncateBody(body []byte) string {
	body = bytes.TrimSpace(body)
	if len(body) > 200 {
		body = body[:200]
	}
	return string(body)
}
