// Package client talks to the subs.ro catalog API and runs the search
// cascade: every planned strategy without a language filter first, then with
// per-language filters, then the website scrape fallback.
package client

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/failsafe-go/failsafe-go/failsafehttp"
	"github.com/failsafe-go/failsafe-go/timeout"

	"subres/internal/apperrors"
	"subres/internal/cache"
	"subres/internal/config"
	"subres/internal/models"
	"subres/internal/scraper"
)

// Client defines the interface for querying the subs.ro catalog.
type Client interface {
	// Search runs the full strategy cascade for the query and returns raw,
	// unranked results. A nil error with an empty slice means the catalog
	// genuinely has nothing.
	Search(ctx context.Context, query models.Query) ([]models.SearchResult, error)

	// Download fetches the raw archive bytes for a subtitle ID.
	Download(ctx context.Context, subtitleID string) (*models.DownloadResult, error)

	// Quota reports the account's daily download allowance.
	Quota(ctx context.Context) (*models.QuotaInfo, error)

	// Close releases any resources held by the client (e.g., cache connections).
	Close() error
}

// Fallback is the scrape-path search the cascade ends with. It never fails;
// an empty slice is its only bad outcome.
type Fallback interface {
	Search(ctx context.Context, query models.Query) []models.SearchResult
}

// client implements the Client interface
type client struct {
	httpClient  *http.Client
	baseURL     string
	apiKey      string
	userAgent   string
	fallback    Fallback
	searchCache cache.Cache
}

// cacheLogger adapts the zerolog logger to the cache error reporter.
type cacheLogger struct{}

func (cacheLogger) Error(msg string, err error) {
	logger := config.GetLogger()
	logger.Error().Err(err).Msg(msg)
}

// NewClient creates a new client instance with proxy configuration if
// provided. A missing API key is a configuration error: the catalog rejects
// every unauthenticated request, so there is no point building a client.
func NewClient(cfg *config.Config) (Client, error) {
	logger := config.GetLogger()

	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, apperrors.NewConfigurationError("api_key", "is required")
	}

	// Parse timeout duration
	requestTimeout := 30 * time.Second // default
	if cfg.ClientTimeout != "" {
		if parsedTimeout, err := time.ParseDuration(cfg.ClientTimeout); err != nil {
			logger.Warn().Err(err).Str("timeout", cfg.ClientTimeout).Msg("Invalid timeout duration, using default 30s")
		} else {
			requestTimeout = parsedTimeout
		}
	}

	// Clone DefaultTransport to preserve its settings (timeouts, connection
	// pooling, HTTP/2, etc.)
	baseTransport := http.DefaultTransport.(*http.Transport).Clone()

	if cfg.ProxyConnectionString != "" {
		proxyURL, err := url.Parse(cfg.ProxyConnectionString)
		if err != nil {
			logger.Warn().Err(err).Str("proxy", cfg.ProxyConnectionString).Msg("Invalid proxy URL, continuing without proxy")
		} else {
			baseTransport.Proxy = http.ProxyURL(proxyURL)
		}
	}

	// Compression on the inside, the per-request timeout policy on the
	// outside so slow decompression counts against the budget too.
	timeoutPolicy := timeout.With[*http.Response](requestTimeout)
	httpClient := &http.Client{
		Transport: failsafehttp.NewRoundTripper(newCompressionTransport(baseTransport), timeoutPolicy),
	}

	searchCache, err := cache.New(cfg.Cache.Provider, cache.ProviderConfig{
		Size:          cfg.Cache.Size,
		TTL:           cacheTTL(cfg.Cache.TTL),
		Logger:        cacheLogger{},
		RedisAddress:  cfg.Cache.RedisAddress,
		RedisPassword: cfg.Cache.RedisPassword,
		RedisDB:       cfg.Cache.RedisDB,
		Group:         "search",
	})
	if err != nil {
		return nil, err
	}

	scrapeClient := &http.Client{
		Timeout:   requestTimeout,
		Transport: newCompressionTransport(http.DefaultTransport.(*http.Transport).Clone()),
	}

	return &client{
		httpClient:  httpClient,
		baseURL:     strings.TrimRight(cfg.APIBaseURL, "/"),
		apiKey:      cfg.APIKey,
		userAgent:   cfg.UserAgent,
		fallback:    scraper.New(scrapeClient, cfg.SiteURL),
		searchCache: searchCache,
	}, nil
}

func cacheTTL(raw string) time.Duration {
	ttl := 5 * time.Minute
	if raw != "" {
		if parsed, err := time.ParseDuration(raw); err == nil {
			ttl = parsed
		}
	}
	return ttl
}

// Close releases any resources held by the client, such as cache connections.
func (c *client) Close() error {
	return c.searchCache.Close()
}
