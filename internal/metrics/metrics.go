package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Search and extraction metrics.
var (
	// SearchStrategiesTotal counts catalog search calls per strategy label
	// and outcome ("hit", "empty", "error").
	SearchStrategiesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "search_strategies_total",
			Help: "Total number of catalog search strategy attempts.",
		},
		[]string{"strategy", "outcome"},
	)

	// ScrapeFallbacksTotal counts web-scraping fallbacks per outcome
	// ("hit", "empty").
	ScrapeFallbacksTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "scrape_fallbacks_total",
			Help: "Total number of web-scraping fallback searches.",
		},
		[]string{"outcome"},
	)

	// SubtitleDownloadsTotal counts download actions per status
	// ("success", "error", "not_found", "empty").
	SubtitleDownloadsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "subtitle_downloads_total",
			Help: "Total number of subtitle downloads.",
		},
		[]string{"status"},
	)

	// SubtitleExtractionsTotal counts archive extractions per detected
	// container format ("zip", "rar", "plain", "failed").
	SubtitleExtractionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "subtitle_extractions_total",
			Help: "Total number of subtitle archive extractions.",
		},
		[]string{"format"},
	)
)

func init() {
	prometheus.MustRegister(
		SearchStrategiesTotal,
		ScrapeFallbacksTotal,
		SubtitleDownloadsTotal,
		SubtitleExtractionsTotal,
	)
}
