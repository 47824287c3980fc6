// Command subres searches the subs.ro catalog and downloads subtitles from
// the command line.
//
// Usage:
//
//	subres search -imdb tt0903747 -tv -season 2 -episode 4 -languages ro,en
//	subres search -text "Show.S01E01.1080p.WEB-RG"
//	subres download -id 4821 -season 2 -episode 4
//	subres quota
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"

	"subres/internal/config"
	"subres/internal/metrics"
	"subres/internal/models"
	"subres/internal/services"
)

func main() {
	cfg := config.GetConfig()
	logger := config.GetLogger()

	if cfg.SentryDSN != "" {
		if err := sentry.Init(sentry.ClientOptions{Dsn: cfg.SentryDSN}); err != nil {
			logger.Warn().Err(err).Msg("Failed to initialize Sentry")
		} else {
			defer sentry.Flush(2 * time.Second)
		}
	}

	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	if cfg.Metrics.Enabled {
		metricsServer := metrics.NewHTTPServer(cfg.Metrics.Address, cfg.Metrics.Port)
		go func() {
			logger.Info().Str("address", metricsServer.Addr).Msg("Starting Prometheus metrics HTTP server")
			if err := metricsServer.ListenAndServe(); err != nil && err.Error() != "http: Server closed" {
				logger.Error().Err(err).Msg("Failed to serve metrics")
			}
		}()
		defer func() {
			if err := metricsServer.Shutdown(context.Background()); err != nil {
				logger.Error().Err(err).Msg("Failed to shutdown metrics server")
			}
		}()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	resolver, err := services.NewResolver(cfg)
	if err != nil {
		fail(err, "Failed to create resolver")
	}
	defer func() {
		if err := resolver.Close(); err != nil {
			logger.Error().Err(err).Msg("Failed to close resolver")
		}
	}()

	switch os.Args[1] {
	case "search":
		err = runSearch(ctx, resolver, os.Args[2:])
	case "download":
		err = runDownload(ctx, resolver, os.Args[2:])
	case "quota":
		err = runQuota(ctx, resolver)
	default:
		usage()
		os.Exit(2)
	}
	if err != nil {
		fail(err, "Command failed")
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: subres <search|download|quota> [flags]")
}

func fail(err error, msg string) {
	sentry.CaptureException(err)
	sentry.Flush(2 * time.Second)
	logger := config.GetLogger()
	logger.Fatal().Err(err).Msg(msg)
}

func runSearch(ctx context.Context, resolver services.Resolver, args []string) error {
	fs := flag.NewFlagSet("search", flag.ExitOnError)
	var (
		text          = fs.String("text", "", "free-text search (title, then release name)")
		imdbID        = fs.String("imdb", "", "IMDb id of the movie or episode")
		parentIMDbID  = fs.String("parent-imdb", "", "IMDb id of the show")
		tmdbID        = fs.String("tmdb", "", "TMDb id of the movie or episode")
		parentTMDbID  = fs.String("parent-tmdb", "", "TMDb id of the show")
		title         = fs.String("title", "", "title")
		originalTitle = fs.String("original-title", "", "original (untranslated) title")
		episodeTitle  = fs.String("episode-title", "", "episode title")
		release       = fs.String("release", "", "release name")
		isTV          = fs.Bool("tv", false, "the query targets a TV episode")
		season        = fs.Int("season", 0, "season number")
		episode       = fs.Int("episode", 0, "episode number")
		year          = fs.Int("year", 0, "release year")
		languages     = fs.String("languages", "", "comma-separated language codes, most preferred first")
	)
	if err := fs.Parse(args); err != nil {
		return err
	}

	var (
		results []models.RankedResult
		err     error
	)
	if *text != "" {
		results, err = resolver.ManualSearch(ctx, *text, splitLanguages(*languages))
	} else {
		results, err = resolver.Search(ctx, models.Query{
			IMDbID:        *imdbID,
			ParentIMDbID:  *parentIMDbID,
			TMDbID:        *tmdbID,
			ParentTMDbID:  *parentTMDbID,
			Title:         *title,
			OriginalTitle: *originalTitle,
			EpisodeTitle:  *episodeTitle,
			Release:       *release,
			IsTV:          *isTV,
			Season:        *season,
			Episode:       *episode,
			Year:          *year,
			Languages:     splitLanguages(*languages),
		})
	}
	if err != nil {
		return err
	}

	rows := make([]searchRow, 0, len(results))
	for _, r := range results {
		rows = append(rows, searchRow{
			RankedResult: r,
			LanguageName: models.LanguageName(r.Language),
		})
	}

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(rows)
}

// searchRow augments a result with the human-readable language name for the
// JSON printed on stdout.
type searchRow struct {
	models.RankedResult
	LanguageName string `json:"languageName"`
}

func runDownload(ctx context.Context, resolver services.Resolver, args []string) error {
	fs := flag.NewFlagSet("download", flag.ExitOnError)
	var (
		subtitleID = fs.String("id", "", "subtitle id to download")
		season     = fs.Int("season", 0, "season number for season-pack member selection")
		episode    = fs.Int("episode", 0, "episode number for season-pack member selection")
	)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *subtitleID == "" {
		return fmt.Errorf("download: -id is required")
	}

	query := models.Query{Season: *season, Episode: *episode}
	query.IsTV = *season > 0 && *episode > 0

	path, err := resolver.Download(ctx, *subtitleID, query)
	if err != nil {
		return err
	}
	fmt.Println(path)
	return nil
}

func runQuota(ctx context.Context, resolver services.Resolver) error {
	quota, err := resolver.Quota(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("used %d of %d downloads today, %d remaining\n", quota.Used, quota.Limit, quota.Remaining)
	return nil
}

func splitLanguages(raw string) []string {
	if raw == "" {
		return nil
	}
	var out []string
	for _, code := range strings.Split(raw, ",") {
		if code = strings.TrimSpace(code); code != "" {
			out = append(out, code)
		}
	}
	return out
}
