package services

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"subres/internal/models"
	"subres/internal/testutil"
)

// fakeClient scripts cascade responses per query shape.
type fakeClient struct {
	searchFunc   func(query models.Query) ([]models.SearchResult, error)
	downloadBlob []byte
	downloadErr  error
	closed       bool
}

func (f *fakeClient) Search(ctx context.Context, query models.Query) ([]models.SearchResult, error) {
	return f.searchFunc(query)
}

func (f *fakeClient) Download(ctx context.Context, subtitleID string) (*models.DownloadResult, error) {
	if f.downloadErr != nil {
		return nil, f.downloadErr
	}
	return &models.DownloadResult{SubtitleID: subtitleID, Content: f.downloadBlob}, nil
}

func (f *fakeClient) Quota(ctx context.Context) (*models.QuotaInfo, error) {
	return &models.QuotaInfo{Used: 3, Limit: 20, Remaining: 17}, nil
}

func (f *fakeClient) Close() error {
	f.closed = true
	return nil
}

func TestSearchRanksAndDisambiguates(t *testing.T) {
	t.Parallel()

	fake := &fakeClient{
		searchFunc: func(query models.Query) ([]models.SearchResult, error) {
			return []models.SearchResult{
				{ID: "1", Title: "Show S02E04", Language: "en", Downloads: 90},
				{ID: "2", Title: "Show S02E05", Language: "ro", Downloads: 500},
				{ID: "3", Title: "Show S02E04", Language: "ro", Downloads: 40},
				{ID: "3", Title: "Show S02E04", Language: "ro", Downloads: 40}, // duplicate
			}, nil
		},
	}
	r := &resolver{client: fake, stagingDir: t.TempDir()}

	results, err := r.Search(context.Background(), models.Query{
		IsTV:      true,
		Title:     "Show",
		Season:    2,
		Episode:   4,
		Languages: []string{"ro", "en"},
	})
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}

	// Episode narrowing drops the E05 entry, dedupe drops the repeat, and
	// the Romanian result outranks the English one.
	if len(results) != 2 {
		t.Fatalf("Search() returned %d results, want 2", len(results))
	}
	if results[0].ID != "3" || results[1].ID != "1" {
		t.Errorf("result order = [%s %s], want [3 1]", results[0].ID, results[1].ID)
	}
}

func TestManualSearchFallsBackToRelease(t *testing.T) {
	t.Parallel()

	var queries []models.Query
	fake := &fakeClient{
		searchFunc: func(query models.Query) ([]models.SearchResult, error) {
			queries = append(queries, query)
			if query.Release != "" {
				return []models.SearchResult{{ID: "55", Title: "Release Hit", Language: "ro"}}, nil
			}
			return nil, nil
		},
	}
	r := &resolver{client: fake, stagingDir: t.TempDir()}

	results, err := r.ManualSearch(context.Background(), "Show.S01E01.1080p.WEB-RG", []string{"ro"})
	if err != nil {
		t.Fatalf("ManualSearch() error = %v", err)
	}
	if len(results) != 1 || results[0].ID != "55" {
		t.Fatalf("ManualSearch() = %+v, want the release-pass hit", results)
	}
	if len(queries) != 2 || queries[0].Title == "" || queries[1].Release == "" {
		t.Errorf("queries = %+v, want a title pass then a release pass", queries)
	}
}

func TestManualSearchEmptyText(t *testing.T) {
	t.Parallel()

	r := &resolver{client: &fakeClient{}, stagingDir: t.TempDir()}
	results, err := r.ManualSearch(context.Background(), "   ", nil)
	if err != nil || results != nil {
		t.Errorf("ManualSearch() = %v, %v; want nil, nil for blank text", results, err)
	}
}

func TestDownloadExtractsIntoStaging(t *testing.T) {
	t.Parallel()

	staging := t.TempDir()
	fake := &fakeClient{
		downloadBlob: testutil.BuildZip(t, map[string]string{
			"Movie.2024.srt": testutil.SRTSample,
		}),
	}
	r := &resolver{client: fake, stagingDir: staging}

	path, err := r.Download(context.Background(), "4821", models.Query{})
	if err != nil {
		t.Fatalf("Download() error = %v", err)
	}
	if !strings.HasPrefix(path, filepath.Join(staging, "subres", "4821")) {
		t.Errorf("extracted path %q is outside the staging area", path)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("extracted file missing: %v", err)
	}
}

func TestDownloadWipesPreviousStaging(t *testing.T) {
	t.Parallel()

	staging := t.TempDir()
	stale := filepath.Join(staging, "subres", "4821", "stale.srt")
	if err := os.MkdirAll(filepath.Dir(stale), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(stale, []byte("old"), 0o644); err != nil {
		t.Fatal(err)
	}

	fake := &fakeClient{
		downloadBlob: testutil.BuildZip(t, map[string]string{
			"Fresh.srt": testutil.SRTSample,
		}),
	}
	r := &resolver{client: fake, stagingDir: staging}

	if _, err := r.Download(context.Background(), "4821", models.Query{}); err != nil {
		t.Fatalf("Download() error = %v", err)
	}
	if _, err := os.Stat(stale); !os.IsNotExist(err) {
		t.Error("stale file survived the staging wipe")
	}
}

func TestCloseReleasesClient(t *testing.T) {
	t.Parallel()

	fake := &fakeClient{}
	r := &resolver{client: fake, stagingDir: t.TempDir()}
	if err := r.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if !fake.closed {
		t.Error("Close() did not reach the underlying client")
	}
}
