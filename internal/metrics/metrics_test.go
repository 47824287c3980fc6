package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	dto "github.com/prometheus/client_model/go"
)

func TestSearchStrategiesTotal_Increments(t *testing.T) {
	c, err := SearchStrategiesTotal.GetMetricWithLabelValues("parent-imdb", "hit")
	if err != nil {
		t.Fatalf("GetMetricWithLabelValues: %v", err)
	}

	var before dto.Metric
	if err := c.Write(&before); err != nil {
		t.Fatalf("Write: %v", err)
	}

	SearchStrategiesTotal.WithLabelValues("parent-imdb", "hit").Inc()

	var after dto.Metric
	if err := c.Write(&after); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if diff := after.GetCounter().GetValue() - before.GetCounter().GetValue(); diff != 1 {
		t.Errorf("expected counter to increment by 1, got %.0f", diff)
	}
}

func TestNewHTTPServer_ServesMetrics(t *testing.T) {
	// A counter family only appears in scrape output once it has a sample.
	SubtitleDownloadsTotal.WithLabelValues("success").Inc()

	server := NewHTTPServer("localhost", 9090)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	server.Handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("GET /metrics = %d, want 200", rec.Code)
	}
	body, _ := io.ReadAll(rec.Body)
	if !strings.Contains(string(body), "subtitle_downloads_total") {
		t.Error("expected registered counters in /metrics output")
	}
}

func TestNewHTTPServer_DefaultPort(t *testing.T) {
	server := NewHTTPServer("0.0.0.0", 0)
	if server.Addr != "0.0.0.0:9090" {
		t.Errorf("default port: Addr = %q, want 0.0.0.0:9090", server.Addr)
	}
}
