package archive

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"subres/internal/apperrors"
	"subres/internal/testutil"
)

func TestExtractZipSingleMember(t *testing.T) {
	t.Parallel()

	blob := testutil.BuildZip(t, map[string]string{
		"Movie.2024.srt": testutil.SRTSample,
	})

	path, err := Extract(blob, t.TempDir(), nil)
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if filepath.Base(path) != "Movie.2024.srt" {
		t.Errorf("extracted %q, want Movie.2024.srt", filepath.Base(path))
	}

	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading extracted file: %v", err)
	}
	if !strings.HasPrefix(string(content), "\xEF\xBB\xBF") {
		t.Error("extracted file is missing the UTF-8 BOM")
	}
	if !strings.Contains(string(content), "Bun venit.") {
		t.Error("extracted file is missing the subtitle body")
	}
}

func TestExtractZipPrefersSupportedExtension(t *testing.T) {
	t.Parallel()

	blob := testutil.BuildZip(t, map[string]string{
		"readme.txt":     "season pack notes",
		"Movie.2024.srt": testutil.SRTSample,
	})

	path, err := Extract(blob, t.TempDir(), nil)
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if filepath.Ext(path) != ".srt" {
		t.Errorf("extracted %q, want the .srt member", filepath.Base(path))
	}
}

func TestExtractZipEpisodeHints(t *testing.T) {
	t.Parallel()

	blob := testutil.BuildZip(t, map[string]string{
		"Show.S02E01.srt": testutil.SRTSample,
		"Show.S02E03.srt": testutil.SRTSample,
		"Show.S02E05.srt": testutil.SRTSample,
	})

	path, err := Extract(blob, t.TempDir(), &EpisodeHints{Season: 2, Episode: 3})
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if filepath.Base(path) != "Show.S02E03.srt" {
		t.Errorf("extracted %q, want the S02E03 member", filepath.Base(path))
	}
}

func TestExtractZipSkipsJunkMembers(t *testing.T) {
	t.Parallel()

	blob := testutil.BuildZip(t, map[string]string{
		"__MACOSX/._Movie.srt": "resource fork noise",
		".hidden.srt":          "hidden",
		"Movie.srt":            testutil.SRTSample,
	})

	path, err := Extract(blob, t.TempDir(), nil)
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if filepath.Base(path) != "Movie.srt" {
		t.Errorf("extracted %q, want Movie.srt", filepath.Base(path))
	}
}

func TestExtractZipWithoutSubtitleMember(t *testing.T) {
	t.Parallel()

	blob := testutil.BuildZip(t, map[string]string{
		"readme.nfo": "no subtitles here",
	})

	_, err := Extract(blob, t.TempDir(), nil)
	if err == nil {
		t.Fatal("Extract() succeeded, want extraction failure")
	}
	if !strings.Contains(err.Error(), "extract") {
		t.Errorf("Extract() error = %v, want an extraction failure", err)
	}
}

func TestExtractPlainSRT(t *testing.T) {
	t.Parallel()

	path, err := Extract([]byte(testutil.SRTSample), t.TempDir(), nil)
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if filepath.Base(path) != "subtitle.srt" {
		t.Errorf("extracted %q, want subtitle.srt", filepath.Base(path))
	}
}

func TestExtractRejectsHTML(t *testing.T) {
	t.Parallel()

	pages := map[string]string{
		"error page":              "<!DOCTYPE html><html><body><h1>Error 502</h1></body></html>",
		"comment with a timecode": "<!DOCTYPE html><body><!-- 00:00:01,000 --> 00:00:02,000 --></body>",
	}
	for name, page := range pages {
		name, page := name, page
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			if _, err := Extract([]byte(page), t.TempDir(), nil); err == nil {
				t.Fatal("Extract() accepted an HTML page")
			}
		})
	}
}

func TestExtractRejectsBinaryGarbage(t *testing.T) {
	t.Parallel()

	blob := []byte("\x01\x02binary garbage\xff\xfe")
	_, err := Extract(blob, t.TempDir(), nil)
	var extractionErr *apperrors.ErrExtraction
	if !errors.As(err, &extractionErr) {
		t.Fatalf("Extract() error = %v, want ErrExtraction", err)
	}
	if extractionErr.Size != len(blob) {
		t.Errorf("ErrExtraction.Size = %d, want %d", extractionErr.Size, len(blob))
	}
}

func TestExtractEmptyBlob(t *testing.T) {
	t.Parallel()

	_, err := Extract(nil, t.TempDir(), nil)
	var extractionErr *apperrors.ErrExtraction
	if err == nil {
		t.Fatal("Extract() succeeded on an empty blob")
	}
	if ok := errors.As(err, &extractionErr); !ok || extractionErr.Size != 0 {
		t.Errorf("Extract() error = %v, want ErrExtraction with size 0", err)
	}
}

func TestExtractDecodesLegacyCodepage(t *testing.T) {
	t.Parallel()

	// Windows-1250 bytes for "românească".
	blob := testutil.BuildZip(t, map[string]string{
		"Movie.srt": "1\n00:00:01,000 --> 00:00:02,000\nrom\xe2neasc\xe3\n",
	})

	path, err := Extract(blob, t.TempDir(), nil)
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading extracted file: %v", err)
	}
	if !strings.Contains(string(content), "românească") {
		t.Errorf("extracted content %q lacks the decoded diacritics", content)
	}
}
