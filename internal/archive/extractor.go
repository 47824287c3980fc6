// Package archive turns the raw byte blob returned by the catalog's download
// endpoint into a decoded subtitle file. Three attempts are made in order:
// ZIP container, RAR container, then treating the blob as an unwrapped
// subtitle. Each attempt failing is a normal outcome; only all three failing
// is an extraction failure.
package archive

import (
	"archive/zip"
	"bytes"
	"io"
	"os"
	"path/filepath"

	"github.com/nwaples/rardecode/v2"

	"subres/internal/apperrors"
	"subres/internal/config"
	"subres/internal/metrics"
)

// EpisodeHints narrows member selection inside season-pack archives.
type EpisodeHints struct {
	Season  int
	Episode int
}

// Extract writes exactly one subtitle file from blob into destDir (created
// if absent) and returns its path. The returned error is an
// apperrors.ErrExtraction when no attempt produced a usable subtitle.
func Extract(blob []byte, destDir string, hints *EpisodeHints) (string, error) {
	logger := config.GetLogger()

	if len(blob) == 0 {
		return "", &apperrors.ErrExtraction{Size: 0}
	}
	if err := os.MkdirAll(destDir, 0o755); err != nil {
		logger.Error().Err(err).Str("dir", destDir).Msg("Failed to create extraction directory")
		return "", &apperrors.ErrExtraction{Size: len(blob)}
	}

	if path, ok := extractZip(blob, destDir, hints); ok {
		metrics.SubtitleExtractionsTotal.WithLabelValues("zip").Inc()
		return path, nil
	}
	if path, ok := extractRar(blob, destDir, hints); ok {
		metrics.SubtitleExtractionsTotal.WithLabelValues("rar").Inc()
		return path, nil
	}
	if path, ok := extractPlain(blob, destDir); ok {
		metrics.SubtitleExtractionsTotal.WithLabelValues("plain").Inc()
		return path, nil
	}

	metrics.SubtitleExtractionsTotal.WithLabelValues("failed").Inc()
	logger.Warn().Int("size", len(blob)).Msg("No subtitle extractable from downloaded bytes")
	return "", &apperrors.ErrExtraction{Size: len(blob)}
}

// extractZip attempts to read blob as a ZIP container. An invalid signature
// is a normal "try next format" outcome.
func extractZip(blob []byte, destDir string, hints *EpisodeHints) (string, bool) {
	logger := config.GetLogger()

	zipReader, err := zip.NewReader(bytes.NewReader(blob), int64(len(blob)))
	if err != nil {
		logger.Debug().Err(err).Msg("Not a ZIP container")
		return "", false
	}

	names := make([]string, 0, len(zipReader.File))
	files := make(map[string]*zip.File, len(zipReader.File))
	for _, f := range zipReader.File {
		if f.FileInfo().IsDir() {
			continue
		}
		names = append(names, f.Name)
		files[f.Name] = f
	}

	target, ok := selectMember(names, hints)
	if !ok {
		logger.Debug().Int("fileCount", len(names)).Msg("No subtitle member in ZIP")
		return "", false
	}

	rc, err := files[target].Open()
	if err != nil {
		logger.Debug().Err(err).Str("member", target).Msg("Failed to open ZIP member")
		return "", false
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		logger.Debug().Err(err).Str("member", target).Msg("Failed to read ZIP member")
		return "", false
	}

	logger.Info().Str("member", target).Int("size", len(data)).Msg("Extracted subtitle from ZIP")
	return writeSubtitleFile(destDir, filepath.Base(target), data)
}

// extractRar attempts to read blob as a RAR container. The decoder needs
// file-backed access, so the blob goes through a temporary file that is
// removed on every exit path.
func extractRar(blob []byte, destDir string, hints *EpisodeHints) (string, bool) {
	logger := config.GetLogger()

	tmp, err := os.CreateTemp("", "subres-*.rar")
	if err != nil {
		logger.Debug().Err(err).Msg("Failed to create temporary RAR file")
		return "", false
	}
	defer func() {
		_ = os.Remove(tmp.Name())
	}()

	if _, err := tmp.Write(blob); err != nil {
		_ = tmp.Close()
		logger.Debug().Err(err).Msg("Failed to write temporary RAR file")
		return "", false
	}
	if err := tmp.Close(); err != nil {
		return "", false
	}

	reader, err := rardecode.OpenReader(tmp.Name())
	if err != nil {
		logger.Debug().Err(err).Msg("Not a RAR container")
		return "", false
	}
	defer reader.Close()

	var names []string
	contents := make(map[string][]byte)
	for {
		header, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			logger.Debug().Err(err).Msg("Failed to walk RAR entries")
			return "", false
		}
		if header.IsDir {
			continue
		}
		names = append(names, header.Name)
		if !hasSubtitleExtension(header.Name) {
			continue
		}
		data, err := io.ReadAll(reader)
		if err != nil {
			logger.Debug().Err(err).Str("member", header.Name).Msg("Failed to read RAR member")
			return "", false
		}
		contents[header.Name] = data
	}

	target, ok := selectMember(names, hints)
	if !ok {
		logger.Debug().Int("fileCount", len(names)).Msg("No subtitle member in RAR")
		return "", false
	}

	data, ok := contents[target]
	if !ok {
		return "", false
	}
	logger.Info().Str("member", target).Int("size", len(data)).Msg("Extracted subtitle from RAR")
	return writeSubtitleFile(destDir, filepath.Base(target), data)
}

// extractPlain treats the blob itself as an unwrapped subtitle, guarded by
// content sniffing against archive remnants and HTML error pages.
func extractPlain(blob []byte, destDir string) (string, bool) {
	ext, ok := sniffPlainSubtitle(blob)
	if !ok {
		return "", false
	}
	return writeSubtitleFile(destDir, "subtitle"+ext, blob)
}

// writeSubtitleFile decodes data to UTF-8 and writes it BOM-prefixed for
// downstream compatibility. If the text write fails the raw bytes are
// written as a last resort so the action still produces a file.
func writeSubtitleFile(dir, base string, data []byte) (string, bool) {
	logger := config.GetLogger()
	path := filepath.Join(dir, base)

	text := decodeSubtitle(data)
	if err := writeWithBOM(path, text); err == nil {
		return path, true
	} else {
		logger.Error().Err(err).Str("path", path).Msg("Text write failed, falling back to raw bytes")
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		logger.Error().Err(err).Str("path", path).Msg("Raw write failed")
		return "", false
	}
	return path, true
}

func writeWithBOM(path, text string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if _, err := f.Write(utf8BOM); err != nil {
		_ = f.Close()
		return err
	}
	if _, err := f.WriteString(text); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
