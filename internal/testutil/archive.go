// Package testutil provides fixture builders shared by package tests.
package testutil

import (
	"archive/zip"
	"bytes"
	"testing"
)

// BuildZip creates an in-memory ZIP archive from member name to content.
func BuildZip(t *testing.T, members map[string]string) []byte {
	t.Helper()

	var buf bytes.Buffer
	writer := zip.NewWriter(&buf)
	for name, content := range members {
		entry, err := writer.Create(name)
		if err != nil {
			t.Fatalf("creating zip member %q: %v", name, err)
		}
		if _, err := entry.Write([]byte(content)); err != nil {
			t.Fatalf("writing zip member %q: %v", name, err)
		}
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("closing zip writer: %v", err)
	}
	return buf.Bytes()
}

// SRTSample is a minimal well-formed SRT subtitle body.
const SRTSample = "1\n00:00:01,000 --> 00:00:04,000\nBun venit.\n\n2\n00:00:05,000 --> 00:00:08,000\nLa revedere.\n"
