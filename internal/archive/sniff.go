package archive

import (
	"bytes"
	"regexp"
)

// Archive signatures that must never be written out as plain text. A blob
// starting with one of these reached the plain attempt only because the
// container itself was unreadable.
var archiveMagics = [][]byte{
	[]byte("PK\x03\x04"),
	[]byte("PK\x05\x06"),
	[]byte("Rar!"),
	[]byte("7z\xBC\xAF\x27\x1C"),
}

var htmlMarkers = [][]byte{
	[]byte("<!doctype"),
	[]byte("<html"),
	[]byte("<?xml"),
	[]byte("<?php"),
}

var (
	srtTimecodeRe = regexp.MustCompile(`\d{2}:\d{2}:\d{2}[,.]\d{3}\s*-->\s*\d{2}:\d{2}:\d{2}`)
	microDVDRe    = regexp.MustCompile(`(?m)^\{\d+\}\{\d+\}`)
)

const (
	sniffWindow      = 500
	maxAngleBrackets = 3
)

// sniffPlainSubtitle decides whether a blob can be served as a bare subtitle
// file and which extension it should get. Error pages from misbehaving
// mirrors arrive with a 200 status, so markup has to be rejected by content.
func sniffPlainSubtitle(blob []byte) (string, bool) {
	for _, magic := range archiveMagics {
		if bytes.HasPrefix(blob, magic) {
			return "", false
		}
	}

	head := blob
	if len(head) > sniffWindow {
		head = head[:sniffWindow]
	}
	lowered := bytes.ToLower(bytes.TrimSpace(head))
	for _, marker := range htmlMarkers {
		if bytes.HasPrefix(lowered, marker) {
			return "", false
		}
	}
	if bytes.Count(head, []byte("<")) > maxAngleBrackets {
		return "", false
	}

	switch {
	case srtTimecodeRe.Match(blob):
		return ".srt", true
	case bytes.Contains(blob, []byte("[Script Info]")):
		return ".ass", true
	case microDVDRe.Match(blob):
		return ".sub", true
	}

	// No recognizable timing structure. Writing the blob out anyway would
	// hand the player a truncated download or binary remnant as a subtitle.
	return "", false
}
