package scraper

import (
	"io"

	"golang.org/x/net/html/charset"
)

// newUTF8Reader wraps an io.Reader with automatic character encoding
// detection and conversion to UTF-8, so listing pages served in legacy
// codepages parse the same as UTF-8 ones. The charset is detected from meta
// tags, XML declarations, BOMs, or heuristics, in that order.
func newUTF8Reader(body io.Reader, contentType string) (io.Reader, error) {
	return charset.NewReader(body, contentType)
}
