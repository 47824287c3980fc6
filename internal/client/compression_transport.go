package client

import (
	"compress/gzip"
	"io"
	"net/http"
	"strings"

	"github.com/andybalholm/brotli"
	"github.com/klauspost/compress/zstd"
)

// acceptedEncodings is advertised on every outgoing catalog request unless
// the caller already set its own Accept-Encoding header.
const acceptedEncodings = "gzip, br, zstd"

// compressionTransport negotiates compressed catalog responses and hands the
// caller a transparently decoded body. Go's built-in transport only does this
// for gzip, and stops doing even that once Accept-Encoding is set manually.
type compressionTransport struct {
	next http.RoundTripper
}

func newCompressionTransport(base http.RoundTripper) http.RoundTripper {
	if base == nil {
		base = http.DefaultTransport
	}
	return &compressionTransport{next: base}
}

func (t *compressionTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	// RoundTrippers must not mutate the caller's request.
	req = req.Clone(req.Context())
	if req.Header.Get("Accept-Encoding") == "" {
		req.Header.Set("Accept-Encoding", acceptedEncodings)
	}

	resp, err := t.next.RoundTrip(req)
	if err != nil {
		return nil, err
	}
	if resp.Body == nil || resp.Body == http.NoBody {
		return resp, nil
	}

	decoded, err := decodeBody(resp.Body, parseContentEncoding(resp.Header.Get("Content-Encoding")))
	if err != nil {
		resp.Body.Close()
		return nil, err
	}
	if decoded == nil {
		return resp, nil
	}

	resp.Body = decoded
	// The stated length describes the compressed stream, not what the
	// caller will now read.
	resp.Header.Del("Content-Encoding")
	resp.Header.Del("Content-Length")
	resp.ContentLength = -1

	return resp, nil
}

// decodeBody wraps body in a decoder for the given encoding. It returns
// (nil, nil) when the encoding is empty or unrecognized, leaving the
// response untouched.
func decodeBody(body io.ReadCloser, encoding string) (io.ReadCloser, error) {
	switch encoding {
	case "gzip":
		gz, err := gzip.NewReader(body)
		if err != nil {
			return nil, err
		}
		return &decodedBody{decoder: gz, raw: body}, nil
	case "br":
		return &decodedBody{decoder: io.NopCloser(brotli.NewReader(body)), raw: body}, nil
	case "zstd":
		zr, err := zstd.NewReader(body)
		if err != nil {
			return nil, err
		}
		return &decodedBody{decoder: zr.IOReadCloser(), raw: body}, nil
	}
	return nil, nil
}

// decodedBody closes both the decoder and the underlying network body, so
// the connection can be reused even when the caller only closes resp.Body.
type decodedBody struct {
	decoder io.ReadCloser
	raw     io.ReadCloser
}

func (d *decodedBody) Read(p []byte) (int, error) {
	return d.decoder.Read(p)
}

func (d *decodedBody) Close() error {
	decErr := d.decoder.Close()
	rawErr := d.raw.Close()
	if decErr != nil {
		return decErr
	}
	return rawErr
}

// parseContentEncoding picks the encoding to undo from a Content-Encoding
// header. With a comma-separated list the last entry was applied last, so it
// is the one the client must strip.
func parseContentEncoding(header string) string {
	header = strings.TrimSpace(header)
	if header == "" {
		return ""
	}
	parts := strings.Split(header, ",")
	return strings.ToLower(strings.TrimSpace(parts[len(parts)-1]))
}
