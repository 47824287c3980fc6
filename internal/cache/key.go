package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// Key derives a stable cache key from a method name and its normalized
// parameters. Parameters are lowercased and trimmed before hashing so that
// equivalent requests ("Title", "title ") share an entry. The hash keeps
// keys short and safe for any backend regardless of parameter content.
func Key(method string, params ...string) string {
	h := sha256.New()
	h.Write([]byte(method))
	for _, p := range params {
		h.Write([]byte{0})
		h.Write([]byte(strings.ToLower(strings.TrimSpace(p))))
	}
	return method + ":" + hex.EncodeToString(h.Sum(nil))[:32]
}
