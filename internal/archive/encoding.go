package archive

import (
	"bytes"
	"strings"
	"unicode/utf8"

	"golang.org/x/net/html/charset"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"subres/internal/config"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Legacy codepages seen in the wild for Romanian subtitle files, tried in
// order once the bytes fail UTF-8 validation.
var legacyEncodings = []encoding.Encoding{
	charmap.Windows1250,
	charmap.ISO8859_2,
	charmap.Windows1252,
}

// decodeSubtitle converts raw subtitle bytes to a UTF-8 string. Valid UTF-8
// passes through untouched; anything else goes through charset detection and
// the legacy codepage chain. The function never fails: undecodable bytes are
// replaced rather than dropped so a mostly-good file stays usable.
func decodeSubtitle(data []byte) string {
	data = bytes.TrimPrefix(data, utf8BOM)
	if utf8.Valid(data) {
		return string(data)
	}

	logger := config.GetLogger()

	if enc, name, certain := charset.DetermineEncoding(data, ""); certain && enc != nil {
		if text, err := decodeWith(enc, data); err == nil && utf8.ValidString(text) {
			logger.Debug().Str("encoding", name).Msg("Decoded subtitle via detected charset")
			return text
		}
	}

	for _, enc := range legacyEncodings {
		if text, err := decodeWith(enc, data); err == nil && utf8.ValidString(text) {
			return text
		}
	}

	logger.Debug().Int("size", len(data)).Msg("Subtitle kept with replacement runes")
	return strings.ToValidUTF8(string(data), "�")
}

func decodeWith(enc encoding.Encoding, data []byte) (string, error) {
	decoded, _, err := transform.Bytes(enc.NewDecoder(), data)
	if err != nil {
		return "", err
	}
	return string(decoded), nil
}
