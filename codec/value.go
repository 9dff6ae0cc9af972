package codec

import (
	"encoding/hex"
	"strings"
	"unicode/utf8"
)

// Value is a normalized store value. Binary means Text holds the full
// original byte sequence in lowercase hex (exactly reversible).
type Value struct {
	Text   string
	Binary bool
}

// Values carry leading engine version/type bytes (0x00 or 0x01) that must
// be skipped before text interpretation.
func stripVersion(raw []byte) []byte {
	for len(raw) > 0 && raw[0] <= 0x01 {
		raw = raw[1:]
	}
	return raw
}

// NormalizeValue decodes a raw store value. Strict UTF-8 decode after
// version-byte stripping; control characters are removed (structural
// whitespace kept). If decoding fails, or stripping leaves nothing of a
// non-empty payload, the whole original value is hex-encoded instead.
func NormalizeValue(raw []byte) Value {
	payload := stripVersion(raw)
	if len(payload) == 0 {
		// an empty value is just the framing byte, not binary data
		return Value{}
	}
	if !utf8.Valid(payload) {
		return Value{Text: hex.EncodeToString(raw), Binary: true}
	}
	text := stripControl(string(payload))
	if text == "" {
		return Value{Text: hex.EncodeToString(raw), Binary: true}
	}
	return Value{Text: text}
}

func stripControl(s string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '\t', '\n', '\r':
			return r
		}
		if r < 0x20 || r == 0x7f {
			return -1
		}
		return r
	}, s)
}
