// Package codec decodes the store's internal key and value framing.
//
// Local-storage keys are namespaced byte strings: a namespace marker,
// a single separator byte, then the field name. Keys without the marker
// belong to the engine itself or to another origin; they are rendered
// best-effort and never classified.
package codec

import (
	"bytes"
	"strings"
	"unicode/utf8"
)

const DefaultSep byte = 0x01

var DefaultNamespace = []byte("_ns")

// Placeholder for byte runs that are not valid UTF-8.
const badRune = "�"

type KeyCodec struct {
	Namespace []byte
	Sep       byte
}

type DecodedKey struct {
	Matched bool
	Field   string
}

func NewKeyCodec(namespace string) KeyCodec {
	kc := KeyCodec{Namespace: DefaultNamespace, Sep: DefaultSep}
	if namespace != "" {
		kc.Namespace = []byte(namespace)
	}
	return kc
}

// Decode never fails: a malformed or foreign key only loses classification,
// not its place in the raw map.
func (kc KeyCodec) Decode(raw []byte) DecodedKey {
	ns := kc.Namespace
	if len(raw) > len(ns)+1 && bytes.HasPrefix(raw, ns) && raw[len(ns)] == kc.Sep {
		return DecodedKey{Matched: true, Field: Render(raw[len(ns)+1:])}
	}
	return DecodedKey{Field: Render(raw)}
}

// Encode builds the on-disk key for a field name, for point lookups.
func (kc KeyCodec) Encode(field string) []byte {
	key := make([]byte, 0, len(kc.Namespace)+1+len(field))
	key = append(key, kc.Namespace...)
	key = append(key, kc.Sep)
	return append(key, field...)
}

// Render gives a best-effort text view of arbitrary key bytes.
func Render(b []byte) string {
	if utf8.Valid(b) {
		return string(b)
	}
	return strings.ToValidUTF8(string(b), badRune)
}
