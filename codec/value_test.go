package codec

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeText(t *testing.T) {
	v := NormalizeValue([]byte("\x01@user:example.com"))
	assert.False(t, v.Binary)
	assert.Equal(t, "@user:example.com", v.Text)

	// UTF-16 style framing byte
	v = NormalizeValue([]byte("\x00dark"))
	assert.False(t, v.Binary)
	assert.Equal(t, "dark", v.Text)
}

func TestNormalizeBinary(t *testing.T) {
	raw := []byte{0x01, 0xff, 0xfe, 0x00}
	v := NormalizeValue(raw)
	assert.True(t, v.Binary)
	assert.Equal(t, "01fffe00", v.Text)
	assert.Len(t, v.Text, 8)

	// round-trip law
	back, err := hex.DecodeString(v.Text)
	assert.NoError(t, err)
	assert.Equal(t, raw, back)
}

func TestNormalizeControlChars(t *testing.T) {
	v := NormalizeValue([]byte("\x01a\x02b\tc\nd"))
	assert.False(t, v.Binary)
	assert.Equal(t, "ab\tc\nd", v.Text)

	// nothing printable survives: fall back to hex of the original
	v = NormalizeValue([]byte{0x01, 0x02, 0x03})
	assert.True(t, v.Binary)
	assert.Equal(t, "010203", v.Text)
}

func TestNormalizeEmpty(t *testing.T) {
	// a bare framing byte is an empty value, not binary data
	v := NormalizeValue([]byte{0x01})
	assert.False(t, v.Binary)
	assert.Equal(t, "", v.Text)

	v = NormalizeValue(nil)
	assert.False(t, v.Binary)
	assert.Equal(t, "", v.Text)
}
