package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultTable(t *testing.T) {
	cat := Default()
	assert.Equal(t, len(defaultRules), cat.Len())

	ms := cat.Classify("mx_user_id")
	require.Len(t, ms, 1)
	assert.Equal(t, KindScalar, ms[0].Rule.Kind)
	assert.Equal(t, UserID, ms[0].Rule.Slot)

	// unknown keys are raw-only
	assert.Empty(t, cat.Classify("mx_access_token"))
	assert.Empty(t, cat.Classify("whatever"))
}

func TestMultiFire(t *testing.T) {
	cat := Default()
	ms := cat.Classify("mx_last_room_id")
	require.Len(t, ms, 2)
	assert.Equal(t, LastRoomID, ms[0].Rule.Slot)
	assert.Equal(t, RoomIDs, ms[1].Rule.Slot)
}

func TestPrefixSuffixCapture(t *testing.T) {
	cat := Default()
	ms := cat.Classify("mx_room_!abc:example.com")
	require.Len(t, ms, 1)
	assert.Equal(t, RoomIDs, ms[0].Rule.Slot)
	assert.True(t, ms[0].Rule.FromSuffix)
	assert.Equal(t, "!abc:example.com", ms[0].Suffix)

	// bare prefix with no suffix never fires
	assert.Empty(t, cat.Classify("mx_room_"))
}

func TestPatterns(t *testing.T) {
	cat := Default()
	ps := cat.Patterns()
	require.Len(t, ps, cat.Len())

	// table order is preserved, prefix rules are starred
	assert.Equal(t, "mx_user_id -> scalar user_id", ps[0])
	assert.Contains(t, ps, "mx_room_* -> list room_ids")
	assert.Contains(t, ps, "mx_encrypted_room_* -> list encrypted_rooms")

	// deterministic across calls
	assert.Equal(t, ps, cat.Patterns())
}

func TestRuleValidation(t *testing.T) {
	_, err := New([]Rule{{Match: "", Kind: KindScalar, Slot: UserID}})
	assert.ErrorIs(t, err, ErrBadRule)

	_, err = New([]Rule{{Match: "x", Kind: KindScalar, Slot: RoomIDs}})
	assert.ErrorIs(t, err, ErrBadRule)

	// suffix capture requires a prefix rule
	_, err = New([]Rule{{Match: "x", Kind: KindList, Slot: RoomIDs, FromSuffix: true}})
	assert.ErrorIs(t, err, ErrBadRule)

	_, err = New([]Rule{{Match: "a\x01b", Kind: KindScalar, Slot: UserID}})
	assert.ErrorIs(t, err, ErrBadRule)
}

func TestLoadYaml(t *testing.T) {
	data := []byte(`
rules:
  - match: custom_user
    kind: scalar
    slot: user_id
  - match: "room/"
    prefix: true
    kind: list
    slot: room_ids
    from_suffix: true
`)
	cat, err := Load(data)
	require.NoError(t, err)
	assert.Equal(t, 2, cat.Len())

	ms := cat.Classify("room/!r1:x.org")
	require.Len(t, ms, 1)
	assert.Equal(t, "!r1:x.org", ms[0].Suffix)

	_, err = Load([]byte("rules: []"))
	assert.ErrorIs(t, err, ErrBadRule)
}
