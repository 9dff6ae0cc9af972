// Package catalog maps decoded field names to slots of the metadata
// record. The rule table is built once and never mutated; new field
// patterns are a data change, not a control-flow change.
package catalog

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

type Kind string

const (
	KindScalar Kind = "scalar"
	KindList   Kind = "list"
)

// Slot identifiers, shared with the record's merge logic.
type Slot string

const (
	UserID         Slot = "user_id"
	DisplayName    Slot = "display_name"
	AvatarURL      Slot = "avatar_url"
	Theme          Slot = "theme"
	Language       Slot = "language"
	Notifications  Slot = "notifications_enabled"
	DeviceID       Slot = "device_id"
	DeviceName     Slot = "device_name"
	Curve25519Key  Slot = "curve25519_key"
	Ed25519Key     Slot = "ed25519_key"
	LastRoomID     Slot = "last_room_id"
	RoomIDs        Slot = "room_ids"
	EncryptedRooms Slot = "encrypted_rooms"
)

var scalarSlots = map[Slot]bool{
	UserID: true, DisplayName: true, AvatarURL: true, Theme: true,
	Language: true, Notifications: true, DeviceID: true, DeviceName: true,
	Curve25519Key: true, Ed25519Key: true, LastRoomID: true,
}

var listSlots = map[Slot]bool{
	RoomIDs: true, EncryptedRooms: true,
}

// Rule is one (pattern, slot-kind, slot) tuple. Prefix rules match any
// field name starting with Match; FromSuffix list rules take the matched
// suffix as the value (per-room keys carry the room id in the key).
type Rule struct {
	Match      string `yaml:"match"`
	Prefix     bool   `yaml:"prefix,omitempty"`
	Kind       Kind   `yaml:"kind"`
	Slot       Slot   `yaml:"slot"`
	FromSuffix bool   `yaml:"from_suffix,omitempty"`
}

func (r Rule) Valid() bool {
	if len(r.Match) == 0 {
		return false
	}
	for _, l := range r.Match { // has unsafe chars
		if l < ' ' {
			return false
		}
	}
	switch r.Kind {
	case KindScalar:
		return scalarSlots[r.Slot] && !r.FromSuffix
	case KindList:
		return listSlots[r.Slot] && (!r.FromSuffix || r.Prefix)
	}
	return false
}

// Match is a fired rule; Suffix is set for prefix rules.
type Match struct {
	Rule   Rule
	Suffix string
}

type Catalog struct {
	rules    []Rule
	exact    map[string][]Rule
	prefixed []Rule
}

var ErrBadRule = errors.New("catalog: invalid rule")

func New(rules []Rule) (*Catalog, error) {
	cat := &Catalog{exact: make(map[string][]Rule)}
	for _, r := range rules {
		if !r.Valid() {
			return nil, fmt.Errorf("%w: %q -> %s/%s", ErrBadRule, r.Match, r.Kind, r.Slot)
		}
		cat.rules = append(cat.rules, r)
		if r.Prefix {
			cat.prefixed = append(cat.prefixed, r)
		} else {
			cat.exact[r.Match] = append(cat.exact[r.Match], r)
		}
	}
	return cat, nil
}

// Classify returns every rule firing for the field name, exact matches
// first, then prefix matches in table order. An empty result means the
// entry is raw-only.
func (c *Catalog) Classify(field string) (ms []Match) {
	for _, r := range c.exact[field] {
		ms = append(ms, Match{Rule: r})
	}
	for _, r := range c.prefixed {
		if strings.HasPrefix(field, r.Match) && len(field) > len(r.Match) {
			ms = append(ms, Match{Rule: r, Suffix: field[len(r.Match):]})
		}
	}
	return ms
}

func (c *Catalog) Len() int {
	return len(c.rules)
}

// Patterns renders the table in its original order, one line per rule.
// Prefix patterns carry a trailing star.
func (c *Catalog) Patterns() []string {
	ps := make([]string, 0, len(c.rules))
	for _, r := range c.rules {
		m := r.Match
		if r.Prefix {
			m += "*"
		}
		ps = append(ps, fmt.Sprintf("%s -> %s %s", m, r.Kind, r.Slot))
	}
	return ps
}

// Default is the built-in table for Element Desktop local storage.
func Default() *Catalog {
	cat, err := New(defaultRules)
	if err != nil {
		panic(err) // the built-in table is checked by tests
	}
	return cat
}

var defaultRules = []Rule{
	{Match: "mx_user_id", Kind: KindScalar, Slot: UserID},
	{Match: "mx_profile_displayname", Kind: KindScalar, Slot: DisplayName},
	{Match: "mx_profile_avatar_url", Kind: KindScalar, Slot: AvatarURL},
	{Match: "mx_theme", Kind: KindScalar, Slot: Theme},
	{Match: "mx_language", Kind: KindScalar, Slot: Language},
	{Match: "mx_notifications_enabled", Kind: KindScalar, Slot: Notifications},
	{Match: "mx_device_id", Kind: KindScalar, Slot: DeviceID},
	{Match: "mx_device_name", Kind: KindScalar, Slot: DeviceName},
	{Match: "mx_curve25519_key", Kind: KindScalar, Slot: Curve25519Key},
	{Match: "mx_ed25519_key", Kind: KindScalar, Slot: Ed25519Key},
	// the last-room key both sets the scalar and joins the room list
	{Match: "mx_last_room_id", Kind: KindScalar, Slot: LastRoomID},
	{Match: "mx_last_room_id", Kind: KindList, Slot: RoomIDs},
	{Match: "mx_room_", Prefix: true, Kind: KindList, Slot: RoomIDs, FromSuffix: true},
	{Match: "mx_encrypted_room_", Prefix: true, Kind: KindList, Slot: EncryptedRooms, FromSuffix: true},
}

type ruleFile struct {
	Rules []Rule `yaml:"rules"`
}

// Load reads a rule table from YAML, replacing the built-in default.
func Load(data []byte) (*Catalog, error) {
	var rf ruleFile
	if err := yaml.Unmarshal(data, &rf); err != nil {
		return nil, fmt.Errorf("catalog: %w", err)
	}
	if len(rf.Rules) == 0 {
		return nil, fmt.Errorf("%w: empty rule file", ErrBadRule)
	}
	return New(rf.Rules)
}

func LoadFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Load(data)
}
