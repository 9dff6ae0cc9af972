package elemeta

import (
	"github.com/bahrom04-lab/element-desktop-leveldb/catalog"
)

// MetadataRecord is the structured result of one extraction. Scalars are
// nil until the first matching entry; lists keep first-insertion order
// with duplicates suppressed; Raw holds every decoded key regardless of
// classification. Field order here is the export order.
type MetadataRecord struct {
	UserID               *string `json:"user_id"`
	DisplayName          *string `json:"display_name"`
	AvatarURL            *string `json:"avatar_url"`
	Theme                *string `json:"theme"`
	Language             *string `json:"language"`
	NotificationsEnabled *string `json:"notifications_enabled"`

	RoomIDs        []string `json:"room_ids"`
	EncryptedRooms []string `json:"encrypted_rooms"`

	DeviceID      *string `json:"device_id"`
	DeviceName    *string `json:"device_name"`
	Curve25519Key *string `json:"curve25519_key"`
	Ed25519Key    *string `json:"ed25519_key"`
	LastRoomID    *string `json:"last_room_id"`

	Raw map[string]string `json:"raw_entries"`

	seen   map[catalog.Slot]bool
	inList map[catalog.Slot]map[string]bool
}

func NewRecord() *MetadataRecord {
	return &MetadataRecord{
		RoomIDs:        []string{},
		EncryptedRooms: []string{},
		Raw:            make(map[string]string),
		seen:           make(map[catalog.Slot]bool),
		inList:         make(map[catalog.Slot]map[string]bool),
	}
}

func (rec *MetadataRecord) scalar(slot catalog.Slot) **string {
	switch slot {
	case catalog.UserID:
		return &rec.UserID
	case catalog.DisplayName:
		return &rec.DisplayName
	case catalog.AvatarURL:
		return &rec.AvatarURL
	case catalog.Theme:
		return &rec.Theme
	case catalog.Language:
		return &rec.Language
	case catalog.Notifications:
		return &rec.NotificationsEnabled
	case catalog.DeviceID:
		return &rec.DeviceID
	case catalog.DeviceName:
		return &rec.DeviceName
	case catalog.Curve25519Key:
		return &rec.Curve25519Key
	case catalog.Ed25519Key:
		return &rec.Ed25519Key
	case catalog.LastRoomID:
		return &rec.LastRoomID
	}
	return nil
}

func (rec *MetadataRecord) list(slot catalog.Slot) *[]string {
	switch slot {
	case catalog.RoomIDs:
		return &rec.RoomIDs
	case catalog.EncryptedRooms:
		return &rec.EncryptedRooms
	}
	return nil
}

// setScalar: first-seen-wins, even when the first value is empty text.
// Later observations stay visible in Raw only.
func (rec *MetadataRecord) setScalar(slot catalog.Slot, val string) {
	if rec.seen[slot] {
		return
	}
	p := rec.scalar(slot)
	if p == nil {
		return
	}
	rec.seen[slot] = true
	v := val
	*p = &v
}

// addList: set semantics with preserved first-insertion order.
func (rec *MetadataRecord) addList(slot catalog.Slot, val string) {
	p := rec.list(slot)
	if p == nil || val == "" {
		return
	}
	set := rec.inList[slot]
	if set == nil {
		set = make(map[string]bool)
		rec.inList[slot] = set
	}
	if set[val] {
		return
	}
	set[val] = true
	*p = append(*p, val)
}

// putRaw: every decoded entry lands here, last write wins.
func (rec *MetadataRecord) putRaw(key, val string) {
	rec.Raw[key] = val
}
