// internal/domain/models/sitesettings.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Setting types, as shown in the admin settings screen.
const (
	SettingTypeImage = "image"
	SettingTypeText  = "text"
	SettingTypeJSON  = "json"
	SettingTypeFile  = "file"
)

// SettingTypes is the full set of allowed SiteSetting.Type values.
var SettingTypes = []string{SettingTypeImage, SettingTypeText, SettingTypeJSON, SettingTypeFile}

// IsSettingType reports whether t is one of SettingTypes.
func IsSettingType(t string) bool {
	for _, v := range SettingTypes {
		if v == t {
			return true
		}
	}
	return false
}

// DefaultSettingType is used when an upsert does not name a type.
const DefaultSettingType = SettingTypeText

// Value kinds of the SettingValue tagged union.
const (
	ValueKindRef  = "ref"  // plain text, JSON text or a URL
	ValueKindBlob = "blob" // uploaded bytes with a mime type
)

// SettingValue is either a reference (Ref) or a blob. Blob bytes live in
// Data for the inline backend, or in object storage under ObjectKey.
type SettingValue struct {
	Kind string `bson:"kind" json:"kind"`

	Ref string `bson:"ref,omitempty" json:"ref,omitempty"`

	MimeType  string `bson:"mime_type,omitempty" json:"mimeType,omitempty"`
	Size      int64  `bson:"size,omitempty" json:"size,omitempty"`
	Data      []byte `bson:"data,omitempty" json:"-"`
	ObjectKey string `bson:"object_key,omitempty" json:"-"`
}

// IsBlob reports whether the value carries uploaded bytes.
func (v SettingValue) IsBlob() bool { return v.Kind == ValueKindBlob }

// SiteSetting is one entry of the open-ended key/value settings store.
// Keys are a UI convention (profile_image, hero_photo, resume_file, ...).
type SiteSetting struct {
	ID    primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Key   string             `bson:"key" json:"key"`
	Value SettingValue       `bson:"value" json:"value"`
	Type  string             `bson:"type" json:"type"`
	Label string             `bson:"label" json:"label"`

	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time `bson:"updated_at" json:"updatedAt"`

	// Exists is false for the placeholder returned for unknown keys.
	Exists bool `bson:"-" json:"-"`
}
