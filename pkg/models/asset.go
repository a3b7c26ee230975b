package models

import (
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// AssetType is the coarse media classification used by the editor when it
// decides which track kind an upload lands on.
type AssetType string

const (
	AssetTypeAudio AssetType = "audio"
	AssetTypeVideo AssetType = "video"
	AssetTypeImage AssetType = "image"
	AssetTypeOther AssetType = "other"
)

// AssetTypeFromMime classifies a mime type by its major type prefix.
func AssetTypeFromMime(mimeType string) AssetType {
	switch {
	case strings.HasPrefix(mimeType, "audio/"):
		return AssetTypeAudio
	case strings.HasPrefix(mimeType, "video/"):
		return AssetTypeVideo
	case strings.HasPrefix(mimeType, "image/"):
		return AssetTypeImage
	default:
		return AssetTypeOther
	}
}

// Asset is a stored binary media file. Immutable after creation except for
// deletion; physically independent of any project that links it.
type Asset struct {
	ID        string    `json:"id"`
	FileName  string    `json:"fileName"`
	Type      AssetType `json:"type"`
	MimeType  string    `json:"mimeType"`
	Blob      []byte    `json:"-"`
	CreatedAt time.Time `json:"createdAt"`
}

// Validate checks the asset's own fields; the blob may legitimately be empty.
func (a Asset) Validate() error {
	return validation.ValidateStruct(&a,
		validation.Field(&a.ID, validation.Required),
		validation.Field(&a.FileName, validation.Required),
		validation.Field(&a.Type, validation.Required, validation.In(
			AssetTypeAudio, AssetTypeVideo, AssetTypeImage, AssetTypeOther,
		)),
	)
}
