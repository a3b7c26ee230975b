package models

// StoredValue is an entry in the generic key-value collection. Keys are
// arbitrary strings (the audio namespace uses synthetic "audio:<file-name>"
// keys); values are opaque byte payloads with an optional mime type.
type StoredValue struct {
	Key      string `json:"key"`
	Value    []byte `json:"-"`
	MimeType string `json:"mimeType,omitempty"`
}
