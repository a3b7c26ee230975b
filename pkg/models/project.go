// Package models contains domain types for clipforge-engine.
package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Project is one editing session's state: a name, the opaque edit draft owned
// by the editor, and the set of asset ids the draft references.
type Project struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	EditDraft json.RawMessage `json:"editDraft"`
	AssetIDs  StringSet       `json:"assetIds"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

// Validate checks the fields this subsystem owns. EditDraft is deliberately
// not inspected: its schema belongs to the editor and is stored verbatim.
func (p Project) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.ID, validation.Required),
		validation.Field(&p.Name, validation.Required),
	)
}

// StringSet is an insertion-ordered set of strings, serialized as a JSON
// array. Duplicates are rejected on Add rather than silently collapsed so a
// double-link shows up in tests instead of disappearing.
type StringSet []string

// Contains reports whether v is in the set.
func (s StringSet) Contains(v string) bool {
	for _, existing := range s {
		if existing == v {
			return true
		}
	}
	return false
}

// Add appends v if absent and reports whether the set changed.
func (s *StringSet) Add(v string) bool {
	if s.Contains(v) {
		return false
	}
	*s = append(*s, v)
	return true
}

// Value implements driver.Valuer for database serialization.
func (s StringSet) Value() (driver.Value, error) {
	if s == nil {
		return "[]", nil
	}
	data, err := json.Marshal([]string(s))
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

// Scan implements sql.Scanner for database deserialization.
func (s *StringSet) Scan(value interface{}) error {
	if value == nil {
		*s = StringSet{}
		return nil
	}

	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("cannot scan %T into StringSet", value)
	}

	return json.Unmarshal(data, (*[]string)(s))
}
