package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"strings"
)

// AssetSlot is a single logical image/file reference plus optional metadata.
// The URL points at an object in the remote blob store; Detail may carry a
// nested image value that is either another remote URL or a not-yet-uploaded
// inline payload.
type AssetSlot struct {
	URL    string       `json:"url"`
	Detail *AssetDetail `json:"detail,omitempty"`
}

type AssetDetail struct {
	Alt        string  `json:"alt,omitempty"`
	Attributes JSONMap `json:"attributes,omitempty"`
	Image      string  `json:"image,omitempty"`
}

// IsEmpty reports whether the slot references no asset at all. An empty slot
// never triggers an upload or a delete.
func (a AssetSlot) IsEmpty() bool {
	if strings.TrimSpace(a.URL) != "" {
		return false
	}
	if a.Detail != nil && strings.TrimSpace(a.Detail.Image) != "" {
		return false
	}
	return true
}

// DetailImage returns the detail image value, or "" when no detail is set.
func (a AssetSlot) DetailImage() string {
	if a.Detail == nil {
		return ""
	}
	return a.Detail.Image
}

func (a AssetSlot) Value() (driver.Value, error) {
	if a.IsEmpty() {
		return nil, nil
	}
	return json.Marshal(a)
}

func (a *AssetSlot) Scan(value interface{}) error {
	if value == nil {
		*a = AssetSlot{}
		return nil
	}

	bytes, ok := value.([]byte)
	if !ok {
		return errors.New("failed to scan AssetSlot")
	}

	return json.Unmarshal(bytes, a)
}

type JSONMap map[string]interface{}

func (m JSONMap) Value() (driver.Value, error) {
	if len(m) == 0 {
		return nil, nil
	}
	return json.Marshal(m)
}

func (m *JSONMap) Scan(value interface{}) error {
	if value == nil {
		*m = JSONMap{}
		return nil
	}

	bytes, ok := value.([]byte)
	if !ok {
		return errors.New("failed to scan JSONMap")
	}

	var decoded map[string]interface{}
	if err := json.Unmarshal(bytes, &decoded); err != nil {
		return err
	}

	*m = decoded
	return nil
}

type StringList []string

func (l StringList) Value() (driver.Value, error) {
	if len(l) == 0 {
		return nil, nil
	}
	return json.Marshal(l)
}

func (l *StringList) Scan(value interface{}) error {
	if value == nil {
		*l = StringList{}
		return nil
	}

	bytes, ok := value.([]byte)
	if !ok {
		return errors.New("failed to scan StringList")
	}

	return json.Unmarshal(bytes, l)
}
