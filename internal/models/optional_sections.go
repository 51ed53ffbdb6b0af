package models

import (
	"encoding/json"
	"fmt"
	"strings"
)

// OptionalSections captures whether a request supplied a sections field at
// all, and whether it was an explicit null. Omitting the field defaults to
// an empty section list; an explicit null is a validation error, and the two
// must stay distinguishable after JSON decoding.
type OptionalSections struct {
	Set   bool      `json:"-"`
	Null  bool      `json:"-"`
	Value []Section `json:"-"`
}

// UnmarshalJSON implements json.Unmarshaler. It records explicit nulls
// instead of collapsing them into the zero value.
func (os *OptionalSections) UnmarshalJSON(data []byte) error {
	if os == nil {
		return fmt.Errorf("optional sections receiver is nil")
	}

	os.Set = true

	trimmed := strings.TrimSpace(string(data))
	if trimmed == "" || strings.EqualFold(trimmed, "null") {
		os.Null = true
		os.Value = nil
		return nil
	}

	var sections []Section
	if err := json.Unmarshal(data, &sections); err != nil {
		return err
	}

	os.Null = false
	os.Value = sections
	return nil
}

// Or returns the submitted sections, or the provided default when the field
// was omitted.
func (os OptionalSections) Or(defaultValue []Section) []Section {
	if os.Set {
		return os.Value
	}
	return defaultValue
}
