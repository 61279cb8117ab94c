package document

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Values is a string attribute that the index stores either as a single value or as a list.
// It remembers which shape it was read from so it can be written back unchanged.
type Values struct {
	items []string
	multi bool
}

// Single wraps one value.
func Single(v string) Values {
	if v == "" {
		return Values{}
	}
	return Values{items: []string{v}}
}

// Multi wraps a list of values.
func Multi(vs ...string) Values {
	return Values{items: append([]string(nil), vs...), multi: true}
}

// First returns the first value, or "" when empty. Every multi-valued read goes through here.
func (v Values) First() string {
	if len(v.items) == 0 {
		return ""
	}
	return v.items[0]
}

// All returns every value in stored order.
func (v Values) All() []string { return v.items }

// IsMulti reports whether the value was stored as a list.
func (v Values) IsMulti() bool { return v.multi }

// IsEmpty reports whether no value is present.
func (v Values) IsEmpty() bool { return len(v.items) == 0 }

// Contains reports whether s is one of the values.
func (v Values) Contains(s string) bool {
	for _, item := range v.items {
		if item == s {
			return true
		}
	}
	return false
}

// UnmarshalJSON accepts null, a scalar, or an array of scalars.
func (v *Values) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*v = Values{}
		return nil
	}

	if data[0] != '[' {
		s, err := scalarString(data)
		if err != nil {
			return err
		}
		*v = Single(s)
		return nil
	}

	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("decode values: %w", err)
	}
	items := make([]string, 0, len(raw))
	for _, r := range raw {
		s, err := scalarString(r)
		if err != nil {
			return err
		}
		if s != "" {
			items = append(items, s)
		}
	}
	*v = Values{items: items, multi: true}
	return nil
}

// MarshalJSON writes the value back in the shape it was read from.
func (v Values) MarshalJSON() ([]byte, error) {
	if v.multi {
		if v.items == nil {
			return []byte("[]"), nil
		}
		return json.Marshal(v.items)
	}
	if len(v.items) == 0 {
		return []byte("null"), nil
	}
	return json.Marshal(v.items[0])
}

func scalarString(data []byte) (string, error) {
	if bytes.Equal(data, []byte("null")) {
		return "", nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return "", fmt.Errorf("decode value: %w", err)
		}
		return s, nil
	}
	if data[0] == '{' || data[0] == '[' {
		return "", fmt.Errorf("decode value: unexpected %c", data[0])
	}
	// numbers and booleans keep their literal form
	return string(data), nil
}
