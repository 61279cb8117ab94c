package facet

import (
	"fmt"
	"net/url"
	"strings"
)

type selected struct {
	label  string
	values []string
}

// Selection is the ordered set of facet values a user has applied.
// Label order is first-seen order; values keep insertion order without duplicates.
type Selection struct {
	entries []selected
}

// Add appends value under label.
func (s *Selection) Add(label, value string) error {
	if label == "" || value == "" {
		return ErrEmptySelection
	}
	for i := range s.entries {
		if s.entries[i].label != label {
			continue
		}
		for _, v := range s.entries[i].values {
			if v == value {
				return nil
			}
		}
		s.entries[i].values = append(s.entries[i].values, value)
		return nil
	}
	s.entries = append(s.entries, selected{label: label, values: []string{value}})
	return nil
}

// Labels returns the selected labels in order.
func (s Selection) Labels() []string {
	out := make([]string, len(s.entries))
	for i, e := range s.entries {
		out[i] = e.label
	}
	return out
}

// Values returns the values selected under label.
func (s Selection) Values(label string) []string {
	for _, e := range s.entries {
		if e.label == label {
			return e.values
		}
	}
	return nil
}

// Has reports whether value is selected under label.
func (s Selection) Has(label, value string) bool {
	for _, v := range s.Values(label) {
		if v == value {
			return true
		}
	}
	return false
}

// IsEmpty reports whether nothing is selected.
func (s Selection) IsEmpty() bool { return len(s.entries) == 0 }

// Len returns the total number of selected values.
func (s Selection) Len() int {
	n := 0
	for _, e := range s.entries {
		n += len(e.values)
	}
	return n
}

// With returns a copy with value added under label.
func (s Selection) With(label, value string) Selection {
	c := s.clone()
	_ = c.Add(label, value)
	return c
}

// Without returns a copy with value removed from label. Labels left empty are dropped.
func (s Selection) Without(label, value string) Selection {
	var c Selection
	for _, e := range s.entries {
		for _, v := range e.values {
			if e.label == label && v == value {
				continue
			}
			_ = c.Add(e.label, v)
		}
	}
	return c
}

func (s Selection) clone() Selection {
	c := Selection{entries: make([]selected, len(s.entries))}
	for i, e := range s.entries {
		c.entries[i] = selected{label: e.label, values: append([]string(nil), e.values...)}
	}
	return c
}

// Encode renders the selection as query parameters f[label]=value, in selection order.
func (s Selection) Encode() string {
	var b strings.Builder
	for _, e := range s.entries {
		for _, v := range e.values {
			if b.Len() > 0 {
				b.WriteByte('&')
			}
			b.WriteString("f%5B")
			b.WriteString(url.QueryEscape(e.label))
			b.WriteString("%5D=")
			b.WriteString(url.QueryEscape(v))
		}
	}
	return b.String()
}

// ParseSelection reads f[label]=value (or f[label][]=value) parameters from a raw query,
// preserving their order. Other parameters are ignored.
func ParseSelection(rawQuery string) (Selection, error) {
	var s Selection
	for _, pair := range strings.Split(rawQuery, "&") {
		if pair == "" {
			continue
		}
		rawKey, rawValue, _ := strings.Cut(pair, "=")
		key, err := url.QueryUnescape(rawKey)
		if err != nil {
			return Selection{}, fmt.Errorf("facet key %q: %w", rawKey, err)
		}
		label, ok := selectionLabel(key)
		if !ok {
			continue
		}
		value, err := url.QueryUnescape(rawValue)
		if err != nil {
			return Selection{}, fmt.Errorf("facet %q value: %w", label, err)
		}
		if value == "" {
			continue
		}
		if err := s.Add(label, value); err != nil {
			return Selection{}, err
		}
	}
	return s, nil
}

func selectionLabel(key string) (string, bool) {
	key = strings.TrimSuffix(key, "[]")
	if !strings.HasPrefix(key, "f[") || !strings.HasSuffix(key, "]") {
		return "", false
	}
	label := key[2 : len(key)-1]
	return label, label != ""
}
