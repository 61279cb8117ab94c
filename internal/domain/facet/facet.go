// Package facet holds the facet configuration, aggregation results and user selections.
package facet

import (
	"errors"
	"fmt"
)

// Field maps a display label to the index attribute it aggregates.
type Field struct {
	Label     string
	Attribute string
}

// Spec is the ordered, read-only facet configuration.
type Spec struct {
	fields []Field
	byName map[string]int
}

// NewSpec validates and creates a Spec. Labels must be unique and non-empty.
func NewSpec(fields []Field) (Spec, error) {
	byName := make(map[string]int, len(fields))
	for i, f := range fields {
		if f.Label == "" {
			return Spec{}, fmt.Errorf("facet %d: label is required", i)
		}
		if f.Attribute == "" {
			return Spec{}, fmt.Errorf("facet %q: attribute is required", f.Label)
		}
		if _, dup := byName[f.Label]; dup {
			return Spec{}, fmt.Errorf("facet %q: duplicate label", f.Label)
		}
		byName[f.Label] = i
	}
	return Spec{fields: append([]Field(nil), fields...), byName: byName}, nil
}

// MustSpec calls NewSpec and panics on error.
func MustSpec(fields ...Field) Spec {
	s, err := NewSpec(fields)
	if err != nil {
		panic(err)
	}
	return s
}

// Fields returns the configured facets in order.
func (s Spec) Fields() []Field { return s.fields }

// Lookup finds a facet by label.
func (s Spec) Lookup(label string) (Field, bool) {
	i, ok := s.byName[label]
	if !ok {
		return Field{}, false
	}
	return s.fields[i], true
}

// Bucket is one facet value with its count. Name is the display form of Value.
type Bucket struct {
	Value string
	Name  string
	Count int
}

// Group is the bucket list for one facet label, in store order.
type Group struct {
	Label   string
	Buckets []Bucket
}

// Result is the ordered list of facet groups returned with a listing.
type Result []Group

// Get returns the group for label.
func (r Result) Get(label string) (Group, bool) {
	for _, g := range r {
		if g.Label == label {
			return g, true
		}
	}
	return Group{}, false
}

// ErrEmptySelection signals a selection entry with a missing label or value.
var ErrEmptySelection = errors.New("facet selection requires label and value")
