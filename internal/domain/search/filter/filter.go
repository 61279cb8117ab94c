package filter

import "fmt"

// MaxConditionsPerGroup is the maximum number of conditions per filter group.
const MaxConditionsPerGroup = 64

// Kind discriminates condition types.
type Kind int

const (
	// KindTag is an exact match against a TAG attribute.
	KindTag Kind = iota
	// KindText requires a token to be present in a TEXT attribute.
	KindText
	// KindMissing matches documents where the attribute is absent.
	KindMissing
)

// Expression is a structured filter with must/should/must_not boolean semantics.
type Expression struct {
	must    []Condition
	should  []Condition
	mustNot []Condition
}

// NewExpression validates and creates a filter Expression.
func NewExpression(must, should, mustNot []Condition) (Expression, error) {
	if len(must) > MaxConditionsPerGroup {
		return Expression{}, fmt.Errorf("too many must conditions (max %d)", MaxConditionsPerGroup)
	}
	if len(should) > MaxConditionsPerGroup {
		return Expression{}, fmt.Errorf("too many should conditions (max %d)", MaxConditionsPerGroup)
	}
	if len(mustNot) > MaxConditionsPerGroup {
		return Expression{}, fmt.Errorf("too many must_not conditions (max %d)", MaxConditionsPerGroup)
	}
	return Expression{must: must, should: should, mustNot: mustNot}, nil
}

// Must returns the must conditions.
func (e Expression) Must() []Condition { return e.must }

// Should returns the should conditions.
func (e Expression) Should() []Condition { return e.should }

// MustNot returns the must-not conditions.
func (e Expression) MustNot() []Condition { return e.mustNot }

// IsEmpty reports whether the expression has no conditions.
func (e Expression) IsEmpty() bool {
	return len(e.must) == 0 && len(e.should) == 0 && len(e.mustNot) == 0
}

// Condition is a single filter clause.
type Condition struct {
	kind  Kind
	key   string
	value string
}

// NewTag creates an exact tag match condition.
func NewTag(key, value string) (Condition, error) {
	if key == "" {
		return Condition{}, fmt.Errorf("filter key is required")
	}
	if value == "" {
		return Condition{}, fmt.Errorf("match value is required for key %q", key)
	}
	return Condition{kind: KindTag, key: key, value: value}, nil
}

// NewText creates a token match condition on a text attribute.
func NewText(key, token string) (Condition, error) {
	if key == "" {
		return Condition{}, fmt.Errorf("filter key is required")
	}
	if token == "" {
		return Condition{}, fmt.Errorf("token is required for key %q", key)
	}
	return Condition{kind: KindText, key: key, value: token}, nil
}

// NewMissing creates a condition matching documents without the attribute.
func NewMissing(key string) (Condition, error) {
	if key == "" {
		return Condition{}, fmt.Errorf("filter key is required")
	}
	return Condition{kind: KindMissing, key: key}, nil
}

// Kind returns the condition type.
func (c Condition) Kind() Kind { return c.kind }

// Key returns the attribute name.
func (c Condition) Key() string { return c.key }

// Value returns the tag value or text token. Empty for KindMissing.
func (c Condition) Value() string { return c.value }
