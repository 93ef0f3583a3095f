// Package shape describes the structure a schema accepts, independent of any
// particular input. Descriptions are comparison-friendly: field presence,
// optionality, nullability, and declared type are faithfully reflected so
// that removal or narrowing shows up in a diff. Custom refinement predicates
// are deliberately not encoded; the description is allowed to be coarser
// than full semantic equivalence.
package shape

import (
	json "github.com/goccy/go-json"
)

// Shape is the structural description of a schema node.
type Shape struct {
	// Core
	Type    string `json:"type,omitempty" yaml:"type,omitempty"`
	Format  string `json:"format,omitempty" yaml:"format,omitempty"`
	Pattern string `json:"pattern,omitempty" yaml:"pattern,omitempty"`
	Enum    []any  `json:"enum,omitempty" yaml:"enum,omitempty"`
	Default any    `json:"default,omitempty" yaml:"default,omitempty"`
	// Nullable marks nodes that accept an explicit null in addition to their
	// declared type. Optionality is a property of the enclosing object
	// (absence from Required), not of the node itself.
	Nullable bool `json:"nullable,omitempty" yaml:"nullable,omitempty"`

	// Numeric bounds (inclusive)
	Minimum *float64 `json:"minimum,omitempty" yaml:"minimum,omitempty"`
	Maximum *float64 `json:"maximum,omitempty" yaml:"maximum,omitempty"`

	// String bounds
	MinLength *int `json:"minLength,omitempty" yaml:"minLength,omitempty"`
	MaxLength *int `json:"maxLength,omitempty" yaml:"maxLength,omitempty"`

	// Object
	Properties           map[string]*Shape `json:"properties,omitempty" yaml:"properties,omitempty"`
	Required             []string          `json:"required,omitempty" yaml:"required,omitempty"`
	AdditionalProperties any               `json:"additionalProperties,omitempty" yaml:"additionalProperties,omitempty"`

	// Array
	Items    *Shape `json:"items,omitempty" yaml:"items,omitempty"`
	MinItems *int   `json:"minItems,omitempty" yaml:"minItems,omitempty"`
	MaxItems *int   `json:"maxItems,omitempty" yaml:"maxItems,omitempty"`
}

// Canonical renders the shape as deterministic JSON bytes suitable for
// storing as a baseline and byte-comparing across revisions. Map keys are
// emitted in sorted order.
func (s *Shape) Canonical() ([]byte, error) {
	return json.Marshal(s)
}

// CanonicalIndent is Canonical with indentation, for human-reviewed baselines.
func (s *Shape) CanonicalIndent() ([]byte, error) {
	return json.MarshalIndent(s, "", "  ")
}

// Decode parses canonical bytes back into a Shape.
func Decode(data []byte) (*Shape, error) {
	var s Shape
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

// IsRequired reports whether the named property is in the Required list.
func (s *Shape) IsRequired(name string) bool {
	for _, r := range s.Required {
		if r == name {
			return true
		}
	}
	return false
}
