package shape

import (
	"fmt"
	"sort"
)

// Change kinds reported by Diff.
const (
	ChangeFieldAdded     = "field_added"
	ChangeFieldRemoved   = "field_removed"
	ChangeTypeChanged    = "type_changed"
	ChangeFormatChanged  = "format_changed"
	ChangePatternChanged = "pattern_changed"
	ChangeOptionality    = "optionality_changed"
	ChangeNullability    = "nullability_changed"
	ChangeBoundChanged   = "bound_changed"
	ChangeEnumChanged    = "enum_changed"
	ChangeDefaultChanged = "default_changed"
	ChangeUnknownPolicy  = "unknown_policy_changed"
)

// Change is one structural difference between two shapes, addressed by the
// JSON Pointer of the node it concerns.
type Change struct {
	Path string `json:"path" yaml:"path"`
	Kind string `json:"kind" yaml:"kind"`
	From string `json:"from,omitempty" yaml:"from,omitempty"`
	To   string `json:"to,omitempty" yaml:"to,omitempty"`
}

func (c Change) String() string {
	return fmt.Sprintf("%s at %s (%q -> %q)", c.Kind, c.Path, c.From, c.To)
}

// Diff compares two shapes and returns the structural changes from old to
// new, in deterministic order. An empty result means no drift.
func Diff(old, curr *Shape) []Change {
	var out []Change
	diffNode(old, curr, "", &out)
	return out
}

func diffNode(old, curr *Shape, path string, out *[]Change) {
	if old == nil && curr == nil {
		return
	}
	at := path
	if at == "" {
		at = "/"
	}
	if old == nil {
		*out = append(*out, Change{Path: at, Kind: ChangeFieldAdded, To: curr.Type})
		return
	}
	if curr == nil {
		*out = append(*out, Change{Path: at, Kind: ChangeFieldRemoved, From: old.Type})
		return
	}
	if old.Type != curr.Type {
		*out = append(*out, Change{Path: at, Kind: ChangeTypeChanged, From: old.Type, To: curr.Type})
	}
	if old.Format != curr.Format {
		*out = append(*out, Change{Path: at, Kind: ChangeFormatChanged, From: old.Format, To: curr.Format})
	}
	if old.Pattern != curr.Pattern {
		*out = append(*out, Change{Path: at, Kind: ChangePatternChanged, From: old.Pattern, To: curr.Pattern})
	}
	if old.Nullable != curr.Nullable {
		*out = append(*out, Change{Path: at, Kind: ChangeNullability, From: fmtAny(old.Nullable), To: fmtAny(curr.Nullable)})
	}
	diffBound(old.Minimum, curr.Minimum, at, "minimum", out)
	diffBound(old.Maximum, curr.Maximum, at, "maximum", out)
	diffIntBound(old.MinLength, curr.MinLength, at, "minLength", out)
	diffIntBound(old.MaxLength, curr.MaxLength, at, "maxLength", out)
	diffIntBound(old.MinItems, curr.MinItems, at, "minItems", out)
	diffIntBound(old.MaxItems, curr.MaxItems, at, "maxItems", out)
	if fmtAny(old.Enum) != fmtAny(curr.Enum) {
		*out = append(*out, Change{Path: at, Kind: ChangeEnumChanged, From: fmtAny(old.Enum), To: fmtAny(curr.Enum)})
	}
	if fmtAny(old.Default) != fmtAny(curr.Default) {
		*out = append(*out, Change{Path: at, Kind: ChangeDefaultChanged, From: fmtAny(old.Default), To: fmtAny(curr.Default)})
	}
	if fmtAny(old.AdditionalProperties) != fmtAny(curr.AdditionalProperties) {
		*out = append(*out, Change{Path: at, Kind: ChangeUnknownPolicy, From: fmtAny(old.AdditionalProperties), To: fmtAny(curr.AdditionalProperties)})
	}

	// properties: removed, changed, added -- in sorted key order
	names := map[string]struct{}{}
	for k := range old.Properties {
		names[k] = struct{}{}
	}
	for k := range curr.Properties {
		names[k] = struct{}{}
	}
	sorted := make([]string, 0, len(names))
	for k := range names {
		sorted = append(sorted, k)
	}
	sort.Strings(sorted)
	for _, k := range sorted {
		child := path + "/" + k
		op, oldHas := old.Properties[k]
		np, newHas := curr.Properties[k]
		switch {
		case oldHas && !newHas:
			*out = append(*out, Change{Path: child, Kind: ChangeFieldRemoved, From: op.Type})
		case !oldHas && newHas:
			*out = append(*out, Change{Path: child, Kind: ChangeFieldAdded, To: np.Type})
		default:
			if old.IsRequired(k) != curr.IsRequired(k) {
				*out = append(*out, Change{Path: child, Kind: ChangeOptionality, From: requiredWord(old.IsRequired(k)), To: requiredWord(curr.IsRequired(k))})
			}
			diffNode(op, np, child, out)
		}
	}

	if old.Items != nil || curr.Items != nil {
		diffNode(old.Items, curr.Items, path+"/items", out)
	}
}

func diffBound(a, b *float64, path, name string, out *[]Change) {
	if fmtPtrFloat(a) == fmtPtrFloat(b) {
		return
	}
	*out = append(*out, Change{Path: path, Kind: ChangeBoundChanged, From: name + "=" + fmtPtrFloat(a), To: name + "=" + fmtPtrFloat(b)})
}

func diffIntBound(a, b *int, path, name string, out *[]Change) {
	if fmtPtrInt(a) == fmtPtrInt(b) {
		return
	}
	*out = append(*out, Change{Path: path, Kind: ChangeBoundChanged, From: name + "=" + fmtPtrInt(a), To: name + "=" + fmtPtrInt(b)})
}

func fmtPtrFloat(p *float64) string {
	if p == nil {
		return ""
	}
	return fmt.Sprintf("%v", *p)
}

func fmtPtrInt(p *int) string {
	if p == nil {
		return ""
	}
	return fmt.Sprintf("%d", *p)
}

func fmtAny(v any) string {
	if v == nil {
		return ""
	}
	return fmt.Sprintf("%v", v)
}

func requiredWord(req bool) string {
	if req {
		return "required"
	}
	return "optional"
}
