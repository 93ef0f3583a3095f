package dsl

import (
	"context"

	verdict "github.com/verdict-go/verdict"
	"github.com/verdict-go/verdict/shape"
)

type objectBuilder struct {
	fields        map[string]AnyAdapter
	order         []string
	required      map[string]struct{}
	unknownPolicy verdict.UnknownPolicy
	unknownTarget string
	transforms    []transformFn
	refines       []objRefine
}

type fieldStep struct {
	b    *objectBuilder
	name string
}

type transformFn func(context.Context, map[string]any) (map[string]any, error)

// Object creates a new object builder with safe defaults (UnknownStrict).
func Object() *objectBuilder {
	return &objectBuilder{
		fields:        map[string]AnyAdapter{},
		required:      map[string]struct{}{},
		unknownPolicy: verdict.UnknownStrict,
	}
}

// Field registers a field with its adapter. Declaration order is preserved
// and drives both traversal and issue ordering.
func (b *objectBuilder) Field(name string, ad AnyAdapter) *fieldStep {
	if _, exists := b.fields[name]; !exists {
		b.order = append(b.order, name)
	}
	b.fields[name] = ad
	return &fieldStep{b: b, name: name}
}

// Required marks the field as required and returns the builder.
func (f *fieldStep) Required() *objectBuilder {
	f.b.required[f.name] = struct{}{}
	return f.b
}

// Optional marks the field as optional (default) and returns the builder.
func (f *fieldStep) Optional() *objectBuilder {
	delete(f.b.required, f.name)
	return f.b
}

// Default sets a default for the current field, applied when the key is
// absent. The default is parsed through the field schema so it honors the
// same constraints as wire input; it never applies to an explicit null.
func (f *fieldStep) Default(v any) *objectBuilder {
	ad := f.b.fields[f.name]
	ad.applyDefault = func(ctx context.Context) (any, error) { return ad.parse(ctx, v) }
	prev := ad.shapeFn
	ad.shapeFn = func() (*shape.Shape, error) {
		if prev == nil {
			return &shape.Shape{Default: v}, nil
		}
		s, err := prev()
		if err != nil {
			return nil, err
		}
		if s == nil {
			s = &shape.Shape{}
		}
		s.Default = v
		return s, nil
	}
	f.b.fields[f.name] = ad
	return f.b
}

func (f *fieldStep) Require(names ...string) *objectBuilder { return f.b.Require(names...) }
func (f *fieldStep) UnknownStrict() *objectBuilder          { return f.b.UnknownStrict() }
func (f *fieldStep) UnknownStrip() *objectBuilder           { return f.b.UnknownStrip() }
func (f *fieldStep) UnknownPassthrough(target string) *objectBuilder {
	return f.b.UnknownPassthrough(target)
}
func (f *fieldStep) Transform(fn transformFn) *objectBuilder { return f.b.Transform(fn) }
func (f *fieldStep) Refine(name string, fn func(context.Context, map[string]any) error) *objectBuilder {
	return f.b.Refine(name, fn)
}
func (f *fieldStep) Field(name string, ad AnyAdapter) *fieldStep    { return f.b.Field(name, ad) }
func (f *fieldStep) Build() (verdict.Schema[map[string]any], error) { return f.b.Build() }
func (f *fieldStep) MustBuild() verdict.Schema[map[string]any]      { return f.b.MustBuild() }

// Require marks one or more fields as required.
func (b *objectBuilder) Require(names ...string) *objectBuilder {
	for _, n := range names {
		b.required[n] = struct{}{}
	}
	return b
}

// UnknownStrict sets unknown policy to Strict.
func (b *objectBuilder) UnknownStrict() *objectBuilder {
	b.unknownPolicy = verdict.UnknownStrict
	b.unknownTarget = ""
	return b
}

// UnknownStrip sets unknown policy to Strip.
func (b *objectBuilder) UnknownStrip() *objectBuilder {
	b.unknownPolicy = verdict.UnknownStrip
	b.unknownTarget = ""
	return b
}

// UnknownPassthrough sets unknown policy to Passthrough with a target field.
func (b *objectBuilder) UnknownPassthrough(target string) *objectBuilder {
	b.unknownPolicy = verdict.UnknownPassthrough
	b.unknownTarget = target
	return b
}

// Transform registers a derived-field computation applied after field
// validation and before refinements. The returned map is the validated
// output; transforms make Parse output more than an echo of the input.
func (b *objectBuilder) Transform(fn transformFn) *objectBuilder {
	if fn == nil {
		return b
	}
	b.transforms = append(b.transforms, fn)
	return b
}

// Refine adds a named object-level refinement, executed after transforms in
// registration order. External checks (uniqueness against a store, etc.)
// receive the caller's context; a rejected predicate becomes an Issue.
func (b *objectBuilder) Refine(name string, fn func(context.Context, map[string]any) error) *objectBuilder {
	if fn == nil {
		return b
	}
	b.refines = append(b.refines, objRefine{name: name, fn: fn})
	return b
}

// Build validates the builder and returns a Schema.
func (b *objectBuilder) Build() (verdict.Schema[map[string]any], error) {
	if b.unknownPolicy == verdict.UnknownPassthrough {
		ad, ok := b.fields[b.unknownTarget]
		if !ok || b.unknownTarget == "" {
			return nil, verdict.Issues{verdict.Issue{Path: "/", Code: verdict.CodeParseError, Message: "unknown_target missing for passthrough"}}
		}
		// adapter must accept map[string]any (validateValue on empty map)
		if err := ad.validateValue(context.Background(), map[string]any{}); err != nil {
			return nil, verdict.Issues{verdict.Issue{Path: "/" + b.unknownTarget, Code: verdict.CodeInvalidType, Message: "unknown_target must be map[string]any"}}
		}
	}
	return &objectSchema{
		fields:        b.fields,
		order:         append([]string{}, b.order...),
		required:      b.required,
		unknownPolicy: b.unknownPolicy,
		unknownTarget: b.unknownTarget,
		transforms:    b.transforms,
		refines:       b.refines,
	}, nil
}

// MustBuild is like Build but panics on error.
func (b *objectBuilder) MustBuild() verdict.Schema[map[string]any] {
	s, err := b.Build()
	if err != nil {
		panic(err)
	}
	return s
}
