package dsl

import (
	"context"
	"sort"

	verdict "github.com/verdict-go/verdict"
	"github.com/verdict-go/verdict/i18n"
	"github.com/verdict-go/verdict/shape"
)

type objectSchema struct {
	fields        map[string]AnyAdapter
	order         []string
	required      map[string]struct{}
	unknownPolicy verdict.UnknownPolicy
	unknownTarget string
	transforms    []transformFn
	refines       []objRefine
}

type objRefine struct {
	name string
	fn   func(context.Context, map[string]any) error
}

// Ensure objectSchema implements verdict.Schema[map[string]any]
var _ verdict.Schema[map[string]any] = (*objectSchema)(nil)

// issuesFromErr converts an error into Issues, wrapping non-Issues with CodeParseError.
func issuesFromErr(path string, err error) verdict.Issues {
	if err == nil {
		return nil
	}
	if i2, ok := verdict.AsIssues(err); ok {
		return i2
	}
	return verdict.Issues{verdict.Issue{Path: path, Code: verdict.CodeParseError, Message: err.Error(), Cause: err}}
}

// rebase prefixes child issue paths under "/field" so nested failures stay
// addressable from the root.
func rebase(base string, iss verdict.Issues) verdict.Issues {
	var out verdict.Issues
	for _, it := range iss {
		p := it.Path
		if p == "" || p == "/" {
			p = base
		} else if p[0] == '/' {
			p = base + p
		} else {
			p = base + "/" + p
		}
		out = verdict.AppendIssues(out, verdict.Issue{Path: p, Code: it.Code, Message: it.Message, Hint: it.Hint, Cause: it.Cause, Params: it.Params, Rule: it.Rule})
	}
	return out
}

// handleExistingField parses a present field value, enforcing the null policy.
func (o *objectSchema) handleExistingField(ctx context.Context, k string, ad AnyAdapter, val any) (any, verdict.Issues) {
	if val == nil && !ad.nullable {
		// explicit null is not a substitute for absence
		return nil, verdict.Issues{verdict.Issue{Path: "/" + k, Code: verdict.CodeNullNotAllowed, Message: i18n.T(verdict.CodeNullNotAllowed, nil)}}
	}
	parsed, err := ad.parse(ctx, val)
	if err != nil {
		if child, ok := verdict.AsIssues(err); ok {
			return nil, rebase("/"+k, child)
		}
		return nil, issuesFromErr("/"+k, err)
	}
	return parsed, nil
}

// handleMissingField applies a default when available; returns handled=true if the default path executed.
func (o *objectSchema) handleMissingField(ctx context.Context, k string, ad AnyAdapter) (any, verdict.Issues, bool) {
	if ad.applyDefault == nil {
		return nil, nil, false
	}
	dv, err := ad.applyDefault(ctx)
	if err != nil {
		return nil, issuesFromErr("/"+k, err), true
	}
	return dv, nil, true
}

// collectKnown parses known fields in declaration order, applying defaults
// and enforcing required presence. All independently detectable violations
// are collected unless fail-fast is requested.
func (o *objectSchema) collectKnown(ctx context.Context, src map[string]any) (map[string]any, verdict.Issues) {
	out := make(map[string]any, len(src))
	var iss verdict.Issues
	for _, k := range o.order {
		ad := o.fields[k]
		if val, exists := src[k]; exists {
			parsed, i2 := o.handleExistingField(ctx, k, ad, val)
			if len(i2) > 0 {
				iss = verdict.AppendIssues(iss, i2...)
				if verdict.IsFailFast(ctx) {
					return out, iss
				}
				continue
			}
			out[k] = parsed
			continue
		}
		// missing: apply default if provided; otherwise enforce required
		if dv, i2, handled := o.handleMissingField(ctx, k, ad); handled {
			if len(i2) > 0 {
				iss = verdict.AppendIssues(iss, i2...)
				if verdict.IsFailFast(ctx) {
					return out, iss
				}
			} else {
				out[k] = dv
			}
			continue
		}
		if _, req := o.required[k]; req {
			iss = verdict.AppendIssues(iss, verdict.Issue{Path: "/" + k, Code: verdict.CodeRequired, Message: i18n.T(verdict.CodeRequired, nil), Hint: "required property missing"})
			if verdict.IsFailFast(ctx) {
				return out, iss
			}
		}
	}
	return out, iss
}

// collectUnknown processes unknown keys according to unknownPolicy and may write into out for passthrough.
func (o *objectSchema) collectUnknown(src map[string]any, out map[string]any) verdict.Issues {
	var iss verdict.Issues
	// unknown keys in key-sorted order (input maps carry no declaration order)
	uks := make([]string, 0, len(src))
	for k := range src {
		if _, known := o.fields[k]; !known {
			uks = append(uks, k)
		}
	}
	sort.Strings(uks)
	for _, k := range uks {
		v := src[k]
		switch o.unknownPolicy {
		case verdict.UnknownStrict:
			iss = verdict.AppendIssues(iss, verdict.Issue{Path: "/" + k, Code: verdict.CodeUnknownKey, Message: i18n.T(verdict.CodeUnknownKey, nil)})
		case verdict.UnknownStrip:
			// drop
		case verdict.UnknownPassthrough:
			extra, _ := out[o.unknownTarget].(map[string]any)
			if extra == nil {
				extra = map[string]any{}
			}
			extra[k] = v
			out[o.unknownTarget] = extra
		}
	}
	return iss
}

func (o *objectSchema) Parse(ctx context.Context, v any) (map[string]any, error) {
	src, ok := v.(map[string]any)
	if !ok {
		return nil, verdict.Issues{verdict.Issue{Path: "/", Code: verdict.CodeInvalidType, Message: i18n.T(verdict.CodeInvalidType, nil), Hint: "expected object"}}
	}
	out, iss := o.collectKnown(ctx, src)
	if verdict.IsFailFast(ctx) && len(iss) > 0 {
		return nil, iss
	}
	issUnknown := o.collectUnknown(src, out)
	if len(issUnknown) > 0 {
		iss = verdict.AppendIssues(iss, issUnknown...)
	}
	if len(iss) > 0 {
		return nil, iss
	}
	nn, err := verdict.ApplyNormalize[map[string]any](ctx, out, o)
	if err != nil {
		return nil, err
	}
	if err := verdict.ApplyRefine[map[string]any](ctx, nn, o); err != nil {
		return nil, err
	}
	return nn, nil
}

// Validate runs the full field and refinement pipeline, discarding the
// transformed output. Conformance is the same question Parse answers.
func (o *objectSchema) Validate(ctx context.Context, v any) error {
	_, err := o.Parse(ctx, v)
	return err
}

func (o *objectSchema) ValidateValue(ctx context.Context, v map[string]any) error {
	for _, k := range o.order {
		ad := o.fields[k]
		if val, ok := v[k]; ok {
			if err := ad.validateValue(ctx, val); err != nil {
				if child, ok := verdict.AsIssues(err); ok {
					return rebase("/"+k, child)
				}
				return issuesFromErr("/"+k, err)
			}
		} else if _, req := o.required[k]; req {
			return verdict.Issues{verdict.Issue{Path: "/" + k, Code: verdict.CodeRequired, Message: i18n.T(verdict.CodeRequired, nil), Hint: "required property missing"}}
		}
	}
	return nil
}

func (o *objectSchema) Shape() (*shape.Shape, error) {
	props := make(map[string]*shape.Shape, len(o.fields))
	for k, ad := range o.fields {
		ps, err := ad.Shape()
		if err != nil {
			return nil, err
		}
		props[k] = ps
	}
	// Required list (sorted for deterministic output)
	req := make([]string, 0, len(o.required))
	for k := range o.required {
		req = append(req, k)
	}
	sort.Strings(req)
	// Unknown policy mapping: Strict rejects extras, Strip/Passthrough accept them.
	var additional any
	switch o.unknownPolicy {
	case verdict.UnknownStrict:
		additional = false
	default:
		additional = true
	}
	return &shape.Shape{Type: "object", Properties: props, Required: req, AdditionalProperties: additional}, nil
}

// Normalize implements verdict.Normalizer[map[string]any] by running the
// registered transforms in order.
func (o *objectSchema) Normalize(ctx context.Context, v map[string]any) (map[string]any, error) {
	out := v
	for _, fn := range o.transforms {
		nn, err := fn(ctx, out)
		if err != nil {
			return nil, issuesFromErr("/", err)
		}
		out = nn
	}
	return out, nil
}

// Refine implements verdict.Refiner[map[string]any] using builder-registered hooks.
func (o *objectSchema) Refine(ctx context.Context, v map[string]any) error {
	if len(o.refines) == 0 {
		return nil
	}
	var iss verdict.Issues
	for _, r := range o.refines {
		if r.fn == nil {
			continue
		}
		if err := r.fn(ctx, v); err != nil {
			if i2, ok := verdict.AsIssues(err); ok {
				for i := range i2 {
					if i2[i].Rule == "" {
						i2[i].Rule = r.name
					}
				}
				iss = verdict.AppendIssues(iss, i2...)
			} else {
				iss = verdict.AppendIssues(iss, verdict.Issue{Path: "/", Code: verdict.CodeCustom, Message: err.Error(), Cause: err, Rule: r.name})
			}
			if verdict.IsFailFast(ctx) {
				return iss
			}
		}
	}
	if len(iss) > 0 {
		return iss
	}
	return nil
}
