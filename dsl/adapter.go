package dsl

import (
	"context"
	"encoding/json"
	"fmt"
	"reflect"
	"regexp"
	"strconv"

	verdict "github.com/verdict-go/verdict"
	"github.com/verdict-go/verdict/i18n"
	"github.com/verdict-go/verdict/shape"
)

// AnyAdapter adapts Schema[T] to an any-typed DSL wrapper.
// It keeps the original schema to support default application and shape
// augmentation.
type AnyAdapter struct {
	parse         func(context.Context, any) (any, error)
	validateValue func(context.Context, any) error
	applyDefault  func(context.Context) (any, error)
	shapeFn       func() (*shape.Shape, error)
	nullable      bool
	orig          any
}

// anyAdapterFromSchema wraps a strongly typed Schema[T] as AnyAdapter for Field builders.
func anyAdapterFromSchema[T any](s verdict.Schema[T]) AnyAdapter {
	return AnyAdapter{
		parse: func(ctx context.Context, v any) (any, error) { return s.Parse(ctx, v) },
		validateValue: func(ctx context.Context, v any) error {
			tv, ok := v.(T)
			if !ok {
				return verdict.Issues{verdict.Issue{Path: "/", Code: verdict.CodeInvalidType, Message: "invalid field type"}}
			}
			return s.ValidateValue(ctx, tv)
		},
		shapeFn: s.Shape,
		orig:    s,
	}
}

// SchemaOf adapts an existing Schema[T] to AnyAdapter so it can be embedded
// into object builders.
func SchemaOf[T any](s verdict.Schema[T]) AnyAdapter { return anyAdapterFromSchema[T](s) }

// Orig returns the original underlying Schema[T] used to create this adapter.
func (ad AnyAdapter) Orig() any { return ad.orig }

// Shape renders the adapter's structural description.
func (ad AnyAdapter) Shape() (*shape.Shape, error) {
	if ad.shapeFn == nil {
		return &shape.Shape{}, nil
	}
	s, err := ad.shapeFn()
	if err != nil {
		return nil, err
	}
	if s == nil {
		s = &shape.Shape{}
	}
	if ad.nullable {
		s.Nullable = true
	}
	return s, nil
}

// Nullable wraps an AnyAdapter to accept explicit JSON null for both parse
// and validate. Null is distinct from absence: absence is governed by the
// enclosing object's required set, null by this wrapper.
func Nullable(ad AnyAdapter) AnyAdapter {
	prevParse := ad.parse
	prevValidate := ad.validateValue
	out := ad
	out.nullable = true
	out.parse = func(ctx context.Context, v any) (any, error) {
		if v == nil {
			return nil, nil
		}
		if prevParse == nil {
			return v, nil
		}
		return prevParse(ctx, v)
	}
	out.validateValue = func(ctx context.Context, v any) error {
		if v == nil {
			return nil
		}
		if prevValidate == nil {
			return nil
		}
		return prevValidate(ctx, v)
	}
	return out
}

// Nullable enables fluent chaining: d.StringOf[string]().Nullable()
func (ad AnyAdapter) Nullable() AnyAdapter { return Nullable(ad) }

// Min sets an inclusive numeric minimum at runtime and in the shape.
// The declared bound itself passes; one unit beyond fails.
func (ad AnyAdapter) Min(n float64) AnyAdapter {
	return ad.withCheck(
		func(v any) error { return boundCheck(v, n, true) },
		func(s *shape.Shape) {
			s.Minimum = ptrFloat(n)
			if s.Type == "" {
				s.Type = "number"
			}
		},
	)
}

// Max sets an inclusive numeric maximum at runtime and in the shape.
func (ad AnyAdapter) Max(n float64) AnyAdapter {
	return ad.withCheck(
		func(v any) error { return boundCheck(v, n, false) },
		func(s *shape.Shape) {
			s.Maximum = ptrFloat(n)
			if s.Type == "" {
				s.Type = "number"
			}
		},
	)
}

// MinLen sets a minimum string length (in bytes, matching Go len semantics).
func (ad AnyAdapter) MinLen(n int) AnyAdapter {
	return ad.withCheck(
		func(v any) error {
			s, ok := v.(string)
			if ok && len(s) < n {
				return verdict.Issues{verdict.Issue{Path: "/", Code: verdict.CodeTooShort, Message: i18n.T(verdict.CodeTooShort, nil), Params: map[string]any{"min": n, "got": len(s)}}}
			}
			return nil
		},
		func(s *shape.Shape) {
			s.MinLength = ptrInt(n)
			if s.Type == "" {
				s.Type = "string"
			}
		},
	)
}

// MaxLen sets a maximum string length.
func (ad AnyAdapter) MaxLen(n int) AnyAdapter {
	return ad.withCheck(
		func(v any) error {
			s, ok := v.(string)
			if ok && len(s) > n {
				return verdict.Issues{verdict.Issue{Path: "/", Code: verdict.CodeTooLong, Message: i18n.T(verdict.CodeTooLong, nil), Params: map[string]any{"max": n, "got": len(s)}}}
			}
			return nil
		},
		func(s *shape.Shape) {
			s.MaxLength = ptrInt(n)
			if s.Type == "" {
				s.Type = "string"
			}
		},
	)
}

// Pattern constrains string values to the given regular expression.
// An invalid expression is a schema construction bug and panics.
func (ad AnyAdapter) Pattern(expr string) AnyAdapter {
	re := regexp.MustCompile(expr)
	return ad.withCheck(
		func(v any) error {
			s, ok := v.(string)
			if ok && !re.MatchString(s) {
				return verdict.Issues{verdict.Issue{Path: "/", Code: verdict.CodePattern, Message: i18n.T(verdict.CodePattern, nil), Params: map[string]any{"pattern": expr}}}
			}
			return nil
		},
		func(s *shape.Shape) {
			s.Pattern = expr
			if s.Type == "" {
				s.Type = "string"
			}
		},
	)
}

var emailRe = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// Email constrains string values to a pragmatic email format.
func (ad AnyAdapter) Email() AnyAdapter {
	return ad.withCheck(
		func(v any) error {
			s, ok := v.(string)
			if ok && !emailRe.MatchString(s) {
				return verdict.Issues{verdict.Issue{Path: "/", Code: verdict.CodeInvalidFormat, Message: i18n.T(verdict.CodeInvalidFormat, nil), Hint: "email"}}
			}
			return nil
		},
		func(s *shape.Shape) {
			s.Format = "email"
			if s.Type == "" {
				s.Type = "string"
			}
		},
	)
}

// Enum constrains values to the given set.
func (ad AnyAdapter) Enum(vals ...any) AnyAdapter {
	allowed := append([]any{}, vals...)
	return ad.withCheck(
		func(v any) error {
			for _, a := range allowed {
				if reflect.DeepEqual(v, a) {
					return nil
				}
			}
			return verdict.Issues{verdict.Issue{Path: "/", Code: verdict.CodeInvalidEnum, Message: i18n.T(verdict.CodeInvalidEnum, nil), Params: map[string]any{"allowed": fmt.Sprintf("%v", allowed)}}}
		},
		func(s *shape.Shape) { s.Enum = allowed },
	)
}

// withCheck layers a post-parse check and a shape augmentation over the
// adapter. Nil values skip the check so Nullable composes in either order.
func (ad AnyAdapter) withCheck(check func(any) error, augment func(*shape.Shape)) AnyAdapter {
	prevParse := ad.parse
	prevValidate := ad.validateValue
	prevShape := ad.shapeFn
	out := ad
	out.parse = func(ctx context.Context, v any) (any, error) {
		val := v
		if prevParse != nil {
			pv, err := prevParse(ctx, v)
			if err != nil {
				return nil, err
			}
			val = pv
		}
		if val == nil {
			return val, nil
		}
		if err := check(val); err != nil {
			return nil, err
		}
		return val, nil
	}
	out.validateValue = func(ctx context.Context, v any) error {
		if prevValidate != nil {
			if err := prevValidate(ctx, v); err != nil {
				return err
			}
		}
		if v == nil {
			return nil
		}
		return check(v)
	}
	out.shapeFn = func() (*shape.Shape, error) {
		s := &shape.Shape{}
		if prevShape != nil {
			ps, err := prevShape()
			if err != nil {
				return nil, err
			}
			if ps != nil {
				s = ps
			}
		}
		augment(s)
		return s, nil
	}
	return out
}

// ---- helpers ----

func ptrFloat(v float64) *float64 { return &v }
func ptrInt(v int) *int           { return &v }

// boundCheck compares any numeric representation against an inclusive bound.
func boundCheck(v any, bound float64, lower bool) error {
	f, ok := asFloat(v)
	if !ok {
		return nil
	}
	if lower && f < bound {
		return verdict.Issues{verdict.Issue{Path: "/", Code: verdict.CodeTooSmall, Message: i18n.T(verdict.CodeTooSmall, nil), Params: map[string]any{"min": bound, "got": f}}}
	}
	if !lower && f > bound {
		return verdict.Issues{verdict.Issue{Path: "/", Code: verdict.CodeTooBig, Message: i18n.T(verdict.CodeTooBig, nil), Params: map[string]any{"max": bound, "got": f}}}
	}
	return nil
}

func asFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int8, int16, int32, int64:
		return float64(reflect.ValueOf(n).Int()), true
	case uint, uint8, uint16, uint32, uint64:
		return float64(reflect.ValueOf(n).Uint()), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	case json.Number:
		f, err := strconv.ParseFloat(string(n), 64)
		if err != nil {
			return 0, false
		}
		return f, true
	}
	return 0, false
}
