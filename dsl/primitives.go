package dsl

import (
	"context"
	"encoding/json"
	"math"
	"strconv"

	verdict "github.com/verdict-go/verdict"
	"github.com/verdict-go/verdict/i18n"
	"github.com/verdict-go/verdict/shape"
)

// String returns the minimal string schema implementation.
func String() verdict.Schema[string] { return stringSchema{} }

// Bool returns the minimal bool schema implementation.
func Bool() verdict.Schema[bool] { return boolSchema{} }

// Int returns the integer schema implementation. It accepts Go integers and
// JSON numbers with integral values.
func Int() verdict.Schema[int64] { return intSchema{} }

// Float returns the float schema implementation. It accepts Go numerics and
// json.Number; CoerceFromString additionally accepts numeric strings.
func Float() FloatBuilder { return &floatSchema{} }

// FloatBuilder exposes chaining options for float schemas while implementing Schema[float64].
type FloatBuilder interface {
	verdict.Schema[float64]
	CoerceFromString() FloatBuilder
}

type stringSchema struct{}

func (stringSchema) Parse(ctx context.Context, v any) (string, error) {
	s, ok := v.(string)
	if !ok {
		return "", typeIssue("string")
	}
	// Normalize -> ValidateValue -> Refine
	ns, err := verdict.ApplyNormalize[string](ctx, s, stringSchema{})
	if err != nil {
		return "", err
	}
	s = ns
	if err := (stringSchema{}).ValidateValue(ctx, s); err != nil {
		return "", err
	}
	if err := verdict.ApplyRefine[string](ctx, s, stringSchema{}); err != nil {
		return "", err
	}
	return s, nil
}

func (stringSchema) Validate(ctx context.Context, v any) error {
	if _, ok := v.(string); !ok {
		return typeIssue("string")
	}
	return nil
}

func (stringSchema) ValidateValue(ctx context.Context, v string) error { return nil }

func (stringSchema) Shape() (*shape.Shape, error) { return &shape.Shape{Type: "string"}, nil }

type boolSchema struct{}

func (boolSchema) Parse(ctx context.Context, v any) (bool, error) {
	b, ok := v.(bool)
	if !ok {
		return false, typeIssue("boolean")
	}
	nb, err := verdict.ApplyNormalize[bool](ctx, b, boolSchema{})
	if err != nil {
		return false, err
	}
	b = nb
	if err := (boolSchema{}).ValidateValue(ctx, b); err != nil {
		return false, err
	}
	if err := verdict.ApplyRefine[bool](ctx, b, boolSchema{}); err != nil {
		return false, err
	}
	return b, nil
}

func (boolSchema) Validate(ctx context.Context, v any) error {
	if _, ok := v.(bool); !ok {
		return typeIssue("boolean")
	}
	return nil
}

func (boolSchema) ValidateValue(ctx context.Context, v bool) error { return nil }

func (boolSchema) Shape() (*shape.Shape, error) { return &shape.Shape{Type: "boolean"}, nil }

type intSchema struct{}

func (intSchema) Parse(ctx context.Context, v any) (int64, error) {
	n, err := coerceInt(v)
	if err != nil {
		return 0, err
	}
	nn, err := verdict.ApplyNormalize[int64](ctx, n, intSchema{})
	if err != nil {
		return 0, err
	}
	if err := (intSchema{}).ValidateValue(ctx, nn); err != nil {
		return 0, err
	}
	if err := verdict.ApplyRefine[int64](ctx, nn, intSchema{}); err != nil {
		return 0, err
	}
	return nn, nil
}

func (intSchema) Validate(ctx context.Context, v any) error {
	_, err := coerceInt(v)
	return err
}

func (intSchema) ValidateValue(ctx context.Context, v int64) error { return nil }

func (intSchema) Shape() (*shape.Shape, error) { return &shape.Shape{Type: "integer"}, nil }

// coerceInt converts wire and Go representations to int64 with integer-only
// semantics. Fractional numbers are invalid_type, not rounded.
func coerceInt(v any) (int64, error) {
	switch t := v.(type) {
	case int:
		return int64(t), nil
	case int8:
		return int64(t), nil
	case int16:
		return int64(t), nil
	case int32:
		return int64(t), nil
	case int64:
		return t, nil
	case uint:
		return int64(t), nil
	case uint8:
		return int64(t), nil
	case uint16:
		return int64(t), nil
	case uint32:
		return int64(t), nil
	case uint64:
		if t > math.MaxInt64 {
			return 0, typeIssue("integer")
		}
		return int64(t), nil
	case float64:
		if t != math.Trunc(t) || math.IsInf(t, 0) || math.IsNaN(t) {
			return 0, typeIssue("integer")
		}
		return int64(t), nil
	case json.Number:
		if i, err := t.Int64(); err == nil {
			return i, nil
		}
		return 0, typeIssue("integer")
	default:
		return 0, typeIssue("integer")
	}
}

type floatSchema struct{ coerceFromString bool }

func (f *floatSchema) CoerceFromString() FloatBuilder {
	f.coerceFromString = true
	return f
}

func (f *floatSchema) Parse(ctx context.Context, v any) (float64, error) {
	n, err := f.coerce(v)
	if err != nil {
		return 0, err
	}
	if err := f.ValidateValue(ctx, n); err != nil {
		return 0, err
	}
	return n, nil
}

func (f *floatSchema) Validate(ctx context.Context, v any) error {
	_, err := f.coerce(v)
	return err
}

func (f *floatSchema) ValidateValue(ctx context.Context, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return typeIssue("number")
	}
	return nil
}

func (f *floatSchema) Shape() (*shape.Shape, error) { return &shape.Shape{Type: "number"}, nil }

func (f *floatSchema) coerce(v any) (float64, error) {
	switch t := v.(type) {
	case float64:
		return t, nil
	case float32:
		return float64(t), nil
	case int:
		return float64(t), nil
	case int64:
		return float64(t), nil
	case json.Number:
		n, err := t.Float64()
		if err != nil {
			return 0, typeIssue("number")
		}
		return n, nil
	case string:
		if f.coerceFromString {
			n, err := strconv.ParseFloat(t, 64)
			if err != nil {
				return 0, typeIssue("number")
			}
			return n, nil
		}
		return 0, typeIssue("number")
	default:
		return 0, typeIssue("number")
	}
}

func typeIssue(expected string) verdict.Issues {
	return verdict.Issues{verdict.Issue{
		Path:    "/",
		Code:    verdict.CodeInvalidType,
		Message: i18n.T(verdict.CodeInvalidType, nil),
		Hint:    "expected " + expected,
	}}
}

// ---- adapter constructors ----

// StringOf returns an AnyAdapter for a string wire schema projected to domain type T.
type stringAsSchema[T ~string] struct{}

func (stringAsSchema[T]) Parse(ctx context.Context, v any) (T, error) {
	s, err := (stringSchema{}).Parse(ctx, v)
	if err != nil {
		var zero T
		return zero, err
	}
	return T(s), nil
}
func (stringAsSchema[T]) Validate(ctx context.Context, v any) error {
	return (stringSchema{}).Validate(ctx, v)
}
func (stringAsSchema[T]) ValidateValue(ctx context.Context, v T) error {
	return (stringSchema{}).ValidateValue(ctx, string(v))
}
func (stringAsSchema[T]) Shape() (*shape.Shape, error) { return (stringSchema{}).Shape() }

func StringOf[T ~string]() AnyAdapter {
	ad := anyAdapterFromSchema[T](stringAsSchema[T]{})
	ad.orig = stringSchema{}
	return ad
}

// BoolOf returns an AnyAdapter for a bool wire schema projected to domain type T.
type boolAsSchema[T ~bool] struct{}

func (boolAsSchema[T]) Parse(ctx context.Context, v any) (T, error) {
	b, err := (boolSchema{}).Parse(ctx, v)
	if err != nil {
		var zero T
		return zero, err
	}
	return T(b), nil
}
func (boolAsSchema[T]) Validate(ctx context.Context, v any) error {
	return (boolSchema{}).Validate(ctx, v)
}
func (boolAsSchema[T]) ValidateValue(ctx context.Context, v T) error {
	return (boolSchema{}).ValidateValue(ctx, bool(v))
}
func (boolAsSchema[T]) Shape() (*shape.Shape, error) { return (boolSchema{}).Shape() }

func BoolOf[T ~bool]() AnyAdapter {
	ad := anyAdapterFromSchema[T](boolAsSchema[T]{})
	ad.orig = boolSchema{}
	return ad
}

// IntOf returns an AnyAdapter for an integer wire schema projected to domain type T.
type intAsSchema[T ~int64] struct{}

func (intAsSchema[T]) Parse(ctx context.Context, v any) (T, error) {
	n, err := (intSchema{}).Parse(ctx, v)
	if err != nil {
		var zero T
		return zero, err
	}
	return T(n), nil
}
func (intAsSchema[T]) Validate(ctx context.Context, v any) error {
	return (intSchema{}).Validate(ctx, v)
}
func (intAsSchema[T]) ValidateValue(ctx context.Context, v T) error {
	return (intSchema{}).ValidateValue(ctx, int64(v))
}
func (intAsSchema[T]) Shape() (*shape.Shape, error) { return (intSchema{}).Shape() }

func IntOf[T ~int64]() AnyAdapter {
	ad := anyAdapterFromSchema[T](intAsSchema[T]{})
	ad.orig = intSchema{}
	return ad
}

// FloatOf returns an AnyAdapter for a float wire schema projected to domain type T.
type floatAsSchema[T ~float64] struct{ f floatSchema }

func (s floatAsSchema[T]) Parse(ctx context.Context, v any) (T, error) {
	n, err := (&s.f).Parse(ctx, v)
	if err != nil {
		var zero T
		return zero, err
	}
	return T(n), nil
}
func (s floatAsSchema[T]) Validate(ctx context.Context, v any) error {
	return (&s.f).Validate(ctx, v)
}
func (s floatAsSchema[T]) ValidateValue(ctx context.Context, v T) error {
	return (&s.f).ValidateValue(ctx, float64(v))
}
func (s floatAsSchema[T]) Shape() (*shape.Shape, error) { return (&s.f).Shape() }

func FloatOf[T ~float64]() AnyAdapter {
	ad := anyAdapterFromSchema[T](floatAsSchema[T]{})
	ad.orig = &floatSchema{}
	return ad
}
