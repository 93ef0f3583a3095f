package dsl

import (
	"context"
	"strconv"

	verdict "github.com/verdict-go/verdict"
	"github.com/verdict-go/verdict/i18n"
	"github.com/verdict-go/verdict/shape"
)

// ArrayBuilder exposes chaining methods for array schemas while implementing Schema[[]E].
type ArrayBuilder[E any] interface {
	verdict.Schema[[]E]
	Min(n int) ArrayBuilder[E]
	Max(n int) ArrayBuilder[E]
}

// Array returns an array schema with the given element schema.
func Array[E any](elem verdict.Schema[E]) ArrayBuilder[E] {
	return &arraySchema[E]{elem: elem, minLen: -1, maxLen: -1}
}

// ArrayOf adapts Array[E] to AnyAdapter for use in object builders.
// Example: Field("tags", d.ArrayOf[string](d.String()))
func ArrayOf[E any](elem verdict.Schema[E]) AnyAdapter {
	return anyAdapterFromSchema[[]E](Array[E](elem))
}

type arraySchema[E any] struct {
	elem   verdict.Schema[E]
	minLen int
	maxLen int
}

// Min sets the minimum length (inclusive).
func (a *arraySchema[E]) Min(n int) ArrayBuilder[E] { a.minLen = n; return a }

// Max sets the maximum length (inclusive).
func (a *arraySchema[E]) Max(n int) ArrayBuilder[E] { a.maxLen = n; return a }

func (a *arraySchema[E]) Parse(ctx context.Context, v any) ([]E, error) {
	switch src := v.(type) {
	case []E:
		if err := a.ValidateValue(ctx, src); err != nil {
			return nil, err
		}
		return src, nil
	case []any:
		res := make([]E, 0, len(src))
		var iss verdict.Issues
		for i := range src {
			ev, err := a.elem.Parse(ctx, src[i])
			if err != nil {
				base := "/" + strconv.Itoa(i)
				if child, ok := verdict.AsIssues(err); ok {
					iss = verdict.AppendIssues(iss, rebase(base, child)...)
				} else {
					iss = verdict.AppendIssues(iss, verdict.Issue{Path: base, Code: verdict.CodeParseError, Message: err.Error(), Cause: err})
				}
				if verdict.IsFailFast(ctx) {
					return nil, iss
				}
				continue
			}
			res = append(res, ev)
		}
		if len(iss) > 0 {
			return nil, iss
		}
		if err := a.ValidateValue(ctx, res); err != nil {
			return nil, err
		}
		return res, nil
	default:
		return nil, verdict.Issues{verdict.Issue{Path: "/", Code: verdict.CodeInvalidType, Message: i18n.T(verdict.CodeInvalidType, nil), Hint: "expected array"}}
	}
}

// Validate parses the whole input and discards the result, so element
// values are checked, not just length.
func (a *arraySchema[E]) Validate(ctx context.Context, v any) error {
	_, err := a.Parse(ctx, v)
	return err
}

func (a *arraySchema[E]) ValidateValue(ctx context.Context, v []E) error {
	if err := a.lengthCheck(len(v)); err != nil {
		return err
	}
	for i := range v {
		if err := a.elem.ValidateValue(ctx, v[i]); err != nil {
			if child, ok := verdict.AsIssues(err); ok {
				return rebase("/"+strconv.Itoa(i), child)
			}
			return err
		}
	}
	return nil
}

func (a *arraySchema[E]) lengthCheck(n int) error {
	var iss verdict.Issues
	if a.minLen >= 0 && n < a.minLen {
		iss = verdict.AppendIssues(iss, verdict.Issue{Path: "/", Code: verdict.CodeTooShort, Message: i18n.T(verdict.CodeTooShort, nil), Hint: "array is shorter than min"})
	}
	if a.maxLen >= 0 && n > a.maxLen {
		iss = verdict.AppendIssues(iss, verdict.Issue{Path: "/", Code: verdict.CodeTooLong, Message: i18n.T(verdict.CodeTooLong, nil), Hint: "array is longer than max"})
	}
	if len(iss) > 0 {
		return iss
	}
	return nil
}

func (a *arraySchema[E]) Shape() (*shape.Shape, error) {
	es, err := a.elem.Shape()
	if err != nil {
		return nil, err
	}
	s := &shape.Shape{Type: "array", Items: es}
	if a.minLen >= 0 {
		n := a.minLen
		s.MinItems = &n
	}
	if a.maxLen >= 0 {
		n := a.maxLen
		s.MaxItems = &n
	}
	return s, nil
}
