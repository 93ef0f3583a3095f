package verdict

import (
	"context"
	"fmt"
)

// Result is the outcome envelope of a validation call: either a validated,
// transformed value or an ordered, non-empty sequence of Issues. Exactly one
// variant is populated.
type Result[T any] struct {
	value  T
	issues Issues
	ok     bool
}

// OK wraps a validated value into the success variant.
func OK[T any](v T) Result[T] { return Result[T]{value: v, ok: true} }

// Fail wraps issues into the failure variant. A failure never carries an
// empty issue sequence; an empty input is coerced to a single parse_error.
func Fail[T any](iss Issues) Result[T] {
	if len(iss) == 0 {
		iss = AppendIssues(nil, Issue{Code: CodeParseError, Message: "validation failed without issue detail"})
	}
	return Result[T]{issues: iss}
}

// Ok reports whether the result is the success variant.
func (r Result[T]) Ok() bool { return r.ok }

// Value returns the validated value. It is the zero value on failure.
func (r Result[T]) Value() T { return r.value }

// Issues returns the issue sequence. It is nil on success.
func (r Result[T]) Issues() Issues {
	if r.ok {
		return nil
	}
	return r.issues
}

// Flatten projects the failure issues into the field-keyed display structure.
// On success it returns an empty Flattened.
func (r Result[T]) Flatten() Flattened { return Flatten(r.Issues()) }

// Unwrap converts the result back into Go's (value, error) convention.
func (r Result[T]) Unwrap() (T, error) {
	if r.ok {
		return r.value, nil
	}
	var zero T
	return zero, r.issues
}

// Check validates v against s and reports the outcome as a value. Invalid
// input is an expected outcome: Check never returns an error and never
// panics for it.
func Check[T any](ctx context.Context, s Schema[T], v any) Result[T] {
	if s == nil {
		return Fail[T](AppendIssues(nil, Issue{Code: CodeParseError, Message: "nil schema"}))
	}
	out, err := s.Parse(ctx, v)
	if err != nil {
		return Fail[T](toIssues(err))
	}
	return OK(out)
}

// Parse validates v against s, propagating failure as an error. The error is
// always the full Issues sequence so callers who choose to handle it keep
// every diagnostic. Prefer Check at boundaries that treat invalid input as
// ordinary data.
func Parse[T any](ctx context.Context, s Schema[T], v any) (T, error) {
	var zero T
	if s == nil {
		return zero, AppendIssues(nil, Issue{Code: CodeParseError, Message: "nil schema"})
	}
	out, err := s.Parse(ctx, v)
	if err != nil {
		return zero, toIssues(err)
	}
	return out, nil
}

// MustParse is like Parse but panics on invalid input. Reserved for
// initialization paths where invalid input is a programming error.
func MustParse[T any](ctx context.Context, s Schema[T], v any) T {
	out, err := Parse(ctx, s, v)
	if err != nil {
		panic(fmt.Sprintf("verdict: %v", err))
	}
	return out
}
