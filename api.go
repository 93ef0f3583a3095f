package verdict

import (
	"context"

	"github.com/verdict-go/verdict/shape"
)

// Schema surfaces the pillars of construction, validation, and structural
// description.
type Schema[T any] interface {
	// Parse transforms an unknown input into T (Coerce -> Default ->
	// Validate -> Transform -> Refine). It returns an error when validation
	// fails; the error is always Issues.
	Parse(ctx context.Context, v any) (T, error)

	// Validate checks an untyped value against the schema without producing
	// the transformed output.
	Validate(ctx context.Context, v any) error

	// ValidateValue verifies a value already typed as T without any conversion.
	ValidateValue(ctx context.Context, v T) error

	// Shape projects the schema into its structural description.
	Shape() (*shape.Shape, error)
}

// Normalizer provides an optional hook to normalize typed values during the
// Normalize phase of parsing. If it is not implemented, the phase is skipped.
type Normalizer[T any] interface {
	Normalize(ctx context.Context, v T) (T, error)
}

// Refiner provides an optional hook at the end of parsing to perform
// cross-field validation or external I/O. If it is not implemented, the phase
// is skipped. Refinements that consult external resources must do so through
// the supplied context; a failed predicate surfaces as an Issue, never as a
// panic.
type Refiner[T any] interface {
	Refine(ctx context.Context, v T) error
}

// Is returns true if v conforms to the schema s.
func Is[T any](ctx context.Context, s Schema[T], v any) bool {
	return s.Validate(ctx, v) == nil
}

// ---- Check-time context options (internal wiring, exported for subpackages) ----

type contextKey int

const _ctxKeyFailFast contextKey = iota

// WithFailFast returns a child context that marks fail-fast behavior. By
// default every independently detectable violation is collected; fail-fast
// stops at the first.
func WithFailFast(ctx context.Context, enabled bool) context.Context {
	return context.WithValue(ctx, _ctxKeyFailFast, enabled)
}

// IsFailFast reports whether the current check should stop on the first issue.
func IsFailFast(ctx context.Context) bool {
	v := ctx.Value(_ctxKeyFailFast)
	b, _ := v.(bool)
	return b
}
