// Package httpbind glues verdict schemas to HTTP JSON boundaries. The
// middleware validates the request body before the handler runs: on failure
// it answers 422 with the flattened issue projection and the downstream
// handler is never invoked; on success the handler receives the validated,
// transformed value from the request context, never the raw body.
package httpbind

import (
	"context"
	"net/http"

	json "github.com/goccy/go-json"

	verdict "github.com/verdict-go/verdict"
)

// ctxKeyValue is a typed context key for storing validated values.
// Using a generic struct type ensures uniqueness per T.
type ctxKeyValue[T any] struct{}

// ContextWithValue attaches a validated value to the context.
func ContextWithValue[T any](ctx context.Context, v T) context.Context {
	return context.WithValue(ctx, ctxKeyValue[T]{}, v)
}

// FromContext retrieves a validated value from context.
func FromContext[T any](ctx context.Context) (T, bool) {
	v, ok := ctx.Value(ctxKeyValue[T]{}).(T)
	return v, ok
}

// Decode reads the request body as JSON (numbers preserved as json.Number)
// and parses it through the schema. The error, when non-nil, is always
// verdict.Issues.
func Decode[T any](r *http.Request, s verdict.Schema[T]) (T, error) {
	var zero T
	dec := json.NewDecoder(r.Body)
	dec.UseNumber()
	var raw any
	if err := dec.Decode(&raw); err != nil {
		return zero, verdict.Issues{verdict.Issue{Code: verdict.CodeParseError, Message: "malformed JSON body", Cause: err}}
	}
	return verdict.Parse(r.Context(), s, raw)
}

// Check is Decode with the outcome reported as a value.
func Check[T any](r *http.Request, s verdict.Schema[T]) verdict.Result[T] {
	v, err := Decode(r, s)
	if err != nil {
		iss, _ := verdict.AsIssues(err)
		return verdict.Fail[T](iss)
	}
	return verdict.OK(v)
}

// Middleware validates the request body against the schema before calling
// the next handler. It is router-agnostic (chi, net/http mux, ...).
func Middleware[T any](s verdict.Schema[T]) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			res := Check(r, s)
			if !res.Ok() {
				WriteIssues(w, res.Issues())
				return
			}
			next.ServeHTTP(w, r.WithContext(ContextWithValue(r.Context(), res.Value())))
		})
	}
}

// ErrorPayload shapes issues for JSON responses: a field-keyed structure
// ready for form binding, with root-level messages kept separately.
func ErrorPayload(iss verdict.Issues) map[string]any {
	fl := verdict.Flatten(iss)
	return map[string]any{
		"error":  "validation_failed",
		"fields": fl.Fields,
		"root":   fl.Root,
	}
}

// WriteIssues answers 422 with the flattened error payload.
func WriteIssues(w http.ResponseWriter, iss verdict.Issues) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(http.StatusUnprocessableEntity)
	_ = json.NewEncoder(w).Encode(ErrorPayload(iss))
}
