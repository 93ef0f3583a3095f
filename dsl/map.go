package dsl

import (
	"context"

	verdict "github.com/verdict-go/verdict"
	"github.com/verdict-go/verdict/i18n"
	"github.com/verdict-go/verdict/shape"
)

// MapAny returns a sparse map schema that accepts any values. Its main role
// is serving as the UnknownPassthrough target of an object builder.
func MapAny() verdict.Schema[map[string]any] { return mapAnySchema{} }

type mapAnySchema struct{}

func (mapAnySchema) Parse(ctx context.Context, v any) (map[string]any, error) {
	m, ok := v.(map[string]any)
	if !ok {
		return nil, verdict.Issues{verdict.Issue{Path: "/", Code: verdict.CodeInvalidType, Message: i18n.T(verdict.CodeInvalidType, nil), Hint: "expected object"}}
	}
	return m, nil
}

func (mapAnySchema) Validate(ctx context.Context, v any) error {
	if _, ok := v.(map[string]any); !ok {
		return verdict.Issues{verdict.Issue{Path: "/", Code: verdict.CodeInvalidType, Message: i18n.T(verdict.CodeInvalidType, nil), Hint: "expected object"}}
	}
	return nil
}

func (mapAnySchema) ValidateValue(ctx context.Context, v map[string]any) error { return nil }

func (mapAnySchema) Shape() (*shape.Shape, error) {
	return &shape.Shape{Type: "object", AdditionalProperties: true}, nil
}
