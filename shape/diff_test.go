package shape_test

import (
	"testing"

	"github.com/verdict-go/verdict/shape"
)

func f(v float64) *float64 { return &v }
func i(v int) *int         { return &v }

func baseline() *shape.Shape {
	return &shape.Shape{
		Type: "object",
		Properties: map[string]*shape.Shape{
			"name":  {Type: "string", MinLength: i(1)},
			"age":   {Type: "integer", Minimum: f(0), Maximum: f(150)},
			"email": {Type: "string", Format: "email"},
		},
		Required:             []string{"age", "email", "name"},
		AdditionalProperties: false,
	}
}

func TestDiff_Identical(t *testing.T) {
	if changes := shape.Diff(baseline(), baseline()); len(changes) != 0 {
		t.Fatalf("expected no drift, got %v", changes)
	}
}

func TestDiff_FieldRemovedAndAdded(t *testing.T) {
	curr := baseline()
	delete(curr.Properties, "email")
	curr.Properties["nickname"] = &shape.Shape{Type: "string"}
	curr.Required = []string{"age", "name"}

	changes := shape.Diff(baseline(), curr)
	if !hasChange(changes, "/email", shape.ChangeFieldRemoved) {
		t.Fatalf("missing field_removed at /email: %v", changes)
	}
	if !hasChange(changes, "/nickname", shape.ChangeFieldAdded) {
		t.Fatalf("missing field_added at /nickname: %v", changes)
	}
}

func TestDiff_TypeAndOptionality(t *testing.T) {
	curr := baseline()
	curr.Properties["age"] = &shape.Shape{Type: "string"}
	curr.Required = []string{"email", "name"}

	changes := shape.Diff(baseline(), curr)
	if !hasChange(changes, "/age", shape.ChangeTypeChanged) {
		t.Fatalf("missing type_changed at /age: %v", changes)
	}
	if !hasChange(changes, "/age", shape.ChangeOptionality) {
		t.Fatalf("missing optionality_changed at /age: %v", changes)
	}
}

func TestDiff_NullabilityAndBounds(t *testing.T) {
	curr := baseline()
	curr.Properties["name"] = &shape.Shape{Type: "string", MinLength: i(3), Nullable: true}

	changes := shape.Diff(baseline(), curr)
	if !hasChange(changes, "/name", shape.ChangeNullability) {
		t.Fatalf("missing nullability_changed at /name: %v", changes)
	}
	if !hasChange(changes, "/name", shape.ChangeBoundChanged) {
		t.Fatalf("missing bound_changed at /name: %v", changes)
	}
}

func TestDiff_UnknownPolicy(t *testing.T) {
	curr := baseline()
	curr.AdditionalProperties = true
	changes := shape.Diff(baseline(), curr)
	if !hasChange(changes, "/", shape.ChangeUnknownPolicy) {
		t.Fatalf("missing unknown_policy_changed at /: %v", changes)
	}
}

func TestDiff_NestedItems(t *testing.T) {
	old := &shape.Shape{Type: "array", Items: &shape.Shape{Type: "string"}}
	curr := &shape.Shape{Type: "array", Items: &shape.Shape{Type: "integer"}}
	changes := shape.Diff(old, curr)
	if !hasChange(changes, "/items", shape.ChangeTypeChanged) {
		t.Fatalf("missing type_changed at /items: %v", changes)
	}
}

func hasChange(changes []shape.Change, path, kind string) bool {
	for _, c := range changes {
		if c.Path == path && c.Kind == kind {
			return true
		}
	}
	return false
}
