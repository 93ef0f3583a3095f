package dsl_test

import (
	"context"
	"errors"
	"reflect"
	"testing"

	verdict "github.com/verdict-go/verdict"
	d "github.com/verdict-go/verdict/dsl"
)

func userSchema() verdict.Schema[map[string]any] {
	return d.Object().
		Field("name", d.StringOf[string]().MinLen(1)).
		Field("age", d.IntOf[int64]().Min(0).Max(150)).
		Field("email", d.StringOf[string]().Email()).
		Require("name", "age", "email").
		UnknownStrict().
		MustBuild()
}

func TestObject_ValidDocument(t *testing.T) {
	ctx := context.Background()
	res := verdict.Check(ctx, userSchema(), map[string]any{
		"name":  "Ada",
		"age":   30,
		"email": "ada@example.com",
	})
	if !res.Ok() {
		t.Fatalf("expected success, got %v", res.Issues())
	}
	out := res.Value()
	if out["name"] != "Ada" {
		t.Fatalf("unexpected name: %v", out["name"])
	}
	if out["age"] != int64(30) {
		t.Fatalf("age not normalized to int64: %T %v", out["age"], out["age"])
	}
}

// Every independently detectable violation is reported in one pass, ordered
// by field declaration order.
func TestObject_EmptyDocumentCollectsAllRequired(t *testing.T) {
	ctx := context.Background()
	res := verdict.Check(ctx, userSchema(), map[string]any{})
	if res.Ok() {
		t.Fatalf("expected failure")
	}
	iss := res.Issues()
	if len(iss) != 3 {
		t.Fatalf("expected 3 issues, got %d: %v", len(iss), iss)
	}
	wantPaths := []string{"/name", "/age", "/email"}
	for i, p := range wantPaths {
		if iss[i].Path != p || iss[i].Code != verdict.CodeRequired {
			t.Fatalf("issue %d: got %s %s, want required at %s", i, iss[i].Code, iss[i].Path, p)
		}
	}
}

func TestObject_BoundaryValues(t *testing.T) {
	ctx := context.Background()
	s := userSchema()
	cases := []struct {
		age  int
		ok   bool
		code string
	}{
		{-1, false, verdict.CodeTooSmall},
		{0, true, ""},
		{150, true, ""},
		{151, false, verdict.CodeTooBig},
	}
	for _, tc := range cases {
		res := verdict.Check(ctx, s, map[string]any{"name": "Ada", "age": tc.age, "email": "a@b.co"})
		if tc.ok {
			if !res.Ok() {
				t.Fatalf("age=%d: expected success, got %v", tc.age, res.Issues())
			}
			continue
		}
		iss := res.Issues()
		if res.Ok() || len(iss) != 1 || iss[0].Path != "/age" || iss[0].Code != tc.code {
			t.Fatalf("age=%d: expected single %s at /age, got %v", tc.age, tc.code, iss)
		}
	}
}

func TestObject_NullVersusAbsence(t *testing.T) {
	ctx := context.Background()
	s := d.Object().
		Field("name", d.StringOf[string]()).
		Field("avatar", d.StringOf[string]().Nullable()).
		Require("name", "avatar").
		MustBuild()

	// explicit null on a nullable required field is accepted
	res := verdict.Check(ctx, s, map[string]any{"name": "Ada", "avatar": nil})
	if !res.Ok() {
		t.Fatalf("nullable field rejected null: %v", res.Issues())
	}
	if v, exists := res.Value()["avatar"]; !exists || v != nil {
		t.Fatalf("avatar should be present and nil, got %v (exists=%v)", v, exists)
	}

	// absence of a required field is still a violation, nullable or not
	res = verdict.Check(ctx, s, map[string]any{"name": "Ada"})
	if res.Ok() || res.Issues()[0].Code != verdict.CodeRequired || res.Issues()[0].Path != "/avatar" {
		t.Fatalf("expected required at /avatar, got %v", res.Issues())
	}

	// explicit null on a non-nullable field is its own violation
	res = verdict.Check(ctx, s, map[string]any{"name": nil, "avatar": "x"})
	if res.Ok() || res.Issues()[0].Code != verdict.CodeNullNotAllowed || res.Issues()[0].Path != "/name" {
		t.Fatalf("expected null_not_allowed at /name, got %v", res.Issues())
	}
}

func TestObject_DefaultAppliesToAbsenceOnly(t *testing.T) {
	ctx := context.Background()
	s := d.Object().
		Field("name", d.StringOf[string]()).Required().
		Field("role", d.StringOf[string]()).Default("user").
		MustBuild()

	res := verdict.Check(ctx, s, map[string]any{"name": "Ada"})
	if !res.Ok() || res.Value()["role"] != "user" {
		t.Fatalf("expected default role, got %v / %v", res.Value(), res.Issues())
	}

	// explicit null does not trigger the default
	res = verdict.Check(ctx, s, map[string]any{"name": "Ada", "role": nil})
	if res.Ok() || res.Issues()[0].Code != verdict.CodeNullNotAllowed {
		t.Fatalf("expected null_not_allowed for explicit null, got %v", res.Issues())
	}
}

func TestObject_UnknownPolicies(t *testing.T) {
	ctx := context.Background()
	in := map[string]any{"name": "Ada", "debug": true}

	strict := d.Object().Field("name", d.StringOf[string]()).Require("name").UnknownStrict().MustBuild()
	res := verdict.Check(ctx, strict, in)
	if res.Ok() || res.Issues()[0].Code != verdict.CodeUnknownKey || res.Issues()[0].Path != "/debug" {
		t.Fatalf("strict: expected unknown_key at /debug, got %v", res.Issues())
	}

	strip := d.Object().Field("name", d.StringOf[string]()).Require("name").UnknownStrip().MustBuild()
	res = verdict.Check(ctx, strip, in)
	if !res.Ok() {
		t.Fatalf("strip: %v", res.Issues())
	}
	if _, exists := res.Value()["debug"]; exists {
		t.Fatalf("strip: unknown key survived")
	}

	pass := d.Object().
		Field("name", d.StringOf[string]()).
		Field("extra", d.SchemaOf(d.MapAny())).
		Require("name").
		UnknownPassthrough("extra").
		MustBuild()
	res = verdict.Check(ctx, pass, in)
	if !res.Ok() {
		t.Fatalf("passthrough: %v", res.Issues())
	}
	extra, _ := res.Value()["extra"].(map[string]any)
	if extra["debug"] != true {
		t.Fatalf("passthrough: unknown key not routed to target: %v", res.Value())
	}
}

func TestObject_PassthroughTargetMustBeMap(t *testing.T) {
	_, err := d.Object().
		Field("extra", d.StringOf[string]()).
		UnknownPassthrough("extra").
		Build()
	if err == nil {
		t.Fatalf("expected build error for non-map passthrough target")
	}
	if _, err := d.Object().UnknownPassthrough("missing").Build(); err == nil {
		t.Fatalf("expected build error for undeclared passthrough target")
	}
}

func TestObject_TransformDerivesFields(t *testing.T) {
	ctx := context.Background()
	s := d.Object().
		Field("first", d.StringOf[string]()).
		Field("last", d.StringOf[string]()).
		Require("first", "last").
		Transform(func(ctx context.Context, m map[string]any) (map[string]any, error) {
			m["display"] = m["first"].(string) + " " + m["last"].(string)
			return m, nil
		}).
		MustBuild()
	res := verdict.Check(ctx, s, map[string]any{"first": "Ada", "last": "Lovelace"})
	if !res.Ok() || res.Value()["display"] != "Ada Lovelace" {
		t.Fatalf("transform not applied: %v / %v", res.Value(), res.Issues())
	}
}

func TestObject_RefineStampsRuleName(t *testing.T) {
	ctx := context.Background()
	taken := map[string]bool{"ada@example.com": true}
	s := d.Object().
		Field("email", d.StringOf[string]().Email()).
		Require("email").
		Refine("unique_email", func(ctx context.Context, m map[string]any) error {
			// stands in for a store lookup; the caller's context flows through
			if err := ctx.Err(); err != nil {
				return err
			}
			if taken[m["email"].(string)] {
				return verdict.Issues{verdict.Issue{Path: "/email", Code: verdict.CodeCustom, Message: "already registered"}}
			}
			return nil
		}).
		MustBuild()

	res := verdict.Check(ctx, s, map[string]any{"email": "ada@example.com"})
	if res.Ok() {
		t.Fatalf("expected refinement rejection")
	}
	it := res.Issues()[0]
	if it.Path != "/email" || it.Code != verdict.CodeCustom || it.Rule != "unique_email" {
		t.Fatalf("unexpected refinement issue: %#v", it)
	}

	if res := verdict.Check(ctx, s, map[string]any{"email": "new@example.com"}); !res.Ok() {
		t.Fatalf("expected acceptance, got %v", res.Issues())
	}
}

func TestObject_RefinePlainErrorBecomesCustomIssue(t *testing.T) {
	ctx := context.Background()
	s := d.Object().
		Field("n", d.IntOf[int64]()).
		Require("n").
		Refine("positive_sum", func(ctx context.Context, m map[string]any) error {
			return errors.New("predicate rejected")
		}).
		MustBuild()
	res := verdict.Check(ctx, s, map[string]any{"n": 1})
	it := res.Issues()[0]
	if it.Code != verdict.CodeCustom || it.Path != "/" || it.Rule != "positive_sum" || it.Cause == nil {
		t.Fatalf("unexpected issue: %#v", it)
	}
}

func TestObject_FailFastStopsAtFirstIssue(t *testing.T) {
	ctx := verdict.WithFailFast(context.Background(), true)
	res := verdict.Check(ctx, userSchema(), map[string]any{})
	if res.Ok() || len(res.Issues()) != 1 {
		t.Fatalf("expected exactly one issue under fail-fast, got %v", res.Issues())
	}
	if res.Issues()[0].Path != "/name" {
		t.Fatalf("fail-fast should stop at the first declared field, got %v", res.Issues())
	}
}

// Feeding a successful output back through the schema succeeds and yields an
// equal value.
func TestObject_ParseIsIdempotent(t *testing.T) {
	ctx := context.Background()
	s := userSchema()
	first, err := verdict.Parse(ctx, s, map[string]any{"name": "Ada", "age": 30, "email": "ada@example.com"})
	if err != nil {
		t.Fatalf("first parse: %v", err)
	}
	second, err := verdict.Parse(ctx, s, first)
	if err != nil {
		t.Fatalf("second parse: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("idempotence violated:\n first=%v\nsecond=%v", first, second)
	}
}

// Conformance must agree with Check: a document whose field values are
// rejected is not conformant, even when every required key is present.
func TestIs_RejectsInvalidFieldValues(t *testing.T) {
	ctx := context.Background()
	s := d.Object().
		Field("name", d.StringOf[string]().MinLen(1)).
		Field("age", d.IntOf[int64]().Min(0).Max(150)).
		Require("name", "age").
		MustBuild()

	bad := map[string]any{"name": 123, "age": 999}
	if res := verdict.Check(ctx, s, bad); res.Ok() {
		t.Fatalf("expected rejection")
	}
	if verdict.Is(ctx, s, bad) {
		t.Fatalf("Is reported conformance for a document Check rejects")
	}
	if !verdict.Is(ctx, s, map[string]any{"name": "Ada", "age": 30}) {
		t.Fatalf("Is rejected a valid document")
	}
}

func TestObject_NestedPathsAreRebased(t *testing.T) {
	ctx := context.Background()
	inner := d.Object().
		Field("city", d.StringOf[string]()).
		Require("city").
		MustBuild()
	s := d.Object().
		Field("address", d.SchemaOf(inner)).
		Require("address").
		MustBuild()
	res := verdict.Check(ctx, s, map[string]any{"address": map[string]any{}})
	if res.Ok() || res.Issues()[0].Path != "/address/city" {
		t.Fatalf("expected issue at /address/city, got %v", res.Issues())
	}
}
