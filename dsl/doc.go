// Package dsl provides a type-safe schema DSL for verdict.
//
// Overview
//   - Builder API: declare JSON object semantics (unknown/required/default/refine/transform) with Object()/Field()/Required()/UnknownStrict()/MustBuild().
//   - Primitives/Array/Map: String()/Bool()/Int()/Float(), Array(elem), MapAny() are provided.
//   - AnyAdapter: adapt existing Schema[T] to AnyAdapter via SchemaOf[T](s) to embed into builders;
//     chain Min/Max/MinLen/MaxLen/Pattern/Email/Enum/Nullable on it.
//   - Shape: every schema exports its structural description via Shape() for baselines and diffing.
//
// Entry points
//   - Object(): create an object builder; chain Field/Required/Unknown* then MustBuild()/Build().
//   - Array(elem): build an array schema from an element schema (Min/Max length).
//   - StringOf/BoolOf/IntOf/FloatOf: primitive adapters for Field.
//
// Semantics (optional vs nullable vs default)
//   - A field absent from Require(...) is optional: omission succeeds and the
//     key is absent from the output.
//   - Explicit null fails with null_not_allowed unless the adapter is wrapped
//     with Nullable(); nullable does not make a required field omittable.
//   - Default(v) applies only to absence, never to explicit null.
//
// Error model
//   - All failures are verdict.Issues (JSON Pointer path, code, message).
//   - Issue order follows field declaration order; refinements run in
//     registration order after transforms.
//
// Example (quickstart)
//
//	ctx := context.Background()
//	user := d.Object().
//	    Field("name",  d.StringOf[string]().MinLen(1)).
//	    Field("email", d.StringOf[string]().Email()).
//	    Field("age",   d.IntOf[int64]().Min(0).Max(150)).
//	    Require("name", "email", "age").
//	    UnknownStrict().
//	    MustBuild()
//
//	res := verdict.Check(ctx, user, input)
//	if !res.Ok() {
//	    form := res.Flatten() // field-keyed messages
//	}
//
// Example (Refine: cross-field or external validation)
//
//	obj := d.Object().
//	    Field("email",   d.StringOf[string]()).
//	    Field("confirm", d.StringOf[string]()).
//	    Require("email", "confirm").
//	    Refine("email==confirm", func(ctx context.Context, m map[string]any) error {
//	        if m["email"] != m["confirm"] {
//	            return verdict.Issues{verdict.At("/confirm").Issue(verdict.CodeCustom, "confirm must match email")}
//	        }
//	        return nil
//	    }).
//	    MustBuild()
package dsl
