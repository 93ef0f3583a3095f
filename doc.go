package verdict

// Package verdict provides:
//
// - A value-based validation outcome protocol: Check returns Result[T], never an error
// - A stable error model via Issues (JSON Pointer, code, message, declaration order)
// - Flatten: projection of Issues into a field-keyed, display-ready structure
// - Structural Shape export per schema, with drift detection against stored baselines
//
// Design policy:
// - Keep only public APIs in the root package; the DSL lives under dsl/,
//   structural description under shape/, baselines under drift/, sample
//   generation under mock/, and the HTTP boundary under httpbind/.
// - Invalid input is expected data, represented as the failure variant of
//   Result; panics are reserved for schema construction bugs.
// - Prefer black-box testing against public APIs.
//
// Typical usage:
//
//	s := buildSchema()
//	res := verdict.Check(ctx, s, input)
//	if !res.Ok() {
//	    render(res.Flatten())
//	}
//
//	v, err := verdict.Parse(ctx, s, input) // error carries the full Issues
