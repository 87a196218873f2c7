package recast

// Package recast converts loosely-typed nested data (maps, sequences,
// scalars, as produced by a generic JSON/YAML decoder) into strongly-typed
// record instances, validating every value against a declared schema:
//
// - A closed declared-type model in schema/ (scalars, optionals, unions,
//   generic collections, fixed tuples, literals, aliases, forward
//   references, record types), registered explicitly, never derived from
//   runtime type metadata.
// - A stable error model via Issues (dotted path, code, message); the caller
//   receives either a fully constructed, fully validated instance or exactly
//   one error naming the failing leaf.
// - Hooks and casts in Config for pre-construction coercion, keyed by exact
//   type, container origin, or the wildcard.
// - Presence metadata (seen / wasNull / defaultApplied) via FromMapWithMeta.
//
// Design policy:
// - Keep only public APIs in the root package; the type model and its
//   predicate library live under schema/.
// - The engine is pure and synchronous: no I/O, no cancellation, recursion
//   bounded by schema nesting depth. Input trees are never mutated.
// - Prefer black-box testing against public APIs.
//
// Typical usage:
//
//	user := schema.NewRecord("User").
//		Field("id", schema.Int()).
//		Field("tags", schema.List(schema.String())).
//		MustBuild()
//
//	rec, err := recast.FromMap(user, data, nil)
//	v, err := recast.Into[User](user, data, nil)
