// Package schema defines the declared-type model used by recast: a closed
// tagged-variant tree describing scalars, optionals, unions, generic
// collections, fixed tuples, literal sets, aliases, forward references and
// record types, together with the predicate library that the engine uses to
// take structural decisions.
//
// Types are built once through explicit constructors (Int, Optional, Union,
// List, MapOf, NewRecord, ...) and are immutable afterwards. There is no
// derivation from Go's own type metadata; schemas are always registered
// explicitly.
package schema

import (
	"fmt"
	"strings"
)

// Kind enumerates the scalar kinds a leaf value can be declared as.
type Kind int

const (
	KindBool Kind = iota
	KindInt
	KindFloat
	KindComplex
	KindString
	KindBytes
)

func (k Kind) String() string {
	switch k {
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindComplex:
		return "complex"
	case KindString:
		return "string"
	case KindBytes:
		return "bytes"
	default:
		return "unknown"
	}
}

// Origin identifies the container family of a generic collection type.
type Origin int

const (
	OriginList Origin = iota
	OriginSet
	OriginMap
	OriginTuple
)

// Type is a declared schema type. The set of implementations is closed;
// callers inspect types through the predicate functions in this package
// rather than by type assertion.
type Type interface {
	String() string
	isType()
}

type anyType struct{}
type nilType struct{}
type scalarType struct{ kind Kind }
type unionType struct{ members []Type }
type listType struct{ elem Type }
type setType struct{ elem Type }
type mapType struct{ key, value Type }

type tupleType struct {
	elems    []Type
	variadic bool
}

type literalType struct{ values []any }

type namedType struct {
	name string
	base Type
}

type refType struct{ name string }
type typeRefType struct{ of Type }

func (anyType) isType()      {}
func (nilType) isType()      {}
func (scalarType) isType()   {}
func (*unionType) isType()   {}
func (*listType) isType()    {}
func (*setType) isType()     {}
func (*mapType) isType()     {}
func (*tupleType) isType()   {}
func (*literalType) isType() {}
func (*namedType) isType()   {}
func (*refType) isType()     {}
func (*typeRefType) isType() {}

func (anyType) String() string    { return "any" }
func (nilType) String() string    { return "nil" }
func (s scalarType) String() string { return s.kind.String() }

func (u *unionType) String() string {
	parts := make([]string, 0, len(u.members))
	for _, m := range u.members {
		parts = append(parts, m.String())
	}
	return strings.Join(parts, " | ")
}

func (l *listType) String() string {
	if l.elem == nil {
		return "list"
	}
	return "list[" + l.elem.String() + "]"
}

func (s *setType) String() string {
	if s.elem == nil {
		return "set"
	}
	return "set[" + s.elem.String() + "]"
}

func (m *mapType) String() string {
	if m.key == nil && m.value == nil {
		return "map"
	}
	return "map[" + m.key.String() + ", " + m.value.String() + "]"
}

func (t *tupleType) String() string {
	if t.variadic {
		return "tuple[" + t.elems[0].String() + ", ...]"
	}
	parts := make([]string, 0, len(t.elems))
	for _, e := range t.elems {
		parts = append(parts, e.String())
	}
	return "tuple[" + strings.Join(parts, ", ") + "]"
}

func (l *literalType) String() string {
	parts := make([]string, 0, len(l.values))
	for _, v := range l.values {
		parts = append(parts, fmt.Sprintf("%#v", v))
	}
	return "literal[" + strings.Join(parts, ", ") + "]"
}

func (n *namedType) String() string  { return n.name }
func (r *refType) String() string    { return "ref(" + r.name + ")" }
func (t *typeRefType) String() string { return "type[" + t.of.String() + "]" }

// ---- constructors ----

// Any returns the wildcard type every value conforms to. It also serves as
// the universal hook key in a Config.
func Any() Type { return anyType{} }

// Nil returns the null type. A union containing Nil is an optional type.
func Nil() Type { return nilType{} }

func Bool() Type    { return scalarType{kind: KindBool} }
func Int() Type     { return scalarType{kind: KindInt} }
func Float() Type   { return scalarType{kind: KindFloat} }
func Complex() Type { return scalarType{kind: KindComplex} }
func String() Type  { return scalarType{kind: KindString} }
func Bytes() Type   { return scalarType{kind: KindBytes} }

// Union builds a union over the given member types, in declaration order.
// Nested unions are flattened and duplicate members collapse onto their
// first occurrence, so Union(a, Union(b, a)) == Union(a, b).
func Union(members ...Type) Type {
	flat := make([]Type, 0, len(members))
	for _, m := range members {
		if inner, ok := m.(*unionType); ok {
			for _, im := range inner.members {
				flat = appendMember(flat, im)
			}
			continue
		}
		flat = appendMember(flat, m)
	}
	if len(flat) == 1 {
		return flat[0]
	}
	return &unionType{members: flat}
}

func appendMember(dst []Type, m Type) []Type {
	for _, have := range dst {
		if Equal(have, m) {
			return dst
		}
	}
	return append(dst, m)
}

// Optional declares a value that may also be nil; it is sugar for a union
// with the null type as its last member.
func Optional(t Type) Type { return Union(t, Nil()) }

// List declares a list-like collection. A nil element type leaves the list
// unparameterized, which matches elements of any type.
func List(elem Type) Type { return &listType{elem: elem} }

// Set declares a set-like collection; built sets preserve first-occurrence
// order and drop duplicate comparable elements.
func Set(elem Type) Type { return &setType{elem: elem} }

// MapOf declares a map-like collection keyed by key with values of value.
// Passing nil for both leaves the map unparameterized.
func MapOf(key, value Type) Type { return &mapType{key: key, value: value} }

// Tuple declares a fixed-arity heterogeneous tuple. Tuple() with no element
// types is the empty-tuple type, which only matches an empty sequence.
func Tuple(elems ...Type) Type { return &tupleType{elems: elems} }

// TupleOf declares the homogeneous ellipsis form tuple[elem, ...], matching
// a sequence of any length whose elements all conform to elem.
func TupleOf(elem Type) Type { return &tupleType{elems: []Type{elem}, variadic: true} }

// Literal declares a type whose values are exactly the listed ones.
func Literal(values ...any) Type { return &literalType{values: values} }

// Named wraps a type under an alias name (the new-type pattern). Matching
// and construction see through the wrapper.
func Named(name string, base Type) Type { return &namedType{name: name, base: base} }

// Ref declares a forward reference to be resolved against a namespace at
// construction time.
func Ref(name string) Type { return &refType{name: name} }

// TypeRef declares a field that holds a type reference itself; a value
// conforms when it is a Type assignable to of.
func TypeRef(of Type) Type { return &typeRefType{of: of} }
