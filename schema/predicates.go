package schema

// Pure structural predicates and extractors over declared types. These never
// allocate schema nodes and never fail; resolution of forward references is
// the only fallible operation and lives in resolve.go.

// IsAny reports whether t is the wildcard type.
func IsAny(t Type) bool {
	_, ok := t.(anyType)
	return ok
}

// IsNil reports whether t is the null type.
func IsNil(t Type) bool {
	_, ok := t.(nilType)
	return ok
}

// ScalarKind returns the scalar kind of t when t is a scalar type.
func ScalarKind(t Type) (Kind, bool) {
	s, ok := t.(scalarType)
	if !ok {
		return 0, false
	}
	return s.kind, true
}

// IsUnion reports whether t is a union of two or more member types.
func IsUnion(t Type) bool {
	_, ok := t.(*unionType)
	return ok
}

// Members returns the member types of a union in declaration order, or nil
// when t is not a union.
func Members(t Type) []Type {
	u, ok := t.(*unionType)
	if !ok {
		return nil
	}
	out := make([]Type, len(u.members))
	copy(out, u.members)
	return out
}

// IsOptional reports whether t is a union whose member set includes the null
// type.
func IsOptional(t Type) bool {
	u, ok := t.(*unionType)
	if !ok {
		return false
	}
	for _, m := range u.members {
		if IsNil(m) {
			return true
		}
	}
	return false
}

// NonNil strips the null members from an optional type, returning the single
// remaining member or a narrower union. Non-optional types are returned
// unchanged.
func NonNil(t Type) Type {
	u, ok := t.(*unionType)
	if !ok {
		return t
	}
	rest := make([]Type, 0, len(u.members))
	for _, m := range u.members {
		if !IsNil(m) {
			rest = append(rest, m)
		}
	}
	if len(rest) == 0 {
		return Nil()
	}
	return Union(rest...)
}

// IsCollection reports whether t is a generic collection: list-like,
// set-like, map-like or tuple.
func IsCollection(t Type) bool {
	switch t.(type) {
	case *listType, *setType, *mapType, *tupleType:
		return true
	}
	return false
}

// CollectionOrigin returns the container family of a generic collection.
func CollectionOrigin(t Type) (Origin, bool) {
	switch t.(type) {
	case *listType:
		return OriginList, true
	case *setType:
		return OriginSet, true
	case *mapType:
		return OriginMap, true
	case *tupleType:
		return OriginTuple, true
	}
	return 0, false
}

// HasElems reports whether a generic collection declares its element types.
// An unparameterized collection deliberately matches any element.
func HasElems(t Type) bool {
	switch c := t.(type) {
	case *listType:
		return c.elem != nil
	case *setType:
		return c.elem != nil
	case *mapType:
		return c.key != nil || c.value != nil
	case *tupleType:
		return true
	}
	return false
}

// Elems returns the declared generic parameters of a collection, or defaults
// when the collection is unparameterized. Lists and sets yield one element
// type, maps yield key then value, tuples yield their positional types (a
// single element for the ellipsis form).
func Elems(t Type, defaults ...Type) []Type {
	switch c := t.(type) {
	case *listType:
		if c.elem == nil {
			return defaults
		}
		return []Type{c.elem}
	case *setType:
		if c.elem == nil {
			return defaults
		}
		return []Type{c.elem}
	case *mapType:
		if c.key == nil && c.value == nil {
			return defaults
		}
		return []Type{c.key, c.value}
	case *tupleType:
		out := make([]Type, len(c.elems))
		copy(out, c.elems)
		return out
	}
	return defaults
}

// IsTuple reports whether t is a fixed tuple type (either arity form).
func IsTuple(t Type) bool {
	_, ok := t.(*tupleType)
	return ok
}

// TupleInfo returns the positional element types of a tuple and whether the
// tuple uses the ellipsis (homogeneous, any-length) form.
func TupleInfo(t Type) (elems []Type, variadic bool, ok bool) {
	tt, isTuple := t.(*tupleType)
	if !isTuple {
		return nil, false, false
	}
	elems = make([]Type, len(tt.elems))
	copy(elems, tt.elems)
	return elems, tt.variadic, true
}

// IsSet reports whether t is a set-like collection.
func IsSet(t Type) bool {
	_, ok := t.(*setType)
	return ok
}

// IsLiteral reports whether t is a literal value set.
func IsLiteral(t Type) bool {
	_, ok := t.(*literalType)
	return ok
}

// LiteralValues returns the declared values of a literal type.
func LiteralValues(t Type) []any {
	l, ok := t.(*literalType)
	if !ok {
		return nil
	}
	out := make([]any, len(l.values))
	copy(out, l.values)
	return out
}

// IsNamed reports whether t is an alias wrapper, returning its name.
func IsNamed(t Type) (string, bool) {
	n, ok := t.(*namedType)
	if !ok {
		return "", false
	}
	return n.name, true
}

// Underlying unwraps alias layers until a non-alias type is reached.
func Underlying(t Type) Type {
	for {
		n, ok := t.(*namedType)
		if !ok {
			return t
		}
		t = n.base
	}
}

// IsRef reports whether t is an unresolved forward reference, returning the
// referenced name.
func IsRef(t Type) (string, bool) {
	r, ok := t.(*refType)
	if !ok {
		return "", false
	}
	return r.name, true
}

// IsTypeRef reports whether t declares a type-reference field.
func IsTypeRef(t Type) bool {
	_, ok := t.(*typeRefType)
	return ok
}

// TypeRefTarget returns the bound of a type-reference declaration.
func TypeRefTarget(t Type) Type {
	tr, ok := t.(*typeRefType)
	if !ok {
		return nil
	}
	return tr.of
}

// AsRecord returns the record type when t declares one.
func AsRecord(t Type) (*RecordType, bool) {
	rt, ok := t.(*RecordType)
	return rt, ok
}
