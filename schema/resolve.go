package schema

import "reflect"

// UnresolvedRefError reports a forward reference whose name could not be
// found in the supplied namespace.
type UnresolvedRefError struct {
	Name string
}

func (e *UnresolvedRefError) Error() string {
	return "schema: unresolved forward reference " + e.Name
}

// Resolve replaces forward references in t using the given namespace and
// returns a new type tree; t itself is never mutated. Record types are
// resolution boundaries: their fields are resolved lazily when the record is
// assembled, which keeps recursive record definitions finite.
func Resolve(t Type, ns map[string]Type) (Type, error) {
	return resolve(t, ns, nil)
}

func resolve(t Type, ns map[string]Type, seen map[string]bool) (Type, error) {
	switch c := t.(type) {
	case *refType:
		if seen[c.name] {
			return nil, &UnresolvedRefError{Name: c.name}
		}
		target, ok := ns[c.name]
		if !ok {
			return nil, &UnresolvedRefError{Name: c.name}
		}
		if seen == nil {
			seen = map[string]bool{}
		}
		seen[c.name] = true
		resolved, err := resolve(target, ns, seen)
		// the guard is per resolution path; siblings may reuse the name
		delete(seen, c.name)
		return resolved, err
	case *namedType:
		base, err := resolve(c.base, ns, seen)
		if err != nil {
			return nil, err
		}
		if base == c.base {
			return t, nil
		}
		return &namedType{name: c.name, base: base}, nil
	case *unionType:
		members, changed, err := resolveAll(c.members, ns, seen)
		if err != nil {
			return nil, err
		}
		if !changed {
			return t, nil
		}
		return &unionType{members: members}, nil
	case *listType:
		if c.elem == nil {
			return t, nil
		}
		elem, err := resolve(c.elem, ns, seen)
		if err != nil {
			return nil, err
		}
		if elem == c.elem {
			return t, nil
		}
		return &listType{elem: elem}, nil
	case *setType:
		if c.elem == nil {
			return t, nil
		}
		elem, err := resolve(c.elem, ns, seen)
		if err != nil {
			return nil, err
		}
		if elem == c.elem {
			return t, nil
		}
		return &setType{elem: elem}, nil
	case *mapType:
		if c.key == nil && c.value == nil {
			return t, nil
		}
		key, err := resolve(c.key, ns, seen)
		if err != nil {
			return nil, err
		}
		value, err := resolve(c.value, ns, seen)
		if err != nil {
			return nil, err
		}
		if key == c.key && value == c.value {
			return t, nil
		}
		return &mapType{key: key, value: value}, nil
	case *tupleType:
		elems, changed, err := resolveAll(c.elems, ns, seen)
		if err != nil {
			return nil, err
		}
		if !changed {
			return t, nil
		}
		return &tupleType{elems: elems, variadic: c.variadic}, nil
	case *typeRefType:
		of, err := resolve(c.of, ns, seen)
		if err != nil {
			return nil, err
		}
		if of == c.of {
			return t, nil
		}
		return &typeRefType{of: of}, nil
	default:
		return t, nil
	}
}

func resolveAll(ts []Type, ns map[string]Type, seen map[string]bool) ([]Type, bool, error) {
	out := make([]Type, len(ts))
	changed := false
	for i, t := range ts {
		rt, err := resolve(t, ns, seen)
		if err != nil {
			return nil, false, err
		}
		if rt != t {
			changed = true
		}
		out[i] = rt
	}
	return out, changed, nil
}

// Equal reports structural equality of two declared types. Record types
// compare by identity; everything else compares by shape. Union member
// order is significant because it drives resolution order.
func Equal(a, b Type) bool {
	switch at := a.(type) {
	case anyType:
		_, ok := b.(anyType)
		return ok
	case nilType:
		_, ok := b.(nilType)
		return ok
	case scalarType:
		bt, ok := b.(scalarType)
		return ok && at.kind == bt.kind
	case *unionType:
		bt, ok := b.(*unionType)
		if !ok || len(at.members) != len(bt.members) {
			return false
		}
		for i := range at.members {
			if !Equal(at.members[i], bt.members[i]) {
				return false
			}
		}
		return true
	case *listType:
		bt, ok := b.(*listType)
		return ok && equalOrNil(at.elem, bt.elem)
	case *setType:
		bt, ok := b.(*setType)
		return ok && equalOrNil(at.elem, bt.elem)
	case *mapType:
		bt, ok := b.(*mapType)
		return ok && equalOrNil(at.key, bt.key) && equalOrNil(at.value, bt.value)
	case *tupleType:
		bt, ok := b.(*tupleType)
		if !ok || at.variadic != bt.variadic || len(at.elems) != len(bt.elems) {
			return false
		}
		for i := range at.elems {
			if !Equal(at.elems[i], bt.elems[i]) {
				return false
			}
		}
		return true
	case *literalType:
		bt, ok := b.(*literalType)
		if !ok || len(at.values) != len(bt.values) {
			return false
		}
		for i := range at.values {
			if !EqualValue(at.values[i], bt.values[i]) {
				return false
			}
		}
		return true
	case *namedType:
		bt, ok := b.(*namedType)
		return ok && at.name == bt.name && Equal(at.base, bt.base)
	case *refType:
		bt, ok := b.(*refType)
		return ok && at.name == bt.name
	case *typeRefType:
		bt, ok := b.(*typeRefType)
		return ok && Equal(at.of, bt.of)
	case *RecordType:
		bt, ok := b.(*RecordType)
		return ok && at == bt
	}
	return false
}

func equalOrNil(a, b Type) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return Equal(a, b)
}

// EqualValue compares two literal values, tolerating uncomparable kinds.
func EqualValue(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if reflect.TypeOf(a).Comparable() && reflect.TypeOf(b).Comparable() {
		return a == b
	}
	return reflect.DeepEqual(a, b)
}

// AssignableTo reports whether a value declared as sub is acceptable where
// super is declared: equal types, the wildcard, an alias of an assignable
// base, or membership in a union.
func AssignableTo(sub, super Type) bool {
	if Equal(sub, super) || IsAny(super) {
		return true
	}
	if n, ok := super.(*namedType); ok {
		return AssignableTo(sub, n.base)
	}
	if n, ok := sub.(*namedType); ok {
		return AssignableTo(n.base, super)
	}
	if u, ok := super.(*unionType); ok {
		for _, m := range u.members {
			if AssignableTo(sub, m) {
				return true
			}
		}
	}
	return false
}
