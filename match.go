package recast

import (
	"encoding/json"
	"strconv"

	"github.com/reoring/recast/schema"
)

// conforms reports whether a constructed value conforms to a declared type.
// It is recursive, has no side effects and never raises: an ill-formed
// comparison is non-conformance, not an error.
func conforms(v any, t schema.Type) bool {
	switch {
	case schema.IsAny(t):
		return true
	case schema.IsNil(t):
		return v == nil
	case schema.IsUnion(t):
		for _, m := range schema.Members(t) {
			if conforms(v, m) {
				return true
			}
		}
		return false
	case schema.IsCollection(t):
		return conformsCollection(v, t)
	}
	if _, ok := schema.IsNamed(t); ok {
		return conforms(v, schema.Underlying(t))
	}
	if _, ok := schema.IsRef(t); ok {
		// unresolved references never conform; resolution happens before
		// matching on all regular paths
		return false
	}
	if schema.IsLiteral(t) {
		for _, lv := range schema.LiteralValues(t) {
			if schema.EqualValue(v, lv) {
				return true
			}
		}
		return false
	}
	if schema.IsTypeRef(t) {
		vt, ok := v.(schema.Type)
		return ok && schema.AssignableTo(vt, schema.TypeRefTarget(t))
	}
	if rt, ok := schema.AsRecord(t); ok {
		rec, ok := v.(*Record)
		return ok && rec.Type() == rt
	}
	if kind, ok := schema.ScalarKind(t); ok {
		return scalarConforms(v, kind)
	}
	return false
}

func conformsCollection(v any, t schema.Type) bool {
	origin, _ := schema.CollectionOrigin(t)
	switch origin {
	case schema.OriginMap:
		m, ok := v.(map[string]any)
		if !ok {
			return false
		}
		if !schema.HasElems(t) {
			return true
		}
		kv := schema.Elems(t, schema.Any(), schema.Any())
		keyT, valT := orAny(kv[0]), orAny(kv[1])
		for k, item := range m {
			if !conforms(k, keyT) || !conforms(item, valT) {
				return false
			}
		}
		return true
	case schema.OriginTuple:
		seq, ok := v.([]any)
		if !ok {
			return false
		}
		elems, variadic, _ := schema.TupleInfo(t)
		if variadic {
			for _, item := range seq {
				if !conforms(item, elems[0]) {
					return false
				}
			}
			return true
		}
		// empty-tuple type only matches an empty sequence; the fixed form
		// requires exact arity
		if len(seq) != len(elems) {
			return false
		}
		for i, item := range seq {
			if !conforms(item, elems[i]) {
				return false
			}
		}
		return true
	default: // list-like, set-like
		seq, ok := v.([]any)
		if !ok {
			return false
		}
		if !schema.HasElems(t) {
			return true
		}
		elemT := orAny(schema.Elems(t, schema.Any())[0])
		for _, item := range seq {
			if !conforms(item, elemT) {
				return false
			}
		}
		return true
	}
}

func orAny(t schema.Type) schema.Type {
	if t == nil {
		return schema.Any()
	}
	return t
}

// scalarConforms applies exact runtime-kind membership with the numeric
// tower exception: integer values conform to floating and complex declared
// types, and floating values conform to complex.
func scalarConforms(v any, k schema.Kind) bool {
	switch k {
	case schema.KindBool:
		_, ok := v.(bool)
		return ok
	case schema.KindString:
		_, ok := v.(string)
		return ok
	case schema.KindBytes:
		_, ok := v.([]byte)
		return ok
	case schema.KindInt:
		return isIntValue(v)
	case schema.KindFloat:
		return isIntValue(v) || isFloatValue(v)
	case schema.KindComplex:
		if isIntValue(v) || isFloatValue(v) {
			return true
		}
		switch v.(type) {
		case complex64, complex128:
			return true
		}
	}
	return false
}

func isIntValue(v any) bool {
	switch n := v.(type) {
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return true
	case json.Number:
		_, err := strconv.ParseInt(string(n), 10, 64)
		return err == nil
	}
	return false
}

func isFloatValue(v any) bool {
	switch n := v.(type) {
	case float32, float64:
		return true
	case json.Number:
		_, err := strconv.ParseFloat(string(n), 64)
		return err == nil
	}
	return false
}
