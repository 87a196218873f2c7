package recast

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/reoring/recast/i18n"
	"github.com/reoring/recast/schema"
)

// transformValue applies user-declared hooks and forced casts to a raw value
// before structural construction, recursing into nested collection elements
// and through optional layers. The input tree is never mutated; rebuilt
// collections are always fresh.
func transformValue(v any, t schema.Type, cfg *Config) (any, error) {
	var err error
	if fn, ok := cfg.wildcardHook(); ok {
		if v, err = fn(v); err != nil {
			return nil, transformError(err)
		}
	}
	if fn, ok := cfg.originHook(t); ok {
		if v, err = fn(v); err != nil {
			return nil, transformError(err)
		}
	}
	if fn, ok := cfg.exactHook(t); ok {
		// exact-type hooks are terminal for the cast step
		if v, err = fn(v); err != nil {
			return nil, transformError(err)
		}
	} else if _, ok := cfg.castFor(t); ok {
		u := schema.Underlying(t)
		if schema.IsCollection(u) {
			if schema.IsSet(u) {
				// sets cannot safely re-invoke their own constructor on
				// arbitrary iterables; hand back an ordered sequence
				return toSequence(v)
			}
			if v, err = toContainer(u, v); err != nil {
				return nil, err
			}
		} else if v, err = coerceScalar(u, v); err != nil {
			return nil, err
		}
	}
	if schema.IsOptional(t) {
		if v == nil {
			return nil, nil
		}
		return transformValue(v, schema.NonNil(t), cfg)
	}
	if schema.IsCollection(t) && containerKindMatches(t, v) {
		return transformElements(v, t, cfg)
	}
	return v, nil
}

// transformElements rebuilds a collection with every element transformed
// against the declared element types, preserving the input's concrete
// container kind.
func transformElements(v any, t schema.Type, cfg *Config) (any, error) {
	switch c := v.(type) {
	case map[string]any:
		kv := schema.Elems(t, schema.Any(), schema.Any())
		keyT, valT := orAny(kv[0]), orAny(kv[1])
		out := make(map[string]any, len(c))
		for k, item := range c {
			tk, err := transformValue(k, keyT, cfg)
			if err != nil {
				return nil, err
			}
			ks, ok := tk.(string)
			if !ok {
				return nil, Issues{Issue{
					Code:    CodeTransformFailed,
					Message: i18n.T(CodeTransformFailed, nil),
					Hint:    "map key hooks must return a string",
				}}
			}
			tv, err := transformValue(item, valT, cfg)
			if err != nil {
				return nil, err
			}
			out[ks] = tv
		}
		return out, nil
	case []any:
		elemT := schema.Any()
		if es := schema.Elems(t); len(es) > 0 {
			elemT = orAny(es[0])
		}
		out := make([]any, len(c))
		for i, item := range c {
			ti, err := transformValue(item, elemT, cfg)
			if err != nil {
				return nil, err
			}
			out[i] = ti
		}
		return out, nil
	}
	return v, nil
}

// containerKindMatches reports whether the runtime container kind of v
// matches the declared origin of the collection type t.
func containerKindMatches(t schema.Type, v any) bool {
	origin, ok := schema.CollectionOrigin(t)
	if !ok {
		return false
	}
	if origin == schema.OriginMap {
		_, ok := v.(map[string]any)
		return ok
	}
	_, ok = v.([]any)
	return ok
}

// toSequence converts a sequence value into a fresh ordered sequence.
func toSequence(v any) (any, error) {
	seq, ok := v.([]any)
	if !ok {
		return nil, castError("sequence", v)
	}
	out := make([]any, len(seq))
	copy(out, seq)
	return out, nil
}

// toContainer rebuilds v as the canonical container of the given collection
// type's origin.
func toContainer(t schema.Type, v any) (any, error) {
	origin, _ := schema.CollectionOrigin(t)
	if origin == schema.OriginMap {
		m, ok := v.(map[string]any)
		if !ok {
			return nil, castError("map", v)
		}
		out := make(map[string]any, len(m))
		for k, item := range m {
			out[k] = item
		}
		return out, nil
	}
	return toSequence(v)
}

// coerceScalar applies constructor-like coercion for a forced cast to a
// scalar declared type.
func coerceScalar(t schema.Type, v any) (any, error) {
	kind, ok := schema.ScalarKind(t)
	if !ok {
		return nil, castError(t.String(), v)
	}
	switch kind {
	case schema.KindInt:
		switch n := v.(type) {
		case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
			return n, nil
		case float32:
			return int64(n), nil
		case float64:
			return int64(n), nil
		case string:
			i, err := strconv.ParseInt(n, 10, 64)
			if err != nil {
				return nil, castError("int", v)
			}
			return i, nil
		case json.Number:
			if i, err := strconv.ParseInt(string(n), 10, 64); err == nil {
				return i, nil
			}
			if f, err := strconv.ParseFloat(string(n), 64); err == nil {
				return int64(f), nil
			}
		}
	case schema.KindFloat:
		switch n := v.(type) {
		case float32:
			return float64(n), nil
		case float64:
			return n, nil
		case int:
			return float64(n), nil
		case int8:
			return float64(n), nil
		case int16:
			return float64(n), nil
		case int32:
			return float64(n), nil
		case int64:
			return float64(n), nil
		case uint:
			return float64(n), nil
		case uint8:
			return float64(n), nil
		case uint16:
			return float64(n), nil
		case uint32:
			return float64(n), nil
		case uint64:
			return float64(n), nil
		case string:
			f, err := strconv.ParseFloat(n, 64)
			if err != nil {
				return nil, castError("float", v)
			}
			return f, nil
		case json.Number:
			if f, err := strconv.ParseFloat(string(n), 64); err == nil {
				return f, nil
			}
		}
	case schema.KindComplex:
		switch n := v.(type) {
		case complex64:
			return complex128(n), nil
		case complex128:
			return n, nil
		}
		if f, err := coerceScalar(schema.Float(), v); err == nil {
			return complex(f.(float64), 0), nil
		}
	case schema.KindString:
		switch n := v.(type) {
		case string:
			return n, nil
		case []byte:
			return string(n), nil
		case json.Number:
			return string(n), nil
		default:
			return fmt.Sprintf("%v", v), nil
		}
	case schema.KindBool:
		switch n := v.(type) {
		case bool:
			return n, nil
		case string:
			b, err := strconv.ParseBool(n)
			if err != nil {
				return nil, castError("bool", v)
			}
			return b, nil
		}
		if f, err := coerceScalar(schema.Float(), v); err == nil {
			return f.(float64) != 0, nil
		}
	case schema.KindBytes:
		switch n := v.(type) {
		case []byte:
			return n, nil
		case string:
			return []byte(n), nil
		}
	}
	return nil, castError(kind.String(), v)
}

func castError(want string, v any) error {
	return Issues{Issue{
		Code:    CodeTransformFailed,
		Message: i18n.T(CodeTransformFailed, nil),
		Hint:    "cannot cast to " + want,
		Params:  map[string]any{"value": v},
	}}
}

func transformError(err error) error {
	if iss, ok := AsIssues(err); ok {
		return iss
	}
	return Issues{Issue{Code: CodeTransformFailed, Message: i18n.T(CodeTransformFailed, nil), Cause: err}}
}
