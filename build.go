package recast

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/reoring/recast/i18n"
	"github.com/reoring/recast/schema"
)

// buildValue recursively constructs the final typed value for a declared
// type from raw data, delegating to the matcher for decisions and assuming
// the transformer already ran for this value.
func buildValue(t schema.Type, v any, cfg *Config, asm *assembler) (any, error) {
	t = schema.Underlying(t)
	if _, ok := schema.IsRef(t); ok {
		resolved, err := schema.Resolve(t, cfg.ForwardReferences)
		if err != nil {
			return nil, refError(err)
		}
		t = schema.Underlying(resolved)
	}
	if schema.IsUnion(t) {
		return buildUnion(t, v, cfg, asm)
	}
	if schema.IsCollection(t) {
		if containerKindMatches(t, v) {
			return buildCollection(t, v, cfg, asm)
		}
		return v, nil
	}
	if rt, ok := schema.AsRecord(t); ok {
		if m, ok := v.(map[string]any); ok {
			if fn := rt.Constructor(); fn != nil {
				return fn(m, asm)
			}
			return asm.Assemble(rt, m)
		}
	}
	// terminal leaf value
	return v, nil
}

// buildUnion resolves which member type of a declared union a raw value is
// built against.
//
// The transformed value of each probed member is deliberately carried
// forward as input to the next member's transform attempt; overlapping,
// order-dependent hooks therefore observe the previous member's output.
// TestUnion_TransformCarriesForward pins this behavior.
func buildUnion(t schema.Type, v any, cfg *Config, asm *assembler) (any, error) {
	members := schema.Members(t)
	// two-member optionals resolve unconditionally to the non-null member
	if schema.IsOptional(t) && len(members) == 2 {
		return buildValue(schema.NonNil(t), v, cfg, asm)
	}
	data := v
	type unionMatch struct {
		t schema.Type
		v any
	}
	var matches []unionMatch
	for _, m := range members {
		tv, err := transformValue(data, m, cfg)
		if err != nil {
			// a failing transform disqualifies this member only
			continue
		}
		data = tv
		built, err := buildValue(m, data, cfg, asm)
		if err != nil {
			// construction failures are also "try next candidate"
			continue
		}
		if conforms(built, m) {
			if !cfg.StrictUnionMatch {
				return built, nil
			}
			matches = append(matches, unionMatch{t: m, v: built})
		}
	}
	if cfg.StrictUnionMatch {
		switch len(matches) {
		case 1:
			return matches[0].v, nil
		case 0:
			return nil, unionMatchError(t, data)
		default:
			names := make([]string, 0, len(matches))
			for _, m := range matches {
				names = append(names, m.t.String())
			}
			return nil, Issues{Issue{
				Code:    CodeUnionAmbiguous,
				Message: i18n.T(CodeUnionAmbiguous, nil),
				Hint:    "matching branches: " + strings.Join(names, ", "),
				Params:  map[string]any{"branches": names},
			}}
		}
	}
	if cfg.SkipTypeCheck {
		// last resort with checking disabled: hand back the value as the
		// probing loop left it
		return data, nil
	}
	return nil, unionMatchError(t, data)
}

func unionMatchError(t schema.Type, v any) error {
	return Issues{Issue{
		Code:    CodeUnionMatch,
		Message: i18n.T(CodeUnionMatch, nil),
		Hint:    "expected one of: " + t.String(),
		Params:  map[string]any{"expected": t.String(), "value": v},
	}}
}

// buildCollection reconstructs a collection whose runtime container kind
// already matches the declared origin. Map keys pass through unchanged;
// only values are rebuilt.
func buildCollection(t schema.Type, v any, cfg *Config, asm *assembler) (any, error) {
	switch c := v.(type) {
	case map[string]any:
		kv := schema.Elems(t, schema.Any(), schema.Any())
		valT := orAny(kv[1])
		out := make(map[string]any, len(c))
		for k, item := range c {
			built, err := buildValue(valT, item, cfg, asm)
			if err != nil {
				return nil, err
			}
			out[k] = built
		}
		return out, nil
	case []any:
		if schema.IsTuple(t) {
			return buildTuple(t, c, cfg, asm)
		}
		elemT := schema.Any()
		if es := schema.Elems(t); len(es) > 0 {
			elemT = orAny(es[0])
		}
		out := make([]any, 0, len(c))
		for _, item := range c {
			built, err := buildValue(elemT, item, cfg, asm)
			if err != nil {
				return nil, err
			}
			out = append(out, built)
		}
		if schema.IsSet(t) {
			out = dedupe(out)
		}
		return out, nil
	}
	return v, nil
}

// buildTuple pairs declared element types positionally with input elements.
// Arity mismatches are not an error here: extra input elements pass through
// unchanged and extra declared slots yield nil, so the matcher's length
// check surfaces the mismatch later if type checking is enabled.
func buildTuple(t schema.Type, seq []any, cfg *Config, asm *assembler) (any, error) {
	if len(seq) == 0 {
		return []any{}, nil
	}
	elems, variadic, _ := schema.TupleInfo(t)
	if variadic {
		out := make([]any, 0, len(seq))
		for _, item := range seq {
			built, err := buildValue(elems[0], item, cfg, asm)
			if err != nil {
				return nil, err
			}
			out = append(out, built)
		}
		return out, nil
	}
	n := len(seq)
	if len(elems) > n {
		n = len(elems)
	}
	out := make([]any, 0, n)
	for i := 0; i < n; i++ {
		var item any
		if i < len(seq) {
			item = seq[i]
		}
		if i >= len(elems) {
			out = append(out, item)
			continue
		}
		built, err := buildValue(elems[i], item, cfg, asm)
		if err != nil {
			return nil, err
		}
		out = append(out, built)
	}
	return out, nil
}

// dedupe keeps the first occurrence of each comparable element, preserving
// order. Uncomparable elements are kept as-is.
func dedupe(seq []any) []any {
	out := make([]any, 0, len(seq))
	seen := make(map[any]struct{}, len(seq))
	for _, item := range seq {
		if item != nil && !reflect.TypeOf(item).Comparable() {
			out = append(out, item)
			continue
		}
		if _, dup := seen[item]; dup {
			continue
		}
		seen[item] = struct{}{}
		out = append(out, item)
	}
	return out
}

func refError(err error) error {
	var ur *schema.UnresolvedRefError
	if errors.As(err, &ur) {
		return Issues{Issue{
			Code:    CodeUnresolvedRef,
			Message: i18n.T(CodeUnresolvedRef, nil),
			Hint:    fmt.Sprintf("name %q is not in the forward-reference namespace", ur.Name),
			Params:  map[string]any{"name": ur.Name},
		}}
	}
	return Issues{Issue{Code: CodeUnresolvedRef, Message: i18n.T(CodeUnresolvedRef, nil), Cause: err}}
}
