// Package hooks provides ready-made transform hooks for common wire-to-domain
// conversions, built on the engine's hook mechanism.
package hooks

import (
	"strings"

	recast "github.com/reoring/recast"
	"github.com/reoring/recast/schema"
)

// Chain composes hooks left to right into a single hook; the first error
// stops the chain.
func Chain(fns ...recast.Hook) recast.Hook {
	return func(v any) (any, error) {
		var err error
		for _, fn := range fns {
			if v, err = fn(v); err != nil {
				return nil, err
			}
		}
		return v, nil
	}
}

// Identity returns a hook that hands back its input unchanged. It is the
// neutral element for Chain.
func Identity() recast.Hook {
	return func(v any) (any, error) { return v, nil }
}

// Strings keys fn to every string-declared field, the usual way to normalize
// string input globally.
func Strings(fn recast.Hook) recast.TypeHook {
	return recast.TypeHook{Type: schema.String(), Fn: fn}
}

// TrimSpace strips surrounding whitespace from string input; non-strings
// pass through for a later check to reject.
func TrimSpace() recast.Hook {
	return func(v any) (any, error) {
		if s, ok := v.(string); ok {
			return strings.TrimSpace(s), nil
		}
		return v, nil
	}
}

// Lower folds string input to lower case; non-strings pass through.
func Lower() recast.Hook {
	return func(v any) (any, error) {
		if s, ok := v.(string); ok {
			return strings.ToLower(s), nil
		}
		return v, nil
	}
}
