package recast

import "github.com/reoring/recast/schema"

// UnknownPolicy controls how raw keys absent from the declared field set are
// handled.
type UnknownPolicy int

const (
	UnknownIgnore      UnknownPolicy = iota // Drop unknown keys.
	UnknownStrict                           // Reject unknown keys with an error.
	UnknownPassthrough                      // Stash unknown keys under UnknownTarget.
)

// Hook is a user-supplied pure transform applied to a raw value before
// structural construction.
type Hook func(v any) (any, error)

// TypeHook binds a hook to its key: an exact declared type, a bare
// (unparameterized) list or map for origin-kind hooks, or schema.Any() for
// the universal wildcard.
type TypeHook struct {
	Type schema.Type
	Fn   Hook
}

// Config tunes one construction call. It is read-only once handed to the
// engine and is threaded unchanged through all recursion; a single Config
// may serve concurrent calls provided its hooks are side-effect free.
type Config struct {
	// Hooks are consulted in registration order; the first entry matching
	// a key category wins within that category.
	Hooks []TypeHook
	// Cast lists types eligible for forced construction before structural
	// building. Set-like cast targets convert to an ordered sequence
	// instead of re-invoking their own constructor.
	Cast []schema.Type
	// ForwardReferences is the namespace used to resolve schema.Ref types.
	ForwardReferences map[string]schema.Type
	// SkipTypeCheck disables the final conformance check; the zero value
	// keeps checking on.
	SkipTypeCheck bool
	// Unknown selects the unknown-key policy; UnknownTarget names the
	// map-typed field receiving extras under UnknownPassthrough.
	Unknown       UnknownPolicy
	UnknownTarget string
	// StrictUnionMatch requires exactly one union member to match instead
	// of taking the first in declaration order.
	StrictUnionMatch bool
	// AllowMissingAsNull substitutes nil for a missing field without a
	// default when the field's declared type accepts null.
	AllowMissingAsNull bool
}

var defaultConfig = &Config{}

// cfgOrDefault lets every entry point accept nil for the default behavior.
func cfgOrDefault(cfg *Config) *Config {
	if cfg == nil {
		return defaultConfig
	}
	return cfg
}

// wildcardHook returns the first hook registered under schema.Any().
func (c *Config) wildcardHook() (Hook, bool) {
	for _, h := range c.Hooks {
		if schema.IsAny(h.Type) {
			return h.Fn, true
		}
	}
	return nil, false
}

// originHook returns the first hook registered for the bare container kind
// of t. Only list-like and map-like origins participate, and only bare
// (unparameterized) hook keys qualify.
func (c *Config) originHook(t schema.Type) (Hook, bool) {
	origin, ok := schema.CollectionOrigin(t)
	if !ok || (origin != schema.OriginList && origin != schema.OriginMap) {
		return nil, false
	}
	for _, h := range c.Hooks {
		ho, ok := schema.CollectionOrigin(h.Type)
		if !ok || schema.HasElems(h.Type) {
			continue
		}
		if ho == origin {
			return h.Fn, true
		}
	}
	return nil, false
}

// exactHook returns the first hook registered for exactly t.
func (c *Config) exactHook(t schema.Type) (Hook, bool) {
	for _, h := range c.Hooks {
		if schema.IsAny(h.Type) {
			continue
		}
		if schema.Equal(h.Type, t) {
			return h.Fn, true
		}
	}
	return nil, false
}

// castFor returns the first cast entry the declared type is a subtype of.
func (c *Config) castFor(t schema.Type) (schema.Type, bool) {
	for _, ct := range c.Cast {
		if castMatches(t, ct) {
			return ct, true
		}
	}
	return nil, false
}

// castMatches mirrors subclass semantics over declared types: alias wrappers
// are transparent and generic collections compare by origin kind.
func castMatches(t, cast schema.Type) bool {
	u := schema.Underlying(t)
	cu := schema.Underlying(cast)
	if schema.IsCollection(u) && schema.IsCollection(cu) {
		to, _ := schema.CollectionOrigin(u)
		co, _ := schema.CollectionOrigin(cu)
		return to == co
	}
	return schema.Equal(u, cu)
}
