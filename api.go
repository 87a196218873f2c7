package recast

import "github.com/reoring/recast/schema"

// Conforms reports whether a constructed value conforms to a declared type,
// without performing any construction or transformation.
func Conforms(v any, t schema.Type) bool { return conforms(v, t) }

// Transform applies the configured hooks and casts to a raw value against a
// declared type, without building it. It is exposed for callers that stage
// their own construction.
func Transform(v any, t schema.Type, cfg *Config) (any, error) {
	c := cfgOrDefault(cfg)
	resolved, err := schema.Resolve(t, c.ForwardReferences)
	if err != nil {
		return nil, refError(err)
	}
	return transformValue(v, resolved, c)
}

// SafeFromMap constructs a record, returning (nil, false) on any
// construction error.
func SafeFromMap(rt *schema.RecordType, data map[string]any, cfg *Config) (*Record, bool) {
	rec, err := FromMap(rt, data, cfg)
	if err != nil {
		return nil, false
	}
	return rec, true
}
