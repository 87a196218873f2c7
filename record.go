package recast

import (
	"reflect"
	"sort"

	"github.com/reoring/recast/i18n"
	"github.com/reoring/recast/schema"
)

// Record is a constructed, validated instance of a record type. It owns its
// field values: construction is deep, nothing aliases the raw input tree
// unless a hook intentionally returned the original object.
type Record struct {
	rt     *schema.RecordType
	values map[string]any
}

// Type returns the record type this instance was built from.
func (r *Record) Type() *schema.RecordType { return r.rt }

// Get returns a field value by name.
func (r *Record) Get(name string) (any, bool) {
	v, ok := r.values[name]
	return v, ok
}

// Value returns a field value by name, or nil when absent.
func (r *Record) Value(name string) any { return r.values[name] }

// Map projects the record back into a raw field map. The returned map is a
// shallow copy; nested records stay *Record values (see Decompose for the
// raw-tree projection).
func (r *Record) Map() map[string]any {
	out := make(map[string]any, len(r.values))
	for k, v := range r.values {
		out[k] = v
	}
	return out
}

// Decompose projects the record into a plain raw tree, recursively turning
// nested records back into maps. Re-running construction on the result of a
// successful construction yields an equal instance.
func (r *Record) Decompose() map[string]any {
	out := make(map[string]any, len(r.values))
	for k, v := range r.values {
		out[k] = decomposeValue(v)
	}
	return out
}

func decomposeValue(v any) any {
	switch c := v.(type) {
	case *Record:
		return c.Decompose()
	case []any:
		out := make([]any, len(c))
		for i, item := range c {
			out[i] = decomposeValue(item)
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(c))
		for k, item := range c {
			out[k] = decomposeValue(item)
		}
		return out
	}
	return v
}

// Equal reports whether two records were built from the same record type and
// hold deeply equal field values.
func (r *Record) Equal(other *Record) bool {
	if r == nil || other == nil {
		return r == other
	}
	return r.rt == other.rt && reflect.DeepEqual(r.values, other.values)
}

// FromMap constructs a record instance from raw map-like data. A nil config
// selects the defaults: type checking on, unknown keys ignored, relaxed
// union matching.
func FromMap(rt *schema.RecordType, data map[string]any, cfg *Config) (*Record, error) {
	asm := &assembler{cfg: cfgOrDefault(cfg)}
	return asm.assemble(rt, data)
}

// FromMapWithMeta is FromMap plus presence metadata: which fields were seen,
// arrived as null, or had a default applied, keyed by dotted path.
func FromMapWithMeta(rt *schema.RecordType, data map[string]any, cfg *Config) (Decoded[*Record], error) {
	asm := &assembler{cfg: cfgOrDefault(cfg), pm: PresenceMap{}}
	rec, err := asm.assemble(rt, data)
	return Decoded[*Record]{Value: rec, Presence: asm.pm}, err
}

// assembler orchestrates one record-type construction and is handed to
// custom constructors as their re-entry point. The config is read-only; the
// presence map, when non-nil, is the only shared sink.
type assembler struct {
	cfg  *Config
	pm   PresenceMap
	path string
}

var _ schema.Assembler = (*assembler)(nil)

// Assemble implements schema.Assembler for nested and custom construction.
func (a *assembler) Assemble(rt *schema.RecordType, data map[string]any) (any, error) {
	return a.assemble(rt, data)
}

func (a *assembler) child(field string) *assembler {
	return &assembler{cfg: a.cfg, pm: a.pm, path: joinPath(a.path, field)}
}

func (a *assembler) mark(field string, p Presence) {
	if a.pm == nil {
		return
	}
	a.pm[joinPath(a.path, field)] |= p
}

func (a *assembler) assemble(rt *schema.RecordType, data map[string]any) (*Record, error) {
	cfg := a.cfg
	fields := rt.Fields()

	// resolve every declared type before touching any value
	resolved := make([]schema.Type, len(fields))
	for i, f := range fields {
		typ, err := schema.Resolve(f.Type, cfg.ForwardReferences)
		if err != nil {
			return nil, refError(err)
		}
		resolved[i] = typ
	}

	// unknown keys abort before any field processing
	extra := unknownKeys(rt, data)
	if cfg.Unknown == UnknownStrict && len(extra) > 0 {
		var iss Issues
		for _, k := range extra {
			iss = AppendIssues(iss, Issue{Path: k, Code: CodeUnknownKey, Message: i18n.T(CodeUnknownKey, nil)})
		}
		return nil, iss
	}

	init := make(map[string]any, len(fields))
	post := map[string]any{}
	for i, f := range fields {
		typ := resolved[i]
		var value any
		if raw, ok := data[f.Name]; ok {
			a.mark(f.Name, PresenceSeen)
			if raw == nil {
				a.mark(f.Name, PresenceWasNull)
			}
			tv, err := transformValue(raw, typ, cfg)
			if err != nil {
				return nil, PrefixPath(err, f.Name)
			}
			built, err := buildValue(typ, tv, cfg, a.child(f.Name))
			if err != nil {
				return nil, PrefixPath(err, f.Name)
			}
			if !cfg.SkipTypeCheck && !conforms(built, typ) {
				return nil, Issues{Issue{
					Path:    f.Name,
					Code:    CodeWrongType,
					Message: i18n.T(CodeWrongType, nil),
					Hint:    "expected " + typ.String(),
					Params:  map[string]any{"expected": typ.String(), "value": built},
				}}
			}
			value = built
		} else if f.PostInit {
			// leave absent post-construction fields to the record's own
			// defaulting; never fabricate a value here
			continue
		} else if f.HasDefault {
			a.mark(f.Name, PresenceDefaultApplied)
			value = f.Default()
		} else if cfg.AllowMissingAsNull && acceptsNull(typ) {
			a.mark(f.Name, PresenceDefaultApplied)
			value = nil
		} else {
			return nil, Issues{Issue{
				Path:    f.Name,
				Code:    CodeMissingValue,
				Message: i18n.T(CodeMissingValue, nil),
			}}
		}
		if f.PostInit {
			post[f.Name] = value
		} else {
			init[f.Name] = value
		}
	}

	if cfg.Unknown == UnknownPassthrough && len(extra) > 0 {
		if cfg.UnknownTarget == "" {
			var iss Issues
			for _, k := range extra {
				iss = AppendIssues(iss, Issue{Path: k, Code: CodeUnknownKey, Message: i18n.T(CodeUnknownKey, nil)})
			}
			return nil, iss
		}
		sink, _ := init[cfg.UnknownTarget].(map[string]any)
		if sink == nil {
			sink = map[string]any{}
		}
		for _, k := range extra {
			sink[k] = data[k]
		}
		init[cfg.UnknownTarget] = sink
	}

	rec := &Record{rt: rt, values: init}
	// non-constructor values bind after the instance exists
	for k, v := range post {
		rec.values[k] = v
	}
	return rec, nil
}

// unknownKeys returns the raw-data keys absent from the declared field set,
// in sorted order for deterministic error output.
func unknownKeys(rt *schema.RecordType, data map[string]any) []string {
	var out []string
	for k := range data {
		if !rt.HasField(k) {
			out = append(out, k)
		}
	}
	sort.Strings(out)
	return out
}

// acceptsNull reports whether a declared type admits a null value.
func acceptsNull(t schema.Type) bool {
	t = schema.Underlying(t)
	return schema.IsAny(t) || schema.IsNil(t) || schema.IsOptional(t)
}
