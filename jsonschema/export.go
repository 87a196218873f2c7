package jsonschema

import (
	"fmt"

	"github.com/reoring/recast/schema"
)

// FromType projects a declared type into its JSON Schema representation.
// Forward references export as $ref entries and are not resolved here.
func FromType(t schema.Type) (*Schema, error) {
	if t == nil {
		return nil, fmt.Errorf("jsonschema: nil type")
	}
	switch {
	case schema.IsAny(t) || schema.IsTypeRef(t):
		return &Schema{}, nil
	case schema.IsNil(t):
		return &Schema{Type: "null"}, nil
	case schema.IsUnion(t):
		members := schema.Members(t)
		out := &Schema{OneOf: make([]*Schema, 0, len(members))}
		for _, m := range members {
			ms, err := FromType(m)
			if err != nil {
				return nil, err
			}
			out.OneOf = append(out.OneOf, ms)
		}
		return out, nil
	case schema.IsLiteral(t):
		return &Schema{Enum: schema.LiteralValues(t)}, nil
	case schema.IsCollection(t):
		return fromCollection(t)
	}
	if kind, ok := schema.ScalarKind(t); ok {
		return fromScalar(kind), nil
	}
	if _, ok := schema.IsNamed(t); ok {
		return FromType(schema.Underlying(t))
	}
	if name, ok := schema.IsRef(t); ok {
		return &Schema{Ref: "#/$defs/" + name}, nil
	}
	if rt, ok := schema.AsRecord(t); ok {
		return fromRecord(rt)
	}
	return nil, fmt.Errorf("jsonschema: unsupported type %s", t.String())
}

func fromScalar(kind schema.Kind) *Schema {
	switch kind {
	case schema.KindBool:
		return &Schema{Type: "boolean"}
	case schema.KindInt:
		return &Schema{Type: "integer"}
	case schema.KindFloat, schema.KindComplex:
		return &Schema{Type: "number"}
	case schema.KindBytes:
		return &Schema{Type: "string", Format: "byte"}
	default:
		return &Schema{Type: "string"}
	}
}

func fromCollection(t schema.Type) (*Schema, error) {
	origin, _ := schema.CollectionOrigin(t)
	switch origin {
	case schema.OriginMap:
		out := &Schema{Type: "object"}
		if schema.HasElems(t) {
			vs, err := FromType(schema.Elems(t, schema.Any(), schema.Any())[1])
			if err != nil {
				return nil, err
			}
			out.AdditionalProperties = vs
		} else {
			out.AdditionalProperties = true
		}
		return out, nil
	case schema.OriginTuple:
		elems, variadic, _ := schema.TupleInfo(t)
		out := &Schema{Type: "array"}
		if variadic {
			items, err := FromType(elems[0])
			if err != nil {
				return nil, err
			}
			out.Items = items
			return out, nil
		}
		n := len(elems)
		out.MinItems = &n
		out.MaxItems = &n
		out.PrefixItems = make([]*Schema, 0, n)
		for _, e := range elems {
			es, err := FromType(e)
			if err != nil {
				return nil, err
			}
			out.PrefixItems = append(out.PrefixItems, es)
		}
		return out, nil
	default:
		out := &Schema{Type: "array", UniqueItems: schema.IsSet(t)}
		if schema.HasElems(t) {
			items, err := FromType(schema.Elems(t, schema.Any())[0])
			if err != nil {
				return nil, err
			}
			out.Items = items
		}
		return out, nil
	}
}

func fromRecord(rt *schema.RecordType) (*Schema, error) {
	fields := rt.Fields()
	props := make(map[string]*Schema, len(fields))
	required := make([]string, 0, len(fields))
	for _, f := range fields {
		fs, err := FromType(f.Type)
		if err != nil {
			return nil, err
		}
		if f.HasDefault && f.Default != nil {
			fs.Default = f.Default()
		}
		props[f.Name] = fs
		if !f.HasDefault && !f.PostInit {
			required = append(required, f.Name)
		}
	}
	return &Schema{Type: "object", Properties: props, Required: required}, nil
}
