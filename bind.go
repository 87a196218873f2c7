package recast

import (
	"reflect"
	"strings"

	"github.com/reoring/recast/schema"
)

// ResolveStructKey applies the repository-wide rule to resolve a struct
// field's external key used by record binding.
// Priority: recast:"name=..." > json tag name > field name; "-" disables the
// field.
func ResolveStructKey(sf reflect.StructField) string {
	if gt := sf.Tag.Get("recast"); gt != "" {
		parts := strings.Split(gt, ",")
		for _, p := range parts {
			p = strings.TrimSpace(p)
			if strings.HasPrefix(p, "name=") {
				return strings.TrimPrefix(p, "name=")
			}
		}
	}
	if jt := sf.Tag.Get("json"); jt != "" {
		if jt == "-" {
			return "-"
		}
		if i := strings.IndexByte(jt, ','); i >= 0 {
			return jt[:i]
		}
		return jt
	}
	return sf.Name
}

// Into constructs a record from raw data and binds it onto struct type T.
// It is the typed convenience over FromMap + BindRecord.
func Into[T any](rt *schema.RecordType, data map[string]any, cfg *Config) (T, error) {
	var zero T
	rec, err := FromMap(rt, data, cfg)
	if err != nil {
		return zero, err
	}
	return BindRecord[T](rec)
}

// BindRecord reflects a built record onto struct type T, matching record
// field names against struct keys (see ResolveStructKey). Nested records,
// sequences and maps are bound recursively.
func BindRecord[T any](rec *Record) (T, error) {
	var zero T
	rt := reflect.TypeOf(zero)
	if rt != nil && rt.Kind() == reflect.Pointer {
		rt = rt.Elem()
	}
	if rt == nil || rt.Kind() != reflect.Struct {
		return zero, Issues{Issue{Code: CodeWrongType, Message: "BindRecord[T] requires struct T"}}
	}
	rv := reflect.New(rt).Elem()
	if err := bindStruct(rv, rec); err != nil {
		return zero, err
	}
	out, ok := rv.Interface().(T)
	if !ok {
		// T was a pointer-to-struct
		out, _ = rv.Addr().Interface().(T)
	}
	return out, nil
}

func bindStruct(rv reflect.Value, rec *Record) error {
	rt := rv.Type()
	for i := 0; i < rt.NumField(); i++ {
		sf := rt.Field(i)
		if !sf.IsExported() {
			continue
		}
		name := ResolveStructKey(sf)
		if name == "-" || name == "" {
			continue
		}
		val, ok := rec.Get(name)
		if !ok {
			continue
		}
		fv := rv.Field(i)
		if !fv.CanSet() {
			continue
		}
		if err := bindField(fv, val); err != nil {
			return PrefixPath(err, name)
		}
	}
	return nil
}

func bindField(fv reflect.Value, val any) error {
	if val == nil {
		switch fv.Kind() {
		case reflect.Interface, reflect.Pointer, reflect.Slice, reflect.Map, reflect.Func, reflect.Chan:
			fv.Set(reflect.Zero(fv.Type()))
		default:
			// leave zero value for non-nillable fields
		}
		return nil
	}
	switch c := val.(type) {
	case *Record:
		target := fv
		if fv.Kind() == reflect.Pointer {
			if fv.Type().Elem().Kind() != reflect.Struct {
				return bindAssign(fv, val)
			}
			p := reflect.New(fv.Type().Elem())
			if err := bindStruct(p.Elem(), c); err != nil {
				return err
			}
			fv.Set(p)
			return nil
		}
		if target.Kind() == reflect.Struct {
			return bindStruct(target, c)
		}
		return bindAssign(fv, val)
	case []any:
		if fv.Kind() == reflect.Slice {
			out := reflect.MakeSlice(fv.Type(), len(c), len(c))
			for i, item := range c {
				if err := bindField(out.Index(i), item); err != nil {
					return err
				}
			}
			fv.Set(out)
			return nil
		}
		return bindAssign(fv, val)
	case map[string]any:
		if fv.Kind() == reflect.Map && fv.Type().Key().Kind() == reflect.String {
			out := reflect.MakeMapWithSize(fv.Type(), len(c))
			for k, item := range c {
				ev := reflect.New(fv.Type().Elem()).Elem()
				if err := bindField(ev, item); err != nil {
					return err
				}
				out.SetMapIndex(reflect.ValueOf(k).Convert(fv.Type().Key()), ev)
			}
			fv.Set(out)
			return nil
		}
		return bindAssign(fv, val)
	}
	return bindAssign(fv, val)
}

func bindAssign(fv reflect.Value, val any) error {
	vv := reflect.ValueOf(val)
	switch {
	case vv.Type().AssignableTo(fv.Type()):
		fv.Set(vv)
	case vv.Type().ConvertibleTo(fv.Type()):
		fv.Set(vv.Convert(fv.Type()))
	default:
		return Issues{Issue{Code: CodeWrongType, Message: "field type mismatch", Params: map[string]any{"value": val}}}
	}
	return nil
}
