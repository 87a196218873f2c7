package schema

import "fmt"

// Field describes one declared field of a record type. Fields are immutable
// once the record is built; per-call resolution never patches them.
type Field struct {
	Name string
	Type Type
	// HasDefault marks that Default supplies a value when the field is
	// absent from the input.
	HasDefault bool
	Default    func() any
	// PostInit fields do not participate in construction; they are bound
	// after the record instance exists and are never required from input.
	PostInit bool
}

// Assembler is the engine's re-entry point handed to custom constructors so
// they can delegate nested construction back to the generic path.
type Assembler interface {
	Assemble(rt *RecordType, data map[string]any) (any, error)
}

// ConstructFunc is the alternate construction entry point a record type may
// opt into. It receives the raw map untouched and bypasses the generic field
// assembly entirely.
type ConstructFunc func(data map[string]any, asm Assembler) (any, error)

// RecordType declares a record: a named, ordered set of typed fields with
// optional defaults and an optional custom constructor. It implements Type
// so records can nest directly inside other declarations.
type RecordType struct {
	name      string
	fields    []Field
	index     map[string]int
	construct ConstructFunc
}

func (*RecordType) isType() {}

func (rt *RecordType) String() string { return rt.name }

// Name returns the declared record name.
func (rt *RecordType) Name() string { return rt.name }

// Fields returns the declared fields in declaration order. The returned
// slice is a copy.
func (rt *RecordType) Fields() []Field {
	out := make([]Field, len(rt.fields))
	copy(out, rt.fields)
	return out
}

// NumFields returns the number of declared fields.
func (rt *RecordType) NumFields() int { return len(rt.fields) }

// FieldByName looks a field up by its declared name.
func (rt *RecordType) FieldByName(name string) (Field, bool) {
	i, ok := rt.index[name]
	if !ok {
		return Field{}, false
	}
	return rt.fields[i], true
}

// HasField reports whether name is a declared field.
func (rt *RecordType) HasField(name string) bool {
	_, ok := rt.index[name]
	return ok
}

// Constructor returns the custom construction entry point, or nil when the
// record uses the generic assembler.
func (rt *RecordType) Constructor() ConstructFunc { return rt.construct }

// RecordBuilder accumulates field declarations for a record type.
type RecordBuilder struct {
	name      string
	fields    []Field
	construct ConstructFunc
	err       error
}

// NewRecord starts a record type declaration under the given name.
func NewRecord(name string) *RecordBuilder {
	return &RecordBuilder{name: name}
}

// Field declares a required field.
func (b *RecordBuilder) Field(name string, t Type) *RecordBuilder {
	return b.add(Field{Name: name, Type: t})
}

// FieldDefault declares a field with a default supplier used when the field
// is absent from the input.
func (b *RecordBuilder) FieldDefault(name string, t Type, def func() any) *RecordBuilder {
	return b.add(Field{Name: name, Type: t, HasDefault: true, Default: def})
}

// PostInit declares a field that is bound after construction; when absent it
// is skipped entirely so the record's own defaulting applies.
func (b *RecordBuilder) PostInit(name string, t Type) *RecordBuilder {
	return b.add(Field{Name: name, Type: t, PostInit: true})
}

// ConstructWith installs a custom construction entry point for this record.
func (b *RecordBuilder) ConstructWith(fn ConstructFunc) *RecordBuilder {
	b.construct = fn
	return b
}

func (b *RecordBuilder) add(f Field) *RecordBuilder {
	if b.err != nil {
		return b
	}
	if f.Name == "" {
		b.err = fmt.Errorf("schema: record %q declares a field with an empty name", b.name)
		return b
	}
	if f.Type == nil {
		b.err = fmt.Errorf("schema: record %q field %q has no type", b.name, f.Name)
		return b
	}
	for _, have := range b.fields {
		if have.Name == f.Name {
			b.err = fmt.Errorf("schema: record %q declares field %q twice", b.name, f.Name)
			return b
		}
	}
	b.fields = append(b.fields, f)
	return b
}

// Build finalizes the record type.
func (b *RecordBuilder) Build() (*RecordType, error) {
	if b.err != nil {
		return nil, b.err
	}
	fields := make([]Field, len(b.fields))
	copy(fields, b.fields)
	index := make(map[string]int, len(fields))
	for i, f := range fields {
		index[f.Name] = i
	}
	return &RecordType{name: b.name, fields: fields, index: index, construct: b.construct}, nil
}

// MustBuild is like Build but panics on a declaration error.
func (b *RecordBuilder) MustBuild() *RecordType {
	rt, err := b.Build()
	if err != nil {
		panic(err)
	}
	return rt
}
