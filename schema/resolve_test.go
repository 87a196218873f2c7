package schema_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reoring/recast/schema"
)

func TestResolve_ReplacesRefs(t *testing.T) {
	ns := map[string]schema.Type{"ID": schema.Int()}

	out, err := schema.Resolve(schema.Ref("ID"), ns)
	require.NoError(t, err)
	assert.True(t, schema.Equal(out, schema.Int()))

	out, err = schema.Resolve(schema.List(schema.Ref("ID")), ns)
	require.NoError(t, err)
	assert.True(t, schema.Equal(out, schema.List(schema.Int())))

	out, err = schema.Resolve(schema.Optional(schema.Ref("ID")), ns)
	require.NoError(t, err)
	assert.True(t, schema.Equal(out, schema.Optional(schema.Int())))
}

func TestResolve_UnknownNameFails(t *testing.T) {
	_, err := schema.Resolve(schema.Ref("Missing"), nil)
	var ur *schema.UnresolvedRefError
	require.ErrorAs(t, err, &ur)
	assert.Equal(t, "Missing", ur.Name)
}

func TestResolve_NoRefsReturnsSameTree(t *testing.T) {
	in := schema.List(schema.Union(schema.Int(), schema.String()))
	out, err := schema.Resolve(in, nil)
	require.NoError(t, err)
	assert.Same(t, any(in), any(out))
}

func TestResolve_ChainedRefs(t *testing.T) {
	ns := map[string]schema.Type{
		"A": schema.Ref("B"),
		"B": schema.String(),
	}
	out, err := schema.Resolve(schema.Ref("A"), ns)
	require.NoError(t, err)
	assert.True(t, schema.Equal(out, schema.String()))
}

func TestResolve_SelfReferentialCycleFails(t *testing.T) {
	ns := map[string]schema.Type{"Loop": schema.Ref("Loop")}
	_, err := schema.Resolve(schema.Ref("Loop"), ns)
	var ur *schema.UnresolvedRefError
	require.ErrorAs(t, err, &ur)
}

func TestResolve_RepeatedRefIsNotACycle(t *testing.T) {
	ns := map[string]schema.Type{"ID": schema.Int()}
	out, err := schema.Resolve(schema.Tuple(schema.Ref("ID"), schema.Ref("ID")), ns)
	require.NoError(t, err)
	assert.True(t, schema.Equal(out, schema.Tuple(schema.Int(), schema.Int())))
}

func TestResolve_RecordIsBoundary(t *testing.T) {
	// a record referring to itself through a field must not recurse here;
	// field types resolve when the record is assembled
	b := schema.NewRecord("Node").Field("next", schema.Optional(schema.Ref("Node")))
	node := b.MustBuild()
	ns := map[string]schema.Type{"Node": node}

	out, err := schema.Resolve(schema.Ref("Node"), ns)
	require.NoError(t, err)
	rt, ok := schema.AsRecord(out)
	require.True(t, ok)
	assert.Same(t, node, rt)
}

func TestResolve_InsideNamedAndTypeRef(t *testing.T) {
	ns := map[string]schema.Type{"ID": schema.Int()}

	out, err := schema.Resolve(schema.Named("Alias", schema.Ref("ID")), ns)
	require.NoError(t, err)
	name, ok := schema.IsNamed(out)
	require.True(t, ok)
	assert.Equal(t, "Alias", name)
	assert.True(t, schema.Equal(schema.Underlying(out), schema.Int()))

	out, err = schema.Resolve(schema.TypeRef(schema.Ref("ID")), ns)
	require.NoError(t, err)
	assert.True(t, schema.Equal(out, schema.TypeRef(schema.Int())))
}

func TestResolve_TupleAndMap(t *testing.T) {
	ns := map[string]schema.Type{"ID": schema.Int()}

	out, err := schema.Resolve(schema.Tuple(schema.Ref("ID"), schema.String()), ns)
	require.NoError(t, err)
	assert.True(t, schema.Equal(out, schema.Tuple(schema.Int(), schema.String())))

	out, err = schema.Resolve(schema.MapOf(schema.String(), schema.Ref("ID")), ns)
	require.NoError(t, err)
	assert.True(t, schema.Equal(out, schema.MapOf(schema.String(), schema.Int())))
}
