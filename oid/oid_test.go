package oid_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jackc/pgxconv/converr"
	"github.com/jackc/pgxconv/oid"
)

func TestTypeCatalogRoundTrip(t *testing.T) {
	c := oid.NewTypeCatalog()
	c.Register("int4", oid.Int4Oid)

	got, err := c.OidOf(oid.Name("int4"))
	require.NoError(t, err)
	require.Equal(t, oid.Int4Oid, got)

	name, err := c.NameOf(oid.Int4Oid)
	require.NoError(t, err)
	require.Equal(t, oid.WireTypeName("int4"), name)
}

func TestTypeCatalogUnknownName(t *testing.T) {
	c := oid.NewTypeCatalog()
	_, err := c.OidOf(oid.Name("not_a_type"))
	require.Error(t, err)

	var convErr *converr.Error
	require.ErrorAs(t, err, &convErr)
	require.Equal(t, converr.UnknownType, convErr.Kind)
}

func TestWireTypeIdFromOidPassesThrough(t *testing.T) {
	c := oid.NewTypeCatalog()
	id := oid.FromOid(oid.Int4Oid)
	got, err := c.OidOf(id)
	require.NoError(t, err)
	require.Equal(t, oid.Int4Oid, got)
}

func TestArrayOf(t *testing.T) {
	c := oid.NewBuiltinTypeCatalog()
	arr, err := c.ArrayOf("int4")
	require.NoError(t, err)
	require.True(t, arr.IsName())
	require.Equal(t, oid.WireTypeName("_int4"), arr.NameValue())

	_, err = c.ArrayOf("no_such_element")
	require.Error(t, err)
}

func TestNewBuiltinTypeCatalogPreloadsCoreTypes(t *testing.T) {
	c := oid.NewBuiltinTypeCatalog()
	for _, name := range []oid.WireTypeName{"int2", "int4", "int8", "text", "bool", "numeric", "uuid"} {
		_, err := c.OidOf(oid.Name(name))
		require.NoError(t, err, "expected %s to be preloaded", name)
	}
}
