// Package oid holds the bidirectional mapping between wire-type identities
// (stable names and per-session OIDs) that every converter and resolver in
// this module resolves against.
//
// Grounded on github.com/jackc/pgx/v5/pgtype's ConnInfo/DataType registry
// (oidToDataType / nameToDataType) and the well known OID table in oid.go.
package oid

import (
	"strconv"

	"github.com/jackc/pgxconv/converr"
)

// Oid is a session-specific numeric wire-type handle, as returned by
// PostgreSQL during the startup/describe handshake. It must never be cached
// across sessions; see Converter (package convert) invariants.
type Oid uint32

// Well known, server-invariant OIDs for the builtin types this module ships
// converters for. These never change across servers; they exist purely as a
// convenience default so TypeCatalog has something to seed itself with
// before a real handshake populates it.
const (
	BoolOid        Oid = 16
	ByteaOid       Oid = 17
	Int8Oid        Oid = 20
	Int2Oid        Oid = 21
	Int4Oid        Oid = 23
	TextOid        Oid = 25
	Float4Oid      Oid = 700
	Float8Oid      Oid = 701
	BoolArrayOid   Oid = 1000
	Int2ArrayOid   Oid = 1005
	Int4ArrayOid   Oid = 1007
	TextArrayOid   Oid = 1009
	ByteaArrayOid  Oid = 1001
	Int8ArrayOid   Oid = 1016
	Float4ArrayOid Oid = 1021
	Float8ArrayOid Oid = 1022
	TimestampOid   Oid = 1114
	TimestamptzOid Oid = 1184
	NumericOid     Oid = 1700
	UUIDOid        Oid = 2950
)

// WireTypeName is the canonical, server-independent identifier for a wire
// type, e.g. "int4", "text", "_int4" for the array of int4. It is hashable
// and orderable and is what converters store internally; Oid values are
// resolved from it only at wire-write time.
type WireTypeName string

// idKind discriminates the two variants of WireTypeId.
type idKind uint8

const (
	idKindName idKind = iota
	idKindOid
)

// WireTypeId is a two-variant discriminated union over WireTypeName and Oid.
// Exactly one of the two constructors below should be used; the zero value
// is not a valid WireTypeId.
type WireTypeId struct {
	kind idKind
	name WireTypeName
	oid  Oid
}

// Name builds a WireTypeId from a canonical wire type name.
func Name(n WireTypeName) WireTypeId { return WireTypeId{kind: idKindName, name: n} }

// FromOid builds a WireTypeId from a session-specific Oid.
func FromOid(o Oid) WireTypeId { return WireTypeId{kind: idKindOid, oid: o} }

// IsName reports whether this WireTypeId was built from a name.
func (w WireTypeId) IsName() bool { return w.kind == idKindName }

// NameValue returns the underlying name; valid only if IsName() is true.
func (w WireTypeId) NameValue() WireTypeName { return w.name }

// OidValue returns the underlying Oid; valid only if IsName() is false.
func (w WireTypeId) OidValue() Oid { return w.oid }

func (w WireTypeId) String() string {
	if w.kind == idKindName {
		return string(w.name)
	}
	return "#" + strconv.FormatUint(uint64(w.oid), 10)
}

// TypeCatalog maps WireTypeName <-> Oid for a single session, plus the
// element-wire-type -> array-wire-type relationship PostgreSQL exposes via
// pg_type.typarray. It is populated once at session start from the server's
// system catalogs and is read-only thereafter; concurrent reads are safe
// (see spec §5 "Shared resources").
type TypeCatalog struct {
	nameToOid   map[WireTypeName]Oid
	oidToName   map[Oid]WireTypeName
	elementToArray map[WireTypeName]WireTypeName
}

// NewTypeCatalog returns an empty catalog. Callers populate it via Register
// during the session handshake.
func NewTypeCatalog() *TypeCatalog {
	return &TypeCatalog{
		nameToOid:      make(map[WireTypeName]Oid, 64),
		oidToName:      make(map[Oid]WireTypeName, 64),
		elementToArray: make(map[WireTypeName]WireTypeName, 32),
	}
}

// Register records the name<->oid pairing for one wire type.
func (c *TypeCatalog) Register(name WireTypeName, o Oid) {
	c.nameToOid[name] = o
	c.oidToName[o] = name
}

// RegisterArray records that arrayName is the array wire type whose elements
// are elementName (PostgreSQL's pg_type.typarray relationship).
func (c *TypeCatalog) RegisterArray(elementName, arrayName WireTypeName) {
	c.elementToArray[elementName] = arrayName
}

// OidOf resolves id against the session map. WireTypeId built from an Oid
// passes through unchanged. Fails with converr.UnknownType if a name is not
// present in the catalog.
func (c *TypeCatalog) OidOf(id WireTypeId) (Oid, error) {
	if !id.IsName() {
		return id.OidValue(), nil
	}
	o, ok := c.nameToOid[id.NameValue()]
	if !ok {
		return 0, converr.New(converr.UnknownType, string(id.NameValue()), "", nil)
	}
	return o, nil
}

// NameOf is the reverse lookup of OidOf.
func (c *TypeCatalog) NameOf(o Oid) (WireTypeName, error) {
	n, ok := c.oidToName[o]
	if !ok {
		return "", converr.New(converr.UnknownType, "", "", o)
	}
	return n, nil
}

// ArrayOf returns the WireTypeId of the array type whose element type is
// element. Fails with converr.UnknownType if no array type is registered for
// that element.
func (c *TypeCatalog) ArrayOf(element WireTypeName) (WireTypeId, error) {
	a, ok := c.elementToArray[element]
	if !ok {
		return WireTypeId{}, converr.New(converr.UnknownType, string(element), "", nil)
	}
	return Name(a), nil
}

// NewBuiltinTypeCatalog returns a TypeCatalog preloaded with the well known,
// server-invariant OIDs for the types this module ships converters for. Real
// client code should still re-populate (or replace) it from the actual
// session handshake, since extension types and non-default OIDs are not
// representable here.
func NewBuiltinTypeCatalog() *TypeCatalog {
	c := NewTypeCatalog()
	reg := func(name WireTypeName, o Oid) { c.Register(name, o) }
	reg("bool", BoolOid)
	reg("bytea", ByteaOid)
	reg("int8", Int8Oid)
	reg("int2", Int2Oid)
	reg("int4", Int4Oid)
	reg("text", TextOid)
	reg("float4", Float4Oid)
	reg("float8", Float8Oid)
	reg("timestamp", TimestampOid)
	reg("timestamptz", TimestamptzOid)
	reg("numeric", NumericOid)
	reg("uuid", UUIDOid)
	reg("_bool", BoolArrayOid)
	reg("_int2", Int2ArrayOid)
	reg("_int4", Int4ArrayOid)
	reg("_int8", Int8ArrayOid)
	reg("_text", TextArrayOid)
	reg("_bytea", ByteaArrayOid)
	reg("_float4", Float4ArrayOid)
	reg("_float8", Float8ArrayOid)

	c.RegisterArray("bool", "_bool")
	c.RegisterArray("int2", "_int2")
	c.RegisterArray("int4", "_int4")
	c.RegisterArray("int8", "_int8")
	c.RegisterArray("text", "_text")
	c.RegisterArray("bytea", "_bytea")
	c.RegisterArray("float4", "_float4")
	c.RegisterArray("float8", "_float8")
	return c
}
