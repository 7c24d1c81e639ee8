package convert_test

import (
	"bytes"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/jackc/pgxconv/convert"
	"github.com/jackc/pgxconv/convert/builtin"
	"github.com/jackc/pgxconv/oid"
	"github.com/jackc/pgxconv/wire"
)

type arrayCatalog struct{}

func (arrayCatalog) OidOf(id oid.WireTypeId) (oid.Oid, error) {
	if !id.IsName() {
		return id.OidValue(), nil
	}
	switch id.NameValue() {
	case "int4":
		return oid.Int4Oid, nil
	case "text":
		return oid.TextOid, nil
	case "numeric":
		return oid.NumericOid, nil
	default:
		return oid.NewTypeCatalog().OidOf(id) // empty catalog: always errors
	}
}

func TestArrayWriteThenReadRoundTrips(t *testing.T) {
	arr := convert.NewArray[int32](builtin.Int4{}, oid.Name("int4"))
	values := []int32{1, 2, 3}

	ctx := &convert.SizeContext{Format: wire.Binary}
	size, err := arr.GetSize(ctx, values)
	require.NoError(t, err)
	require.True(t, size.IsExact())

	buf := wire.NewBuffer(wire.FlushNone, 64, arrayCatalog{})
	buf.Initialize()
	buf.SetCurrentFormat(wire.Binary)
	require.NoError(t, arr.Write(buf, values, ctx.WriteStateOut))
	require.Equal(t, size.N(), len(buf.Bytes()))

	r := wire.NewChunkReader(bytes.NewReader(buf.Bytes()))
	got, err := arr.Read(r)
	require.NoError(t, err)
	require.Equal(t, values, got)
}

func TestArrayIsDbNullOnNilSlice(t *testing.T) {
	arr := convert.NewArray[int32](builtin.Int4{}, oid.Name("int4"))
	require.True(t, arr.IsDbNull(nil))
	require.False(t, arr.IsDbNull([]int32{}))
}

// TestArrayReadRejectsElementOverreadingItsLengthPrefix guards the
// boundedReader an element converter without ReadN reads through: a
// per-element length prefix that understates what the converter's Read
// tries to consume must fail, not silently read into the next element's
// bytes.
func TestArrayReadRejectsElementOverreadingItsLengthPrefix(t *testing.T) {
	buf := wire.NewBuffer(wire.FlushNone, 64, nil)
	buf.Initialize()
	buf.SetCurrentFormat(wire.Binary)
	require.NoError(t, buf.WriteInt32(1))   // ndim
	require.NoError(t, buf.WriteInt32(0))   // has_nulls
	require.NoError(t, buf.WriteUint32(16)) // element_oid, arbitrary for this test
	require.NoError(t, buf.WriteInt32(1))   // lower bound
	require.NoError(t, buf.WriteInt32(1))   // length
	require.NoError(t, buf.WriteInt32(0))   // per-element length prefix: claims zero bytes
	require.NoError(t, buf.WriteByte(1))    // stray byte a buggy bound would still let Read consume

	arr := convert.NewArray[bool](builtin.Bool{}, oid.Name("bool"))
	_, err := arr.Read(wire.NewChunkReader(bytes.NewReader(buf.Bytes())))
	require.Error(t, err)
}

// TestArrayOfNumericDecimalRoundTrips exercises an element converter whose
// GetSize reports only an UpperBound (builtin.NumericDecimal's wire size
// depends on exponent magnitude as well as coefficient bits). A wrong
// per-element length prefix would desynchronize decoding at the second
// element, so this catches the GetSize-reuse bug that size-honesty
// requires Write not to commit.
func TestArrayOfNumericDecimalRoundTrips(t *testing.T) {
	arr := convert.NewArray[decimal.Decimal](builtin.NumericDecimal{}, oid.Name("numeric"))
	values := []decimal.Decimal{decimal.New(1, -100), decimal.New(314159, -5)}

	ctx := &convert.SizeContext{Format: wire.Binary}
	size, err := arr.GetSize(ctx, values)
	require.NoError(t, err)
	require.True(t, size.IsUpperBound())

	buf := wire.NewBuffer(wire.FlushNone, 256, arrayCatalog{})
	buf.Initialize()
	buf.SetCurrentFormat(wire.Binary)
	require.NoError(t, arr.Write(buf, values, ctx.WriteStateOut))
	require.LessOrEqual(t, len(buf.Bytes()), size.N())

	r := wire.NewChunkReader(bytes.NewReader(buf.Bytes()))
	got, err := arr.Read(r)
	require.NoError(t, err)
	require.Len(t, got, 2)
	require.True(t, values[0].Equal(got[0]))
	require.True(t, values[1].Equal(got[1]))
}

func TestArrayOfStringsRoundTrips(t *testing.T) {
	arr := convert.NewArray[string](builtin.Text{}, oid.Name("text"))
	values := []string{"a", "b"}

	ctx := &convert.SizeContext{Format: wire.Binary}
	size, err := arr.GetSize(ctx, values)
	require.NoError(t, err)

	buf := wire.NewBuffer(wire.FlushNone, 64, arrayCatalog{})
	buf.Initialize()
	buf.SetCurrentFormat(wire.Binary)
	require.NoError(t, arr.Write(buf, values, ctx.WriteStateOut))
	require.Equal(t, size.N(), len(buf.Bytes()))

	r := wire.NewChunkReader(bytes.NewReader(buf.Bytes()))
	got, err := arr.Read(r)
	require.NoError(t, err)
	require.Equal(t, values, got)
}
