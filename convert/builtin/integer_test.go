package builtin_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jackc/pgxconv/convert"
	"github.com/jackc/pgxconv/convert/builtin"
	"github.com/jackc/pgxconv/wire"
)

func TestInt4BinaryRoundTrip(t *testing.T) {
	c := builtin.Int4{}
	ctx := &convert.SizeContext{Format: wire.Binary}
	size, err := c.GetSize(ctx, 42)
	require.NoError(t, err)
	require.True(t, size.IsExact())
	require.Equal(t, 4, size.N())

	buf := wire.NewBuffer(wire.FlushNone, 8, nil)
	buf.Initialize()
	buf.SetCurrentFormat(wire.Binary)
	require.NoError(t, c.Write(buf, 42, nil))

	r := wire.NewChunkReader(bytes.NewReader(buf.Bytes()))
	got, err := c.Read(r)
	require.NoError(t, err)
	require.Equal(t, int32(42), got)
}

func TestInt4TextFormat(t *testing.T) {
	c := builtin.Int4{}
	ctx := &convert.SizeContext{Format: wire.Text}
	size, err := c.GetSize(ctx, -7)
	require.NoError(t, err)
	require.True(t, size.IsExact())
	require.Equal(t, 2, size.N())

	buf := wire.NewBuffer(wire.FlushNone, 8, nil)
	buf.Initialize()
	buf.SetCurrentFormat(wire.Text)
	require.NoError(t, c.Write(buf, -7, nil))
	require.Equal(t, "-7", string(buf.Bytes()))
	require.Equal(t, size.N(), len(buf.Bytes()))
}

func TestInt8SizeIsAlwaysEightInBinary(t *testing.T) {
	c := builtin.Int8{}
	ctx := &convert.SizeContext{Format: wire.Binary}
	size, err := c.GetSize(ctx, 0)
	require.NoError(t, err)
	require.Equal(t, 8, size.N())
}

// TestInt8TextSizeMatchesWrittenBytes guards spec's "size honesty" property:
// Write must emit exactly as many bytes as GetSize promised, including in
// Text format where the wire representation is a variable-length decimal
// string rather than the fixed binary width.
func TestInt8TextSizeMatchesWrittenBytes(t *testing.T) {
	c := builtin.Int8{}
	v := int64(-9223372036854775808)
	ctx := &convert.SizeContext{Format: wire.Text}
	size, err := c.GetSize(ctx, v)
	require.NoError(t, err)
	require.True(t, size.IsExact())

	buf := wire.NewBuffer(wire.FlushNone, 32, nil)
	buf.Initialize()
	buf.SetCurrentFormat(wire.Text)
	require.NoError(t, c.Write(buf, v, nil))
	require.Equal(t, size.N(), len(buf.Bytes()))
	require.Equal(t, "-9223372036854775808", string(buf.Bytes()))
}

func TestInt2TextSizeMatchesWrittenBytes(t *testing.T) {
	c := builtin.Int2{}
	ctx := &convert.SizeContext{Format: wire.Text}
	size, err := c.GetSize(ctx, 1234)
	require.NoError(t, err)

	buf := wire.NewBuffer(wire.FlushNone, 8, nil)
	buf.Initialize()
	buf.SetCurrentFormat(wire.Text)
	require.NoError(t, c.Write(buf, 1234, nil))
	require.Equal(t, size.N(), len(buf.Bytes()))
}

func TestInt2NullPredicateIsNone(t *testing.T) {
	c := builtin.Int2{}
	require.Equal(t, convert.PredicateNone, c.NullPredicateKind())
	require.False(t, c.IsDbNull(0))
}
