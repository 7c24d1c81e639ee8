package builtin_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jackc/pgxconv/convert"
	"github.com/jackc/pgxconv/convert/builtin"
	"github.com/jackc/pgxconv/wire"
)

func TestBoolBinaryRoundTrip(t *testing.T) {
	c := builtin.Bool{}
	for _, v := range []bool{true, false} {
		buf := wire.NewBuffer(wire.FlushNone, 4, nil)
		buf.Initialize()
		buf.SetCurrentFormat(wire.Binary)
		require.NoError(t, c.Write(buf, v, nil))

		r := wire.NewChunkReader(bytes.NewReader(buf.Bytes()))
		got, err := c.Read(r)
		require.NoError(t, err)
		require.Equal(t, v, got)
	}
}

func TestFloat8BinaryRoundTrip(t *testing.T) {
	c := builtin.Float8{}
	ctx := &convert.SizeContext{Format: wire.Binary}
	_, err := c.GetSize(ctx, 3.5)
	require.NoError(t, err)

	buf := wire.NewBuffer(wire.FlushNone, 8, nil)
	buf.Initialize()
	buf.SetCurrentFormat(wire.Binary)
	require.NoError(t, c.Write(buf, 3.5, nil))

	r := wire.NewChunkReader(bytes.NewReader(buf.Bytes()))
	got, err := c.Read(r)
	require.NoError(t, err)
	require.Equal(t, 3.5, got)
}

func TestFloat4TextFormat(t *testing.T) {
	c := builtin.Float4{}
	ctx := &convert.SizeContext{Format: wire.Text}
	size, err := c.GetSize(ctx, 1.5)
	require.NoError(t, err)
	require.True(t, size.IsExact())
	require.Equal(t, 3, size.N())

	buf := wire.NewBuffer(wire.FlushNone, 8, nil)
	buf.Initialize()
	buf.SetCurrentFormat(wire.Text)
	require.NoError(t, c.Write(buf, 1.5, nil))
	require.Equal(t, "1.5", string(buf.Bytes()))
	require.Equal(t, size.N(), len(buf.Bytes()))
}

// TestFloat8TextSizeMatchesWrittenBytes guards spec's "size honesty"
// property for the Text format path, mirroring the integer converters.
func TestFloat8TextSizeMatchesWrittenBytes(t *testing.T) {
	c := builtin.Float8{}
	v := 3.14159265358979
	ctx := &convert.SizeContext{Format: wire.Text}
	size, err := c.GetSize(ctx, v)
	require.NoError(t, err)
	require.True(t, size.IsExact())

	buf := wire.NewBuffer(wire.FlushNone, 32, nil)
	buf.Initialize()
	buf.SetCurrentFormat(wire.Text)
	require.NoError(t, c.Write(buf, v, nil))
	require.Equal(t, size.N(), len(buf.Bytes()))
}
