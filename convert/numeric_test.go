package convert_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jackc/pgxconv/convert"
	"github.com/jackc/pgxconv/convert/builtin"
	"github.com/jackc/pgxconv/converr"
	"github.com/jackc/pgxconv/wire"
)

func TestCoerceWritesThroughNarrowerWidth(t *testing.T) {
	c := convert.NewCoerce[int64, int32](builtin.Int4{}, "int4")

	ctx := &convert.SizeContext{Format: wire.Binary}
	size, err := c.GetSize(ctx, 42)
	require.NoError(t, err)
	require.True(t, size.IsExact())
	require.Equal(t, 4, size.N())

	buf := wire.NewBuffer(wire.FlushNone, 8, nil)
	buf.Initialize()
	buf.SetCurrentFormat(wire.Binary)
	require.NoError(t, c.Write(buf, 42, ctx.WriteStateOut))
	require.Equal(t, []byte{0, 0, 0, 42}, buf.Bytes())
}

func TestCoerceRejectsOutOfRangeValue(t *testing.T) {
	c := convert.NewCoerce[int64, int32](builtin.Int4{}, "int4")

	ctx := &convert.SizeContext{Format: wire.Binary}
	_, err := c.GetSize(ctx, int64(1)<<40)
	require.Error(t, err)

	var convErr *converr.Error
	require.ErrorAs(t, err, &convErr)
	require.Equal(t, converr.ValueOutOfRange, convErr.Kind)
}

func TestCoerceRoundTripsWithinRange(t *testing.T) {
	c := convert.NewCoerce[uint8, int16](builtin.Int2{}, "int2")

	buf := wire.NewBuffer(wire.FlushNone, 8, nil)
	buf.Initialize()
	buf.SetCurrentFormat(wire.Binary)
	ctx := &convert.SizeContext{Format: wire.Binary}
	_, err := c.GetSize(ctx, 200)
	require.NoError(t, err)
	require.NoError(t, c.Write(buf, 200, ctx.WriteStateOut))

	reader := wire.NewChunkReader(bytes.NewReader(buf.Bytes()))
	got, err := c.Read(reader)
	require.NoError(t, err)
	require.Equal(t, uint8(200), got)
}
