package wire_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jackc/pgxconv/oid"
	"github.com/jackc/pgxconv/wire"
)

type stubCatalog struct{}

func (stubCatalog) OidOf(id oid.WireTypeId) (oid.Oid, error) {
	if id.IsName() && id.NameValue() == "int4" {
		return oid.Int4Oid, nil
	}
	return id.OidValue(), nil
}

func TestBufferWriteInt32(t *testing.T) {
	b := wire.NewBuffer(wire.FlushNone, 16, stubCatalog{})
	require.True(t, b.Initialize())
	require.NoError(t, b.WriteInt32(42))
	require.Equal(t, []byte{0, 0, 0, 42}, b.Bytes())
}

func TestBufferWriteAsOidResolvesThroughCatalog(t *testing.T) {
	b := wire.NewBuffer(wire.FlushNone, 16, stubCatalog{})
	b.Initialize()
	require.NoError(t, b.WriteAsOid(oid.Name("int4")))
	require.Equal(t, 4, len(b.Bytes()))
}

func TestBufferInitializeRejectsConcurrentUse(t *testing.T) {
	b := wire.NewBuffer(wire.FlushNone, 16, nil)
	require.True(t, b.Initialize())
	require.False(t, b.Initialize())
	b.Reset()
	require.True(t, b.Initialize())
}

func TestCheckFlushModeMismatch(t *testing.T) {
	require.NoError(t, wire.CheckFlush(wire.FlushBlocking, true))
	require.Error(t, wire.CheckFlush(wire.FlushBlocking, false))
	require.NoError(t, wire.CheckFlush(wire.FlushNonBlocking, false))
	require.Error(t, wire.CheckFlush(wire.FlushNonBlocking, true))
	require.Error(t, wire.CheckFlush(wire.FlushNone, true))
	require.Error(t, wire.CheckFlush(wire.FlushNone, false))
}

func TestValueSizeVariants(t *testing.T) {
	require.True(t, wire.Exact(4).IsExact())
	require.Equal(t, 4, wire.Exact(4).N())
	require.True(t, wire.UpperBound(8).IsUpperBound())
	require.True(t, wire.Unknown().IsUnknown())
}

func TestChunkReaderReadsExactSpans(t *testing.T) {
	r := wire.NewChunkReader(bytes.NewReader([]byte{0, 0, 0, 42, 1}))
	n, err := r.ReadInt32()
	require.NoError(t, err)
	require.Equal(t, int32(42), n)

	b, err := r.ReadByte()
	require.NoError(t, err)
	require.Equal(t, byte(1), b)
}

func TestChunkReaderFillAsyncHonorsCancellation(t *testing.T) {
	r := wire.NewChunkReader(bytes.NewReader(nil))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := r.FillAsync(ctx, 4)
	require.Error(t, err)
}
