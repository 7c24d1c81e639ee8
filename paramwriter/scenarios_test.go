package paramwriter_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jackc/pgxconv/config"
	"github.com/jackc/pgxconv/convert"
	"github.com/jackc/pgxconv/convert/builtin"
	"github.com/jackc/pgxconv/converr"
	"github.com/jackc/pgxconv/oid"
	"github.com/jackc/pgxconv/paramwriter"
	"github.com/jackc/pgxconv/resolve"
	"github.com/jackc/pgxconv/wire"
)

// TestScenarioA covers encoding application i32 = 42 as int4 binary.
func TestScenarioA(t *testing.T) {
	r := resolve.NewDefaultResolver(config.Config{})
	info, err := r.Resolve(typeOf[int32](), nil, nil)
	require.NoError(t, err)

	w := paramwriter.NewWriter(r, nil)
	p, err := w.Size(info, int32(42), 0, nil)
	require.NoError(t, err)
	require.True(t, p.Size.IsExact())
	require.Equal(t, 4, p.Size.N())
	require.Equal(t, wire.Binary, p.Format)

	buf := wire.NewBuffer(wire.FlushNone, 8, nil)
	buf.Initialize()
	require.NoError(t, w.Write(buf, p))
	require.Equal(t, []byte{0x00, 0x00, 0x00, 0x2A}, buf.Bytes())
}

// TestScenarioB covers encoding application i64 = 42 as int4 via numeric coercion.
func TestScenarioB(t *testing.T) {
	r := resolve.NewDefaultResolver(config.Config{})
	wireType := oid.Name("int4")
	info, err := r.Resolve(typeOf[int64](), &wireType, nil)
	require.NoError(t, err)

	w := paramwriter.NewWriter(r, nil)
	p, err := w.Size(info, int64(42), 0, nil)
	require.NoError(t, err)

	buf := wire.NewBuffer(wire.FlushNone, 8, nil)
	buf.Initialize()
	require.NoError(t, w.Write(buf, p))
	require.Equal(t, []byte{0x00, 0x00, 0x00, 0x2A}, buf.Bytes())
}

// TestScenarioC covers an out-of-range i64 -> int4 coercion failing closed.
func TestScenarioC(t *testing.T) {
	r := resolve.NewDefaultResolver(config.Config{})
	wireType := oid.Name("int4")
	info, err := r.Resolve(typeOf[int64](), &wireType, nil)
	require.NoError(t, err)

	w := paramwriter.NewWriter(r, nil)
	_, err = w.Size(info, int64(2147483648), 0, nil)
	require.Error(t, err)
	cerr, ok := err.(*converr.Error)
	require.True(t, ok)
	require.Equal(t, converr.ValueOutOfRange, cerr.Kind)
}

// TestScenarioD covers a nil pointer through Nullable[int32] yielding a
// null parameter that the writer skips entirely.
func TestScenarioD(t *testing.T) {
	nullable := convert.NewNullable[int32](builtin.Int4{})
	p, err := paramwriter.SizeStatic[*int32](nullable, nil, 0, nil)
	require.NoError(t, err)
	require.True(t, p.IsDbNull)
	require.True(t, p.Size.IsUnknown())

	buf := wire.NewBuffer(wire.FlushNone, 8, nil)
	buf.Initialize()
	require.NoError(t, paramwriter.WriteStatic[*int32](buf, p))
	require.Empty(t, buf.Bytes())
}

// TestScenarioE covers encoding ["a","b"] as text[].
func TestScenarioE(t *testing.T) {
	catalog := oid.NewBuiltinTypeCatalog()
	r := resolve.NewDefaultResolver(config.Config{})
	info, err := r.Resolve(typeOf[[]string](), nil, catalog)
	require.NoError(t, err)
	require.Equal(t, oid.Name("_text"), info.PreferredWireType)

	w := paramwriter.NewWriter(r, nil)
	values := []string{"a", "b"}
	p, err := w.Size(info, values, 0, nil)
	require.NoError(t, err)

	buf := wire.NewBuffer(wire.FlushNone, 64, catalog)
	buf.Initialize()
	require.NoError(t, w.Write(buf, p))

	out := buf.Bytes()
	require.GreaterOrEqual(t, len(out), 20)
	// ndim=1, has_nulls=0, element_oid=text
	require.Equal(t, []byte{0x00, 0x00, 0x00, 0x01}, out[0:4])
	require.Equal(t, []byte{0x00, 0x00, 0x00, 0x00}, out[4:8])
	elementOid, err := catalog.OidOf(oid.Name("text"))
	require.NoError(t, err)
	require.Equal(t, uint32(elementOid), beUint32(out[8:12]))
	// lb=1, len=2
	require.Equal(t, []byte{0x00, 0x00, 0x00, 0x01}, out[12:16])
	require.Equal(t, []byte{0x00, 0x00, 0x00, 0x02}, out[16:20])
	// first element: len=1, "a"
	require.Equal(t, []byte{0x00, 0x00, 0x00, 0x01}, out[20:24])
	require.Equal(t, byte('a'), out[24])
	// second element: len=1, "b"
	require.Equal(t, []byte{0x00, 0x00, 0x00, 0x01}, out[25:29])
	require.Equal(t, byte('b'), out[29])
}

func beUint32(b []byte) uint32 {
	return uint32(b[0])<<24 | uint32(b[1])<<16 | uint32(b[2])<<8 | uint32(b[3])
}

// TestScenarioF covers encoding the application max date as a timestamp
// with infinity conversions enabled, and the symmetric decode failure when
// the flag is off.
func TestScenarioF(t *testing.T) {
	conv := builtin.Timestamp{Config: config.Config{EnableInfinityConversions: true}}
	p, err := paramwriter.SizeStatic(conv, builtin.MaxTime, 0, nil)
	require.NoError(t, err)

	buf := wire.NewBuffer(wire.FlushNone, 8, nil)
	buf.Initialize()
	require.NoError(t, paramwriter.WriteStatic(buf, p))
	require.Equal(t, []byte{0x7F, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF}, buf.Bytes())

	strict := builtin.Timestamp{}
	_, err = strict.Read(wire.NewChunkReader(bytes.NewReader(buf.Bytes())))
	require.Error(t, err)
	cerr, ok := err.(*converr.Error)
	require.True(t, ok)
	require.Equal(t, converr.InvalidWireData, cerr.Kind)
}
