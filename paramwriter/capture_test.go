package paramwriter_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jackc/pgxconv/config"
	"github.com/jackc/pgxconv/convert/builtin"
	"github.com/jackc/pgxconv/oid"
	"github.com/jackc/pgxconv/paramwriter"
	"github.com/jackc/pgxconv/resolve"
)

func TestCaptureWriteThenRelease(t *testing.T) {
	r := resolve.NewDefaultResolver(config.Config{})
	info, err := r.Resolve(typeOf[int32](), nil, nil)
	require.NoError(t, err)

	w := paramwriter.NewWriter(r, nil)
	p, err := w.Size(info, int32(13), 0, nil)
	require.NoError(t, err)

	c, err := paramwriter.NewCapture(oid.NewBuiltinTypeCatalog())
	require.NoError(t, err)
	require.NoError(t, c.Write(w, p))
	require.Equal(t, []byte{0, 0, 0, 13}, c.Bytes())
	c.Release()
}

func TestCaptureStaticWriteThenRelease(t *testing.T) {
	conv := builtin.Int4{}
	p, err := paramwriter.SizeStatic[int32](conv, -1, 0, nil)
	require.NoError(t, err)

	c, err := paramwriter.NewCapture(oid.NewBuiltinTypeCatalog())
	require.NoError(t, err)
	require.NoError(t, paramwriter.WriteCaptureStatic[int32](c, p))
	require.Equal(t, []byte{0xff, 0xff, 0xff, 0xff}, c.Bytes())
	c.Release()
}

func TestCapturePoolRecyclesBuffer(t *testing.T) {
	r := resolve.NewDefaultResolver(config.Config{})
	info, err := r.Resolve(typeOf[int32](), nil, nil)
	require.NoError(t, err)
	w := paramwriter.NewWriter(r, nil)

	for i := 0; i < 3; i++ {
		p, err := w.Size(info, int32(i), 0, nil)
		require.NoError(t, err)

		c, err := paramwriter.NewCapture(oid.NewBuiltinTypeCatalog())
		require.NoError(t, err)
		require.NoError(t, c.Write(w, p))
		require.Len(t, c.Bytes(), 4)
		c.Release()
	}
}
