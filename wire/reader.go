package wire

import (
	"context"
	"encoding/binary"
	"io"

	"github.com/jackc/pgxconv/converr"
)

// Reader is the contract converters read through (spec §6 "Wire Reader
// contract"). Like Writer, a Reader is not safe for concurrent use.
type Reader interface {
	ReadByte() (byte, error)
	ReadInt16() (int16, error)
	ReadInt32() (int32, error)
	ReadInt64() (int64, error)
	ReadUint32() (uint32, error)

	// ReadBytes returns a span valid only until the next call to any Read*
	// method.
	ReadBytes(n int) ([]byte, error)

	FillAsync(ctx context.Context, n int) error
}

// ChunkReader is a minimal buffered Reader over an io.Reader, grounded on
// github.com/jackc/pgx/v5's chunkreader.ChunkReader: it grows a reusable
// buffer to satisfy ReadBytes(n) without per-call allocation.
type ChunkReader struct {
	r      io.Reader
	buf    []byte
	rp, wp int
}

// NewChunkReader wraps r with a default-sized internal buffer.
func NewChunkReader(r io.Reader) *ChunkReader {
	return &ChunkReader{r: r, buf: make([]byte, 4096)}
}

func (c *ChunkReader) ensure(n int) error {
	if c.wp-c.rp >= n {
		return nil
	}
	if len(c.buf)-c.rp < n {
		nb := make([]byte, n+4096)
		copy(nb, c.buf[c.rp:c.wp])
		c.wp -= c.rp
		c.rp = 0
		c.buf = nb
	}
	for c.wp-c.rp < n {
		m, err := c.r.Read(c.buf[c.wp:])
		c.wp += m
		if err != nil {
			return converr.Wrap(err, converr.InvalidWireData, "", "", nil)
		}
	}
	return nil
}

func (c *ChunkReader) ReadBytes(n int) ([]byte, error) {
	if err := c.ensure(n); err != nil {
		return nil, err
	}
	b := c.buf[c.rp : c.rp+n]
	c.rp += n
	return b, nil
}

func (c *ChunkReader) ReadByte() (byte, error) {
	b, err := c.ReadBytes(1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

func (c *ChunkReader) ReadInt16() (int16, error) {
	b, err := c.ReadBytes(2)
	if err != nil {
		return 0, err
	}
	return int16(binary.BigEndian.Uint16(b)), nil
}

func (c *ChunkReader) ReadInt32() (int32, error) {
	b, err := c.ReadBytes(4)
	if err != nil {
		return 0, err
	}
	return int32(binary.BigEndian.Uint32(b)), nil
}

func (c *ChunkReader) ReadInt64() (int64, error) {
	b, err := c.ReadBytes(8)
	if err != nil {
		return 0, err
	}
	return int64(binary.BigEndian.Uint64(b)), nil
}

func (c *ChunkReader) ReadUint32() (uint32, error) {
	n, err := c.ReadInt32()
	return uint32(n), err
}

// FillAsync ensures n bytes are available, suspending at ctx.Done() or at
// the underlying blocking Read the same way the synchronous path would.
// Real async transports replace this with a non-blocking fill loop; this
// synchronous-underneath implementation satisfies the contract for
// in-memory and test readers.
func (c *ChunkReader) FillAsync(ctx context.Context, n int) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}
	return c.ensure(n)
}
