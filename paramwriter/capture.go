package paramwriter

import (
	"sync"

	"github.com/jackc/pgxconv/converr"
	"github.com/jackc/pgxconv/wire"
)

// capturePool recycles the backing *wire.Buffer across parameters,
// generalizing the teacher's int16SlicePool (pgtype's array-dimension
// scratch pool) to the []byte backing a captured parameter's bytes (spec
// §4.6 "Buffered output capture").
var capturePool = sync.Pool{
	New: func() any { return wire.NewBuffer(wire.FlushNone, 128, nil) },
}

// Capture collects one parameter's write-phase bytes into a pooled
// in-memory buffer instead of streaming them, for prepared-statement
// parameter caching. The size phase must run first, since Write takes the
// Parameter it produced (spec §4.6). The pooled buffer is not presized from
// that Parameter's size; it grows as the converter appends bytes.
type Capture struct {
	buf *wire.Buffer
}

// NewCapture checks out a pooled buffer, binds catalog for any
// write_as_oid calls the parameter's converter makes (array element
// OIDs), and begins a new logical flow over it. Initialize fails with
// converr.ConcurrentUse if the checked-out buffer is already mid-flow — it
// never should be for a buffer obtained from the pool, since Release calls
// Reset before returning it.
func NewCapture(catalog wire.OidResolver) (*Capture, error) {
	buf := capturePool.Get().(*wire.Buffer)
	buf.SetCatalog(catalog)
	if !buf.Initialize() {
		// Do not return buf to the pool: it is still flagged in-use by
		// whatever owns it, and recycling it here would hand the same
		// backing bytes to a third party mid-write.
		return nil, converr.New(converr.ConcurrentUse, "", "", nil)
	}
	return &Capture{buf: buf}, nil
}

// Write runs phase 2 against the capture's buffer for a dynamically
// resolved Parameter.
func (c *Capture) Write(pw *Writer, p *Parameter) error {
	return pw.Write(c.buf, p)
}

// WriteCaptureStatic runs phase 2 against the capture's buffer for a
// StaticParameter[T].
func WriteCaptureStatic[T any](c *Capture, p *StaticParameter[T]) error {
	return WriteStatic[T](c.buf, p)
}

// Bytes returns the captured output. The slice is only valid until
// Release returns the buffer to the pool.
func (c *Capture) Bytes() []byte { return c.buf.Bytes() }

// Release ends the capture's logical flow and returns its buffer to the
// pool for reuse by the next parameter.
func (c *Capture) Release() {
	c.buf.Reset()
	capturePool.Put(c.buf)
	c.buf = nil
}
