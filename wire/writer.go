package wire

import (
	"context"
	"encoding/binary"

	"github.com/jackc/pgio"
	"github.com/jackc/pgxconv/oid"
)

// OidResolver is the narrow slice of oid.TypeCatalog a Writer needs to turn a
// WireTypeId into the Oid it writes on the wire (write_as_oid, spec §6).
type OidResolver interface {
	OidOf(id oid.WireTypeId) (oid.Oid, error)
}

// Writer is the contract converters write through (spec §6 "Wire Writer
// contract"). A single Writer instance is not safe for concurrent use; its
// initialize -> use -> reset lifecycle (see Buffer.Initialize/Reset) enforces
// single use.
type Writer interface {
	WriteByte(b byte) error
	WriteInt16(n int16) error
	WriteInt32(n int32) error
	WriteInt64(n int64) error
	WriteUint32(n uint32) error

	// WriteText writes chars without a length prefix; the caller owns the
	// length field. encoding names the target charset (UTF-8 unless
	// otherwise configured).
	WriteText(chars string, encoding Encoding) error

	// WriteTextResumable is the suspendable variant: if the output buffer
	// fills mid-run it returns a non-nil continuation that a subsequent
	// call (passing the same continuation back in) resumes from.
	WriteTextResumable(chars string, encoding Encoding, state *TextEncoderState) (*TextEncoderState, error)

	// WriteRaw appends a possibly segmented byte sequence, flushing as
	// needed to make room.
	WriteRaw(segments ...[]byte) error

	// WriteAsOid resolves id through the writer's bound TypeCatalog and
	// writes the resulting Oid as a u32.
	WriteAsOid(id oid.WireTypeId) error

	CurrentFormat() DataFormat
	SetCurrentFormat(DataFormat)

	FlushMode() FlushMode
	Flush() error
	FlushAsync(ctx context.Context) error
}

// Encoding names the charset write_text/write_text_resumable target. The
// builtin converters write with UTF8, except builtin.Text, whose Encoding
// field can select another charset (via golang.org/x/text/encoding and
// FromXText) without changing the Writer contract.
type Encoding interface {
	Name() string
	Encode(dst []byte, s string) (n int, err error)
}

// UTF8 is the default Encoding.
var UTF8 Encoding = utf8Encoding{}

type utf8Encoding struct{}

func (utf8Encoding) Name() string { return "UTF-8" }
func (utf8Encoding) Encode(dst []byte, s string) (int, error) {
	return copy(dst, s), nil
}

// TextEncoderState is the opaque continuation returned by
// WriteTextResumable when output filled mid-run.
type TextEncoderState struct {
	Remaining string
}

// Buffer is the teacher's bytes.Buffer-backed MessageWriter pattern (see
// message_writer.go), generalized into the two-phase Writer contract: it
// accumulates bytes in memory with no socket underneath, suitable for both
// FlushNone (buffered capture) and as the embeddable base of a real
// socket-backed writer.
type Buffer struct {
	buf        []byte
	format     DataFormat
	flushMode  FlushMode
	inUse      bool
	suppressed int // >0 while a composite write suppresses flush, spec §5
	catalog    OidResolver
}

// NewBuffer returns a Buffer tagged with mode. initial is an optional
// starting capacity hint. catalog resolves WireTypeId values for
// WriteAsOid; it may be nil for writers that never call WriteAsOid.
func NewBuffer(mode FlushMode, initial int, catalog OidResolver) *Buffer {
	return &Buffer{buf: make([]byte, 0, initial), flushMode: mode, catalog: catalog}
}

// Initialize begins a new logical flow over this buffer. A second
// Initialize before Reset returns false; Buffer itself just tracks the flag,
// and higher layers turn a false return into converr.ConcurrentUse (see
// paramwriter.NewCapture).
func (b *Buffer) Initialize() bool {
	if b.inUse {
		return false
	}
	b.inUse = true
	b.buf = b.buf[:0]
	return true
}

// Reset ends the current logical flow, returning the backing array for
// reuse by the caller (see paramwriter.Capture's sync.Pool usage).
func (b *Buffer) Reset() {
	b.inUse = false
	b.buf = b.buf[:0]
}

func (b *Buffer) InUse() bool { return b.inUse }

// SetCatalog rebinds the catalog WriteAsOid resolves against. Pooled
// buffers (see paramwriter.Capture) call this on checkout since the same
// backing buffer is reused across sessions with different catalogs.
func (b *Buffer) SetCatalog(c OidResolver) { b.catalog = c }

func (b *Buffer) Bytes() []byte { return b.buf }

func (b *Buffer) CurrentFormat() DataFormat      { return b.format }
func (b *Buffer) SetCurrentFormat(f DataFormat)  { b.format = f }
func (b *Buffer) FlushMode() FlushMode           { return b.flushMode }

func (b *Buffer) WriteByte(v byte) error {
	b.buf = append(b.buf, v)
	return nil
}

func (b *Buffer) WriteInt16(n int16) error {
	b.buf = pgio.AppendInt16(b.buf, n)
	return nil
}

func (b *Buffer) WriteInt32(n int32) error {
	b.buf = pgio.AppendInt32(b.buf, n)
	return nil
}

func (b *Buffer) WriteInt64(n int64) error {
	b.buf = pgio.AppendInt64(b.buf, n)
	return nil
}

func (b *Buffer) WriteUint32(n uint32) error {
	var tmp [4]byte
	binary.BigEndian.PutUint32(tmp[:], n)
	b.buf = append(b.buf, tmp[:]...)
	return nil
}

func (b *Buffer) WriteText(chars string, encoding Encoding) error {
	dst := make([]byte, len(chars)*4)
	n, err := encoding.Encode(dst, chars)
	if err != nil {
		return err
	}
	b.buf = append(b.buf, dst[:n]...)
	return nil
}

func (b *Buffer) WriteTextResumable(chars string, encoding Encoding, state *TextEncoderState) (*TextEncoderState, error) {
	if state != nil {
		chars = state.Remaining
	}
	if err := b.WriteText(chars, encoding); err != nil {
		return nil, err
	}
	return nil, nil
}

func (b *Buffer) WriteRaw(segments ...[]byte) error {
	for _, s := range segments {
		b.buf = append(b.buf, s...)
	}
	return nil
}

func (b *Buffer) WriteAsOid(id oid.WireTypeId) error {
	o, err := b.catalog.OidOf(id)
	if err != nil {
		return err
	}
	return b.WriteUint32(uint32(o))
}

// SuppressFlush increments the suppression depth; Flush/FlushAsync no-op
// while depth > 0, letting a composite converter guarantee a header and
// payload land atomically (spec §5 "Flush modes").
func (b *Buffer) SuppressFlush() func() {
	b.suppressed++
	return func() { b.suppressed-- }
}

func (b *Buffer) Flush() error {
	if err := CheckFlush(b.flushMode, true); err != nil {
		return err
	}
	return nil
}

func (b *Buffer) FlushAsync(ctx context.Context) error {
	if err := CheckFlush(b.flushMode, false); err != nil {
		return err
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}
	return nil
}
