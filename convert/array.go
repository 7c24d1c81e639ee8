package convert

import (
	"context"

	"github.com/jackc/pgxconv/converr"
	"github.com/jackc/pgxconv/oid"
	"github.com/jackc/pgxconv/wire"
)

// ArrayWriteState carries the element WriteStates computed at size time
// through to the write phase, keyed by index, matching spec §3's invariant
// that "the WriteState produced at size time is the exact state passed to
// the write phase for the same (converter, value) pair".
type ArrayWriteState struct {
	Elements []WriteState
}

// Array wraps Converter[U] for element type U into a Converter[[]U]
// targeting the array wire type obtained from the catalog's element->array
// lookup (spec §4.2 "Array"). This decorator is normally produced through
// the resolver's array factory (package resolve) because it is generic over
// the element wire type; it is exported here so callers needing an array
// converter for a fixed element type can build one directly too.
//
// Grounded on github.com/jackc/pgx/v5/pgtype/array_codec.go's ArrayCodec:
// one ndim/has_nulls/element_oid header, one {lower_bound,length} pair per
// dimension (always one dimension here), then per-element {length, bytes}
// with length=-1 for NULL.
type Array[U any] struct {
	Element     Converter[U]
	ElementWire oid.WireTypeId
	IsNull      func(U) bool
}

func NewArray[U any](element Converter[U], elementWire oid.WireTypeId) *Array[U] {
	return &Array[U]{Element: element, ElementWire: elementWire}
}

// CanConvert is Binary-only regardless of what the element converter
// supports: Write/WriteAsync below only ever emit the binary array wire
// layout (ndim/has_nulls/element_oid header + per-element length-prefixed
// payloads), never PostgreSQL's braced text-array syntax, so advertising
// Text here would let format negotiation pick a format this decorator
// cannot actually produce.
func (a *Array[U]) CanConvert(format wire.DataFormat) bool {
	return format == wire.Binary
}

func (a *Array[U]) NullPredicateKind() DbNullPredicateKind { return PredicateDefault }

func (a *Array[U]) IsDbNull(value []U) bool { return value == nil }

func (a *Array[U]) elementNull(v U) bool {
	if a.IsNull != nil {
		return a.IsNull(v)
	}
	return a.Element.IsDbNull(v)
}

// GetSize sums the header, the per-element length prefixes, and each
// element's own reported size. When every element converter reports an
// Exact size, the total is Exact too; a single UpperBound element (e.g.
// builtin.NumericDecimal, whose wire size depends on exponent magnitude,
// not just coefficient bits) demotes the whole array to UpperBound, since
// the sum of an exact prefix and an estimate is itself only an estimate.
// Write does not reuse these per-element sizes for its length prefixes —
// see Write's own doc comment — so an inexact element here never corrupts
// the wire format, only the caller's preallocation hint.
func (a *Array[U]) GetSize(ctx *SizeContext, value []U) (wire.ValueSize, error) {
	// header: ndim(4) + has_nulls(4) + element_oid(4) + dims*(lower_bound(4)+length(4))
	total := 4 + 4 + 4 + 4 + 4
	exact := true
	elemStates := make([]WriteState, len(value))
	for i, v := range value {
		total += 4 // per-element length prefix
		if a.elementNull(v) {
			continue
		}
		elemCtx := &SizeContext{BufferLength: ctx.BufferLength, Format: ctx.Format}
		sz, err := a.Element.GetSize(elemCtx, v)
		if err != nil {
			return wire.ValueSize{}, err
		}
		elemStates[i] = elemCtx.WriteStateOut
		total += sz.N()
		if !sz.IsExact() {
			exact = false
		}
	}
	ctx.WriteStateOut = &ArrayWriteState{Elements: elemStates}
	if exact {
		return wire.Exact(total), nil
	}
	return wire.UpperBound(total), nil
}

// Write renders each non-null element into a scratch in-memory buffer
// first and writes that buffer's actual byte count as the {length, bytes}
// header (spec §6), rather than re-deriving the length from a second call
// to Element.GetSize. A second GetSize call is not guaranteed to agree
// with what Element.Write is about to emit whenever Element's size is an
// UpperBound rather than Exact (builtin.NumericDecimal/NumericAPD, whose
// actual encoded length depends on both coefficient and exponent) — using
// it as the length prefix would desynchronize the array's wire framing
// from its payload.
func (a *Array[U]) Write(w wire.Writer, value []U, state WriteState) error {
	elemStates, _ := state.(*ArrayWriteState)
	if err := w.WriteInt32(1); err != nil { // ndim
		return err
	}
	hasNulls := int32(0)
	for _, v := range value {
		if a.elementNull(v) {
			hasNulls = 1
			break
		}
	}
	if err := w.WriteInt32(hasNulls); err != nil {
		return err
	}
	if err := w.WriteAsOid(a.ElementWire); err != nil {
		return err
	}
	if err := w.WriteInt32(1); err != nil { // lower bound
		return err
	}
	if err := w.WriteInt32(int32(len(value))); err != nil { // length
		return err
	}

	scratch := wire.NewBuffer(wire.FlushNone, 32, nil)
	for i, v := range value {
		if a.elementNull(v) {
			if err := w.WriteInt32(-1); err != nil {
				return err
			}
			continue
		}
		var st WriteState
		if elemStates != nil && i < len(elemStates.Elements) {
			st = elemStates.Elements[i]
		}
		scratch.Reset()
		scratch.Initialize()
		scratch.SetCurrentFormat(w.CurrentFormat())
		if err := a.Element.Write(scratch, v, st); err != nil {
			return err
		}
		payload := scratch.Bytes()
		if err := w.WriteInt32(int32(len(payload))); err != nil {
			return err
		}
		if err := w.WriteRaw(payload); err != nil {
			return err
		}
	}
	return nil
}

func (a *Array[U]) WriteAsync(ctx context.Context, w wire.Writer, value []U, state WriteState) error {
	elemStates, _ := state.(*ArrayWriteState)
	if err := w.WriteInt32(1); err != nil {
		return err
	}
	hasNulls := int32(0)
	for _, v := range value {
		if a.elementNull(v) {
			hasNulls = 1
			break
		}
	}
	if err := w.WriteInt32(hasNulls); err != nil {
		return err
	}
	if err := w.WriteAsOid(a.ElementWire); err != nil {
		return err
	}
	if err := w.WriteInt32(1); err != nil {
		return err
	}
	if err := w.WriteInt32(int32(len(value))); err != nil {
		return err
	}
	scratch := wire.NewBuffer(wire.FlushNone, 32, nil)
	for i, v := range value {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		if a.elementNull(v) {
			if err := w.WriteInt32(-1); err != nil {
				return err
			}
			continue
		}
		var st WriteState
		if elemStates != nil && i < len(elemStates.Elements) {
			st = elemStates.Elements[i]
		}
		scratch.Reset()
		scratch.Initialize()
		scratch.SetCurrentFormat(w.CurrentFormat())
		if err := a.Element.WriteAsync(ctx, scratch, v, st); err != nil {
			return err
		}
		payload := scratch.Bytes()
		if err := w.WriteInt32(int32(len(payload))); err != nil {
			return err
		}
		if err := w.WriteRaw(payload); err != nil {
			return err
		}
	}
	return nil
}

func (a *Array[U]) Read(r wire.Reader) ([]U, error) {
	ndim, err := r.ReadInt32()
	if err != nil {
		return nil, err
	}
	if ndim == 0 {
		return []U{}, nil
	}
	if _, err := r.ReadInt32(); err != nil { // has_nulls
		return nil, err
	}
	if _, err := r.ReadUint32(); err != nil { // element_oid
		return nil, err
	}
	if _, err := r.ReadInt32(); err != nil { // lower_bound
		return nil, err
	}
	length, err := r.ReadInt32()
	if err != nil {
		return nil, err
	}

	out := make([]U, length)
	for i := range out {
		elemLen, err := r.ReadInt32()
		if err != nil {
			return nil, err
		}
		if elemLen < 0 {
			continue
		}
		v, err := a.readElement(r, int(elemLen))
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

// readElement prefers the element converter's own ReadN when it exposes one
// (the builtin text/numeric converters do, since their wire representation
// has no self-describing length of its own — spec §4.5 "Text path"). Falls
// back to Read bounded to the per-element length prefix otherwise.
func (a *Array[U]) readElement(r wire.Reader, n int) (U, error) {
	if lp, ok := a.Element.(interface {
		ReadN(wire.Reader, int) (U, error)
	}); ok {
		return lp.ReadN(r, n)
	}
	return a.Element.Read(&boundedReader{Reader: r, remaining: n})
}

func (a *Array[U]) ReadAsync(ctx context.Context, r wire.Reader) ([]U, error) {
	ndim, err := r.ReadInt32()
	if err != nil {
		return nil, err
	}
	if ndim == 0 {
		return []U{}, nil
	}
	if _, err := r.ReadInt32(); err != nil {
		return nil, err
	}
	if _, err := r.ReadUint32(); err != nil {
		return nil, err
	}
	if _, err := r.ReadInt32(); err != nil {
		return nil, err
	}
	length, err := r.ReadInt32()
	if err != nil {
		return nil, err
	}
	out := make([]U, length)
	for i := range out {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}
		elemLen, err := r.ReadInt32()
		if err != nil {
			return nil, err
		}
		if elemLen < 0 {
			continue
		}
		v, err := a.readElement(r, int(elemLen))
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

// boundedReader wraps an inner Reader so an element converter's reads
// cannot cross past its own per-element length prefix: every read draws
// down remaining first, and one asking for more than is left fails instead
// of silently reading into the next element's bytes. Every Reader method
// is overridden, not just ReadBytes, since an embedded interface promotes
// unoverridden methods straight to the inner Reader, bypassing remaining
// entirely.
type boundedReader struct {
	wire.Reader
	remaining int
}

func (b *boundedReader) consume(n int) error {
	if n > b.remaining {
		return converr.New(converr.InvalidWireData, "", "", nil)
	}
	b.remaining -= n
	return nil
}

func (b *boundedReader) ReadByte() (byte, error) {
	if err := b.consume(1); err != nil {
		return 0, err
	}
	return b.Reader.ReadByte()
}

func (b *boundedReader) ReadInt16() (int16, error) {
	if err := b.consume(2); err != nil {
		return 0, err
	}
	return b.Reader.ReadInt16()
}

func (b *boundedReader) ReadInt32() (int32, error) {
	if err := b.consume(4); err != nil {
		return 0, err
	}
	return b.Reader.ReadInt32()
}

func (b *boundedReader) ReadInt64() (int64, error) {
	if err := b.consume(8); err != nil {
		return 0, err
	}
	return b.Reader.ReadInt64()
}

func (b *boundedReader) ReadUint32() (uint32, error) {
	if err := b.consume(4); err != nil {
		return 0, err
	}
	return b.Reader.ReadUint32()
}

func (b *boundedReader) ReadBytes(n int) ([]byte, error) {
	if err := b.consume(n); err != nil {
		return nil, err
	}
	return b.Reader.ReadBytes(n)
}
