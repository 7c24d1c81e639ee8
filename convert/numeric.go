package convert

import (
	"context"

	"github.com/jackc/pgxconv/converr"
	"github.com/jackc/pgxconv/wire"
)

// Integer is the constraint satisfied by every numeric application type the
// coercion decorator can target (spec §4.2 "Numeric coercion"): any sized
// signed or unsigned integer.
type Integer interface {
	~int8 | ~int16 | ~int32 | ~int64 | ~int |
		~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uint
}

// Coerce wraps Converter[U] (bound to a primitive numeric wire type, e.g.
// int32 for int4) and produces a Converter for any numeric T by checked
// conversion: values outside U's representable range fail with
// converr.ValueOutOfRange rather than wrapping or truncating (spec §4.2,
// testable property 5). It preserves the inner's format capability.
type Coerce[T Integer, U Integer] struct {
	Inner    Converter[U]
	WireName string
}

// NewCoerce wraps inner, which targets the wire type named wireName, into a
// Converter[T].
func NewCoerce[T Integer, U Integer](inner Converter[U], wireName string) *Coerce[T, U] {
	return &Coerce[T, U]{Inner: inner, WireName: wireName}
}

func (c *Coerce[T, U]) CanConvert(format wire.DataFormat) bool {
	return c.Inner.CanConvert(format)
}

func (c *Coerce[T, U]) NullPredicateKind() DbNullPredicateKind {
	return c.Inner.NullPredicateKind()
}

func (c *Coerce[T, U]) IsDbNull(value T) bool {
	return false
}

// checkedNarrow converts v to U and reports whether the round trip back to
// T recovers the original value. This single round-trip comparison catches
// every overflow/sign-mismatch case for both widening and narrowing, signed
// and unsigned, without enumerating per-width bounds.
func checkedNarrow[T Integer, U Integer](v T) (U, bool) {
	u := U(v)
	back := T(u)
	return u, back == v
}

func (c *Coerce[T, U]) convertIn(value T) (U, error) {
	u, ok := checkedNarrow[T, U](value)
	if !ok {
		return 0, converr.New(converr.ValueOutOfRange, c.WireName, "", value)
	}
	return u, nil
}

func (c *Coerce[T, U]) GetSize(ctx *SizeContext, value T) (wire.ValueSize, error) {
	u, err := c.convertIn(value)
	if err != nil {
		return wire.ValueSize{}, err
	}
	return c.Inner.GetSize(ctx, u)
}

func (c *Coerce[T, U]) Write(w wire.Writer, value T, state WriteState) error {
	u, err := c.convertIn(value)
	if err != nil {
		return err
	}
	return c.Inner.Write(w, u, state)
}

func (c *Coerce[T, U]) WriteAsync(ctx context.Context, w wire.Writer, value T, state WriteState) error {
	u, err := c.convertIn(value)
	if err != nil {
		return err
	}
	return c.Inner.WriteAsync(ctx, w, u, state)
}

func (c *Coerce[T, U]) Read(r wire.Reader) (T, error) {
	u, err := c.Inner.Read(r)
	if err != nil {
		return 0, err
	}
	t, ok := checkedNarrow[U, T](u)
	if !ok {
		return 0, converr.New(converr.ValueOutOfRange, c.WireName, "", u)
	}
	return t, nil
}

func (c *Coerce[T, U]) ReadAsync(ctx context.Context, r wire.Reader) (T, error) {
	u, err := c.Inner.ReadAsync(ctx, r)
	if err != nil {
		return 0, err
	}
	t, ok := checkedNarrow[U, T](u)
	if !ok {
		return 0, converr.New(converr.ValueOutOfRange, c.WireName, "", u)
	}
	return t, nil
}
