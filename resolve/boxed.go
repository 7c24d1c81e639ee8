// Package resolve implements ConverterInfo, ConverterResolution, and the
// default resolver chain that maps (application type, wire type) pairs to a
// ConverterInfo (spec §4.3, §4.5).
//
// Converters themselves (package convert / convert/builtin) are generic —
// Converter[T] — so construction and the hot per-value Write/Read path never
// box a value into interface{}. Resolution, by contrast, necessarily
// operates on a runtime-supplied application type, so this package boxes a
// Converter[T] once behind BoxedConverter at resolution time and caches the
// result; this is the "non-generic object-safe facade for the dynamic entry
// only" the spec's design notes (§9) call for, and mirrors
// github.com/jackc/pgx/v5/pgtype's Codec interface, which always takes
// value interface{} for exactly this reason.
package resolve

import (
	"context"

	"github.com/jackc/pgxconv/convert"
	"github.com/jackc/pgxconv/wire"
)

// BoxedConverter is the type-erased facade over a Converter[T] used once
// resolution has to operate across heterogeneous application types.
type BoxedConverter interface {
	CanConvert(format wire.DataFormat) bool
	NullPredicateKind() convert.DbNullPredicateKind
	IsDbNullAny(value interface{}) bool
	GetSizeAny(ctx *convert.SizeContext, value interface{}) (wire.ValueSize, error)
	WriteAny(w wire.Writer, value interface{}, state convert.WriteState) error
	WriteAsyncAny(ctx context.Context, w wire.Writer, value interface{}, state convert.WriteState) error
	ReadAny(r wire.Reader) (interface{}, error)
	ReadAsyncAny(ctx context.Context, r wire.Reader) (interface{}, error)
}

// boxed adapts a Converter[T] to BoxedConverter by type-asserting interface{}
// back to T at each call.
type boxed[T any] struct {
	Inner convert.Converter[T]
}

// Box wraps a concrete Converter[T] for use by the resolver's dynamic entry.
func Box[T any](c convert.Converter[T]) BoxedConverter { return boxed[T]{Inner: c} }

// Unbox recovers the original Converter[T] from a BoxedConverter built by
// Box[T]. It panics if b was not built over T — callers only call this once
// resolution has already confirmed the application type matches T, so the
// mismatch case does not arise in normal operation.
func Unbox[T any](b BoxedConverter) convert.Converter[T] {
	return b.(boxed[T]).Inner
}

func (b boxed[T]) CanConvert(format wire.DataFormat) bool { return b.Inner.CanConvert(format) }
func (b boxed[T]) NullPredicateKind() convert.DbNullPredicateKind {
	return b.Inner.NullPredicateKind()
}

func (b boxed[T]) IsDbNullAny(value interface{}) bool {
	return b.Inner.IsDbNull(value.(T))
}

func (b boxed[T]) GetSizeAny(ctx *convert.SizeContext, value interface{}) (wire.ValueSize, error) {
	return b.Inner.GetSize(ctx, value.(T))
}

func (b boxed[T]) WriteAny(w wire.Writer, value interface{}, state convert.WriteState) error {
	return b.Inner.Write(w, value.(T), state)
}

func (b boxed[T]) WriteAsyncAny(ctx context.Context, w wire.Writer, value interface{}, state convert.WriteState) error {
	return b.Inner.WriteAsync(ctx, w, value.(T), state)
}

func (b boxed[T]) ReadAny(r wire.Reader) (interface{}, error) {
	return b.Inner.Read(r)
}

func (b boxed[T]) ReadAsyncAny(ctx context.Context, r wire.Reader) (interface{}, error) {
	return b.Inner.ReadAsync(ctx, r)
}
