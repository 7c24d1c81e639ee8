// Package convert defines the Converter primitive — the unit of encode/decode
// for one application type bound to one wire type — and the null-predicate
// vocabulary callers use to decide whether to invoke it at all (spec §4.1).
//
// Grounded on github.com/jackc/pgx/v5/pgtype's Codec interface
// (FormatSupported/PreferredFormat/Encode/PlanScan) generalized with Go
// generics so each Converter is monomorphized at its call site instead of
// going through an interface{} box on the hot path (spec §9 "Avoiding
// virtual dispatch per value").
package convert

import (
	"context"

	"github.com/jackc/pgxconv/wire"
)

// DbNullPredicateKind classifies how a Converter decides a value encodes to
// SQL NULL.
type DbNullPredicateKind int

const (
	// PredicateNone means T has no null sentinel; IsDbNull always returns
	// false.
	PredicateNone DbNullPredicateKind = iota
	// PredicateDefault means the language's empty/absent sentinel (e.g. a
	// nil pointer or a nil slice) encodes as SQL NULL.
	PredicateDefault
	// PredicateExtended means the converter inspects value contents to
	// decide (e.g. an empty slice may or may not be null depending on the
	// converter).
	PredicateExtended
)

// WriteState is the opaque scratch a converter's size phase may produce for
// consumption by the matching write phase of the same (converter, value)
// pair (spec §3 "WriteState"). Converters define their own concrete type and
// store it behind this alias; paramwriter.Parameter carries the value
// between phases.
type WriteState = interface{}

// SizeContext is the transient argument to GetSize (spec §3 "SizeContext").
// WriteStateOut is set by GetSize when the converter needs to hand scratch
// to the write phase.
type SizeContext struct {
	BufferLength  int
	Format        wire.DataFormat
	WriteStateOut WriteState
}

// Converter is the encode/decode pair for one application type T. All
// Converter implementations in this module are immutable after
// construction and safe to share across sessions (spec §5 "Shared
// resources").
type Converter[T any] interface {
	// CanConvert reports whether this converter supports the given format.
	CanConvert(format wire.DataFormat) bool

	// NullPredicateKind reports how IsDbNull decides nullness.
	NullPredicateKind() DbNullPredicateKind

	// IsDbNull reports whether value encodes to SQL NULL. Callers must not
	// invoke Write/WriteAsync for a value this returns true for.
	IsDbNull(value T) bool

	// GetSize is pure w.r.t. externally visible state; it may populate
	// ctx.WriteStateOut for the matching write phase.
	GetSize(ctx *SizeContext, value T) (wire.ValueSize, error)

	// Write is the synchronous write phase. It may call w.Flush() only if
	// w.FlushMode() is wire.FlushBlocking.
	Write(w wire.Writer, value T, state WriteState) error

	// WriteAsync is the asynchronous write phase. It may call
	// w.FlushAsync() only if w.FlushMode() is wire.FlushNonBlocking.
	WriteAsync(ctx context.Context, w wire.Writer, value T, state WriteState) error

	Read(r wire.Reader) (T, error)
	ReadAsync(ctx context.Context, r wire.Reader) (T, error)
}
