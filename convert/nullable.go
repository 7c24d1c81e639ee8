package convert

import (
	"context"

	"github.com/jackc/pgxconv/wire"
)

// Nullable lifts Converter[U] to Converter[*U], where a nil pointer is the
// language's null sentinel (spec §4.2 "Nullable lift"; Go's idiom for
// Option<U> is a pointer, so *U stands in for the spec's Option<U>). It
// inherits can_convert and format preference from the wrapped converter
// unless explicitly overridden (spec §3 decorator-transparency invariant),
// and upgrades the null-predicate kind to Extended if the inner predicate
// was already Extended (spec §4.2).
type Nullable[U any] struct {
	Inner Converter[U]
}

// NewNullable wraps inner in a Nullable decorator.
func NewNullable[U any](inner Converter[U]) *Nullable[U] {
	return &Nullable[U]{Inner: inner}
}

func (n *Nullable[U]) CanConvert(format wire.DataFormat) bool {
	return n.Inner.CanConvert(format)
}

func (n *Nullable[U]) NullPredicateKind() DbNullPredicateKind {
	if n.Inner.NullPredicateKind() == PredicateExtended {
		return PredicateExtended
	}
	return PredicateDefault
}

func (n *Nullable[U]) IsDbNull(value *U) bool {
	if value == nil {
		return true
	}
	return n.Inner.IsDbNull(*value)
}

func (n *Nullable[U]) GetSize(ctx *SizeContext, value *U) (wire.ValueSize, error) {
	return n.Inner.GetSize(ctx, *value)
}

func (n *Nullable[U]) Write(w wire.Writer, value *U, state WriteState) error {
	return n.Inner.Write(w, *value, state)
}

func (n *Nullable[U]) WriteAsync(ctx context.Context, w wire.Writer, value *U, state WriteState) error {
	return n.Inner.WriteAsync(ctx, w, *value, state)
}

func (n *Nullable[U]) Read(r wire.Reader) (*U, error) {
	v, err := n.Inner.Read(r)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func (n *Nullable[U]) ReadAsync(ctx context.Context, r wire.Reader) (*U, error) {
	v, err := n.Inner.ReadAsync(ctx, r)
	if err != nil {
		return nil, err
	}
	return &v, nil
}
