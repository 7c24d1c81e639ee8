package builtin

import (
	"context"

	"github.com/jackc/pgxconv/convert"
	"github.com/jackc/pgxconv/converr"
	"github.com/jackc/pgxconv/wire"
)

// Bool is the primitive converter for the bool wire type, grounded on
// github.com/jackc/pgx/v5/pgtype/bool.go.
type Bool struct{}

func (Bool) CanConvert(format wire.DataFormat) bool {
	return format == wire.Text || format == wire.Binary
}
func (Bool) NullPredicateKind() convert.DbNullPredicateKind { return convert.PredicateNone }
func (Bool) IsDbNull(bool) bool                              { return false }

func (Bool) GetSize(ctx *convert.SizeContext, _ bool) (wire.ValueSize, error) {
	if ctx.Format == wire.Binary {
		return convert.FixedSize(1), nil
	}
	return wire.Exact(1), nil
}

func (Bool) Write(w wire.Writer, v bool, _ convert.WriteState) error {
	if w.CurrentFormat() == wire.Binary {
		if v {
			return w.WriteByte(1)
		}
		return w.WriteByte(0)
	}
	if v {
		return w.WriteText("t", wire.UTF8)
	}
	return w.WriteText("f", wire.UTF8)
}

func (c Bool) WriteAsync(ctx context.Context, w wire.Writer, v bool, state convert.WriteState) error {
	return c.Write(w, v, state)
}

func (Bool) Read(r wire.Reader) (bool, error) {
	b, err := r.ReadByte()
	if err != nil {
		return false, converr.Wrap(err, converr.InvalidWireData, "bool", "", nil)
	}
	return b != 0, nil
}

func (c Bool) ReadAsync(ctx context.Context, r wire.Reader) (bool, error) {
	return c.Read(r)
}
