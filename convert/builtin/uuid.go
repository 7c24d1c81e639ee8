package builtin

import (
	"context"

	"github.com/gofrs/uuid"
	"github.com/jackc/pgxconv/convert"
	"github.com/jackc/pgxconv/converr"
	"github.com/jackc/pgxconv/wire"
)

// UUID is the converter for the uuid wire type, backed by
// github.com/gofrs/uuid instead of a hand-rolled [16]byte parser — the
// teacher's pgtype/uuid.go parses the textual form itself, but gofrs/uuid is
// already in the teacher's go.mod and covers both formats.
type UUID struct{}

func (UUID) CanConvert(format wire.DataFormat) bool {
	return format == wire.Text || format == wire.Binary
}
func (UUID) NullPredicateKind() convert.DbNullPredicateKind { return convert.PredicateDefault }
func (UUID) IsDbNull(v uuid.UUID) bool                        { return v == uuid.Nil }

func (UUID) GetSize(ctx *convert.SizeContext, _ uuid.UUID) (wire.ValueSize, error) {
	if ctx.Format == wire.Binary {
		return wire.Exact(16), nil
	}
	return wire.Exact(36), nil
}

func (UUID) Write(w wire.Writer, v uuid.UUID, _ convert.WriteState) error {
	if w.CurrentFormat() == wire.Binary {
		return w.WriteRaw(v[:])
	}
	return w.WriteText(v.String(), wire.UTF8)
}

func (c UUID) WriteAsync(ctx context.Context, w wire.Writer, v uuid.UUID, state convert.WriteState) error {
	return c.Write(w, v, state)
}

func (UUID) Read(r wire.Reader) (uuid.UUID, error) {
	span, err := r.ReadBytes(16)
	if err != nil {
		return uuid.Nil, converr.Wrap(err, converr.InvalidWireData, "uuid", "", nil)
	}
	var u uuid.UUID
	copy(u[:], span)
	return u, nil
}

func (c UUID) ReadAsync(ctx context.Context, r wire.Reader) (uuid.UUID, error) {
	return c.Read(r)
}
