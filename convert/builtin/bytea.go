package builtin

import (
	"bytes"
	"context"
	"encoding/hex"

	"github.com/jackc/pgxconv/convert"
	"github.com/jackc/pgxconv/converr"
	"github.com/jackc/pgxconv/wire"
)

// Bytea is the primitive converter for the bytea wire type, grounded on
// github.com/jackc/pgx/v5/pgtype/bytea.go. Its null predicate is Default:
// a nil []byte is SQL NULL, an empty non-nil []byte is not.
type Bytea struct{}

func (Bytea) CanConvert(format wire.DataFormat) bool {
	return format == wire.Text || format == wire.Binary
}
func (Bytea) NullPredicateKind() convert.DbNullPredicateKind { return convert.PredicateDefault }
func (Bytea) IsDbNull(v []byte) bool                           { return v == nil }

func (Bytea) GetSize(ctx *convert.SizeContext, v []byte) (wire.ValueSize, error) {
	if ctx.Format == wire.Binary {
		return wire.Exact(len(v)), nil
	}
	return wire.Exact(2 + hex.EncodedLen(len(v))), nil
}

func (Bytea) Write(w wire.Writer, v []byte, _ convert.WriteState) error {
	if w.CurrentFormat() == wire.Binary {
		return w.WriteRaw(v)
	}
	return w.WriteText("\\x"+hex.EncodeToString(v), wire.UTF8)
}

func (c Bytea) WriteAsync(ctx context.Context, w wire.Writer, v []byte, state convert.WriteState) error {
	return c.Write(w, v, state)
}

func (Bytea) Read(r wire.Reader) ([]byte, error) {
	return nil, converr.New(converr.InvalidWireData, "bytea", "", "Read requires a known length; use ReadN")
}

func (c Bytea) ReadAsync(ctx context.Context, r wire.Reader) ([]byte, error) {
	return c.Read(r)
}

// ReadN reads exactly n bytes of raw bytea payload. The array/top-level
// decoder supplies n from its own length prefix (spec §6: bytea, like text
// and numeric, has no self-describing length on the wire).
func (Bytea) ReadN(r wire.Reader, n int) ([]byte, error) {
	span, err := r.ReadBytes(n)
	if err != nil {
		return nil, converr.Wrap(err, converr.InvalidWireData, "bytea", "", nil)
	}
	return bytes.Clone(span), nil
}
