// Package builtin ships the primitive converters for PostgreSQL's builtin
// wire types: int2/int4/int8, bool, float4/float8, bytea, text, uuid,
// numeric (two backends), timestamp/timestamptz, plus the array support
// wired in through convert.Array.
//
// Grounded on github.com/jackc/pgx/v5/pgtype's int2_codec.go, int4.go,
// bool.go, float4.go/float8_test.go, bytea.go, text.go.
package builtin

import (
	"context"
	"strconv"

	"github.com/jackc/pgxconv/convert"
	"github.com/jackc/pgxconv/converr"
	"github.com/jackc/pgxconv/wire"
)

// Int2 is the primitive converter for the int2 wire type. It is the inner
// converter a convert.Coerce decorator wraps whenever an integer
// application type other than int16 targets int2.
type Int2 struct{}

func (Int2) CanConvert(format wire.DataFormat) bool {
	return format == wire.Text || format == wire.Binary
}
func (Int2) NullPredicateKind() convert.DbNullPredicateKind { return convert.PredicateNone }
func (Int2) IsDbNull(int16) bool                            { return false }

func (Int2) GetSize(ctx *convert.SizeContext, v int16) (wire.ValueSize, error) {
	if ctx.Format == wire.Binary {
		return convert.FixedSize(2), nil
	}
	return wire.Exact(len(formatInt(int64(v)))), nil
}

func (Int2) Write(w wire.Writer, v int16, _ convert.WriteState) error {
	if w.CurrentFormat() == wire.Binary {
		return w.WriteInt16(v)
	}
	return w.WriteText(formatInt(int64(v)), wire.UTF8)
}

func (c Int2) WriteAsync(ctx context.Context, w wire.Writer, v int16, state convert.WriteState) error {
	return c.Write(w, v, state)
}

func (Int2) Read(r wire.Reader) (int16, error) {
	n, err := r.ReadInt16()
	if err != nil {
		return 0, converr.Wrap(err, converr.InvalidWireData, "int2", "", nil)
	}
	return n, nil
}

func (c Int2) ReadAsync(ctx context.Context, r wire.Reader) (int16, error) {
	return c.Read(r)
}

// Int4 is the primitive converter for the int4 wire type (spec §8 scenario A/B).
type Int4 struct{}

func (Int4) CanConvert(format wire.DataFormat) bool {
	return format == wire.Text || format == wire.Binary
}
func (Int4) NullPredicateKind() convert.DbNullPredicateKind { return convert.PredicateNone }
func (Int4) IsDbNull(int32) bool                            { return false }

func (Int4) GetSize(ctx *convert.SizeContext, v int32) (wire.ValueSize, error) {
	if ctx.Format == wire.Binary {
		return convert.FixedSize(4), nil
	}
	return wire.Exact(len(formatInt(int64(v)))), nil
}

func (Int4) Write(w wire.Writer, v int32, _ convert.WriteState) error {
	if w.CurrentFormat() == wire.Binary {
		return w.WriteInt32(v)
	}
	return w.WriteText(formatInt(int64(v)), wire.UTF8)
}

func (c Int4) WriteAsync(ctx context.Context, w wire.Writer, v int32, state convert.WriteState) error {
	return c.Write(w, v, state)
}

func (Int4) Read(r wire.Reader) (int32, error) {
	n, err := r.ReadInt32()
	if err != nil {
		return 0, converr.Wrap(err, converr.InvalidWireData, "int4", "", nil)
	}
	return n, nil
}

func (c Int4) ReadAsync(ctx context.Context, r wire.Reader) (int32, error) {
	return c.Read(r)
}

// Int8 is the primitive converter for the int8 wire type.
type Int8 struct{}

func (Int8) CanConvert(format wire.DataFormat) bool {
	return format == wire.Text || format == wire.Binary
}
func (Int8) NullPredicateKind() convert.DbNullPredicateKind { return convert.PredicateNone }
func (Int8) IsDbNull(int64) bool                            { return false }

func (Int8) GetSize(ctx *convert.SizeContext, v int64) (wire.ValueSize, error) {
	if ctx.Format == wire.Binary {
		return convert.FixedSize(8), nil
	}
	return wire.Exact(len(formatInt(v))), nil
}

func (Int8) Write(w wire.Writer, v int64, _ convert.WriteState) error {
	if w.CurrentFormat() == wire.Binary {
		return w.WriteInt64(v)
	}
	return w.WriteText(formatInt(v), wire.UTF8)
}

func (c Int8) WriteAsync(ctx context.Context, w wire.Writer, v int64, state convert.WriteState) error {
	return c.Write(w, v, state)
}

func (Int8) Read(r wire.Reader) (int64, error) {
	n, err := r.ReadInt64()
	if err != nil {
		return 0, converr.Wrap(err, converr.InvalidWireData, "int8", "", nil)
	}
	return n, nil
}

func (c Int8) ReadAsync(ctx context.Context, r wire.Reader) (int64, error) {
	return c.Read(r)
}

func formatInt(n int64) string {
	return strconv.FormatInt(n, 10)
}
