package builtin

import (
	"context"
	"math"
	"strconv"

	"github.com/jackc/pgxconv/convert"
	"github.com/jackc/pgxconv/converr"
	"github.com/jackc/pgxconv/wire"
)

// Float4 is the primitive converter for the float4 wire type, grounded on
// github.com/jackc/pgx/v5/pgtype/float4.go.
type Float4 struct{}

func (Float4) CanConvert(format wire.DataFormat) bool {
	return format == wire.Text || format == wire.Binary
}
func (Float4) NullPredicateKind() convert.DbNullPredicateKind { return convert.PredicateNone }
func (Float4) IsDbNull(float32) bool                           { return false }

func (Float4) GetSize(ctx *convert.SizeContext, v float32) (wire.ValueSize, error) {
	if ctx.Format == wire.Binary {
		return convert.FixedSize(4), nil
	}
	return wire.Exact(len(strconv.FormatFloat(float64(v), 'f', -1, 32))), nil
}

func (Float4) Write(w wire.Writer, v float32, _ convert.WriteState) error {
	if w.CurrentFormat() == wire.Binary {
		return w.WriteUint32(math.Float32bits(v))
	}
	return w.WriteText(strconv.FormatFloat(float64(v), 'f', -1, 32), wire.UTF8)
}

func (c Float4) WriteAsync(ctx context.Context, w wire.Writer, v float32, state convert.WriteState) error {
	return c.Write(w, v, state)
}

func (Float4) Read(r wire.Reader) (float32, error) {
	n, err := r.ReadUint32()
	if err != nil {
		return 0, converr.Wrap(err, converr.InvalidWireData, "float4", "", nil)
	}
	return math.Float32frombits(n), nil
}

func (c Float4) ReadAsync(ctx context.Context, r wire.Reader) (float32, error) {
	return c.Read(r)
}

// Float8 is the primitive converter for the float8 wire type.
type Float8 struct{}

func (Float8) CanConvert(format wire.DataFormat) bool {
	return format == wire.Text || format == wire.Binary
}
func (Float8) NullPredicateKind() convert.DbNullPredicateKind { return convert.PredicateNone }
func (Float8) IsDbNull(float64) bool                            { return false }

func (Float8) GetSize(ctx *convert.SizeContext, v float64) (wire.ValueSize, error) {
	if ctx.Format == wire.Binary {
		return convert.FixedSize(8), nil
	}
	return wire.Exact(len(strconv.FormatFloat(v, 'f', -1, 64))), nil
}

func (Float8) Write(w wire.Writer, v float64, _ convert.WriteState) error {
	if w.CurrentFormat() == wire.Binary {
		return w.WriteInt64(int64(math.Float64bits(v)))
	}
	return w.WriteText(strconv.FormatFloat(v, 'f', -1, 64), wire.UTF8)
}

func (c Float8) WriteAsync(ctx context.Context, w wire.Writer, v float64, state convert.WriteState) error {
	return c.Write(w, v, state)
}

func (Float8) Read(r wire.Reader) (float64, error) {
	n, err := r.ReadInt64()
	if err != nil {
		return 0, converr.Wrap(err, converr.InvalidWireData, "float8", "", nil)
	}
	return math.Float64frombits(uint64(n)), nil
}

func (c Float8) ReadAsync(ctx context.Context, r wire.Reader) (float64, error) {
	return c.Read(r)
}
