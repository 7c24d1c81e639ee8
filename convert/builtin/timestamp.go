package builtin

import (
	"context"
	"math"
	"time"

	"github.com/jackc/pgxconv/config"
	"github.com/jackc/pgxconv/convert"
	"github.com/jackc/pgxconv/converr"
	"github.com/jackc/pgxconv/wire"
)

// pgEpoch is 2000-01-01 00:00:00 UTC, the zero point for PostgreSQL's
// timestamp wire format (spec §6).
var pgEpoch = time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)

// MaxTime and MinTime are the application-side sentinels that, when
// EnableInfinityConversions is set, round-trip through PostgreSQL's
// reserved i64 infinity values (spec §6, scenario F).
var (
	MaxTime = time.Date(9999, 12, 31, 23, 59, 59, 999999000, time.UTC)
	MinTime = time.Date(-4713, 11, 24, 0, 0, 0, 0, time.UTC)
)

// Timestamp is the converter for the timestamp wire type, grounded on
// github.com/jackc/pgx/v5/pgtype/timestamp.go. timestamptz, identical on the
// wire, has its own Timestamptz converter below.
type Timestamp struct {
	Config config.Config
}

func (Timestamp) CanConvert(format wire.DataFormat) bool {
	return format == wire.Binary
}
func (Timestamp) NullPredicateKind() convert.DbNullPredicateKind {
	return convert.PredicateNone
}
func (Timestamp) IsDbNull(time.Time) bool { return false }

func (Timestamp) GetSize(ctx *convert.SizeContext, _ time.Time) (wire.ValueSize, error) {
	return convert.FixedSize(8), nil
}

func (t Timestamp) encode(v time.Time) (int64, error) {
	if t.Config.EnableInfinityConversions {
		if v.Equal(MaxTime) {
			return math.MaxInt64, nil
		}
		if v.Equal(MinTime) {
			return math.MinInt64, nil
		}
	}
	return v.Sub(pgEpoch).Microseconds(), nil
}

func (t Timestamp) Write(w wire.Writer, v time.Time, _ convert.WriteState) error {
	micros, err := t.encode(v)
	if err != nil {
		return err
	}
	return w.WriteInt64(micros)
}

func (t Timestamp) WriteAsync(ctx context.Context, w wire.Writer, v time.Time, state convert.WriteState) error {
	return t.Write(w, v, state)
}

func (t Timestamp) Read(r wire.Reader) (time.Time, error) {
	micros, err := r.ReadInt64()
	if err != nil {
		return time.Time{}, converr.Wrap(err, converr.InvalidWireData, "timestamp", "", nil)
	}
	switch micros {
	case math.MaxInt64:
		if !t.Config.EnableInfinityConversions {
			return time.Time{}, converr.New(converr.InvalidWireData, "timestamp", "time.Time", micros)
		}
		return MaxTime, nil
	case math.MinInt64:
		if !t.Config.EnableInfinityConversions {
			return time.Time{}, converr.New(converr.InvalidWireData, "timestamp", "time.Time", micros)
		}
		return MinTime, nil
	}
	return pgEpoch.Add(time.Duration(micros) * time.Microsecond), nil
}

func (t Timestamp) ReadAsync(ctx context.Context, r wire.Reader) (time.Time, error) {
	return t.Read(r)
}

// Timestamptz is the converter for the timestamptz wire type. On the wire
// it is byte-identical to Timestamp (both are i64 microseconds from
// pgEpoch, always transmitted in UTC); the two are kept as distinct Go
// types only so the resolver's default-pair table can map each to its own
// wire type name.
type Timestamptz struct {
	Config config.Config
}

func (tz Timestamptz) CanConvert(format wire.DataFormat) bool { return format == wire.Binary }
func (Timestamptz) NullPredicateKind() convert.DbNullPredicateKind {
	return convert.PredicateNone
}
func (Timestamptz) IsDbNull(time.Time) bool { return false }

func (tz Timestamptz) GetSize(ctx *convert.SizeContext, v time.Time) (wire.ValueSize, error) {
	return Timestamp(tz).GetSize(ctx, v)
}

func (tz Timestamptz) Write(w wire.Writer, v time.Time, state convert.WriteState) error {
	return Timestamp(tz).Write(w, v.UTC(), state)
}

func (tz Timestamptz) WriteAsync(ctx context.Context, w wire.Writer, v time.Time, state convert.WriteState) error {
	return Timestamp(tz).WriteAsync(ctx, w, v.UTC(), state)
}

func (tz Timestamptz) Read(r wire.Reader) (time.Time, error) { return Timestamp(tz).Read(r) }

func (tz Timestamptz) ReadAsync(ctx context.Context, r wire.Reader) (time.Time, error) {
	return Timestamp(tz).ReadAsync(ctx, r)
}
