package paramwriter

import (
	"context"

	"github.com/jackc/pgxconv/convert"
	"github.com/jackc/pgxconv/converr"
	"github.com/jackc/pgxconv/wire"
)

// StaticParameter is the statically-typed counterpart of Parameter (spec
// §4.6 "static vs dynamic dispatch"): it holds a concrete
// convert.Converter[T] and never boxes value into interface{}, so a call
// site that already knows T at compile time pays no per-value virtual
// dispatch (spec §9).
type StaticParameter[T any] struct {
	Value      T
	Converter  convert.Converter[T]
	Size       wire.ValueSize
	IsDbNull   bool
	Format     wire.DataFormat
	WriteState convert.WriteState
}

// SizeStatic runs phase 1 against a concrete Converter[T] directly,
// bypassing resolve.ConverterInfo and resolve.BoxedConverter entirely.
func SizeStatic[T any](conv convert.Converter[T], value T, bufferLength int, preferredFormat *wire.DataFormat) (*StaticParameter[T], error) {
	if conv.IsDbNull(value) {
		return &StaticParameter[T]{Value: value, Converter: conv, Size: wire.Unknown(), IsDbNull: true}, nil
	}

	format, err := negotiateStaticFormat(conv, preferredFormat)
	if err != nil {
		return nil, err
	}

	ctx := &convert.SizeContext{BufferLength: bufferLength, Format: format}
	size, err := conv.GetSize(ctx, value)
	if err != nil {
		return nil, err
	}
	return &StaticParameter[T]{
		Value:      value,
		Converter:  conv,
		Size:       size,
		Format:     format,
		WriteState: ctx.WriteStateOut,
	}, nil
}

// WriteStatic runs phase 2 synchronously for a StaticParameter[T].
func WriteStatic[T any](out wire.Writer, p *StaticParameter[T]) error {
	if err := checkWriteFlushMode(out.FlushMode(), false); err != nil {
		return err
	}
	if p.IsDbNull {
		return nil
	}
	out.SetCurrentFormat(p.Format)
	return p.Converter.Write(out, p.Value, p.WriteState)
}

// WriteAsyncStatic runs phase 2 asynchronously for a StaticParameter[T].
func WriteAsyncStatic[T any](ctx context.Context, out wire.Writer, p *StaticParameter[T]) error {
	if err := checkWriteFlushMode(out.FlushMode(), true); err != nil {
		return err
	}
	if p.IsDbNull {
		return nil
	}
	out.SetCurrentFormat(p.Format)
	return p.Converter.WriteAsync(ctx, out, p.Value, p.WriteState)
}

func negotiateStaticFormat[T any](conv convert.Converter[T], hint *wire.DataFormat) (wire.DataFormat, error) {
	preferred := wire.Binary
	if hint != nil {
		if conv.CanConvert(*hint) {
			return *hint, nil
		}
		if conv.CanConvert(preferred) {
			return preferred, nil
		}
		return 0, converr.New(converr.FormatNotSupported, "", "", nil)
	}
	if conv.CanConvert(preferred) {
		return preferred, nil
	}
	other := wire.Text
	if conv.CanConvert(other) {
		return other, nil
	}
	return 0, converr.New(converr.FormatNotSupported, "", "", nil)
}
