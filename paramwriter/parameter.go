// Package paramwriter drives the two-phase sizing/writing protocol for a
// single parameter (spec §4.6), carrying the WriteState a converter's size
// phase produces through to the matching write phase.
//
// Grounded on github.com/jackc/pgx/v5/pgconn's extended-query parameter
// pipeline (the size-then-write split in pgconn's frontend message
// building) generalized to this module's Converter/ConverterInfo split.
package paramwriter

import (
	"context"

	"github.com/jackc/pgxconv/convert"
	"github.com/jackc/pgxconv/converr"
	"github.com/jackc/pgxconv/convlog"
	"github.com/jackc/pgxconv/resolve"
	"github.com/jackc/pgxconv/wire"
)

// Parameter is the cache-keyed per-value state the two-phase protocol
// passes from Size to Write (spec §3 "Parameter").
type Parameter struct {
	Value      interface{}
	Resolution resolve.ConverterResolution
	Size       wire.ValueSize
	IsDbNull   bool
	Format     wire.DataFormat
	WriteState convert.WriteState
}

// Writer orchestrates Size and Write for a sequence of parameters against
// one resolver chain. It is not safe for concurrent use — spec §5's
// ordering guarantee is "size and write phases occur strictly in order on
// the same logical flow" and this type has no internal locking to enforce
// that beyond single-goroutine use.
type Writer struct {
	Resolver *resolve.DefaultResolver
	Logger   convlog.Logger
}

// NewWriter returns a Writer bound to resolver. logger may be nil.
func NewWriter(resolver *resolve.DefaultResolver, logger convlog.Logger) *Writer {
	return &Writer{Resolver: resolver, Logger: logger}
}

// Size runs phase 1 for the dynamic (boxed) entry point (spec §4.6 phase
// 1): obtain the resolution, stop at null, otherwise call
// get_preferred_size and record the result on a new Parameter.
func (w *Writer) Size(info *resolve.ConverterInfo, value interface{}, bufferLength int, preferredFormat *wire.DataFormat) (*Parameter, error) {
	res := info.GetResolutionAsObject(value)

	if res.Converter.IsDbNullAny(value) {
		w.trace("param_null", map[string]any{"wire_type": res.WireType.String()})
		return &Parameter{Value: value, Resolution: res, Size: wire.Unknown(), IsDbNull: true}, nil
	}

	size, state, format, err := info.GetPreferredSize(res, value, bufferLength, preferredFormat, w.Logger)
	if err != nil {
		return nil, err
	}
	w.trace("param_sized", map[string]any{"wire_type": res.WireType.String(), "format": format.String()})
	return &Parameter{
		Value:      value,
		Resolution: res,
		Size:       size,
		Format:     format,
		WriteState: state,
	}, nil
}

// checkWriteFlushMode implements spec §4.6 phase 2's flush-mode guard: the
// sync path rejects a NonBlocking writer, the async path rejects a
// Blocking one. FlushNone is valid on both — it is what in-memory capture
// (Capture, below) uses.
func checkWriteFlushMode(mode wire.FlushMode, async bool) error {
	if async && mode == wire.FlushBlocking {
		return converr.New(converr.WrongFlushMode, "", "", nil)
	}
	if !async && mode == wire.FlushNonBlocking {
		return converr.New(converr.WrongFlushMode, "", "", nil)
	}
	return nil
}

// Write runs phase 2 synchronously (spec §4.6 phase 2): rejects a
// mismatched flush mode, skips entirely for a null parameter, sets the
// writer's negotiated format, and invokes the converter's write.
func (w *Writer) Write(out wire.Writer, p *Parameter) error {
	if err := checkWriteFlushMode(out.FlushMode(), false); err != nil {
		return err
	}
	if p.IsDbNull {
		return nil
	}
	out.SetCurrentFormat(p.Format)
	return p.Resolution.Converter.WriteAny(out, p.Value, p.WriteState)
}

// WriteAsync is the asynchronous counterpart of Write.
func (w *Writer) WriteAsync(ctx context.Context, out wire.Writer, p *Parameter) error {
	if err := checkWriteFlushMode(out.FlushMode(), true); err != nil {
		return err
	}
	if p.IsDbNull {
		return nil
	}
	out.SetCurrentFormat(p.Format)
	return p.Resolution.Converter.WriteAsyncAny(ctx, out, p.Value, p.WriteState)
}

func (w *Writer) trace(msg string, data map[string]any) {
	if w.Logger == nil {
		return
	}
	w.Logger.Log(context.Background(), convlog.Trace, msg, data)
}
