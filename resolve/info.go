package resolve

import (
	"context"

	"github.com/jackc/pgxconv/convert"
	"github.com/jackc/pgxconv/converr"
	"github.com/jackc/pgxconv/convlog"
	"github.com/jackc/pgxconv/oid"
	"github.com/jackc/pgxconv/wire"
)

// ConverterResolution pairs a converter with the wire type it will target
// for one call (spec §3 "ConverterResolution").
type ConverterResolution struct {
	Converter BoxedConverter
	WireType  oid.WireTypeId
}

// ConverterInfo is the long-lived, cache-keyed unit higher layers consume
// (spec §3, §4.3): a converter plus the wire identity it negotiated plus
// format preference. Callers should resolve once per (application type,
// wire type) pair and reuse the ConverterInfo across many values.
type ConverterInfo struct {
	Converter         BoxedConverter
	PreferredWireType oid.WireTypeId
	PreferredFormat   wire.DataFormat
	// IsDefaultMapping is true iff this info is the unique default for its
	// application type, i.e. the given pair equalled the resolver's
	// canonical pair (spec §4.5 step 2).
	IsDefaultMapping bool
}

// GetResolution returns the resolution for a value whose application type
// is already known to match this info (the static call site, spec §4.3).
func (ci *ConverterInfo) GetResolution() ConverterResolution {
	return ConverterResolution{Converter: ci.Converter, WireType: ci.PreferredWireType}
}

// GetResolutionAsObject is the dynamic/boxed equivalent of GetResolution,
// for call sites holding a boxed value (spec §4.3). This module's
// ConverterInfo does not need to inspect value at all — the converter was
// already chosen when the info was built — so this simply returns the same
// resolution; it exists to give dynamic call sites a symmetric entry point
// that does not need to know whether they are looking at a concrete T.
func (ci *ConverterInfo) GetResolutionAsObject(value interface{}) ConverterResolution {
	return ci.GetResolution()
}

// GetPreferredSize negotiates format (preferring preferredFormat if given
// and supported, falling back to the converter's own preferred format,
// failing with converr.FormatNotSupported if neither is supported — spec
// §4.3, testable property 6) and then runs the size phase. logger may be
// nil; it is the caller's (paramwriter.Writer's) logger, threaded through
// so the fallback branch in negotiateFormat can trace without this type
// needing a logger of its own (spec §2.1).
func (ci *ConverterInfo) GetPreferredSize(
	res ConverterResolution,
	value interface{},
	bufferLength int,
	preferredFormat *wire.DataFormat,
	logger convlog.Logger,
) (wire.ValueSize, convert.WriteState, wire.DataFormat, error) {
	format, err := negotiateFormat(res.Converter, ci.PreferredFormat, preferredFormat, logger)
	if err != nil {
		return wire.ValueSize{}, nil, 0, err
	}

	ctx := &convert.SizeContext{BufferLength: bufferLength, Format: format}
	size, err := res.Converter.GetSizeAny(ctx, value)
	if err != nil {
		return wire.ValueSize{}, nil, 0, err
	}
	return size, ctx.WriteStateOut, format, nil
}

func negotiateFormat(c BoxedConverter, converterPreferred wire.DataFormat, hint *wire.DataFormat, logger convlog.Logger) (wire.DataFormat, error) {
	if hint != nil {
		if c.CanConvert(*hint) {
			return *hint, nil
		}
		if c.CanConvert(converterPreferred) {
			traceFormatFallback(logger, *hint, converterPreferred)
			return converterPreferred, nil
		}
		return 0, converr.New(converr.FormatNotSupported, "", "", nil)
	}
	if c.CanConvert(converterPreferred) {
		return converterPreferred, nil
	}
	other := wire.Text
	if converterPreferred == wire.Text {
		other = wire.Binary
	}
	if c.CanConvert(other) {
		traceFormatFallback(logger, converterPreferred, other)
		return other, nil
	}
	return 0, converr.New(converr.FormatNotSupported, "", "", nil)
}

// traceFormatFallback logs the one branch of negotiateFormat where the
// format actually used differs from what was asked for or preferred (spec
// §2.1's format-negotiation fallback event). The happy path, where the
// first choice is honored, stays silent.
func traceFormatFallback(logger convlog.Logger, wanted, got wire.DataFormat) {
	if logger == nil {
		return
	}
	logger.Log(context.Background(), convlog.Trace, "format_fallback", map[string]any{
		"wanted": wanted.String(),
		"used":   got.String(),
	})
}
