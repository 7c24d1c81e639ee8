package builtin

import (
	"context"

	"github.com/jackc/pgxconv/convert"
	"github.com/jackc/pgxconv/converr"
	"github.com/jackc/pgxconv/wire"
)

// Text is the shared read-only-memory text converter (spec §4.5 "Text
// path"): every string-like application type resolves to an adapter
// wrapping this single converter rather than each getting its own codec.
// Grounded on github.com/jackc/pgx/v5/pgtype/text.go and the teacher's use
// of ReadOnlyMemory<char> in the distilled source's text path.
//
// Encoding defaults to wire.UTF8 when nil; set it to a
// golang.org/x/text/encoding charset (via wire.FromXText) to target a
// different server client_encoding.
type Text struct {
	Encoding wire.Encoding
}

func (t Text) encoding() wire.Encoding {
	if t.Encoding != nil {
		return t.Encoding
	}
	return wire.UTF8
}

func (Text) CanConvert(format wire.DataFormat) bool {
	return format == wire.Text || format == wire.Binary
}
func (Text) NullPredicateKind() convert.DbNullPredicateKind { return convert.PredicateNone }
func (Text) IsDbNull(v string) bool                           { return false }

func (t Text) GetSize(ctx *convert.SizeContext, v string) (wire.ValueSize, error) {
	if t.Encoding == nil {
		return wire.Exact(len(v)), nil
	}
	dst := make([]byte, len(v)*4)
	n, err := t.Encoding.Encode(dst, v)
	if err != nil {
		return wire.ValueSize{}, converr.Wrap(err, converr.InvalidWireData, "text", "", nil)
	}
	return wire.Exact(n), nil
}

func (t Text) Write(w wire.Writer, v string, _ convert.WriteState) error {
	return w.WriteText(v, t.encoding())
}

func (t Text) WriteAsync(ctx context.Context, w wire.Writer, v string, state convert.WriteState) error {
	_, err := w.WriteTextResumable(v, t.encoding(), nil)
	return err
}

func (Text) ReadN(r wire.Reader, n int) (string, error) {
	span, err := r.ReadBytes(n)
	if err != nil {
		return "", converr.Wrap(err, converr.InvalidWireData, "text", "", nil)
	}
	return string(span), nil
}

// Read satisfies convert.Converter[string] for call sites with a
// self-describing length elsewhere (e.g. inside Array, which supplies n via
// its own per-element length prefix through ReadN instead). Top-level text
// columns are read by the command-pipeline layer (out of scope, spec §1)
// which knows the column's length from the row descriptor and calls ReadN.
func (t Text) Read(r wire.Reader) (string, error) {
	return "", converr.New(converr.InvalidWireData, "text", "", "Read requires a known length; use ReadN")
}

func (t Text) ReadAsync(ctx context.Context, r wire.Reader) (string, error) {
	return t.Read(r)
}

// RuneSlice adapts Text for the []rune application type (spec §4.5 "char
// sequence").
type RuneSlice struct{ Inner Text }

func (RuneSlice) CanConvert(format wire.DataFormat) bool { return Text{}.CanConvert(format) }
func (RuneSlice) NullPredicateKind() convert.DbNullPredicateKind {
	return convert.PredicateDefault
}
func (RuneSlice) IsDbNull(v []rune) bool { return v == nil }

func (r RuneSlice) GetSize(ctx *convert.SizeContext, v []rune) (wire.ValueSize, error) {
	return r.Inner.GetSize(ctx, string(v))
}

func (r RuneSlice) Write(w wire.Writer, v []rune, state convert.WriteState) error {
	return r.Inner.Write(w, string(v), state)
}

func (r RuneSlice) WriteAsync(ctx context.Context, w wire.Writer, v []rune, state convert.WriteState) error {
	return r.Inner.WriteAsync(ctx, w, string(v), state)
}

func (r RuneSlice) ReadN(rd wire.Reader, n int) ([]rune, error) {
	s, err := r.Inner.ReadN(rd, n)
	if err != nil {
		return nil, err
	}
	return []rune(s), nil
}

func (r RuneSlice) Read(rd wire.Reader) ([]rune, error) {
	s, err := r.Inner.Read(rd)
	if err != nil {
		return nil, err
	}
	return []rune(s), nil
}

func (r RuneSlice) ReadAsync(ctx context.Context, rd wire.Reader) ([]rune, error) {
	return r.Read(rd)
}

// Rune adapts Text for a single rune application type (spec §4.5 "single
// char").
type Rune struct{ Inner Text }

func (Rune) CanConvert(format wire.DataFormat) bool { return Text{}.CanConvert(format) }
func (Rune) NullPredicateKind() convert.DbNullPredicateKind {
	return convert.PredicateNone
}
func (Rune) IsDbNull(rune) bool { return false }

func (r Rune) GetSize(ctx *convert.SizeContext, v rune) (wire.ValueSize, error) {
	return r.Inner.GetSize(ctx, string(v))
}

func (r Rune) Write(w wire.Writer, v rune, state convert.WriteState) error {
	return r.Inner.Write(w, string(v), state)
}

func (r Rune) WriteAsync(ctx context.Context, w wire.Writer, v rune, state convert.WriteState) error {
	return r.Inner.WriteAsync(ctx, w, string(v), state)
}

func (r Rune) ReadN(rd wire.Reader, n int) (rune, error) {
	s, err := r.Inner.ReadN(rd, n)
	if err != nil {
		return 0, err
	}
	for _, c := range s {
		return c, nil
	}
	return 0, converr.New(converr.InvalidWireData, "text", "", nil)
}

func (r Rune) Read(rd wire.Reader) (rune, error) { return 0, converr.New(converr.InvalidWireData, "text", "", "Read requires a known length; use ReadN") }

func (r Rune) ReadAsync(ctx context.Context, rd wire.Reader) (rune, error) { return r.Read(rd) }
