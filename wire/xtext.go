package wire

import "golang.org/x/text/encoding"

// xtextEncoding adapts a golang.org/x/text/encoding.Encoding to this
// package's narrower Encoding interface, so write_text/write_text_resumable
// (spec §6) are not hardcoded to UTF-8 — any charset x/text supports (e.g.
// charmap.ISO8859_1, japanese.ShiftJIS) can be passed to a converter's Write
// as the encoding argument.
type xtextEncoding struct {
	name string
	enc  encoding.Encoding
}

// FromXText wraps enc (e.g. charmap.Windows1252, japanese.EUCJP) for use as
// a wire.Encoding, tagging it with name for diagnostics.
func FromXText(name string, enc encoding.Encoding) Encoding {
	return xtextEncoding{name: name, enc: enc}
}

func (x xtextEncoding) Name() string { return x.name }

func (x xtextEncoding) Encode(dst []byte, s string) (int, error) {
	out, err := x.enc.NewEncoder().Bytes([]byte(s))
	if err != nil {
		return 0, err
	}
	return copy(dst, out), nil
}
