// Package wire defines the data-format, size, and flush-mode vocabulary the
// conversion subsystem shares with its writer/reader collaborators, plus the
// writer/reader contracts themselves (spec §6).
//
// Grounded on github.com/jackc/pgx/v5's message_writer.go and chunkreader.go
// and the github.com/jackc/pgio big-endian helpers.
package wire

import "github.com/jackc/pgxconv/converr"

// DataFormat is the wire encoding PostgreSQL negotiates per parameter/column.
type DataFormat int16

const (
	Text   DataFormat = 0
	Binary DataFormat = 1
)

func (f DataFormat) String() string {
	if f == Binary {
		return "binary"
	}
	return "text"
}

// sizeKind discriminates ValueSize's three variants.
type sizeKind uint8

const (
	sizeExact sizeKind = iota
	sizeUpperBound
	sizeUnknown
)

// ValueSize is the result of a converter's size phase: either an exact byte
// count, an upper bound, or "unknown" (the converter must be consulted again
// or streamed). n is always >= 0.
type ValueSize struct {
	kind sizeKind
	n    int
}

// Exact reports a size phase that determined the write phase will emit
// exactly n bytes.
func Exact(n int) ValueSize { return ValueSize{kind: sizeExact, n: n} }

// UpperBound reports a size phase that can only bound the write phase's
// output at n bytes or fewer.
func UpperBound(n int) ValueSize { return ValueSize{kind: sizeUpperBound, n: n} }

// Unknown reports a size phase that could not determine a bound.
func Unknown() ValueSize { return ValueSize{kind: sizeUnknown} }

func (s ValueSize) IsExact() bool      { return s.kind == sizeExact }
func (s ValueSize) IsUpperBound() bool { return s.kind == sizeUpperBound }
func (s ValueSize) IsUnknown() bool    { return s.kind == sizeUnknown }

// N returns the byte count for Exact or UpperBound sizes. It is 0 for
// Unknown.
func (s ValueSize) N() int { return s.n }

// FlushMode tags a Writer with whether flushing is permitted, and if so
// whether it must be driven synchronously or asynchronously.
type FlushMode uint8

const (
	// FlushNone permits no flushing; all writes accumulate in memory. Used
	// for buffered parameter capture (see paramwriter.Capture).
	FlushNone FlushMode = iota
	// FlushBlocking permits only the synchronous Flush.
	FlushBlocking
	// FlushNonBlocking permits only the asynchronous FlushAsync.
	FlushNonBlocking
)

// CheckFlush returns converr.WrongFlushMode if the writer's mode does not
// match wantBlocking (true = synchronous call site, false = asynchronous).
func CheckFlush(mode FlushMode, wantBlocking bool) error {
	switch mode {
	case FlushBlocking:
		if !wantBlocking {
			return converr.New(converr.WrongFlushMode, "", "", nil)
		}
	case FlushNonBlocking:
		if wantBlocking {
			return converr.New(converr.WrongFlushMode, "", "", nil)
		}
	case FlushNone:
		return converr.New(converr.WrongFlushMode, "", "", nil)
	}
	return nil
}
