// Package converr defines the error kinds signalled by the conversion and
// parameter-binding subsystem.
package converr

import (
	"fmt"

	"github.com/pkg/errors"
)

// Kind identifies one of the error conditions the conversion subsystem can
// signal. Recovery is the caller's concern; nothing in this package retries.
type Kind int

const (
	UnknownType Kind = iota
	FormatNotSupported
	ValueOutOfRange
	InvalidWireData
	ConcurrentUse
	WrongFlushMode
	ResolutionFailed
)

func (k Kind) String() string {
	switch k {
	case UnknownType:
		return "unknown_type"
	case FormatNotSupported:
		return "format_not_supported"
	case ValueOutOfRange:
		return "value_out_of_range"
	case InvalidWireData:
		return "invalid_wire_data"
	case ConcurrentUse:
		return "concurrent_use"
	case WrongFlushMode:
		return "wrong_flush_mode"
	case ResolutionFailed:
		return "resolution_failed"
	default:
		return "unknown"
	}
}

// Error is returned for every failure raised by this module. It carries the
// wire type name, the application type name, and the offending value (when
// safely loggable) so that user-visible failures are self-describing.
type Error struct {
	Kind        Kind
	WireType    string
	AppType     string
	Value       interface{}
	HasValue    bool
	cause       error
}

func (e *Error) Error() string {
	msg := fmt.Sprintf("%s: wire type %q, application type %q", e.Kind, e.WireType, e.AppType)
	if e.HasValue {
		msg += fmt.Sprintf(", value %v", e.Value)
	}
	if e.cause != nil {
		msg += ": " + e.cause.Error()
	}
	return msg
}

func (e *Error) Unwrap() error { return e.cause }

// Is reports whether target is an *Error with the same Kind, so callers can
// use errors.Is(err, converr.New(converr.ValueOutOfRange, "", "", nil)).
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

// New builds an *Error without an underlying cause.
func New(kind Kind, wireType, appType string, value interface{}) *Error {
	return &Error{Kind: kind, WireType: wireType, AppType: appType, Value: value, HasValue: value != nil}
}

// Wrap attaches kind/wireType/appType context to cause, preserving it in the
// error chain via github.com/pkg/errors.
func Wrap(cause error, kind Kind, wireType, appType string, value interface{}) *Error {
	return &Error{
		Kind:     kind,
		WireType: wireType,
		AppType:  appType,
		Value:    value,
		HasValue: value != nil,
		cause:    errors.WithStack(cause),
	}
}
