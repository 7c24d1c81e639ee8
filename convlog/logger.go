// Package convlog defines the logging seam the resolver chain and
// parameter writer emit Trace/Debug events through (spec §2.1). No core
// package in this module imports a concrete logging backend; callers plug
// one in via convlog/zerologadapter or convlog/zapadapter.
//
// Grounded on github.com/jackc/pgx/v4's Logger interface and LogLevel
// constants (logger.go), generalized from its Debug/Info/Warn/Error
// methods to a single Log(ctx, level, msg, data) call so backend adapters
// need only one method each.
package convlog

import "context"

// Level mirrors pgx's LogLevel ordering (Trace is the most verbose).
type Level int

const (
	None Level = iota
	Error
	Warn
	Info
	Debug
	Trace
)

func (l Level) String() string {
	switch l {
	case Trace:
		return "trace"
	case Debug:
		return "debug"
	case Info:
		return "info"
	case Warn:
		return "warn"
	case Error:
		return "error"
	default:
		return "none"
	}
}

// Logger is the interface the resolver chain and parameter writer log
// through. data is nil-safe; implementations should treat a nil map as
// "no fields".
type Logger interface {
	Log(ctx context.Context, level Level, msg string, data map[string]any)
}

// NopLogger discards everything. Passing it instead of nil silences a
// component while still calling Log. The converters' Write/Read paths
// never log; paramwriter.Writer.Size traces once per sized or null
// parameter when its Logger is non-nil.
type NopLogger struct{}

func (NopLogger) Log(context.Context, Level, string, map[string]any) {}
