// Package zerologadapter provides a convlog.Logger that writes to a
// github.com/rs/zerolog.Logger.
//
// Grounded on github.com/jackc/pgx/v4/log/zerologadapter's adapter.go,
// generalized from pgx.LogLevel to convlog.Level.
package zerologadapter

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/jackc/pgxconv/convlog"
)

// Logger adapts a zerolog.Logger to convlog.Logger.
type Logger struct {
	logger zerolog.Logger
}

// NewLogger wraps logger, tagging every entry with module=pgxconv.
func NewLogger(logger zerolog.Logger) *Logger {
	return &Logger{logger: logger.With().Str("module", "pgxconv").Logger()}
}

func (l *Logger) Log(ctx context.Context, level convlog.Level, msg string, data map[string]any) {
	zlevel := zerolog.DebugLevel
	switch level {
	case convlog.None:
		zlevel = zerolog.NoLevel
	case convlog.Error:
		zlevel = zerolog.ErrorLevel
	case convlog.Warn:
		zlevel = zerolog.WarnLevel
	case convlog.Info:
		zlevel = zerolog.InfoLevel
	case convlog.Debug:
		zlevel = zerolog.DebugLevel
	case convlog.Trace:
		zlevel = zerolog.TraceLevel
	}

	entry := l.logger.With().Fields(data).Logger()
	entry.WithLevel(zlevel).Msg(msg)
}
