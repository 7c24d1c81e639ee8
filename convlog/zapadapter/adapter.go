// Package zapadapter provides a convlog.Logger that writes to a
// go.uber.org/zap.Logger.
//
// Grounded on the same adapter shape as convlog/zerologadapter (itself
// grounded on github.com/jackc/pgx/v4/log/zerologadapter), rewritten
// against zap's SugaredLogger field-pair API since zap has no direct
// map[string]any entry point.
package zapadapter

import (
	"context"

	"go.uber.org/zap"

	"github.com/jackc/pgxconv/convlog"
)

// Logger adapts a zap.Logger to convlog.Logger.
type Logger struct {
	logger *zap.SugaredLogger
}

// NewLogger wraps logger.
func NewLogger(logger *zap.Logger) *Logger {
	return &Logger{logger: logger.Sugar()}
}

func (l *Logger) Log(ctx context.Context, level convlog.Level, msg string, data map[string]any) {
	args := make([]interface{}, 0, 2*len(data))
	for k, v := range data {
		args = append(args, k, v)
	}
	switch level {
	case convlog.Error:
		l.logger.Errorw(msg, args...)
	case convlog.Warn:
		l.logger.Warnw(msg, args...)
	case convlog.Info:
		l.logger.Infow(msg, args...)
	case convlog.Debug, convlog.Trace:
		l.logger.Debugw(msg, args...)
	}
}
