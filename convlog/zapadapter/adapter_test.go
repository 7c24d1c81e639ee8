package zapadapter_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/jackc/pgxconv/convlog"
	"github.com/jackc/pgxconv/convlog/zapadapter"
)

func TestLogger(t *testing.T) {
	t.Run("info with fields", func(t *testing.T) {
		core, logs := observer.New(zap.InfoLevel)
		logger := zapadapter.NewLogger(zap.New(core))
		logger.Log(context.Background(), convlog.Info, "resolved", map[string]any{"wire_type": "int4"})

		entries := logs.All()
		require.Len(t, entries, 1)
		require.Equal(t, "resolved", entries[0].Message)
		require.Equal(t, "int4", entries[0].ContextMap()["wire_type"])
	})

	t.Run("debug and trace both collapse to debug level", func(t *testing.T) {
		core, logs := observer.New(zap.DebugLevel)
		logger := zapadapter.NewLogger(zap.New(core))
		logger.Log(context.Background(), convlog.Trace, "param_sized", nil)

		entries := logs.All()
		require.Len(t, entries, 1)
		require.Equal(t, zap.DebugLevel, entries[0].Level)
	})

	t.Run("none level is dropped", func(t *testing.T) {
		core, logs := observer.New(zap.DebugLevel)
		logger := zapadapter.NewLogger(zap.New(core))
		logger.Log(context.Background(), convlog.None, "ignored", nil)

		require.Empty(t, logs.All())
	})
}
