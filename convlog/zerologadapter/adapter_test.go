package zerologadapter_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/jackc/pgxconv/convlog"
	"github.com/jackc/pgxconv/convlog/zerologadapter"
)

func TestLogger(t *testing.T) {
	t.Run("tags module", func(t *testing.T) {
		var buf bytes.Buffer
		zlogger := zerolog.New(&buf)
		logger := zerologadapter.NewLogger(zlogger)
		logger.Log(context.Background(), convlog.Info, "resolved", map[string]any{"wire_type": "int4"})

		const want = `{"level":"info","module":"pgxconv","wire_type":"int4","message":"resolved"}
`
		require.Equal(t, want, buf.String())
	})

	t.Run("nil fields", func(t *testing.T) {
		var buf bytes.Buffer
		zlogger := zerolog.New(&buf)
		logger := zerologadapter.NewLogger(zlogger)
		logger.Log(context.Background(), convlog.Error, "boom", nil)

		const want = `{"level":"error","module":"pgxconv","message":"boom"}
`
		require.Equal(t, want, buf.String())
	})

	t.Run("trace maps to zerolog trace level", func(t *testing.T) {
		var buf bytes.Buffer
		zlogger := zerolog.New(&buf).Level(zerolog.TraceLevel)
		logger := zerologadapter.NewLogger(zlogger)
		logger.Log(context.Background(), convlog.Trace, "param_sized", nil)

		const want = `{"level":"trace","module":"pgxconv","message":"param_sized"}
`
		require.Equal(t, want, buf.String())
	})
}
