package observability

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLogger_FormatAndLevel(t *testing.T) {
	buf := &bytes.Buffer{}
	logger := NewLogger(Settings{ServiceName: "inventory-api", LogLevel: "warn", LogFormat: "json", LogOutput: buf})

	logger.Info("hidden")
	logger.Warn("shown")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), `"msg":"shown"`)
	assert.Contains(t, buf.String(), `"service":"inventory-api"`)

	buf.Reset()
	NewLogger(Settings{LogFormat: "TEXT", LogOutput: buf}).Info("plain")
	assert.Contains(t, buf.String(), "msg=plain")
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, parseLevel("debug"))
	assert.Equal(t, slog.LevelError, parseLevel(" ERROR "))
	assert.Equal(t, slog.LevelInfo, parseLevel("loud"))
	assert.Equal(t, slog.LevelInfo, parseLevel(""))
}

func TestInit_WithoutCollector(t *testing.T) {
	t.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "")
	instruments, shutdown, err := Init(context.Background(), Settings{ServiceName: "inventory-api", LogOutput: &bytes.Buffer{}})
	require.NoError(t, err)
	t.Cleanup(func() { _ = shutdown(context.Background()) })

	_, span := instruments.Tracer("test").Start(context.Background(), "op")
	span.End()
	assert.NotNil(t, instruments.Meter("test"))
}
