package logger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNew(t *testing.T) {
	t.Run("creates console logger", func(t *testing.T) {
		logger, err := New(&Config{Level: "debug", Format: "console", Output: "stdout", TimeFormat: "2006-01-02"})
		require.NoError(t, err)
		assert.NotNil(t, logger)
	})

	t.Run("creates json logger", func(t *testing.T) {
		logger, err := New(&Config{Level: "info", Format: "json", Output: "stderr", TimeFormat: "2006-01-02"})
		require.NoError(t, err)
		assert.NotNil(t, logger)
	})

	t.Run("unknown level defaults to info", func(t *testing.T) {
		assert.Equal(t, parseLevel("info"), parseLevel("bogus"))
	})
}

func TestNewForEnvironment(t *testing.T) {
	for _, env := range []string{"development", "production", "testing"} {
		logger, err := NewForEnvironment(env)
		require.NoError(t, err)
		assert.NotNil(t, logger)
	}
}

func TestContext(t *testing.T) {
	t.Run("round-trips logger through context", func(t *testing.T) {
		logger := zap.NewNop()
		ctx := WithContext(context.Background(), logger)
		assert.Same(t, logger, FromContext(ctx))
	})

	t.Run("returns no-op logger when absent", func(t *testing.T) {
		assert.NotNil(t, FromContext(context.Background()))
	})

	t.Run("carries request id", func(t *testing.T) {
		ctx, enriched := WithRequestID(context.Background(), zap.NewNop(), "req-1")
		assert.NotNil(t, enriched)
		assert.Equal(t, "req-1", GetRequestID(ctx))
	})

	t.Run("carries username", func(t *testing.T) {
		ctx, _ := WithUsername(context.Background(), zap.NewNop(), "shopuser")
		assert.Equal(t, "shopuser", GetUsername(ctx))
	})
}
