package logger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNew(t *testing.T) {
	t.Run("dev", func(t *testing.T) {
		l, err := New(Options{Env: "dev", Level: "warn"})
		require.NoError(t, err)
		require.False(t, l.Desugar().Core().Enabled(zap.InfoLevel))
		require.True(t, l.Desugar().Core().Enabled(zap.WarnLevel))
	})

	t.Run("bad level", func(t *testing.T) {
		_, err := New(Options{Env: "prod", Level: "loud"})
		require.Error(t, err)
	})
}

func TestFromContext(t *testing.T) {
	t.Run("falls back to global", func(t *testing.T) {
		require.Equal(t, zap.S(), FromContext(context.Background()))
	})

	t.Run("returns attached logger", func(t *testing.T) {
		l := zap.NewNop().Sugar()
		ctx := WithContext(context.Background(), l)
		require.Same(t, l, FromContext(ctx))
	})
}
