package logger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetReturnsSingleton(t *testing.T) {
	first := Get()
	require.NotNil(t, first)
	assert.Same(t, first, Get())
}

func TestFromCtx(t *testing.T) {
	t.Run("empty context falls back to the default logger", func(t *testing.T) {
		assert.Same(t, Get(), FromCtx(context.Background()))
	})

	t.Run("attached logger is returned as-is", func(t *testing.T) {
		custom := Get().With("portal", "http://portal.local")
		ctx := WithCtx(context.Background(), custom)

		assert.Same(t, custom, FromCtx(ctx))
	})

	t.Run("extra fields derive a new logger", func(t *testing.T) {
		ctx := WithCtx(context.Background(), Get())

		derived := FromCtx(ctx, "channel", "Gemini TV HD")
		require.NotNil(t, derived)
		assert.NotSame(t, Get(), derived)
	})
}

func TestWithCtx(t *testing.T) {
	l := Get()
	ctx := WithCtx(context.Background(), l)

	assert.Same(t, l, FromCtx(ctx))

	// re-attaching the same logger must not grow the context chain
	assert.Same(t, ctx, WithCtx(ctx, l))
}
