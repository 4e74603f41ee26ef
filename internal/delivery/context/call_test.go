package context

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestCallID(t *testing.T) {
	ctx := context.Background()
	assert.Empty(t, GetCallID(ctx))

	id := NewCallID()
	_, err := uuid.Parse(id)
	assert.NoError(t, err)

	assert.Equal(t, id, GetCallID(WithCallID(ctx, id)))
}

func TestGetLoggerOrDefault(t *testing.T) {
	fallback := slog.New(slog.NewTextHandler(io.Discard, nil))
	scoped := fallback.With(slog.String("callID", "abc"))

	ctx := context.Background()
	assert.Nil(t, GetLogger(ctx))
	assert.Same(t, fallback, GetLoggerOrDefault(ctx, fallback))

	ctx = WithLogger(ctx, scoped)
	assert.Same(t, scoped, GetLoggerOrDefault(ctx, fallback))
}
