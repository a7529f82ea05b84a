package memcache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStoreConsumeIsSingleUse(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	require.NoError(t, s.Set(ctx, ResetPrefix+"abc", "user-1", time.Minute))

	v, ok, err := s.Peek(ctx, ResetPrefix+"abc")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "user-1", v)

	v, ok, err = s.Consume(ctx, ResetPrefix+"abc")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "user-1", v)

	_, ok, _ = s.Consume(ctx, ResetPrefix+"abc")
	assert.False(t, ok)
}

func TestMemoryStoreExpiry(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	s := NewMemoryStore()
	s.now = func() time.Time { return now }

	require.NoError(t, s.Set(ctx, "k", "v", time.Minute))
	require.NoError(t, s.Set(ctx, "long", "v", time.Hour))

	now = now.Add(2 * time.Minute)

	_, ok, _ := s.Peek(ctx, "k")
	assert.False(t, ok)
	assert.Equal(t, 1, s.Sweep())

	_, ok, _ = s.Peek(ctx, "long")
	assert.True(t, ok)
}
