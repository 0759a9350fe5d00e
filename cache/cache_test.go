package cache

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNoop(t *testing.T) {
	ctx := context.Background()
	owner := uuid.New()
	var c StatsCache = Noop{}

	require.NoError(t, c.Set(ctx, owner, "yearly", []int{1, 2}))

	var out []int
	found, err := c.Get(ctx, owner, "yearly", &out)
	require.NoError(t, err)
	assert.False(t, found)
	assert.Nil(t, out)
	assert.NoError(t, c.Invalidate(ctx, owner))
}

func TestKeys(t *testing.T) {
	owner := uuid.MustParse("7e1c6a52-8f52-4a55-9a8e-0c0f5d0d3c11")
	assert.Equal(t, "stats:7e1c6a52-8f52-4a55-9a8e-0c0f5d0d3c11:monthly:2024", entryKey(owner, "monthly:2024"))
	assert.Equal(t, "stats:7e1c6a52-8f52-4a55-9a8e-0c0f5d0d3c11:keys", indexKey(owner))
}

func TestNewRedisStatsCache_DefaultTTL(t *testing.T) {
	c := NewRedisStatsCache(nil, 0)
	assert.Equal(t, float64(300), c.ttl.Seconds())
}

var _ StatsCache = (*RedisStatsCache)(nil)
