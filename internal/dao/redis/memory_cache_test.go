package redis

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryCacheSetGet(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache()

	v, err := c.Get(ctx, "missing")
	require.NoError(t, err)
	assert.Empty(t, v)

	require.NoError(t, c.Set(ctx, "k", "v", 0))
	v, err = c.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "v", v)

	ok, err := c.Exists(ctx, "k")
	require.NoError(t, err)
	assert.True(t, ok)

	require.NoError(t, c.Delete(ctx, "k"))
	ok, _ = c.Exists(ctx, "k")
	assert.False(t, ok)
}

func TestMemoryCacheExpiry(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	c := NewMemoryCache()
	c.now = func() time.Time { return now }

	require.NoError(t, c.Set(ctx, "k", "v", time.Minute))
	ok, _ := c.Exists(ctx, "k")
	assert.True(t, ok)

	now = now.Add(time.Minute)
	ok, _ = c.Exists(ctx, "k")
	assert.False(t, ok)
}

func TestMemoryCacheDeleteByPattern(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache()
	require.NoError(t, c.Set(ctx, "pet_breeds_Dog", "a", 0))
	require.NoError(t, c.Set(ctx, "pet_breeds_Cat", "b", 0))
	require.NoError(t, c.Set(ctx, "pet_cities", "c", 0))

	require.NoError(t, c.DeleteByPattern(ctx, "pet_breeds_*"))

	ok, _ := c.Exists(ctx, "pet_breeds_Dog")
	assert.False(t, ok)
	ok, _ = c.Exists(ctx, "pet_breeds_Cat")
	assert.False(t, ok)
	ok, _ = c.Exists(ctx, "pet_cities")
	assert.True(t, ok)
}

func TestMemoryCacheSubmitTaskRecoversPanic(t *testing.T) {
	c := NewMemoryCache()
	var ran int32
	c.SubmitTask(func() { atomic.AddInt32(&ran, 1) })
	assert.NotPanics(t, func() { c.SubmitTask(func() { panic("boom") }) })
	assert.Equal(t, int32(1), atomic.LoadInt32(&ran))
}

func TestRedisCacheWorkersDrainOnClose(t *testing.T) {
	// 只验证 worker pool，不发起网络请求
	client := goredis.NewClient(&goredis.Options{Addr: "127.0.0.1:0"})
	rc := NewRedisCache(client, 2, 4)

	var ran int32
	for i := 0; i < 10; i++ {
		rc.SubmitTask(func() { atomic.AddInt32(&ran, 1) })
	}
	rc.SubmitTask(func() { panic("boom") })
	rc.Close()
	assert.Equal(t, int32(10), atomic.LoadInt32(&ran))
	assert.NotPanics(t, rc.Close)
}
