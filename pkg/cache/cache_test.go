package cache_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yeisme/genomeinsight/pkg/cache"
	"github.com/yeisme/genomeinsight/pkg/configs"
	"github.com/yeisme/genomeinsight/pkg/internal/storage/kv"
)

type sample struct {
	ID    string `json:"id"`
	Count int    `json:"count"`
}

func newCache(t *testing.T) (*cache.Cache, kv.KVStore) {
	t.Helper()

	store, err := kv.NewMemoryKV(context.Background(), configs.KVConfig{})
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	return cache.NewCache(store, "test:", time.Minute), store
}

func TestSetGet(t *testing.T) {
	c, store := newCache(t)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, c, "a", sample{ID: "a", Count: 3}, 0))

	got, err := cache.Get[sample](ctx, c, "a")
	require.NoError(t, err)
	assert.Equal(t, sample{ID: "a", Count: 3}, got)

	// 键带前缀
	ok, err := store.Exists(ctx, "test:a")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestGetMiss(t *testing.T) {
	c, _ := newCache(t)

	_, err := cache.Get[sample](context.Background(), c, "missing")
	assert.ErrorIs(t, err, kv.ErrNotFound)
}

func TestDelete(t *testing.T) {
	c, _ := newCache(t)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, c, "a", sample{ID: "a"}, 0))
	require.NoError(t, c.Delete(ctx, "a"))

	ok, err := c.Exists(ctx, "a")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestGetOrSet(t *testing.T) {
	c, _ := newCache(t)
	ctx := context.Background()

	calls := 0
	getter := func() (sample, error) {
		calls++
		return sample{ID: "x", Count: calls}, nil
	}

	first, err := cache.GetOrSet(ctx, c, "x", getter)
	require.NoError(t, err)
	second, err := cache.GetOrSet(ctx, c, "x", getter)
	require.NoError(t, err)

	assert.Equal(t, 1, calls)
	assert.Equal(t, first, second)
}

func TestGetOrSetGetterError(t *testing.T) {
	c, _ := newCache(t)
	ctx := context.Background()

	boom := errors.New("boom")
	_, err := cache.GetOrSet(ctx, c, "y", func() (sample, error) { return sample{}, boom })
	assert.ErrorIs(t, err, boom)

	ok, err := c.Exists(ctx, "y")
	require.NoError(t, err)
	assert.False(t, ok)
}

func BenchmarkGetOrSet(b *testing.B) {
	store, _ := kv.NewMemoryKV(context.Background(), configs.KVConfig{})
	c := cache.NewCache(store, "bench:", time.Minute)
	ctx := context.Background()

	for b.Loop() {
		_, _ = cache.GetOrSet(ctx, c, "k", func() (sample, error) { return sample{ID: "k"}, nil })
	}
}
