package kv

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yeisme/genomeinsight/pkg/configs"
)

func TestRegisteredKVTypes(t *testing.T) {
	types := GetRegisteredKVTypes()
	assert.Contains(t, types, configs.KVMemory)
	assert.Contains(t, types, configs.KVNATS)
}

func TestNewUnknownType(t *testing.T) {
	_, err := New(context.Background(), configs.KVConfig{Type: "etcd"})
	assert.Error(t, err)
}

func TestMemoryKV(t *testing.T) {
	ctx := context.Background()

	store, err := New(ctx, configs.KVConfig{})
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	require.NoError(t, store.Set(ctx, "file:1", []byte(`{"id":"1"}`), 0))

	got, err := store.Get(ctx, "file:1")
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"1"}`, string(got))

	ok, err := store.Exists(ctx, "file:1")
	require.NoError(t, err)
	assert.True(t, ok)

	require.NoError(t, store.Delete(ctx, "file:1"))

	_, err = store.Get(ctx, "file:1")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryKVExpiry(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	store := newMemoryKV(func() time.Time { return now })

	require.NoError(t, store.Set(ctx, "k", []byte("v"), time.Minute))

	got, err := store.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("v"), got)

	now = now.Add(2 * time.Minute)

	_, err = store.Get(ctx, "k")
	assert.ErrorIs(t, err, ErrNotFound)

	ok, err := store.Exists(ctx, "k")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMemoryKVCopiesValues(t *testing.T) {
	ctx := context.Background()
	store := newMemoryKV(time.Now)

	in := []byte("abc")
	require.NoError(t, store.Set(ctx, "k", in, 0))
	in[0] = 'x'

	got, err := store.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("abc"), got)

	got[1] = 'y'

	again, err := store.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("abc"), again)
}

func TestMemoryKVExpiredEntryRemoved(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	store := newMemoryKV(func() time.Time { return now })

	require.NoError(t, store.Set(ctx, "old", []byte("v"), time.Second))
	require.NoError(t, store.Set(ctx, "forever", []byte("v"), 0))
	assert.Equal(t, 2, store.Len())

	now = now.Add(time.Hour)

	_, err := store.Get(ctx, "old")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, 1, store.Len())

	_, err = store.Get(ctx, "forever")
	assert.NoError(t, err)
}

// 设置 REDIS_ADDR 时运行.
func TestRedisKV(t *testing.T) {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		t.Skip("set REDIS_ADDR to enable")
	}

	ctx := context.Background()

	store, err := New(ctx, configs.KVConfig{Type: configs.KVRedis, Redis: configs.RedisKVConfig{Addr: addr, Prefix: "test:"}})
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	require.NoError(t, store.Set(ctx, "k", []byte("v"), time.Minute))

	got, err := store.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("v"), got)
	require.NoError(t, store.Delete(ctx, "k"))
}

// 设置 NATS_URL (需开启 JetStream) 时运行.
func TestNATSKV(t *testing.T) {
	url := os.Getenv("NATS_URL")
	if url == "" {
		t.Skip("set NATS_URL to enable")
	}

	ctx := context.Background()

	store, err := New(ctx, configs.KVConfig{
		Type: configs.KVNATS,
		TTL:  time.Minute,
		NATS: configs.NATSKVConfig{URL: url, Bucket: "genomeinsight_test"},
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	require.NoError(t, store.Set(ctx, "file:01J", []byte("v"), 0))

	got, err := store.Get(ctx, "file:01J")
	require.NoError(t, err)
	assert.Equal(t, []byte("v"), got)

	require.NoError(t, store.Delete(ctx, "file:01J"))

	ok, err := store.Exists(ctx, "file:01J")
	require.NoError(t, err)
	assert.False(t, ok)
}
