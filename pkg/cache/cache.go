// Package cache 提供基于键值存储的泛型缓存实现.
//
// 底层使用 sonic 做 JSON 序列化，支持TTL（生存时间）设置.
//
// 基本用法:
//
//	c := cache.NewCache(mgr.KV, "file:", cfg.KV.TTL)
//
//	rec, err := cache.GetOrSet(ctx, c, id, func() (*model.UploadedFile, error) {
//	    return repo.Get(ctx, id)
//	})
//
//	// 数据变更后失效
//	_ = c.Delete(ctx, id)
//
// 缓存未命中返回 kv.ErrNotFound；GetOrSet 在写缓存失败时仍返回取到的值.
package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bytedance/sonic"

	"github.com/yeisme/genomeinsight/pkg/internal/storage/kv"
	nlog "github.com/yeisme/genomeinsight/pkg/log"
)

// Cache 基于KV存储的缓存实现.
type Cache struct {
	kvStore kv.KVStore
	prefix  string
	ttl     time.Duration
}

// NewCache 创建一个新的缓存实例，prefix 作为所有键的前缀，ttl 为默认过期时间.
func NewCache(kvStore kv.KVStore, prefix string, ttl time.Duration) *Cache {
	return &Cache{
		kvStore: kvStore,
		prefix:  prefix,
		ttl:     ttl,
	}
}

func (c *Cache) key(k string) string { return c.prefix + k }

// TTL 默认过期时间.
func (c *Cache) TTL() time.Duration { return c.ttl }

// Get 泛型获取缓存值.
func Get[T any](ctx context.Context, c *Cache, key string) (T, error) {
	var zero T

	data, err := c.kvStore.Get(ctx, c.key(key))
	if err != nil {
		return zero, err
	}

	var value T
	if err := sonic.Unmarshal(data, &value); err != nil {
		return zero, fmt.Errorf("failed to unmarshal cache value: %w", err)
	}

	return value, nil
}

// Set 泛型设置缓存值，ttl <= 0 时使用默认过期时间.
func Set[T any](ctx context.Context, c *Cache, key string, value T, ttl time.Duration) error {
	data, err := sonic.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal cache value: %w", err)
	}

	if ttl <= 0 {
		ttl = c.ttl
	}

	return c.kvStore.Set(ctx, c.key(key), data, ttl)
}

// Delete 删除缓存键.
func (c *Cache) Delete(ctx context.Context, key string) error {
	return c.kvStore.Delete(ctx, c.key(key))
}

// Exists 检查缓存键是否存在.
func (c *Cache) Exists(ctx context.Context, key string) (bool, error) {
	return c.kvStore.Exists(ctx, c.key(key))
}

// GetOrSet 获取缓存值，未命中时调用 getter 并回填.
// 缓存读写失败只记录日志，不影响返回结果.
func GetOrSet[T any](ctx context.Context, c *Cache, key string, getter func() (T, error)) (T, error) {
	var zero T

	value, err := Get[T](ctx, c, key)
	if err == nil {
		return value, nil
	}

	if !errors.Is(err, kv.ErrNotFound) {
		nlog.Logger().Warn().Err(err).Str("key", key).Msg("cache read failed")
	}

	value, err = getter()
	if err != nil {
		return zero, err
	}

	if setErr := Set(ctx, c, key, value, 0); setErr != nil {
		nlog.Logger().Warn().Err(setErr).Str("key", key).Msg("cache write failed")
	}

	return value, nil
}
