//go:build !no_redis

package kv

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/yeisme/genomeinsight/pkg/configs"
)

const redisDialTimeout = 3 * time.Second

// RedisKV 基于 Redis 的详情缓存，多实例部署时共享.
type RedisKV struct {
	client *redis.Client
	prefix string
}

// NewRedisKV 连接 Redis 并确认可用.
func NewRedisKV(ctx context.Context, cfg configs.KVConfig) (KVStore, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:        cfg.Redis.Addr,
		Password:    cfg.Redis.Password,
		DB:          cfg.Redis.DB,
		DialTimeout: redisDialTimeout,
	})

	kv := &RedisKV{client: rdb, prefix: cfg.Redis.Prefix}
	if err := kv.Ping(ctx); err != nil {
		_ = rdb.Close()
		return nil, err
	}

	return kv, nil
}

func (r *RedisKV) key(k string) string { return r.prefix + k }

// Ping 检查连接，健康检查使用.
func (r *RedisKV) Ping(ctx context.Context) error {
	if err := r.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping %s: %w", r.client.Options().Addr, err)
	}

	return nil
}

func (r *RedisKV) Get(ctx context.Context, key string) ([]byte, error) {
	b, err := r.client.Get(ctx, r.key(key)).Bytes()

	switch {
	case errors.Is(err, redis.Nil):
		return nil, fmt.Errorf("%w: %s", ErrNotFound, key)
	case err != nil:
		return nil, fmt.Errorf("redis get %s: %w", key, err)
	default:
		return b, nil
	}
}

// Set ttl <= 0 时不过期，由 redis 负责过期淘汰.
func (r *RedisKV) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if ttl < 0 {
		ttl = 0
	}

	if err := r.client.Set(ctx, r.key(key), value, ttl).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}

	return nil
}

func (r *RedisKV) Delete(ctx context.Context, key string) error {
	if err := r.client.Del(ctx, r.key(key)).Err(); err != nil {
		return fmt.Errorf("redis del %s: %w", key, err)
	}

	return nil
}

func (r *RedisKV) Exists(ctx context.Context, key string) (bool, error) {
	n, err := r.client.Exists(ctx, r.key(key)).Result()
	if err != nil {
		return false, fmt.Errorf("redis exists %s: %w", key, err)
	}

	return n > 0, nil
}

func (r *RedisKV) Close() error {
	return r.client.Close()
}

func init() {
	RegisterKVFactory(configs.KVRedis, NewRedisKV)
}
