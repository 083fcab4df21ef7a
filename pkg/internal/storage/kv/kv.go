// Package kv 提供用于键值存储的接口和实现.
package kv

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/yeisme/genomeinsight/pkg/configs"
)

// ErrNotFound 键不存在或已过期.
var ErrNotFound = errors.New("key not found")

// KVStore 定义键值存储接口.
type KVStore interface {
	// Get 获取键的值，不存在时返回 ErrNotFound.
	Get(ctx context.Context, key string) ([]byte, error)
	// Set 设置键的值，ttl <= 0 表示不过期.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	// Delete 删除键.
	Delete(ctx context.Context, key string) error
	// Exists 检查键是否存在.
	Exists(ctx context.Context, key string) (bool, error)
	// Close 关闭存储连接.
	Close() error
}

// KVFactory 定义创建 KVStore 的工厂函数类型.
type KVFactory func(ctx context.Context, cfg configs.KVConfig) (KVStore, error)

var (
	factoriesMu sync.RWMutex
	kvFactories = make(map[configs.KVType]KVFactory)
)

// RegisterKVFactory 注册 KV 工厂函数.
func RegisterKVFactory(kvType configs.KVType, factory KVFactory) {
	factoriesMu.Lock()
	defer factoriesMu.Unlock()

	kvFactories[kvType] = factory
}

// GetRegisteredKVTypes 返回已注册的 KV 类型列表.
func GetRegisteredKVTypes() []configs.KVType {
	factoriesMu.RLock()
	defer factoriesMu.RUnlock()

	types := make([]configs.KVType, 0, len(kvFactories))
	for kvType := range kvFactories {
		types = append(types, kvType)
	}

	sort.Slice(types, func(i, j int) bool { return types[i] < types[j] })

	return types
}

// New 根据配置创建 KVStore 实例.
func New(ctx context.Context, cfg configs.KVConfig) (KVStore, error) {
	kvType := cfg.Type
	if kvType == "" {
		kvType = configs.KVMemory
	}

	factoriesMu.RLock()
	factory, exists := kvFactories[kvType]
	factoriesMu.RUnlock()

	if !exists {
		return nil, fmt.Errorf("unsupported KV type: %s", kvType)
	}

	return factory(ctx, cfg)
}
