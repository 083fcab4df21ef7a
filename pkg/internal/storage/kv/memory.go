package kv

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/yeisme/genomeinsight/pkg/configs"
)

// memoryEntry 值与过期时间，expires 为零值表示不过期.
type memoryEntry struct {
	value   []byte
	expires time.Time
}

func (e memoryEntry) expired(now time.Time) bool {
	return !e.expires.IsZero() && !now.Before(e.expires)
}

// MemoryKV 进程内 KV，单实例部署时作为详情缓存.
// 过期条目在读取时惰性删除.
type MemoryKV struct {
	mu   sync.RWMutex
	data map[string]memoryEntry
	now  func() time.Time
}

// NewMemoryKV 创建内存 KV 实例.
func NewMemoryKV(context.Context, configs.KVConfig) (KVStore, error) {
	return newMemoryKV(time.Now), nil
}

func newMemoryKV(now func() time.Time) *MemoryKV {
	return &MemoryKV{data: make(map[string]memoryEntry), now: now}
}

func (m *MemoryKV) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.RLock()
	e, ok := m.data[key]
	m.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, key)
	}

	if e.expired(m.now()) {
		m.mu.Lock()
		if cur, ok := m.data[key]; ok && cur.expired(m.now()) {
			delete(m.data, key)
		}
		m.mu.Unlock()

		return nil, fmt.Errorf("%w: %s", ErrNotFound, key)
	}

	return append([]byte(nil), e.value...), nil
}

func (m *MemoryKV) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	e := memoryEntry{value: append([]byte(nil), value...)}
	if ttl > 0 {
		e.expires = m.now().Add(ttl)
	}

	m.mu.Lock()
	m.data[key] = e
	m.mu.Unlock()

	return nil
}

func (m *MemoryKV) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	delete(m.data, key)
	m.mu.Unlock()

	return nil
}

func (m *MemoryKV) Exists(ctx context.Context, key string) (bool, error) {
	if _, err := m.Get(ctx, key); err != nil {
		return false, nil
	}

	return true, nil
}

// Len 当前条目数（含尚未清理的过期条目）.
func (m *MemoryKV) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return len(m.data)
}

func (m *MemoryKV) Close() error {
	return nil
}

func init() {
	RegisterKVFactory(configs.KVMemory, NewMemoryKV)
}
