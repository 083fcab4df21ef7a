package blob

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/cespare/xxhash/v2"
)

// Pending 已写入但尚未被元数据引用的内容.
// 在 Commit 之前调用 Release 会删除内容；Commit 之后 Release 不做任何事.
type Pending struct {
	store    Store
	path     string
	size     int64
	checksum string

	mu        sync.Mutex
	committed bool
	released  bool
}

// Stage 流式写入内容，同时计算实际字节数与 xxhash64 校验和.
// 写入失败时尽力删除已写入的部分并返回错误.
func Stage(ctx context.Context, store Store, path string, r io.Reader, sizeHint int64) (*Pending, error) {
	h := xxhash.New()

	n, err := store.Write(ctx, path, io.TeeReader(r, h), sizeHint)
	if err != nil {
		// 写入失败时上下文可能已取消，清理使用独立的上下文
		_ = store.Delete(context.WithoutCancel(ctx), path)

		return nil, err
	}

	return &Pending{
		store:    store,
		path:     path,
		size:     n,
		checksum: fmt.Sprintf("%016x", h.Sum64()),
	}, nil
}

func (p *Pending) Path() string     { return p.path }
func (p *Pending) Size() int64      { return p.size }
func (p *Pending) Checksum() string { return p.checksum }
func (p *Pending) Store() Store     { return p.store }

// Commit 标记内容已被元数据引用，之后不会再被 Release 删除.
func (p *Pending) Commit() {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.committed = true
}

// Committed 是否已提交.
func (p *Pending) Committed() bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.committed
}

// Release 删除未提交的内容，可重复调用. 删除不受 ctx 取消影响.
func (p *Pending) Release(ctx context.Context) error {
	p.mu.Lock()
	if p.committed || p.released {
		p.mu.Unlock()

		return nil
	}

	p.released = true
	p.mu.Unlock()

	if err := p.store.Delete(context.WithoutCancel(ctx), p.path); err != nil {
		return fmt.Errorf("release %s: %w", p.path, err)
	}

	return nil
}
