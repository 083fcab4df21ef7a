// Package blob 保存上传文件的原始内容，支持本地磁盘与 S3 (MinIO) 两种后端.
package blob

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/yeisme/genomeinsight/pkg/configs"
)

var (
	// ErrNotFound 内容不存在.
	ErrNotFound = errors.New("blob not found")
	// ErrInvalidPath 路径为空、为绝对路径或试图跳出根目录.
	ErrInvalidPath = errors.New("invalid blob path")
)

// ObjectInfo 存储中的一个对象.
type ObjectInfo struct {
	Path    string
	Size    int64
	ModTime time.Time
}

// Store 内容存储后端.
type Store interface {
	// Kind 返回后端类型，例如 local 或 s3.
	Kind() string
	// Write 流式写入内容并返回实际写入的字节数，sizeHint < 0 表示未知，否则必须是准确长度.
	Write(ctx context.Context, path string, r io.Reader, sizeHint int64) (int64, error)
	// Delete 删除内容，路径不存在时不返回错误.
	Delete(ctx context.Context, path string) error
	Exists(ctx context.Context, path string) (bool, error)
	Open(ctx context.Context, path string) (io.ReadCloser, error)
	// Walk 遍历所有对象，fn 返回错误时停止.
	Walk(ctx context.Context, fn func(ObjectInfo) error) error
}

// New 根据配置创建存储后端.
func New(ctx context.Context, cfg configs.StorageConfig) (Store, error) {
	switch cfg.Type {
	case configs.StorageLocal, "":
		return NewLocal(cfg.Local.Root)
	case configs.StorageS3:
		return NewS3(ctx, cfg.S3)
	default:
		return nil, fmt.Errorf("unsupported storage type: %s", cfg.Type)
	}
}

// cleanPath 规范化相对路径.
func cleanPath(p string) (string, error) {
	if p == "" || strings.HasPrefix(p, "/") || strings.Contains(p, "\\") {
		return "", fmt.Errorf("%w: %q", ErrInvalidPath, p)
	}

	cleaned := path.Clean(p)
	if cleaned == "." || cleaned == ".." || strings.HasPrefix(cleaned, "../") {
		return "", fmt.Errorf("%w: %q", ErrInvalidPath, p)
	}

	return cleaned, nil
}

// ctxReader 在上下文取消后停止读取，用于客户端断开时中止写入.
type ctxReader struct {
	ctx context.Context
	r   io.Reader
}

func (c ctxReader) Read(p []byte) (int, error) {
	if err := c.ctx.Err(); err != nil {
		return 0, err
	}

	return c.r.Read(p)
}
