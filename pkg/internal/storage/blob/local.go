package blob

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

const tmpSuffix = ".tmp"

// Local 本地磁盘存储，写入采用临时文件 + fsync + 原子重命名.
type Local struct {
	root string
}

var _ Store = (*Local)(nil)

// NewLocal 创建本地存储，根目录不存在时自动创建.
func NewLocal(root string) (*Local, error) {
	if root == "" {
		return nil, errors.New("local storage root is empty")
	}

	if err := os.MkdirAll(root, 0o750); err != nil {
		return nil, fmt.Errorf("create storage root %s: %w", root, err)
	}

	return &Local{root: root}, nil
}

func (l *Local) Kind() string { return "local" }

// Root 返回根目录.
func (l *Local) Root() string { return l.root }

func (l *Local) fullPath(p string) (string, error) {
	cleaned, err := cleanPath(p)
	if err != nil {
		return "", err
	}

	return filepath.Join(l.root, filepath.FromSlash(cleaned)), nil
}

func (l *Local) Write(ctx context.Context, p string, r io.Reader, _ int64) (int64, error) {
	full, err := l.fullPath(p)
	if err != nil {
		return 0, err
	}

	if err := os.MkdirAll(filepath.Dir(full), 0o750); err != nil {
		return 0, fmt.Errorf("create directory: %w", err)
	}

	f, err := os.CreateTemp(filepath.Dir(full), filepath.Base(full)+".*"+tmpSuffix)
	if err != nil {
		return 0, fmt.Errorf("create temp file: %w", err)
	}

	tmp := f.Name()

	size, err := io.Copy(f, ctxReader{ctx: ctx, r: r})
	if err != nil {
		f.Close()
		os.Remove(tmp)

		return size, fmt.Errorf("write data: %w", err)
	}

	if err := f.Sync(); err != nil {
		f.Close()
		os.Remove(tmp)

		return size, fmt.Errorf("fsync: %w", err)
	}

	if err := f.Close(); err != nil {
		os.Remove(tmp)

		return size, fmt.Errorf("close temp file: %w", err)
	}

	if err := os.Rename(tmp, full); err != nil {
		os.Remove(tmp)

		return size, fmt.Errorf("rename temp file: %w", err)
	}

	return size, nil
}

func (l *Local) Delete(_ context.Context, p string) error {
	full, err := l.fullPath(p)
	if err != nil {
		return err
	}

	if err := os.Remove(full); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("delete %s: %w", p, err)
	}

	return nil
}

func (l *Local) Exists(_ context.Context, p string) (bool, error) {
	full, err := l.fullPath(p)
	if err != nil {
		return false, err
	}

	info, err := os.Stat(full)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}

		return false, fmt.Errorf("stat %s: %w", p, err)
	}

	return info.Mode().IsRegular(), nil
}

func (l *Local) Open(_ context.Context, p string) (io.ReadCloser, error) {
	full, err := l.fullPath(p)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(full)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, p)
		}

		return nil, fmt.Errorf("open %s: %w", p, err)
	}

	return f, nil
}

// Walk 遍历根目录下的文件，跳过未完成的临时文件.
func (l *Local) Walk(ctx context.Context, fn func(ObjectInfo) error) error {
	return filepath.WalkDir(l.root, func(full string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}

		if d.IsDir() || strings.HasSuffix(d.Name(), tmpSuffix) {
			return nil
		}

		info, err := d.Info()
		if err != nil {
			return err
		}

		rel, err := filepath.Rel(l.root, full)
		if err != nil {
			return err
		}

		return fn(ObjectInfo{Path: filepath.ToSlash(rel), Size: info.Size(), ModTime: info.ModTime()})
	})
}
