package validate

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/gabriel-vasile/mimetype"
)

// BGZFMIME 块压缩 gzip（htslib bgzip）的 MIME 类型.
const BGZFMIME = "application/x-bgzip"

var bgzfOnce sync.Once

// registerBGZF 在 gzip 节点下注册 BGZF 识别，只执行一次.
func registerBGZF() {
	bgzfOnce.Do(func() {
		mimetype.Lookup("application/gzip").Extend(isBGZF, BGZFMIME, ".bgz")
	})
}

// isBGZF 判断 gzip 头部是否带有 BC 额外字段.
func isBGZF(raw []byte, _ uint32) bool {
	return len(raw) >= 14 &&
		raw[0] == 0x1f && raw[1] == 0x8b &&
		raw[3]&0x04 != 0 &&
		raw[12] == 'B' && raw[13] == 'C'
}

// Source 提供待嗅探内容的存储.
type Source interface {
	Exists(ctx context.Context, path string) (bool, error)
	Open(ctx context.Context, path string) (io.ReadCloser, error)
}

// sniff 读取内容头部识别 MIME 类型.
func sniff(ctx context.Context, src Source, path string) (*mimetype.MIME, error) {
	rc, err := src.Open(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer rc.Close()

	m, err := mimetype.DetectReader(rc)
	if err != nil {
		return nil, fmt.Errorf("detect %s: %w", path, err)
	}

	return m, nil
}
