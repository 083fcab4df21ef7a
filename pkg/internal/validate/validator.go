// Package validate 对上传的基因组文件执行扩展名、大小与内容嗅探校验.
//
// 所有检查都会执行并累积结果；只有未知扩展名与超限大小会使文件无效，
// 内容 MIME 不在白名单中只产生警告.
package validate

import (
	"context"
	"fmt"

	"github.com/yeisme/genomeinsight/pkg/configs"
	"github.com/yeisme/genomeinsight/pkg/internal/genomics"
	"github.com/yeisme/genomeinsight/pkg/log"
)

// contentSkipped 内容无法读取时的警告，不暴露存储细节.
const contentSkipped = "content check skipped: file content could not be read"

// Input 单次校验的输入.
type Input struct {
	Filename string // 客户端提供的原始文件名
	Size     int64  // 实际写入的字节数
	Path     string // 内容在 Source 中的路径
	Source   Source // 为空时跳过内容嗅探
	Checksum string // 写入时计算的校验和，可为空
}

// Validator 无状态校验器，可并发使用.
type Validator struct {
	maxFileSize int64
	allowed     []string
}

// New 创建校验器，maxFileSize <= 0 时使用默认上限.
func New(maxFileSize int64, allowedMIMETypes []string) *Validator {
	registerBGZF()

	if maxFileSize <= 0 {
		maxFileSize = configs.DefaultMaxFileSize
	}

	if allowedMIMETypes == nil {
		allowedMIMETypes = configs.DefaultAllowedMIMETypes
	}

	return &Validator{
		maxFileSize: maxFileSize,
		allowed:     append([]string(nil), allowedMIMETypes...),
	}
}

// NewFromConfig 根据上传配置创建校验器.
func NewFromConfig(cfg configs.UploadConfig) *Validator {
	return New(cfg.MaxFileSize, cfg.AllowedMIMETypes)
}

// MaxFileSize 返回允许的最大文件字节数.
func (v *Validator) MaxFileSize() int64 { return v.maxFileSize }

// Validate 执行全部检查，永远返回结果而不是错误.
func (v *Validator) Validate(ctx context.Context, in Input) Verdict {
	verdict := Verdict{
		Errors:   []string{},
		Warnings: []string{},
	}

	ext, cat := genomics.Classify(in.Filename)
	if cat == genomics.Unknown {
		shown := ext
		if shown == "" {
			shown = "(none)"
		}

		verdict.Errors = append(verdict.Errors, fmt.Sprintf("unsupported file extension: %q", shown))
	} else {
		verdict.FileType = cat
	}

	if in.Size > v.maxFileSize {
		verdict.Errors = append(verdict.Errors,
			fmt.Sprintf("file size %d bytes exceeds maximum allowed size %d bytes", in.Size, v.maxFileSize))
	}

	verdict.Metadata = Metadata{
		Extension: ext,
		SizeBytes: in.Size,
		SizeMB:    sizeMB(in.Size),
		Checksum:  in.Checksum,
	}

	if in.Source != nil {
		mime, warning := v.checkContent(ctx, in.Source, in.Path)
		verdict.Metadata.MIMEType = mime

		if warning != "" {
			verdict.Warnings = append(verdict.Warnings, warning)
		}
	}

	verdict.IsValid = len(verdict.Errors) == 0

	return verdict
}

// checkContent 嗅探内容，返回识别出的 MIME 与可能的警告.
func (v *Validator) checkContent(ctx context.Context, src Source, path string) (string, string) {
	ok, err := src.Exists(ctx, path)
	if err != nil {
		log.Logger().Warn().Err(err).Str("path", path).Msg("content check skipped")

		return "", contentSkipped
	}

	if !ok {
		return "", ""
	}

	m, err := sniff(ctx, src, path)
	if err != nil {
		log.Logger().Warn().Err(err).Str("path", path).Msg("content check skipped")

		return "", contentSkipped
	}

	for _, allowed := range v.allowed {
		if m.Is(allowed) {
			return m.String(), ""
		}
	}

	return m.String(), fmt.Sprintf("MIME type %q is not allowed; content may be corrupted or mismatched", m.String())
}
