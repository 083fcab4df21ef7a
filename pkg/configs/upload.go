package configs

import "github.com/spf13/viper"

const (
	// DefaultMaxFileSize 单个上传文件的最大字节数 (1GiB).
	DefaultMaxFileSize int64 = 1024 * 1024 * 1024
)

// DefaultAllowedMIMETypes 内容嗅探允许的 MIME 类型，不在列表中只产生警告.
var DefaultAllowedMIMETypes = []string{
	"application/gzip",
	"application/x-bgzip",
	"text/plain",
	"text/csv",
	"text/tab-separated-values",
	"application/octet-stream",
}

// UploadConfig 上传校验策略.
type UploadConfig struct {
	MaxFileSize      int64    `mapstructure:"max_file_size"      rule:"min=1"`
	AllowedMIMETypes []string `mapstructure:"allowed_mime_types" rule:"dive,required"`
}

func (c *UploadConfig) setDefaults(v *viper.Viper) {
	v.SetDefault("upload.max_file_size", DefaultMaxFileSize)
	v.SetDefault("upload.allowed_mime_types", DefaultAllowedMIMETypes)
}
