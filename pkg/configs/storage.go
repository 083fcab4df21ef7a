package configs

import (
	"fmt"

	"github.com/spf13/viper"
)

// StorageType 文件内容存储后端类型.
type StorageType string

const (
	StorageLocal StorageType = "local"
	StorageS3    StorageType = "s3"
)

const (
	DefaultStorageType       = StorageLocal
	DefaultLocalRoot         = "uploads"           // 本地上传目录
	DefaultS3Endpoint        = "localhost:9000"    // 默认S3端点
	DefaultS3AccessKeyID     = "minioadmin"        // 默认访问密钥ID
	DefaultS3SecretAccessKey = "minioadmin"        // 默认秘密访问密钥
	DefaultS3UseSSL          = false               // 默认是否使用SSL
	DefaultS3BucketName      = "genomeinsight"     // 默认存储桶名称
	DefaultS3Region          = "us-east-1"         // 默认区域
	DefaultS3Prefix          = "uploads/"          // 对象键前缀
	DefaultS3PartSize        = 16 * 1024 * 1024    // 未知大小上传时的分片大小
)

type (
	// StorageConfig 文件内容存储配置.
	StorageConfig struct {
		Type  StorageType        `mapstructure:"type"  rule:"oneof=local s3"`
		Local LocalStorageConfig `mapstructure:"local"`
		S3    S3Config           `mapstructure:"s3"`
	}

	// LocalStorageConfig 本地磁盘存储配置.
	LocalStorageConfig struct {
		Root string `mapstructure:"root" rule:"required"`
	}

	// S3Config MinIO S3存储配置.
	S3Config struct {
		Endpoint        string `mapstructure:"endpoint"`
		AccessKeyID     string `mapstructure:"access_key_id"`
		SecretAccessKey string `mapstructure:"secret_access_key" json:"-"`
		UseSSL          bool   `mapstructure:"use_ssl"`
		BucketName      string `mapstructure:"bucket_name"`
		Region          string `mapstructure:"region"`
		Prefix          string `mapstructure:"prefix"`
		PartSize        uint64 `mapstructure:"part_size"         rule:"min=5242880"`
	}
)

// GetEndpointURL 获取完整的端点URL.
func (c *S3Config) GetEndpointURL() string {
	scheme := "http"
	if c.UseSSL {
		scheme = "https"
	}

	return fmt.Sprintf("%s://%s", scheme, c.Endpoint)
}

// setDefaults 设置存储配置的默认值.
func (c *StorageConfig) setDefaults(v *viper.Viper) {
	v.SetDefault("storage.type", DefaultStorageType)
	v.SetDefault("storage.local.root", DefaultLocalRoot)
	v.SetDefault("storage.s3.endpoint", DefaultS3Endpoint)
	v.SetDefault("storage.s3.access_key_id", DefaultS3AccessKeyID)
	v.SetDefault("storage.s3.secret_access_key", DefaultS3SecretAccessKey)
	v.SetDefault("storage.s3.use_ssl", DefaultS3UseSSL)
	v.SetDefault("storage.s3.bucket_name", DefaultS3BucketName)
	v.SetDefault("storage.s3.region", DefaultS3Region)
	v.SetDefault("storage.s3.prefix", DefaultS3Prefix)
	v.SetDefault("storage.s3.part_size", DefaultS3PartSize)
}
