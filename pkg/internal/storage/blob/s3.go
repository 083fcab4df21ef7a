package blob

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	minio "github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/yeisme/genomeinsight/pkg/configs"
	nlog "github.com/yeisme/genomeinsight/pkg/log"
)

// S3 基于 MinIO 客户端的对象存储.
type S3 struct {
	client   *minio.Client
	bucket   string
	prefix   string
	partSize uint64
}

var _ Store = (*S3)(nil)

// NewS3 初始化 MinIO 客户端，若 bucket 不存在则尝试创建.
func NewS3(ctx context.Context, cfg configs.S3Config) (*S3, error) {
	endpoint := cfg.Endpoint
	// 允许用户传完整 schema endpoint（http:// 或 https://）
	if u, err := url.Parse(endpoint); err == nil && u.Host != "" {
		endpoint = u.Host
		if u.Scheme == "https" {
			cfg.UseSSL = true
		}
	}

	cli, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		Secure: cfg.UseSSL,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("create minio client: %w", err)
	}

	cli.SetAppInfo("genomeinsight", configs.AppVersion)

	exists, err := cli.BucketExists(ctx, cfg.BucketName)
	if err != nil {
		return nil, fmt.Errorf("check bucket %s: %w", cfg.BucketName, err)
	}

	if !exists {
		if err := cli.MakeBucket(ctx, cfg.BucketName, minio.MakeBucketOptions{Region: cfg.Region}); err != nil {
			return nil, fmt.Errorf("create bucket %s: %w", cfg.BucketName, err)
		}

		nlog.Logger().Info().Str("bucket", cfg.BucketName).Msg("bucket created")
	}

	nlog.Logger().Info().Str("endpoint", cfg.Endpoint).Str("bucket", cfg.BucketName).Msg("s3 connected")

	partSize := cfg.PartSize
	if partSize == 0 {
		partSize = configs.DefaultS3PartSize
	}

	return &S3{client: cli, bucket: cfg.BucketName, prefix: cfg.Prefix, partSize: partSize}, nil
}

func (s *S3) Kind() string { return "s3" }

func (s *S3) key(p string) (string, error) {
	cleaned, err := cleanPath(p)
	if err != nil {
		return "", err
	}

	return s.prefix + cleaned, nil
}

// Write 上传内容；大小未知时按分片流式上传.
// 给定 sizeHint 时必须与内容长度一致，内容更长会被视为写入失败并删除已上传对象.
func (s *S3) Write(ctx context.Context, p string, r io.Reader, sizeHint int64) (int64, error) {
	key, err := s.key(p)
	if err != nil {
		return 0, err
	}

	size := sizeHint
	if size <= 0 {
		size = -1
	}

	src := ctxReader{ctx: ctx, r: r}

	info, err := s.client.PutObject(ctx, s.bucket, key, src, size, minio.PutObjectOptions{
		ContentType: "application/octet-stream",
		PartSize:    s.partSize,
	})
	if err != nil {
		return 0, fmt.Errorf("put object %s: %w", p, err)
	}

	if size > 0 {
		var extra [1]byte
		if n, _ := io.ReadFull(src, extra[:]); n > 0 {
			_ = s.client.RemoveObject(context.WithoutCancel(ctx), s.bucket, key, minio.RemoveObjectOptions{})

			return info.Size, fmt.Errorf("put object %s: content longer than declared %d bytes", p, sizeHint)
		}
	}

	return info.Size, nil
}

func (s *S3) Delete(ctx context.Context, p string) error {
	key, err := s.key(p)
	if err != nil {
		return err
	}

	if err := s.client.RemoveObject(ctx, s.bucket, key, minio.RemoveObjectOptions{}); err != nil && !isNotFound(err) {
		return fmt.Errorf("remove object %s: %w", p, err)
	}

	return nil
}

func (s *S3) Exists(ctx context.Context, p string) (bool, error) {
	key, err := s.key(p)
	if err != nil {
		return false, err
	}

	if _, err := s.client.StatObject(ctx, s.bucket, key, minio.StatObjectOptions{}); err != nil {
		if isNotFound(err) {
			return false, nil
		}

		return false, fmt.Errorf("stat object %s: %w", p, err)
	}

	return true, nil
}

func (s *S3) Open(ctx context.Context, p string) (io.ReadCloser, error) {
	key, err := s.key(p)
	if err != nil {
		return nil, err
	}

	obj, err := s.client.GetObject(ctx, s.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("get object %s: %w", p, err)
	}

	// GetObject 是惰性的，Stat 才能发现对象不存在
	if _, err := obj.Stat(); err != nil {
		obj.Close()

		if isNotFound(err) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, p)
		}

		return nil, fmt.Errorf("stat object %s: %w", p, err)
	}

	return obj, nil
}

func (s *S3) Walk(ctx context.Context, fn func(ObjectInfo) error) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	for obj := range s.client.ListObjects(ctx, s.bucket, minio.ListObjectsOptions{Prefix: s.prefix, Recursive: true}) {
		if obj.Err != nil {
			return fmt.Errorf("list objects: %w", obj.Err)
		}

		if err := fn(ObjectInfo{
			Path:    strings.TrimPrefix(obj.Key, s.prefix),
			Size:    obj.Size,
			ModTime: obj.LastModified,
		}); err != nil {
			return err
		}
	}

	return nil
}

// HealthCheck 检查 bucket 是否可访问.
func (s *S3) HealthCheck(ctx context.Context) error {
	ok, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return err
	}

	if !ok {
		return fmt.Errorf("bucket %s does not exist", s.bucket)
	}

	return nil
}

func isNotFound(err error) bool {
	var resp minio.ErrorResponse
	if errors.As(err, &resp) {
		return resp.Code == "NoSuchKey" || resp.StatusCode == http.StatusNotFound
	}

	return minio.ToErrorResponse(err).Code == "NoSuchKey"
}
