// Package service 实现文件接收与查询的业务逻辑，不处理 HTTP 细节.
//
// 依赖通过构造函数显式注入：
//
//	repo := repository.NewFileRepository(mgr.DB.DB)
//	intake := service.NewIntakeService(mgr.Blob, validate.NewFromConfig(cfg.Upload), repo, mgr.MQ.Publisher())
//	files := service.NewFileService(repo, cache.NewCache(mgr.KV, "file:", cfg.KV.TTL), mgr.MQ.Publisher())
package service

import (
	"context"

	"github.com/yeisme/genomeinsight/pkg/internal/model"
	"github.com/yeisme/genomeinsight/pkg/internal/repository"
)

// MetadataStore 文件元数据存储，由 repository.FileRepository 实现.
type MetadataStore interface {
	Create(ctx context.Context, f *model.UploadedFile) error
	Get(ctx context.Context, id string) (*model.UploadedFile, error)
	Query(ctx context.Context, filter repository.Filter, limit, offset int) ([]model.UploadedFile, int64, error)
	UpdateStatus(ctx context.Context, id string, status model.Status, errMsg *string) error
	SoftDelete(ctx context.Context, id string) error
	ExistsByStoragePath(ctx context.Context, path string) (bool, error)
}

var _ MetadataStore = (*repository.FileRepository)(nil)
