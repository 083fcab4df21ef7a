package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/ThreeDotsLabs/watermill/message"

	"github.com/yeisme/genomeinsight/pkg/cache"
	"github.com/yeisme/genomeinsight/pkg/internal/genomics"
	"github.com/yeisme/genomeinsight/pkg/internal/model"
	"github.com/yeisme/genomeinsight/pkg/internal/repository"
	nlog "github.com/yeisme/genomeinsight/pkg/log"
	"github.com/yeisme/genomeinsight/pkg/queue"
	"github.com/yeisme/genomeinsight/pkg/tracing"
)

// ListFilter 列表过滤条件.
type ListFilter = repository.Filter

// FileService 文件记录的查询与生命周期管理.
type FileService struct {
	files     MetadataStore
	cache     *cache.Cache
	publisher message.Publisher
}

// NewFileService 创建文件服务，cache 与 publisher 均可为空.
func NewFileService(files MetadataStore, c *cache.Cache, publisher message.Publisher) *FileService {
	return &FileService{files: files, cache: c, publisher: publisher}
}

// List 分页列出未删除的记录，按上传时间倒序.
// limit <= 0 使用默认值 50，最大 500.
func (fs *FileService) List(ctx context.Context, filter ListFilter, limit, offset int) ([]model.UploadedFile, int64, error) {
	if offset < 0 {
		return nil, 0, fmt.Errorf("%w: offset must be >= 0", ErrInvalidArgument)
	}

	if filter.Status != "" && !filter.Status.Valid() {
		return nil, 0, fmt.Errorf("%w: unknown status %q", ErrInvalidArgument, filter.Status)
	}

	if filter.FileType != "" && !filter.FileType.Valid() {
		return nil, 0, fmt.Errorf("%w: unknown file type %q", ErrInvalidArgument, filter.FileType)
	}

	ctx, span := tracing.StartSpan(ctx, "files.list")
	defer span.End()

	files, total, err := fs.files.Query(ctx, filter, repository.NormalizeLimit(limit), offset)
	tracing.RecordError(span, err)

	return files, total, err
}

// Get 获取单个记录，优先读缓存.
func (fs *FileService) Get(ctx context.Context, id string) (*model.UploadedFile, error) {
	ctx, span := tracing.StartSpan(ctx, "files.get")
	defer span.End()

	if fs.cache == nil {
		return fs.files.Get(ctx, id)
	}

	rec, err := cache.GetOrSet(ctx, fs.cache, id, func() (*model.UploadedFile, error) {
		return fs.files.Get(ctx, id)
	})
	if err != nil && !errors.Is(err, ErrNotFound) {
		tracing.RecordError(span, err)
	}

	return rec, err
}

// Delete 软删除记录，内容保留.
func (fs *FileService) Delete(ctx context.Context, id string) error {
	rec, err := fs.files.Get(ctx, id)
	if err != nil {
		return err
	}

	if err := fs.files.SoftDelete(ctx, id); err != nil {
		return err
	}

	fs.invalidate(ctx, id)

	fs.publish(func(pub message.Publisher) error {
		return queue.PublishFileDeleted(pub, queue.FileDeletedPayload{
			FileID:      id,
			StoragePath: rec.StoragePath,
		}, queue.WithProducer(Producer))
	})

	return nil
}

// UpdateStatus 更新处理状态，供下游分析任务使用.
func (fs *FileService) UpdateStatus(ctx context.Context, id string, status model.Status, errMsg *string) error {
	if !status.Valid() || status == model.StatusDeleted {
		return fmt.Errorf("%w: status %q cannot be set directly", ErrInvalidArgument, status)
	}

	if err := fs.files.UpdateStatus(ctx, id, status, errMsg); err != nil {
		return err
	}

	fs.invalidate(ctx, id)

	payload := queue.FileStatusChangedPayload{FileID: id, Status: string(status)}
	if errMsg != nil {
		payload.ErrorMessage = *errMsg
	}

	fs.publish(func(pub message.Publisher) error {
		return queue.PublishFileStatusChanged(pub, payload, queue.WithProducer(Producer))
	})

	return nil
}

// FileTypes 支持的扩展名，按类别分组.
func (fs *FileService) FileTypes() map[genomics.Category][]string {
	return genomics.ExtensionsByCategory()
}

func (fs *FileService) invalidate(ctx context.Context, id string) {
	if fs.cache == nil {
		return
	}

	if err := fs.cache.Delete(ctx, id); err != nil {
		nlog.Logger().Warn().Err(err).Str("id", id).Msg("cache invalidate failed")
	}
}

func (fs *FileService) publish(fn func(message.Publisher) error) {
	if fs.publisher == nil {
		return
	}

	if err := fn(fs.publisher); err != nil {
		nlog.Logger().Warn().Err(err).Msg("publish file event failed")
	}
}
