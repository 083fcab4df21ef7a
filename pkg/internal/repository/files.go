// Package repository 基于 gorm 实现上传文件元数据的持久化.
package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/yeisme/genomeinsight/pkg/internal/genomics"
	"github.com/yeisme/genomeinsight/pkg/internal/model"
)

// ErrNotFound 记录不存在或已被软删除.
var ErrNotFound = errors.New("file record not found")

const (
	DefaultLimit = 50
	MaxLimit     = 500
)

// Filter 列表过滤条件，零值表示不过滤.
type Filter struct {
	Status   model.Status
	FileType genomics.Category
}

// FileRepository 上传文件记录的存取.
type FileRepository struct {
	db *gorm.DB
}

// NewFileRepository 创建仓库.
func NewFileRepository(db *gorm.DB) *FileRepository {
	return &FileRepository{db: db}
}

// NormalizeLimit 将 limit 收敛到 [1, MaxLimit]，<= 0 使用默认值.
func NormalizeLimit(limit int) int {
	switch {
	case limit <= 0:
		return DefaultLimit
	case limit > MaxLimit:
		return MaxLimit
	default:
		return limit
	}
}

// Create 插入一条完整的记录，ID 与时间戳由插入过程生成.
func (r *FileRepository) Create(ctx context.Context, f *model.UploadedFile) error {
	if err := r.db.WithContext(ctx).Create(f).Error; err != nil {
		return fmt.Errorf("create file record: %w", err)
	}

	return nil
}

// Get 按 ID 获取未删除的记录.
func (r *FileRepository) Get(ctx context.Context, id string) (*model.UploadedFile, error) {
	var f model.UploadedFile

	err := r.db.WithContext(ctx).
		Where("id = ? AND is_deleted = ?", id, false).
		Take(&f).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("get file record %s: %w", id, err)
	}

	return &f, nil
}

// Query 分页查询，按上传时间倒序，返回当前页与匹配总数.
func (r *FileRepository) Query(ctx context.Context, filter Filter, limit, offset int) ([]model.UploadedFile, int64, error) {
	if offset < 0 {
		return nil, 0, fmt.Errorf("offset must be >= 0, got %d", offset)
	}

	q := r.db.WithContext(ctx).Model(&model.UploadedFile{}).Where("is_deleted = ?", false)

	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}

	if filter.FileType != "" {
		q = q.Where("file_type = ?", filter.FileType)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count file records: %w", err)
	}

	files := make([]model.UploadedFile, 0)
	if total == 0 {
		return files, 0, nil
	}

	if err := q.Order("uploaded_at DESC").Order("id DESC").
		Limit(NormalizeLimit(limit)).Offset(offset).
		Find(&files).Error; err != nil {
		return nil, 0, fmt.Errorf("query file records: %w", err)
	}

	return files, total, nil
}

// UpdateStatus 更新处理状态与错误信息.
func (r *FileRepository) UpdateStatus(ctx context.Context, id string, status model.Status, errMsg *string) error {
	if !status.Valid() {
		return fmt.Errorf("invalid status %q", status)
	}

	res := r.db.WithContext(ctx).Model(&model.UploadedFile{}).
		Where("id = ? AND is_deleted = ?", id, false).
		Updates(map[string]any{
			"status":        status,
			"error_message": errMsg,
			"updated_at":    time.Now(),
		})
	if res.Error != nil {
		return fmt.Errorf("update status %s: %w", id, res.Error)
	}

	if res.RowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}

// SoftDelete 标记删除并将状态置为 deleted，不移除行.
func (r *FileRepository) SoftDelete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Model(&model.UploadedFile{}).
		Where("id = ? AND is_deleted = ?", id, false).
		Updates(map[string]any{
			"is_deleted": true,
			"status":     model.StatusDeleted,
			"updated_at": time.Now(),
		})
	if res.Error != nil {
		return fmt.Errorf("soft delete %s: %w", id, res.Error)
	}

	if res.RowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}

// ExistsByStoragePath 判断是否有记录（包括已软删除的）引用该存储路径.
func (r *FileRepository) ExistsByStoragePath(ctx context.Context, path string) (bool, error) {
	var count int64

	if err := r.db.WithContext(ctx).Model(&model.UploadedFile{}).
		Where("storage_path = ?", path).
		Limit(1).
		Count(&count).Error; err != nil {
		return false, fmt.Errorf("lookup storage path: %w", err)
	}

	return count > 0, nil
}
