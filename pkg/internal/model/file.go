// Package model 定义持久化的数据模型.
package model

import (
	crand "crypto/rand"
	"sync"
	"time"

	"github.com/oklog/ulid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/yeisme/genomeinsight/pkg/internal/genomics"
	"github.com/yeisme/genomeinsight/pkg/internal/validate"
)

// Status 文件处理状态.
type Status string

const (
	StatusUploaded   Status = "uploaded"
	StatusProcessing Status = "processing"
	StatusProcessed  Status = "processed"
	StatusError      Status = "error"
	StatusDeleted    Status = "deleted"
)

// Valid 判断是否为已知状态.
func (s Status) Valid() bool {
	switch s {
	case StatusUploaded, StatusProcessing, StatusProcessed, StatusError, StatusDeleted:
		return true
	default:
		return false
	}
}

// UploadedFile 已通过校验并写入存储的上传文件.
type UploadedFile struct {
	ID               string                              `gorm:"primaryKey;size:26"                                                          json:"id"`
	StoredFilename   string                              `gorm:"size:512;not null;uniqueIndex"                                               json:"stored_filename"`
	OriginalFilename string                              `gorm:"size:512;not null"                                                           json:"original_filename"`
	StoragePath      string                              `gorm:"size:1024;not null;index"                                                    json:"storage_path"`
	FileSize         int64                               `gorm:"not null;check:chk_uploaded_files_size,file_size >= 0"                       json:"file_size"`
	FileType         genomics.Category                   `gorm:"size:32;not null;index:idx_type_status,priority:1"                           json:"file_type"`
	Status           Status                              `gorm:"size:16;not null;index:idx_status_uploaded,priority:1;index:idx_type_status,priority:2" json:"status"`
	ValidationResult datatypes.JSONType[validate.Verdict] `json:"validation_result"`
	// 下游分析写入的结果，结构不做约束
	AnalysisResults datatypes.JSON `json:"analysis_results,omitempty"`
	ErrorMessage    *string        `gorm:"type:text"                                          json:"error_message,omitempty"`
	SampleCount     *int           `json:"sample_count,omitempty"`
	VariantCount    *int64         `json:"variant_count,omitempty"`
	UploadedAt      time.Time      `gorm:"autoCreateTime;index:idx_status_uploaded,priority:2" json:"uploaded_at"`
	UpdatedAt       time.Time      `gorm:"autoUpdateTime"                                     json:"updated_at"`
	IsDeleted       bool           `gorm:"not null;default:false;index"                       json:"-"`
}

// TableName 表名.
func (UploadedFile) TableName() string { return "uploaded_files" }

// BeforeCreate 在插入前生成 ID.
func (f *UploadedFile) BeforeCreate(_ *gorm.DB) error {
	if f.ID == "" {
		f.ID = NewID(time.Now())
	}

	return nil
}

// Verdict 返回保存的校验结果.
func (f *UploadedFile) Verdict() validate.Verdict {
	return f.ValidationResult.Data()
}

var (
	idMu      sync.Mutex
	idEntropy = ulid.Monotonic(crand.Reader, 0)
)

// NewID 生成按时间排序的 ULID.
func NewID(t time.Time) string {
	idMu.Lock()
	defer idMu.Unlock()

	return ulid.MustNew(ulid.Timestamp(t), idEntropy).String()
}

// AllModels 需要自动迁移的模型.
func AllModels() []any {
	return []any{&UploadedFile{}}
}
