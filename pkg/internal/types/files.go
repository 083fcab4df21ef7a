// Package types 定义 HTTP 接口的请求与响应结构.
package types

import (
	"time"

	"gorm.io/datatypes"

	"github.com/yeisme/genomeinsight/pkg/internal/genomics"
	"github.com/yeisme/genomeinsight/pkg/internal/model"
	"github.com/yeisme/genomeinsight/pkg/internal/validate"
)

// UploadFileResponse 上传成功.
type UploadFileResponse struct {
	ID               string            `json:"id"`
	StoredFilename   string            `json:"stored_filename"`
	OriginalFilename string            `json:"original_filename"`
	FileSize         int64             `json:"file_size"`
	FileType         genomics.Category `json:"file_type"`
	Status           model.Status      `json:"status"`
	UploadedAt       time.Time         `json:"uploaded_at"`
	Validation       validate.Verdict  `json:"validation"`
}

// NewUploadFileResponse 由新建的记录构造响应.
func NewUploadFileResponse(f *model.UploadedFile) UploadFileResponse {
	return UploadFileResponse{
		ID:               f.ID,
		StoredFilename:   f.StoredFilename,
		OriginalFilename: f.OriginalFilename,
		FileSize:         f.FileSize,
		FileType:         f.FileType,
		Status:           f.Status,
		UploadedAt:       f.UploadedAt,
		Validation:       f.Verdict(),
	}
}

// ListFilesQuery 列表查询参数.
type ListFilesQuery struct {
	Status   string `form:"status"    rule:"omitempty,oneof=uploaded processing processed error"`
	FileType string `form:"file_type" rule:"omitempty,file_category"`
	Limit    int    `form:"limit"     rule:"omitempty,min=0,max=500"`
	Offset   int    `form:"offset"    rule:"omitempty,min=0"`
}

// FileSummary 列表中的单个文件.
type FileSummary struct {
	ID               string            `json:"id"`
	StoredFilename   string            `json:"stored_filename"`
	OriginalFilename string            `json:"original_filename"`
	FileSize         int64             `json:"file_size"`
	FileType         genomics.Category `json:"file_type"`
	Status           model.Status      `json:"status"`
	UploadedAt       time.Time         `json:"uploaded_at"`
	UpdatedAt        time.Time         `json:"updated_at"`
}

// NewFileSummary 由记录构造列表项.
func NewFileSummary(f *model.UploadedFile) FileSummary {
	return FileSummary{
		ID:               f.ID,
		StoredFilename:   f.StoredFilename,
		OriginalFilename: f.OriginalFilename,
		FileSize:         f.FileSize,
		FileType:         f.FileType,
		Status:           f.Status,
		UploadedAt:       f.UploadedAt,
		UpdatedAt:        f.UpdatedAt,
	}
}

// ListFilesResponse 分页列表.
type ListFilesResponse struct {
	Files  []FileSummary `json:"files"`
	Total  int64         `json:"total"`
	Limit  int           `json:"limit"`
	Offset int           `json:"offset"`
}

// FileDetail 单个文件详情，包含校验结果与分析结果.
type FileDetail struct {
	FileSummary

	StoragePath      string           `json:"storage_path"`
	ValidationResult validate.Verdict `json:"validation_result"`
	AnalysisResults  datatypes.JSON   `json:"analysis_results,omitempty"`
	ErrorMessage     *string          `json:"error_message,omitempty"`
	SampleCount      *int             `json:"sample_count,omitempty"`
	VariantCount     *int64           `json:"variant_count,omitempty"`
}

// NewFileDetail 由记录构造详情.
func NewFileDetail(f *model.UploadedFile) FileDetail {
	d := FileDetail{
		FileSummary:      NewFileSummary(f),
		StoragePath:      f.StoragePath,
		ValidationResult: f.Verdict(),
		ErrorMessage:     f.ErrorMessage,
		SampleCount:      f.SampleCount,
		VariantCount:     f.VariantCount,
	}

	// 缓存反序列化后空值会变成 null
	if len(f.AnalysisResults) > 0 && string(f.AnalysisResults) != "null" {
		d.AnalysisResults = f.AnalysisResults
	}

	return d
}

// UpdateStatusRequest 下游任务回写处理状态.
type UpdateStatusRequest struct {
	Status       string  `json:"status"        rule:"required,oneof=uploaded processing processed error"`
	ErrorMessage *string `json:"error_message" rule:"omitempty,max=4096"`
}

// FileTypesResponse 支持的文件类型.
type FileTypesResponse struct {
	Categories map[genomics.Category][]string `json:"categories"`
	Extensions []string                       `json:"extensions"`
}
