package queue

import "time"

// FileUploadedPayload 新文件可供分析.
type FileUploadedPayload struct {
	FileID           string    `json:"file_id"`
	StoredFilename   string    `json:"stored_filename"`
	OriginalFilename string    `json:"original_filename"`
	StoragePath      string    `json:"storage_path"`
	StorageKind      string    `json:"storage_kind,omitempty"`
	FileSize         int64     `json:"file_size"`
	FileType         string    `json:"file_type"`
	Checksum         string    `json:"checksum,omitempty"`
	UploadedAt       time.Time `json:"uploaded_at"`
}

// FileStatusChangedPayload 处理状态变化.
type FileStatusChangedPayload struct {
	FileID       string `json:"file_id"`
	Status       string `json:"status"`
	ErrorMessage string `json:"error_message,omitempty"`
}

// FileDeletedPayload 记录被软删除，内容仍保留.
type FileDeletedPayload struct {
	FileID      string `json:"file_id"`
	StoragePath string `json:"storage_path"`
}
