package validate

import (
	"math"

	"github.com/yeisme/genomeinsight/pkg/internal/genomics"
)

// Verdict 单次校验的结果，生成后不再修改.
type Verdict struct {
	IsValid  bool              `json:"is_valid"`
	FileType genomics.Category `json:"file_type,omitempty"`
	Errors   []string          `json:"errors"`
	Warnings []string          `json:"warnings"`
	Metadata Metadata          `json:"metadata"`
}

// Metadata 校验时收集的文件信息.
type Metadata struct {
	Extension string  `json:"extension"`
	SizeBytes int64   `json:"size_bytes"`
	SizeMB    float64 `json:"size_mb"`
	MIMEType  string  `json:"mime_type,omitempty"`
	Checksum  string  `json:"checksum,omitempty"`
}

// sizeMB 字节数换算为 MB，保留两位小数.
func sizeMB(size int64) float64 {
	return math.Round(float64(size)/(1024*1024)*100) / 100
}
