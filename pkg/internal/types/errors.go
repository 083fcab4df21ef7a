package types

import "github.com/yeisme/genomeinsight/pkg/scheduler"

// ErrorResponse 通用错误响应，不包含内部细节.
type ErrorResponse struct {
	Error   string            `json:"error"`
	Details map[string]string `json:"details,omitempty"`
}

// ValidationFailedResponse 上传未通过校验.
type ValidationFailedResponse struct {
	Error    string   `json:"error"`
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
}

// HealthResponse 健康检查结果.
type HealthResponse struct {
	Status string `json:"status"`
	DB     string `json:"db"`
	Blob   string `json:"blob"`
	MQ     string `json:"mq,omitempty"`
	Error  string `json:"error,omitempty"`
}

// SchedulerJobsResponse 定时任务列表.
type SchedulerJobsResponse struct {
	Jobs    []scheduler.JobInfo `json:"jobs"`
	Waiting int                 `json:"waiting"`
}
