package service

import (
	"errors"
	"fmt"

	"github.com/yeisme/genomeinsight/pkg/internal/repository"
	"github.com/yeisme/genomeinsight/pkg/internal/validate"
)

var (
	// ErrNotFound 文件不存在或已被删除.
	ErrNotFound = repository.ErrNotFound
	// ErrInvalidArgument 查询或状态参数不合法.
	ErrInvalidArgument = errors.New("invalid argument")
)

// Kind 接收失败的类别.
type Kind string

const (
	// KindValidation 文件未通过校验，内容已删除.
	KindValidation Kind = "validation"
	// KindStorage 写入内容存储失败（包括客户端断开）.
	KindStorage Kind = "storage"
	// KindMetadata 写入元数据失败，内容已尽力删除.
	KindMetadata Kind = "metadata"
)

// IntakeError 文件接收失败.
type IntakeError struct {
	Kind    Kind
	Verdict *validate.Verdict // 仅 KindValidation 时非空
	Err     error
}

func (e *IntakeError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("intake %s failure", e.Kind)
	}

	return fmt.Sprintf("intake %s failure: %v", e.Kind, e.Err)
}

func (e *IntakeError) Unwrap() error { return e.Err }

// AsIntakeError 从错误链中取出 IntakeError.
func AsIntakeError(err error) (*IntakeError, bool) {
	var ie *IntakeError
	if errors.As(err, &ie) {
		return ie, true
	}

	return nil, false
}

// IsValidation 错误是否为校验失败.
func IsValidation(err error) bool {
	ie, ok := AsIntakeError(err)
	return ok && ie.Kind == KindValidation
}
