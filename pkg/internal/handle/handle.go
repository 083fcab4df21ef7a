// Package handle 提供 HTTP 请求处理器，只负责参数解析与响应映射，业务逻辑在 service 中.
package handle

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/yeisme/genomeinsight/pkg/internal/genomics"
	"github.com/yeisme/genomeinsight/pkg/internal/service"
	"github.com/yeisme/genomeinsight/pkg/internal/types"
	"github.com/yeisme/genomeinsight/pkg/log"
	"github.com/yeisme/genomeinsight/pkg/rule"
)

const msgInternal = "internal error"

func init() {
	// 查询参数中的文件类别
	err := rule.RegisterValidation("file_category", func(fl validator.FieldLevel) bool {
		cat := genomics.Category(fl.Field().String())
		return cat != genomics.Unknown && cat.Valid()
	})
	if err != nil {
		panic(fmt.Sprintf("register file_category validation: %v", err))
	}
}

// badRequest 参数错误，附带逐字段的校验信息.
func badRequest(c *gin.Context, err error) {
	resp := types.ErrorResponse{Error: "invalid request"}
	if details := rule.Errors(err); len(details) > 0 {
		resp.Details = details
	} else {
		resp.Error = err.Error()
	}

	c.JSON(http.StatusBadRequest, resp)
}

// serviceError 将业务错误映射为响应，内部错误只记录日志.
func serviceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, types.ErrorResponse{Error: "file not found"})
	case errors.Is(err, service.ErrInvalidArgument):
		c.JSON(http.StatusBadRequest, types.ErrorResponse{Error: err.Error()})
	default:
		_ = c.Error(err)

		log.Logger().Error().Err(err).Str("path", c.FullPath()).Msg("request failed")
		c.JSON(http.StatusInternalServerError, types.ErrorResponse{Error: msgInternal})
	}
}
