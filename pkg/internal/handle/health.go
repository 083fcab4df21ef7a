package handle

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/yeisme/genomeinsight/pkg/internal/types"
	"github.com/yeisme/genomeinsight/pkg/log"
)

const healthTimeout = 2 * time.Second

// HealthChecker 检查依赖是否可用，由 storage.Manager 实现.
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

// Health 返回健康检查处理器.
//
//	@Summary		健康检查
//	@Tags			系统
//	@Produce		json
//	@Success		200	{object}	types.HealthResponse
//	@Failure		503	{object}	types.HealthResponse
//	@Router			/api/v1/health [get]
func Health(checker HealthChecker, blobKind, mqKind string) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), healthTimeout)
		defer cancel()

		resp := types.HealthResponse{Status: "ok", DB: "ok", Blob: blobKind, MQ: mqKind}

		if err := checker.HealthCheck(ctx); err != nil {
			log.Logger().Warn().Err(err).Msg("health check failed")

			resp.Status = "unhealthy"
			resp.DB = "unavailable"
			resp.Error = "dependency unreachable"
			c.JSON(http.StatusServiceUnavailable, resp)

			return
		}

		c.JSON(http.StatusOK, resp)
	}
}
