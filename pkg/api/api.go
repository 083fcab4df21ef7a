// Package api 组装对外的 HTTP API，将各路由组挂载到 /api/v1.
package api

import (
	"github.com/gin-gonic/gin"

	"github.com/yeisme/genomeinsight/pkg/configs"
	"github.com/yeisme/genomeinsight/pkg/internal/handle"
	"github.com/yeisme/genomeinsight/pkg/internal/router"
	"github.com/yeisme/genomeinsight/pkg/metrics"
	"github.com/yeisme/genomeinsight/pkg/middleware"
)

// Prefix API 路径前缀.
const Prefix = "/api/v1"

// Handlers 由应用层创建并注入的处理器.
type Handlers struct {
	Files     *handle.FileHandlers
	Health    gin.HandlerFunc
	Scheduler *handle.SchedulerHandlers // 可选
}

// NewEngine 创建挂载了全局中间件、指标端点与全部路由的 gin 引擎.
func NewEngine(cfg *configs.AppConfig, h Handlers) *gin.Engine {
	engine := gin.New()
	engine.Use(middleware.Default(cfg)...)

	metrics.Register(engine, cfg.Metrics)
	router.RegisterSwaggerRoute(engine, cfg.Server)

	return RegisterGroup(engine, cfg, h)
}

// RegisterGroup 注册 /api/v1 路由组到传入的 gin 引擎.
func RegisterGroup(e *gin.Engine, cfg *configs.AppConfig, h Handlers) *gin.Engine {
	v1 := e.Group(Prefix)

	router.RegisterFilesRoutes(v1, h.Files, cfg.CircuitBreaker)
	router.RegisterHealthCheckRoute(v1, h.Health)

	if h.Scheduler != nil {
		router.RegisterSchedulerRoutes(v1, h.Scheduler)
	}

	return e
}
