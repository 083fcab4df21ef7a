// Package router 管理路由配置，将 handle 中的处理器绑定到 gin 路由组.
package router

import (
	"github.com/gin-gonic/gin"

	"github.com/yeisme/genomeinsight/pkg/configs"
	"github.com/yeisme/genomeinsight/pkg/internal/handle"
	"github.com/yeisme/genomeinsight/pkg/middleware"
)

// RegisterFilesRoutes 注册文件相关路由：
//
//	POST   /files/upload      -> Upload（熔断保护）
//	GET    /files             -> List
//	GET    /files/:id         -> Get
//	DELETE /files/:id         -> Delete（admin）
//	PUT    /files/:id/status  -> UpdateStatus（analyst 及以上）
//	GET    /file-types        -> FileTypes
func RegisterFilesRoutes(g *gin.RouterGroup, h *handle.FileHandlers, cb configs.CircuitBreakerConfig) {
	filesRoutes := g.Group("/files")
	{
		filesRoutes.POST("/upload", middleware.CircuitBreakerMiddleware("upload", cb), h.Upload)
		filesRoutes.GET("", h.List)

		singleGroup := filesRoutes.Group("/:id")
		{
			singleGroup.GET("", h.Get)
			singleGroup.DELETE("", middleware.RequireMinRole(middleware.RoleAdmin), h.Delete)
			singleGroup.PUT("/status", middleware.RequireMinRole(middleware.RoleAnalyst), h.UpdateStatus)
		}
	}

	g.GET("/file-types", h.FileTypes)
}

// RegisterHealthCheckRoute 注册健康检查路由.
func RegisterHealthCheckRoute(g *gin.RouterGroup, health gin.HandlerFunc) {
	g.GET("/health", health)
}

// RegisterSchedulerRoutes 注册调度器管理路由，仅 admin 可访问.
func RegisterSchedulerRoutes(g *gin.RouterGroup, h *handle.SchedulerHandlers) {
	schedRoutes := g.Group("/scheduler", middleware.RequireMinRole(middleware.RoleAdmin))
	{
		schedRoutes.GET("/jobs", h.Jobs)
		schedRoutes.POST("/jobs/:name/run", h.Run)
	}
}
