// Package middleware 提供 gin 中间件：访问日志、追踪、指标、CORS、压缩、限流、熔断与角色校验.
package middleware

import (
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"

	"github.com/yeisme/genomeinsight/pkg/configs"
)

// Default 返回全局中间件链，顺序即执行顺序.
func Default(cfg *configs.AppConfig) []gin.HandlerFunc {
	chain := []gin.HandlerFunc{
		gin.Recovery(),
		TracingMiddleware(),
		GinLoggerMiddleware(),
	}

	if cfg.Metrics.Enabled {
		chain = append(chain, PrometheusMiddleware(cfg.Metrics.Path))
	}

	return append(chain,
		CORSMiddleware(cfg.Server),
		GzipMiddleware(),
		RateLimitMiddleware(cfg.RateLimit),
		RoleMiddleware(),
	)
}

// GzipMiddleware 压缩响应，上传接口的请求体不受影响.
func GzipMiddleware() gin.HandlerFunc {
	return gzip.Gzip(gzip.DefaultCompression, gzip.WithExcludedPaths([]string{"/metrics"}))
}
