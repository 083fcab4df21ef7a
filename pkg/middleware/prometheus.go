package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/yeisme/genomeinsight/pkg/metrics"
)

// PrometheusMiddleware Prometheus监控中间件，skip 路径（通常是指标端点本身）不计数.
func PrometheusMiddleware(skip ...string) gin.HandlerFunc {
	skipped := make(map[string]struct{}, len(skip))
	for _, p := range skip {
		skipped[p] = struct{}{}
	}

	return func(c *gin.Context) {
		if _, ok := skipped[c.Request.URL.Path]; ok {
			c.Next()
			return
		}

		start := time.Now()

		metrics.ActiveConnections.Inc()
		defer metrics.ActiveConnections.Dec()

		c.Next()

		// 使用路由模板，避免 /files/:id 产生大量标签
		endpoint := c.FullPath()
		if endpoint == "" {
			endpoint = "unmatched"
		}

		metrics.ObserveRequest(c.Request.Method, endpoint, c.Writer.Status(), time.Since(start))
	}
}
