package middleware

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/yeisme/genomeinsight/pkg/configs"
)

const corsMaxAge = 12 * time.Hour

// CORSMiddleware CORS中间件，调试模式允许所有来源.
func CORSMiddleware(cfg configs.ServerConfig) gin.HandlerFunc {
	config := cors.DefaultConfig()
	config.AllowMethods = []string{"GET", "POST", "DELETE", "OPTIONS"}
	config.AllowHeaders = append(config.AllowHeaders, "X-Role")
	config.MaxAge = corsMaxAge

	if cfg.Debug || len(cfg.AllowOrigins) == 0 {
		config.AllowAllOrigins = true
	} else {
		config.AllowOrigins = cfg.AllowOrigins
	}

	return cors.New(config)
}
