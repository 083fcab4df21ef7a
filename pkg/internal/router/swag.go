package router

import (
	"net"
	"strconv"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/yeisme/genomeinsight/docs"
	"github.com/yeisme/genomeinsight/pkg/configs"
)

// RegisterSwaggerRoute 注册 Swagger 文档路由，仅在调试模式下开放.
func RegisterSwaggerRoute(r *gin.Engine, cfg configs.ServerConfig) {
	if !cfg.Debug {
		return
	}

	docs.SwaggerInfo.Host = net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port))
	docs.SwaggerInfo.Version = configs.AppVersion

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}
