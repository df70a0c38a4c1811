package router

import (
	"bondhon_server/internal/handler"
	"bondhon_server/internal/infrastructure/middleware"

	"github.com/gin-gonic/gin"
)

// RegisterStatsRoutes 注册统计路由
func RegisterStatsRoutes(r *gin.Engine) {
	statsGroup := r.Group("/stats")
	statsGroup.Use(middleware.JWTAuth())
	{
		statsGroup.GET("", handler.StatsHandler)
	}
}
