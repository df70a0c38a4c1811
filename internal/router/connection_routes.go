package router

import (
	"bondhon_server/internal/handler"
	"bondhon_server/internal/infrastructure/middleware"

	"github.com/gin-gonic/gin"
)

// RegisterConnectionRoutes 注册连接请求相关路由
// 全部需要认证
func RegisterConnectionRoutes(r *gin.Engine) {
	connectionGroup := r.Group("/connection")
	connectionGroup.Use(middleware.JWTAuth())
	{
		connectionGroup.POST("/propose", handler.ProposeConnectionHandler)
		connectionGroup.POST("/respond", handler.RespondConnectionHandler)
		connectionGroup.POST("/cancel", handler.CancelConnectionHandler)
		connectionGroup.POST("/unfriend", handler.UnfriendConnectionHandler)
		connectionGroup.GET("/status", handler.RelationshipStatusHandler)
		connectionGroup.GET("/pending", handler.PendingConnectionListHandler)
	}
}
