package router

import (
	"bondhon_server/internal/handler"
	"bondhon_server/internal/infrastructure/middleware"

	"github.com/gin-gonic/gin"
)

// RegisterMessageRoutes 注册消息相关路由
// 全部需要认证
func RegisterMessageRoutes(r *gin.Engine) {
	messageGroup := r.Group("/message")
	messageGroup.Use(middleware.JWTAuth())
	{
		messageGroup.POST("/send", handler.SendMessageHandler)
		messageGroup.GET("/list", handler.MessageListHandler)
		messageGroup.POST("/markRead", handler.MarkReadHandler)
		messageGroup.GET("/unreadCount", handler.UnreadCountHandler)
	}
}
