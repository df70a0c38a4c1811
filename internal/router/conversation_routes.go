package router

import (
	"bondhon_server/internal/handler"
	"bondhon_server/internal/infrastructure/middleware"

	"github.com/gin-gonic/gin"
)

// RegisterConversationRoutes 注册会话与好友列表路由
// 全部需要认证
func RegisterConversationRoutes(r *gin.Engine) {
	conversationGroup := r.Group("/conversation")
	conversationGroup.Use(middleware.JWTAuth())
	{
		conversationGroup.GET("/list", handler.ConversationListHandler)
	}

	friendGroup := r.Group("/friend")
	friendGroup.Use(middleware.JWTAuth())
	{
		friendGroup.GET("/list", handler.FriendListHandler)
	}
}
