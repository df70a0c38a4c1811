// Package router 提供 HTTP 路由注册
// 本文件是路由注册的入口，聚合所有子模块的路由
package router

import (
	"bondhon_server/internal/handler"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes 注册所有路由
// 在 https_server.Init() 中调用
func RegisterRoutes(r *gin.Engine) {
	RegisterConnectionRoutes(r)   // 连接请求路由
	RegisterConversationRoutes(r) // 会话与好友路由
	RegisterMessageRoutes(r)      // 消息路由
	RegisterStatsRoutes(r)        // 统计路由

	// 健康检查不走认证
	r.GET("/health", handler.HealthHandler)
}
