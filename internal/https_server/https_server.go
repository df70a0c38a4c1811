// Package https_server 提供 HTTP 服务器的初始化和配置
// 负责创建 Gin 引擎实例并配置中间件和路由
package https_server

import (
	"bondhon_server/internal/infrastructure/logger"
	"bondhon_server/internal/router"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// Init 初始化 HTTP 服务器并返回 Gin 引擎实例
// 配置顺序：
//  1. 创建空白 Gin 引擎（不含默认中间件）
//  2. 注册日志和恢复中间件
//  3. 配置 CORS 跨域规则
//  4. 注册业务路由
func Init() *gin.Engine {
	engine := gin.New()

	// 自定义 Zap 日志中间件替代 Gin 默认的 Logger
	engine.Use(logger.GinLogger())
	// 参数 true 表示在日志中包含堆栈信息
	engine.Use(logger.GinRecovery(true))

	// CORS 跨域规则（生产环境应指定具体域名）
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{"*"}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization"}
	engine.Use(cors.New(corsConfig))

	// TLS 重定向中间件（由 Nginx 处理 SSL 时保持注释）
	// engine.Use(middleware.TlsHandler(config.GetConfig().MainConfig.Host, config.GetConfig().MainConfig.Port))

	router.RegisterRoutes(engine)

	return engine
}
