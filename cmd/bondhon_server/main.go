package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"bondhon_server/internal/config"
	dao "bondhon_server/internal/dao/mysql"
	myredis "bondhon_server/internal/dao/redis"
	"bondhon_server/internal/handler"
	"bondhon_server/internal/https_server"
	"bondhon_server/internal/infrastructure/logger"
	"bondhon_server/internal/service"
	"bondhon_server/pkg/util/jwt"
	"bondhon_server/pkg/util/snowflake"

	"go.uber.org/zap"
)

func main() {
	// 1. 加载配置
	conf := config.GetConfig()

	// 2. 初始化日志
	if err := logger.Init(&conf.LogConfig, "dev"); err != nil {
		log.Fatalf("init logger failed: %v", err)
	}
	zap.L().Info("日志初始化成功")

	// 3. 初始化参数校验翻译器
	if err := handler.InitTrans("zh"); err != nil {
		zap.L().Fatal("翻译器初始化失败", zap.Error(err))
	}

	// 4. 初始化数据库
	dao.Init()
	zap.L().Info("数据库初始化成功")

	// 5. 初始化 Redis
	myredis.Init()
	zap.L().Info("Redis 初始化成功")

	// 6. 初始化 JWT 与雪花节点
	jwt.Init(conf.JWTConfig.Secret, conf.JWTConfig.AccessTokenExpiry, conf.JWTConfig.RefreshTokenExpiry)
	snowflake.Init()

	// 7. 初始化 Service 层 (依赖注入)
	service.InitServices()
	zap.L().Info("Service 层初始化成功")

	// 8. 初始化 HTTP 服务器
	engine := https_server.Init()
	zap.L().Info("HTTP 服务器初始化成功")

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", conf.MainConfig.Host, conf.MainConfig.Port),
		Handler: engine,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zap.L().Fatal("server running fault", zap.Error(err))
		}
	}()
	zap.L().Info("服务已启动", zap.String("addr", srv.Addr))

	// 等待退出信号，优雅关闭
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zap.L().Info("关闭服务器...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		zap.L().Error("服务器关闭异常", zap.Error(err))
	}

	zap.L().Info("服务器已关闭")
}
