// Package redis 提供 Redis 缓存操作的封装
// 本文件仅包含 Redis 连接初始化逻辑
// 使用 github.com/redis/go-redis/v9 作为底层客户端
package redis

import (
	"strconv"

	"github.com/redis/go-redis/v9"

	"bondhon_server/internal/config"
)

// redisClient 全局 Redis 客户端实例（包内可见）
var redisClient *redis.Client

// cacheService 全局缓存服务实例，遵循依赖倒置原则
var cacheService AsyncCacheService

// Init 初始化 Redis 连接
// 从配置文件读取连接参数并创建客户端实例
func Init() {
	conf := config.GetConfig()
	addr := conf.RedisConfig.Host + ":" + strconv.Itoa(conf.RedisConfig.Port)

	redisClient = redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: conf.RedisConfig.Password,
		DB:       conf.RedisConfig.Db,
		// 连接池配置
		PoolSize:     50, // 最大连接数
		MinIdleConns: 15, // 最小空闲连接，与 Worker 数量匹配
	})

	// 启动 15 个 Worker，缓冲区大小 3000，供各 Service 共享
	cacheService = NewRedisCache(redisClient, 15, 3000)
}

// GetCacheService 获取缓存服务实例
// 返回 AsyncCacheService 接口，供 Service 层依赖注入使用
func GetCacheService() AsyncCacheService {
	return cacheService
}
