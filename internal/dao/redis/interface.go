// Package redis 定义缓存服务接口
// 遵循依赖倒置原则，Service 层依赖此接口而非具体 Redis 实现
package redis

import (
	"context"
	"time"
)

// CacheService 缓存服务接口
// 读侧视图（会话列表、好友列表、未读角标、统计）的 cache-aside 都走这里
type CacheService interface {
	// Set 设置键值对并指定过期时间
	Set(ctx context.Context, key string, value string, ttl time.Duration) error
	// Get 获取键对应的值（键不存在返回空字符串和 nil）
	Get(ctx context.Context, key string) (string, error)
	// Delete 删除键（如果存在）
	Delete(ctx context.Context, key string) error
	// DeleteByPattern 删除匹配模式的所有键
	DeleteByPattern(ctx context.Context, pattern string) error
	// DeleteByPatterns 批量删除多个模式匹配的键
	DeleteByPatterns(ctx context.Context, patterns []string) error
}

// AsyncCacheService 异步缓存服务接口
// 提供异步任务提交能力，用于非阻塞的缓存回写与失效
type AsyncCacheService interface {
	CacheService
	// SubmitTask 提交异步缓存任务
	SubmitTask(action func())
}
