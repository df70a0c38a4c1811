// Package redis 提供 Redis 缓存操作的封装
// 本文件包含 AsyncCacheService 的 go-redis 实现和异步任务 Worker Pool
package redis

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"bondhon_server/pkg/errorx"
)

// redisCache AsyncCacheService 的 go-redis 实现
type redisCache struct {
	client *redis.Client
	tasks  chan func() // 异步缓存任务队列
}

// NewRedisCache 创建缓存服务实例并启动 Worker Pool
// workers: 后台 Worker 数量
// queueSize: 任务队列缓冲区大小
func NewRedisCache(client *redis.Client, workers, queueSize int) AsyncCacheService {
	c := &redisCache{
		client: client,
		tasks:  make(chan func(), queueSize),
	}
	for i := 0; i < workers; i++ {
		go c.worker()
	}
	return c
}

// worker 消费异步任务，单个任务 panic 不拖垮整个 Pool
func (c *redisCache) worker() {
	for task := range c.tasks {
		func() {
			defer func() {
				if r := recover(); r != nil {
					zap.L().Error("cache task panic", zap.Any("recover", r))
				}
			}()
			task()
		}()
	}
}

// SubmitTask 提交异步缓存任务
// 队列满时直接丢弃并记日志：缓存回写是尽力而为的，不能反压业务请求
func (c *redisCache) SubmitTask(action func()) {
	select {
	case c.tasks <- action:
	default:
		zap.L().Warn("cache task queue full, task dropped")
	}
}

// Set 设置键值对并指定过期时间
func (c *redisCache) Set(ctx context.Context, key string, value string, ttl time.Duration) error {
	if err := c.client.Set(ctx, key, value, ttl).Err(); err != nil {
		return errorx.Wrapf(err, errorx.CodeCacheError, "redis set key %s", key)
	}
	return nil
}

// Get 获取键对应的值
// 键不存在返回空字符串和 nil（不视为错误）
func (c *redisCache) Get(ctx context.Context, key string) (string, error) {
	value, err := c.client.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", nil
		}
		return "", errorx.Wrapf(err, errorx.CodeCacheError, "redis get key %s", key)
	}
	return value, nil
}

// Delete 删除键（如果存在）
// 使用 UNLINK 而非 DEL，内存释放在后台线程完成
func (c *redisCache) Delete(ctx context.Context, key string) error {
	if err := c.client.Unlink(ctx, key).Err(); err != nil {
		return errorx.Wrapf(err, errorx.CodeCacheError, "redis unlink key %s", key)
	}
	return nil
}

// DeleteByPattern 删除匹配模式的所有键
// 使用 SCAN 分批扫描 + UNLINK 异步删除，避免阻塞 Redis
func (c *redisCache) DeleteByPattern(ctx context.Context, pattern string) error {
	var cursor uint64
	for {
		var keys []string
		var err error
		// 每次扫描 500 条，减少循环次数
		keys, cursor, err = c.client.Scan(ctx, cursor, pattern, 500).Result()
		if err != nil {
			return errorx.Wrapf(err, errorx.CodeCacheError, "redis scan pattern %s", pattern)
		}
		if len(keys) > 0 {
			if err := c.client.Unlink(ctx, keys...).Err(); err != nil {
				return errorx.Wrapf(err, errorx.CodeCacheError, "redis unlink keys with pattern %s", pattern)
			}
		}
		// cursor 为 0 表示扫描完成
		if cursor == 0 {
			break
		}
	}
	return nil
}

// DeleteByPatterns 批量删除多个模式匹配的键
func (c *redisCache) DeleteByPatterns(ctx context.Context, patterns []string) error {
	for _, pattern := range patterns {
		if err := c.DeleteByPattern(ctx, pattern); err != nil {
			return err
		}
	}
	return nil
}
