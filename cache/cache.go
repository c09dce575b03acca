// Package cache 列表页视图缓存。写操作按路径失效，失效后下一次读取重新查询。
package cache

import (
	"context"
	"encoding/json"
	"time"

	"dashboard/config"
	"dashboard/logger"

	"github.com/go-redis/redis/v8"
)

const keyPrefix = "view:"

// Views 视图缓存，同时作为写操作的 Revalidator
type Views interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, value []byte)
	Revalidate(ctx context.Context, path string)
}

// Key 视图缓存键：路径加查询串
func Key(path, rawQuery string) string {
	if rawQuery == "" {
		return keyPrefix + path
	}
	return keyPrefix + path + "?" + rawQuery
}

// New 根据配置创建缓存，未启用时返回 Noop
func New(cfg config.CacheConfig) Views {
	if !cfg.Enabled {
		return Noop{}
	}
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	return NewRedis(client, cfg.TTL())
}

// Noop 不缓存，每次读取都重新查询
type Noop struct{}

// Get 总是未命中
func (Noop) Get(context.Context, string) ([]byte, bool) { return nil, false }

// Set 空实现
func (Noop) Set(context.Context, string, []byte) {}

// Revalidate 空实现
func (Noop) Revalidate(context.Context, string) {}

// Redis 基于 Redis 的视图缓存
type Redis struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedis 创建 Redis 视图缓存
func NewRedis(client *redis.Client, ttl time.Duration) *Redis {
	return &Redis{client: client, ttl: ttl}
}

// Get 读取缓存，Redis 不可用时按未命中处理
func (r *Redis) Get(ctx context.Context, key string) ([]byte, bool) {
	b, err := r.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		logger.WithComponent("cache").WithError(err).WithField("key", key).Warn("cache get failed")
		return nil, false
	}
	return b, true
}

// Set 写入缓存
func (r *Redis) Set(ctx context.Context, key string, value []byte) {
	if err := r.client.Set(ctx, key, value, r.ttl).Err(); err != nil {
		logger.WithComponent("cache").WithError(err).WithField("key", key).Warn("cache set failed")
	}
}

// Revalidate 删除 path 下的全部缓存视图
func (r *Redis) Revalidate(ctx context.Context, path string) {
	log := logger.WithComponent("cache").WithField("path", path)

	var keys []string
	iter := r.client.Scan(ctx, 0, keyPrefix+path+"*", 100).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		log.WithError(err).Warn("cache scan failed")
		return
	}
	if len(keys) == 0 {
		return
	}
	if err := r.client.Del(ctx, keys...).Err(); err != nil {
		log.WithError(err).Warn("cache revalidate failed")
		return
	}
	log.WithField("keys", len(keys)).Debug("views revalidated")
}

// Remember 命中时解码缓存，否则调用 load 并写回缓存
func Remember[T any](ctx context.Context, v Views, key string, load func() (T, error)) (T, error) {
	if b, ok := v.Get(ctx, key); ok {
		var cached T
		if err := json.Unmarshal(b, &cached); err == nil {
			return cached, nil
		}
	}

	value, err := load()
	if err != nil {
		return value, err
	}
	if b, err := json.Marshal(value); err == nil {
		v.Set(ctx, key, b)
	}
	return value, nil
}
