package redis

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"pet_adoption_server/internal/config"

	"github.com/redis/go-redis/v9"
)

// NewClient 按配置创建 Redis 客户端并做一次 PING
func NewClient(conf *config.RedisConfig) (*redis.Client, error) {
	addr := conf.Host + ":" + strconv.Itoa(conf.Port)
	client := redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     conf.Password,
		DB:           conf.Db,
		PoolSize:     50,
		MinIdleConns: conf.WorkerNum,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis %s: %w", addr, err)
	}
	return client, nil
}

// NewCacheService 按配置选择缓存实现
// 未启用 Redis 时使用进程内缓存，便于单机开发
func NewCacheService(conf *config.RedisConfig) (AsyncCacheService, func(), error) {
	if !conf.Enabled {
		return NewMemoryCache(), func() {}, nil
	}
	client, err := NewClient(conf)
	if err != nil {
		return nil, nil, err
	}
	rc := NewRedisCache(client, conf.WorkerNum, conf.TaskChanSize)
	return rc, rc.Close, nil
}
