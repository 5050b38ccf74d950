package redis

import (
	"context"
	"fmt"
	"strings"
	"time"

	"foodscroll-go/internal/config"
	"foodscroll-go/pkg/logger"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// keyPrefix 本服务所有键的命名空间，和其他服务共用实例时避免冲突
const keyPrefix = "foodscroll"

var Client *redis.Client

// Key 拼接带命名空间的键，例如 Key("catalog", "42") 得到 foodscroll:catalog:42
func Key(parts ...string) string {
	return keyPrefix + ":" + strings.Join(parts, ":")
}

// Init 初始化Redis客户端
// 缓存与脏集合都是旁路数据，读写超时设短一些，故障时尽快降级
func Init(cfg *config.RedisConfig) error {
	Client = redis.NewClient(&redis.Options{
		Addr:         cfg.Addr(),
		Password:     cfg.Password,
		DB:           cfg.DB,
		PoolSize:     cfg.PoolSize,
		DialTimeout:  3 * time.Second,
		ReadTimeout:  500 * time.Millisecond,
		WriteTimeout: 500 * time.Millisecond,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := Ping(ctx); err != nil {
		return err
	}

	logger.Info("Redis connected",
		zap.String("addr", cfg.Addr()),
		zap.Int("db", cfg.DB),
		zap.Int("pool_size", cfg.PoolSize),
	)

	return nil
}

// Ping 检查连接可用，供启动和就绪检查使用
func Ping(ctx context.Context) error {
	if Client == nil {
		return fmt.Errorf("redis client not initialized")
	}
	if err := Client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("failed to ping redis: %w", err)
	}
	return nil
}

// Close 关闭Redis连接
func Close() error {
	if Client == nil {
		return nil
	}
	logger.Info("Redis connection closed")
	return Client.Close()
}

// Get 获取Redis客户端实例
func Get() *redis.Client {
	return Client
}
