package redis

import (
	"context"
	"fmt"
	"time"

	"juntos_server/internal/config"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

var cacheService AsyncCacheService

// Init connects to redis, verifies the connection and installs the
// async cache service singleton.
func Init() AsyncCacheService {
	conf := config.GetConfig()
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", conf.RedisConfig.Host, conf.RedisConfig.Port),
		Password: conf.RedisConfig.Password,
		DB:       conf.RedisConfig.Db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		zap.L().Fatal("connect redis", zap.Error(err))
	}

	cacheService = NewAsyncCacheService(NewRedisCacheService(client))
	zap.L().Info("redis initialized",
		zap.String("addr", fmt.Sprintf("%s:%d", conf.RedisConfig.Host, conf.RedisConfig.Port)))
	return cacheService
}

// GetCacheService returns the initialized singleton.
func GetCacheService() AsyncCacheService {
	return cacheService
}
