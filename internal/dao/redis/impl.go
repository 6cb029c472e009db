package redis

import (
	"context"
	"errors"
	"time"

	"juntos_server/pkg/constants"
	"juntos_server/pkg/errorx"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

type redisCacheService struct {
	client *redis.Client
}

// NewRedisCacheService wraps an initialized client in the CacheService
// contract.
func NewRedisCacheService(client *redis.Client) CacheService {
	return &redisCacheService{client: client}
}

func (s *redisCacheService) withTimeout() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), constants.REDIS_TIMEOUT*time.Second)
}

func (s *redisCacheService) Get(key string) (string, error) {
	ctx, cancel := s.withTimeout()
	defer cancel()
	value, err := s.client.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", errorx.Newf(errorx.CodeNotFound, "cache miss key=%s", key)
		}
		return "", errorx.Wrapf(err, errorx.CodeCacheError, "cache get key=%s", key)
	}
	return value, nil
}

func (s *redisCacheService) Set(key string, value string, expirationSeconds int) error {
	ctx, cancel := s.withTimeout()
	defer cancel()
	expiration := time.Duration(expirationSeconds) * time.Second
	if err := s.client.Set(ctx, key, value, expiration).Err(); err != nil {
		return errorx.Wrapf(err, errorx.CodeCacheError, "cache set key=%s", key)
	}
	return nil
}

func (s *redisCacheService) Delete(key string) error {
	ctx, cancel := s.withTimeout()
	defer cancel()
	if err := s.client.Del(ctx, key).Err(); err != nil {
		return errorx.Wrapf(err, errorx.CodeCacheError, "cache delete key=%s", key)
	}
	return nil
}

// DeleteByPattern walks the keyspace with SCAN and deletes every match.
// KEYS is avoided so a large keyspace cannot stall the server.
func (s *redisCacheService) DeleteByPattern(pattern string) error {
	ctx, cancel := s.withTimeout()
	defer cancel()
	iter := s.client.Scan(ctx, 0, pattern, 100).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return errorx.Wrapf(err, errorx.CodeCacheError, "cache scan pattern=%s", pattern)
	}
	if len(keys) == 0 {
		return nil
	}
	if err := s.client.Del(ctx, keys...).Err(); err != nil {
		return errorx.Wrapf(err, errorx.CodeCacheError, "cache delete pattern=%s", pattern)
	}
	return nil
}

func (s *redisCacheService) DeleteByPatterns(patterns []string) error {
	for _, pattern := range patterns {
		if err := s.DeleteByPattern(pattern); err != nil {
			return err
		}
	}
	return nil
}

func (s *redisCacheService) Close() error {
	if err := s.client.Close(); err != nil {
		zap.L().Error("close redis client", zap.Error(err))
		return errorx.Wrap(err, errorx.CodeCacheError, "close redis client")
	}
	return nil
}
