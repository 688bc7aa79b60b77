package services

import (
	"context"
	"time"

	"gorent/pkg/cache"
	"gorent/pkg/logger"
)

// CacheService is the cache-aside surface the repositories and the booking
// lease use. A nil CacheService is tolerated everywhere; caching is a
// fast-path, never a correctness dependency.
type CacheService interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error
	Delete(ctx context.Context, keys ...string) error
	Exists(ctx context.Context, key string) (bool, error)

	// SetNX backs the cross-instance booking lease.
	SetNX(ctx context.Context, key string, value interface{}, expiration time.Duration) (bool, error)

	Ping(ctx context.Context) error
}

type redisCacheService struct {
	redis  *cache.RedisCache
	logger *logger.Logger
}

func NewCacheService(redisCache *cache.RedisCache, log *logger.Logger) CacheService {
	return &redisCacheService{
		redis:  redisCache,
		logger: log,
	}
}

func (s *redisCacheService) Get(ctx context.Context, key string, dest interface{}) error {
	return s.redis.Get(ctx, key, dest)
}

func (s *redisCacheService) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	if err := s.redis.Set(ctx, key, value, expiration); err != nil {
		s.logger.WithError(err).WithField("key", key).Warn("Cache set failed")
		return err
	}
	return nil
}

func (s *redisCacheService) Delete(ctx context.Context, keys ...string) error {
	return s.redis.Delete(ctx, keys...)
}

func (s *redisCacheService) Exists(ctx context.Context, key string) (bool, error) {
	return s.redis.Exists(ctx, key)
}

func (s *redisCacheService) SetNX(ctx context.Context, key string, value interface{}, expiration time.Duration) (bool, error) {
	return s.redis.SetNX(ctx, key, value, expiration)
}

func (s *redisCacheService) Ping(ctx context.Context) error {
	return s.redis.Ping(ctx)
}
