package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// CacheService wraps redis for game-result caching. A nil client disables
// caching; every method becomes a no-op miss.
type CacheService struct {
	client     *redis.Client
	expiration time.Duration
}

func NewCacheService(client *redis.Client, expiration time.Duration) *CacheService {
	return &CacheService{
		client:     client,
		expiration: expiration,
	}
}

var errCacheMiss = fmt.Errorf("cache miss")

// IsMiss reports whether an error is a cache miss rather than a failure
func IsMiss(err error) bool {
	return err == errCacheMiss
}

func (s *CacheService) Set(ctx context.Context, key string, value interface{}) error {
	if s.client == nil {
		return nil
	}
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal value: %w", err)
	}
	if err := s.client.Set(ctx, key, data, s.expiration).Err(); err != nil {
		return fmt.Errorf("failed to set cache: %w", err)
	}
	return nil
}

func (s *CacheService) Get(ctx context.Context, key string, dest interface{}) error {
	if s.client == nil {
		return errCacheMiss
	}
	data, err := s.client.Get(ctx, key).Result()
	if err != nil {
		if err == redis.Nil {
			return errCacheMiss
		}
		return fmt.Errorf("failed to get cache: %w", err)
	}
	if err := json.Unmarshal([]byte(data), dest); err != nil {
		return fmt.Errorf("failed to unmarshal value: %w", err)
	}
	return nil
}

func (s *CacheService) Delete(ctx context.Context, keys ...string) error {
	if s.client == nil {
		return nil
	}
	if err := s.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("failed to delete cache: %w", err)
	}
	return nil
}

// Cache key generators
func GameResultCacheKey(gameID string) string {
	return fmt.Sprintf("game:result:%s", gameID)
}

func BatchResultCacheKey(simulationID string) string {
	return fmt.Sprintf("batch:result:%s", simulationID)
}
