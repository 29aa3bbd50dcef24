package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Service is the injected cache capability. Callers must treat every
// error as a miss: the backend being down never fails a request.
type Service interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Delete(ctx context.Context, key string) error

	// Available reports whether a cache backend is wired at all.
	Available() bool

	// Health check
	Ping(ctx context.Context) error
}

type service struct {
	client *redis.Client
}

// NewService creates a cache service over a Redis client. A nil client
// yields a service that reports unavailable.
func NewService(client *redis.Client) Service {
	return &service{client: client}
}

func (s *service) Get(ctx context.Context, key string, dest interface{}) error {
	if s.client == nil {
		return ErrCacheUnavailable
	}

	val, err := s.client.Get(ctx, key).Result()
	if err != nil {
		if err == redis.Nil {
			return ErrCacheMiss
		}
		return fmt.Errorf("cache get error: %w", err)
	}

	if err := json.Unmarshal([]byte(val), dest); err != nil {
		return fmt.Errorf("cache unmarshal error: %w", err)
	}

	return nil
}

func (s *service) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	if s.client == nil {
		return ErrCacheUnavailable
	}

	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("cache marshal error: %w", err)
	}

	if err := s.client.Set(ctx, key, data, ttl).Err(); err != nil {
		return fmt.Errorf("cache set error: %w", err)
	}

	return nil
}

func (s *service) Delete(ctx context.Context, key string) error {
	if s.client == nil {
		return ErrCacheUnavailable
	}

	if err := s.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("cache delete error: %w", err)
	}
	return nil
}

func (s *service) Available() bool {
	return s.client != nil
}

func (s *service) Ping(ctx context.Context) error {
	if s.client == nil {
		return ErrCacheUnavailable
	}
	return s.client.Ping(ctx).Err()
}

// Error definitions
var (
	ErrCacheMiss        = fmt.Errorf("cache miss")
	ErrCacheUnavailable = fmt.Errorf("cache unavailable")
)
