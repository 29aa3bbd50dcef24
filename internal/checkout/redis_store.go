package checkout

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"skybook/internal/shared/constants"

	"github.com/redis/go-redis/v9"
)

// redisStore keeps sessions in Redis under a TTL so abandoned checkouts
// expire on their own.
type redisStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisStore creates a Redis-backed session store.
func NewRedisStore(client *redis.Client, ttl time.Duration) Store {
	return &redisStore{client: client, ttl: ttl}
}

func sessionKey(sessionID string) string {
	return constants.SESSION_KEY_CHECKOUT + sessionID
}

func (s *redisStore) Get(ctx context.Context, sessionID string) (*Session, error) {
	data, err := s.client.Get(ctx, sessionKey(sessionID)).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("session get error: %w", err)
	}

	var sess Session
	if err := json.Unmarshal([]byte(data), &sess); err != nil {
		return nil, fmt.Errorf("session unmarshal error: %w", err)
	}
	return &sess, nil
}

func (s *redisStore) Save(ctx context.Context, sess *Session) error {
	data, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("session marshal error: %w", err)
	}

	if err := s.client.Set(ctx, sessionKey(sess.ID), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("session save error: %w", err)
	}
	return nil
}

func (s *redisStore) Delete(ctx context.Context, sessionID string) error {
	if err := s.client.Del(ctx, sessionKey(sessionID)).Err(); err != nil {
		return fmt.Errorf("session delete error: %w", err)
	}
	return nil
}
