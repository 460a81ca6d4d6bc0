// internal/pkg/session/redis_store.go
package session

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	keyPrefix = "session:"

	// opTimeout bounds every round-trip to Redis. A store that does not
	// answer in time is treated the same as an unreachable one.
	opTimeout = 2 * time.Second
)

type RedisStore struct {
	client *redis.Client
	logger *zap.Logger
}

func NewRedisStore(client *redis.Client, logger *zap.Logger) *RedisStore {
	return &RedisStore{client: client, logger: logger}
}

func (s *RedisStore) key(sessionID string) string {
	return keyPrefix + sessionID
}

// Exists reports whether a non-expired record is present. Backend errors
// read as false.
func (s *RedisStore) Exists(ctx context.Context, sessionID string) bool {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	n, err := s.client.Exists(ctx, s.key(sessionID)).Result()
	if err != nil {
		s.logger.Warn("session store exists check failed",
			zap.String("session_id", sessionID),
			zap.Error(err),
		)
		return false
	}
	return n > 0
}

func (s *RedisStore) Get(ctx context.Context, sessionID string) (map[string]any, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	raw, err := s.client.Get(ctx, s.key(sessionID)).Bytes()
	if err == redis.Nil {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read session: %w", err)
	}

	var data map[string]any
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("failed to decode session data: %w", err)
	}
	return data, nil
}

// Put upserts the record and resets its TTL in a single SET.
func (s *RedisStore) Put(ctx context.Context, sessionID string, data map[string]any, ttl time.Duration) error {
	raw, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to encode session data: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	if err := s.client.Set(ctx, s.key(sessionID), raw, ttl).Err(); err != nil {
		return fmt.Errorf("failed to write session: %w", err)
	}
	return nil
}

// Delete removes the record. Deleting an absent key is not an error.
func (s *RedisStore) Delete(ctx context.Context, sessionID string) error {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	if err := s.client.Del(ctx, s.key(sessionID)).Err(); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}
