package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const idempotencyTTL = time.Hour

// IdempotencyStore maps Idempotency-Key values to created task ids in Redis,
// so replayed create requests survive process restarts.
// Key format: idem:<key>
type IdempotencyStore struct {
	client *redis.Client
}

// NewIdempotencyStore wraps the given Redis client.
func NewIdempotencyStore(client *redis.Client) *IdempotencyStore {
	return &IdempotencyStore{client: client}
}

// Get returns the task id recorded for key, if any.
func (s *IdempotencyStore) Get(ctx context.Context, key string) (string, bool, error) {
	id, err := s.client.Get(ctx, s.key(key)).Result()
	if err == redis.Nil {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("idempotency get: %w", err)
	}
	return id, true, nil
}

// Set records that key created taskID (expires after idempotencyTTL).
func (s *IdempotencyStore) Set(ctx context.Context, key, taskID string) error {
	return s.client.Set(ctx, s.key(key), taskID, idempotencyTTL).Err()
}

func (s *IdempotencyStore) key(key string) string {
	return "idem:" + key
}
