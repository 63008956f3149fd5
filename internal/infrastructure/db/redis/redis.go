// Package redis holds the optional Redis client and the idempotency store
// built on it. The server runs without Redis; configuring an address only
// moves idempotency keys out of process memory.
package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Config holds connection settings for the optional Redis instance.
type Config struct {
	Addr    string
	DB      int
	Timeout time.Duration
}

// Connect opens a client against cfg.Addr and proves it reachable with a ping
// before handing it back. The caller owns the client and closes it.
func Connect(ctx context.Context, cfg Config) (*redis.Client, error) {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 5 * time.Second
	}
	client := redis.NewClient(&redis.Options{Addr: cfg.Addr, DB: cfg.DB})

	pingCtx, cancel := context.WithTimeout(ctx, cfg.Timeout)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping %s: %w", cfg.Addr, err)
	}
	return client, nil
}
