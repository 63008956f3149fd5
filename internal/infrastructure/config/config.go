package config

import (
	"context"
	"fmt"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port      string `env:"PORT,      default=8080"`
	Env       string `env:"ENV,       default=development"`
	JWTSecret string `env:"JWT_SECRET, default=dev-secret-change-me"`
	LogLevel  string `env:"LOG_LEVEL, default=info"`

	// EnforceRBAC moves the role checks into the endpoint layer: task
	// mutations then require a bearer token and admin-only operations are
	// rejected for other roles. Off by default to match the mock contract.
	EnforceRBAC bool `env:"ENFORCE_RBAC, default=false"`

	// AuditWorkers is the number of sharded audit dispatcher workers.
	AuditWorkers int `env:"AUDIT_WORKERS, default=4"`

	Mongo MongoConfig
	Redis RedisConfig
}

// MongoConfig enables the Mongo-backed audit trail when URI is non-empty.
type MongoConfig struct {
	URI      string `env:"MONGO_URI"`
	Database string `env:"MONGO_DB,  default=taskboard"`
}

// RedisConfig enables the Redis-backed idempotency store when Addr is non-empty.
type RedisConfig struct {
	Addr string `env:"REDIS_ADDR"`
	DB   int    `env:"REDIS_DB,  default=0"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &cfg, nil
}
