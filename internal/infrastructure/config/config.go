package config

import (
	"context"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port     string `env:"PORT,      default=8080"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	Session SessionConfig
	Mongo   MongoConfig
	Redis   RedisConfig
	Seed    SeedConfig
}

type SessionConfig struct {
	// Secret signs the session cookie token. Required outside development.
	Secret string        `env:"SESSION_SECRET, default=dev-only-secret"`
	TTL    time.Duration `env:"SESSION_TTL,    default=24h"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=task_system"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

// SeedConfig holds the bootstrap fixture passwords. The defaults mirror the
// development fixtures; override both in any real deployment.
type SeedConfig struct {
	AdminPassword string `env:"SEED_ADMIN_PASSWORD, default=123"`
	StaffPassword string `env:"SEED_STAFF_PASSWORD, default=123"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
