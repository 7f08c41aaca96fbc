package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port      string `env:"PORT,      default=8080"`
	Env       string `env:"ENV,       default=development"`
	LogLevel  string `env:"LOG_LEVEL, default=info"`
	JWTSecret string `env:"JWT_SECRET, required"`

	// TokenTTL is the fixed session expiry window from issuance.
	TokenTTL time.Duration `env:"TOKEN_TTL, default=336h"`

	// BcryptCost tunes the credential hash work factor; 0 uses the library default.
	BcryptCost int `env:"BCRYPT_COST, default=0"`

	// AuditWorkers sizes the async audit dispatcher pool.
	AuditWorkers int `env:"AUDIT_WORKERS, default=4"`

	Login LoginThrottleConfig
	Mongo MongoConfig
	Redis RedisConfig
}

// LoginThrottleConfig bounds failed login attempts per email.
type LoginThrottleConfig struct {
	MaxFailures int64         `env:"LOGIN_MAX_FAILURES, default=5"`
	Window      time.Duration `env:"LOGIN_FAILURE_WINDOW, default=15m"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=storefront"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("load configuration: %w", err)
	}
	return &cfg, nil
}
