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
	JWTSecret string `env:"JWT_SECRET"`
	LogLevel  string `env:"LOG_LEVEL, default=info"`

	// SessionTTL is the validity window of issued session tokens and the
	// max-age of the session cookie.
	SessionTTL time.Duration `env:"SESSION_TTL, default=168h"`
	// SessionReapInterval controls how often expired session rows are purged.
	SessionReapInterval time.Duration `env:"SESSION_REAP_INTERVAL, default=1h"`

	Postgres PostgresConfig
	Redis    RedisConfig
	SignIn   SignInConfig
}

type PostgresConfig struct {
	DSN string `env:"DATABASE_DSN, default=postgres://localhost:5432/taskdeck?sslmode=disable"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

type SignInConfig struct {
	// MaxAttempts is the number of failed sign-ins tolerated per email
	// within the limiter window before attempts are rejected.
	MaxAttempts int           `env:"SIGNIN_MAX_ATTEMPTS, default=10"`
	Window      time.Duration `env:"SIGNIN_WINDOW,       default=15m"`
}

// Production reports whether the service runs with production settings,
// which among other things marks the session cookie Secure.
func (c *Config) Production() bool {
	return c.Env == "production"
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}
