package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port     string `env:"PORT,      default=8080"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	Database DatabaseConfig
	Redis    RedisConfig
	Session  SessionConfig
	Stats    StatsConfig
}

// DatabaseConfig is the single connection schema for PostgreSQL.
type DatabaseConfig struct {
	Host     string        `env:"DB_HOST,     default=localhost"`
	Port     int           `env:"DB_PORT,     default=5432"`
	Name     string        `env:"DB_NAME,     default=taskboard"`
	User     string        `env:"DB_USER,     default=taskboard"`
	Password string        `env:"DB_PASSWORD"`
	SSLMode  string        `env:"DB_SSLMODE,  default=disable"`
	Timeout  time.Duration `env:"DB_TIMEOUT,  default=10s"`
	Migrate  bool          `env:"DB_MIGRATE,  default=true"`
}

type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR,     default=localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB,       default=0"`
}

type SessionConfig struct {
	Secret     string        `env:"SESSION_SECRET"`
	TTL        time.Duration `env:"SESSION_TTL,         default=24h"`
	CookieName string        `env:"SESSION_COOKIE_NAME, default=taskboard_session"`
}

type StatsConfig struct {
	CacheKey string        `env:"STATS_CACHE_KEY, default=stats:users"`
	CacheTTL time.Duration `env:"STATS_CACHE_TTL, default=5m"`
}

// IsProduction reports whether cookies must be marked Secure.
func (c *Config) IsProduction() bool {
	return c.Env == "production" || c.Env == "staging"
}

// Load reads configuration from environment variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	return load(ctx, envconfig.OsLookuper())
}

func load(ctx context.Context, lookuper envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   &cfg,
		Lookuper: lookuper,
	}); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if cfg.Session.Secret == "" && cfg.IsProduction() {
		return nil, fmt.Errorf("config: SESSION_SECRET is required in %s", cfg.Env)
	}
	return &cfg, nil
}
