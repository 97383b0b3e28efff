package config

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/sethvargo/go-envconfig"
)

// Backend modes.
const (
	BackendMock = "mock"
	BackendREST = "rest"
)

// Projection store kinds.
const (
	ProjectionMemory = "memory"
	ProjectionRedis  = "redis"
)

type Config struct {
	Port     string `env:"PORT,      default=8080"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	Backend    BackendConfig
	Projection ProjectionConfig
	Redis      RedisConfig
	DevBackend DevBackendConfig
}

type BackendConfig struct {
	Mode    string        `env:"BACKEND_MODE,    default=mock"`
	URL     string        `env:"BACKEND_URL,     default=http://localhost:5000"`
	Timeout time.Duration `env:"BACKEND_TIMEOUT, default=10s"`
}

type ProjectionConfig struct {
	Store string `env:"PROJECTION_STORE, default=memory"`
	Key   string `env:"PROJECTION_KEY,   default=studyhub:user"`
}

type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR, default=localhost:6379"`
	DB       int    `env:"REDIS_DB,   default=0"`
	Password string `env:"REDIS_PASSWORD"`
}

// DevBackendConfig configures cmd/devbackend, the local stand-in for the
// tutoring backend.
type DevBackendConfig struct {
	Port         string        `env:"DEV_BACKEND_PORT, default=5000"`
	JWTSecret    string        `env:"JWT_SECRET"`
	TokenTTL     time.Duration `env:"TOKEN_TTL,        default=24h"`
	CookieSecure bool          `env:"COOKIE_SECURE,    default=false"`
}

// Load reads an optional .env file and then the environment.
func Load(ctx context.Context) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}
	return load(ctx, envconfig.OsLookuper())
}

func load(ctx context.Context, lookuper envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   &cfg,
		Lookuper: lookuper,
	}); err != nil {
		return nil, fmt.Errorf("process env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects inconsistent settings.
func (c *Config) Validate() error {
	switch c.Backend.Mode {
	case BackendMock:
	case BackendREST:
		if c.Backend.URL == "" {
			return errors.New("config: BACKEND_URL is required when BACKEND_MODE=rest")
		}
	default:
		return fmt.Errorf("config: BACKEND_MODE must be %q or %q, got %q", BackendMock, BackendREST, c.Backend.Mode)
	}
	if c.Backend.Timeout <= 0 {
		return errors.New("config: BACKEND_TIMEOUT must be positive")
	}

	switch c.Projection.Store {
	case ProjectionMemory:
	case ProjectionRedis:
		if c.Redis.Addr == "" {
			return errors.New("config: REDIS_ADDR is required when PROJECTION_STORE=redis")
		}
	default:
		return fmt.Errorf("config: PROJECTION_STORE must be %q or %q, got %q", ProjectionMemory, ProjectionRedis, c.Projection.Store)
	}
	if c.Projection.Key == "" {
		return errors.New("config: PROJECTION_KEY must not be empty")
	}
	return nil
}

// IsDevelopment reports whether the process runs in a local environment.
func (c *Config) IsDevelopment() bool {
	return c.Env == "development" || c.Env == "local"
}
