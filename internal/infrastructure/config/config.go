package config

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/joho/godotenv"
	"github.com/sethvargo/go-envconfig"
)

const (
	minBcryptCost = 10
	maxBcryptCost = 31
)

type Config struct {
	Port        string   `env:"PORT,         default=8080"`
	Env         string   `env:"ENV,          default=development"`
	LogLevel    string   `env:"LOG_LEVEL,    default=info"`
	CORSOrigins []string `env:"CORS_ORIGINS, default=*"`

	Auth     AuthConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Audit    AuditConfig
}

// AuthConfig has no default secret. An empty JWTSecret is allowed at load
// time; token operations then fail with a configuration error.
type AuthConfig struct {
	JWTSecret  string        `env:"JWT_SECRET"`
	TokenTTL   time.Duration `env:"TOKEN_TTL,   default=720h"`
	BcryptCost int           `env:"BCRYPT_COST, default=12"`
}

type DatabaseConfig struct {
	URL            string `env:"DATABASE_URL,      required"`
	MaxOpenConns   int    `env:"DB_MAX_OPEN_CONNS, default=20"`
	MigrateOnStart bool   `env:"MIGRATE_ON_START,  default=false"`
}

// RedisConfig is optional: an empty Addr disables the idempotency store.
type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB, default=0"`
}

type AuditConfig struct {
	Workers int `env:"AUDIT_WORKERS, default=4"`
}

// Load reads a .env file when present, then the process environment.
func Load(ctx context.Context) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("config: read .env: %w", err)
	}
	return LoadFrom(ctx, envconfig.OsLookuper())
}

// LoadFrom resolves configuration through l and validates it.
func LoadFrom(ctx context.Context, l envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: l}); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	if c.Database.URL == "" {
		return errors.New("config: DATABASE_URL must not be empty")
	}
	if c.Auth.BcryptCost < minBcryptCost || c.Auth.BcryptCost > maxBcryptCost {
		return fmt.Errorf("config: BCRYPT_COST must be between %d and %d, got %d", minBcryptCost, maxBcryptCost, c.Auth.BcryptCost)
	}
	if c.Auth.TokenTTL <= 0 {
		return fmt.Errorf("config: TOKEN_TTL must be positive, got %s", c.Auth.TokenTTL)
	}
	if c.Audit.Workers <= 0 {
		return fmt.Errorf("config: AUDIT_WORKERS must be positive, got %d", c.Audit.Workers)
	}
	return nil
}

func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}
