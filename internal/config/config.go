// Package config loads the service configuration from the environment.
package config

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/sethvargo/go-envconfig"

	"account_backend/internal/platform/db"
	"account_backend/internal/platform/redis"
)

// Config is the complete service configuration.
type Config struct {
	AppEnv    string `env:"APP_ENV, default=development"`
	HTTPPort  string `env:"HTTP_PORT, default=8080"`
	LogLevel  string `env:"LOG_LEVEL, default=info"`
	LogFormat string `env:"LOG_FORMAT, default=text"`

	// CORSAllowedOrigins is a comma separated list. Empty disables CORS.
	CORSAllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS"`

	// CredentialRateLimit caps login and register attempts per client IP
	// within CredentialRateInterval. Zero disables the limit.
	CredentialRateLimit    int           `env:"CREDENTIAL_RATE_LIMIT, default=10"`
	CredentialRateInterval time.Duration `env:"CREDENTIAL_RATE_INTERVAL, default=1m"`

	DB    DBConfig
	Redis RedisConfig
	Auth  AuthConfig
	Admin AdminConfig
}

// DBConfig selects and addresses the relational store.
type DBConfig struct {
	Driver         string        `env:"DB_DRIVER, default=sqlite"`
	Host           string        `env:"DB_HOST, default=localhost"`
	Port           string        `env:"DB_PORT"`
	User           string        `env:"DB_USER"`
	Password       string        `env:"DB_PASSWORD"`
	Name           string        `env:"DB_NAME, default=account"`
	SSLMode        string        `env:"DB_SSLMODE, default=disable"`
	Path           string        `env:"DB_PATH, default=account.db"`
	ConnectTimeout time.Duration `env:"DB_CONNECT_TIMEOUT, default=60s"`
	RunMigrations  bool          `env:"RUN_MIGRATIONS, default=true"`
}

// RedisConfig addresses the token store. An empty Addr disables Redis.
type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB, default=0"`
}

// AuthConfig controls token signing and password hashing.
type AuthConfig struct {
	JWTSecret  string        `env:"JWT_SECRET"`
	TokenTTL   time.Duration `env:"TOKEN_TTL, default=24h"`
	BcryptCost int           `env:"BCRYPT_COST, default=10"`
}

// AdminConfig is the account seeded by cmd/migrate. All fields empty means no seed.
type AdminConfig struct {
	Username string `env:"ADMIN_USERNAME"`
	Email    string `env:"ADMIN_EMAIL"`
	Password string `env:"ADMIN_PASSWORD"`
}

// devSecret signs tokens in development when JWT_SECRET is unset.
const devSecret = "development-only-secret"

// Load reads an optional .env file and decodes the environment.
func Load(ctx context.Context) (*Config, error) {
	// A missing .env is normal outside local development
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if cfg.Auth.JWTSecret == "" && cfg.IsDevelopment() {
		cfg.Auth.JWTSecret = devSecret
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// IsDevelopment reports whether APP_ENV is development.
func (c *Config) IsDevelopment() bool {
	return c.AppEnv == "development"
}

// Validate rejects configurations the service cannot run with.
func (c *Config) Validate() error {
	var errs []error
	switch c.DB.Driver {
	case db.DriverPostgres, db.DriverMySQL, db.DriverSQLite:
	default:
		errs = append(errs, fmt.Errorf("DB_DRIVER must be one of postgres, mysql, sqlite; got %q", c.DB.Driver))
	}
	if c.Auth.JWTSecret == "" {
		errs = append(errs, errors.New("JWT_SECRET is required outside development"))
	}
	if c.CredentialRateLimit < 0 {
		errs = append(errs, errors.New("CREDENTIAL_RATE_LIMIT must not be negative"))
	}
	if c.CredentialRateLimit > 0 && c.CredentialRateInterval <= 0 {
		errs = append(errs, errors.New("CREDENTIAL_RATE_INTERVAL must be positive"))
	}
	if c.Auth.TokenTTL <= 0 {
		errs = append(errs, errors.New("TOKEN_TTL must be positive"))
	}
	admin := []string{c.Admin.Username, c.Admin.Email, c.Admin.Password}
	if set := countSet(admin); set != 0 && set != len(admin) {
		errs = append(errs, errors.New("ADMIN_USERNAME, ADMIN_EMAIL and ADMIN_PASSWORD must be set together"))
	}
	return errors.Join(errs...)
}

// DBConnection converts the settings for platform/db.
func (c *Config) DBConnection() db.Config {
	port := c.DB.Port
	if port == "" {
		switch c.DB.Driver {
		case db.DriverPostgres:
			port = "5432"
		case db.DriverMySQL:
			port = "3306"
		}
	}
	return db.Config{
		Driver:         c.DB.Driver,
		Host:           c.DB.Host,
		Port:           port,
		User:           c.DB.User,
		Password:       c.DB.Password,
		Name:           c.DB.Name,
		SSLMode:        c.DB.SSLMode,
		Path:           c.DB.Path,
		ConnectTimeout: c.DB.ConnectTimeout,
	}
}

// RedisConnection converts the settings for platform/redis.
func (c *Config) RedisConnection() redis.Config {
	return redis.Config{Addr: c.Redis.Addr, Password: c.Redis.Password, DB: c.Redis.DB}
}

// SeedAdmin reports whether an admin account should be seeded.
func (c *Config) SeedAdmin() bool {
	return c.Admin.Email != ""
}

func countSet(vals []string) int {
	n := 0
	for _, v := range vals {
		if v != "" {
			n++
		}
	}
	return n
}
