// Package postgres holds the connection pool configuration and construction
// for the ingestion store.
package postgres

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Default pool bounds, matching the store's expected ingestion load.
const (
	DefaultMinConns       = 1
	DefaultMaxConns       = 10
	DefaultAcquireTimeout = 5 * time.Second
)

// Config holds the database connection and pool parameters.
type Config struct {
	Host     string
	Port     string
	User     string
	Password string
	Database string

	// MinConns and MaxConns bound the pool; persistence operations beyond
	// MaxConns block until a connection is released.
	MinConns int32
	MaxConns int32

	// AcquireTimeout bounds how long a single persistence operation may wait
	// for a pooled connection before failing that record.
	AcquireTimeout time.Duration
}

// NewConfigFromEnv reads connection parameters from the environment, with
// local-development defaults.
func NewConfigFromEnv() Config {
	return Config{
		Host:           getEnvOrDefault("DB_HOST", "localhost"),
		Port:           getEnvOrDefault("DB_PORT", "5432"),
		User:           getEnvOrDefault("DB_USER", "postgres"),
		Password:       os.Getenv("DB_PASSWORD"),
		Database:       getEnvOrDefault("DB_NAME", "pricetrack"),
		MinConns:       int32(getEnvInt("DB_POOL_MIN", DefaultMinConns)),
		MaxConns:       int32(getEnvInt("DB_POOL_MAX", DefaultMaxConns)),
		AcquireTimeout: getEnvDuration("DB_ACQUIRE_TIMEOUT", DefaultAcquireTimeout),
	}
}

// DSN builds a URL-encoded connection string.
func (c Config) DSN() string {
	u := &url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(c.User, c.Password),
		Host:   c.Host + ":" + c.Port,
		Path:   "/" + c.Database,
	}
	q := u.Query()
	q.Set("sslmode", "disable")
	u.RawQuery = q.Encode()
	return u.String()
}

// Connect builds a bounded pgx pool from c and verifies connectivity.
func Connect(ctx context.Context, c Config) (*pgxpool.Pool, error) {
	cfg, err := pgxpool.ParseConfig(c.DSN())
	if err != nil {
		return nil, fmt.Errorf("parse pool config: %w", err)
	}
	cfg.MinConns = c.MinConns
	cfg.MaxConns = c.MaxConns

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("create pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return pool, nil
}

func getEnvOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
