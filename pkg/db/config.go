package db

import (
	"fmt"
	"net/url"
	"strconv"
)

type PostgresConfig struct {
	URL      string // takes precedence over the discrete fields when set
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string

	MaxOpenConns int
	MaxIdleConns int
}

// LoadPostgresConfig reads the connection settings through getenv so callers
// decide where values come from (process env, a .env file, a test map).
func LoadPostgresConfig(getenv func(key, fallback string) string) (PostgresConfig, error) {
	port, err := strconv.Atoi(getenv("DB_PORT", "5432"))
	if err != nil {
		return PostgresConfig{}, fmt.Errorf("invalid DB_PORT: %w", err)
	}
	maxOpen, err := strconv.Atoi(getenv("DB_MAX_OPEN_CONNS", "20"))
	if err != nil {
		return PostgresConfig{}, fmt.Errorf("invalid DB_MAX_OPEN_CONNS: %w", err)
	}
	maxIdle, err := strconv.Atoi(getenv("DB_MAX_IDLE_CONNS", "10"))
	if err != nil {
		return PostgresConfig{}, fmt.Errorf("invalid DB_MAX_IDLE_CONNS: %w", err)
	}

	return PostgresConfig{
		URL:          getenv("DATABASE_URL", ""),
		Host:         getenv("DB_HOST", "localhost"),
		Port:         port,
		User:         getenv("DB_USER", "postgres"),
		Password:     getenv("DB_PASSWORD", ""),
		DBName:       getenv("DB_NAME", "storefront"),
		SSLMode:      getenv("DB_SSLMODE", "disable"),
		MaxOpenConns: maxOpen,
		MaxIdleConns: maxIdle,
	}, nil
}

// DSN returns the lib/pq connection string.
func (c PostgresConfig) DSN() string {
	if c.URL != "" {
		return c.URL
	}
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Password),
		Host:     fmt.Sprintf("%s:%d", c.Host, c.Port),
		Path:     "/" + c.DBName,
		RawQuery: "sslmode=" + url.QueryEscape(c.SSLMode),
	}
	return u.String()
}
