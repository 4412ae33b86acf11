package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/Cheertaboi/storefront-service/pkg/db"
)

type Config struct {
	HTTPAddr  string
	DB        db.PostgresConfig
	Auth      AuthConfig
	RateLimit RateLimitConfig
	Log       LogConfig
}

type AuthConfig struct {
	JWTSecret string
}

type RateLimitConfig struct {
	Rate string // limiter format, e.g. "100-M"

	RedisAddr     string // empty selects the in-memory store
	RedisPassword string
	RedisDB       int
}

type LogConfig struct {
	Level  zerolog.Level
	Format string // json or console
}

// Load reads .env when present and then the process environment.
func Load() (Config, error) {
	_ = godotenv.Load()
	return FromEnv(getEnv)
}

// FromEnv builds a Config from getenv.
func FromEnv(getenv func(key, fallback string) string) (Config, error) {
	dbCfg, err := db.LoadPostgresConfig(getenv)
	if err != nil {
		return Config{}, err
	}

	secret := getenv("JWT_SECRET", "")
	if secret == "" {
		return Config{}, errors.New("JWT_SECRET is required")
	}

	redisDB, err := strconv.Atoi(getenv("REDIS_DB", "0"))
	if err != nil {
		return Config{}, errors.Wrap(err, "invalid REDIS_DB")
	}

	level, err := zerolog.ParseLevel(getenv("LOG_LEVEL", "info"))
	if err != nil {
		return Config{}, errors.Wrap(err, "invalid LOG_LEVEL")
	}

	return Config{
		HTTPAddr: getenv("HTTP_ADDR", ":8080"),
		DB:       dbCfg,
		Auth:     AuthConfig{JWTSecret: secret},
		RateLimit: RateLimitConfig{
			Rate:          getenv("RATE_LIMIT", "100-M"),
			RedisAddr:     getenv("REDIS_ADDR", ""),
			RedisPassword: getenv("REDIS_PASSWORD", ""),
			RedisDB:       redisDB,
		},
		Log: LogConfig{
			Level:  level,
			Format: getenv("LOG_FORMAT", "json"),
		},
	}, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
