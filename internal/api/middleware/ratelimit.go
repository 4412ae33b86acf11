package middleware

import (
	"context"
	"net/http"
	"time"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/middleware/stdlib"
	"github.com/ulule/limiter/v3/drivers/store/memory"
	sredis "github.com/ulule/limiter/v3/drivers/store/redis"

	"github.com/Cheertaboi/storefront-service/internal/config"
)

const rateLimitPrefix = "storefront:ratelimit"

// NewLimiterStore picks the Redis store when an address is configured, else
// the in-process memory store. The returned close func releases the Redis
// client and is never nil.
func NewLimiterStore(ctx context.Context, cfg config.RateLimitConfig) (limiter.Store, func() error, error) {
	if cfg.RedisAddr == "" {
		return memory.NewStoreWithOptions(limiter.StoreOptions{
			Prefix:          rateLimitPrefix,
			CleanUpInterval: time.Minute,
		}), func() error { return nil }, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:         cfg.RedisAddr,
		Password:     cfg.RedisPassword,
		DB:           cfg.RedisDB,
		PoolSize:     10,
		MinIdleConns: 2,
		MaxRetries:   3,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, nil, errors.Wrap(err, "redis ping")
	}

	store, err := sredis.NewStoreWithOptions(client, limiter.StoreOptions{
		Prefix:   rateLimitPrefix,
		MaxRetry: 3,
	})
	if err != nil {
		_ = client.Close()
		return nil, nil, errors.Wrap(err, "redis limiter store")
	}
	return store, client.Close, nil
}

// RateLimit throttles per client IP at rate (limiter format, e.g. "100-M").
func RateLimit(rate string, store limiter.Store) (func(http.Handler) http.Handler, error) {
	r, err := limiter.NewRateFromFormatted(rate)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid rate %q", rate)
	}

	mw := stdlib.NewMiddleware(limiter.New(store, r),
		stdlib.WithLimitReachedHandler(func(w http.ResponseWriter, _ *http.Request) {
			writeError(w, http.StatusTooManyRequests, "rate limit exceeded")
		}),
	)
	return mw.Handler, nil
}
