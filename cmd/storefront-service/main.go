package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rs/zerolog"

	"github.com/Cheertaboi/storefront-service/internal/api"
	"github.com/Cheertaboi/storefront-service/internal/api/middleware"
	"github.com/Cheertaboi/storefront-service/internal/auth"
	"github.com/Cheertaboi/storefront-service/internal/config"
	"github.com/Cheertaboi/storefront-service/internal/metrics"
	"github.com/Cheertaboi/storefront-service/pkg/db"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		bootLogger := zerolog.New(os.Stderr)
		bootLogger.Fatal().Err(err).Msg("load config")
	}
	logger := newLogger(cfg.Log)

	ctx := context.Background()

	conn, err := db.NewPostgresConnection(ctx, cfg.DB)
	if err != nil {
		logger.Fatal().Err(err).Msg("db connect")
	}
	defer conn.Close()

	if err := db.Migrate(ctx, conn); err != nil {
		logger.Fatal().Err(err).Msg("db migrate")
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(reg)

	store, closeStore, err := middleware.NewLimiterStore(ctx, cfg.RateLimit)
	if err != nil {
		logger.Fatal().Err(err).Msg("rate limit store")
	}
	defer closeStore()
	rateLimit, err := middleware.RateLimit(cfg.RateLimit.Rate, store)
	if err != nil {
		logger.Fatal().Err(err).Msg("rate limit")
	}

	handler := api.NewRouter(api.Deps{
		Services:  api.NewServices(conn, m),
		Issuer:    auth.NewIssuer(cfg.Auth.JWTSecret),
		Logger:    logger,
		Metrics:   m,
		Gatherer:  reg,
		RateLimit: rateLimit,
	})

	srv := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      handler,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// graceful shutdown
	idleConnsClosed := make(chan struct{})
	go func() {
		c := make(chan os.Signal, 1)
		signal.Notify(c, os.Interrupt, syscall.SIGTERM)
		<-c
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			logger.Error().Err(err).Msg("http server shutdown")
		}
		close(idleConnsClosed)
	}()

	logger.Info().Str("addr", cfg.HTTPAddr).Msg("starting storefront-service")
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Fatal().Err(err).Msg("listen")
	}

	<-idleConnsClosed
	logger.Info().Msg("server stopped")
}

func newLogger(cfg config.LogConfig) zerolog.Logger {
	zerolog.TimeFieldFormat = time.RFC3339Nano

	var logger zerolog.Logger
	if cfg.Format == "console" {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339})
	} else {
		logger = zerolog.New(os.Stdout)
	}
	return logger.Level(cfg.Level).With().Timestamp().Str("service", "storefront-service").Logger()
}
