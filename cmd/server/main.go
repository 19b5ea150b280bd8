package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	redisv9 "github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"account_backend/internal/app/di"
	"account_backend/internal/app/router"
	"account_backend/internal/config"
	"account_backend/internal/platform/db"
	"account_backend/internal/platform/logger"
	"account_backend/internal/platform/redis"
)

const (
	purgeInterval   = time.Hour
	shutdownTimeout = 10 * time.Second
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		logrus.WithError(err).Fatal("failed to load config")
	}
	if err := logger.Setup(cfg.LogLevel, cfg.LogFormat); err != nil {
		logrus.WithError(err).Fatal("failed to set up logger")
	}
	if cfg.IsDevelopment() && os.Getenv("JWT_SECRET") == "" {
		logrus.Warn("JWT_SECRET is not set. Set a strong secret in production.")
	}

	// db
	gdb, err := db.Open(cfg.DBConnection())
	if err != nil {
		logrus.WithError(err).Fatal("failed to connect to database")
	}
	if cfg.DB.RunMigrations {
		if err := db.Migrate(gdb); err != nil {
			logrus.WithError(err).Fatal("failed to migrate")
		}
	} else if !db.SchemaReady(gdb) {
		logrus.Warn("database schema is missing. Run cmd/migrate or set RUN_MIGRATIONS=true.")
	}

	// Redis
	var rdb *redisv9.Client
	if cfg.Redis.Addr != "" {
		if tmp, err := redis.NewRedisClient(ctx, cfg.RedisConnection()); err != nil {
			logrus.WithError(err).Warn("Redis unavailable. Storing tokens in the database.")
		} else {
			rdb = tmp
			defer func() {
				if err := rdb.Close(); err != nil {
					logrus.WithError(err).Error("failed to close Redis client")
				}
			}()
		}
	}

	container, err := di.NewContainer(di.Deps{
		DB:         gdb,
		Redis:      rdb,
		JWTSecret:  cfg.Auth.JWTSecret,
		TokenTTL:   cfg.Auth.TokenTTL,
		BcryptCost: cfg.Auth.BcryptCost,
	})
	if err != nil {
		logrus.WithError(err).Fatal("failed to wire application")
	}

	go purgeExpiredTokens(ctx, container)

	engine := router.NewRouter(container, router.Options{
		CORSOrigins:        cfg.CORSAllowedOrigins,
		CredentialLimit:    cfg.CredentialRateLimit,
		CredentialInterval: cfg.CredentialRateInterval,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           engine,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logrus.WithField("addr", srv.Addr).Info("HTTP server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logrus.WithError(err).Fatal("HTTP server failed")
		}
	}()

	<-ctx.Done()
	logrus.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logrus.WithError(err).Error("graceful shutdown failed")
	}
	if sqlDB, err := gdb.DB(); err == nil {
		_ = sqlDB.Close()
	}
}

// purgeExpiredTokens removes stale token rows until ctx is cancelled.
func purgeExpiredTokens(ctx context.Context, c *di.Container) {
	ticker := time.NewTicker(purgeInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := c.AuthUsecase.PurgeExpired(ctx)
			if err != nil {
				logrus.WithError(err).Warn("failed to purge expired tokens")
				continue
			}
			if n > 0 {
				logrus.WithField("count", n).Info("purged expired tokens")
			}
		}
	}
}
