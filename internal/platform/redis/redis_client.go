// Package redis connects to the Redis server that backs the token store.
package redis

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// Config holds the Redis connection settings.
type Config struct {
	Addr     string
	Password string
	DB       int
}

// NewRedisClient connects and pings the server. The client is closed again
// when the ping fails.
func NewRedisClient(ctx context.Context, cfg Config) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		logrus.WithFields(logrus.Fields{"address": cfg.Addr, "error": err}).Error("Redis connection failed")
		_ = rdb.Close()
		return nil, err
	}

	logrus.WithFields(logrus.Fields{"address": cfg.Addr}).Info("Redis connection successful")
	return rdb, nil
}
