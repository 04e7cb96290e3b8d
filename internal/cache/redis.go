// Package cache wires the optional Redis client used for response caching
// on the public catalog endpoints.
package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/espacios-app/reservas-api/internal/config"
)

// NewRedisClient connects to Redis per config. Returns nil when caching is
// disabled or the server is unreachable; callers degrade to no caching.
func NewRedisClient(conf *config.RedisConfig) *redis.Client {
	if conf == nil || !conf.Enabled {
		return nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     conf.Addr,
		Password: conf.Password,
		DB:       conf.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil
	}

	return client
}
