package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/land-deals/backend/internal/config"
	"github.com/land-deals/backend/internal/logger"

	"github.com/redis/go-redis/v9"
)

var (
	client *redis.Client
	prefix string
)

// InitRedis connects the shared redis client. When redis is disabled or
// unreachable the application keeps running without it.
func InitRedis(cfg config.RedisConfig) {
	if !cfg.Enabled {
		logger.Infow("redis_disabled")
		return
	}

	c := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := c.Ping(ctx).Err(); err != nil {
		logger.Warnw("redis_connect_failed", "error", err, "fallback", "disabled")
		return
	}

	client = c
	prefix = cfg.Prefix
	logger.Infow("redis_connected", "addr", fmt.Sprintf("%s:%d", cfg.Host, cfg.Port), "db", cfg.DB)
}

// Enabled reports whether redis is available.
func Enabled() bool {
	return client != nil
}

// Client returns the shared redis client, or nil when disabled.
func Client() *redis.Client {
	return client
}

// Key builds a namespaced cache key.
func Key(parts ...string) string {
	key := prefix
	if key == "" {
		key = "ld"
	}
	for _, part := range parts {
		key += ":" + part
	}
	return key
}

// Close releases the shared client.
func Close() {
	if client != nil {
		_ = client.Close()
		client = nil
	}
}
