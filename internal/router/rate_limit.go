package router

import (
	"context"
	"net/http"
	"time"

	"github.com/land-deals/backend/internal/cache"
	"github.com/land-deals/backend/internal/config"
	"github.com/land-deals/backend/internal/http/response"
	"github.com/land-deals/backend/internal/logger"

	"github.com/gin-gonic/gin"
)

// LoginRateLimit throttles login attempts per client IP, backed by redis.
// Without redis the limiter is a pass-through.
func LoginRateLimit(cfg config.LoginRateLimitConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !cache.Enabled() || cfg.MaxAttempts <= 0 {
			c.Next()
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		blockKey := cache.Key("login_block", c.ClientIP())
		blocked, err := cache.Client().Exists(ctx, blockKey).Result()
		if err == nil && blocked > 0 {
			response.AbortError(c, http.StatusTooManyRequests, response.CodeTooManyRequests,
				"too many login attempts, try again later")
			return
		}

		countKey := cache.Key("login_attempts", c.ClientIP())
		count, err := cache.Client().Incr(ctx, countKey).Result()
		if err != nil {
			// Redis hiccups must not lock users out.
			logger.Warnw("login_rate_limit_unavailable", "error", err)
			c.Next()
			return
		}
		if count == 1 {
			cache.Client().Expire(ctx, countKey, time.Duration(cfg.WindowSeconds)*time.Second)
		}
		if count > int64(cfg.MaxAttempts) {
			cache.Client().Set(ctx, blockKey, 1, time.Duration(cfg.BlockSeconds)*time.Second)
			logger.Warnw("login_rate_limited", "client_ip", c.ClientIP(), "attempts", count)
			response.AbortError(c, http.StatusTooManyRequests, response.CodeTooManyRequests,
				"too many login attempts, try again later")
			return
		}
		c.Next()
	}
}
