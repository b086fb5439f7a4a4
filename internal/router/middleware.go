package router

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/land-deals/backend/internal/authz"
	"github.com/land-deals/backend/internal/config"
	"github.com/land-deals/backend/internal/http/response"
	"github.com/land-deals/backend/internal/logger"
	"github.com/land-deals/backend/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RequestID attaches a request identifier, honoring one supplied by the
// client.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader("X-Request-ID")
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Set("request_id", requestID)
		c.Header("X-Request-ID", requestID)
		c.Next()
	}
}

// Logger records one structured line per request.
func Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		fields := []interface{}{
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"latency_ms", time.Since(start).Milliseconds(),
			"client_ip", c.ClientIP(),
			"request_id", c.GetString("request_id"),
		}
		if c.Writer.Status() >= http.StatusInternalServerError {
			logger.Errorw("http_request", fields...)
		} else {
			logger.Infow("http_request", fields...)
		}
	}
}

// CORS applies the configured cross-origin policy.
func CORS(cfg config.CORSConfig) gin.HandlerFunc {
	allowAll := len(cfg.AllowedOrigins) == 0
	origins := map[string]struct{}{}
	for _, origin := range cfg.AllowedOrigins {
		if origin == "*" {
			allowAll = true
		}
		origins[origin] = struct{}{}
	}
	methods := strings.Join(cfg.AllowedMethods, ", ")
	headers := strings.Join(cfg.AllowedHeaders, ", ")

	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		if origin != "" {
			_, allowed := origins[origin]
			if allowAll || allowed {
				c.Header("Access-Control-Allow-Origin", origin)
				c.Header("Vary", "Origin")
				if cfg.AllowCredentials {
					c.Header("Access-Control-Allow-Credentials", "true")
				}
				c.Header("Access-Control-Allow-Methods", methods)
				c.Header("Access-Control-Allow-Headers", headers)
				if cfg.MaxAge > 0 {
					c.Header("Access-Control-Max-Age", strconv.Itoa(cfg.MaxAge))
				}
			}
		}
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}

// JWTAuth verifies the bearer token and stores the caller's identity in
// the request context.
func JWTAuth(auth *service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token, found := strings.CutPrefix(header, "Bearer ")
		if !found || token == "" {
			response.AbortError(c, http.StatusUnauthorized, response.CodeUnauthorized, "missing bearer token")
			return
		}
		claims, err := auth.ParseToken(token)
		if err != nil {
			response.AbortError(c, http.StatusUnauthorized, response.CodeUnauthorized, "invalid or expired token")
			return
		}
		c.Set("user_id", claims.UserID)
		c.Set("username", claims.Username)
		c.Set("role", claims.Role)
		c.Next()
	}
}

// RequireAccess enforces the role policy for the requested route.
func RequireAccess(authzService *authz.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := c.GetString("role")
		allowed, err := authzService.Enforce(role, c.Request.URL.Path, c.Request.Method)
		if err != nil {
			logger.Errorw("authz_enforce_failed", "error", err, "path", c.Request.URL.Path)
			response.AbortError(c, http.StatusInternalServerError, response.CodeInternal, "internal server error")
			return
		}
		if !allowed {
			response.AbortError(c, http.StatusForbidden, response.CodeForbidden, "operation not allowed")
			return
		}
		c.Next()
	}
}
