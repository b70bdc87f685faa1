package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/riaz37/job-finder-sub001/internal/model"
	"github.com/riaz37/job-finder-sub001/internal/ratelimit"
	"github.com/riaz37/job-finder-sub001/internal/session"
	"github.com/riaz37/job-finder-sub001/internal/token"
)

const authUserIDKey = "auth_user_id"

// ExcludedPaths lists the routes that skip authentication and rate
// limiting: the public surface plus the endpoints that mint credentials.
func ExcludedPaths() map[string]bool {
	return map[string]bool{
		"/":                     true,
		"/health":               true,
		"/docs":                 true,
		"/api/v1/auth/register": true,
		"/api/v1/auth/login":    true,
	}
}

// AuthMiddleware validates the bearer token and its backing session. The
// failure modes are reported distinctly so clients can tell a missing
// header from a dead session; a store outage is a 500, never a 401.
func AuthMiddleware(codec *token.Codec, sessions *session.Store, excluded map[string]bool, log *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if excluded[c.Request.URL.Path] || c.Request.Method == http.MethodOptions {
			c.Next()
			return
		}

		header := c.GetHeader("Authorization")
		if header == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, model.DetailResponse{Detail: "Authorization header missing"})
			return
		}
		if !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, model.DetailResponse{Detail: "Invalid authorization header format"})
			return
		}

		tokenStr := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
		userID := codec.Verify(tokenStr)
		if userID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, model.DetailResponse{Detail: "Invalid or expired token"})
			return
		}

		rec, err := sessions.Get(c.Request.Context(), userID)
		if err != nil {
			if errors.Is(err, session.ErrNotFound) {
				c.AbortWithStatusJSON(http.StatusUnauthorized, model.DetailResponse{Detail: "Session expired or invalid"})
				return
			}
			log.Error("session validation failed", "path", c.Request.URL.Path, "error", err)
			c.AbortWithStatusJSON(http.StatusInternalServerError, model.DetailResponse{Detail: "Session validation failed"})
			return
		}
		// A superseded token (overwritten by a later login) reads the same
		// as a dead session.
		if rec.Token != tokenStr {
			c.AbortWithStatusJSON(http.StatusUnauthorized, model.DetailResponse{Detail: "Session expired or invalid"})
			return
		}

		c.Set(authUserIDKey, userID)
		c.Next()
	}
}

// GetAuthUserID returns the authenticated subject set by AuthMiddleware,
// or "" on routes that skipped it.
func GetAuthUserID(c *gin.Context) string {
	if value, ok := c.Get(authUserIDKey); ok {
		if id, ok := value.(string); ok {
			return id
		}
	}
	return ""
}

// RateLimitMiddleware counts requests per client address. Rejected
// requests do not increment the counter.
func RateLimitMiddleware(limiter *ratelimit.Limiter, excluded map[string]bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		if excluded[c.Request.URL.Path] || c.Request.Method == http.MethodOptions {
			c.Next()
			return
		}

		if !limiter.Allow(c.Request.Context(), c.ClientIP()) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, model.DetailResponse{Detail: "Rate limit exceeded"})
			return
		}
		c.Next()
	}
}

// SecurityHeadersMiddleware stamps every response, including errors and
// excluded paths.
func SecurityHeadersMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		h := c.Writer.Header()
		h.Set("X-Content-Type-Options", "nosniff")
		h.Set("X-Frame-Options", "DENY")
		h.Set("X-XSS-Protection", "1; mode=block")
		h.Set("Strict-Transport-Security", "max-age=31536000; includeSubDomains")
		h.Set("Referrer-Policy", "strict-origin-when-cross-origin")
		c.Next()
	}
}

func RequestLoggerMiddleware(log *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.Info("request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration_ms", time.Since(start).Milliseconds(),
			"client", c.ClientIP(),
		)
	}
}

func CORSMiddleware(allowedOrigins []string) gin.HandlerFunc {
	originMap := make(map[string]struct{}, len(allowedOrigins))
	for _, origin := range allowedOrigins {
		trimmed := strings.TrimSpace(origin)
		if trimmed == "" {
			continue
		}
		originMap[trimmed] = struct{}{}
	}

	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		if origin != "" {
			if _, ok := originMap[origin]; ok {
				c.Header("Access-Control-Allow-Origin", origin)
				c.Header("Vary", "Origin")
				c.Header("Access-Control-Allow-Headers", "Authorization, Content-Type")
				c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
			}
		}

		if c.Request.Method == http.MethodOptions {
			c.Status(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
