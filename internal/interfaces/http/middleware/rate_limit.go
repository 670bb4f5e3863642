package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/resguardo/resguardo/internal/config"
	"github.com/resguardo/resguardo/internal/infrastructure/monitoring"
	"github.com/resguardo/resguardo/internal/infrastructure/ratelimit"
	"github.com/resguardo/resguardo/pkg/logger"
)

// RateLimit limits authenticated callers per user and anonymous callers per
// client address. The limiter itself fails open, so a cache outage never
// blocks traffic.
func RateLimit(limiter *ratelimit.RedisRateLimiter, cfg *config.RateLimitConfig, metrics *monitoring.Metrics, log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !cfg.Enabled {
			c.Next()
			return
		}

		identifier := c.ClientIP()
		if principal, ok := PrincipalFrom(c); ok {
			identifier = principal.UserID.String()
		}

		allowed, err := limiter.Allow(c.Request.Context(), identifier)
		if err != nil {
			log.Error(c.Request.Context(), "rate limiter failed", err)
			c.Next()
			return
		}

		if !allowed {
			metrics.RecordRateLimitReject()
			log.Warn(c.Request.Context(), "rate limit exceeded", logger.Fields{"identifier": identifier})
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "too many requests"})
			return
		}
		c.Next()
	}
}
