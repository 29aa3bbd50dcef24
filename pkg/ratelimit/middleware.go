package ratelimit

import (
	"fmt"
	"net/http"
	"strings"

	"skybook/internal/shared/utils/response"

	"github.com/gin-gonic/gin"
)

// Middleware applies per-category rate limits to every route
func Middleware(rateLimiter *RateLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		clientIP := c.ClientIP()
		limitType := getRateLimitType(c.FullPath())

		result, err := rateLimiter.IsAllowed(c.Request.Context(), clientIP, limitType)
		if err != nil {
			// Limiter backend down: let the request through
			c.Next()
			return
		}

		c.Header("X-RateLimit-Limit", fmt.Sprintf("%d", result.Limit))
		c.Header("X-RateLimit-Remaining", fmt.Sprintf("%d", result.Remaining))
		c.Header("X-RateLimit-Reset", fmt.Sprintf("%d", result.ResetTime))

		if !result.Allowed {
			response.RespondJSON(c, "error", http.StatusTooManyRequests,
				"Rate limit exceeded", nil, map[string]interface{}{
					"limit":      result.Limit,
					"reset_time": result.ResetTime,
				})
			c.Abort()
			return
		}

		c.Next()
	}
}

// getRateLimitType maps a route to its limit category
func getRateLimitType(path string) RateLimitType {
	switch {
	case strings.HasPrefix(path, "/health"),
		strings.HasPrefix(path, "/ping"):
		return RateLimitTypeHealth

	case strings.Contains(path, "/auth/"):
		return RateLimitTypeAuth

	case strings.Contains(path, "/bookings"),
		strings.Contains(path, "/checkout"):
		return RateLimitTypeBooking

	case strings.Contains(path, "/flights"):
		return RateLimitTypePublic

	default:
		return RateLimitTypeDefault
	}
}
