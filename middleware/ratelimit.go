package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"storefront/database"
	"storefront/httpx"
)

const (
	rateLimitPeriod = 1 * time.Minute
	rateLimitCount  = 120
)

// RateLimit is a fixed-window per-IP limiter backed by Redis. When Redis is
// not configured requests pass through untouched.
func RateLimit() gin.HandlerFunc {
	return func(c *gin.Context) {
		if database.RedisClient == nil {
			c.Next()
			return
		}

		key := "rate_limit:" + c.ClientIP()

		count, err := database.RedisClient.Incr(c.Request.Context(), key).Result()
		if err != nil {
			// a flaky limiter must not take the API down with it
			c.Next()
			return
		}

		if count == 1 {
			database.RedisClient.Expire(c.Request.Context(), key, rateLimitPeriod)
		}

		if count > rateLimitCount {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, httpx.Envelope{
				Success: false,
				Error:   "Too many requests",
			})
			return
		}

		c.Next()
	}
}
