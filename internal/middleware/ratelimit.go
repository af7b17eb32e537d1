package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Fxdvs/maturitna-praca-spevak/internal/ratelimit"
)

// RateLimit guards an endpoint with the persistent per-IP limiter. Denied
// requests get a 429 with a machine-readable reset time.
func RateLimit(limiter *ratelimit.Service, endpoint string) gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := ratelimit.ClientIP(c)

		decision := limiter.Check(c.Request.Context(), ip, endpoint)
		if !decision.Allowed {
			resetAt := ""
			if decision.ResetAt != nil {
				resetAt = decision.ResetAt.Format(time.RFC3339)
			}
			c.JSON(http.StatusTooManyRequests, gin.H{
				"error":   "Too many requests",
				"resetAt": resetAt,
			})
			c.Abort()
			return
		}

		c.Next()
	}
}
