package ratelimit

import (
	"github.com/gin-gonic/gin"

	"github.com/twvotelab/recall-o-meter/internal/errors"
)

// Middleware rejects requests from IPs that exceed their token bucket.
func Middleware(limiter *Limiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !limiter.Allow(c.ClientIP()) {
			appErr := errors.NewRateLimitError("60s")
			c.Header("Retry-After", "60")
			c.AbortWithStatusJSON(appErr.HTTPStatus, appErr)
			return
		}
		c.Next()
	}
}
