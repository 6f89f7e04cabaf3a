package middleware

import (
	"math"
	"strconv"

	"notesapi/services"
	"notesapi/utils"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

// RateLimit throttles requests per client IP. Limiter backend errors fail open.
func RateLimit(limiter services.RateLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.ClientIP()

		allowed, retryAfter, err := limiter.Allow(c.Request.Context(), key)
		if err != nil {
			log.WithError(err).WithField("client_ip", key).Warn("rate limiter unavailable, allowing request")
			c.Next()
			return
		}

		if !allowed {
			TrackError("rate_limit")
			if retryAfter > 0 {
				c.Header("Retry-After", strconv.Itoa(int(math.Ceil(retryAfter.Seconds()))))
			}
			utils.TooManyRequests(c, "Too many requests, please try again later")
			return
		}

		c.Next()
	}
}
