package middleware

import "github.com/gin-gonic/gin"

// NoStoreMiddleware marks API responses as uncacheable so every read reflects the
// latest committed write.
func NoStoreMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Cache-Control", "no-store")
		c.Next()
	}
}
