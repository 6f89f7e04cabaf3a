package middleware

import (
	"runtime/debug"

	"notesapi/utils"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

// EnhancedRecoveryMiddleware turns a panic in a handler into an opaque 500 and logs
// the stack with the request id.
func EnhancedRecoveryMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				TrackError("panic")
				log.WithFields(log.Fields{
					"panic":      err,
					"method":     c.Request.Method,
					"path":       c.Request.URL.Path,
					"request_id": c.GetString(RequestIDKey),
					"stack":      string(debug.Stack()),
				}).Error("recovered from panic")

				utils.InternalError(c, "Internal Server Error")
				c.Abort()
			}
		}()
		c.Next()
	}
}
