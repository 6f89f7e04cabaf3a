package middleware

import (
	"net/http"

	"notesapi/utils"

	"github.com/gin-gonic/gin"
)

// RequestSizeLimiter rejects bodies above maxSize bytes. Requests without a declared
// length are capped by http.MaxBytesReader, which makes decoding fail past the limit.
func RequestSizeLimiter(maxSize int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.ContentLength > maxSize {
			utils.PayloadTooLarge(c, "Request body too large")
			return
		}

		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxSize)
		c.Next()
	}
}
