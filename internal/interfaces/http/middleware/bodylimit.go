package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// BodyLimit rejects request bodies larger than maxBytes. Declared sizes are
// rejected up front from Content-Length; chunked uploads with no declared
// length are capped while the handler reads, via http.MaxBytesReader.
func BodyLimit(maxBytes int64) gin.HandlerFunc {
	tooLarge := gin.H{
		"success": false,
		"error": gin.H{
			"code":    "REQUEST_TOO_LARGE",
			"message": "Request body exceeds maximum allowed size",
		},
	}

	return func(c *gin.Context) {
		req := c.Request
		if req.ContentLength > maxBytes {
			c.AbortWithStatusJSON(http.StatusRequestEntityTooLarge, tooLarge)
			return
		}

		req.Body = http.MaxBytesReader(c.Writer, req.Body, maxBytes)
		c.Next()
	}
}
