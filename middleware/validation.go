package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"autoapply/utils"
)

// MaxRequestSize caps the request body. Apply payloads are small JSON
// documents; anything larger is rejected before it reaches a handler.
func MaxRequestSize(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}

// ValidateContentType rejects writes whose Content-Type matches none of the
// accepted types. Reads pass through untouched.
func ValidateContentType(accepted ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method == http.MethodGet ||
			c.Request.Method == http.MethodDelete ||
			c.Request.Method == http.MethodOptions {
			c.Next()
			return
		}

		contentType := c.GetHeader("Content-Type")
		for _, want := range accepted {
			if strings.Contains(contentType, want) {
				c.Next()
				return
			}
		}

		utils.BadRequestError(c, "Unsupported content type", nil)
		c.Abort()
	}
}
