package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	RequestIDKey    = "request_id"
	requestIDHeader = "X-Request-ID"
	// longer client-supplied ids are replaced to keep log lines bounded
	requestIDMaxLen = 64
)

// RequestID reads X-Request-ID or generates a UUID, stores it on the context
// and echoes it in the response header.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		rid := c.GetHeader(requestIDHeader)
		if rid == "" || len(rid) > requestIDMaxLen {
			rid = uuid.New().String()
		}

		c.Set(RequestIDKey, rid)
		c.Header(requestIDHeader, rid)

		c.Next()
	}
}
