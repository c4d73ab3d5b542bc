package middleware

import (
	"time"

	"event-portal/logger"

	"github.com/gin-gonic/gin"
)

const RequestIDHeader = "X-Request-ID"

// RequestID tags every request and logs the outcome against that id.
func RequestID(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Request.Header.Get(RequestIDHeader)
		if id == "" {
			id = logger.GenerateRequestID()
		}
		c.Set(requestIDKey, id)
		c.Writer.Header().Set(RequestIDHeader, id)

		start := time.Now()
		c.Next()

		fields := map[string]interface{}{
			"method":      c.Request.Method,
			"path":        c.FullPath(),
			"status":      c.Writer.Status(),
			"duration_ms": time.Since(start).Milliseconds(),
		}
		if c.Writer.Status() >= 500 {
			log.Warn("request_failed", "request completed with server error", id, fields)
			return
		}
		log.Debug("request_completed", "request completed", id, fields)
	}
}

func GetRequestID(c *gin.Context) string {
	return c.GetString(requestIDKey)
}
