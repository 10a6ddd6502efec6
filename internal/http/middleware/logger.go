package middleware

import (
	"log"
	"time"

	"github.com/gin-gonic/gin"
)

// Logger emits one request line with the request id attached. The path
// is captured before the handler chain runs so rewrites don't mask it.
func Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		method := c.Request.Method

		c.Next()

		latencyMs := float64(time.Since(start).Microseconds()) / 1000.0
		log.Printf("[HTTP] request_id=%s method=%s path=%s status=%d latency_ms=%.3f ip=%s",
			GetRequestID(c), method, path, c.Writer.Status(), latencyMs, c.ClientIP())
	}
}
