package middleware

import (
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RequestID tags every request with an X-Request-ID so a slow analysis or
// chat call can be traced through the logs. A client-supplied id is reused,
// otherwise one is generated.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader("X-Request-ID")
		if requestID == "" {
			requestID = uuid.New().String()
		}
		c.Set("request_id", requestID)
		c.Header("X-Request-ID", requestID)
		c.Next()
	}
}

// Logger writes one line per request: id, status, method, path, elapsed time.
// Inference-bound requests routinely take tens of seconds, so the elapsed
// time is the figure worth watching here.
func Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		requestID, _ := c.Get("request_id")
		log.Printf("[%s] %d %s %s in %s",
			requestID,
			c.Writer.Status(),
			c.Request.Method,
			c.Request.URL.Path,
			time.Since(start),
		)
	}
}

// Recovery turns handler panics into 500 responses.
func Recovery() gin.HandlerFunc {
	return gin.Recovery()
}
