package middleware

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RequestIDKey is the context key under which the request id is stored.
const RequestIDKey = "request_id"

// requestIDHeader carries the id across the boundary in both directions.
const requestIDHeader = "X-Request-ID"

// RequestID assigns every request an id, honoring one supplied by the
// caller, and echoes it back in the response headers.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if id == "" {
			id = uuid.New().String()
		}
		c.Set(RequestIDKey, id)
		c.Header(requestIDHeader, id)
		c.Next()
	}
}

// Probe endpoints are polled constantly; logging them drowns the signal.
var unloggedPaths = map[string]bool{
	"/healthz": true,
	"/readyz":  true,
}

// Logger writes one line per completed request: id, method, path, status
// and latency.
func Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		if unloggedPaths[c.Request.URL.Path] {
			c.Next()
			return
		}

		start := time.Now()
		c.Next()

		id := c.GetString(RequestIDKey)
		log.Printf("middleware.Logger: [%s] %s %s -> %d in %s",
			id, c.Request.Method, c.Request.URL.Path, c.Writer.Status(), time.Since(start))
	}
}

// Recovery converts panics into a 500 envelope instead of dropping the
// connection, logging the panic value with the request id.
func Recovery() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		id := c.GetString(RequestIDKey)
		log.Printf("middleware.Recovery: [%s] panic recovered: %v", id, recovered)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   gin.H{"code": "INTERNAL_ERROR", "message": "an internal error occurred"},
		})
	})
}
