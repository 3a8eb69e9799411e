package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// devOrigins are the dev-server origins the frontend runs on locally.
// Production traffic is same-origin, so nothing else is whitelisted.
var devOrigins = []string{
	"http://localhost:3000",
	"http://127.0.0.1:3000",
	"http://localhost:5173",
	"http://127.0.0.1:5173",
}

func originAllowed(origin string) bool {
	for _, allowed := range devOrigins {
		if origin == allowed {
			return true
		}
	}
	return false
}

// CORS answers preflight requests and marks responses for the allowed
// dev origins. The API surface only uses GET and POST.
func CORS() gin.HandlerFunc {
	return func(c *gin.Context) {
		if origin := c.GetHeader("Origin"); originAllowed(origin) {
			c.Header("Access-Control-Allow-Origin", origin)
			c.Header("Vary", "Origin")
		}
		c.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Accept, Origin, X-Request-ID")
		c.Header("Access-Control-Max-Age", "86400")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}
