package middleware

import (
	"log"
	"time"

	"github.com/gin-gonic/gin"
)

// Logger writes one line per request: method, path, client IP, status and latency.
func Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		marker := "⬅️"
		if status >= 500 {
			marker = "❌"
		} else if status >= 400 {
			marker = "⚠️"
		}
		log.Printf("%s %s %s %s %d %s", marker, c.Request.Method, c.Request.URL.Path, c.ClientIP(), status, time.Since(start))
	}
}
