package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jafarshop/storefront/internal/metrics"
)

// Metrics records request count and latency per matched route
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		metrics.RecordHTTPRequest(c.Request.Method, c.FullPath(), c.Writer.Status(), time.Since(start))
	}
}
