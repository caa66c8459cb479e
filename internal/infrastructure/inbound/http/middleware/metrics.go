package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	ports "post-board-service/internal/domain/ports/output"
)

func Metrics(metrics ports.MetricsProvider) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unknown"
		}
		method := c.Request.Method
		metrics.IncrementHTTPRequests(method, route, strconv.Itoa(c.Writer.Status()))
		metrics.RecordHTTPRequestDuration(method, route, time.Since(start))
	}
}
