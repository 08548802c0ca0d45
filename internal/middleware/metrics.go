package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/uni-timetable-api/internal/service"
)

// Metrics records request counts and latencies by route template.
func Metrics(metricsSvc *service.MetricsService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if metricsSvc == nil {
			c.Next()
			return
		}
		start := time.Now()
		c.Next()
		path := c.FullPath()
		if path == "" {
			// Unmatched paths would otherwise create one series per URL.
			path = "unmatched"
		}
		metricsSvc.ObserveHTTPRequest(c.Request.Method, path, c.Writer.Status(), time.Since(start))
	}
}
