package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/noah-isme/uni-timetable-api/pkg/middleware/requestid"
)

// Audit logs an audit record for every successful schedule mutation.
func Audit(logger *zap.Logger, action string) gin.HandlerFunc {
	if logger == nil {
		logger = zap.NewNop()
	}
	logger = logger.Named("audit")
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		if status >= 400 {
			return
		}
		fields := []zap.Field{
			zap.String("action", action),
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", status),
			zap.Duration("latency", time.Since(start)),
			zap.String("ip", c.ClientIP()),
		}
		if id := c.Param("id"); id != "" {
			fields = append(fields, zap.String("resource_id", id))
		}
		if claims, ok := CurrentClaims(c); ok {
			fields = append(fields, zap.String("user_id", claims.UserID), zap.String("role", string(claims.Role)))
		}
		if rid := requestid.Value(c); rid != "" {
			fields = append(fields, zap.String("request_id", rid))
		}
		logger.Info("schedule mutated", fields...)
	}
}
