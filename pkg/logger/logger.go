package logger

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/noah-isme/uni-timetable-api/pkg/config"
	"github.com/noah-isme/uni-timetable-api/pkg/middleware/requestid"
)

// New builds the service logger. Production uses the JSON encoder unless LOG_FORMAT=console.
func New(cfg *config.Config) (*zap.Logger, error) {
	var zapCfg zap.Config
	if cfg.Env == config.EnvProduction {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
	}

	switch cfg.Log.Format {
	case "console":
		zapCfg.Encoding = "console"
	default:
		zapCfg.Encoding = "json"
	}

	if cfg.Log.Level != "" {
		if err := zapCfg.Level.UnmarshalText([]byte(cfg.Log.Level)); err != nil {
			zapCfg.Level = zap.NewAtomicLevelAt(zapcore.InfoLevel)
		}
	}

	zapCfg.EncoderConfig.TimeKey = "timestamp"
	zapCfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	zapCfg.InitialFields = map[string]interface{}{
		"service":  "uni-timetable-api",
		"timezone": cfg.Timetable.Timezone,
	}

	return zapCfg.Build()
}

// GinMiddleware logs one line per request, escalating the level for 4xx and 5xx responses.
func GinMiddleware(l *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		latency := time.Since(start)
		status := c.Writer.Status()

		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.String("route", c.FullPath()),
			zap.Int("status", status),
			zap.Duration("latency", latency),
			zap.String("ip", c.ClientIP()),
		}
		if reqID := requestid.Value(c); reqID != "" {
			fields = append(fields, zap.String("request_id", reqID))
		}
		if len(c.Errors) > 0 {
			fields = append(fields, zap.String("errors", c.Errors.String()))
		}

		switch {
		case status >= 500:
			l.Error("http_request", fields...)
		case status >= 400:
			l.Warn("http_request", fields...)
		default:
			l.Info("http_request", fields...)
		}
	}
}
