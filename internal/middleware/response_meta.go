package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
)

const (
	requestStartKey = "request_start"
	cacheHitKey     = "cache_hit"
)

// WithResponseMeta stamps the request start so handlers can report processing time.
func WithResponseMeta() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(requestStartKey, time.Now())
		c.Next()
	}
}

// SetCacheHit records whether the payload came from the cache.
func SetCacheHit(c *gin.Context, hit bool) {
	c.Set(cacheHitKey, hit)
}

// ResponseMeta builds the envelope meta block for the current request.
func ResponseMeta(c *gin.Context) map[string]interface{} {
	meta := make(map[string]interface{}, 2)
	if start, ok := c.Get(requestStartKey); ok {
		if t, ok := start.(time.Time); ok {
			meta["processing_time_ms"] = time.Since(t).Milliseconds()
		}
	}
	if hit, ok := c.Get(cacheHitKey); ok {
		meta[cacheHitKey] = hit
	}
	if len(meta) == 0 {
		return nil
	}
	return meta
}
