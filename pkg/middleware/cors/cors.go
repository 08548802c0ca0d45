package cors

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// New returns a CORS middleware honoring allowedOrigins. An empty list allows every origin.
func New(allowedOrigins []string) gin.HandlerFunc {
	allowAll := len(allowedOrigins) == 0
	originSet := make(map[string]struct{}, len(allowedOrigins))
	for _, origin := range allowedOrigins {
		originSet[strings.TrimRight(origin, "/")] = struct{}{}
	}

	return func(c *gin.Context) {
		h := c.Writer.Header()
		origin := c.GetHeader("Origin")
		switch {
		case origin != "" && (allowAll || allowed(originSet, origin)):
			h.Set("Access-Control-Allow-Origin", origin)
			h.Set("Access-Control-Allow-Credentials", "true")
		case origin == "" && allowAll:
			h.Set("Access-Control-Allow-Origin", "*")
		}

		h.Set("Vary", "Origin")
		h.Set("Access-Control-Allow-Headers", "Authorization, Content-Type, X-Request-ID")
		h.Set("Access-Control-Allow-Methods", "GET, POST, PATCH, DELETE, OPTIONS")
		// Exports are downloaded by the browser and need the file name.
		h.Set("Access-Control-Expose-Headers", "Content-Disposition, X-Request-ID")
		h.Set("Access-Control-Max-Age", "600")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

func allowed(originSet map[string]struct{}, origin string) bool {
	_, ok := originSet[strings.TrimRight(origin, "/")]
	return ok
}
