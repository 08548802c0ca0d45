package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/noah-isme/uni-timetable-api/internal/models"
	appErrors "github.com/noah-isme/uni-timetable-api/pkg/errors"
	"github.com/noah-isme/uni-timetable-api/pkg/response"
)

// RequireRoles lets the request through only when the caller holds one of roles.
// It must run after JWT.
func RequireRoles(roles ...models.UserRole) gin.HandlerFunc {
	allowed := make(map[models.UserRole]struct{}, len(roles))
	for _, role := range roles {
		allowed[role] = struct{}{}
	}
	return func(c *gin.Context) {
		claims, ok := CurrentClaims(c)
		if !ok {
			response.Error(c, appErrors.ErrUnauthorized)
			c.Abort()
			return
		}
		if _, ok := allowed[claims.Role]; !ok {
			response.Error(c, appErrors.Clone(appErrors.ErrForbidden, "role "+string(claims.Role)+" cannot access this resource"))
			c.Abort()
			return
		}
		c.Next()
	}
}
