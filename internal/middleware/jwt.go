package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/uni-timetable-api/internal/models"
	appErrors "github.com/noah-isme/uni-timetable-api/pkg/errors"
	"github.com/noah-isme/uni-timetable-api/pkg/response"
)

// ContextUserKey is the gin context key storing JWT claims.
const ContextUserKey = "currentUser"

// TokenValidator verifies bearer tokens.
type TokenValidator interface {
	ValidateToken(token string) (*models.JWTClaims, error)
}

// JWT protects routes by requiring a valid access token.
func JWT(tokens TokenValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, ok := bearerToken(c)
		if !ok {
			response.Error(c, appErrors.Clone(appErrors.ErrUnauthorized, "missing or malformed authorization header"))
			c.Abort()
			return
		}

		claims, err := tokens.ValidateToken(raw)
		if err != nil {
			response.Error(c, err)
			c.Abort()
			return
		}

		c.Set(ContextUserKey, claims)
		c.Next()
	}
}

// CurrentClaims returns the claims stored by JWT.
func CurrentClaims(c *gin.Context) (*models.JWTClaims, bool) {
	value, exists := c.Get(ContextUserKey)
	if !exists {
		return nil, false
	}
	claims, ok := value.(*models.JWTClaims)
	return claims, ok && claims != nil
}

func bearerToken(c *gin.Context) (string, bool) {
	header := c.GetHeader("Authorization")
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	token := strings.TrimSpace(parts[1])
	return token, token != ""
}
