package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/noah-isme/uni-timetable-api/internal/dto"
	"github.com/noah-isme/uni-timetable-api/internal/middleware"
	appErrors "github.com/noah-isme/uni-timetable-api/pkg/errors"
	"github.com/noah-isme/uni-timetable-api/pkg/response"
)

// actorFromContext turns JWT claims into a service actor, writing 401 when absent.
func actorFromContext(c *gin.Context) (dto.Actor, bool) {
	claims, ok := middleware.CurrentClaims(c)
	if !ok {
		response.Error(c, appErrors.ErrUnauthorized)
		return dto.Actor{}, false
	}
	return dto.Actor{UserID: claims.UserID, Role: claims.Role}, true
}

func bindJSON(c *gin.Context, dest interface{}, message string) bool {
	if err := c.ShouldBindJSON(dest); err != nil {
		response.Error(c, appErrors.WrapAs(appErrors.ErrValidation, err, message))
		return false
	}
	return true
}

func bindQuery(c *gin.Context, dest interface{}, message string) bool {
	if err := c.ShouldBindQuery(dest); err != nil {
		response.Error(c, appErrors.WrapAs(appErrors.ErrValidation, err, message))
		return false
	}
	return true
}
