package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/uni-timetable-api/internal/dto"
	"github.com/noah-isme/uni-timetable-api/pkg/response"
)

type timetableService interface {
	Evaluate(ctx context.Context, req dto.EvaluateTimetablesRequest) (*dto.EvaluateTimetablesResponse, error)
	Publish(ctx context.Context, actor dto.Actor, req dto.PublishTimetableRequest) (*dto.PublishTimetableResponse, error)
}

// TimetableHandler serves the admin dashboard's candidate ranking and publishing.
type TimetableHandler struct {
	service timetableService
}

// NewTimetableHandler constructs the handler.
func NewTimetableHandler(svc timetableService) *TimetableHandler {
	return &TimetableHandler{service: svc}
}

// Evaluate godoc
// @Summary Score and rank candidate timetables
// @Tags Timetables
// @Accept json
// @Produce json
// @Param payload body dto.EvaluateTimetablesRequest true "Candidates and ranking goal"
// @Success 200 {object} response.Envelope
// @Router /timetables/evaluate [post]
func (h *TimetableHandler) Evaluate(c *gin.Context) {
	var req dto.EvaluateTimetablesRequest
	if !bindJSON(c, &req, "invalid evaluation payload") {
		return
	}
	resp, err := h.service.Evaluate(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, resp, nil)
}

// Publish godoc
// @Summary Replace the master schedule with a candidate
// @Tags Timetables
// @Accept json
// @Produce json
// @Param payload body dto.PublishTimetableRequest true "Timetable to publish"
// @Success 200 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /timetables/publish [post]
func (h *TimetableHandler) Publish(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		return
	}
	var req dto.PublishTimetableRequest
	if !bindJSON(c, &req, "invalid publish payload") {
		return
	}
	resp, err := h.service.Publish(c.Request.Context(), actor, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, resp, nil)
}
