package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/uni-timetable-api/internal/dto"
	"github.com/noah-isme/uni-timetable-api/internal/middleware"
	"github.com/noah-isme/uni-timetable-api/internal/models"
	"github.com/noah-isme/uni-timetable-api/pkg/response"
)

type eventService interface {
	List(ctx context.Context, query dto.EventQuery) ([]models.Event, *models.Pagination, error)
	Get(ctx context.Context, id string) (*dto.EventResult, error)
	Create(ctx context.Context, actor dto.Actor, req dto.CreateEventRequest) (*dto.EventResult, error)
	RequestStatus(ctx context.Context, actor dto.Actor, id string, req dto.UpdateEventStatusRequest) (*models.Event, error)
	ApproveCancellation(ctx context.Context, actor dto.Actor, id string) error
	RejectCancellation(ctx context.Context, actor dto.Actor, id string) (*models.Event, error)
	RejectReschedule(ctx context.Context, actor dto.Actor, id string) (*models.Event, error)
	Cancel(ctx context.Context, actor dto.Actor, id string) error
	CommitReschedule(ctx context.Context, actor dto.Actor, id string, suggestion dto.RescheduleSuggestion) (*dto.EventResult, error)
}

// EventHandler manages master schedule events.
type EventHandler struct {
	service eventService
}

// NewEventHandler constructs the handler.
func NewEventHandler(svc eventService) *EventHandler {
	return &EventHandler{service: svc}
}

// List godoc
// @Summary List scheduled events
// @Tags Events
// @Produce json
// @Param day query string false "Day of week"
// @Param facultyId query string false "Faculty"
// @Param batchId query string false "Batch"
// @Param classroomId query string false "Classroom"
// @Param clubId query string false "Club"
// @Param status query string false "confirmed, cancellation_requested or reschedule_requested"
// @Param page query int false "Page"
// @Param pageSize query int false "Page size"
// @Success 200 {object} response.Envelope
// @Router /events [get]
func (h *EventHandler) List(c *gin.Context) {
	var query dto.EventQuery
	if !bindQuery(c, &query, "invalid event filters") {
		return
	}
	events, pagination, err := h.service.List(c.Request.Context(), query)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, events, pagination)
}

// Get godoc
// @Summary Get an event with its current conflict
// @Tags Events
// @Produce json
// @Param id path string true "Event ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /events/{id} [get]
func (h *EventHandler) Get(c *gin.Context) {
	result, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result, nil)
}

// Create godoc
// @Summary Schedule an academic class
// @Description Conflicts are advisory: the class is stored and the response reports any conflict it causes.
// @Tags Events
// @Accept json
// @Produce json
// @Param payload body dto.CreateEventRequest true "Class payload"
// @Success 201 {object} response.Envelope
// @Router /events [post]
func (h *EventHandler) Create(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		return
	}
	var req dto.CreateEventRequest
	if !bindJSON(c, &req, "invalid event payload") {
		return
	}
	result, err := h.service.Create(c.Request.Context(), actor, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, result, middleware.ResponseMeta(c))
}

// RequestStatus godoc
// @Summary Request cancellation or rescheduling of a class
// @Description Students may request changes to any class, faculty only to their own.
// @Tags Events
// @Accept json
// @Produce json
// @Param id path string true "Event ID"
// @Param payload body dto.UpdateEventStatusRequest true "Requested status"
// @Success 200 {object} response.Envelope
// @Router /events/{id}/status [patch]
func (h *EventHandler) RequestStatus(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		return
	}
	var req dto.UpdateEventStatusRequest
	if !bindJSON(c, &req, "invalid status payload") {
		return
	}
	event, err := h.service.RequestStatus(c.Request.Context(), actor, c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, event, nil)
}

// ApproveCancellation godoc
// @Summary Approve a pending cancellation, removing the class
// @Tags Events
// @Param id path string true "Event ID"
// @Success 204
// @Router /events/{id}/cancellation/approve [post]
func (h *EventHandler) ApproveCancellation(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		return
	}
	if err := h.service.ApproveCancellation(c.Request.Context(), actor, c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// RejectCancellation godoc
// @Summary Reject a pending cancellation
// @Tags Events
// @Produce json
// @Param id path string true "Event ID"
// @Success 200 {object} response.Envelope
// @Router /events/{id}/cancellation/reject [post]
func (h *EventHandler) RejectCancellation(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		return
	}
	event, err := h.service.RejectCancellation(c.Request.Context(), actor, c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, event, nil)
}

// RejectReschedule godoc
// @Summary Reject a pending reschedule request
// @Tags Events
// @Produce json
// @Param id path string true "Event ID"
// @Success 200 {object} response.Envelope
// @Router /events/{id}/reschedule/reject [post]
func (h *EventHandler) RejectReschedule(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		return
	}
	event, err := h.service.RejectReschedule(c.Request.Context(), actor, c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, event, nil)
}

// CommitReschedule godoc
// @Summary Move a class to a suggested slot
// @Tags Events
// @Accept json
// @Produce json
// @Param id path string true "Event ID"
// @Param payload body dto.RescheduleSuggestion true "Target slot"
// @Success 200 {object} response.Envelope
// @Router /events/{id}/reschedule/commit [post]
func (h *EventHandler) CommitReschedule(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		return
	}
	var suggestion dto.RescheduleSuggestion
	if !bindJSON(c, &suggestion, "invalid reschedule payload") {
		return
	}
	result, err := h.service.CommitReschedule(c.Request.Context(), actor, c.Param("id"), suggestion)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result, nil)
}

// Cancel godoc
// @Summary Cancel a class or club booking outright
// @Description Faculty cancel their own classes and coordinators their own club bookings.
// @Tags Events
// @Param id path string true "Event ID"
// @Success 204
// @Router /events/{id} [delete]
func (h *EventHandler) Cancel(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		return
	}
	if err := h.service.Cancel(c.Request.Context(), actor, c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
