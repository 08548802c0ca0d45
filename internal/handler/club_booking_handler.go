package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/uni-timetable-api/internal/dto"
	"github.com/noah-isme/uni-timetable-api/internal/models"
	"github.com/noah-isme/uni-timetable-api/pkg/response"
)

type clubBookingService interface {
	Bookability(query dto.SlotQuery) (*dto.SlotBookability, error)
	Availability(ctx context.Context, query dto.ClubAvailabilityQuery) (*dto.ClubAvailability, error)
	Book(ctx context.Context, actor dto.Actor, req dto.ClubBookingRequest) (*models.Event, error)
}

// ClubBookingHandler exposes the club coordinator booking flow.
type ClubBookingHandler struct {
	service clubBookingService
}

// NewClubBookingHandler constructs the handler.
func NewClubBookingHandler(svc clubBookingService) *ClubBookingHandler {
	return &ClubBookingHandler{service: svc}
}

// Bookable godoc
// @Summary Check whether a club slot can be booked now
// @Description 12:00 is never bookable, slots already past this week are not bookable, Saturday is open and weekdays open from 18:00.
// @Tags Club bookings
// @Produce json
// @Param day query string true "Monday through Saturday"
// @Param start query string true "Start time HH:mm"
// @Success 200 {object} response.Envelope
// @Router /slots/bookable [get]
func (h *ClubBookingHandler) Bookable(c *gin.Context) {
	var query dto.SlotQuery
	if !bindQuery(c, &query, "invalid slot query") {
		return
	}
	slot, err := h.service.Bookability(query)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, slot, nil)
}

// Availability godoc
// @Summary Bookability and free classrooms for a club slot
// @Tags Club bookings
// @Produce json
// @Param day query string true "Monday through Saturday"
// @Param start query string true "Start time HH:mm"
// @Param duration query int false "Hours (1 or 2)"
// @Success 200 {object} response.Envelope
// @Router /club-bookings/availability [get]
func (h *ClubBookingHandler) Availability(c *gin.Context) {
	var query dto.ClubAvailabilityQuery
	if !bindQuery(c, &query, "invalid availability query") {
		return
	}
	availability, err := h.service.Availability(c.Request.Context(), query)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, availability, nil)
}

// Book godoc
// @Summary Book a classroom for a club activity
// @Tags Club bookings
// @Accept json
// @Produce json
// @Param payload body dto.ClubBookingRequest true "Booking payload"
// @Success 201 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Failure 422 {object} response.Envelope
// @Router /club-bookings [post]
func (h *ClubBookingHandler) Book(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		return
	}
	var req dto.ClubBookingRequest
	if !bindJSON(c, &req, "invalid booking payload") {
		return
	}
	event, err := h.service.Book(c.Request.Context(), actor, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, event)
}
