package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/uni-timetable-api/internal/dto"
	"github.com/noah-isme/uni-timetable-api/internal/middleware"
	"github.com/noah-isme/uni-timetable-api/internal/models"
	"github.com/noah-isme/uni-timetable-api/pkg/response"
)

type scheduleAnalyzer interface {
	Analysis(ctx context.Context) (*dto.ScheduleAnalysis, bool, error)
	ReferenceTables(ctx context.Context) (models.ReferenceTables, error)
}

type conflictsPayload struct {
	Conflicts   []models.Conflict  `json:"conflicts"`
	Counts      dto.ConflictCounts `json:"counts"`
	EventCount  int                `json:"eventCount"`
	GeneratedAt time.Time          `json:"generatedAt"`
}

// ScheduleHandler serves analysis of the master schedule and its reference data.
type ScheduleHandler struct {
	analyzer scheduleAnalyzer
}

// NewScheduleHandler constructs the handler.
func NewScheduleHandler(analyzer scheduleAnalyzer) *ScheduleHandler {
	return &ScheduleHandler{analyzer: analyzer}
}

// Conflicts godoc
// @Summary Conflicts in the master schedule
// @Description Double bookings take precedence over workload warnings; each event carries at most one conflict.
// @Tags Schedule
// @Produce json
// @Param type query string false "Only this conflict type (double-booking or workload)"
// @Success 200 {object} response.Envelope
// @Router /schedule/conflicts [get]
func (h *ScheduleHandler) Conflicts(c *gin.Context) {
	analysis, cached, err := h.analyzer.Analysis(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	middleware.SetCacheHit(c, cached)

	conflicts := analysis.Conflicts
	if kind := models.ConflictKind(c.Query("type")); kind != "" {
		conflicts = make([]models.Conflict, 0, len(analysis.Conflicts))
		for _, conflict := range analysis.Conflicts {
			if conflict.Type == kind {
				conflicts = append(conflicts, conflict)
			}
		}
	}
	response.JSON(c, http.StatusOK, conflictsPayload{
		Conflicts:   conflicts,
		Counts:      analysis.Counts,
		EventCount:  analysis.EventCount,
		GeneratedAt: analysis.GeneratedAt,
	}, nil, middleware.ResponseMeta(c))
}

// Metrics godoc
// @Summary Quality metrics of the master schedule
// @Tags Schedule
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /schedule/metrics [get]
func (h *ScheduleHandler) Metrics(c *gin.Context) {
	analysis, cached, err := h.analyzer.Analysis(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	middleware.SetCacheHit(c, cached)
	response.JSON(c, http.StatusOK, analysis.Metrics, nil, middleware.ResponseMeta(c))
}

// Reference godoc
// @Summary Reference tables (subjects, faculty, batches, classrooms, clubs, coordinators)
// @Tags Schedule
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /reference [get]
func (h *ScheduleHandler) Reference(c *gin.Context) {
	tables, err := h.analyzer.ReferenceTables(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, tables, nil)
}
