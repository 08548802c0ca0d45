package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/uni-timetable-api/internal/service"
	"github.com/noah-isme/uni-timetable-api/pkg/response"
)

// ReadinessCheck reports whether a dependency can serve traffic.
type ReadinessCheck func(ctx context.Context) error

// MetricsHandler exposes observability endpoints.
type MetricsHandler struct {
	metrics *service.MetricsService
	checks  map[string]ReadinessCheck
}

// NewMetricsHandler constructs a metrics handler. checks are run by Ready.
func NewMetricsHandler(metrics *service.MetricsService, checks map[string]ReadinessCheck) *MetricsHandler {
	return &MetricsHandler{metrics: metrics, checks: checks}
}

// Prometheus serves the Prometheus metrics endpoint.
func (h *MetricsHandler) Prometheus(c *gin.Context) {
	if h.metrics == nil {
		c.Status(http.StatusServiceUnavailable)
		return
	}
	h.metrics.Handler().ServeHTTP(c.Writer, c.Request)
}

// Health responds with a generic OK payload for liveness probes.
func (h *MetricsHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Ready godoc
// @Summary Readiness probe checking the database and cache
// @Tags System
// @Produce json
// @Success 200 {object} map[string]string
// @Failure 503 {object} map[string]string
// @Router /ready [get]
func (h *MetricsHandler) Ready(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	status := http.StatusOK
	results := gin.H{}
	for name, check := range h.checks {
		if err := check(ctx); err != nil {
			results[name] = err.Error()
			status = http.StatusServiceUnavailable
			continue
		}
		results[name] = "ok"
	}
	c.JSON(status, results)
}

// Snapshot godoc
// @Summary Process counters for the admin dashboard
// @Tags System
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /system/metrics [get]
func (h *MetricsHandler) Snapshot(c *gin.Context) {
	response.JSON(c, http.StatusOK, h.metrics.Snapshot(), nil)
}
