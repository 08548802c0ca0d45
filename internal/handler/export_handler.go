package handler

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/uni-timetable-api/internal/dto"
	"github.com/noah-isme/uni-timetable-api/internal/service"
	"github.com/noah-isme/uni-timetable-api/pkg/response"
)

type scheduleExporter interface {
	ScheduleExport(ctx context.Context, format string) (*service.ExportFile, error)
}

// ExportHandler streams downloadable schedules.
type ExportHandler struct {
	exporter scheduleExporter
}

// NewExportHandler constructs the handler.
func NewExportHandler(exporter scheduleExporter) *ExportHandler {
	return &ExportHandler{exporter: exporter}
}

// Schedule godoc
// @Summary Download the master schedule
// @Description Rows with a conflict are highlighted in PDF and XLSX output.
// @Tags Exports
// @Produce text/csv
// @Produce application/pdf
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param format query string false "csv (default), pdf or xlsx"
// @Success 200 {file} file
// @Router /exports/schedule [get]
func (h *ExportHandler) Schedule(c *gin.Context) {
	var query dto.ExportQuery
	if !bindQuery(c, &query, "invalid export query") {
		return
	}
	format := query.Format
	if format == "" {
		format = "csv"
	}
	file, err := h.exporter.ScheduleExport(c.Request.Context(), format)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Attachment(c, file.Filename, file.ContentType, file.Body)
}
