package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"shift_manager_backend/internal/services"
	"shift_manager_backend/pkg/utils"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ReportHandler holds the report service.
type ReportHandler struct {
	reportService services.ReportService
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(rs services.ReportService) *ReportHandler {
	return &ReportHandler{reportService: rs}
}

// GetPerformance handles GET /reports/performance?from=&to=.
func (h *ReportHandler) GetPerformance(c *gin.Context) {
	report, err := h.reportService.GetPerformanceReport(c.Request.Context(), c.Query("from"), c.Query("to"))
	if err != nil {
		utils.LogError(err, "GetPerformance: Error from reportService.GetPerformanceReport")
		respondServiceError(c, err, "Failed to build performance report.")
		return
	}
	c.JSON(http.StatusOK, report)
}

// GetActivity handles GET /reports/activity?limit=.
func (h *ReportHandler) GetActivity(c *gin.Context) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if err != nil {
		utils.RespondValidationFailed(c, "limit must be a number")
		return
	}

	records, err := h.reportService.ListRecentActivity(c.Request.Context(), limit)
	if err != nil {
		utils.LogError(err, "GetActivity: Error from reportService.ListRecentActivity")
		respondServiceError(c, err, "Failed to fetch activity.")
		return
	}
	c.JSON(http.StatusOK, records)
}

// ExportPerformance handles GET /reports/export?from=&to= and streams an xlsx attachment.
func (h *ReportHandler) ExportPerformance(c *gin.Context) {
	buf, filename, err := h.reportService.ExportPerformance(c.Request.Context(), c.Query("from"), c.Query("to"))
	if err != nil {
		utils.LogError(err, "ExportPerformance: Error from reportService.ExportPerformance")
		respondServiceError(c, err, "Failed to export performance report.")
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}
