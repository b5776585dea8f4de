package handlers

import (
	"fmt"
	"net/http"

	"github.com/alimgiray/shiftledger/internal/services"
	"github.com/gin-gonic/gin"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type ReportHandler struct {
	reportService *services.ReportService
}

func NewReportHandler(reportService *services.ReportService) *ReportHandler {
	return &ReportHandler{
		reportService: reportService,
	}
}

// EmployeeSchedule returns one employee's hours per day for a week
func (h *ReportHandler) EmployeeSchedule(c *gin.Context) {
	week, ok := weekParam(c, "weekStart")
	if !ok {
		return
	}

	report, err := h.reportService.EmployeeScheduleReport(principal(c), c.Param("userId"), week)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, report)
}

// HoursSummary aggregates a department's hours over a date range
func (h *ReportHandler) HoursSummary(c *gin.Context) {
	report, err := h.reportService.HoursSummaryReport(principal(c), c.Query("department"), c.Param("start"), c.Param("end"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, report)
}

// ExportHoursSummary downloads the hours summary as a spreadsheet
func (h *ReportHandler) ExportHoursSummary(c *gin.Context) {
	report, err := h.reportService.HoursSummaryReport(principal(c), c.Query("department"), c.Param("start"), c.Param("end"))
	if err != nil {
		respondError(c, err)
		return
	}

	data, err := services.ExportHoursSummary(report)
	if err != nil {
		respondError(c, err)
		return
	}

	filename := fmt.Sprintf("hours-summary_%s_%s.xlsx", report.StartDate, report.EndDate)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, xlsxContentType, data)
}

// AvailabilityComparison compares availability with assignments for a week
func (h *ReportHandler) AvailabilityComparison(c *gin.Context) {
	week, ok := weekParam(c, "weekStart")
	if !ok {
		return
	}

	report, err := h.reportService.AvailabilityComparisonReport(principal(c), c.Param("userId"), week)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, report)
}
