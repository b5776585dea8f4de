package handlers

import (
	"net/http"
	"strconv"

	"github.com/alimgiray/shiftledger/internal/models"
	"github.com/alimgiray/shiftledger/internal/services"
	"github.com/gin-gonic/gin"
)

type TimesheetHandler struct {
	timesheetService *services.TimesheetService
}

func NewTimesheetHandler(timesheetService *services.TimesheetService) *TimesheetHandler {
	return &TimesheetHandler{
		timesheetService: timesheetService,
	}
}

type timesheetRequest struct {
	Date      string `json:"date" binding:"required"`
	StartTime string `json:"startTime" binding:"required"`
	EndTime   string `json:"endTime" binding:"required"`
}

// SubmitTimesheet records the caller's hours for a date
func (h *TimesheetHandler) SubmitTimesheet(c *gin.Context) {
	var req timesheetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "date, startTime and endTime are required")
		return
	}

	entry, err := h.timesheetService.SubmitTimesheet(principal(c), req.Date, req.StartTime, req.EndTime)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "totalHours": entry.TotalHours, "timesheet": entry})
}

// GetTimesheet returns the caller's entry for a date
func (h *TimesheetHandler) GetTimesheet(c *gin.Context) {
	entry, err := h.timesheetService.GetTimesheet(principal(c), c.Param("date"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, entry)
}

// MonthlyTimesheets lists the caller's entries for a month
func (h *TimesheetHandler) MonthlyTimesheets(c *gin.Context) {
	year, month, ok := yearMonthParams(c)
	if !ok {
		return
	}

	entries, err := h.timesheetService.MonthlyTimesheets(principal(c), year, month)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, entries)
}

// AllTimesheets lists every user's entries for a month
func (h *TimesheetHandler) AllTimesheets(c *gin.Context) {
	year, month, ok := yearMonthParams(c)
	if !ok {
		return
	}

	entries, err := h.timesheetService.AllTimesheets(principal(c), year, month)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, entries)
}

// PendingTimesheets lists entries awaiting review
func (h *TimesheetHandler) PendingTimesheets(c *gin.Context) {
	entries, err := h.timesheetService.PendingTimesheets(principal(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, entries)
}

// WeeklyRecordedHours reports recorded timesheet hours against the weekly cap
func (h *TimesheetHandler) WeeklyRecordedHours(c *gin.Context) {
	week, ok := weekParam(c, "week")
	if !ok {
		return
	}

	total, err := h.timesheetService.WeeklyRecordedHours(principal(c), c.Query("userId"), week)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"weekStart":      week,
		"totalHours":     total,
		"cap":            models.WeeklyHourCap,
		"remainingHours": max(float64(models.WeeklyHourCap)-total, 0),
	})
}

func (h *TimesheetHandler) Approve(c *gin.Context) {
	if err := h.timesheetService.Approve(principal(c), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *TimesheetHandler) Reject(c *gin.Context) {
	if err := h.timesheetService.Reject(principal(c), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func yearMonthParams(c *gin.Context) (int, int, bool) {
	year, err := strconv.Atoi(c.Param("year"))
	if err != nil {
		badRequest(c, "Invalid year")
		return 0, 0, false
	}
	month, err := strconv.Atoi(c.Param("month"))
	if err != nil {
		badRequest(c, "Invalid month")
		return 0, 0, false
	}
	return year, month, true
}
