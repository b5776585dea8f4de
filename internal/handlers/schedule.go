package handlers

import (
	"net/http"

	"github.com/alimgiray/shiftledger/internal/models"
	"github.com/alimgiray/shiftledger/internal/services"
	"github.com/gin-gonic/gin"
)

type ScheduleHandler struct {
	assignmentService *services.AssignmentService
}

func NewScheduleHandler(assignmentService *services.AssignmentService) *ScheduleHandler {
	return &ScheduleHandler{
		assignmentService: assignmentService,
	}
}

type hourSlotRequest struct {
	UserID        string `json:"userId" binding:"required"`
	WeekStartDate string `json:"weekStartDate" binding:"required"`
	DayOfWeek     *int   `json:"dayOfWeek" binding:"required"`
	Hour          *int   `json:"hour" binding:"required"`
}

type finalizeRequest struct {
	WeekStartDate string `json:"weekStartDate" binding:"required"`
}

func bindSlot(c *gin.Context) (models.HourSlot, bool) {
	var req hourSlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "userId, weekStartDate, dayOfWeek and hour are required")
		return models.HourSlot{}, false
	}
	week, err := models.ParseWeekKey(req.WeekStartDate)
	if err != nil {
		badRequest(c, err.Error())
		return models.HourSlot{}, false
	}
	return models.HourSlot{
		UserID:    req.UserID,
		WeekStart: week,
		DayOfWeek: *req.DayOfWeek,
		Hour:      *req.Hour,
	}, true
}

// AssignHour assigns one hour to an employee
func (h *ScheduleHandler) AssignHour(c *gin.Context) {
	slot, ok := bindSlot(c)
	if !ok {
		return
	}

	assignment, err := h.assignmentService.AssignHour(principal(c), slot)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "assignment": assignment})
}

// UnassignHour clears one assigned hour
func (h *ScheduleHandler) UnassignHour(c *gin.Context) {
	slot, ok := bindSlot(c)
	if !ok {
		return
	}

	if err := h.assignmentService.UnassignHour(principal(c), slot); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// GetAssignments lists a week's hourly assignments
func (h *ScheduleHandler) GetAssignments(c *gin.Context) {
	week, ok := weekParam(c, "week")
	if !ok {
		return
	}

	assignments, err := h.assignmentService.GetAssignments(principal(c), week)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, assignments)
}

// FinalizeWeek locks a week against further changes
func (h *ScheduleHandler) FinalizeWeek(c *gin.Context) {
	var req finalizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "weekStartDate is required")
		return
	}
	week, err := models.ParseWeekKey(req.WeekStartDate)
	if err != nil {
		badRequest(c, err.Error())
		return
	}

	schedule, err := h.assignmentService.FinalizeWeek(principal(c), week)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "schedule": schedule})
}

// WeekStatus reports whether a week is draft or finalized
func (h *ScheduleHandler) WeekStatus(c *gin.Context) {
	week, ok := weekParam(c, "week")
	if !ok {
		return
	}

	schedule, err := h.assignmentService.GetWeekSchedule(week)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, schedule)
}

// WeeklyHours reports assigned hours against the weekly cap
func (h *ScheduleHandler) WeeklyHours(c *gin.Context) {
	week, ok := weekParam(c, "week")
	if !ok {
		return
	}

	total, err := h.assignmentService.WeeklyAssignedHours(principal(c), c.Query("userId"), week)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"weekStart":      week,
		"totalHours":     total,
		"cap":            models.WeeklyHourCap,
		"remainingHours": max(models.WeeklyHourCap-total, 0),
	})
}
