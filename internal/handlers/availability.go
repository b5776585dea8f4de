package handlers

import (
	"net/http"

	"github.com/alimgiray/shiftledger/internal/models"
	"github.com/alimgiray/shiftledger/internal/services"
	"github.com/gin-gonic/gin"
)

type AvailabilityHandler struct {
	assignmentService *services.AssignmentService
}

func NewAvailabilityHandler(assignmentService *services.AssignmentService) *AvailabilityHandler {
	return &AvailabilityHandler{
		assignmentService: assignmentService,
	}
}

type availabilityRequest struct {
	UserID        string `json:"userId"`
	WeekStartDate string `json:"weekStartDate" binding:"required"`
	DayOfWeek     *int   `json:"dayOfWeek" binding:"required"`
	HourStart     *int   `json:"hourStart" binding:"required"`
	HourEnd       *int   `json:"hourEnd" binding:"required"`
	Status        string `json:"status"`
}

// SubmitAvailability replaces one day's availability
func (h *AvailabilityHandler) SubmitAvailability(c *gin.Context) {
	var req availabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "weekStartDate, dayOfWeek, hourStart and hourEnd are required")
		return
	}
	week, err := models.ParseWeekKey(req.WeekStartDate)
	if err != nil {
		badRequest(c, err.Error())
		return
	}

	window, err := h.assignmentService.SubmitAvailability(principal(c), services.AvailabilityInput{
		UserID:    req.UserID,
		WeekStart: week,
		DayOfWeek: *req.DayOfWeek,
		HourStart: *req.HourStart,
		HourEnd:   *req.HourEnd,
		Status:    models.AvailabilityStatus(req.Status),
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "availability": window})
}

// GetAvailability lists the caller's windows, or another user's for managers
func (h *AvailabilityHandler) GetAvailability(c *gin.Context) {
	week, ok := weekParam(c, "week")
	if !ok {
		return
	}

	windows, err := h.assignmentService.GetAvailability(principal(c), c.Query("userId"), week)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, windows)
}

// GetAllAvailability lists every user's windows for a week
func (h *AvailabilityHandler) GetAllAvailability(c *gin.Context) {
	week, ok := weekParam(c, "week")
	if !ok {
		return
	}

	windows, err := h.assignmentService.GetAllAvailability(principal(c), week)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, windows)
}
