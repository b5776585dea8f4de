package models

import (
	"time"

	"github.com/google/uuid"
)

// TimesheetStatus represents the approval state of a timesheet entry
type TimesheetStatus string

const (
	TimesheetPending  TimesheetStatus = "pending"
	TimesheetApproved TimesheetStatus = "approved"
	TimesheetRejected TimesheetStatus = "rejected"
)

// TimesheetEntry records the hours an employee actually worked on one date
type TimesheetEntry struct {
	ID         string          `json:"id"`
	UserID     string          `json:"userId"`
	Username   string          `json:"username,omitempty"`
	Department string          `json:"department,omitempty"`
	Date       string          `json:"date"`
	StartTime  string          `json:"startTime"`
	EndTime    string          `json:"endTime"`
	TotalHours float64         `json:"totalHours"`
	Status     TimesheetStatus `json:"status"`
	CreatedAt  time.Time       `json:"createdAt"`
}

// NewTimesheetEntry creates a pending entry with a generated UUID
func NewTimesheetEntry(userID, date, startTime, endTime string, totalHours float64) *TimesheetEntry {
	return &TimesheetEntry{
		ID:         uuid.New().String(),
		UserID:     userID,
		Date:       date,
		StartTime:  startTime,
		EndTime:    endTime,
		TotalHours: totalHours,
		Status:     TimesheetPending,
		CreatedAt:  time.Now(),
	}
}

// IsPending checks if the entry awaits review
func (e *TimesheetEntry) IsPending() bool {
	return e.Status == TimesheetPending
}
