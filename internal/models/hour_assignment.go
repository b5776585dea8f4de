package models

import (
	"time"

	"github.com/google/uuid"
)

// HourAssignment is a single assigned work hour; one row is exactly one hour
type HourAssignment struct {
	ID         string    `json:"id"`
	UserID     string    `json:"userId"`
	Username   string    `json:"username,omitempty"`
	WeekStart  WeekKey   `json:"weekStart"`
	DayOfWeek  int       `json:"dayOfWeek"`
	Hour       int       `json:"hour"`
	AssignedBy string    `json:"assignedBy"`
	AssignedAt time.Time `json:"assignedAt"`
}

// NewHourAssignment creates an assignment with a generated UUID
func NewHourAssignment(userID string, week WeekKey, day, hour int, assignedBy string, assignedAt time.Time) *HourAssignment {
	return &HourAssignment{
		ID:         uuid.New().String(),
		UserID:     userID,
		WeekStart:  week,
		DayOfWeek:  day,
		Hour:       hour,
		AssignedBy: assignedBy,
		AssignedAt: assignedAt,
	}
}

// Date returns the calendar date of the assignment
func (a *HourAssignment) Date() time.Time {
	return a.WeekStart.Date(a.DayOfWeek)
}

// HourSlot addresses one hour of one user's week
type HourSlot struct {
	UserID    string
	WeekStart WeekKey
	DayOfWeek int
	Hour      int
}
