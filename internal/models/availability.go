package models

import (
	"time"

	"github.com/google/uuid"
)

// AvailabilityStatus marks whether a window offers or withdraws hours
type AvailabilityStatus string

const (
	AvailabilityAvailable   AvailabilityStatus = "available"
	AvailabilityUnavailable AvailabilityStatus = "unavailable"
)

// IsValid reports whether s is a known availability status
func (s AvailabilityStatus) IsValid() bool {
	return s == AvailabilityAvailable || s == AvailabilityUnavailable
}

// AvailabilityWindow is an employee's claim that they can work [HourStart, HourEnd)
// on one day of a week
type AvailabilityWindow struct {
	ID         string             `json:"id"`
	UserID     string             `json:"userId"`
	Username   string             `json:"username,omitempty"`
	Department string             `json:"department,omitempty"`
	WeekStart  WeekKey            `json:"weekStart"`
	DayOfWeek  int                `json:"dayOfWeek"`
	HourStart  int                `json:"hourStart"`
	HourEnd    int                `json:"hourEnd"`
	Status     AvailabilityStatus `json:"status"`
	CreatedAt  time.Time          `json:"createdAt"`
}

// NewAvailabilityWindow creates a window with a generated UUID
func NewAvailabilityWindow(userID string, week WeekKey, day, hourStart, hourEnd int, status AvailabilityStatus) *AvailabilityWindow {
	if status == "" {
		status = AvailabilityAvailable
	}
	return &AvailabilityWindow{
		ID:        uuid.New().String(),
		UserID:    userID,
		WeekStart: week,
		DayOfWeek: day,
		HourStart: hourStart,
		HourEnd:   hourEnd,
		Status:    status,
		CreatedAt: time.Now(),
	}
}

// IsAvailable reports whether the window offers hours
func (w *AvailabilityWindow) IsAvailable() bool {
	return w.Status == AvailabilityAvailable
}

// Contains reports whether hour falls inside the window
func (w *AvailabilityWindow) Contains(hour int) bool {
	return w.HourStart <= hour && hour < w.HourEnd
}

// Hours lists every hour slot of the day covered by the window
func (w *AvailabilityWindow) Hours() []int {
	start, end := max(w.HourStart, 0), min(w.HourEnd, 24)
	if end <= start {
		return []int{}
	}
	hours := make([]int, 0, end-start)
	for h := start; h < end; h++ {
		hours = append(hours, h)
	}
	return hours
}
