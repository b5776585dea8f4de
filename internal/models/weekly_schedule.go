package models

import "time"

// ScheduleStatus is the lifecycle state of a week's schedule
type ScheduleStatus string

const (
	ScheduleDraft     ScheduleStatus = "draft"
	ScheduleFinalized ScheduleStatus = "finalized"
)

// WeeklySchedule records whether a week is still open for changes
type WeeklySchedule struct {
	WeekStart   WeekKey        `json:"weekStart"`
	Status      ScheduleStatus `json:"status"`
	FinalizedBy *string        `json:"finalizedBy,omitempty"`
	FinalizedAt *time.Time     `json:"finalizedAt,omitempty"`
}

// DraftSchedule is the implicit schedule of a week nobody has finalized
func DraftSchedule(week WeekKey) *WeeklySchedule {
	return &WeeklySchedule{WeekStart: week, Status: ScheduleDraft}
}

// IsFinalized checks if the week is locked
func (s *WeeklySchedule) IsFinalized() bool {
	return s.Status == ScheduleFinalized
}

// MarkFinalized locks the week, re-stamping if it was already locked
func (s *WeeklySchedule) MarkFinalized(by string, at time.Time) {
	s.Status = ScheduleFinalized
	s.FinalizedBy = &by
	s.FinalizedAt = &at
}
