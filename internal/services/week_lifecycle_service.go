package services

import (
	"time"

	"github.com/alimgiray/shiftledger/internal/models"
	"github.com/alimgiray/shiftledger/internal/repositories"
	"github.com/alimgiray/shiftledger/pkg/logger"
	"github.com/sirupsen/logrus"
)

// WeekLifecycleService moves weeks from draft to finalized
type WeekLifecycleService struct {
	scheduleRepo *repositories.WeeklyScheduleRepository
	now          func() time.Time
}

func NewWeekLifecycleService(scheduleRepo *repositories.WeeklyScheduleRepository, now func() time.Time) *WeekLifecycleService {
	if now == nil {
		now = time.Now
	}
	return &WeekLifecycleService{
		scheduleRepo: scheduleRepo,
		now:          now,
	}
}

// GetSchedule returns the week's schedule; a week nobody finalized is an unsaved draft
func (s *WeekLifecycleService) GetSchedule(week models.WeekKey) (*models.WeeklySchedule, error) {
	schedule, err := s.scheduleRepo.GetByWeek(week)
	if err != nil {
		return nil, err
	}
	if schedule == nil {
		return models.DraftSchedule(week), nil
	}
	return schedule, nil
}

// GetStatus returns draft or finalized for the week
func (s *WeekLifecycleService) GetStatus(week models.WeekKey) (models.ScheduleStatus, error) {
	schedule, err := s.GetSchedule(week)
	if err != nil {
		return "", err
	}
	return schedule.Status, nil
}

// EnsureDraft fails with ErrWeekFinalized if the week no longer accepts changes
func (s *WeekLifecycleService) EnsureDraft(week models.WeekKey) error {
	status, err := s.GetStatus(week)
	if err != nil {
		return err
	}
	if status == models.ScheduleFinalized {
		return newError(KindWeekFinalized, "week of %s is finalized and can no longer be changed", week)
	}
	return nil
}

// Finalize locks the week. Finalizing an already finalized week re-stamps who and when.
func (s *WeekLifecycleService) Finalize(week models.WeekKey, byUserID string) (*models.WeeklySchedule, error) {
	schedule := models.DraftSchedule(week)
	schedule.MarkFinalized(byUserID, s.now())

	if err := s.scheduleRepo.Upsert(schedule); err != nil {
		return nil, err
	}

	logger.WithFields(logrus.Fields{
		"week":         week,
		"finalized_by": byUserID,
	}).Info("Week finalized")

	return schedule, nil
}
