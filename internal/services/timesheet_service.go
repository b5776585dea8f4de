package services

import (
	"time"

	"github.com/alimgiray/shiftledger/internal/models"
	"github.com/alimgiray/shiftledger/internal/repositories"
	"github.com/alimgiray/shiftledger/pkg/logger"
	"github.com/sirupsen/logrus"
)

const (
	clockLayout       = "15:04"
	earliestStartHour = 9
)

// TimesheetService records worked hours and runs the approval workflow
type TimesheetService struct {
	timesheetRepo *repositories.TimesheetRepository
	locks         *weekLocks
	now           func() time.Time
}

func NewTimesheetService(timesheetRepo *repositories.TimesheetRepository, now func() time.Time) *TimesheetService {
	if now == nil {
		now = time.Now
	}
	return &TimesheetService{
		timesheetRepo: timesheetRepo,
		locks:         newWeekLocks(),
		now:           now,
	}
}

// SubmitTimesheet records the caller's hours for a date, replacing any earlier entry for it
func (s *TimesheetService) SubmitTimesheet(principal models.Principal, date, startTime, endTime string) (*models.TimesheetEntry, error) {
	day, err := models.ParseDate(date)
	if err != nil {
		return nil, validationError("invalid date %q", date)
	}
	totalHours, err := workedHours(startTime, endTime)
	if err != nil {
		return nil, err
	}

	week := models.WeekOf(day)
	unlock := s.locks.lockUserWeek(principal.UserID, week)
	defer unlock()

	recorded, err := s.timesheetRepo.SumHours(principal.UserID,
		week.Start().Format(models.DateLayout), week.End().Format(models.DateLayout), date)
	if err != nil {
		return nil, err
	}
	if recorded+totalHours > float64(models.WeeklyHourCap) {
		return nil, newError(KindCapacityExceeded,
			"weekly hours limit (%dh) would be exceeded: %.2f recorded, %.2f submitted",
			models.WeeklyHourCap, recorded, totalHours)
	}

	entry := models.NewTimesheetEntry(principal.UserID, date, startTime, endTime, totalHours)
	entry.CreatedAt = s.now()
	if err := s.timesheetRepo.Upsert(entry); err != nil {
		return nil, err
	}

	logger.WithFields(logrus.Fields{
		"user_id":     principal.UserID,
		"date":        date,
		"total_hours": totalHours,
	}).Info("Timesheet submitted")

	stored, err := s.timesheetRepo.GetByUserDate(principal.UserID, date)
	if err != nil {
		return nil, err
	}
	if stored == nil {
		return entry, nil
	}
	return stored, nil
}

// GetTimesheet returns the caller's entry for a date
func (s *TimesheetService) GetTimesheet(principal models.Principal, date string) (*models.TimesheetEntry, error) {
	if _, err := models.ParseDate(date); err != nil {
		return nil, validationError("invalid date %q", date)
	}
	entry, err := s.timesheetRepo.GetByUserDate(principal.UserID, date)
	if err != nil {
		return nil, err
	}
	if entry == nil {
		return nil, notFoundError("no timesheet for %s", date)
	}
	return entry, nil
}

// MonthlyTimesheets lists the caller's entries for a month
func (s *TimesheetService) MonthlyTimesheets(principal models.Principal, year, month int) ([]*models.TimesheetEntry, error) {
	if err := validateMonth(year, month); err != nil {
		return nil, err
	}
	return s.timesheetRepo.GetByUserMonth(principal.UserID, year, month)
}

// AllTimesheets lists every user's entries for a month
func (s *TimesheetService) AllTimesheets(principal models.Principal, year, month int) ([]*models.TimesheetEntry, error) {
	if !principal.CanManage() {
		return nil, authorizationError("manager access required")
	}
	if err := validateMonth(year, month); err != nil {
		return nil, err
	}
	return s.timesheetRepo.GetByMonth(year, month)
}

// PendingTimesheets lists entries awaiting review
func (s *TimesheetService) PendingTimesheets(principal models.Principal) ([]*models.TimesheetEntry, error) {
	if !principal.CanManage() {
		return nil, authorizationError("manager access required")
	}
	return s.timesheetRepo.GetPending()
}

func (s *TimesheetService) Approve(principal models.Principal, id string) error {
	return s.review(principal, id, models.TimesheetApproved)
}

func (s *TimesheetService) Reject(principal models.Principal, id string) error {
	return s.review(principal, id, models.TimesheetRejected)
}

// WeeklyRecordedHours totals a user's recorded hours for a week
func (s *TimesheetService) WeeklyRecordedHours(principal models.Principal, userID string, week models.WeekKey) (float64, error) {
	if userID == "" {
		userID = principal.UserID
	}
	if !principal.CanActFor(userID) {
		return 0, authorizationError("you can only view your own hours")
	}
	week, err := normalizeWeek(week)
	if err != nil {
		return 0, err
	}
	return s.timesheetRepo.SumHours(userID,
		week.Start().Format(models.DateLayout), week.End().Format(models.DateLayout), "")
}

func (s *TimesheetService) review(principal models.Principal, id string, status models.TimesheetStatus) error {
	if !principal.CanManage() {
		return authorizationError("manager access required")
	}
	found, err := s.timesheetRepo.UpdateStatus(id, status)
	if err != nil {
		return err
	}
	if !found {
		return notFoundError("timesheet %s not found", id)
	}

	logger.WithFields(logrus.Fields{
		"timesheet_id": id,
		"status":       status,
		"reviewed_by":  principal.UserID,
	}).Info("Timesheet reviewed")
	return nil
}

// workedHours returns the duration between two HH:MM times, wrapping past midnight
func workedHours(startTime, endTime string) (float64, error) {
	start, err := time.Parse(clockLayout, startTime)
	if err != nil {
		return 0, validationError("invalid start time %q", startTime)
	}
	end, err := time.Parse(clockLayout, endTime)
	if err != nil {
		return 0, validationError("invalid end time %q", endTime)
	}
	if start.Hour() < earliestStartHour {
		return 0, validationError("work cannot start before %02d:00", earliestStartHour)
	}
	if end.Before(start) {
		end = end.Add(24 * time.Hour)
	}

	hours := round2(end.Sub(start).Hours())
	if hours <= 0 {
		return 0, validationError("end time must differ from start time")
	}
	return hours, nil
}

func validateMonth(year, month int) error {
	if year < 1 {
		return validationError("invalid year %d", year)
	}
	if month < 1 || month > 12 {
		return validationError("month must be between 1 and 12")
	}
	return nil
}
