package services

import (
	"math"
	"time"

	"github.com/alimgiray/shiftledger/internal/models"
	"github.com/alimgiray/shiftledger/internal/repositories"
)

// ReportService projects the hour ledger into read-only reports
type ReportService struct {
	userRepo         *repositories.UserRepository
	availabilityRepo *repositories.AvailabilityRepository
	assignmentRepo   *repositories.HourAssignmentRepository
	weeks            *WeekLifecycleService
}

func NewReportService(
	userRepo *repositories.UserRepository,
	availabilityRepo *repositories.AvailabilityRepository,
	assignmentRepo *repositories.HourAssignmentRepository,
	weeks *WeekLifecycleService,
) *ReportService {
	return &ReportService{
		userRepo:         userRepo,
		availabilityRepo: availabilityRepo,
		assignmentRepo:   assignmentRepo,
		weeks:            weeks,
	}
}

// EmployeeScheduleReport lists a user's assigned hours per day of a week.
// Employees may only read their own schedule.
func (s *ReportService) EmployeeScheduleReport(principal models.Principal, userID string, week models.WeekKey) (*models.EmployeeScheduleReport, error) {
	if !principal.CanActFor(userID) {
		return nil, authorizationError("you can only view your own schedule")
	}
	week, err := normalizeWeek(week)
	if err != nil {
		return nil, err
	}
	user, err := s.getUser(userID)
	if err != nil {
		return nil, err
	}

	assignments, err := s.assignmentRepo.GetByUserWeek(userID, week)
	if err != nil {
		return nil, err
	}
	status, err := s.weeks.GetStatus(week)
	if err != nil {
		return nil, err
	}

	report := &models.EmployeeScheduleReport{
		EmployeeID:   userID,
		EmployeeName: user.Username,
		WeekStart:    week,
		Schedule:     make([]models.ScheduleDay, 0, models.DaysPerWeek),
		Status:       status,
	}
	for day, hours := range AssignedHoursByDay(assignments) {
		report.Schedule = append(report.Schedule, models.ScheduleDay{
			DayOfWeek:  day,
			DayName:    models.DayName(day),
			Date:       week.Date(day).Format(models.DateLayout),
			Hours:      hours,
			TotalHours: len(hours),
		})
		report.TotalHours += len(hours)
	}
	report.WithinLimit = report.TotalHours <= models.WeeklyHourCap

	return report, nil
}

// HoursSummaryReport aggregates assigned hours for every member of a department
// between two ISO dates. An empty department means the caller's own.
func (s *ReportService) HoursSummaryReport(principal models.Principal, department, startDate, endDate string) (*models.HoursSummaryReport, error) {
	if !principal.CanManage() {
		return nil, authorizationError("manager access required")
	}
	if department == "" {
		department = principal.Department
	}

	start, end, err := parseRange(startDate, endDate)
	if err != nil {
		return nil, err
	}

	users, err := s.userRepo.GetByDepartment(department)
	if err != nil {
		return nil, err
	}

	report := &models.HoursSummaryReport{
		Department: department,
		StartDate:  start.Format(models.DateLayout),
		EndDate:    end.Format(models.DateLayout),
		Employees:  make([]*models.EmployeeHoursSummary, 0, len(users)),
	}

	for _, user := range users {
		userID := user.ID.String()
		assignments, err := s.assignmentRepo.GetByUserWeekRange(userID, models.WeekOf(start), models.WeekOf(end))
		if err != nil {
			return nil, err
		}
		maxWeekly, err := s.MaxWeeklyHoursAcrossRange(userID, start, end)
		if err != nil {
			return nil, err
		}

		inRange := make([]*models.HourAssignment, 0, len(assignments))
		for _, a := range assignments {
			date := a.Date()
			if !date.Before(start) && !date.After(end) {
				inRange = append(inRange, a)
			}
		}

		summary := &models.EmployeeHoursSummary{
			UserID:         userID,
			Username:       user.Username,
			TotalHours:     len(inRange),
			WeeksWorked:    len(HoursByWeek(inRange)),
			MaxWeeklyHours: maxWeekly,
		}
		if summary.WeeksWorked > 0 {
			summary.AverageWeeklyHours = round2(float64(summary.TotalHours) / float64(summary.WeeksWorked))
		}
		summary.OverLimit = summary.MaxWeeklyHours > models.WeeklyHourCap

		report.Employees = append(report.Employees, summary)
		report.TotalHours += summary.TotalHours
		if summary.OverLimit {
			report.OverLimitCount++
		}
	}

	return report, nil
}

// AvailabilityComparisonReport compares declared availability with assigned hours per day
func (s *ReportService) AvailabilityComparisonReport(principal models.Principal, userID string, week models.WeekKey) (*models.AvailabilityComparisonReport, error) {
	if !principal.CanManage() {
		return nil, authorizationError("manager access required")
	}
	week, err := normalizeWeek(week)
	if err != nil {
		return nil, err
	}
	user, err := s.getUser(userID)
	if err != nil {
		return nil, err
	}

	windows, err := s.availabilityRepo.GetByUserWeek(userID, week)
	if err != nil {
		return nil, err
	}
	assignments, err := s.assignmentRepo.GetByUserWeek(userID, week)
	if err != nil {
		return nil, err
	}

	available := AvailableHoursByDay(windows)
	assigned := AssignedHoursByDay(assignments)

	report := &models.AvailabilityComparisonReport{
		EmployeeID:   userID,
		EmployeeName: user.Username,
		WeekStart:    week,
		Comparison:   make([]models.DayComparison, 0, models.DaysPerWeek),
	}
	for day := 0; day < models.DaysPerWeek; day++ {
		comparison := models.DayComparison{
			DayOfWeek:       day,
			DayName:         models.DayName(day),
			Date:            week.Date(day).Format(models.DateLayout),
			AvailableHours:  len(available[day]),
			AvailableSlots:  available[day],
			AssignedHours:   len(assigned[day]),
			AssignedSlots:   assigned[day],
			UnassignedHours: len(available[day]) - countShared(available[day], assigned[day]),
			Status:          models.ClassifyUtilization(len(available[day]), len(assigned[day])),
		}
		report.Comparison = append(report.Comparison, comparison)
		report.AvailableHours += comparison.AvailableHours
		report.AssignedHours += comparison.AssignedHours
	}
	if report.AvailableHours > 0 {
		report.UtilizationRate = round2(float64(report.AssignedHours) / float64(report.AvailableHours) * 100)
	}

	return report, nil
}

// MaxWeeklyHoursAcrossRange returns the highest weekly assigned total of any week overlapping [start, end]
func (s *ReportService) MaxWeeklyHoursAcrossRange(userID string, start, end time.Time) (int, error) {
	weeks := models.WeeksInRange(start, end)
	if len(weeks) == 0 {
		return 0, validationError("start date must not be after end date")
	}
	assignments, err := s.assignmentRepo.GetByUserWeekRange(userID, weeks[0], weeks[len(weeks)-1])
	if err != nil {
		return 0, err
	}
	return MaxWeeklyHours(assignments), nil
}

func (s *ReportService) getUser(userID string) (*models.User, error) {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, notFoundError("user %s not found", userID)
	}
	return user, nil
}

func parseRange(startDate, endDate string) (time.Time, time.Time, error) {
	start, err := models.ParseDate(startDate)
	if err != nil {
		return time.Time{}, time.Time{}, validationError("invalid start date %q", startDate)
	}
	end, err := models.ParseDate(endDate)
	if err != nil {
		return time.Time{}, time.Time{}, validationError("invalid end date %q", endDate)
	}
	if end.Before(start) {
		return time.Time{}, time.Time{}, validationError("start date must not be after end date")
	}
	return start, end, nil
}

// countShared counts hours present in both sorted lists
func countShared(a, b []int) int {
	shared, i, j := 0, 0, 0
	for i < len(a) && j < len(b) {
		switch {
		case a[i] == b[j]:
			shared++
			i++
			j++
		case a[i] < b[j]:
			i++
		default:
			j++
		}
	}
	return shared
}

func round2(value float64) float64 {
	return math.Round(value*100) / 100
}
