package services

import (
	"time"

	"github.com/alimgiray/shiftledger/internal/models"
	"github.com/alimgiray/shiftledger/internal/repositories"
	"github.com/alimgiray/shiftledger/pkg/logger"
	"github.com/sirupsen/logrus"
)

// AvailabilityInput is one day's availability submission
type AvailabilityInput struct {
	UserID    string
	WeekStart models.WeekKey
	DayOfWeek int
	HourStart int
	HourEnd   int
	Status    models.AvailabilityStatus
}

// AssignmentService runs every availability and shift mutation through the week
// lifecycle and the capacity policy before touching the hour ledger
type AssignmentService struct {
	userRepo         *repositories.UserRepository
	availabilityRepo *repositories.AvailabilityRepository
	assignmentRepo   *repositories.HourAssignmentRepository
	weeks            *WeekLifecycleService
	locks            *weekLocks
	now              func() time.Time
}

func NewAssignmentService(
	userRepo *repositories.UserRepository,
	availabilityRepo *repositories.AvailabilityRepository,
	assignmentRepo *repositories.HourAssignmentRepository,
	weeks *WeekLifecycleService,
	now func() time.Time,
) *AssignmentService {
	if now == nil {
		now = time.Now
	}
	return &AssignmentService{
		userRepo:         userRepo,
		availabilityRepo: availabilityRepo,
		assignmentRepo:   assignmentRepo,
		weeks:            weeks,
		locks:            newWeekLocks(),
		now:              now,
	}
}

// SubmitAvailability replaces the user's windows for one day of a week.
// Employees submit for themselves; managers may submit for anyone.
func (s *AssignmentService) SubmitAvailability(principal models.Principal, input AvailabilityInput) (*models.AvailabilityWindow, error) {
	if input.UserID == "" {
		input.UserID = principal.UserID
	}
	if !principal.CanActFor(input.UserID) {
		return nil, authorizationError("you can only submit your own availability")
	}
	if input.Status == "" {
		input.Status = models.AvailabilityAvailable
	}
	week, err := normalizeWeek(input.WeekStart)
	if err != nil {
		return nil, err
	}
	input.WeekStart = week
	if err := validateAvailability(input); err != nil {
		return nil, err
	}
	if err := s.ensureUserExists(input.UserID); err != nil {
		return nil, err
	}

	unlock := s.locks.lockUserWeek(input.UserID, input.WeekStart)
	defer unlock()

	if err := s.weeks.EnsureDraft(input.WeekStart); err != nil {
		return nil, err
	}

	window := models.NewAvailabilityWindow(input.UserID, input.WeekStart, input.DayOfWeek, input.HourStart, input.HourEnd, input.Status)
	window.CreatedAt = s.now()

	existing, err := s.availabilityRepo.GetByUserWeek(input.UserID, input.WeekStart)
	if err != nil {
		return nil, err
	}
	projected := []*models.AvailabilityWindow{window}
	for _, w := range existing {
		if w.DayOfWeek != input.DayOfWeek {
			projected = append(projected, w)
		}
	}
	if total := WeeklyAvailableHours(projected); total > models.WeeklyHourCap {
		return nil, newError(KindCapacityExceeded,
			"availability of %d hours would exceed the weekly limit of %d hours", total, models.WeeklyHourCap)
	}

	if err := s.availabilityRepo.ReplaceForDay(window); err != nil {
		return nil, err
	}

	logger.WithFields(logrus.Fields{
		"user_id":    input.UserID,
		"week":       input.WeekStart,
		"day":        input.DayOfWeek,
		"hour_start": input.HourStart,
		"hour_end":   input.HourEnd,
		"status":     input.Status,
	}).Info("Availability submitted")

	return window, nil
}

// GetAvailability lists one user's windows for a week
func (s *AssignmentService) GetAvailability(principal models.Principal, userID string, week models.WeekKey) ([]*models.AvailabilityWindow, error) {
	if userID == "" {
		userID = principal.UserID
	}
	if !principal.CanActFor(userID) {
		return nil, authorizationError("you can only view your own availability")
	}
	week, err := normalizeWeek(week)
	if err != nil {
		return nil, err
	}
	return s.availabilityRepo.GetByUserWeek(userID, week)
}

// GetAllAvailability lists every user's windows for a week
func (s *AssignmentService) GetAllAvailability(principal models.Principal, week models.WeekKey) ([]*models.AvailabilityWindow, error) {
	if !principal.CanManage() {
		return nil, authorizationError("manager access required")
	}
	week, err := normalizeWeek(week)
	if err != nil {
		return nil, err
	}
	return s.availabilityRepo.GetByWeek(week)
}

// AssignHour assigns one hour slot to an employee
func (s *AssignmentService) AssignHour(principal models.Principal, slot models.HourSlot) (*models.HourAssignment, error) {
	if !principal.CanManage() {
		return nil, authorizationError("manager access required")
	}
	slot, err := normalizeSlot(slot)
	if err != nil {
		return nil, err
	}
	if err := s.ensureUserExists(slot.UserID); err != nil {
		return nil, err
	}

	unlock := s.locks.lockUserWeek(slot.UserID, slot.WeekStart)
	defer unlock()

	if err := s.weeks.EnsureDraft(slot.WeekStart); err != nil {
		return nil, err
	}

	windows, err := s.availabilityRepo.GetByUserWeek(slot.UserID, slot.WeekStart)
	if err != nil {
		return nil, err
	}
	if !IsWithinAvailability(windows, slot.DayOfWeek, slot.Hour) {
		return nil, newError(KindNotAvailable, "employee is not available on %s at %02d:00",
			models.DayName(slot.DayOfWeek), slot.Hour)
	}

	alreadyAssigned, err := s.assignmentRepo.Exists(slot)
	if err != nil {
		return nil, err
	}
	additional := 1
	if alreadyAssigned {
		additional = 0
	}

	current, err := s.assignmentRepo.CountByUserWeek(slot.UserID, slot.WeekStart)
	if err != nil {
		return nil, err
	}
	if WouldExceedCap(current, additional) {
		return nil, newError(KindCapacityExceeded,
			"employee already has %d assigned hours; weekly limit is %d", current, models.WeeklyHourCap)
	}

	assignment := models.NewHourAssignment(slot.UserID, slot.WeekStart, slot.DayOfWeek, slot.Hour, principal.UserID, s.now())
	if err := s.assignmentRepo.Upsert(assignment); err != nil {
		return nil, err
	}

	logger.WithFields(logrus.Fields{
		"user_id":     slot.UserID,
		"week":        slot.WeekStart,
		"day":         slot.DayOfWeek,
		"hour":        slot.Hour,
		"assigned_by": principal.UserID,
		"total_hours": current + additional,
	}).Info("Hour assigned")

	return assignment, nil
}

// UnassignHour clears one hour slot; clearing an empty slot succeeds
func (s *AssignmentService) UnassignHour(principal models.Principal, slot models.HourSlot) error {
	if !principal.CanManage() {
		return authorizationError("manager access required")
	}
	slot, err := normalizeSlot(slot)
	if err != nil {
		return err
	}

	unlock := s.locks.lockUserWeek(slot.UserID, slot.WeekStart)
	defer unlock()

	if err := s.weeks.EnsureDraft(slot.WeekStart); err != nil {
		return err
	}

	if err := s.assignmentRepo.Delete(slot); err != nil {
		return err
	}

	logger.WithFields(logrus.Fields{
		"user_id": slot.UserID,
		"week":    slot.WeekStart,
		"day":     slot.DayOfWeek,
		"hour":    slot.Hour,
		"by":      principal.UserID,
	}).Info("Hour unassigned")

	return nil
}

// FinalizeWeek locks the week against further changes
func (s *AssignmentService) FinalizeWeek(principal models.Principal, week models.WeekKey) (*models.WeeklySchedule, error) {
	if !principal.CanManage() {
		return nil, authorizationError("manager access required")
	}
	week, err := normalizeWeek(week)
	if err != nil {
		return nil, err
	}

	unlock := s.locks.lockWeek(week)
	defer unlock()

	return s.weeks.Finalize(week, principal.UserID)
}

// GetWeekSchedule returns the lifecycle state of a week
func (s *AssignmentService) GetWeekSchedule(week models.WeekKey) (*models.WeeklySchedule, error) {
	week, err := normalizeWeek(week)
	if err != nil {
		return nil, err
	}
	return s.weeks.GetSchedule(week)
}

// GetAssignments lists a week's assignments; employees only see their own
func (s *AssignmentService) GetAssignments(principal models.Principal, week models.WeekKey) ([]*models.HourAssignment, error) {
	week, err := normalizeWeek(week)
	if err != nil {
		return nil, err
	}
	if principal.CanManage() {
		return s.assignmentRepo.GetByWeek(week)
	}
	return s.assignmentRepo.GetByUserWeek(principal.UserID, week)
}

// WeeklyAssignedHours returns the user's assigned hour total for a week
func (s *AssignmentService) WeeklyAssignedHours(principal models.Principal, userID string, week models.WeekKey) (int, error) {
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

	assignments, err := s.assignmentRepo.GetByUserWeek(userID, week)
	if err != nil {
		return 0, err
	}
	return WeeklyAssignedHours(assignments), nil
}

func (s *AssignmentService) ensureUserExists(userID string) error {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return err
	}
	if user == nil {
		return notFoundError("user %s not found", userID)
	}
	return nil
}

func validateAvailability(input AvailabilityInput) error {
	if !models.IsValidDay(input.DayOfWeek) {
		return validationError("day of week must be between 0 and 6")
	}
	if input.HourStart < 0 || input.HourStart > 23 || input.HourEnd < 1 || input.HourEnd > 24 {
		return validationError("hours must be within 0 and 24")
	}
	if input.HourEnd <= input.HourStart {
		return validationError("hour end must be after hour start")
	}
	if !input.Status.IsValid() {
		return validationError("unknown availability status %q", input.Status)
	}
	return nil
}

// normalizeSlot validates the slot and moves its week key to the Monday
func normalizeSlot(slot models.HourSlot) (models.HourSlot, error) {
	if slot.UserID == "" {
		return slot, validationError("user id is required")
	}
	week, err := normalizeWeek(slot.WeekStart)
	if err != nil {
		return slot, err
	}
	slot.WeekStart = week
	if !models.IsValidDay(slot.DayOfWeek) {
		return slot, validationError("day of week must be between 0 and 6")
	}
	if !models.IsValidHour(slot.Hour) {
		return slot, validationError("hour must be between 0 and 23")
	}
	return slot, nil
}

// normalizeWeek validates a week key and moves it to the Monday of its week
func normalizeWeek(week models.WeekKey) (models.WeekKey, error) {
	if week == "" {
		return "", validationError("week start date is required")
	}
	normalized, err := models.ParseWeekKey(string(week))
	if err != nil {
		return "", validationError("invalid week start date %q", week)
	}
	return normalized, nil
}
