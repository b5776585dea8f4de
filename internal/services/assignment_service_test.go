package services

import (
	"database/sql"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/alimgiray/shiftledger/internal/models"
	"github.com/alimgiray/shiftledger/internal/repositories"
	"github.com/alimgiray/shiftledger/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type assignmentFixture struct {
	db           *sql.DB
	service      *AssignmentService
	availability *repositories.AvailabilityRepository
	employee     models.Principal
	manager      models.Principal
}

func newAssignmentFixture(t *testing.T) *assignmentFixture {
	t.Helper()
	db := testutil.SetupTestDB(t)
	clock := testutil.FixedClock(time.Date(2025, 1, 6, 8, 0, 0, 0, time.UTC))

	availabilityRepo := repositories.NewAvailabilityRepository(db)
	weeks := NewWeekLifecycleService(repositories.NewWeeklyScheduleRepository(db), clock)
	service := NewAssignmentService(
		repositories.NewUserRepository(db),
		availabilityRepo,
		repositories.NewHourAssignmentRepository(db),
		weeks,
		clock,
	)

	employee := testutil.CreateUser(t, db, "alice", models.RoleEmployee, "Support")
	manager := testutil.CreateUser(t, db, "bob", models.RoleManager, "Support")

	return &assignmentFixture{
		db:           db,
		service:      service,
		availability: availabilityRepo,
		employee:     employee.Principal(),
		manager:      manager.Principal(),
	}
}

func (f *assignmentFixture) submit(t *testing.T, day, start, end int) {
	t.Helper()
	_, err := f.service.SubmitAvailability(f.employee, AvailabilityInput{
		WeekStart: policyWeek,
		DayOfWeek: day,
		HourStart: start,
		HourEnd:   end,
	})
	require.NoError(t, err)
}

func (f *assignmentFixture) slot(day, hour int) models.HourSlot {
	return models.HourSlot{UserID: f.employee.UserID, WeekStart: policyWeek, DayOfWeek: day, Hour: hour}
}

func TestAssignmentService_AssignWithinAvailability(t *testing.T) {
	f := newAssignmentFixture(t)
	f.submit(t, 0, 9, 17)

	for _, hour := range []int{9, 10, 11} {
		assignment, err := f.service.AssignHour(f.manager, f.slot(0, hour))
		require.NoError(t, err)
		assert.Equal(t, f.manager.UserID, assignment.AssignedBy)
	}

	total, err := f.service.WeeklyAssignedHours(f.employee, "", policyWeek)
	require.NoError(t, err)
	assert.Equal(t, 3, total)
}

func TestAssignmentService_AssignOutsideAvailability(t *testing.T) {
	f := newAssignmentFixture(t)
	f.submit(t, 0, 9, 17)

	_, err := f.service.AssignHour(f.manager, f.slot(0, 17))
	assert.True(t, errors.Is(err, ErrNotAvailable))

	_, err = f.service.AssignHour(f.manager, f.slot(1, 9))
	assert.True(t, errors.Is(err, ErrNotAvailable))
}

func TestAssignmentService_UnavailableWindowBlocksAssignment(t *testing.T) {
	f := newAssignmentFixture(t)
	_, err := f.service.SubmitAvailability(f.employee, AvailabilityInput{
		WeekStart: policyWeek,
		DayOfWeek: 2,
		HourStart: 9,
		HourEnd:   17,
		Status:    models.AvailabilityUnavailable,
	})
	require.NoError(t, err)

	_, err = f.service.AssignHour(f.manager, f.slot(2, 10))
	assert.True(t, errors.Is(err, ErrNotAvailable))
}

func TestAssignmentService_ReassignDoesNotDoubleCount(t *testing.T) {
	f := newAssignmentFixture(t)
	f.submit(t, 0, 9, 17)

	_, err := f.service.AssignHour(f.manager, f.slot(0, 9))
	require.NoError(t, err)
	_, err = f.service.AssignHour(f.manager, f.slot(0, 9))
	require.NoError(t, err)

	total, err := f.service.WeeklyAssignedHours(f.manager, f.employee.UserID, policyWeek)
	require.NoError(t, err)
	assert.Equal(t, 1, total)
}

func TestAssignmentService_CapRejectsThirtyFirstHour(t *testing.T) {
	f := newAssignmentFixture(t)
	// 6 hours Monday to Friday
	for day := 0; day < 5; day++ {
		f.submit(t, day, 9, 15)
	}
	for day := 0; day < 5; day++ {
		for hour := 9; hour < 15; hour++ {
			_, err := f.service.AssignHour(f.manager, f.slot(day, hour))
			require.NoError(t, err)
		}
	}

	// an extra window written straight to the ledger gives a 31st available hour
	require.NoError(t, f.availability.ReplaceForDay(
		models.NewAvailabilityWindow(f.employee.UserID, policyWeek, 5, 9, 10, models.AvailabilityAvailable)))

	_, err := f.service.AssignHour(f.manager, f.slot(5, 9))
	assert.True(t, errors.Is(err, ErrCapacityExceeded))

	// overwriting an existing slot at the cap still succeeds
	_, err = f.service.AssignHour(f.manager, f.slot(0, 9))
	assert.NoError(t, err)

	total, err := f.service.WeeklyAssignedHours(f.manager, f.employee.UserID, policyWeek)
	require.NoError(t, err)
	assert.Equal(t, models.WeeklyHourCap, total)
}

func TestAssignmentService_ConcurrentAssignmentsAtCap(t *testing.T) {
	f := newAssignmentFixture(t)
	// 31 available hours recorded directly so two free slots remain after 29 assignments
	for day := 0; day < 5; day++ {
		require.NoError(t, f.availability.ReplaceForDay(
			models.NewAvailabilityWindow(f.employee.UserID, policyWeek, day, 9, 15, models.AvailabilityAvailable)))
	}
	require.NoError(t, f.availability.ReplaceForDay(
		models.NewAvailabilityWindow(f.employee.UserID, policyWeek, 5, 9, 10, models.AvailabilityAvailable)))

	assigned := 0
	for day := 0; day < 5 && assigned < 29; day++ {
		for hour := 9; hour < 15 && assigned < 29; hour++ {
			_, err := f.service.AssignHour(f.manager, f.slot(day, hour))
			require.NoError(t, err)
			assigned++
		}
	}

	slots := []models.HourSlot{f.slot(4, 14), f.slot(5, 9)}
	errs := make([]error, len(slots))
	var wg sync.WaitGroup
	for i, slot := range slots {
		wg.Add(1)
		go func(i int, slot models.HourSlot) {
			defer wg.Done()
			_, errs[i] = f.service.AssignHour(f.manager, slot)
		}(i, slot)
	}
	wg.Wait()

	succeeded, capped := 0, 0
	for _, err := range errs {
		switch {
		case err == nil:
			succeeded++
		case errors.Is(err, ErrCapacityExceeded):
			capped++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	assert.Equal(t, 1, succeeded)
	assert.Equal(t, 1, capped)

	total, err := f.service.WeeklyAssignedHours(f.manager, f.employee.UserID, policyWeek)
	require.NoError(t, err)
	assert.Equal(t, 30, total)
}

func TestAssignmentService_FinalizedWeekRejectsMutations(t *testing.T) {
	f := newAssignmentFixture(t)
	f.submit(t, 0, 9, 17)
	_, err := f.service.AssignHour(f.manager, f.slot(0, 9))
	require.NoError(t, err)

	schedule, err := f.service.FinalizeWeek(f.manager, policyWeek)
	require.NoError(t, err)
	assert.Equal(t, models.ScheduleFinalized, schedule.Status)

	current, err := f.service.GetWeekSchedule(policyWeek)
	require.NoError(t, err)
	assert.True(t, current.IsFinalized())

	_, err = f.service.AssignHour(f.manager, f.slot(0, 10))
	assert.True(t, errors.Is(err, ErrWeekFinalized))

	err = f.service.UnassignHour(f.manager, f.slot(0, 9))
	assert.True(t, errors.Is(err, ErrWeekFinalized))

	_, err = f.service.SubmitAvailability(f.employee, AvailabilityInput{
		WeekStart: policyWeek, DayOfWeek: 1, HourStart: 9, HourEnd: 12,
	})
	assert.True(t, errors.Is(err, ErrWeekFinalized))

	// the next week is still a draft
	nextWeek := f.slot(0, 9)
	nextWeek.WeekStart = policyWeek.Next()
	_, err = f.service.AssignHour(f.manager, nextWeek)
	assert.True(t, errors.Is(err, ErrNotAvailable))
}

func TestAssignmentService_UnassignIsIdempotent(t *testing.T) {
	f := newAssignmentFixture(t)
	f.submit(t, 0, 9, 17)
	_, err := f.service.AssignHour(f.manager, f.slot(0, 9))
	require.NoError(t, err)

	require.NoError(t, f.service.UnassignHour(f.manager, f.slot(0, 9)))
	require.NoError(t, f.service.UnassignHour(f.manager, f.slot(0, 9)))

	total, err := f.service.WeeklyAssignedHours(f.employee, "", policyWeek)
	require.NoError(t, err)
	assert.Equal(t, 0, total)
}

func TestAssignmentService_AvailabilityReplacesDay(t *testing.T) {
	f := newAssignmentFixture(t)
	f.submit(t, 0, 9, 17)
	f.submit(t, 0, 13, 15)

	windows, err := f.service.GetAvailability(f.employee, "", policyWeek)
	require.NoError(t, err)
	require.Len(t, windows, 1)
	assert.Equal(t, 13, windows[0].HourStart)
	assert.Equal(t, 15, windows[0].HourEnd)
}

func TestAssignmentService_AvailabilityCap(t *testing.T) {
	f := newAssignmentFixture(t)
	for day := 0; day < 3; day++ {
		f.submit(t, day, 8, 18)
	}

	_, err := f.service.SubmitAvailability(f.employee, AvailabilityInput{
		WeekStart: policyWeek, DayOfWeek: 3, HourStart: 9, HourEnd: 10,
	})
	assert.True(t, errors.Is(err, ErrCapacityExceeded))

	// shrinking an existing day frees room for another
	f.submit(t, 0, 8, 12)
	f.submit(t, 3, 9, 15)

	windows, err := f.service.GetAvailability(f.employee, "", policyWeek)
	require.NoError(t, err)
	assert.Equal(t, 30, WeeklyAvailableHours(windows))
}

func TestAssignmentService_AvailabilityValidation(t *testing.T) {
	f := newAssignmentFixture(t)

	cases := []AvailabilityInput{
		{WeekStart: policyWeek, DayOfWeek: 7, HourStart: 9, HourEnd: 10},
		{WeekStart: policyWeek, DayOfWeek: 0, HourStart: 10, HourEnd: 10},
		{WeekStart: policyWeek, DayOfWeek: 0, HourStart: 12, HourEnd: 9},
		{WeekStart: policyWeek, DayOfWeek: 0, HourStart: -1, HourEnd: 9},
		{WeekStart: policyWeek, DayOfWeek: 0, HourStart: 9, HourEnd: 25},
		{WeekStart: policyWeek, DayOfWeek: 0, HourStart: 9, HourEnd: 10, Status: "maybe"},
		{DayOfWeek: 0, HourStart: 9, HourEnd: 10},
	}
	for _, input := range cases {
		_, err := f.service.SubmitAvailability(f.employee, input)
		assert.True(t, errors.Is(err, ErrValidation), "input %+v", input)
	}
}

func TestAssignmentService_RoleGating(t *testing.T) {
	f := newAssignmentFixture(t)
	f.submit(t, 0, 9, 17)
	other := testutil.CreateUser(t, f.db, "carol", models.RoleEmployee, "Support")

	_, err := f.service.AssignHour(f.employee, f.slot(0, 9))
	assert.True(t, errors.Is(err, ErrAuthorization))

	err = f.service.UnassignHour(f.employee, f.slot(0, 9))
	assert.True(t, errors.Is(err, ErrAuthorization))

	_, err = f.service.FinalizeWeek(f.employee, policyWeek)
	assert.True(t, errors.Is(err, ErrAuthorization))

	_, err = f.service.GetAllAvailability(f.employee, policyWeek)
	assert.True(t, errors.Is(err, ErrAuthorization))

	_, err = f.service.SubmitAvailability(f.employee, AvailabilityInput{
		UserID: other.ID.String(), WeekStart: policyWeek, DayOfWeek: 0, HourStart: 9, HourEnd: 10,
	})
	assert.True(t, errors.Is(err, ErrAuthorization))

	_, err = f.service.WeeklyAssignedHours(f.employee, other.ID.String(), policyWeek)
	assert.True(t, errors.Is(err, ErrAuthorization))

	// managers may submit on behalf of an employee
	window, err := f.service.SubmitAvailability(f.manager, AvailabilityInput{
		UserID: other.ID.String(), WeekStart: policyWeek, DayOfWeek: 0, HourStart: 9, HourEnd: 10,
	})
	require.NoError(t, err)
	assert.Equal(t, other.ID.String(), window.UserID)
}

func TestAssignmentService_AssignUnknownUser(t *testing.T) {
	f := newAssignmentFixture(t)

	slot := f.slot(0, 9)
	slot.UserID = "missing"
	_, err := f.service.AssignHour(f.manager, slot)
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestAssignmentService_EmployeesSeeOnlyOwnAssignments(t *testing.T) {
	f := newAssignmentFixture(t)
	other := testutil.CreateUser(t, f.db, "carol", models.RoleEmployee, "Support")
	f.submit(t, 0, 9, 17)
	_, err := f.service.SubmitAvailability(f.manager, AvailabilityInput{
		UserID: other.ID.String(), WeekStart: policyWeek, DayOfWeek: 0, HourStart: 9, HourEnd: 17,
	})
	require.NoError(t, err)

	_, err = f.service.AssignHour(f.manager, f.slot(0, 9))
	require.NoError(t, err)
	_, err = f.service.AssignHour(f.manager, models.HourSlot{
		UserID: other.ID.String(), WeekStart: policyWeek, DayOfWeek: 0, Hour: 10,
	})
	require.NoError(t, err)

	own, err := f.service.GetAssignments(f.employee, policyWeek)
	require.NoError(t, err)
	require.Len(t, own, 1)
	assert.Equal(t, f.employee.UserID, own[0].UserID)

	all, err := f.service.GetAssignments(f.manager, policyWeek)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	everyone, err := f.service.GetAllAvailability(f.manager, policyWeek)
	require.NoError(t, err)
	assert.Len(t, everyone, 2)
}

func TestAssignmentService_NormalizesWeekKeys(t *testing.T) {
	f := newAssignmentFixture(t)

	// a Wednesday lands in the week starting Monday 2025-01-06
	_, err := f.service.SubmitAvailability(f.employee, AvailabilityInput{
		WeekStart: "2025-01-08", DayOfWeek: 0, HourStart: 9, HourEnd: 12,
	})
	require.NoError(t, err)

	slot := f.slot(0, 9)
	slot.WeekStart = "2025-01-12"
	assignment, err := f.service.AssignHour(f.manager, slot)
	require.NoError(t, err)
	assert.Equal(t, policyWeek, assignment.WeekStart)

	total, err := f.service.WeeklyAssignedHours(f.employee, "", "2025-01-10")
	require.NoError(t, err)
	assert.Equal(t, 1, total)

	_, err = f.service.FinalizeWeek(f.manager, "2025-01-07")
	require.NoError(t, err)

	schedule, err := f.service.GetWeekSchedule(policyWeek)
	require.NoError(t, err)
	assert.True(t, schedule.IsFinalized())

	// any day of a finalized week is locked
	slot.WeekStart = "2025-01-08"
	slot.Hour = 10
	_, err = f.service.AssignHour(f.manager, slot)
	assert.True(t, errors.Is(err, ErrWeekFinalized))

	err = f.service.UnassignHour(f.manager, slot)
	assert.True(t, errors.Is(err, ErrWeekFinalized))

	_, err = f.service.SubmitAvailability(f.employee, AvailabilityInput{
		WeekStart: "2025-01-08", DayOfWeek: 1, HourStart: 9, HourEnd: 12,
	})
	assert.True(t, errors.Is(err, ErrWeekFinalized))
}

func TestAssignmentService_RejectsMalformedWeekKeys(t *testing.T) {
	f := newAssignmentFixture(t)
	f.submit(t, 0, 9, 17)

	slot := f.slot(0, 9)
	slot.WeekStart = "garbage"

	_, err := f.service.AssignHour(f.manager, slot)
	assert.True(t, errors.Is(err, ErrValidation))

	err = f.service.UnassignHour(f.manager, slot)
	assert.True(t, errors.Is(err, ErrValidation))

	_, err = f.service.SubmitAvailability(f.employee, AvailabilityInput{
		WeekStart: "garbage", DayOfWeek: 0, HourStart: 9, HourEnd: 12,
	})
	assert.True(t, errors.Is(err, ErrValidation))

	_, err = f.service.FinalizeWeek(f.manager, "garbage")
	assert.True(t, errors.Is(err, ErrValidation))

	_, err = f.service.GetAssignments(f.manager, "garbage")
	assert.True(t, errors.Is(err, ErrValidation))
}
