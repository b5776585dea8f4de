package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWeekOf(t *testing.T) {
	testCases := []struct {
		name     string
		date     string
		expected WeekKey
	}{
		{name: "Monday is its own week", date: "2025-01-06", expected: "2025-01-06"},
		{name: "Wednesday", date: "2025-01-08", expected: "2025-01-06"},
		{name: "Saturday", date: "2025-01-11", expected: "2025-01-06"},
		{name: "Sunday belongs to the previous Monday", date: "2025-01-12", expected: "2025-01-06"},
		{name: "Across a month boundary", date: "2025-03-01", expected: "2025-02-24"},
		{name: "Across a year boundary", date: "2025-01-01", expected: "2024-12-30"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			week, err := ParseWeekKey(tc.date)
			require.NoError(t, err)
			assert.Equal(t, tc.expected, week)
		})
	}
}

func TestParseWeekKeyRejectsGarbage(t *testing.T) {
	_, err := ParseWeekKey("06/01/2025")
	assert.Error(t, err)

	_, err = ParseWeekKey("")
	assert.Error(t, err)
}

func TestDayOfWeek(t *testing.T) {
	monday := time.Date(2025, 1, 6, 15, 0, 0, 0, time.UTC)
	for i := 0; i < DaysPerWeek; i++ {
		assert.Equal(t, i, DayOfWeek(monday.AddDate(0, 0, i)))
	}
	assert.Equal(t, "Sunday", DayName(6))
	assert.Equal(t, "", DayName(7))
}

func TestWeekKeyDates(t *testing.T) {
	week := WeekKey("2025-01-06")

	assert.Equal(t, "2025-01-08", week.Date(2).Format(DateLayout))
	assert.Equal(t, "2025-01-12", week.End().Format(DateLayout))
	assert.Equal(t, WeekKey("2025-01-13"), week.Next())
}

func TestWeeksInRange(t *testing.T) {
	start, _ := ParseDate("2025-01-08")
	end, _ := ParseDate("2025-01-20")

	assert.Equal(t, []WeekKey{"2025-01-06", "2025-01-13", "2025-01-20"}, WeeksInRange(start, end))
	assert.Nil(t, WeeksInRange(end, start))
}

func TestClassifyUtilization(t *testing.T) {
	assert.Equal(t, FullyUtilized, ClassifyUtilization(3, 3))
	assert.Equal(t, FullyUtilized, ClassifyUtilization(0, 0))
	assert.Equal(t, Underutilized, ClassifyUtilization(3, 1))
	assert.Equal(t, OverAssigned, ClassifyUtilization(1, 2))
}

func TestAvailabilityWindow(t *testing.T) {
	w := NewAvailabilityWindow("u1", "2025-01-06", 1, 9, 12, "")

	assert.Equal(t, AvailabilityAvailable, w.Status)
	assert.True(t, w.Contains(9))
	assert.True(t, w.Contains(11))
	assert.False(t, w.Contains(12), "upper bound is exclusive")
	assert.Equal(t, []int{9, 10, 11}, w.Hours())
	assert.NotEmpty(t, w.ID)

	inverted := NewAvailabilityWindow("u1", "2025-01-06", 1, 12, 9, "")
	assert.Empty(t, inverted.Hours())

	clamped := NewAvailabilityWindow("u1", "2025-01-06", 1, 22, 26, "")
	assert.Equal(t, []int{22, 23}, clamped.Hours())
}

func TestRoleCapabilities(t *testing.T) {
	assert.False(t, RoleEmployee.CanManage())
	assert.True(t, RoleManager.CanManage())
	assert.True(t, RoleAdmin.CanManage())
	assert.False(t, Role("owner").IsValid())

	p := Principal{UserID: "u1", Role: RoleEmployee}
	assert.True(t, p.CanActFor("u1"))
	assert.False(t, p.CanActFor("u2"))
}
