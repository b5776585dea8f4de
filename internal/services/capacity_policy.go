package services

import (
	"github.com/alimgiray/shiftledger/internal/models"
)

// Capacity policy: pure computations over hour ledger query results.

// WeeklyAssignedHours counts distinct assigned slots; each slot is one hour
func WeeklyAssignedHours(assignments []*models.HourAssignment) int {
	seen := make(map[[2]int]struct{}, len(assignments))
	for _, a := range assignments {
		seen[[2]int{a.DayOfWeek, a.Hour}] = struct{}{}
	}
	return len(seen)
}

// WouldExceedCap reports whether adding hours to the current total breaks the weekly cap
func WouldExceedCap(currentHours, additionalHours int) bool {
	return currentHours+additionalHours > models.WeeklyHourCap
}

// IsWithinAvailability reports whether an available window covers hour on day
func IsWithinAvailability(windows []*models.AvailabilityWindow, day, hour int) bool {
	for _, w := range windows {
		if w.DayOfWeek == day && w.IsAvailable() && w.Contains(hour) {
			return true
		}
	}
	return false
}

// AvailableHoursByDay returns the sorted distinct available hours for each day
func AvailableHoursByDay(windows []*models.AvailabilityWindow) [models.DaysPerWeek][]int {
	var covered [models.DaysPerWeek][24]bool
	for _, w := range windows {
		if !w.IsAvailable() || !models.IsValidDay(w.DayOfWeek) {
			continue
		}
		for _, h := range w.Hours() {
			covered[w.DayOfWeek][h] = true
		}
	}

	var byDay [models.DaysPerWeek][]int
	for day := range covered {
		byDay[day] = []int{}
		for h, ok := range covered[day] {
			if ok {
				byDay[day] = append(byDay[day], h)
			}
		}
	}
	return byDay
}

// WeeklyAvailableHours counts the distinct available hours across the week
func WeeklyAvailableHours(windows []*models.AvailabilityWindow) int {
	total := 0
	for _, hours := range AvailableHoursByDay(windows) {
		total += len(hours)
	}
	return total
}

// AssignedHoursByDay returns the sorted assigned hours for each day
func AssignedHoursByDay(assignments []*models.HourAssignment) [models.DaysPerWeek][]int {
	var assigned [models.DaysPerWeek][24]bool
	for _, a := range assignments {
		if models.IsValidDay(a.DayOfWeek) && models.IsValidHour(a.Hour) {
			assigned[a.DayOfWeek][a.Hour] = true
		}
	}

	var byDay [models.DaysPerWeek][]int
	for day := range assigned {
		byDay[day] = []int{}
		for h, ok := range assigned[day] {
			if ok {
				byDay[day] = append(byDay[day], h)
			}
		}
	}
	return byDay
}

// HoursByWeek groups assignments from many weeks into per-week hour totals
func HoursByWeek(assignments []*models.HourAssignment) map[models.WeekKey]int {
	perWeek := make(map[models.WeekKey][]*models.HourAssignment)
	for _, a := range assignments {
		perWeek[a.WeekStart] = append(perWeek[a.WeekStart], a)
	}

	totals := make(map[models.WeekKey]int, len(perWeek))
	for week, rows := range perWeek {
		totals[week] = WeeklyAssignedHours(rows)
	}
	return totals
}

// MaxWeeklyHours returns the largest weekly total among the assignments' weeks
func MaxWeeklyHours(assignments []*models.HourAssignment) int {
	highest := 0
	for _, hours := range HoursByWeek(assignments) {
		highest = max(highest, hours)
	}
	return highest
}
