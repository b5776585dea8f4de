package models

import (
	"fmt"
	"strings"
	"time"
)

// WeeklyHourCap is the most hours an employee may be assigned, or declare
// available, in a single week
const WeeklyHourCap = 30

// DateLayout is the ISO date format used for week keys and calendar dates
const DateLayout = "2006-01-02"

const DaysPerWeek = 7

var dayNames = [DaysPerWeek]string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

// WeekKey identifies a Monday-Sunday week by the ISO date of its Monday
type WeekKey string

// WeekOf returns the key of the week containing t
func WeekOf(t time.Time) WeekKey {
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	return WeekKey(day.AddDate(0, 0, -DayOfWeek(day)).Format(DateLayout))
}

// ParseWeekKey parses an ISO date and normalizes it to the Monday at or before it
func ParseWeekKey(value string) (WeekKey, error) {
	t, err := ParseDate(value)
	if err != nil {
		return "", err
	}
	return WeekOf(t), nil
}

// ParseDate parses an ISO date in UTC
func ParseDate(value string) (time.Time, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(value))
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", value)
	}
	return t, nil
}

// DayOfWeek maps a date to 0 (Monday) through 6 (Sunday)
func DayOfWeek(t time.Time) int {
	return (int(t.Weekday()) + 6) % 7
}

// DayName returns the English name for a day index
func DayName(day int) string {
	if !IsValidDay(day) {
		return ""
	}
	return dayNames[day]
}

// IsValidDay reports whether day is within 0..6
func IsValidDay(day int) bool {
	return day >= 0 && day < DaysPerWeek
}

// IsValidHour reports whether hour is a valid hour-of-day slot
func IsValidHour(hour int) bool {
	return hour >= 0 && hour <= 23
}

func (w WeekKey) String() string {
	return string(w)
}

// Start returns the Monday of the week at midnight UTC
func (w WeekKey) Start() time.Time {
	t, _ := time.Parse(DateLayout, string(w))
	return t
}

// Date returns the calendar date of the given day of the week
func (w WeekKey) Date(day int) time.Time {
	return w.Start().AddDate(0, 0, day)
}

// End returns the Sunday of the week
func (w WeekKey) End() time.Time {
	return w.Date(DaysPerWeek - 1)
}

// Next returns the following week
func (w WeekKey) Next() WeekKey {
	return WeekKey(w.Start().AddDate(0, 0, DaysPerWeek).Format(DateLayout))
}

// WeeksInRange lists every week that overlaps [start, end], in order
func WeeksInRange(start, end time.Time) []WeekKey {
	if end.Before(start) {
		return nil
	}
	last := WeekOf(end)
	var weeks []WeekKey
	for w := WeekOf(start); w <= last; w = w.Next() {
		weeks = append(weeks, w)
	}
	return weeks
}
