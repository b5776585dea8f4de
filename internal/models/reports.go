package models

// UtilizationStatus classifies a day by comparing assigned and available hours
type UtilizationStatus string

const (
	FullyUtilized UtilizationStatus = "FullyUtilized"
	Underutilized UtilizationStatus = "Underutilized"
	OverAssigned  UtilizationStatus = "OverAssigned"
)

// ClassifyUtilization compares assigned against available hours
func ClassifyUtilization(available, assigned int) UtilizationStatus {
	switch {
	case assigned == available:
		return FullyUtilized
	case assigned < available:
		return Underutilized
	default:
		return OverAssigned
	}
}

// ScheduleDay is one day of an employee schedule report
type ScheduleDay struct {
	DayOfWeek  int    `json:"dayOfWeek"`
	DayName    string `json:"dayName"`
	Date       string `json:"date"`
	Hours      []int  `json:"hours"`
	TotalHours int    `json:"totalHours"`
}

// EmployeeScheduleReport lists a user's assigned hours for each day of a week
type EmployeeScheduleReport struct {
	EmployeeID   string         `json:"employeeId"`
	EmployeeName string         `json:"employeeName"`
	WeekStart    WeekKey        `json:"weekStart"`
	Schedule     []ScheduleDay  `json:"schedule"`
	TotalHours   int            `json:"totalHours"`
	WithinLimit  bool           `json:"withinLimit"`
	Status       ScheduleStatus `json:"status"`
}

// EmployeeHoursSummary aggregates one employee's hours across a date range
type EmployeeHoursSummary struct {
	UserID             string  `json:"userId"`
	Username           string  `json:"username"`
	TotalHours         int     `json:"totalHours"`
	WeeksWorked        int     `json:"weeksWorked"`
	AverageWeeklyHours float64 `json:"averageWeeklyHours"`
	MaxWeeklyHours     int     `json:"maxWeeklyHours"`
	OverLimit          bool    `json:"overLimit"`
}

// HoursSummaryReport aggregates hours for every employee of a department
type HoursSummaryReport struct {
	Department     string                  `json:"department"`
	StartDate      string                  `json:"startDate"`
	EndDate        string                  `json:"endDate"`
	Employees      []*EmployeeHoursSummary `json:"employees"`
	TotalHours     int                     `json:"totalHours"`
	OverLimitCount int                     `json:"overLimitCount"`
}

// DayComparison compares declared availability with assignments for one day
type DayComparison struct {
	DayOfWeek       int               `json:"dayOfWeek"`
	DayName         string            `json:"dayName"`
	Date            string            `json:"date"`
	AvailableHours  int               `json:"availableHours"`
	AvailableSlots  []int             `json:"availableSlots"`
	AssignedHours   int               `json:"assignedHours"`
	AssignedSlots   []int             `json:"assignedSlots"`
	UnassignedHours int               `json:"unassignedHours"`
	Status          UtilizationStatus `json:"status"`
}

// AvailabilityComparisonReport compares availability and assignments across a week
type AvailabilityComparisonReport struct {
	EmployeeID      string          `json:"employeeId"`
	EmployeeName    string          `json:"employeeName"`
	WeekStart       WeekKey         `json:"weekStart"`
	Comparison      []DayComparison `json:"comparison"`
	AvailableHours  int             `json:"availableHours"`
	AssignedHours   int             `json:"assignedHours"`
	UtilizationRate float64         `json:"utilizationRate"`
}
