package handlers

import (
	"database/sql"

	"github.com/alimgiray/shiftledger/internal/middleware"
	"github.com/alimgiray/shiftledger/internal/services"
	"github.com/gin-gonic/gin"
)

// Handlers groups every HTTP handler of the API
type Handlers struct {
	Auth         *AuthHandler
	Availability *AvailabilityHandler
	Schedule     *ScheduleHandler
	Report       *ReportHandler
	Timesheet    *TimesheetHandler
	User         *UserHandler
	Health       *HealthHandler
	NotFound     *NotFoundHandler
}

func NewHandlers(
	db *sql.DB,
	userService *services.UserService,
	assignmentService *services.AssignmentService,
	reportService *services.ReportService,
	timesheetService *services.TimesheetService,
) *Handlers {
	return &Handlers{
		Auth:         NewAuthHandler(userService),
		Availability: NewAvailabilityHandler(assignmentService),
		Schedule:     NewScheduleHandler(assignmentService),
		Report:       NewReportHandler(reportService),
		Timesheet:    NewTimesheetHandler(timesheetService),
		User:         NewUserHandler(userService),
		Health:       NewHealthHandler(db),
		NotFound:     NewNotFoundHandler(),
	}
}

// SetupRoutes registers the API on the router
func SetupRoutes(router *gin.Engine, h *Handlers) {
	router.GET("/health", h.Health.Health)

	// Auth routes
	router.POST("/login", h.Auth.Login)
	router.POST("/register", h.Auth.Register)
	router.POST("/logout", h.Auth.Logout)
	router.POST("/api/token", h.Auth.IssueToken)

	api := router.Group("/api")
	api.Use(middleware.AuthRequired())
	{
		api.GET("/user", h.Auth.CurrentUser)

		api.POST("/availability", h.Availability.SubmitAvailability)
		api.GET("/availability/:week", h.Availability.GetAvailability)
		api.GET("/hourly-assignments/:week", h.Schedule.GetAssignments)
		api.GET("/week-status/:week", h.Schedule.WeekStatus)
		api.GET("/weekly-hours/:week", h.Schedule.WeeklyHours)

		api.POST("/timesheet", h.Timesheet.SubmitTimesheet)
		api.GET("/timesheet/:date", h.Timesheet.GetTimesheet)
		api.GET("/monthly-timesheet/:year/:month", h.Timesheet.MonthlyTimesheets)
		api.GET("/recorded-hours/:week", h.Timesheet.WeeklyRecordedHours)

		api.GET("/reports/employee-schedule/:userId/:weekStart", h.Report.EmployeeSchedule)
	}

	manager := api.Group("")
	manager.Use(middleware.ManagerRequired())
	{
		manager.GET("/all-availability/:week", h.Availability.GetAllAvailability)
		manager.POST("/assign-hour", h.Schedule.AssignHour)
		manager.POST("/unassign-hour", h.Schedule.UnassignHour)
		manager.POST("/finalize-week", h.Schedule.FinalizeWeek)

		manager.GET("/reports/hours-summary/:start/:end", h.Report.HoursSummary)
		manager.GET("/reports/hours-summary/:start/:end/export", h.Report.ExportHoursSummary)
		manager.GET("/reports/availability-comparison/:userId/:weekStart", h.Report.AvailabilityComparison)

		manager.GET("/all-timesheets/:year/:month", h.Timesheet.AllTimesheets)
		manager.GET("/pending-timesheets", h.Timesheet.PendingTimesheets)
		manager.POST("/timesheets/:id/approve", h.Timesheet.Approve)
		manager.POST("/timesheets/:id/reject", h.Timesheet.Reject)

		manager.GET("/users", h.User.ListUsers)
		manager.GET("/users/department/:department", h.User.ListDepartmentUsers)
	}

	router.NoRoute(h.NotFound.NotFound)
}
