package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alimgiray/shiftledger/internal/handlers"
	"github.com/alimgiray/shiftledger/internal/middleware"
	"github.com/alimgiray/shiftledger/internal/repositories"
	"github.com/alimgiray/shiftledger/internal/services"
	"github.com/alimgiray/shiftledger/pkg/config"
	"github.com/alimgiray/shiftledger/pkg/database"
	"github.com/alimgiray/shiftledger/pkg/logger"
	"github.com/gin-gonic/gin"
)

func main() {
	// Load configuration
	if err := config.Load(); err != nil {
		logger.Fatalf("Failed to load config: %v", err)
	}
	logger.SetLevel(config.AppConfig.Log.Level)
	gin.SetMode(config.AppConfig.Server.Mode)

	// Initialize database
	if err := database.Init(config.AppConfig.Database.Path); err != nil {
		logger.Fatalf("Failed to initialize database: %v", err)
	}
	defer database.Close()

	// Initialize dependencies
	userRepo := repositories.NewUserRepository(database.DB)
	availabilityRepo := repositories.NewAvailabilityRepository(database.DB)
	assignmentRepo := repositories.NewHourAssignmentRepository(database.DB)
	scheduleRepo := repositories.NewWeeklyScheduleRepository(database.DB)
	timesheetRepo := repositories.NewTimesheetRepository(database.DB)

	weekService := services.NewWeekLifecycleService(scheduleRepo, nil)
	userService := services.NewUserService(userRepo)
	assignmentService := services.NewAssignmentService(userRepo, availabilityRepo, assignmentRepo, weekService, nil)
	reportService := services.NewReportService(userRepo, availabilityRepo, assignmentRepo, weekService)
	timesheetService := services.NewTimesheetService(timesheetRepo, nil)

	admin := config.AppConfig.Admin
	if err := userService.EnsureDefaultAdmin(admin.Username, admin.Password, admin.Department); err != nil {
		logger.Fatalf("Failed to create default admin: %v", err)
	}

	// Initialize router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger())
	router.Use(middleware.SessionMiddleware())

	handlers.SetupRoutes(router, handlers.NewHandlers(database.DB, userService, assignmentService, reportService, timesheetService))

	// Setup server
	server := &http.Server{
		Addr:         ":" + config.AppConfig.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(config.AppConfig.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(config.AppConfig.Server.WriteTimeout) * time.Second,
	}

	// Graceful shutdown
	go func() {
		logger.Infof("Server starting on %s", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Errorf("Server forced to shutdown: %v", err)
	}
	logger.Info("Server stopped")
}
