package router

import (
	"database/sql"

	"github.com/gin-gonic/gin"

	"shift_manager_backend/internal/handlers"
	"shift_manager_backend/internal/middleware"
	"shift_manager_backend/internal/repositories"
	"shift_manager_backend/internal/services"
)

// Setup initializes the routing for the application.
// JWT signing must already be configured with utils.ConfigureJWT.
func Setup(engine *gin.Engine, db *sql.DB) {
	// Repositories
	employeeRepo := repositories.NewEmployeeRepository(db)
	taskRepo := repositories.NewTaskRepository(db)
	shiftRepo := repositories.NewShiftRepository(db)
	activityRepo := repositories.NewActivityRepository(db)
	reportRepo := repositories.NewReportRepository(db)

	// Services
	authService := services.NewAuthService(employeeRepo, activityRepo, db)
	employeeService := services.NewEmployeeService(employeeRepo, activityRepo, db)
	taskService := services.NewTaskService(taskRepo, db)
	shiftService := services.NewShiftService(shiftRepo, employeeRepo, taskRepo, activityRepo, db)
	reportService := services.NewReportService(reportRepo, activityRepo)

	// Handlers
	authHandler := handlers.NewAuthHandler(authService)
	employeeHandler := handlers.NewEmployeeHandler(employeeService)
	taskHandler := handlers.NewTaskHandler(taskService)
	shiftHandler := handlers.NewShiftHandler(shiftService)
	reportHandler := handlers.NewReportHandler(reportService)

	api := engine.Group("/api")
	api.GET("/health", handlers.Health)
	SetupPublicAuthRoutes(api.Group("/auth"), authHandler)

	authenticated := api.Group("")
	authenticated.Use(middleware.AuthMiddleware())
	{
		SetupAuthenticatedAuthRoutes(authenticated.Group("/auth"), authHandler)
		SetupEmployeeRoutes(authenticated, employeeHandler)
		SetupTaskRoutes(authenticated, taskHandler)
		SetupShiftRoutes(authenticated, shiftHandler)
		SetupReportRoutes(authenticated, reportHandler)
	}

	engine.NoRoute(handlers.NotFound)
}
