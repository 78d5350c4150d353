package router

import (
	"github.com/gin-gonic/gin"

	"shift_manager_backend/internal/handlers"
	"shift_manager_backend/internal/middleware"
	"shift_manager_backend/internal/models"
)

func managerOnly() gin.HandlerFunc {
	return middleware.RoleAuthMiddleware(models.RoleManager)
}

// SetupPublicAuthRoutes sets up the routes reachable without a token.
func SetupPublicAuthRoutes(group *gin.RouterGroup, authHandler *handlers.AuthHandler) {
	group.POST("/login", authHandler.Login)
}

func SetupAuthenticatedAuthRoutes(group *gin.RouterGroup, authHandler *handlers.AuthHandler) {
	group.GET("/verify", authHandler.Verify)
	group.POST("/change-password", authHandler.ChangePassword)
}

// SetupEmployeeRoutes sets up the employee routes. Reads are open to every account.
func SetupEmployeeRoutes(authenticatedGroup *gin.RouterGroup, employeeHandler *handlers.EmployeeHandler) {
	employeeRoutes := authenticatedGroup.Group("/employees")
	{
		employeeRoutes.GET("", employeeHandler.ListEmployees)
		employeeRoutes.GET("/:id", employeeHandler.GetEmployee)
		employeeRoutes.POST("", managerOnly(), employeeHandler.CreateEmployee)
		employeeRoutes.PUT("/:id", managerOnly(), employeeHandler.UpdateEmployee)
		employeeRoutes.DELETE("/:id", managerOnly(), employeeHandler.DeleteEmployee)
	}
}

// SetupTaskRoutes sets up the task type routes.
func SetupTaskRoutes(authenticatedGroup *gin.RouterGroup, taskHandler *handlers.TaskHandler) {
	taskRoutes := authenticatedGroup.Group("/tasks")
	{
		taskRoutes.GET("", taskHandler.ListTasks)
		taskRoutes.GET("/stats/summary", taskHandler.GetTaskSummary)
		taskRoutes.GET("/:id", taskHandler.GetTask)
		taskRoutes.POST("", managerOnly(), taskHandler.CreateTask)
		taskRoutes.PUT("/:id", managerOnly(), taskHandler.UpdateTask)
		taskRoutes.DELETE("/:id", managerOnly(), taskHandler.DeleteTask)
	}
}

// SetupShiftRoutes sets up the shift routes. Any account may tick off tasks.
func SetupShiftRoutes(authenticatedGroup *gin.RouterGroup, shiftHandler *handlers.ShiftHandler) {
	shiftRoutes := authenticatedGroup.Group("/shifts")
	{
		shiftRoutes.GET("/date/:date", shiftHandler.ListShiftsByDate)
		shiftRoutes.GET("/week/:startDate", shiftHandler.ListShiftsByWeek)
		shiftRoutes.GET("/employee/:id", shiftHandler.ListShiftsByEmployee)
		shiftRoutes.GET("/:id", shiftHandler.GetShiftByID)
		shiftRoutes.POST("/:id/tasks/:taskId/complete", shiftHandler.SetTaskCompletion)

		shiftRoutes.POST("", managerOnly(), shiftHandler.AssignShift)
		shiftRoutes.PUT("/:id", managerOnly(), shiftHandler.UpdateShift)
		shiftRoutes.DELETE("/:id", managerOnly(), shiftHandler.DeleteShift)
	}
}

// SetupReportRoutes sets up the manager-only report routes.
func SetupReportRoutes(authenticatedGroup *gin.RouterGroup, reportHandler *handlers.ReportHandler) {
	reportRoutes := authenticatedGroup.Group("/reports")
	reportRoutes.Use(managerOnly())
	{
		reportRoutes.GET("/performance", reportHandler.GetPerformance)
		reportRoutes.GET("/activity", reportHandler.GetActivity)
		reportRoutes.GET("/export", reportHandler.ExportPerformance)
	}
}
