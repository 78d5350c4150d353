package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"shift_manager_backend/internal/services"
	"shift_manager_backend/pkg/utils"
)

// EmployeeHandler holds the employee service.
type EmployeeHandler struct {
	employeeService services.EmployeeService
}

// NewEmployeeHandler creates a new EmployeeHandler.
func NewEmployeeHandler(es services.EmployeeService) *EmployeeHandler {
	return &EmployeeHandler{employeeService: es}
}

// ListEmployees handles GET /employees. Only active employees are returned.
func (h *EmployeeHandler) ListEmployees(c *gin.Context) {
	employees, err := h.employeeService.ListEmployees(c.Request.Context())
	if err != nil {
		utils.LogError(err, "ListEmployees: Error from employeeService.ListEmployees")
		respondServiceError(c, err, "Failed to fetch employees.")
		return
	}
	c.JSON(http.StatusOK, employees)
}

// GetEmployee handles GET /employees/:id.
func (h *EmployeeHandler) GetEmployee(c *gin.Context) {
	id, ok := paramID(c, "id", "employee")
	if !ok {
		return
	}

	detail, err := h.employeeService.GetEmployee(c.Request.Context(), id)
	if err != nil {
		utils.LogError(err, "GetEmployee: Error from employeeService.GetEmployee")
		respondServiceError(c, err, "Failed to fetch employee.")
		return
	}
	c.JSON(http.StatusOK, detail)
}

// CreateEmployee handles POST /employees.
func (h *EmployeeHandler) CreateEmployee(c *gin.Context) {
	var req services.CreateEmployeeRequest
	if !bindJSON(c, &req, "CreateEmployee") {
		return
	}

	employee, err := h.employeeService.CreateEmployee(c.Request.Context(), req)
	if err != nil {
		utils.LogError(err, "CreateEmployee: Error from employeeService.CreateEmployee")
		respondServiceError(c, err, "Failed to create employee.")
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"id":      employee.ID,
		"message": "Employee created",
	})
}

// UpdateEmployee handles PUT /employees/:id.
func (h *EmployeeHandler) UpdateEmployee(c *gin.Context) {
	id, ok := paramID(c, "id", "employee")
	if !ok {
		return
	}

	var req services.UpdateEmployeeRequest
	if !bindJSON(c, &req, "UpdateEmployee") {
		return
	}

	if _, err := h.employeeService.UpdateEmployee(c.Request.Context(), id, req); err != nil {
		utils.LogError(err, "UpdateEmployee: Error from employeeService.UpdateEmployee")
		respondServiceError(c, err, "Failed to update employee.")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Employee updated"})
}

// DeleteEmployee handles DELETE /employees/:id as a soft delete.
func (h *EmployeeHandler) DeleteEmployee(c *gin.Context) {
	id, ok := paramID(c, "id", "employee")
	if !ok {
		return
	}

	employee, err := h.employeeService.SoftDeleteEmployee(c.Request.Context(), id)
	if err != nil {
		utils.LogError(err, "DeleteEmployee: Error from employeeService.SoftDeleteEmployee")
		respondServiceError(c, err, "Failed to delete employee.")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Employee " + employee.Name + " removed"})
}
