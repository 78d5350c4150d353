package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"shift_manager_backend/internal/services"
	"shift_manager_backend/pkg/utils"
)

// ShiftHandler holds the shift service.
type ShiftHandler struct {
	shiftService services.ShiftService
}

// NewShiftHandler creates a new ShiftHandler.
func NewShiftHandler(ss services.ShiftService) *ShiftHandler {
	return &ShiftHandler{shiftService: ss}
}

// AssignShift handles POST /shifts.
func (h *ShiftHandler) AssignShift(c *gin.Context) {
	var req services.AssignShiftRequest
	if !bindJSON(c, &req, "AssignShift") {
		return
	}

	id, err := h.shiftService.AssignShift(c.Request.Context(), req)
	if err != nil {
		utils.LogError(err, "AssignShift: Error from shiftService.AssignShift")
		respondServiceError(c, err, "Failed to create shift.")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"id":      id,
		"message": "Shift created",
	})
}

// GetShiftByID handles GET /shifts/:id.
func (h *ShiftHandler) GetShiftByID(c *gin.Context) {
	shiftID, ok := paramID(c, "id", "shift")
	if !ok {
		return
	}

	shift, err := h.shiftService.GetShiftByID(c.Request.Context(), shiftID)
	if err != nil {
		utils.LogError(err, "GetShiftByID: Error from shiftService.GetShiftByID")
		respondServiceError(c, err, "Failed to fetch shift.")
		return
	}
	c.JSON(http.StatusOK, shift)
}

// UpdateShift handles PUT /shifts/:id.
func (h *ShiftHandler) UpdateShift(c *gin.Context) {
	shiftID, ok := paramID(c, "id", "shift")
	if !ok {
		return
	}

	var req services.UpdateShiftRequest
	if !bindJSON(c, &req, "UpdateShift") {
		return
	}

	if err := h.shiftService.UpdateShift(c.Request.Context(), shiftID, req); err != nil {
		utils.LogError(err, "UpdateShift: Error from shiftService.UpdateShift")
		respondServiceError(c, err, "Failed to update shift.")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Shift updated"})
}

// DeleteShift handles DELETE /shifts/:id.
func (h *ShiftHandler) DeleteShift(c *gin.Context) {
	shiftID, ok := paramID(c, "id", "shift")
	if !ok {
		return
	}

	if err := h.shiftService.DeleteShift(c.Request.Context(), shiftID); err != nil {
		utils.LogError(err, "DeleteShift: Error from shiftService.DeleteShift")
		respondServiceError(c, err, "Failed to delete shift.")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Shift deleted"})
}

// SetTaskCompletion handles POST /shifts/:id/tasks/:taskId/complete.
func (h *ShiftHandler) SetTaskCompletion(c *gin.Context) {
	shiftID, ok := paramID(c, "id", "shift")
	if !ok {
		return
	}
	taskID, ok := paramID(c, "taskId", "task")
	if !ok {
		return
	}

	var req services.TaskCompletionRequest
	if !bindJSON(c, &req, "SetTaskCompletion") {
		return
	}

	if err := h.shiftService.SetTaskCompletion(c.Request.Context(), shiftID, taskID, *req.Completed); err != nil {
		utils.LogError(err, "SetTaskCompletion: Error from shiftService.SetTaskCompletion")
		respondServiceError(c, err, "Failed to update task.")
		return
	}

	message := "Task marked as not completed"
	if *req.Completed {
		message = "Task completed"
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": message})
}

// ListShiftsByDate handles GET /shifts/date/:date.
func (h *ShiftHandler) ListShiftsByDate(c *gin.Context) {
	grouped, err := h.shiftService.ListShiftsByDate(c.Request.Context(), c.Param("date"))
	if err != nil {
		utils.LogError(err, "ListShiftsByDate: Error from shiftService.ListShiftsByDate")
		respondServiceError(c, err, "Failed to fetch shifts.")
		return
	}
	c.JSON(http.StatusOK, grouped)
}

// ListShiftsByWeek handles GET /shifts/week/:startDate.
func (h *ShiftHandler) ListShiftsByWeek(c *gin.Context) {
	shifts, err := h.shiftService.ListShiftsByWeek(c.Request.Context(), c.Param("startDate"))
	if err != nil {
		utils.LogError(err, "ListShiftsByWeek: Error from shiftService.ListShiftsByWeek")
		respondServiceError(c, err, "Failed to fetch shifts.")
		return
	}
	c.JSON(http.StatusOK, shifts)
}

// ListShiftsByEmployee handles GET /shifts/employee/:id?month=YYYY-MM.
func (h *ShiftHandler) ListShiftsByEmployee(c *gin.Context) {
	employeeID, ok := paramID(c, "id", "employee")
	if !ok {
		return
	}

	shifts, err := h.shiftService.ListShiftsByEmployee(c.Request.Context(), employeeID, c.Query("month"))
	if err != nil {
		utils.LogError(err, "ListShiftsByEmployee: Error from shiftService.ListShiftsByEmployee")
		respondServiceError(c, err, "Failed to fetch shifts.")
		return
	}
	c.JSON(http.StatusOK, shifts)
}
