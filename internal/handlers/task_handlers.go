package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"shift_manager_backend/internal/services"
	"shift_manager_backend/pkg/utils"
)

// TaskHandler holds the task service.
type TaskHandler struct {
	taskService services.TaskService
}

// NewTaskHandler creates a new TaskHandler.
func NewTaskHandler(ts services.TaskService) *TaskHandler {
	return &TaskHandler{taskService: ts}
}

// ListTasks handles GET /tasks?shift=.
func (h *TaskHandler) ListTasks(c *gin.Context) {
	tasks, err := h.taskService.ListTasks(c.Request.Context(), c.Query("shift"))
	if err != nil {
		utils.LogError(err, "ListTasks: Error from taskService.ListTasks")
		respondServiceError(c, err, "Failed to fetch tasks.")
		return
	}
	c.JSON(http.StatusOK, tasks)
}

func (h *TaskHandler) GetTaskSummary(c *gin.Context) {
	summary, err := h.taskService.GetTaskSummary(c.Request.Context())
	if err != nil {
		utils.LogError(err, "GetTaskSummary: Error from taskService.GetTaskSummary")
		respondServiceError(c, err, "Failed to fetch task statistics.")
		return
	}
	c.JSON(http.StatusOK, summary)
}

func (h *TaskHandler) GetTask(c *gin.Context) {
	id, ok := paramID(c, "id", "task")
	if !ok {
		return
	}

	task, err := h.taskService.GetTask(c.Request.Context(), id)
	if err != nil {
		utils.LogError(err, "GetTask: Error from taskService.GetTask")
		respondServiceError(c, err, "Failed to fetch task.")
		return
	}
	c.JSON(http.StatusOK, task)
}

func (h *TaskHandler) CreateTask(c *gin.Context) {
	var req services.CreateTaskRequest
	if !bindJSON(c, &req, "CreateTask") {
		return
	}

	task, err := h.taskService.CreateTask(c.Request.Context(), req)
	if err != nil {
		utils.LogError(err, "CreateTask: Error from taskService.CreateTask")
		respondServiceError(c, err, "Failed to create task.")
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"id":      task.ID,
		"message": "Task created",
	})
}

func (h *TaskHandler) UpdateTask(c *gin.Context) {
	id, ok := paramID(c, "id", "task")
	if !ok {
		return
	}

	var req services.UpdateTaskRequest
	if !bindJSON(c, &req, "UpdateTask") {
		return
	}

	if _, err := h.taskService.UpdateTask(c.Request.Context(), id, req); err != nil {
		utils.LogError(err, "UpdateTask: Error from taskService.UpdateTask")
		respondServiceError(c, err, "Failed to update task.")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Task updated"})
}

// DeleteTask handles DELETE /tasks/:id as a soft delete.
func (h *TaskHandler) DeleteTask(c *gin.Context) {
	id, ok := paramID(c, "id", "task")
	if !ok {
		return
	}

	if err := h.taskService.SoftDeleteTask(c.Request.Context(), id); err != nil {
		utils.LogError(err, "DeleteTask: Error from taskService.SoftDeleteTask")
		respondServiceError(c, err, "Failed to delete task.")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Task removed"})
}
