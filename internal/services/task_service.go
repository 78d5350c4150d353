package services

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"shift_manager_backend/internal/models"
	"shift_manager_backend/internal/repositories"
	"shift_manager_backend/pkg/utils"
)

const defaultTaskIcon = "check"

// --- Task DTOs ---
type CreateTaskRequest struct {
	Name        string  `json:"name" binding:"required"`
	Description *string `json:"description"`
	Icon        string  `json:"icon"`
	Shift       string  `json:"shift"`
}

type UpdateTaskRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Icon        *string `json:"icon"`
	Shift       *string `json:"shift"`
}

// --- TaskService Interface ---
type TaskService interface {
	CreateTask(ctx context.Context, req CreateTaskRequest) (*models.TaskType, error)
	GetTask(ctx context.Context, id int64) (*models.TaskType, error)
	ListTasks(ctx context.Context, shiftClass string) ([]models.TaskType, error)
	UpdateTask(ctx context.Context, id int64, req UpdateTaskRequest) (*models.TaskType, error)
	SoftDeleteTask(ctx context.Context, id int64) error
	GetTaskSummary(ctx context.Context) (*models.TaskSummary, error)
}

type taskService struct {
	taskRepo repositories.TaskRepository
	db       *sql.DB
}

// NewTaskService creates a new instance of TaskService.
func NewTaskService(tr repositories.TaskRepository, db *sql.DB) TaskService {
	return &taskService{taskRepo: tr, db: db}
}

func (s *taskService) CreateTask(ctx context.Context, req CreateTaskRequest) (*models.TaskType, error) {
	name := strings.TrimSpace(req.Name)
	if utils.IsEmpty(name) {
		return nil, validationError("task name is required")
	}
	shiftClass := strings.TrimSpace(req.Shift)
	if shiftClass == "" {
		shiftClass = models.ShiftClassAll
	}
	if !models.IsValidTaskShiftClass(shiftClass) {
		return nil, validationError("invalid shift %q", shiftClass)
	}
	icon := strings.TrimSpace(req.Icon)
	if icon == "" {
		icon = defaultTaskIcon
	}

	task := &models.TaskType{
		Name:        name,
		Description: optionalTrimmed(req.Description),
		Icon:        icon,
		ShiftType:   shiftClass,
	}
	if _, err := s.taskRepo.CreateTask(ctx, s.db, task); err != nil {
		return nil, internalError("creating task", err)
	}
	return task, nil
}

func (s *taskService) GetTask(ctx context.Context, id int64) (*models.TaskType, error) {
	task, err := s.taskRepo.GetTaskByID(ctx, id)
	if err != nil {
		return nil, translateRepoError("loading task", err, fmt.Errorf("%w: id %d", ErrTaskNotFound, id))
	}
	return task, nil
}

// ListTasks returns active task types. A non-empty shiftClass restricts the list to that class.
func (s *taskService) ListTasks(ctx context.Context, shiftClass string) ([]models.TaskType, error) {
	var filter *string
	if shiftClass = strings.TrimSpace(shiftClass); shiftClass != "" {
		if !models.IsValidTaskShiftClass(shiftClass) {
			return nil, validationError("invalid shift %q", shiftClass)
		}
		filter = &shiftClass
	}
	tasks, err := s.taskRepo.GetActiveTasks(ctx, filter)
	if err != nil {
		return nil, internalError("listing tasks", err)
	}
	return tasks, nil
}

func (s *taskService) UpdateTask(ctx context.Context, id int64, req UpdateTaskRequest) (*models.TaskType, error) {
	notFound := fmt.Errorf("%w: id %d", ErrTaskNotFound, id)
	task, err := s.taskRepo.GetTaskByID(ctx, id)
	if err != nil {
		return nil, translateRepoError("loading task", err, notFound)
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, validationError("task name cannot be empty")
		}
		task.Name = name
	}
	if req.Description != nil {
		task.Description = optionalTrimmed(req.Description)
	}
	if req.Icon != nil {
		icon := strings.TrimSpace(*req.Icon)
		if icon == "" {
			icon = defaultTaskIcon
		}
		task.Icon = icon
	}
	if req.Shift != nil {
		if !models.IsValidTaskShiftClass(*req.Shift) {
			return nil, validationError("invalid shift %q", *req.Shift)
		}
		task.ShiftType = *req.Shift
	}

	if _, err := s.taskRepo.UpdateTask(ctx, s.db, task); err != nil {
		return nil, translateRepoError("updating task", err, notFound)
	}
	return task, nil
}

// SoftDeleteTask hides the task type from listings. Shifts already carrying it are unchanged.
func (s *taskService) SoftDeleteTask(ctx context.Context, id int64) error {
	if err := s.taskRepo.DeactivateTask(ctx, s.db, id); err != nil {
		return translateRepoError("deactivating task", err, fmt.Errorf("%w: id %d", ErrTaskNotFound, id))
	}
	return nil
}

func (s *taskService) GetTaskSummary(ctx context.Context) (*models.TaskSummary, error) {
	summary, err := s.taskRepo.GetTaskSummary(ctx)
	if err != nil {
		return nil, internalError("summarising tasks", err)
	}
	return summary, nil
}
