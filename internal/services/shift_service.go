package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"shift_manager_backend/internal/models"
	"shift_manager_backend/internal/repositories"
	"shift_manager_backend/pkg/utils"
)

const monthLayout = "2006-01"

// --- Shift DTOs ---
type AssignShiftRequest struct {
	UserID    int64   `json:"userId" binding:"required"`
	ShiftDate string  `json:"shiftDate" binding:"required"`
	ShiftType string  `json:"shiftType" binding:"required"`
	Tasks     []int64 `json:"tasks"`
	Notes     *string `json:"notes"`
}

// UpdateShiftRequest carries only the fields to change. A non-nil Tasks, even empty,
// replaces the shift's task list.
type UpdateShiftRequest struct {
	ShiftType *string  `json:"shiftType"`
	Notes     *string  `json:"notes"`
	Status    *string  `json:"status"`
	Tasks     *[]int64 `json:"tasks"`
}

type TaskCompletionRequest struct {
	Completed *bool `json:"completed" binding:"required"`
}

// --- ShiftService Interface ---
type ShiftService interface {
	AssignShift(ctx context.Context, req AssignShiftRequest) (int64, error)
	UpdateShift(ctx context.Context, shiftID int64, req UpdateShiftRequest) error
	DeleteShift(ctx context.Context, shiftID int64) error
	SetTaskCompletion(ctx context.Context, shiftID, taskID int64, completed bool) error

	GetShiftByID(ctx context.Context, shiftID int64) (*models.Shift, error)
	ListShiftsByDate(ctx context.Context, date string) (*models.ShiftsByType, error)
	ListShiftsByWeek(ctx context.Context, startDate string) ([]models.Shift, error)
	ListShiftsByEmployee(ctx context.Context, employeeID int64, month string) ([]models.Shift, error)
}

type shiftService struct {
	shiftRepo    repositories.ShiftRepository
	employeeRepo repositories.EmployeeRepository
	taskRepo     repositories.TaskRepository
	activityRepo repositories.ActivityRepository
	db           *sql.DB
}

// NewShiftService creates a new instance of ShiftService.
func NewShiftService(
	sr repositories.ShiftRepository,
	er repositories.EmployeeRepository,
	tr repositories.TaskRepository,
	ar repositories.ActivityRepository,
	db *sql.DB,
) ShiftService {
	return &shiftService{
		shiftRepo:    sr,
		employeeRepo: er,
		taskRepo:     tr,
		activityRepo: ar,
		db:           db,
	}
}

func parseShiftDate(value string) (string, error) {
	value = strings.TrimSpace(value)
	d, err := time.Parse(models.DateLayout, value)
	if err != nil {
		return "", validationError("invalid date %q, please use YYYY-MM-DD", value)
	}
	return d.Format(models.DateLayout), nil
}

func normalizeNotes(notes *string) *string {
	if notes == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*notes)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

// uniqueTaskIDs drops repeated ids keeping first-seen order.
func uniqueTaskIDs(ids []int64) ([]int64, error) {
	seen := make(map[int64]bool, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if id <= 0 {
			return nil, validationError("invalid task id %d", id)
		}
		if seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out, nil
}

func (s *shiftService) ensureActiveTasks(ctx context.Context, executor repositories.SQLExecutor, ids []int64) error {
	found, err := s.taskRepo.FindActiveTaskIDs(ctx, executor, ids)
	if err != nil {
		return internalError("looking up tasks", err)
	}
	for _, id := range ids {
		if !found[id] {
			return fmt.Errorf("%w: id %d", ErrTaskNotFound, id)
		}
	}
	return nil
}

func (s *shiftService) AssignShift(ctx context.Context, req AssignShiftRequest) (int64, error) {
	if req.UserID <= 0 {
		return 0, validationError("userId is required")
	}
	shiftDate, err := parseShiftDate(req.ShiftDate)
	if err != nil {
		return 0, err
	}
	if !models.IsValidShiftType(req.ShiftType) {
		return 0, validationError("invalid shift type %q", req.ShiftType)
	}
	taskIDs, err := uniqueTaskIDs(req.Tasks)
	if err != nil {
		return 0, err
	}

	employee, err := s.employeeRepo.GetEmployeeByID(ctx, req.UserID)
	if err != nil {
		return 0, translateRepoError("loading employee", err, fmt.Errorf("%w: id %d", ErrEmployeeNotFound, req.UserID))
	}
	if !employee.IsActive {
		return 0, fmt.Errorf("%w: id %d", ErrEmployeeNotFound, req.UserID)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, internalError("starting transaction", err)
	}
	defer tx.Rollback()

	exists, err := s.shiftRepo.ExistsForSlot(ctx, tx, req.UserID, shiftDate, req.ShiftType, 0)
	if err != nil {
		return 0, internalError("checking shift slot", err)
	}
	if exists {
		return 0, ErrDuplicateShift
	}

	if err := s.ensureActiveTasks(ctx, tx, taskIDs); err != nil {
		return 0, err
	}

	shift := &models.Shift{
		UserID:    req.UserID,
		ShiftDate: shiftDate,
		ShiftType: req.ShiftType,
		Status:    models.ShiftStatusScheduled,
		Notes:     normalizeNotes(req.Notes),
	}
	if _, err := s.shiftRepo.CreateShift(ctx, tx, shift); err != nil {
		switch {
		case errors.Is(err, repositories.ErrDuplicateKey):
			return 0, ErrDuplicateShift
		case errors.Is(err, repositories.ErrForeignKey):
			return 0, fmt.Errorf("%w: id %d", ErrEmployeeNotFound, req.UserID)
		}
		return 0, internalError("creating shift", err)
	}

	if err := s.shiftRepo.AddShiftTasks(ctx, tx, shift.ID, taskIDs); err != nil {
		if errors.Is(err, repositories.ErrForeignKey) {
			return 0, ErrTaskNotFound
		}
		return 0, internalError("linking shift tasks", err)
	}

	description := fmt.Sprintf("Assigned %s shift to %s on %s", shift.ShiftType, employee.Name, shift.ShiftDate)
	if err := s.activityRepo.AppendActivity(ctx, tx, &models.ActivityRecord{
		UserID:      &employee.ID,
		ActionType:  models.ActivityShiftCreated,
		Description: &description,
	}); err != nil {
		return 0, internalError("recording activity", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, internalError("committing shift", err)
	}
	return shift.ID, nil
}

func (s *shiftService) UpdateShift(ctx context.Context, shiftID int64, req UpdateShiftRequest) error {
	if req.ShiftType != nil && !models.IsValidShiftType(*req.ShiftType) {
		return validationError("invalid shift type %q", *req.ShiftType)
	}
	if req.Status != nil && !models.IsValidShiftStatus(*req.Status) {
		return validationError("invalid shift status %q", *req.Status)
	}
	var taskIDs []int64
	if req.Tasks != nil {
		var err error
		if taskIDs, err = uniqueTaskIDs(*req.Tasks); err != nil {
			return err
		}
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return internalError("starting transaction", err)
	}
	defer tx.Rollback()

	shift, err := s.shiftRepo.GetShiftByID(ctx, tx, shiftID)
	if err != nil {
		return translateRepoError("loading shift", err, fmt.Errorf("%w: id %d", ErrShiftNotFound, shiftID))
	}

	if req.ShiftType != nil && *req.ShiftType != shift.ShiftType {
		exists, err := s.shiftRepo.ExistsForSlot(ctx, tx, shift.UserID, shift.ShiftDate, *req.ShiftType, shift.ID)
		if err != nil {
			return internalError("checking shift slot", err)
		}
		if exists {
			return ErrDuplicateShift
		}
		shift.ShiftType = *req.ShiftType
	}
	if req.Status != nil {
		if !models.CanTransitionShiftStatus(shift.Status, *req.Status) {
			return fmt.Errorf("%w: %s to %s", ErrInvalidStatusTransition, shift.Status, *req.Status)
		}
		shift.Status = *req.Status
	}
	if req.Notes != nil {
		shift.Notes = normalizeNotes(req.Notes)
	}

	if err := s.shiftRepo.UpdateShift(ctx, tx, shift); err != nil {
		switch {
		case errors.Is(err, repositories.ErrDuplicateKey):
			return ErrDuplicateShift
		case errors.Is(err, repositories.ErrNotFound):
			return fmt.Errorf("%w: id %d", ErrShiftNotFound, shiftID)
		}
		return internalError("updating shift", err)
	}

	if req.Tasks != nil {
		if err := s.ensureActiveTasks(ctx, tx, taskIDs); err != nil {
			return err
		}
		if err := s.shiftRepo.ClearShiftTasks(ctx, tx, shift.ID); err != nil {
			return internalError("clearing shift tasks", err)
		}
		if err := s.shiftRepo.AddShiftTasks(ctx, tx, shift.ID, taskIDs); err != nil {
			if errors.Is(err, repositories.ErrForeignKey) {
				return ErrTaskNotFound
			}
			return internalError("linking shift tasks", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return internalError("committing shift update", err)
	}
	return nil
}

func (s *shiftService) DeleteShift(ctx context.Context, shiftID int64) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return internalError("starting transaction", err)
	}
	defer tx.Rollback()

	shift, err := s.shiftRepo.GetShiftByID(ctx, tx, shiftID)
	if err != nil {
		return translateRepoError("loading shift", err, fmt.Errorf("%w: id %d", ErrShiftNotFound, shiftID))
	}

	if err := s.shiftRepo.DeleteShift(ctx, tx, shiftID); err != nil {
		return translateRepoError("deleting shift", err, fmt.Errorf("%w: id %d", ErrShiftNotFound, shiftID))
	}

	description := fmt.Sprintf("Removed %s shift of %s on %s", shift.ShiftType, shift.EmployeeName, shift.ShiftDate)
	if err := s.activityRepo.AppendActivity(ctx, tx, &models.ActivityRecord{
		UserID:      &shift.UserID,
		ActionType:  models.ActivityShiftDeleted,
		Description: &description,
	}); err != nil {
		return internalError("recording activity", err)
	}

	if err := tx.Commit(); err != nil {
		return internalError("committing shift deletion", err)
	}
	return nil
}

// SetTaskCompletion does not check that the shift or link exists; a missing link is a no-op.
func (s *shiftService) SetTaskCompletion(ctx context.Context, shiftID, taskID int64, completed bool) error {
	n, err := s.shiftRepo.SetTaskCompletion(ctx, s.db, shiftID, taskID, completed)
	if err != nil {
		return internalError("updating task completion", err)
	}
	if n == 0 {
		utils.LogDebug("Task completion matched no shift task", map[string]interface{}{
			"shift_id": shiftID,
			"task_id":  taskID,
		})
	}
	return nil
}

func (s *shiftService) GetShiftByID(ctx context.Context, shiftID int64) (*models.Shift, error) {
	shift, err := s.shiftRepo.GetShiftByID(ctx, s.db, shiftID)
	if err != nil {
		return nil, translateRepoError("loading shift", err, fmt.Errorf("%w: id %d", ErrShiftNotFound, shiftID))
	}
	return shift, nil
}

func (s *shiftService) ListShiftsByDate(ctx context.Context, date string) (*models.ShiftsByType, error) {
	shiftDate, err := parseShiftDate(date)
	if err != nil {
		return nil, err
	}

	shifts, err := s.shiftRepo.GetShiftsByDate(ctx, shiftDate)
	if err != nil {
		return nil, internalError("listing shifts by date", err)
	}

	grouped := &models.ShiftsByType{
		Morning:   []models.Shift{},
		Afternoon: []models.Shift{},
		Night:     []models.Shift{},
	}
	for _, shift := range shifts {
		switch shift.ShiftType {
		case models.ShiftTypeMorning:
			grouped.Morning = append(grouped.Morning, shift)
		case models.ShiftTypeAfternoon:
			grouped.Afternoon = append(grouped.Afternoon, shift)
		case models.ShiftTypeNight:
			grouped.Night = append(grouped.Night, shift)
		}
	}
	return grouped, nil
}

// ListShiftsByWeek returns the shifts of the seven days starting at startDate.
func (s *shiftService) ListShiftsByWeek(ctx context.Context, startDate string) ([]models.Shift, error) {
	from, err := parseShiftDate(startDate)
	if err != nil {
		return nil, err
	}
	start, _ := time.Parse(models.DateLayout, from)
	to := start.AddDate(0, 0, 6).Format(models.DateLayout)

	shifts, err := s.shiftRepo.GetShiftsByDateRange(ctx, from, to)
	if err != nil {
		return nil, internalError("listing shifts by week", err)
	}
	return shifts, nil
}

// ListShiftsByEmployee lists one employee's shifts, optionally restricted to a YYYY-MM month.
// Shifts of deactivated employees are still returned.
func (s *shiftService) ListShiftsByEmployee(ctx context.Context, employeeID int64, month string) ([]models.Shift, error) {
	if employeeID <= 0 {
		return nil, validationError("invalid employee id %d", employeeID)
	}

	var from, to string
	if month = strings.TrimSpace(month); month != "" {
		first, err := time.Parse(monthLayout, month)
		if err != nil {
			return nil, validationError("invalid month %q, please use YYYY-MM", month)
		}
		from = first.Format(models.DateLayout)
		to = first.AddDate(0, 1, -1).Format(models.DateLayout)
	}

	shifts, err := s.shiftRepo.GetShiftsByEmployee(ctx, employeeID, from, to)
	if err != nil {
		return nil, internalError("listing shifts by employee", err)
	}
	return shifts, nil
}
