package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"shift_manager_backend/internal/models"
)

// TaskRepository defines the database operations on task types.
type TaskRepository interface {
	CreateTask(ctx context.Context, executor SQLExecutor, task *models.TaskType) (*models.TaskType, error)
	GetTaskByID(ctx context.Context, id int64) (*models.TaskType, error)
	GetActiveTasks(ctx context.Context, shiftClass *string) ([]models.TaskType, error)
	UpdateTask(ctx context.Context, executor SQLExecutor, task *models.TaskType) (*models.TaskType, error)
	DeactivateTask(ctx context.Context, executor SQLExecutor, id int64) error
	GetTaskSummary(ctx context.Context) (*models.TaskSummary, error)
	FindActiveTaskIDs(ctx context.Context, executor SQLExecutor, ids []int64) (map[int64]bool, error)
}

type taskRepository struct {
	db *sql.DB
}

// NewTaskRepository creates a new instance of TaskRepository.
func NewTaskRepository(db *sql.DB) TaskRepository {
	return &taskRepository{db: db}
}

const taskColumns = `id, name, description, icon, shift_type, is_active, created_at`

func scanTaskRow(row scanner) (*models.TaskType, error) {
	var t models.TaskType
	var description sql.NullString
	if err := row.Scan(&t.ID, &t.Name, &description, &t.Icon, &t.ShiftType, &t.IsActive, &t.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: scanning task: %v", ErrDatabaseError, err)
	}
	t.Description = nullStringPtr(description)
	return &t, nil
}

func (r *taskRepository) CreateTask(ctx context.Context, executor SQLExecutor, task *models.TaskType) (*models.TaskType, error) {
	query := `INSERT INTO tasks (name, description, icon, shift_type, is_active, created_at)
	          VALUES ($1, $2, $3, $4, TRUE, $5)
	          RETURNING id`

	task.CreatedAt = time.Now().UTC()
	task.IsActive = true
	err := executor.QueryRowContext(ctx, query,
		task.Name, task.Description, task.Icon, task.ShiftType, task.CreatedAt,
	).Scan(&task.ID)
	if err != nil {
		return nil, fmt.Errorf("%w: creating task: %v", ErrDatabaseError, err)
	}
	return task, nil
}

func (r *taskRepository) GetTaskByID(ctx context.Context, id int64) (*models.TaskType, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE id = $1`
	return scanTaskRow(r.db.QueryRowContext(ctx, query, id))
}

func (r *taskRepository) GetActiveTasks(ctx context.Context, shiftClass *string) ([]models.TaskType, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE is_active = TRUE`
	var args []interface{}
	if shiftClass != nil && *shiftClass != "" {
		query += ` AND shift_type = $1`
		args = append(args, *shiftClass)
	}
	query += ` ORDER BY shift_type ASC, name ASC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: querying tasks: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	tasks := []models.TaskType{}
	for rows.Next() {
		t, err := scanTaskRow(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, *t)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating task rows: %v", ErrDatabaseError, err)
	}
	return tasks, nil
}

func (r *taskRepository) UpdateTask(ctx context.Context, executor SQLExecutor, task *models.TaskType) (*models.TaskType, error) {
	query := `UPDATE tasks SET name = $1, description = $2, icon = $3, shift_type = $4 WHERE id = $5`
	result, err := executor.ExecContext(ctx, query, task.Name, task.Description, task.Icon, task.ShiftType, task.ID)
	if err != nil {
		return nil, fmt.Errorf("%w: updating task ID %d: %v", ErrDatabaseError, task.ID, err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return nil, ErrNotFound
	}
	return task, nil
}

// DeactivateTask clears the active flag. An absent or already inactive row is ErrNotFound.
func (r *taskRepository) DeactivateTask(ctx context.Context, executor SQLExecutor, id int64) error {
	result, err := executor.ExecContext(ctx, `UPDATE tasks SET is_active = FALSE WHERE id = $1 AND is_active = TRUE`, id)
	if err != nil {
		return fmt.Errorf("%w: deactivating task ID %d: %v", ErrDatabaseError, id, err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *taskRepository) GetTaskSummary(ctx context.Context) (*models.TaskSummary, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT shift_type, COUNT(*) FROM tasks WHERE is_active = TRUE GROUP BY shift_type`)
	if err != nil {
		return nil, fmt.Errorf("%w: summarising tasks: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	summary := &models.TaskSummary{}
	for rows.Next() {
		var shiftType string
		var count int
		if err := rows.Scan(&shiftType, &count); err != nil {
			return nil, fmt.Errorf("%w: scanning task summary: %v", ErrDatabaseError, err)
		}
		switch shiftType {
		case models.ShiftTypeMorning:
			summary.Morning = count
		case models.ShiftTypeAfternoon:
			summary.Afternoon = count
		case models.ShiftTypeNight:
			summary.Night = count
		case models.ShiftClassAll:
			summary.All = count
		}
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating task summary rows: %v", ErrDatabaseError, err)
	}
	return summary, nil
}

// FindActiveTaskIDs returns which of ids belong to active task types.
func (r *taskRepository) FindActiveTaskIDs(ctx context.Context, executor SQLExecutor, ids []int64) (map[int64]bool, error) {
	found := make(map[int64]bool, len(ids))
	if len(ids) == 0 {
		return found, nil
	}

	args := make([]interface{}, len(ids))
	for i, id := range ids {
		args[i] = id
	}
	query := `SELECT id FROM tasks WHERE is_active = TRUE AND id IN (` + inClause(1, len(ids)) + `)`

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: looking up task ids: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("%w: scanning task id: %v", ErrDatabaseError, err)
		}
		found[id] = true
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating task ids: %v", ErrDatabaseError, err)
	}
	return found, nil
}
