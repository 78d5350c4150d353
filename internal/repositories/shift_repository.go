package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"shift_manager_backend/internal/models"
)

// ShiftRepository defines the database operations on shifts and their task links.
type ShiftRepository interface {
	ExistsForSlot(ctx context.Context, executor SQLExecutor, userID int64, shiftDate, shiftType string, excludeID int64) (bool, error)
	CreateShift(ctx context.Context, executor SQLExecutor, shift *models.Shift) (*models.Shift, error)
	GetShiftByID(ctx context.Context, executor SQLExecutor, id int64) (*models.Shift, error)
	UpdateShift(ctx context.Context, executor SQLExecutor, shift *models.Shift) error
	DeleteShift(ctx context.Context, executor SQLExecutor, id int64) error

	AddShiftTasks(ctx context.Context, executor SQLExecutor, shiftID int64, taskIDs []int64) error
	ClearShiftTasks(ctx context.Context, executor SQLExecutor, shiftID int64) error
	SetTaskCompletion(ctx context.Context, executor SQLExecutor, shiftID, taskID int64, completed bool) (int64, error)

	GetShiftsByDate(ctx context.Context, date string) ([]models.Shift, error)
	GetShiftsByDateRange(ctx context.Context, from, to string) ([]models.Shift, error)
	GetShiftsByEmployee(ctx context.Context, userID int64, from, to string) ([]models.Shift, error)
	GetTasksForShifts(ctx context.Context, executor SQLExecutor, shiftIDs []int64) (map[int64][]models.ShiftTask, error)
}

type shiftRepository struct {
	db *sql.DB
}

// NewShiftRepository creates a new instance of ShiftRepository.
func NewShiftRepository(db *sql.DB) ShiftRepository {
	return &shiftRepository{db: db}
}

const shiftSelect = `SELECT s.id, s.user_id, s.shift_date, s.shift_type, s.status, s.notes, s.created_at, u.name, u.avatar
                     FROM shifts s
                     JOIN users u ON u.id = s.user_id`

const shiftTypeOrder = `CASE s.shift_type WHEN 'morning' THEN 1 WHEN 'afternoon' THEN 2 WHEN 'night' THEN 3 ELSE 4 END`

func scanShiftRow(row scanner) (*models.Shift, error) {
	var s models.Shift
	var notes, avatar sql.NullString
	err := row.Scan(&s.ID, &s.UserID, &s.ShiftDate, &s.ShiftType, &s.Status, &notes, &s.CreatedAt, &s.EmployeeName, &avatar)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: scanning shift: %v", ErrDatabaseError, err)
	}
	s.Notes = nullStringPtr(notes)
	s.EmployeeAvatar = nullStringPtr(avatar)
	s.Tasks = []models.ShiftTask{}
	return &s, nil
}

// ExistsForSlot reports whether userID already holds a shift of shiftType on shiftDate.
// A shift with id excludeID is ignored, pass 0 to consider all shifts.
func (r *shiftRepository) ExistsForSlot(ctx context.Context, executor SQLExecutor, userID int64, shiftDate, shiftType string, excludeID int64) (bool, error) {
	query := `SELECT COUNT(*) FROM shifts WHERE user_id = $1 AND shift_date = $2 AND shift_type = $3 AND id <> $4`
	var count int
	if err := executor.QueryRowContext(ctx, query, userID, shiftDate, shiftType, excludeID).Scan(&count); err != nil {
		return false, fmt.Errorf("%w: checking shift slot: %v", ErrDatabaseError, err)
	}
	return count > 0, nil
}

func (r *shiftRepository) CreateShift(ctx context.Context, executor SQLExecutor, shift *models.Shift) (*models.Shift, error) {
	query := `INSERT INTO shifts (user_id, shift_date, shift_type, status, notes, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6)
	          RETURNING id`

	if shift.Status == "" {
		shift.Status = models.ShiftStatusScheduled
	}
	shift.CreatedAt = time.Now().UTC()

	err := executor.QueryRowContext(ctx, query,
		shift.UserID, shift.ShiftDate, shift.ShiftType, shift.Status, shift.Notes, shift.CreatedAt,
	).Scan(&shift.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("%w: shift for user %d on %s (%s)", ErrDuplicateKey, shift.UserID, shift.ShiftDate, shift.ShiftType)
		}
		if isForeignKeyViolation(err) {
			return nil, fmt.Errorf("%w: user %d", ErrForeignKey, shift.UserID)
		}
		return nil, fmt.Errorf("%w: creating shift: %v", ErrDatabaseError, err)
	}
	return shift, nil
}

// GetShiftByID loads a shift with its employee and tasks.
func (r *shiftRepository) GetShiftByID(ctx context.Context, executor SQLExecutor, id int64) (*models.Shift, error) {
	shift, err := scanShiftRow(executor.QueryRowContext(ctx, shiftSelect+` WHERE s.id = $1`, id))
	if err != nil {
		return nil, err
	}

	tasks, err := r.GetTasksForShifts(ctx, executor, []int64{id})
	if err != nil {
		return nil, err
	}
	if t, ok := tasks[id]; ok {
		shift.Tasks = t
	}
	return shift, nil
}

func (r *shiftRepository) UpdateShift(ctx context.Context, executor SQLExecutor, shift *models.Shift) error {
	query := `UPDATE shifts SET user_id = $1, shift_date = $2, shift_type = $3, status = $4, notes = $5 WHERE id = $6`
	result, err := executor.ExecContext(ctx, query,
		shift.UserID, shift.ShiftDate, shift.ShiftType, shift.Status, shift.Notes, shift.ID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: shift for user %d on %s (%s)", ErrDuplicateKey, shift.UserID, shift.ShiftDate, shift.ShiftType)
		}
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: user %d", ErrForeignKey, shift.UserID)
		}
		return fmt.Errorf("%w: updating shift ID %d: %v", ErrDatabaseError, shift.ID, err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteShift removes the shift and its task links.
func (r *shiftRepository) DeleteShift(ctx context.Context, executor SQLExecutor, id int64) error {
	if err := r.ClearShiftTasks(ctx, executor, id); err != nil {
		return err
	}
	result, err := executor.ExecContext(ctx, `DELETE FROM shifts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("%w: deleting shift ID %d: %v", ErrDatabaseError, id, err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// AddShiftTasks links each task to the shift as not completed.
func (r *shiftRepository) AddShiftTasks(ctx context.Context, executor SQLExecutor, shiftID int64, taskIDs []int64) error {
	query := `INSERT INTO shift_tasks (shift_id, task_id, is_completed) VALUES ($1, $2, FALSE)`
	for _, taskID := range taskIDs {
		if _, err := executor.ExecContext(ctx, query, shiftID, taskID); err != nil {
			if isForeignKeyViolation(err) {
				return fmt.Errorf("%w: task %d", ErrForeignKey, taskID)
			}
			return fmt.Errorf("%w: linking task %d to shift %d: %v", ErrDatabaseError, taskID, shiftID, err)
		}
	}
	return nil
}

func (r *shiftRepository) ClearShiftTasks(ctx context.Context, executor SQLExecutor, shiftID int64) error {
	if _, err := executor.ExecContext(ctx, `DELETE FROM shift_tasks WHERE shift_id = $1`, shiftID); err != nil {
		return fmt.Errorf("%w: clearing tasks of shift %d: %v", ErrDatabaseError, shiftID, err)
	}
	return nil
}

// SetTaskCompletion updates the link's flag and timestamp and returns the number of rows touched.
// Marking incomplete clears completed_at.
func (r *shiftRepository) SetTaskCompletion(ctx context.Context, executor SQLExecutor, shiftID, taskID int64, completed bool) (int64, error) {
	var completedAt interface{}
	if completed {
		completedAt = time.Now().UTC()
	}

	query := `UPDATE shift_tasks SET is_completed = $1, completed_at = $2 WHERE shift_id = $3 AND task_id = $4`
	result, err := executor.ExecContext(ctx, query, completed, completedAt, shiftID, taskID)
	if err != nil {
		return 0, fmt.Errorf("%w: updating completion of task %d on shift %d: %v", ErrDatabaseError, taskID, shiftID, err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: reading affected rows: %v", ErrDatabaseError, err)
	}
	return n, nil
}

func (r *shiftRepository) GetShiftsByDate(ctx context.Context, date string) ([]models.Shift, error) {
	query := shiftSelect + ` WHERE s.shift_date = $1 ORDER BY ` + shiftTypeOrder + `, s.id ASC`
	return r.queryShifts(ctx, query, date)
}

// GetShiftsByDateRange returns shifts with from <= shift_date <= to, ordered by date then shift type.
func (r *shiftRepository) GetShiftsByDateRange(ctx context.Context, from, to string) ([]models.Shift, error) {
	query := shiftSelect + ` WHERE s.shift_date >= $1 AND s.shift_date <= $2 ORDER BY s.shift_date ASC, ` + shiftTypeOrder + `, s.id ASC`
	return r.queryShifts(ctx, query, from, to)
}

// GetShiftsByEmployee returns one employee's shifts, newest date first. Empty bounds are open.
func (r *shiftRepository) GetShiftsByEmployee(ctx context.Context, userID int64, from, to string) ([]models.Shift, error) {
	query := shiftSelect + ` WHERE s.user_id = $1`
	args := []interface{}{userID}
	if from != "" {
		args = append(args, from)
		query += fmt.Sprintf(` AND s.shift_date >= $%d`, len(args))
	}
	if to != "" {
		args = append(args, to)
		query += fmt.Sprintf(` AND s.shift_date <= $%d`, len(args))
	}
	query += ` ORDER BY s.shift_date DESC, ` + shiftTypeOrder + `, s.id ASC`
	return r.queryShifts(ctx, query, args...)
}

func (r *shiftRepository) queryShifts(ctx context.Context, query string, args ...interface{}) ([]models.Shift, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: querying shifts: %v", ErrDatabaseError, err)
	}

	shifts := []models.Shift{}
	for rows.Next() {
		s, err := scanShiftRow(rows)
		if err != nil {
			rows.Close()
			return nil, err
		}
		shifts = append(shifts, *s)
	}
	if err = rows.Err(); err != nil {
		rows.Close()
		return nil, fmt.Errorf("%w: iterating shift rows: %v", ErrDatabaseError, err)
	}
	// Close before the task query: sqlite runs on a single connection.
	rows.Close()

	if len(shifts) == 0 {
		return shifts, nil
	}

	ids := make([]int64, len(shifts))
	for i := range shifts {
		ids[i] = shifts[i].ID
	}
	tasks, err := r.GetTasksForShifts(ctx, r.db, ids)
	if err != nil {
		return nil, err
	}
	for i := range shifts {
		if t, ok := tasks[shifts[i].ID]; ok {
			shifts[i].Tasks = t
		}
	}
	return shifts, nil
}

// GetTasksForShifts loads the task links of several shifts keyed by shift id, in link order.
func (r *shiftRepository) GetTasksForShifts(ctx context.Context, executor SQLExecutor, shiftIDs []int64) (map[int64][]models.ShiftTask, error) {
	result := make(map[int64][]models.ShiftTask, len(shiftIDs))
	if len(shiftIDs) == 0 {
		return result, nil
	}

	args := make([]interface{}, len(shiftIDs))
	for i, id := range shiftIDs {
		args[i] = id
	}
	query := `SELECT st.shift_id, st.task_id, t.name, t.icon, st.is_completed, st.completed_at
	          FROM shift_tasks st
	          JOIN tasks t ON t.id = st.task_id
	          WHERE st.shift_id IN (` + inClause(1, len(shiftIDs)) + `)
	          ORDER BY st.shift_id ASC, st.id ASC`

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: querying shift tasks: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	for rows.Next() {
		var st models.ShiftTask
		var completedAt sql.NullTime
		if err := rows.Scan(&st.ShiftID, &st.TaskID, &st.Name, &st.Icon, &st.IsCompleted, &completedAt); err != nil {
			return nil, fmt.Errorf("%w: scanning shift task: %v", ErrDatabaseError, err)
		}
		if completedAt.Valid {
			t := completedAt.Time
			st.CompletedAt = &t
		}
		result[st.ShiftID] = append(result[st.ShiftID], st)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating shift task rows: %v", ErrDatabaseError, err)
	}
	return result, nil
}
