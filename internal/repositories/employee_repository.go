package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"shift_manager_backend/internal/models"
)

// EmployeeRepository defines the database operations on store accounts (the users table).
type EmployeeRepository interface {
	CreateEmployee(ctx context.Context, executor SQLExecutor, employee *models.Employee) (*models.Employee, error)
	GetEmployeeByID(ctx context.Context, id int64) (*models.Employee, error)
	GetEmployeeByCode(ctx context.Context, code string) (*models.Employee, error)
	GetActiveEmployees(ctx context.Context) ([]models.Employee, error)
	UpdateEmployee(ctx context.Context, executor SQLExecutor, employee *models.Employee) (*models.Employee, error)
	UpdatePasswordHash(ctx context.Context, executor SQLExecutor, id int64, hash string) error
	DeactivateEmployee(ctx context.Context, executor SQLExecutor, id int64) error
	GetShiftStatistics(ctx context.Context, id int64, sinceDate string) (*models.EmployeeStatistics, error)
}

type employeeRepository struct {
	db *sql.DB
}

// NewEmployeeRepository creates a new instance of EmployeeRepository.
func NewEmployeeRepository(db *sql.DB) EmployeeRepository {
	return &employeeRepository{db: db}
}

const employeeColumns = `id, employee_id, password_hash, name, role, phone, email, avatar, start_date, is_active, created_at, updated_at`

func scanEmployeeRow(row scanner) (*models.Employee, error) {
	var e models.Employee
	var phone, email, avatar, startDate sql.NullString

	err := row.Scan(
		&e.ID, &e.EmployeeCode, &e.PasswordHash, &e.Name, &e.Role,
		&phone, &email, &avatar, &startDate, &e.IsActive, &e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: scanning employee: %v", ErrDatabaseError, err)
	}
	e.Phone = nullStringPtr(phone)
	e.Email = nullStringPtr(email)
	e.Avatar = nullStringPtr(avatar)
	e.StartDate = nullStringPtr(startDate)
	return &e, nil
}

func (r *employeeRepository) CreateEmployee(ctx context.Context, executor SQLExecutor, employee *models.Employee) (*models.Employee, error) {
	query := `INSERT INTO users (employee_id, password_hash, name, role, phone, email, avatar, start_date, is_active, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, TRUE, $9, $9)
	          RETURNING id`

	now := time.Now().UTC()
	employee.CreatedAt = now
	employee.UpdatedAt = now
	employee.IsActive = true

	err := executor.QueryRowContext(ctx, query,
		employee.EmployeeCode, employee.PasswordHash, employee.Name, employee.Role,
		employee.Phone, employee.Email, employee.Avatar, employee.StartDate, now,
	).Scan(&employee.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("%w: employee code %q is already in use", ErrDuplicateKey, employee.EmployeeCode)
		}
		return nil, fmt.Errorf("%w: creating employee: %v", ErrDatabaseError, err)
	}
	return employee, nil
}

func (r *employeeRepository) GetEmployeeByID(ctx context.Context, id int64) (*models.Employee, error) {
	query := `SELECT ` + employeeColumns + ` FROM users WHERE id = $1`
	return scanEmployeeRow(r.db.QueryRowContext(ctx, query, id))
}

func (r *employeeRepository) GetEmployeeByCode(ctx context.Context, code string) (*models.Employee, error) {
	query := `SELECT ` + employeeColumns + ` FROM users WHERE employee_id = $1`
	return scanEmployeeRow(r.db.QueryRowContext(ctx, query, code))
}

func (r *employeeRepository) GetActiveEmployees(ctx context.Context) ([]models.Employee, error) {
	query := `SELECT ` + employeeColumns + ` FROM users WHERE is_active = TRUE ORDER BY name ASC, id ASC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%w: querying employees: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	employees := []models.Employee{}
	for rows.Next() {
		e, err := scanEmployeeRow(rows)
		if err != nil {
			return nil, err
		}
		employees = append(employees, *e)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating employee rows: %v", ErrDatabaseError, err)
	}
	return employees, nil
}

func (r *employeeRepository) UpdateEmployee(ctx context.Context, executor SQLExecutor, employee *models.Employee) (*models.Employee, error) {
	query := `UPDATE users SET
	            employee_id = $1, name = $2, role = $3, phone = $4, email = $5,
	            avatar = $6, start_date = $7, updated_at = $8
	          WHERE id = $9`

	employee.UpdatedAt = time.Now().UTC()
	result, err := executor.ExecContext(ctx, query,
		employee.EmployeeCode, employee.Name, employee.Role, employee.Phone, employee.Email,
		employee.Avatar, employee.StartDate, employee.UpdatedAt, employee.ID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("%w: employee code %q is already in use", ErrDuplicateKey, employee.EmployeeCode)
		}
		return nil, fmt.Errorf("%w: updating employee ID %d: %v", ErrDatabaseError, employee.ID, err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return nil, ErrNotFound
	}
	return employee, nil
}

func (r *employeeRepository) UpdatePasswordHash(ctx context.Context, executor SQLExecutor, id int64, hash string) error {
	query := `UPDATE users SET password_hash = $1, updated_at = $2 WHERE id = $3`
	result, err := executor.ExecContext(ctx, query, hash, time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("%w: updating password for employee ID %d: %v", ErrDatabaseError, id, err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// DeactivateEmployee clears the active flag. An absent or already inactive row is ErrNotFound.
func (r *employeeRepository) DeactivateEmployee(ctx context.Context, executor SQLExecutor, id int64) error {
	query := `UPDATE users SET is_active = FALSE, updated_at = $1 WHERE id = $2 AND is_active = TRUE`
	result, err := executor.ExecContext(ctx, query, time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("%w: deactivating employee ID %d: %v", ErrDatabaseError, id, err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *employeeRepository) GetShiftStatistics(ctx context.Context, id int64, sinceDate string) (*models.EmployeeStatistics, error) {
	query := `SELECT
	            COUNT(*),
	            COALESCE(SUM(CASE WHEN shift_type = 'morning' THEN 1 ELSE 0 END), 0),
	            COALESCE(SUM(CASE WHEN shift_type = 'afternoon' THEN 1 ELSE 0 END), 0),
	            COALESCE(SUM(CASE WHEN shift_type = 'night' THEN 1 ELSE 0 END), 0)
	          FROM shifts
	          WHERE user_id = $1 AND shift_date >= $2`

	var stats models.EmployeeStatistics
	err := r.db.QueryRowContext(ctx, query, id, sinceDate).Scan(
		&stats.TotalShifts, &stats.MorningShifts, &stats.AfternoonShifts, &stats.NightShifts,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: computing shift statistics for employee ID %d: %v", ErrDatabaseError, id, err)
	}
	return &stats, nil
}
