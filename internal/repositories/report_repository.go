package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"shift_manager_backend/internal/models"
)

// ReportRepository runs the aggregate queries behind the reports page.
type ReportRepository interface {
	GetEmployeePerformance(ctx context.Context, from, to string) ([]models.EmployeePerformance, error)
}

type reportRepository struct {
	db *sql.DB
}

// NewReportRepository creates a new instance of ReportRepository.
func NewReportRepository(db *sql.DB) ReportRepository {
	return &reportRepository{db: db}
}

// GetEmployeePerformance counts, for every active employee, the non-cancelled shifts dated
// within [from, to] and the tasks assigned to and completed on them.
// Only raw counts are filled in; hours, rates and scores are derived by the caller.
func (r *reportRepository) GetEmployeePerformance(ctx context.Context, from, to string) ([]models.EmployeePerformance, error) {
	query := `SELECT u.id, u.name, u.avatar,
	            COUNT(DISTINCT s.id),
	            COUNT(st.id),
	            COALESCE(SUM(CASE WHEN st.is_completed THEN 1 ELSE 0 END), 0)
	          FROM users u
	          LEFT JOIN shifts s ON s.user_id = u.id
	            AND s.shift_date >= $1 AND s.shift_date <= $2
	            AND s.status <> 'cancelled'
	          LEFT JOIN shift_tasks st ON st.shift_id = s.id
	          WHERE u.is_active = TRUE AND u.role = 'employee'
	          GROUP BY u.id, u.name, u.avatar
	          ORDER BY u.name ASC, u.id ASC`

	rows, err := r.db.QueryContext(ctx, query, from, to)
	if err != nil {
		return nil, fmt.Errorf("%w: querying performance: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	result := []models.EmployeePerformance{}
	for rows.Next() {
		var p models.EmployeePerformance
		var avatar sql.NullString
		if err := rows.Scan(&p.EmployeeID, &p.Name, &avatar, &p.Shifts, &p.TasksAssigned, &p.TasksCompleted); err != nil {
			return nil, fmt.Errorf("%w: scanning performance row: %v", ErrDatabaseError, err)
		}
		p.Avatar = nullStringPtr(avatar)
		result = append(result, p)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating performance rows: %v", ErrDatabaseError, err)
	}
	return result, nil
}
