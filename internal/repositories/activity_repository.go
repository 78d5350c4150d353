package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"shift_manager_backend/internal/models"
)

// ActivityRepository appends to and reads the activity log.
type ActivityRepository interface {
	AppendActivity(ctx context.Context, executor SQLExecutor, record *models.ActivityRecord) error
	GetRecentActivity(ctx context.Context, limit int) ([]models.ActivityRecord, error)
}

type activityRepository struct {
	db *sql.DB
}

// NewActivityRepository creates a new instance of ActivityRepository.
func NewActivityRepository(db *sql.DB) ActivityRepository {
	return &activityRepository{db: db}
}

func (r *activityRepository) AppendActivity(ctx context.Context, executor SQLExecutor, record *models.ActivityRecord) error {
	query := `INSERT INTO activity_log (user_id, action_type, description, created_at)
	          VALUES ($1, $2, $3, $4)
	          RETURNING id`

	record.CreatedAt = time.Now().UTC()
	err := executor.QueryRowContext(ctx, query, record.UserID, record.ActionType, record.Description, record.CreatedAt).Scan(&record.ID)
	if err != nil {
		return fmt.Errorf("%w: appending %s activity: %v", ErrDatabaseError, record.ActionType, err)
	}
	return nil
}

// GetRecentActivity returns the newest limit entries, joined with the actor's name when known.
func (r *activityRepository) GetRecentActivity(ctx context.Context, limit int) ([]models.ActivityRecord, error) {
	query := `SELECT a.id, a.user_id, a.action_type, a.description, a.created_at, u.name
	          FROM activity_log a
	          LEFT JOIN users u ON u.id = a.user_id
	          ORDER BY a.created_at DESC, a.id DESC
	          LIMIT $1`

	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("%w: querying activity: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	records := []models.ActivityRecord{}
	for rows.Next() {
		var rec models.ActivityRecord
		var userID sql.NullInt64
		var description, name sql.NullString
		if err := rows.Scan(&rec.ID, &userID, &rec.ActionType, &description, &rec.CreatedAt, &name); err != nil {
			return nil, fmt.Errorf("%w: scanning activity: %v", ErrDatabaseError, err)
		}
		if userID.Valid {
			id := userID.Int64
			rec.UserID = &id
		}
		rec.Description = nullStringPtr(description)
		rec.EmployeeName = nullStringPtr(name)
		records = append(records, rec)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating activity rows: %v", ErrDatabaseError, err)
	}
	return records, nil
}
