package repositories

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/require"

	"shift_manager_backend/internal/config"
	"shift_manager_backend/internal/database"
	"shift_manager_backend/internal/models"
)

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := database.Open(config.DatabaseConfig{Driver: config.DriverSQLite, SQLitePath: ":memory:"})
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, database.ApplySchema(context.Background(), db, config.DriverSQLite))
	return db
}

func createEmployee(t *testing.T, db *sql.DB, code, name string) *models.Employee {
	t.Helper()
	e, err := NewEmployeeRepository(db).CreateEmployee(context.Background(), db, &models.Employee{
		EmployeeCode: code,
		PasswordHash: "hash",
		Name:         name,
		Role:         models.RoleEmployee,
	})
	require.NoError(t, err)
	return e
}

func createTask(t *testing.T, db *sql.DB, name, shiftClass string) *models.TaskType {
	t.Helper()
	task, err := NewTaskRepository(db).CreateTask(context.Background(), db, &models.TaskType{
		Name:      name,
		Icon:      "check",
		ShiftType: shiftClass,
	})
	require.NoError(t, err)
	return task
}

func createShift(t *testing.T, db *sql.DB, userID int64, date, shiftType string, taskIDs ...int64) *models.Shift {
	t.Helper()
	repo := NewShiftRepository(db)
	ctx := context.Background()
	shift, err := repo.CreateShift(ctx, db, &models.Shift{UserID: userID, ShiftDate: date, ShiftType: shiftType})
	require.NoError(t, err)
	require.NoError(t, repo.AddShiftTasks(ctx, db, shift.ID, taskIDs))
	return shift
}
