package services

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"shift_manager_backend/internal/config"
	"shift_manager_backend/internal/database"
	"shift_manager_backend/internal/models"
	"shift_manager_backend/internal/repositories"
)

type testStore struct {
	db        *sql.DB
	employees repositories.EmployeeRepository
	tasks     repositories.TaskRepository
	shifts    repositories.ShiftRepository
	activity  repositories.ActivityRepository
	reports   repositories.ReportRepository
}

func newTestStore(t *testing.T) *testStore {
	t.Helper()
	db, err := database.Open(config.DatabaseConfig{Driver: config.DriverSQLite, SQLitePath: ":memory:"})
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, database.ApplySchema(context.Background(), db, config.DriverSQLite))

	return &testStore{
		db:        db,
		employees: repositories.NewEmployeeRepository(db),
		tasks:     repositories.NewTaskRepository(db),
		shifts:    repositories.NewShiftRepository(db),
		activity:  repositories.NewActivityRepository(db),
		reports:   repositories.NewReportRepository(db),
	}
}

func (s *testStore) shiftService() ShiftService {
	return NewShiftService(s.shifts, s.employees, s.tasks, s.activity, s.db)
}

func (s *testStore) employeeService(now time.Time) *employeeService {
	svc := NewEmployeeService(s.employees, s.activity, s.db).(*employeeService)
	svc.hashCost = bcrypt.MinCost
	svc.now = func() time.Time { return now }
	return svc
}

func (s *testStore) addEmployee(t *testing.T, code, name string) *models.Employee {
	t.Helper()
	e, err := s.employees.CreateEmployee(context.Background(), s.db, &models.Employee{
		EmployeeCode: code,
		PasswordHash: "hash",
		Name:         name,
		Role:         models.RoleEmployee,
	})
	require.NoError(t, err)
	return e
}

// addTasks creates n active task types and returns their ids in creation order.
func (s *testStore) addTasks(t *testing.T, n int) []int64 {
	t.Helper()
	ids := make([]int64, 0, n)
	for i := 0; i < n; i++ {
		task, err := s.tasks.CreateTask(context.Background(), s.db, &models.TaskType{
			Name:      "Task " + string(rune('A'+i)),
			Icon:      "check",
			ShiftType: models.ShiftClassAll,
		})
		require.NoError(t, err)
		ids = append(ids, task.ID)
	}
	return ids
}

func (s *testStore) count(t *testing.T, query string, args ...interface{}) int {
	t.Helper()
	var n int
	require.NoError(t, s.db.QueryRowContext(context.Background(), query, args...).Scan(&n))
	return n
}

func strPtr(s string) *string { return &s }
