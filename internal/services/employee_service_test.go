package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"shift_manager_backend/internal/models"
)

var fixedNow = time.Date(2025, 6, 10, 9, 0, 0, 0, time.UTC)

func TestCreateEmployee(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	svc := store.employeeService(fixedNow)

	emp, err := svc.CreateEmployee(ctx, CreateEmployeeRequest{
		EmployeeID: " emp010 ",
		Password:   "secret",
		Name:       "dana lee",
		Email:      strPtr("dana@example.com"),
		Phone:      strPtr("  "),
	})
	require.NoError(t, err)
	assert.Positive(t, emp.ID)
	assert.Equal(t, "emp010", emp.EmployeeCode)
	assert.Equal(t, models.RoleEmployee, emp.Role)
	require.NotNil(t, emp.Avatar)
	assert.Equal(t, "D", *emp.Avatar)
	assert.Nil(t, emp.Phone)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(emp.PasswordHash), []byte("secret")))

	assert.Equal(t, 1, store.count(t, `SELECT COUNT(*) FROM activity_log WHERE action_type = $1`, models.ActivityEmployeeCreated))
}

func TestCreateEmployee_DuplicateCode(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	svc := store.employeeService(fixedNow)

	req := CreateEmployeeRequest{EmployeeID: "emp010", Password: "secret", Name: "Dana"}
	_, err := svc.CreateEmployee(ctx, req)
	require.NoError(t, err)

	_, err = svc.CreateEmployee(ctx, req)
	assert.ErrorIs(t, err, ErrEmployeeCodeExists)
	assert.ErrorIs(t, err, ErrConflict)
	assert.Equal(t, 1, store.count(t, `SELECT COUNT(*) FROM activity_log`))
}

func TestCreateEmployee_Validation(t *testing.T) {
	store := newTestStore(t)
	svc := store.employeeService(fixedNow)

	cases := map[string]CreateEmployeeRequest{
		"short password": {EmployeeID: "e1", Password: "abc", Name: "A"},
		"bad role":       {EmployeeID: "e1", Password: "secret", Name: "A", Role: "owner"},
		"bad email":      {EmployeeID: "e1", Password: "secret", Name: "A", Email: strPtr("not-an-email")},
		"bad start date": {EmployeeID: "e1", Password: "secret", Name: "A", StartDate: strPtr("10.06.2025")},
		"blank name":     {EmployeeID: "e1", Password: "secret", Name: "  "},
	}
	for name, req := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := svc.CreateEmployee(context.Background(), req)
			assert.ErrorIs(t, err, ErrValidation)
		})
	}
}

func TestGetEmployee_Statistics(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	emp := store.addEmployee(t, "emp001", "Anna")
	shifts := store.shiftService()

	for _, s := range []struct{ date, kind string }{
		{"2025-06-01", models.ShiftTypeMorning},
		{"2025-06-02", models.ShiftTypeMorning},
		{"2025-06-03", models.ShiftTypeNight},
		{"2025-04-01", models.ShiftTypeAfternoon},
	} {
		_, err := shifts.AssignShift(ctx, AssignShiftRequest{UserID: emp.ID, ShiftDate: s.date, ShiftType: s.kind})
		require.NoError(t, err)
	}

	detail, err := store.employeeService(fixedNow).GetEmployee(ctx, emp.ID)
	require.NoError(t, err)
	assert.Equal(t, "Anna", detail.Name)
	assert.Equal(t, models.EmployeeStatistics{TotalShifts: 3, MorningShifts: 2, NightShifts: 1}, detail.Statistics)
}

func TestGetEmployee_Inactive(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	svc := store.employeeService(fixedNow)
	emp := store.addEmployee(t, "emp001", "Anna")

	removed, err := svc.SoftDeleteEmployee(ctx, emp.ID)
	require.NoError(t, err)
	assert.False(t, removed.IsActive)

	_, err = svc.GetEmployee(ctx, emp.ID)
	assert.ErrorIs(t, err, ErrEmployeeNotFound)

	_, err = svc.SoftDeleteEmployee(ctx, emp.ID)
	assert.ErrorIs(t, err, ErrEmployeeNotFound)
	assert.Equal(t, 1, store.count(t, `SELECT COUNT(*) FROM activity_log WHERE action_type = $1`, models.ActivityEmployeeRemoved))
}

func TestUpdateEmployee(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	svc := store.employeeService(fixedNow)
	emp := store.addEmployee(t, "emp001", "Anna")
	store.addEmployee(t, "emp002", "Ben")

	updated, err := svc.UpdateEmployee(ctx, emp.ID, UpdateEmployeeRequest{
		Name:     strPtr("Zoe"),
		Password: strPtr("newpass"),
		Phone:    strPtr("555-0101"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Zoe", updated.Name)
	require.NotNil(t, updated.Avatar)
	assert.Equal(t, "Z", *updated.Avatar)

	reloaded, err := store.employees.GetEmployeeByID(ctx, emp.ID)
	require.NoError(t, err)
	assert.Equal(t, "emp001", reloaded.EmployeeCode)
	require.NotNil(t, reloaded.Phone)
	assert.Equal(t, "555-0101", *reloaded.Phone)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(reloaded.PasswordHash), []byte("newpass")))

	_, err = svc.UpdateEmployee(ctx, emp.ID, UpdateEmployeeRequest{EmployeeID: strPtr("emp002")})
	assert.ErrorIs(t, err, ErrEmployeeCodeExists)

	_, err = svc.UpdateEmployee(ctx, 999, UpdateEmployeeRequest{Name: strPtr("X")})
	assert.ErrorIs(t, err, ErrEmployeeNotFound)
}
