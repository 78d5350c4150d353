package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shift_manager_backend/internal/models"
)

func TestAssignShift_EndToEnd(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	svc := store.shiftService()

	store.addEmployee(t, "emp001", "Anna")
	store.addEmployee(t, "emp002", "Ben")
	emp := store.addEmployee(t, "emp003", "Chai")
	require.EqualValues(t, 3, emp.ID)
	taskIDs := store.addTasks(t, 7)
	require.Equal(t, []int64{1, 2, 3, 4, 5, 6, 7}, taskIDs)

	id, err := svc.AssignShift(ctx, AssignShiftRequest{
		UserID: 3, ShiftDate: "2025-06-01", ShiftType: models.ShiftTypeMorning, Tasks: []int64{1, 3, 7},
	})
	require.NoError(t, err)
	assert.Positive(t, id)

	grouped, err := svc.ListShiftsByDate(ctx, "2025-06-01")
	require.NoError(t, err)
	require.Len(t, grouped.Morning, 1)
	assert.Empty(t, grouped.Afternoon)
	assert.Empty(t, grouped.Night)

	shift := grouped.Morning[0]
	assert.Equal(t, "Chai", shift.EmployeeName)
	assert.Equal(t, models.ShiftStatusScheduled, shift.Status)
	require.Len(t, shift.Tasks, 3)
	for _, task := range shift.Tasks {
		assert.False(t, task.IsCompleted)
	}
	assert.Equal(t, []int64{1, 3, 7}, []int64{shift.Tasks[0].TaskID, shift.Tasks[1].TaskID, shift.Tasks[2].TaskID})

	assert.Equal(t, 1, store.count(t, `SELECT COUNT(*) FROM activity_log WHERE action_type = $1`, models.ActivityShiftCreated))
}

func TestAssignShift_Duplicate(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	svc := store.shiftService()
	emp := store.addEmployee(t, "emp001", "Anna")
	tasks := store.addTasks(t, 2)

	req := AssignShiftRequest{UserID: emp.ID, ShiftDate: "2025-06-01", ShiftType: models.ShiftTypeNight, Tasks: tasks}
	_, err := svc.AssignShift(ctx, req)
	require.NoError(t, err)

	_, err = svc.AssignShift(ctx, req)
	assert.ErrorIs(t, err, ErrDuplicateShift)

	assert.Equal(t, 1, store.count(t, `SELECT COUNT(*) FROM shifts WHERE user_id = $1 AND shift_date = $2 AND shift_type = $3`, emp.ID, "2025-06-01", models.ShiftTypeNight))
	assert.Equal(t, 2, store.count(t, `SELECT COUNT(*) FROM shift_tasks`))
	assert.Equal(t, 1, store.count(t, `SELECT COUNT(*) FROM activity_log`))
}

func TestAssignShift_Validation(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	svc := store.shiftService()
	emp := store.addEmployee(t, "emp001", "Anna")

	cases := map[string]AssignShiftRequest{
		"bad date":       {UserID: emp.ID, ShiftDate: "01/06/2025", ShiftType: models.ShiftTypeMorning},
		"bad type":       {UserID: emp.ID, ShiftDate: "2025-06-01", ShiftType: "evening"},
		"bad task id":    {UserID: emp.ID, ShiftDate: "2025-06-01", ShiftType: models.ShiftTypeMorning, Tasks: []int64{0}},
		"missing user":   {ShiftDate: "2025-06-01", ShiftType: models.ShiftTypeMorning},
		"impossible day": {UserID: emp.ID, ShiftDate: "2025-02-30", ShiftType: models.ShiftTypeMorning},
	}
	for name, req := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := svc.AssignShift(ctx, req)
			assert.ErrorIs(t, err, ErrValidation)
		})
	}
	assert.Zero(t, store.count(t, `SELECT COUNT(*) FROM shifts`))
}

func TestAssignShift_UnknownOrInactiveEmployee(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	svc := store.shiftService()

	_, err := svc.AssignShift(ctx, AssignShiftRequest{UserID: 42, ShiftDate: "2025-06-01", ShiftType: models.ShiftTypeMorning})
	assert.ErrorIs(t, err, ErrEmployeeNotFound)
	assert.ErrorIs(t, err, ErrNotFound)

	emp := store.addEmployee(t, "emp001", "Anna")
	require.NoError(t, store.employees.DeactivateEmployee(ctx, store.db, emp.ID))
	_, err = svc.AssignShift(ctx, AssignShiftRequest{UserID: emp.ID, ShiftDate: "2025-06-01", ShiftType: models.ShiftTypeMorning})
	assert.ErrorIs(t, err, ErrEmployeeNotFound)
}

func TestAssignShift_UnknownTaskRollsBack(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	svc := store.shiftService()
	emp := store.addEmployee(t, "emp001", "Anna")
	tasks := store.addTasks(t, 1)

	_, err := svc.AssignShift(ctx, AssignShiftRequest{
		UserID: emp.ID, ShiftDate: "2025-06-01", ShiftType: models.ShiftTypeMorning, Tasks: []int64{tasks[0], 99},
	})
	assert.ErrorIs(t, err, ErrTaskNotFound)
	assert.Zero(t, store.count(t, `SELECT COUNT(*) FROM shifts`))
	assert.Zero(t, store.count(t, `SELECT COUNT(*) FROM shift_tasks`))
}

func TestAssignShift_CollapsesDuplicateTaskIDs(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	svc := store.shiftService()
	emp := store.addEmployee(t, "emp001", "Anna")
	tasks := store.addTasks(t, 2)

	id, err := svc.AssignShift(ctx, AssignShiftRequest{
		UserID: emp.ID, ShiftDate: "2025-06-01", ShiftType: models.ShiftTypeMorning,
		Tasks: []int64{tasks[1], tasks[0], tasks[1]},
	})
	require.NoError(t, err)

	shift, err := svc.GetShiftByID(ctx, id)
	require.NoError(t, err)
	require.Len(t, shift.Tasks, 2)
	assert.Equal(t, tasks[1], shift.Tasks[0].TaskID)
}

func TestUpdateShift_EmptyTaskListClearsTasks(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	svc := store.shiftService()
	emp := store.addEmployee(t, "emp001", "Anna")
	tasks := store.addTasks(t, 3)

	id, err := svc.AssignShift(ctx, AssignShiftRequest{UserID: emp.ID, ShiftDate: "2025-06-01", ShiftType: models.ShiftTypeMorning, Tasks: tasks})
	require.NoError(t, err)

	empty := []int64{}
	require.NoError(t, svc.UpdateShift(ctx, id, UpdateShiftRequest{Tasks: &empty}))

	shift, err := svc.GetShiftByID(ctx, id)
	require.NoError(t, err)
	assert.Empty(t, shift.Tasks)
}

func TestUpdateShift_OmittedFieldsUnchanged(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	svc := store.shiftService()
	emp := store.addEmployee(t, "emp001", "Anna")
	tasks := store.addTasks(t, 2)

	id, err := svc.AssignShift(ctx, AssignShiftRequest{
		UserID: emp.ID, ShiftDate: "2025-06-01", ShiftType: models.ShiftTypeMorning, Tasks: tasks, Notes: strPtr("bring keys"),
	})
	require.NoError(t, err)
	require.NoError(t, svc.SetTaskCompletion(ctx, id, tasks[0], true))

	require.NoError(t, svc.UpdateShift(ctx, id, UpdateShiftRequest{ShiftType: strPtr(models.ShiftTypeAfternoon)}))

	shift, err := svc.GetShiftByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, models.ShiftTypeAfternoon, shift.ShiftType)
	require.NotNil(t, shift.Notes)
	assert.Equal(t, "bring keys", *shift.Notes)
	require.Len(t, shift.Tasks, 2)
	assert.True(t, shift.Tasks[0].IsCompleted)
}

func TestUpdateShift_ReplacingTasksResetsCompletion(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	svc := store.shiftService()
	emp := store.addEmployee(t, "emp001", "Anna")
	tasks := store.addTasks(t, 2)

	id, err := svc.AssignShift(ctx, AssignShiftRequest{UserID: emp.ID, ShiftDate: "2025-06-01", ShiftType: models.ShiftTypeMorning, Tasks: tasks})
	require.NoError(t, err)
	require.NoError(t, svc.SetTaskCompletion(ctx, id, tasks[0], true))

	require.NoError(t, svc.UpdateShift(ctx, id, UpdateShiftRequest{Tasks: &tasks}))

	shift, err := svc.GetShiftByID(ctx, id)
	require.NoError(t, err)
	require.Len(t, shift.Tasks, 2)
	for _, task := range shift.Tasks {
		assert.False(t, task.IsCompleted)
		assert.Nil(t, task.CompletedAt)
	}
}

func TestUpdateShift_TypeChangeIntoTakenSlot(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	svc := store.shiftService()
	emp := store.addEmployee(t, "emp001", "Anna")

	_, err := svc.AssignShift(ctx, AssignShiftRequest{UserID: emp.ID, ShiftDate: "2025-06-01", ShiftType: models.ShiftTypeMorning})
	require.NoError(t, err)
	night, err := svc.AssignShift(ctx, AssignShiftRequest{UserID: emp.ID, ShiftDate: "2025-06-01", ShiftType: models.ShiftTypeNight})
	require.NoError(t, err)

	err = svc.UpdateShift(ctx, night, UpdateShiftRequest{ShiftType: strPtr(models.ShiftTypeMorning)})
	assert.ErrorIs(t, err, ErrDuplicateShift)
}

func TestUpdateShift_StatusTransitions(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	svc := store.shiftService()
	emp := store.addEmployee(t, "emp001", "Anna")

	id, err := svc.AssignShift(ctx, AssignShiftRequest{UserID: emp.ID, ShiftDate: "2025-06-01", ShiftType: models.ShiftTypeMorning})
	require.NoError(t, err)

	require.NoError(t, svc.UpdateShift(ctx, id, UpdateShiftRequest{Status: strPtr(models.ShiftStatusScheduled)}))
	require.NoError(t, svc.UpdateShift(ctx, id, UpdateShiftRequest{Status: strPtr(models.ShiftStatusCompleted)}))
	require.NoError(t, svc.UpdateShift(ctx, id, UpdateShiftRequest{Status: strPtr(models.ShiftStatusCompleted)}))

	err = svc.UpdateShift(ctx, id, UpdateShiftRequest{Status: strPtr(models.ShiftStatusScheduled)})
	assert.ErrorIs(t, err, ErrInvalidStatusTransition)
	assert.ErrorIs(t, err, ErrConflict)

	err = svc.UpdateShift(ctx, id, UpdateShiftRequest{Status: strPtr("paused")})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestUpdateShift_NotFound(t *testing.T) {
	store := newTestStore(t)
	err := store.shiftService().UpdateShift(context.Background(), 5, UpdateShiftRequest{Notes: strPtr("x")})
	assert.ErrorIs(t, err, ErrShiftNotFound)
}

func TestDeleteShift_ThenCompletionIsNoop(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	svc := store.shiftService()
	emp := store.addEmployee(t, "emp001", "Anna")
	tasks := store.addTasks(t, 2)

	id, err := svc.AssignShift(ctx, AssignShiftRequest{UserID: emp.ID, ShiftDate: "2025-06-01", ShiftType: models.ShiftTypeMorning, Tasks: tasks})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteShift(ctx, id))
	assert.Zero(t, store.count(t, `SELECT COUNT(*) FROM shift_tasks WHERE shift_id = $1`, id))
	assert.Equal(t, 1, store.count(t, `SELECT COUNT(*) FROM activity_log WHERE action_type = $1`, models.ActivityShiftDeleted))

	assert.NoError(t, svc.SetTaskCompletion(ctx, id, tasks[0], true))
	assert.Zero(t, store.count(t, `SELECT COUNT(*) FROM shift_tasks`))

	assert.ErrorIs(t, svc.DeleteShift(ctx, id), ErrShiftNotFound)
}

func TestSetTaskCompletion_TimestampLifecycle(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	svc := store.shiftService()
	emp := store.addEmployee(t, "emp001", "Anna")
	tasks := store.addTasks(t, 1)

	id, err := svc.AssignShift(ctx, AssignShiftRequest{UserID: emp.ID, ShiftDate: "2025-06-01", ShiftType: models.ShiftTypeMorning, Tasks: tasks})
	require.NoError(t, err)

	require.NoError(t, svc.SetTaskCompletion(ctx, id, tasks[0], true))
	shift, err := svc.GetShiftByID(ctx, id)
	require.NoError(t, err)
	assert.True(t, shift.Tasks[0].IsCompleted)
	require.NotNil(t, shift.Tasks[0].CompletedAt)

	require.NoError(t, svc.SetTaskCompletion(ctx, id, tasks[0], false))
	shift, err = svc.GetShiftByID(ctx, id)
	require.NoError(t, err)
	assert.False(t, shift.Tasks[0].IsCompleted)
	assert.Nil(t, shift.Tasks[0].CompletedAt)
}

func TestSoftDeletedEmployeeShiftsStillListable(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	svc := store.shiftService()
	emp := store.addEmployee(t, "emp001", "Anna")
	store.addEmployee(t, "emp002", "Ben")

	_, err := svc.AssignShift(ctx, AssignShiftRequest{UserID: emp.ID, ShiftDate: "2025-06-01", ShiftType: models.ShiftTypeMorning})
	require.NoError(t, err)

	_, err = store.employeeService(fixedNow).SoftDeleteEmployee(ctx, emp.ID)
	require.NoError(t, err)

	active, err := store.employeeService(fixedNow).ListEmployees(ctx)
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, "Ben", active[0].Name)

	grouped, err := svc.ListShiftsByDate(ctx, "2025-06-01")
	require.NoError(t, err)
	require.Len(t, grouped.Morning, 1)
	assert.Equal(t, "Anna", grouped.Morning[0].EmployeeName)

	byEmployee, err := svc.ListShiftsByEmployee(ctx, emp.ID, "")
	require.NoError(t, err)
	assert.Len(t, byEmployee, 1)
}

func TestListShiftsByEmployee_MonthFilter(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	svc := store.shiftService()
	emp := store.addEmployee(t, "emp001", "Anna")

	for _, date := range []string{"2025-05-31", "2025-06-01", "2025-06-30", "2025-07-01"} {
		_, err := svc.AssignShift(ctx, AssignShiftRequest{UserID: emp.ID, ShiftDate: date, ShiftType: models.ShiftTypeMorning})
		require.NoError(t, err)
	}

	june, err := svc.ListShiftsByEmployee(ctx, emp.ID, "2025-06")
	require.NoError(t, err)
	require.Len(t, june, 2)
	assert.Equal(t, "2025-06-30", june[0].ShiftDate)
	assert.Equal(t, "2025-06-01", june[1].ShiftDate)

	_, err = svc.ListShiftsByEmployee(ctx, emp.ID, "June")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestListShiftsByWeek(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	svc := store.shiftService()
	emp := store.addEmployee(t, "emp001", "Anna")

	for _, date := range []string{"2025-06-01", "2025-06-07", "2025-06-08"} {
		_, err := svc.AssignShift(ctx, AssignShiftRequest{UserID: emp.ID, ShiftDate: date, ShiftType: models.ShiftTypeNight})
		require.NoError(t, err)
	}

	week, err := svc.ListShiftsByWeek(ctx, "2025-06-01")
	require.NoError(t, err)
	require.Len(t, week, 2)
	assert.Equal(t, "2025-06-07", week[1].ShiftDate)
}
