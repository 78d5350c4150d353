package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shift_manager_backend/internal/models"
)

func TestTaskService_CreateDefaults(t *testing.T) {
	store := newTestStore(t)
	svc := NewTaskService(store.tasks, store.db)

	task, err := svc.CreateTask(context.Background(), CreateTaskRequest{Name: " Restock shelves "})
	require.NoError(t, err)
	assert.Positive(t, task.ID)
	assert.Equal(t, "Restock shelves", task.Name)
	assert.Equal(t, "check", task.Icon)
	assert.Equal(t, models.ShiftClassAll, task.ShiftType)

	_, err = svc.CreateTask(context.Background(), CreateTaskRequest{Name: "Count till", Shift: "evening"})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestTaskService_ListAndSummary(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	svc := NewTaskService(store.tasks, store.db)

	for _, req := range []CreateTaskRequest{
		{Name: "Open store", Shift: models.ShiftTypeMorning},
		{Name: "Receive delivery", Shift: models.ShiftTypeMorning},
		{Name: "Close store", Shift: models.ShiftTypeNight},
		{Name: "Clean floor"},
	} {
		_, err := svc.CreateTask(ctx, req)
		require.NoError(t, err)
	}

	morning, err := svc.ListTasks(ctx, models.ShiftTypeMorning)
	require.NoError(t, err)
	assert.Len(t, morning, 2)

	all, err := svc.ListTasks(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 4)

	_, err = svc.ListTasks(ctx, "weekend")
	assert.ErrorIs(t, err, ErrValidation)

	summary, err := svc.GetTaskSummary(ctx)
	require.NoError(t, err)
	assert.Equal(t, models.TaskSummary{Morning: 2, Night: 1, All: 1}, *summary)
}

func TestTaskService_UpdateAndSoftDelete(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	svc := NewTaskService(store.tasks, store.db)

	task, err := svc.CreateTask(ctx, CreateTaskRequest{Name: "Open store", Shift: models.ShiftTypeMorning, Icon: "key"})
	require.NoError(t, err)

	updated, err := svc.UpdateTask(ctx, task.ID, UpdateTaskRequest{Name: strPtr("Open doors"), Icon: strPtr("")})
	require.NoError(t, err)
	assert.Equal(t, "Open doors", updated.Name)
	assert.Equal(t, "check", updated.Icon)
	assert.Equal(t, models.ShiftTypeMorning, updated.ShiftType)

	_, err = svc.UpdateTask(ctx, task.ID, UpdateTaskRequest{Name: strPtr(" ")})
	assert.ErrorIs(t, err, ErrValidation)

	require.NoError(t, svc.SoftDeleteTask(ctx, task.ID))
	list, err := svc.ListTasks(ctx, "")
	require.NoError(t, err)
	assert.Empty(t, list)

	assert.ErrorIs(t, svc.SoftDeleteTask(ctx, task.ID), ErrTaskNotFound)
	_, err = svc.GetTask(ctx, 404)
	assert.ErrorIs(t, err, ErrTaskNotFound)
}

func TestTaskService_DeactivatedTaskCannotBeAssigned(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	tasks := NewTaskService(store.tasks, store.db)
	emp := store.addEmployee(t, "emp001", "Anna")

	task, err := tasks.CreateTask(ctx, CreateTaskRequest{Name: "Open store"})
	require.NoError(t, err)
	require.NoError(t, tasks.SoftDeleteTask(ctx, task.ID))

	_, err = store.shiftService().AssignShift(ctx, AssignShiftRequest{
		UserID: emp.ID, ShiftDate: "2025-06-01", ShiftType: models.ShiftTypeMorning, Tasks: []int64{task.ID},
	})
	assert.ErrorIs(t, err, ErrTaskNotFound)
}
