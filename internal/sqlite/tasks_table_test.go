package sqlite

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/taskdesk/pkg/types"
)

func ptr[T any](v T) *T { return &v }

func testTasks(t *testing.T) types.TaskStore {
	t.Helper()
	tasks, err := attachTestBackend(t, true).Tasks()
	require.NoError(t, err)
	return tasks
}

func TestTasksTable_Create(t *testing.T) {
	tasks := testTasks(t)
	ctx := context.Background()

	before := time.Now().UTC()
	task, err := tasks.Create(ctx, types.TaskInput{
		Title:       "  Quarterly report ",
		Description: "Send to the director",
		Category:    types.CategoryWork,
		Priority:    types.PriorityHigh,
	})
	require.NoError(t, err)

	assert.NotEmpty(t, task.ID)
	assert.Equal(t, "Quarterly report", task.Title)
	assert.Equal(t, types.CategoryWork, task.Category)
	assert.Equal(t, types.PriorityHigh, task.Priority)
	assert.False(t, task.Completed)
	assert.False(t, task.CreatedAt.Before(before))
	assert.Equal(t, task.CreatedAt, task.UpdatedAt)

	list, err := tasks.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, task.ID, list[0].ID)
	assert.True(t, task.CreatedAt.Equal(list[0].CreatedAt))
}

func TestTasksTable_CreateValidation(t *testing.T) {
	tasks := testTasks(t)

	_, err := tasks.Create(context.Background(), types.TaskInput{Title: "ab", Category: types.CategoryWork})
	var ve *types.ValidationError
	assert.True(t, errors.As(err, &ve))

	list, err := tasks.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestTasksTable_ListNewestFirst(t *testing.T) {
	tasks := testTasks(t)
	ctx := context.Background()

	var ids []string
	for _, title := range []string{"first", "second", "third"} {
		task, err := tasks.Create(ctx, types.TaskInput{Title: title, Category: types.CategoryPersonal})
		require.NoError(t, err)
		ids = append(ids, task.ID)
	}

	list, err := tasks.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, []string{ids[2], ids[1], ids[0]}, []string{list[0].ID, list[1].ID, list[2].ID})
}

func TestTasksTable_Update(t *testing.T) {
	tasks := testTasks(t)
	ctx := context.Background()

	task, err := tasks.Create(ctx, types.TaskInput{Title: "Call bank", Category: types.CategoryPersonal})
	require.NoError(t, err)

	updated, err := tasks.Update(ctx, task.ID, types.TaskPatch{
		Title:    ptr("Call the bank"),
		Priority: ptr(types.PriorityMedium),
	})
	require.NoError(t, err)

	assert.Equal(t, task.ID, updated.ID)
	assert.Equal(t, "Call the bank", updated.Title)
	assert.Equal(t, types.PriorityMedium, updated.Priority)
	assert.Equal(t, types.CategoryPersonal, updated.Category)
	assert.True(t, updated.CreatedAt.Equal(task.CreatedAt))
	assert.True(t, updated.UpdatedAt.After(task.UpdatedAt), "updated_at must strictly increase")

	again, err := tasks.Update(ctx, task.ID, types.TaskPatch{Description: ptr("fees")})
	require.NoError(t, err)
	assert.True(t, again.UpdatedAt.After(updated.UpdatedAt))
}

func TestTasksTable_UpdateRejectsInvalidPatch(t *testing.T) {
	tasks := testTasks(t)
	ctx := context.Background()

	task, err := tasks.Create(ctx, types.TaskInput{Title: "Call bank", Category: types.CategoryPersonal})
	require.NoError(t, err)

	_, err = tasks.Update(ctx, task.ID, types.TaskPatch{Title: ptr("x"), Priority: ptr(types.PriorityHigh)})
	require.Error(t, err)

	list, err := tasks.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Call bank", list[0].Title)
	assert.Equal(t, types.PriorityUnset, list[0].Priority, "no partial field update")
}

func TestTasksTable_SetCompleted(t *testing.T) {
	tasks := testTasks(t)
	ctx := context.Background()

	task, err := tasks.Create(ctx, types.TaskInput{Title: "Groceries", Category: types.CategoryPersonal})
	require.NoError(t, err)

	done, err := tasks.SetCompleted(ctx, task.ID, true)
	require.NoError(t, err)
	assert.True(t, done.Completed)
	assert.True(t, done.UpdatedAt.After(task.UpdatedAt))

	undone, err := tasks.SetCompleted(ctx, task.ID, false)
	require.NoError(t, err)
	assert.False(t, undone.Completed)
}

func TestTasksTable_NotFound(t *testing.T) {
	tasks := testTasks(t)
	ctx := context.Background()

	_, err := tasks.Update(ctx, "missing", types.TaskPatch{Title: ptr("Whatever")})
	assert.ErrorIs(t, err, types.ErrNotFound)

	_, err = tasks.SetCompleted(ctx, "missing", true)
	assert.ErrorIs(t, err, types.ErrNotFound)

	assert.ErrorIs(t, tasks.Remove(ctx, "missing"), types.ErrNotFound)
	assert.ErrorIs(t, tasks.Remove(ctx, ""), types.ErrInvalidID)
}

func TestTasksTable_RemoveTwice(t *testing.T) {
	tasks := testTasks(t)
	ctx := context.Background()

	task, err := tasks.Create(ctx, types.TaskInput{Title: "Renew plan", Category: types.CategoryWork})
	require.NoError(t, err)

	require.NoError(t, tasks.Remove(ctx, task.ID))
	assert.ErrorIs(t, tasks.Remove(ctx, task.ID), types.ErrNotFound)

	list, err := tasks.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
}
