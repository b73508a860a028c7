package mock

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/taskdesk/pkg/types"
)

func ptr[T any](v T) *T { return &v }

func attachTestBackend(t *testing.T, latency time.Duration) *Backend {
	t.Helper()

	b := NewBackend()
	require.NoError(t, b.Attach(types.Config{Backend: types.BackendMock, MockLatency: latency}))
	t.Cleanup(func() { b.Detach() })
	return b
}

func TestBackend_Lifecycle(t *testing.T) {
	b := NewBackend()
	config := types.Config{Backend: types.BackendMock}

	require.NoError(t, b.Attach(config))
	assert.ErrorIs(t, b.Attach(config), types.ErrAlreadyAttached)

	require.NoError(t, b.Detach())
	assert.NoError(t, b.Detach(), "second Detach should not error")

	_, err := b.Tasks()
	assert.ErrorIs(t, err, types.ErrDetached)
	_, err = b.Notes()
	assert.ErrorIs(t, err, types.ErrDetached)
}

func TestBackend_AttachInvalidConfig(t *testing.T) {
	b := NewBackend()
	err := b.Attach(types.Config{Backend: types.BackendMock, MockLatency: -time.Second})
	assert.ErrorIs(t, err, types.ErrLatencyInvalid)
}

func TestBackend_Health(t *testing.T) {
	health := attachTestBackend(t, 0).Health(context.Background())
	assert.Equal(t, types.HealthDisabled, health.Status)
	assert.NotEmpty(t, health.Message)
}

func TestBackend_Seed(t *testing.T) {
	tasks, err := attachTestBackend(t, 0).Tasks()
	require.NoError(t, err)

	list, err := tasks.List(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 6)
	assert.Equal(t, "t1", list[0].ID)

	for i := 1; i < len(list); i++ {
		assert.True(t, list[i-1].CreatedAt.After(list[i].CreatedAt), "seed must be newest first")
	}

	var completed int
	for _, task := range list {
		assert.True(t, task.Category.Valid(), "task %s", task.ID)
		assert.True(t, task.Priority.Valid(), "task %s", task.ID)
		if task.Completed {
			completed++
		}
	}
	assert.Equal(t, 2, completed)
}

func TestBackend_ReattachReseeds(t *testing.T) {
	b := NewBackend()
	config := types.Config{Backend: types.BackendMock}
	ctx := context.Background()

	require.NoError(t, b.Attach(config))
	tasks, err := b.Tasks()
	require.NoError(t, err)
	require.NoError(t, tasks.Remove(ctx, "t1"))
	require.NoError(t, b.Detach())

	require.NoError(t, b.Attach(config))
	defer b.Detach()
	tasks, err = b.Tasks()
	require.NoError(t, err)
	list, err := tasks.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 6)
}

func TestTaskStore_CRUD(t *testing.T) {
	tasks, err := attachTestBackend(t, 0).Tasks()
	require.NoError(t, err)
	ctx := context.Background()

	created, err := tasks.Create(ctx, types.TaskInput{Title: " Water plants ", Category: types.CategoryPersonal})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "Water plants", created.Title)
	assert.Equal(t, types.PriorityUnset, created.Priority)

	list, err := tasks.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 7)
	assert.Equal(t, created.ID, list[0].ID, "new task goes to the head")

	updated, err := tasks.Update(ctx, created.ID, types.TaskPatch{Priority: ptr(types.PriorityHigh)})
	require.NoError(t, err)
	assert.Equal(t, types.PriorityHigh, updated.Priority)
	assert.Equal(t, "Water plants", updated.Title)
	assert.True(t, updated.UpdatedAt.After(created.UpdatedAt))

	done, err := tasks.SetCompleted(ctx, created.ID, true)
	require.NoError(t, err)
	assert.True(t, done.Completed)

	require.NoError(t, tasks.Remove(ctx, created.ID))
	assert.ErrorIs(t, tasks.Remove(ctx, created.ID), types.ErrNotFound)

	list, err = tasks.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 6)
}

func TestTaskStore_Errors(t *testing.T) {
	tasks, err := attachTestBackend(t, 0).Tasks()
	require.NoError(t, err)
	ctx := context.Background()

	tests := []struct {
		name string
		call func() error
		want error
	}{
		{
			name: "update unknown id",
			call: func() error {
				_, err := tasks.Update(ctx, "missing", types.TaskPatch{Title: ptr("Anything")})
				return err
			},
			want: types.ErrNotFound,
		},
		{
			name: "toggle unknown id",
			call: func() error {
				_, err := tasks.SetCompleted(ctx, "missing", true)
				return err
			},
			want: types.ErrNotFound,
		},
		{
			name: "remove unknown id",
			call: func() error { return tasks.Remove(ctx, "missing") },
			want: types.ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, tt.call(), tt.want)
		})
	}

	_, err = tasks.Update(ctx, "t1", types.TaskPatch{Title: ptr("ab")})
	var ve *types.ValidationError
	assert.ErrorAs(t, err, &ve)
}

func TestTaskStore_ListReturnsCopy(t *testing.T) {
	tasks, err := attachTestBackend(t, 0).Tasks()
	require.NoError(t, err)
	ctx := context.Background()

	list, err := tasks.List(ctx)
	require.NoError(t, err)
	list[0].Title = "mutated"

	again, err := tasks.List(ctx)
	require.NoError(t, err)
	assert.NotEqual(t, "mutated", again[0].Title)
}

func TestTaskStore_Latency(t *testing.T) {
	tasks, err := attachTestBackend(t, 30*time.Millisecond).Tasks()
	require.NoError(t, err)

	start := time.Now()
	_, err = tasks.List(context.Background())
	require.NoError(t, err)
	assert.GreaterOrEqual(t, time.Since(start), 30*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = tasks.List(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestNoteStore_CRUD(t *testing.T) {
	notes, err := attachTestBackend(t, 0).Notes()
	require.NoError(t, err)
	ctx := context.Background()

	list, err := notes.List(ctx)
	require.NoError(t, err)
	assert.NotNil(t, list)
	assert.Empty(t, list)

	created, err := notes.Create(ctx, types.NoteInput{Topics: "• Budget\n• Hiring"})
	require.NoError(t, err)
	assert.Equal(t, types.DefaultNoteTitle, created.Title)
	assert.Equal(t, time.Now().Format(types.DateLayout), created.Date)

	updated, err := notes.Update(ctx, created.ID, types.NotePatch{Title: ptr("Sprint review"), Date: ptr("2024-03-01")})
	require.NoError(t, err)
	assert.Equal(t, "Sprint review", updated.Title)
	assert.Equal(t, "2024-03-01", updated.Date)
	assert.Equal(t, created.Topics, updated.Topics)

	_, err = notes.Update(ctx, created.ID, types.NotePatch{Date: ptr("01/03/2024")})
	var ve *types.ValidationError
	assert.ErrorAs(t, err, &ve)

	require.NoError(t, notes.Remove(ctx, created.ID))
	assert.ErrorIs(t, notes.Remove(ctx, created.ID), types.ErrNotFound)
}

func TestNoteStore_CreateUsesOneClockReading(t *testing.T) {
	// 23:59:59 local is already the next day in UTC.
	at := time.Date(2026, 3, 1, 23, 59, 59, 0, time.FixedZone("UTC-5", -5*60*60))
	notes := &noteStore{list: newCollection[types.Note](nil, types.Note.RecordID), now: func() time.Time { return at }}

	created, err := notes.Create(context.Background(), types.NoteInput{})
	require.NoError(t, err)

	assert.Equal(t, "2026-03-01", created.Date)
	assert.True(t, created.CreatedAt.Equal(at))
	assert.Equal(t, time.UTC, created.CreatedAt.Location())
	assert.Equal(t, created.CreatedAt, created.UpdatedAt)
}
