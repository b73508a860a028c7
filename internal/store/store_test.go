package store

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/taskdesk/pkg/types"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		backend string
		wantErr error
	}{
		{name: "sqlite", backend: types.BackendSQLite},
		{name: "mock", backend: types.BackendMock},
		{name: "empty", backend: "", wantErr: types.ErrBackendEmpty},
		{name: "unknown", backend: "postgres", wantErr: types.ErrBackendUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := New(tt.backend)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, b)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, b)
		})
	}
}

func TestOpen_Mock(t *testing.T) {
	b, err := Open(types.Config{Backend: types.BackendMock})
	require.NoError(t, err)
	defer b.Detach()

	assert.Equal(t, types.BackendMock, b.Name())
	assert.Equal(t, types.HealthDisabled, b.Health(context.Background()).Status)

	applied, err := b.SetupSchema(context.Background())
	require.NoError(t, err)
	assert.False(t, applied, "mock has no schema")

	tasks, err := b.Tasks()
	require.NoError(t, err)
	list, err := tasks.List(context.Background())
	require.NoError(t, err)
	assert.NotEmpty(t, list)
}

func TestOpen_SQLite(t *testing.T) {
	b, err := Open(types.Config{Backend: types.BackendSQLite, DataDir: t.TempDir()})
	require.NoError(t, err)
	defer b.Detach()
	ctx := context.Background()

	assert.Equal(t, types.HealthMissingTable, b.Health(ctx).Status)

	applied, err := b.SetupSchema(ctx)
	require.NoError(t, err)
	assert.True(t, applied)
	assert.Equal(t, types.HealthOK, b.Health(ctx).Status)

	notes, err := b.Notes()
	require.NoError(t, err)
	list, err := notes.List(ctx)
	require.NoError(t, err)
	assert.NotNil(t, list)
	assert.Empty(t, list)
}

func TestOpen_InvalidConfig(t *testing.T) {
	_, err := Open(types.Config{Backend: "mongo"})
	assert.ErrorIs(t, err, types.ErrBackendUnknown)
}

func TestOpen_Detached(t *testing.T) {
	b, err := Open(types.Config{Backend: types.BackendMock})
	require.NoError(t, err)
	require.NoError(t, b.Detach())

	_, err = b.Tasks()
	assert.ErrorIs(t, err, types.ErrDetached)
}

// failingTasks returns err from every call.
type failingTasks struct {
	err error
}

func (f failingTasks) List(context.Context) ([]types.Task, error) { return nil, f.err }
func (f failingTasks) Create(context.Context, types.TaskInput) (types.Task, error) {
	return types.Task{}, f.err
}
func (f failingTasks) Update(context.Context, string, types.TaskPatch) (types.Task, error) {
	return types.Task{}, f.err
}
func (f failingTasks) SetCompleted(context.Context, string, bool) (types.Task, error) {
	return types.Task{}, f.err
}
func (f failingTasks) Remove(context.Context, string) error { return f.err }

func TestBoundary(t *testing.T) {
	schema := types.NewSchemaMissingError("list", types.TasksTable, errors.New("no such table"))
	tests := []struct {
		name      string
		err       error
		wantSame  bool
		wantFault bool
	}{
		{name: "validation", err: &types.ValidationError{Field: "title", Message: "short"}, wantSame: true},
		{name: "not found", err: types.ErrNotFound, wantSame: true},
		{name: "backend error", err: schema, wantSame: true},
		{name: "cancelled", err: context.Canceled, wantSame: true},
		{name: "deadline", err: context.DeadlineExceeded, wantSame: true},
		{name: "raw error", err: errors.New("connection reset by peer"), wantFault: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := &taskBoundary{inner: failingTasks{err: tt.err}}
			_, err := s.List(context.Background())
			if tt.wantSame {
				assert.Equal(t, tt.err, err)
				return
			}

			var be *types.BackendError
			require.ErrorAs(t, err, &be)
			assert.Equal(t, types.KindFault, be.Kind)
			assert.Equal(t, "list", be.Op)
			assert.Equal(t, types.TasksTable, be.Table)
			assert.Equal(t, tt.err.Error(), be.Message)
			assert.ErrorIs(t, err, tt.err)
		})
	}
}

func TestBoundary_Operations(t *testing.T) {
	raw := errors.New("boom")
	s := &taskBoundary{inner: failingTasks{err: raw}}
	ctx := context.Background()

	_, err := s.Create(ctx, types.TaskInput{})
	assertFault(t, err, "create")
	_, err = s.Update(ctx, "x", types.TaskPatch{})
	assertFault(t, err, "update")
	_, err = s.SetCompleted(ctx, "x", true)
	assertFault(t, err, "toggle")
	assertFault(t, s.Remove(ctx, "x"), "delete")

	ok := &taskBoundary{inner: failingTasks{}}
	list, err := ok.List(ctx)
	require.NoError(t, err)
	assert.NotNil(t, list, "nil lists become empty slices")
}

func assertFault(t *testing.T, err error, op string) {
	t.Helper()
	var be *types.BackendError
	require.ErrorAs(t, err, &be)
	assert.Equal(t, types.KindFault, be.Kind)
	assert.Equal(t, op, be.Op)
}
