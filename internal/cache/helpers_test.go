package cache

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/taskdesk/internal/mock"
	"github.com/mesh-intelligence/taskdesk/pkg/types"
)

func ptr[T any](v T) *T { return &v }

// mockBackend attaches a zero-latency mock backend.
func mockBackend(t testing.TB) *mock.Backend {
	t.Helper()

	b := mock.NewBackend()
	require.NoError(t, b.Attach(types.Config{Backend: types.BackendMock}))
	t.Cleanup(func() { b.Detach() })
	return b
}

func mockTasks(t testing.TB) types.TaskStore {
	t.Helper()
	tasks, err := mockBackend(t).Tasks()
	require.NoError(t, err)
	return tasks
}

// stubTasks delegates to an inner store unless a hook is set, and counts
// calls. Hooks must be set before the store is used.
type stubTasks struct {
	types.TaskStore

	list   func(ctx context.Context, n int) ([]types.Task, error)
	create func(ctx context.Context, in types.TaskInput) (types.Task, error)
	update func(ctx context.Context, id string, patch types.TaskPatch) (types.Task, error)

	mu    sync.Mutex
	calls map[string]int
}

func newStubTasks(inner types.TaskStore) *stubTasks {
	return &stubTasks{TaskStore: inner, calls: map[string]int{}}
}

func (s *stubTasks) count(op string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls[op]++
	return s.calls[op]
}

func (s *stubTasks) Calls(op string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls[op]
}

func (s *stubTasks) List(ctx context.Context) ([]types.Task, error) {
	n := s.count("list")
	if s.list != nil {
		return s.list(ctx, n)
	}
	return s.TaskStore.List(ctx)
}

func (s *stubTasks) Create(ctx context.Context, in types.TaskInput) (types.Task, error) {
	s.count("create")
	if s.create != nil {
		return s.create(ctx, in)
	}
	return s.TaskStore.Create(ctx, in)
}

func (s *stubTasks) Update(ctx context.Context, id string, patch types.TaskPatch) (types.Task, error) {
	s.count("update")
	if s.update != nil {
		return s.update(ctx, id, patch)
	}
	return s.TaskStore.Update(ctx, id, patch)
}

// recorder collects notifications.
type recorder struct {
	mu  sync.Mutex
	got []Notification
}

func (r *recorder) Notify(n Notification) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.got = append(r.got, n)
}

func (r *recorder) errors() []Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []Notification
	for _, n := range r.got {
		if n.Level == LevelError {
			out = append(out, n)
		}
	}
	return out
}

func ids[T Record](items []T) []string {
	out := make([]string, len(items))
	for i, v := range items {
		out[i] = v.RecordID()
	}
	return out
}

func findTask(tasks []types.Task, id string) (types.Task, bool) {
	for _, task := range tasks {
		if task.ID == id {
			return task, true
		}
	}
	return types.Task{}, false
}
