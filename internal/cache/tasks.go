package cache

import (
	"context"

	"github.com/mesh-intelligence/taskdesk/pkg/types"
)

// TaskClient is the task collection plus its optimistic write operations.
// Input is validated before anything reaches the store.
type TaskClient struct {
	store types.TaskStore
	tasks *Collection[types.Task]
}

// NewTaskClient creates a client over store.
func NewTaskClient(store types.TaskStore, opts Options) *TaskClient {
	return &TaskClient{
		store: store,
		tasks: NewCollection[types.Task](types.TasksTable, store.List, opts),
	}
}

// Collection exposes the underlying cache.
func (c *TaskClient) Collection() *Collection[types.Task] { return c.tasks }

// List returns the task list, reading only when the cache is stale.
func (c *TaskClient) List(ctx context.Context) ([]types.Task, error) {
	return c.tasks.Get(ctx)
}

// Cached returns the visible task list without reading.
func (c *TaskClient) Cached() []types.Task {
	return c.tasks.Snapshot()
}

// Create inserts a placeholder task and saves it in the background.
func (c *TaskClient) Create(ctx context.Context, in types.TaskInput) (*Pending[types.Task], error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	now := c.tasks.opts.Now().UTC()
	placeholder := in.NewTask()
	placeholder.ID = NewTemporaryID()
	placeholder.CreatedAt = now
	placeholder.UpdatedAt = now

	return mutate(ctx, c.tasks, mutation[types.Task, types.Task]{
		action:     "create task",
		success:    func(types.Task) string { return "Task created" },
		optimistic: insertHead(placeholder),
		call: func(ctx context.Context) (types.Task, error) {
			return c.store.Create(ctx, in)
		},
		confirmed: func(t types.Task) func([]types.Task) []types.Task {
			return reconcileCreate(placeholder.ID, t)
		},
	}), nil
}

// Update applies patch to the cached task and saves it in the background.
func (c *TaskClient) Update(ctx context.Context, id string, patch types.TaskPatch) (*Pending[types.Task], error) {
	if err := checkTarget(id); err != nil {
		return nil, err
	}
	if err := patch.Validate(); err != nil {
		return nil, err
	}

	return mutate(ctx, c.tasks, mutation[types.Task, types.Task]{
		action:     "update task",
		success:    func(types.Task) string { return "Task updated" },
		optimistic: patchRecord(id, patch.Apply),
		call: func(ctx context.Context) (types.Task, error) {
			return c.store.Update(ctx, id, patch)
		},
		confirmed: replaceRecord[types.Task],
		notFound:  removeRecord[types.Task](id),
	}), nil
}

// Toggle sets the completion flag of a task.
func (c *TaskClient) Toggle(ctx context.Context, id string, completed bool) (*Pending[types.Task], error) {
	if err := checkTarget(id); err != nil {
		return nil, err
	}

	return mutate(ctx, c.tasks, mutation[types.Task, types.Task]{
		action: "update task",
		success: func(t types.Task) string {
			if t.Completed {
				return "Task completed"
			}
			return "Task reopened"
		},
		optimistic: patchRecord(id, func(t *types.Task) { t.Completed = completed }),
		call: func(ctx context.Context) (types.Task, error) {
			return c.store.SetCompleted(ctx, id, completed)
		},
		confirmed: replaceRecord[types.Task],
		notFound:  removeRecord[types.Task](id),
	}), nil
}

// Delete removes the task from the cache and deletes it in the background.
func (c *TaskClient) Delete(ctx context.Context, id string) (*Pending[struct{}], error) {
	if err := checkTarget(id); err != nil {
		return nil, err
	}

	gone := removeRecord[types.Task](id)
	return mutate(ctx, c.tasks, mutation[types.Task, struct{}]{
		action:     "delete task",
		success:    func(struct{}) string { return "Task deleted" },
		optimistic: gone,
		call: func(ctx context.Context) (struct{}, error) {
			return struct{}{}, c.store.Remove(ctx, id)
		},
		confirmed: func(struct{}) func([]types.Task) []types.Task { return gone },
		notFound:  gone,
	}), nil
}
