package mock

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/mesh-intelligence/taskdesk/pkg/types"
)

// Compile-time interface checks.
var (
	_ types.TaskStore = (*taskStore)(nil)
	_ types.NoteStore = (*noteStore)(nil)
)

// taskStore implements types.TaskStore over an in-memory collection.
type taskStore struct {
	delay delay
	list  *collection[types.Task]
}

func (s *taskStore) List(ctx context.Context) ([]types.Task, error) {
	if err := s.delay.wait(ctx); err != nil {
		return nil, err
	}
	return s.list.all(), nil
}

// Create always succeeds for valid input and inserts at the head.
func (s *taskStore) Create(ctx context.Context, in types.TaskInput) (types.Task, error) {
	if err := s.delay.wait(ctx); err != nil {
		return types.Task{}, err
	}
	if err := in.Validate(); err != nil {
		return types.Task{}, err
	}

	now := time.Now().UTC()
	task := in.NewTask()
	task.ID = uuid.NewString()
	task.CreatedAt = now
	task.UpdatedAt = now

	s.list.prepend(task)
	return task, nil
}

func (s *taskStore) Update(ctx context.Context, id string, patch types.TaskPatch) (types.Task, error) {
	if err := s.delay.wait(ctx); err != nil {
		return types.Task{}, err
	}
	if err := patch.Validate(); err != nil {
		return types.Task{}, err
	}
	return s.list.modify(id, func(t *types.Task) error {
		patch.Apply(t)
		t.UpdatedAt = types.NextUpdatedAt(t.UpdatedAt)
		return nil
	})
}

func (s *taskStore) SetCompleted(ctx context.Context, id string, completed bool) (types.Task, error) {
	if err := s.delay.wait(ctx); err != nil {
		return types.Task{}, err
	}
	return s.list.modify(id, func(t *types.Task) error {
		t.Completed = completed
		t.UpdatedAt = types.NextUpdatedAt(t.UpdatedAt)
		return nil
	})
}

func (s *taskStore) Remove(ctx context.Context, id string) error {
	if err := s.delay.wait(ctx); err != nil {
		return err
	}
	return s.list.remove(id)
}

// noteStore implements types.NoteStore over an in-memory collection.
type noteStore struct {
	delay delay
	list  *collection[types.Note]
	now   func() time.Time
}

func (s *noteStore) List(ctx context.Context) ([]types.Note, error) {
	if err := s.delay.wait(ctx); err != nil {
		return nil, err
	}
	return s.list.all(), nil
}

// Create fills the title and date defaults and inserts at the head.
func (s *noteStore) Create(ctx context.Context, in types.NoteInput) (types.Note, error) {
	if err := s.delay.wait(ctx); err != nil {
		return types.Note{}, err
	}
	if err := in.Validate(); err != nil {
		return types.Note{}, err
	}

	// One clock read: the default date is the local calendar day of the
	// same instant that becomes created_at.
	now := s.now()
	note := in.NewNote(now)
	note.ID = uuid.NewString()
	note.CreatedAt = now.UTC()
	note.UpdatedAt = note.CreatedAt

	s.list.prepend(note)
	return note, nil
}

func (s *noteStore) Update(ctx context.Context, id string, patch types.NotePatch) (types.Note, error) {
	if err := s.delay.wait(ctx); err != nil {
		return types.Note{}, err
	}
	if err := patch.Validate(); err != nil {
		return types.Note{}, err
	}
	return s.list.modify(id, func(n *types.Note) error {
		patch.Apply(n)
		n.UpdatedAt = types.NextUpdatedAt(n.UpdatedAt)
		return nil
	})
}

func (s *noteStore) Remove(ctx context.Context, id string) error {
	if err := s.delay.wait(ctx); err != nil {
		return err
	}
	return s.list.remove(id)
}
