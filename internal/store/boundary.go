package store

import (
	"context"
	"errors"
	"log/slog"

	"github.com/mesh-intelligence/taskdesk/pkg/types"
)

// boundary converts any error that is not already part of the taxonomy
// into a fault BackendError.
func boundary(op, table string, err error) error {
	if err == nil {
		return nil
	}

	var ve *types.ValidationError
	var be *types.BackendError
	switch {
	case errors.As(err, &ve), errors.As(err, &be):
		return err
	case errors.Is(err, types.ErrNotFound), errors.Is(err, types.ErrInvalidID), errors.Is(err, types.ErrDetached):
		return err
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return err
	}

	slog.Debug("unclassified backend error", "op", op, "table", table, "err", err)
	return types.NewFaultError(op, table, err)
}

// Compile-time interface checks.
var (
	_ types.TaskStore = (*taskBoundary)(nil)
	_ types.NoteStore = (*noteBoundary)(nil)
)

type taskBoundary struct {
	inner types.TaskStore
}

func (s *taskBoundary) List(ctx context.Context) ([]types.Task, error) {
	tasks, err := s.inner.List(ctx)
	if err != nil {
		return nil, boundary("list", types.TasksTable, err)
	}
	if tasks == nil {
		tasks = []types.Task{}
	}
	return tasks, nil
}

func (s *taskBoundary) Create(ctx context.Context, in types.TaskInput) (types.Task, error) {
	task, err := s.inner.Create(ctx, in)
	return task, boundary("create", types.TasksTable, err)
}

func (s *taskBoundary) Update(ctx context.Context, id string, patch types.TaskPatch) (types.Task, error) {
	task, err := s.inner.Update(ctx, id, patch)
	return task, boundary("update", types.TasksTable, err)
}

func (s *taskBoundary) SetCompleted(ctx context.Context, id string, completed bool) (types.Task, error) {
	task, err := s.inner.SetCompleted(ctx, id, completed)
	return task, boundary("toggle", types.TasksTable, err)
}

func (s *taskBoundary) Remove(ctx context.Context, id string) error {
	return boundary("delete", types.TasksTable, s.inner.Remove(ctx, id))
}

type noteBoundary struct {
	inner types.NoteStore
}

func (s *noteBoundary) List(ctx context.Context) ([]types.Note, error) {
	notes, err := s.inner.List(ctx)
	if err != nil {
		return nil, boundary("list", types.NotesTable, err)
	}
	if notes == nil {
		notes = []types.Note{}
	}
	return notes, nil
}

func (s *noteBoundary) Create(ctx context.Context, in types.NoteInput) (types.Note, error) {
	note, err := s.inner.Create(ctx, in)
	return note, boundary("create", types.NotesTable, err)
}

func (s *noteBoundary) Update(ctx context.Context, id string, patch types.NotePatch) (types.Note, error) {
	note, err := s.inner.Update(ctx, id, patch)
	return note, boundary("update", types.NotesTable, err)
}

func (s *noteBoundary) Remove(ctx context.Context, id string) error {
	return boundary("delete", types.NotesTable, s.inner.Remove(ctx, id))
}
