package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mesh-intelligence/taskdesk/pkg/types"
)

// Compile-time interface check: tasksTable must implement TaskStore.
var _ types.TaskStore = (*tasksTable)(nil)

const taskColumns = "id, title, description, category, priority, completed, created_at, updated_at"

// tasksTable implements types.TaskStore for the tasks table. Each operation
// hydrates rows into types.Task values.
type tasksTable struct {
	backend *Backend
}

// List returns every task, newest first. Rows created in the same instant
// keep insertion order, newest first.
func (tt *tasksTable) List(ctx context.Context) ([]types.Task, error) {
	db, err := tt.backend.conn()
	if err != nil {
		return nil, err
	}

	rows, err := db.QueryContext(ctx,
		"SELECT "+taskColumns+" FROM tasks ORDER BY created_at DESC, rowid DESC")
	if err != nil {
		return nil, classify("list", types.TasksTable, err)
	}
	defer rows.Close()

	tasks := []types.Task{}
	for rows.Next() {
		task, err := hydrateTask(rows)
		if err != nil {
			return nil, classify("list", types.TasksTable, fmt.Errorf("hydrating task: %w", err))
		}
		tasks = append(tasks, task)
	}
	if err := rows.Err(); err != nil {
		return nil, classify("list", types.TasksTable, err)
	}
	return tasks, nil
}

// Create inserts a new task with a UUID v7 id and fresh timestamps.
func (tt *tasksTable) Create(ctx context.Context, in types.TaskInput) (types.Task, error) {
	if err := in.Validate(); err != nil {
		return types.Task{}, err
	}
	db, err := tt.backend.conn()
	if err != nil {
		return types.Task{}, err
	}

	id, err := uuid.NewV7()
	if err != nil {
		return types.Task{}, fmt.Errorf("generating UUID v7: %w", err)
	}
	now := time.Now().UTC()

	task := in.NewTask()
	task.ID = id.String()
	task.CreatedAt = now
	task.UpdatedAt = now

	_, err = db.ExecContext(ctx,
		"INSERT INTO tasks ("+taskColumns+") VALUES (?, ?, ?, ?, ?, ?, ?, ?)",
		task.ID, task.Title, task.Description, string(task.Category), string(task.Priority),
		task.Completed, formatTime(task.CreatedAt), formatTime(task.UpdatedAt),
	)
	if err != nil {
		return types.Task{}, classify("create", types.TasksTable, err)
	}
	return task, nil
}

// Update applies patch to the task inside one transaction.
func (tt *tasksTable) Update(ctx context.Context, id string, patch types.TaskPatch) (types.Task, error) {
	if err := patch.Validate(); err != nil {
		return types.Task{}, err
	}
	return tt.modify(ctx, "update", id, patch.Apply)
}

// SetCompleted sets the completion flag.
func (tt *tasksTable) SetCompleted(ctx context.Context, id string, completed bool) (types.Task, error) {
	return tt.modify(ctx, "toggle", id, func(t *types.Task) {
		t.Completed = completed
	})
}

// Remove deletes the task. Returns ErrNotFound if no row has that id.
func (tt *tasksTable) Remove(ctx context.Context, id string) error {
	if id == "" {
		return types.ErrInvalidID
	}
	db, err := tt.backend.conn()
	if err != nil {
		return err
	}

	res, err := db.ExecContext(ctx, "DELETE FROM tasks WHERE id = ?", id)
	if err != nil {
		return classify("delete", types.TasksTable, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return classify("delete", types.TasksTable, err)
	}
	if n == 0 {
		return types.ErrNotFound
	}
	return nil
}

// modify runs a read-modify-write of one task in a transaction and bumps
// updated_at.
func (tt *tasksTable) modify(ctx context.Context, op, id string, change func(*types.Task)) (types.Task, error) {
	if id == "" {
		return types.Task{}, types.ErrInvalidID
	}
	db, err := tt.backend.conn()
	if err != nil {
		return types.Task{}, err
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return types.Task{}, classify(op, types.TasksTable, err)
	}
	defer tx.Rollback()

	row := tx.QueryRowContext(ctx, "SELECT "+taskColumns+" FROM tasks WHERE id = ?", id)
	task, err := hydrateTask(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return types.Task{}, types.ErrNotFound
		}
		return types.Task{}, classify(op, types.TasksTable, err)
	}

	change(&task)
	task.UpdatedAt = types.NextUpdatedAt(task.UpdatedAt)

	_, err = tx.ExecContext(ctx,
		"UPDATE tasks SET title = ?, description = ?, category = ?, priority = ?, completed = ?, updated_at = ? WHERE id = ?",
		task.Title, task.Description, string(task.Category), string(task.Priority),
		task.Completed, formatTime(task.UpdatedAt), id,
	)
	if err != nil {
		return types.Task{}, classify(op, types.TasksTable, err)
	}
	if err := tx.Commit(); err != nil {
		return types.Task{}, classify(op, types.TasksTable, err)
	}
	return task, nil
}

// scanner is satisfied by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

// hydrateTask converts one row into a types.Task.
func hydrateTask(row scanner) (types.Task, error) {
	var t types.Task
	var category, priority, createdAt, updatedAt string
	if err := row.Scan(&t.ID, &t.Title, &t.Description, &category, &priority,
		&t.Completed, &createdAt, &updatedAt); err != nil {
		return types.Task{}, err
	}
	t.Category = types.Category(category)
	t.Priority = types.Priority(priority)

	var err error
	t.CreatedAt, err = parseTime(createdAt)
	if err != nil {
		return types.Task{}, fmt.Errorf("parsing created_at: %w", err)
	}
	t.UpdatedAt, err = parseTime(updatedAt)
	if err != nil {
		return types.Task{}, fmt.Errorf("parsing updated_at: %w", err)
	}
	return t, nil
}
