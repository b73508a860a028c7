package types

import "context"

// Table names shared by every backend.
const (
	TasksTable = "tasks"
	NotesTable = "notes"
)

// TaskStore provides the CRUD operations for tasks. Every backend presents
// the same contract:
//   - List returns the full collection ordered by descending creation time.
//   - Create assigns ID, CreatedAt and UpdatedAt and returns the stored task.
//   - Update and SetCompleted bump UpdatedAt and return the full task.
//   - Remove deletes the task; a second Remove returns ErrNotFound.
//
// A write either fully succeeds or fully fails.
type TaskStore interface {
	List(ctx context.Context) ([]Task, error)
	Create(ctx context.Context, in TaskInput) (Task, error)
	Update(ctx context.Context, id string, patch TaskPatch) (Task, error)
	SetCompleted(ctx context.Context, id string, completed bool) (Task, error)
	Remove(ctx context.Context, id string) error
}

// NoteStore provides the CRUD operations for notes, with the same ordering
// and not-found rules as TaskStore.
type NoteStore interface {
	List(ctx context.Context) ([]Note, error)
	Create(ctx context.Context, in NoteInput) (Note, error)
	Update(ctx context.Context, id string, patch NotePatch) (Note, error)
	Remove(ctx context.Context, id string) error
}

// Backend is a storage backend that can be attached once and then serves
// the task and note stores until it is detached.
type Backend interface {
	// Attach connects the backend described by config.
	// Returns ErrAlreadyAttached if called while attached.
	Attach(config Config) error

	// Detach releases backend resources. Idempotent.
	// After Detach, Tasks and Notes return ErrDetached.
	Detach() error

	// Tasks returns the task store.
	Tasks() (TaskStore, error)

	// Notes returns the note store.
	Notes() (NoteStore, error)

	// Health probes the backend. It never returns an error; failures are
	// folded into the status.
	Health(ctx context.Context) Health
}

// HealthStatus is the outcome of a backend probe.
type HealthStatus string

const (
	HealthOK               HealthStatus = "ok"
	HealthDisabled         HealthStatus = "disabled"
	HealthMissingTable     HealthStatus = "missing_table"
	HealthPermissionDenied HealthStatus = "permission_denied"
	HealthError            HealthStatus = "error"
)

// Health drives the status banner.
type Health struct {
	Status  HealthStatus `json:"status"`
	Message string       `json:"message"`
}

// HealthFromError maps a probe error onto a Health value.
func HealthFromError(err error) Health {
	switch {
	case err == nil:
		return Health{Status: HealthOK, Message: "remote store connected"}
	case IsBackendKind(err, KindSchemaMissing):
		return Health{Status: HealthMissingTable, Message: UserMessage(err)}
	case IsBackendKind(err, KindPermissionDenied):
		return Health{Status: HealthPermissionDenied, Message: UserMessage(err)}
	default:
		return Health{Status: HealthError, Message: UserMessage(err)}
	}
}
