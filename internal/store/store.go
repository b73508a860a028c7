// Package store is the record store adapter. It selects exactly one backend
// at startup and puts an error boundary in front of its task and note
// stores, so callers see the same contract and the same error taxonomy
// whichever backend is configured.
package store

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/mesh-intelligence/taskdesk/internal/mock"
	"github.com/mesh-intelligence/taskdesk/internal/sqlite"
	"github.com/mesh-intelligence/taskdesk/pkg/types"
)

// Compile-time interface check: Backend must implement types.Backend.
var _ types.Backend = (*Backend)(nil)

// SchemaSetter is implemented by backends whose tables must be created
// before use.
type SchemaSetter interface {
	SetupSchema(ctx context.Context) error
}

// Backend wraps the selected backend with the error boundary.
type Backend struct {
	name  string
	inner types.Backend
}

// New returns an unattached backend for the named implementation.
func New(name string) (types.Backend, error) {
	switch name {
	case types.BackendSQLite:
		return sqlite.NewBackend(), nil
	case types.BackendMock:
		return mock.NewBackend(), nil
	case "":
		return nil, types.ErrBackendEmpty
	default:
		return nil, fmt.Errorf("%w: %q", types.ErrBackendUnknown, name)
	}
}

// Open validates cfg, selects the backend it names and attaches it.
// The caller must Detach the returned backend.
func Open(cfg types.Config) (*Backend, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	inner, err := New(cfg.Backend)
	if err != nil {
		return nil, err
	}
	if err := inner.Attach(cfg); err != nil {
		return nil, fmt.Errorf("attach %s backend: %w", cfg.Backend, err)
	}
	slog.Debug("backend attached", "backend", cfg.Backend, "data_dir", cfg.DataDir, "read_only", cfg.ReadOnly)
	return Wrap(cfg.Backend, inner), nil
}

// Wrap puts the error boundary in front of an already constructed backend.
func Wrap(name string, inner types.Backend) *Backend {
	return &Backend{name: name, inner: inner}
}

// Name returns the configured backend name.
func (b *Backend) Name() string { return b.name }

// Attach attaches the wrapped backend.
func (b *Backend) Attach(config types.Config) error {
	return b.inner.Attach(config)
}

// Detach detaches the wrapped backend.
func (b *Backend) Detach() error {
	return b.inner.Detach()
}

// Tasks returns the guarded task store.
func (b *Backend) Tasks() (types.TaskStore, error) {
	tasks, err := b.inner.Tasks()
	if err != nil {
		return nil, err
	}
	return &taskBoundary{inner: tasks}, nil
}

// Notes returns the guarded note store.
func (b *Backend) Notes() (types.NoteStore, error) {
	notes, err := b.inner.Notes()
	if err != nil {
		return nil, err
	}
	return &noteBoundary{inner: notes}, nil
}

// Health probes the wrapped backend.
func (b *Backend) Health(ctx context.Context) types.Health {
	return b.inner.Health(ctx)
}

// SetupSchema creates the backend's tables. It reports false when the
// backend has no schema to set up.
func (b *Backend) SetupSchema(ctx context.Context) (bool, error) {
	setter, ok := b.inner.(SchemaSetter)
	if !ok {
		return false, nil
	}
	if err := setter.SetupSchema(ctx); err != nil {
		return true, boundary("setup", "schema", err)
	}
	return true, nil
}
