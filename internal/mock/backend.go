// Package mock implements the process-local taskdesk backend used when no
// remote store is configured. State lives in memory for the lifetime of
// the attached backend, is seeded with a fixed example dataset, and every
// call is delayed by a fixed latency so loading states stay observable.
package mock

import (
	"context"
	"sync"
	"time"

	"github.com/mesh-intelligence/taskdesk/pkg/types"
)

// Compile-time interface check: Backend must implement types.Backend.
var _ types.Backend = (*Backend)(nil)

// Backend implements types.Backend with in-memory lists.
type Backend struct {
	mu       sync.RWMutex
	attached bool
	tasks    *taskStore
	notes    *noteStore
}

// NewBackend creates a new mock backend instance.
// The backend is not attached; call Attach with a Config to initialize.
func NewBackend() *Backend {
	return &Backend{}
}

// Attach seeds fresh task and note lists. config.MockLatency is applied
// to every store call; zero disables the delay.
// Returns ErrAlreadyAttached if already attached.
func (b *Backend) Attach(config types.Config) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.attached {
		return types.ErrAlreadyAttached
	}
	if err := config.Validate(); err != nil {
		return err
	}

	seedTasks, seedNotes, err := loadSeed(time.Now().UTC())
	if err != nil {
		return err
	}

	d := delay(config.MockLatency)
	b.tasks = &taskStore{delay: d, list: newCollection(seedTasks, types.Task.RecordID)}
	b.notes = &noteStore{delay: d, list: newCollection(seedNotes, types.Note.RecordID), now: time.Now}
	b.attached = true
	return nil
}

// Detach drops all in-memory state. Detach is idempotent.
func (b *Backend) Detach() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.attached = false
	b.tasks = nil
	b.notes = nil
	return nil
}

// Tasks returns the task store.
func (b *Backend) Tasks() (types.TaskStore, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if !b.attached {
		return nil, types.ErrDetached
	}
	return b.tasks, nil
}

// Notes returns the note store.
func (b *Backend) Notes() (types.NoteStore, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if !b.attached {
		return nil, types.ErrDetached
	}
	return b.notes, nil
}

// Health always reports the remote store as disabled.
func (b *Backend) Health(ctx context.Context) types.Health {
	return types.Health{
		Status:  types.HealthDisabled,
		Message: "remote store disabled; using mock data",
	}
}

// delay is the fixed artificial response latency.
type delay time.Duration

// wait blocks for the latency or until ctx is done.
func (d delay) wait(ctx context.Context) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(time.Duration(d))
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
