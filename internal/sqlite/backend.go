// Package sqlite implements the relational storage backend for taskdesk on
// top of modernc.org/sqlite. The schema is not created on Attach: a fresh
// store reports a missing table until SetupSchema has run.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	_ "modernc.org/sqlite"

	"github.com/mesh-intelligence/taskdesk/pkg/types"
)

// DatabaseFile is the file name of the store inside the data directory.
const DatabaseFile = "taskdesk.db"

// Compile-time interface check: Backend must implement types.Backend.
var _ types.Backend = (*Backend)(nil)

// Backend implements types.Backend using a SQLite database file.
type Backend struct {
	mu       sync.RWMutex
	attached bool
	config   types.Config
	db       *sql.DB
	tasks    *tasksTable
	notes    *notesTable
}

// NewBackend creates a new SQLite backend instance.
// The backend is not attached; call Attach with a Config to initialize.
func NewBackend() *Backend {
	return &Backend{}
}

// Attach opens the database file in config.DataDir, creating the directory
// if needed. ReadOnly opens the file without write access; the file must
// already exist.
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

	dataDir := config.DataDir
	if dataDir == "" {
		dataDir = "."
	}
	if !config.ReadOnly {
		if err := os.MkdirAll(dataDir, 0o755); err != nil {
			return err
		}
	}

	db, err := sql.Open("sqlite", dataSourceName(filepath.Join(dataDir, DatabaseFile), config.ReadOnly))
	if err != nil {
		return err
	}
	// One connection serializes writers; SQLite allows a single writer anyway.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return fmt.Errorf("opening database: %w", err)
	}

	b.db = db
	b.config = config
	b.tasks = &tasksTable{backend: b}
	b.notes = &notesTable{backend: b}
	b.attached = true
	return nil
}

// Detach closes the database. Detach is idempotent.
func (b *Backend) Detach() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.attached {
		return nil
	}

	if b.db != nil {
		if err := b.db.Close(); err != nil {
			return err
		}
		b.db = nil
	}

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

// SetupSchema creates the tasks and notes tables and their indexes. It is
// safe to run more than once.
func (b *Backend) SetupSchema(ctx context.Context) error {
	db, err := b.conn()
	if err != nil {
		return err
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return classify("setup", "schema", err)
	}
	defer tx.Rollback()

	for _, ddl := range schemaDDL {
		if _, err := tx.ExecContext(ctx, ddl); err != nil {
			return classify("setup", "schema", err)
		}
	}
	for _, ddl := range indexDDL {
		if _, err := tx.ExecContext(ctx, ddl); err != nil {
			return classify("setup", "schema", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return classify("setup", "schema", err)
	}
	return nil
}

// Health probes both tables with a one-row read.
func (b *Backend) Health(ctx context.Context) types.Health {
	db, err := b.conn()
	if err != nil {
		return types.Health{Status: types.HealthError, Message: err.Error()}
	}

	for _, table := range []string{types.TasksTable, types.NotesTable} {
		rows, err := db.QueryContext(ctx, "SELECT id FROM "+table+" LIMIT 1")
		if err != nil {
			return types.HealthFromError(classify("probe", table, err))
		}
		rows.Close()
	}
	return types.HealthFromError(nil)
}

// conn returns the open database or ErrDetached.
func (b *Backend) conn() (*sql.DB, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if !b.attached {
		return nil, types.ErrDetached
	}
	return b.db, nil
}

// dataSourceName builds the driver DSN for path.
func dataSourceName(path string, readOnly bool) string {
	if readOnly {
		return "file:" + path + "?mode=ro"
	}
	return path
}
