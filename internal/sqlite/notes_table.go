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

// Compile-time interface check: notesTable must implement NoteStore.
var _ types.NoteStore = (*notesTable)(nil)

const noteColumns = "id, title, date, topics, created_at, updated_at"

// notesTable implements types.NoteStore for the notes table.
type notesTable struct {
	backend *Backend
}

// List returns every note, newest first.
func (nt *notesTable) List(ctx context.Context) ([]types.Note, error) {
	db, err := nt.backend.conn()
	if err != nil {
		return nil, err
	}

	rows, err := db.QueryContext(ctx,
		"SELECT "+noteColumns+" FROM notes ORDER BY created_at DESC, rowid DESC")
	if err != nil {
		return nil, classify("list", types.NotesTable, err)
	}
	defer rows.Close()

	notes := []types.Note{}
	for rows.Next() {
		note, err := hydrateNote(rows)
		if err != nil {
			return nil, classify("list", types.NotesTable, fmt.Errorf("hydrating note: %w", err))
		}
		notes = append(notes, note)
	}
	if err := rows.Err(); err != nil {
		return nil, classify("list", types.NotesTable, err)
	}
	return notes, nil
}

// Create inserts a new note, filling the title and date defaults.
func (nt *notesTable) Create(ctx context.Context, in types.NoteInput) (types.Note, error) {
	if err := in.Validate(); err != nil {
		return types.Note{}, err
	}
	db, err := nt.backend.conn()
	if err != nil {
		return types.Note{}, err
	}

	id, err := uuid.NewV7()
	if err != nil {
		return types.Note{}, fmt.Errorf("generating UUID v7: %w", err)
	}
	now := time.Now().UTC()

	note := in.NewNote(time.Now())
	note.ID = id.String()
	note.CreatedAt = now
	note.UpdatedAt = now

	_, err = db.ExecContext(ctx,
		"INSERT INTO notes ("+noteColumns+") VALUES (?, ?, ?, ?, ?, ?)",
		note.ID, note.Title, note.Date, note.Topics,
		formatTime(note.CreatedAt), formatTime(note.UpdatedAt),
	)
	if err != nil {
		return types.Note{}, classify("create", types.NotesTable, err)
	}
	return note, nil
}

// Update applies patch to the note inside one transaction.
func (nt *notesTable) Update(ctx context.Context, id string, patch types.NotePatch) (types.Note, error) {
	if err := patch.Validate(); err != nil {
		return types.Note{}, err
	}
	if id == "" {
		return types.Note{}, types.ErrInvalidID
	}
	db, err := nt.backend.conn()
	if err != nil {
		return types.Note{}, err
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return types.Note{}, classify("update", types.NotesTable, err)
	}
	defer tx.Rollback()

	row := tx.QueryRowContext(ctx, "SELECT "+noteColumns+" FROM notes WHERE id = ?", id)
	note, err := hydrateNote(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return types.Note{}, types.ErrNotFound
		}
		return types.Note{}, classify("update", types.NotesTable, err)
	}

	patch.Apply(&note)
	note.UpdatedAt = types.NextUpdatedAt(note.UpdatedAt)

	_, err = tx.ExecContext(ctx,
		"UPDATE notes SET title = ?, date = ?, topics = ?, updated_at = ? WHERE id = ?",
		note.Title, note.Date, note.Topics, formatTime(note.UpdatedAt), id,
	)
	if err != nil {
		return types.Note{}, classify("update", types.NotesTable, err)
	}
	if err := tx.Commit(); err != nil {
		return types.Note{}, classify("update", types.NotesTable, err)
	}
	return note, nil
}

// Remove deletes the note. Returns ErrNotFound if no row has that id.
func (nt *notesTable) Remove(ctx context.Context, id string) error {
	if id == "" {
		return types.ErrInvalidID
	}
	db, err := nt.backend.conn()
	if err != nil {
		return err
	}

	res, err := db.ExecContext(ctx, "DELETE FROM notes WHERE id = ?", id)
	if err != nil {
		return classify("delete", types.NotesTable, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return classify("delete", types.NotesTable, err)
	}
	if n == 0 {
		return types.ErrNotFound
	}
	return nil
}

// hydrateNote converts one row into a types.Note.
func hydrateNote(row scanner) (types.Note, error) {
	var n types.Note
	var createdAt, updatedAt string
	if err := row.Scan(&n.ID, &n.Title, &n.Date, &n.Topics, &createdAt, &updatedAt); err != nil {
		return types.Note{}, err
	}
	var err error
	n.CreatedAt, err = parseTime(createdAt)
	if err != nil {
		return types.Note{}, fmt.Errorf("parsing created_at: %w", err)
	}
	n.UpdatedAt, err = parseTime(updatedAt)
	if err != nil {
		return types.Note{}, fmt.Errorf("parsing updated_at: %w", err)
	}
	return n, nil
}
