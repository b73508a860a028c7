package cache

import (
	"context"

	"github.com/mesh-intelligence/taskdesk/pkg/types"
)

// NoteClient is the note collection plus its optimistic write operations.
type NoteClient struct {
	store types.NoteStore
	notes *Collection[types.Note]
}

// NewNoteClient creates a client over store.
func NewNoteClient(store types.NoteStore, opts Options) *NoteClient {
	return &NoteClient{
		store: store,
		notes: NewCollection[types.Note](types.NotesTable, store.List, opts),
	}
}

// Collection exposes the underlying cache.
func (c *NoteClient) Collection() *Collection[types.Note] { return c.notes }

// List returns the note list, reading only when the cache is stale.
func (c *NoteClient) List(ctx context.Context) ([]types.Note, error) {
	return c.notes.Get(ctx)
}

// Cached returns the visible note list without reading.
func (c *NoteClient) Cached() []types.Note {
	return c.notes.Snapshot()
}

// Create inserts a placeholder note with the title and date defaults
// filled in, and saves it in the background.
func (c *NoteClient) Create(ctx context.Context, in types.NoteInput) (*Pending[types.Note], error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	now := c.notes.opts.Now()
	placeholder := in.NewNote(now)
	placeholder.ID = NewTemporaryID()
	placeholder.CreatedAt = now.UTC()
	placeholder.UpdatedAt = now.UTC()

	return mutate(ctx, c.notes, mutation[types.Note, types.Note]{
		action:     "create note",
		success:    func(types.Note) string { return "Note created" },
		optimistic: insertHead(placeholder),
		call: func(ctx context.Context) (types.Note, error) {
			return c.store.Create(ctx, in)
		},
		confirmed: func(n types.Note) func([]types.Note) []types.Note {
			return reconcileCreate(placeholder.ID, n)
		},
	}), nil
}

// Update applies patch to the cached note and saves it in the background.
func (c *NoteClient) Update(ctx context.Context, id string, patch types.NotePatch) (*Pending[types.Note], error) {
	if err := checkTarget(id); err != nil {
		return nil, err
	}
	if err := patch.Validate(); err != nil {
		return nil, err
	}

	return mutate(ctx, c.notes, mutation[types.Note, types.Note]{
		action:     "update note",
		success:    func(types.Note) string { return "Note updated" },
		optimistic: patchRecord(id, patch.Apply),
		call: func(ctx context.Context) (types.Note, error) {
			return c.store.Update(ctx, id, patch)
		},
		confirmed: replaceRecord[types.Note],
		notFound:  removeRecord[types.Note](id),
	}), nil
}

// Delete removes the note from the cache and deletes it in the background.
func (c *NoteClient) Delete(ctx context.Context, id string) (*Pending[struct{}], error) {
	if err := checkTarget(id); err != nil {
		return nil, err
	}

	gone := removeRecord[types.Note](id)
	return mutate(ctx, c.notes, mutation[types.Note, struct{}]{
		action:     "delete note",
		success:    func(struct{}) string { return "Note deleted" },
		optimistic: gone,
		call: func(ctx context.Context) (struct{}, error) {
			return struct{}{}, c.store.Remove(ctx, id)
		},
		confirmed: func(struct{}) func([]types.Note) []types.Note { return gone },
		notFound:  gone,
	}), nil
}
