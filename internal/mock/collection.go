package mock

import (
	"slices"
	"sync"

	"github.com/mesh-intelligence/taskdesk/pkg/types"
)

// collection is a mutex-guarded, most-recent-first list of records.
// Callers only ever see copies.
type collection[T any] struct {
	mu    sync.Mutex
	items []T
	id    func(T) string
}

func newCollection[T any](seed []T, id func(T) string) *collection[T] {
	return &collection[T]{items: slices.Clone(seed), id: id}
}

// all returns a copy of the list, never nil.
func (c *collection[T]) all() []T {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]T, len(c.items))
	copy(out, c.items)
	return out
}

// prepend inserts v at the head.
func (c *collection[T]) prepend(v T) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.items = slices.Insert(c.items, 0, v)
}

// modify applies change to a copy of the record and stores it only when
// change succeeds.
func (c *collection[T]) modify(id string, change func(*T) error) (T, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var zero T
	i := c.index(id)
	if i < 0 {
		return zero, types.ErrNotFound
	}
	v := c.items[i]
	if err := change(&v); err != nil {
		return zero, err
	}
	c.items[i] = v
	return v, nil
}

// remove deletes the record. Returns ErrNotFound when it is absent.
func (c *collection[T]) remove(id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	i := c.index(id)
	if i < 0 {
		return types.ErrNotFound
	}
	c.items = slices.Delete(c.items, i, i+1)
	return nil
}

// index returns the position of id or -1. The caller must hold c.mu.
func (c *collection[T]) index(id string) int {
	return slices.IndexFunc(c.items, func(v T) bool { return c.id(v) == id })
}
