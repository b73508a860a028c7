package cache

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/google/uuid"

	"github.com/mesh-intelligence/taskdesk/pkg/types"
)

// TemporaryIDPrefix marks the id of an optimistic placeholder. Backends
// never assign ids with this prefix.
const TemporaryIDPrefix = "temp-"

// NewTemporaryID returns a fresh placeholder id.
func NewTemporaryID() string {
	return TemporaryIDPrefix + uuid.NewString()
}

// IsTemporaryID reports whether id belongs to an optimistic placeholder.
func IsTemporaryID(id string) bool {
	return strings.HasPrefix(id, TemporaryIDPrefix)
}

// Pending is the handle of a mutation whose backend call runs in the
// background. It resolves after the reconciling read that follows the call.
type Pending[R any] struct {
	done  chan struct{}
	value R
	err   error
}

func newPending[R any]() *Pending[R] {
	return &Pending[R]{done: make(chan struct{})}
}

// Done is closed once the mutation has settled.
func (p *Pending[R]) Done() <-chan struct{} { return p.done }

// Wait blocks until the mutation settles or ctx is done, and returns the
// backend's result.
func (p *Pending[R]) Wait(ctx context.Context) (R, error) {
	select {
	case <-ctx.Done():
		var zero R
		return zero, ctx.Err()
	case <-p.done:
		return p.value, p.err
	}
}

func (p *Pending[R]) resolve(value R, err error) {
	p.value = value
	p.err = err
	close(p.done)
}

// mutation describes one write: its optimistic effect, the backend call,
// and the overlays that replace the optimistic effect once the call
// settles.
type mutation[T Record, R any] struct {
	action     string // e.g. "create task", used in failure messages
	success    func(R) string
	optimistic func([]T) []T
	call       func(ctx context.Context) (R, error)
	confirmed  func(R) func([]T) []T
	notFound   func([]T) []T // nil keeps the rollback on not-found
}

// mutate runs m against c. The optimistic effect is visible when mutate
// returns; the backend call, settlement and reconciling read happen on a
// goroutine.
func mutate[T Record, R any](ctx context.Context, c *Collection[T], m mutation[T, R]) *Pending[R] {
	c.Cancel()
	o := c.push(m.optimistic)
	p := newPending[R]()

	go func() {
		callCtx, cancel := c.opts.mutationContext(ctx)
		value, err := m.call(callCtx)
		cancel()

		switch {
		case err == nil:
			c.confirm(o, m.confirmed(value))
			c.opts.Notifier.Notify(Notification{Level: LevelSuccess, Message: m.success(value)})
		case errors.Is(err, types.ErrNotFound) && m.notFound != nil:
			c.confirm(o, m.notFound)
			c.notifyFailure(m.action, err)
		default:
			c.discard(o)
			c.notifyFailure(m.action, err)
		}

		c.Refetch(context.WithoutCancel(ctx))
		p.resolve(value, err)
	}()

	return p
}

func (c *Collection[T]) notifyFailure(action string, err error) {
	c.opts.Notifier.Notify(Notification{
		Level:   LevelError,
		Message: fmt.Sprintf("Could not %s: %s", action, userMessage(err)),
		Err:     err,
	})
}

func userMessage(err error) string {
	return types.UserMessage(err)
}

// checkTarget rejects ids that no backend call could succeed on.
func checkTarget(id string) error {
	if id == "" {
		return types.ErrInvalidID
	}
	if IsTemporaryID(id) {
		return &types.ValidationError{Field: "id", Message: "the record is still being saved; try again in a moment"}
	}
	return nil
}

// Overlay builders. Each receives a private copy of the list.

func indexOf[T Record](items []T, id string) int {
	return slices.IndexFunc(items, func(v T) bool { return v.RecordID() == id })
}

// insertHead adds v at the head unless a record with its id is present.
func insertHead[T Record](v T) func([]T) []T {
	return func(items []T) []T {
		if indexOf(items, v.RecordID()) >= 0 {
			return items
		}
		return slices.Insert(items, 0, v)
	}
}

// patchRecord applies change to the record with id, if present.
func patchRecord[T Record](id string, change func(*T)) func([]T) []T {
	return func(items []T) []T {
		if i := indexOf(items, id); i >= 0 {
			change(&items[i])
		}
		return items
	}
}

// replaceRecord swaps in v for the record with its id, if present.
func replaceRecord[T Record](v T) func([]T) []T {
	return patchRecord(v.RecordID(), func(cur *T) { *cur = v })
}

// removeRecord drops the record with id.
func removeRecord[T Record](id string) func([]T) []T {
	return func(items []T) []T {
		return slices.DeleteFunc(items, func(v T) bool { return v.RecordID() == id })
	}
}

// reconcileCreate replaces placeholder tempID with the persisted record v.
func reconcileCreate[T Record](tempID string, v T) func([]T) []T {
	return func(items []T) []T {
		if i := indexOf(items, v.RecordID()); i >= 0 {
			items[i] = v
			return removeRecord[T](tempID)(items)
		}
		if i := indexOf(items, tempID); i >= 0 {
			items[i] = v
			return items
		}
		return slices.Insert(items, 0, v)
	}
}
