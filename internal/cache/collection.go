// Package cache holds the client-side view of each entity type and runs
// optimistic mutations against it.
//
// A Collection keeps the last authoritative read (the base) and a stack of
// overlays, one per mutation that has not yet been absorbed by a later
// read. The visible list is the base with every overlay applied in start
// order. A mutation pushes its optimistic overlay synchronously; on success
// the overlay is swapped for one that applies the backend's response, and
// on failure it is dropped. Dropping an overlay undoes only that mutation,
// so concurrent optimistic edits survive each other's failures. A
// confirmed overlay is discarded once a read that started after the
// confirmation lands.
//
// Reads are tagged with the collection generation. Cancel bumps the
// generation; a read from an older generation is discarded when it lands.
package cache

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"
)

// Record is a cached entity with a stable identifier.
type Record interface {
	RecordID() string
}

// FetchFunc loads the full collection from the backend.
type FetchFunc[T Record] func(ctx context.Context) ([]T, error)

// Collection is the cached, ordered list of one entity type.
type Collection[T Record] struct {
	name  string
	fetch FetchFunc[T]
	opts  Options

	mu        sync.Mutex
	base      []T
	view      []T
	loaded    bool
	fetchedAt time.Time
	invalid   bool
	gen       uint64 // bumped by Cancel and Refetch
	clock     uint64 // bumped by every read start
	inflight  *read[T]
	overlays  []*overlay[T]
}

// read is one backend list call shared by every waiter of its generation.
type read[T Record] struct {
	gen     uint64
	clock   uint64
	cancel  context.CancelFunc
	done    chan struct{}
	err     error
	current bool // still the latest generation when it landed
}

// overlay is one mutation's effect on the visible list. apply may modify
// the slice it is given in place.
type overlay[T Record] struct {
	apply     func([]T) []T
	confirmed bool
	clock     uint64 // read clock at confirmation
}

// NewCollection creates an empty collection that loads through fetch.
// name appears in notifications, e.g. "tasks".
func NewCollection[T Record](name string, fetch FetchFunc[T], opts Options) *Collection[T] {
	return &Collection[T]{
		name:  name,
		fetch: fetch,
		opts:  opts.withDefaults(),
		view:  []T{},
	}
}

// Name returns the entity name of the collection.
func (c *Collection[T]) Name() string { return c.name }

// Get returns the cached list while it is fresh. Otherwise it reads from
// the backend, joining a read already in flight. When the read it waited
// on was superseded, Get returns the current cache instead.
func (c *Collection[T]) Get(ctx context.Context) ([]T, error) {
	c.mu.Lock()
	if c.freshLocked() {
		out := slices.Clone(c.view)
		c.mu.Unlock()
		return out, nil
	}
	r := c.inflight
	if r == nil {
		r = c.startReadLocked()
	}
	c.mu.Unlock()

	return c.await(ctx, r)
}

// Refetch supersedes any read in flight and reads from the backend.
func (c *Collection[T]) Refetch(ctx context.Context) ([]T, error) {
	c.mu.Lock()
	c.supersedeLocked()
	r := c.startReadLocked()
	c.mu.Unlock()

	return c.await(ctx, r)
}

// Cancel abandons the read in flight. Its result is discarded if it lands.
func (c *Collection[T]) Cancel() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.supersedeLocked()
}

// Invalidate marks the cached list stale so the next Get reads again.
func (c *Collection[T]) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.invalid = true
}

// Snapshot returns a copy of the visible list. It never reads.
func (c *Collection[T]) Snapshot() []T {
	c.mu.Lock()
	defer c.mu.Unlock()

	return slices.Clone(c.view)
}

// Loaded reports whether at least one read has succeeded.
func (c *Collection[T]) Loaded() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.loaded
}

// Pending returns the number of mutations whose backend call has not
// settled.
func (c *Collection[T]) Pending() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	n := 0
	for _, o := range c.overlays {
		if !o.confirmed {
			n++
		}
	}
	return n
}

func (c *Collection[T]) freshLocked() bool {
	return c.loaded && !c.invalid && c.opts.Now().Sub(c.fetchedAt) < c.opts.StaleTime
}

func (c *Collection[T]) supersedeLocked() {
	c.gen++
	if c.inflight != nil {
		c.inflight.cancel()
		c.inflight = nil
	}
}

func (c *Collection[T]) startReadLocked() *read[T] {
	c.clock++
	ctx, cancel := context.WithCancel(context.Background())
	r := &read[T]{
		gen:    c.gen,
		clock:  c.clock,
		cancel: cancel,
		done:   make(chan struct{}),
	}
	c.inflight = r
	go c.run(ctx, r)
	return r
}

func (c *Collection[T]) run(ctx context.Context, r *read[T]) {
	defer r.cancel()
	items, err := c.fetchWithRetry(ctx)

	c.mu.Lock()
	r.current = r.gen == c.gen
	r.err = err
	if c.inflight == r {
		c.inflight = nil
	}
	if r.current && err == nil {
		if items == nil {
			items = []T{}
		}
		c.base = items
		c.loaded = true
		c.invalid = false
		c.fetchedAt = c.opts.Now()
		c.overlays = slices.DeleteFunc(c.overlays, func(o *overlay[T]) bool {
			return o.confirmed && o.clock < r.clock
		})
		c.recomputeLocked()
	}
	c.mu.Unlock()

	if r.current && err != nil {
		c.opts.Notifier.Notify(Notification{
			Level:   LevelError,
			Message: fmt.Sprintf("Could not load %s: %s", c.name, userMessage(err)),
			Err:     err,
		})
	}
	close(r.done)
}

func (c *Collection[T]) fetchWithRetry(ctx context.Context) ([]T, error) {
	for attempt := 0; ; attempt++ {
		items, err := c.fetch(ctx)
		if err == nil {
			return items, nil
		}
		if attempt >= c.opts.Retry || ctx.Err() != nil {
			return nil, err
		}

		timer := time.NewTimer(c.opts.RetryDelay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, err
		case <-timer.C:
		}
	}
}

func (c *Collection[T]) await(ctx context.Context, r *read[T]) ([]T, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-r.done:
	}
	if r.current && r.err != nil {
		return nil, r.err
	}
	return c.Snapshot(), nil
}

// push applies an optimistic overlay and returns it for settlement.
func (c *Collection[T]) push(apply func([]T) []T) *overlay[T] {
	c.mu.Lock()
	defer c.mu.Unlock()

	o := &overlay[T]{apply: apply}
	c.overlays = append(c.overlays, o)
	c.recomputeLocked()
	return o
}

// confirm replaces o's effect with apply and marks the list stale.
func (c *Collection[T]) confirm(o *overlay[T], apply func([]T) []T) {
	c.mu.Lock()
	defer c.mu.Unlock()

	o.apply = apply
	o.confirmed = true
	o.clock = c.clock
	c.invalid = true
	c.recomputeLocked()
}

// discard removes o, undoing only its effect.
func (c *Collection[T]) discard(o *overlay[T]) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.overlays = slices.DeleteFunc(c.overlays, func(x *overlay[T]) bool { return x == o })
	c.recomputeLocked()
}

func (c *Collection[T]) recomputeLocked() {
	items := slices.Clone(c.base)
	if items == nil {
		items = []T{}
	}
	for _, o := range c.overlays {
		items = o.apply(items)
	}
	c.view = items
}
