package cache

import (
	"context"
	"time"
)

// Defaults applied by Options when a field is left at its zero value.
const (
	DefaultStaleTime  = 5 * time.Second
	DefaultRetry      = 1
	DefaultRetryDelay = time.Second
)

// Options tunes a Collection and the mutations that run against it.
type Options struct {
	// StaleTime is the freshness window of a successful read. Zero means
	// DefaultStaleTime; a negative value makes every read go to the backend.
	StaleTime time.Duration

	// Retry is the number of automatic retries of a failed read. Zero means
	// DefaultRetry; a negative value disables retries.
	Retry int

	// RetryDelay is the pause before a retry. Zero means DefaultRetryDelay.
	RetryDelay time.Duration

	// MutationTimeout bounds each backend write. Zero leaves writes
	// unbounded.
	MutationTimeout time.Duration

	// Notifier receives the user-visible outcome of reads and writes.
	// Nil discards notifications.
	Notifier Notifier

	// Now is the clock used for freshness. Nil means time.Now.
	Now func() time.Time
}

func (o Options) withDefaults() Options {
	if o.StaleTime == 0 {
		o.StaleTime = DefaultStaleTime
	}
	if o.Retry == 0 {
		o.Retry = DefaultRetry
	}
	if o.Retry < 0 {
		o.Retry = 0
	}
	if o.RetryDelay <= 0 {
		o.RetryDelay = DefaultRetryDelay
	}
	if o.Notifier == nil {
		o.Notifier = discard{}
	}
	if o.Now == nil {
		o.Now = time.Now
	}
	return o
}

// mutationContext derives the context for one backend write.
func (o Options) mutationContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if o.MutationTimeout > 0 {
		return context.WithTimeout(ctx, o.MutationTimeout)
	}
	return context.WithCancel(ctx)
}
