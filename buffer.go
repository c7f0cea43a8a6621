// Package handoff provides a blocking FIFO buffer for handing items from producers to
// consumers, with a single-slot, fixed-capacity or unbounded capacity policy.
package handoff

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/teenjuna/handoff/store"
)

// Buffer is a thread-safe FIFO handoff between any number of producers and consumers.
//
// [Buffer.Put] blocks while the buffer is full and [Buffer.Get] blocks while it is empty. When
// either is blocked, it can be aborted through its context, in which case it returns an error
// matching [ErrCancelled] and leaves the buffer exactly as it was.
//
// Items are returned in the order in which their puts completed. A buffer has no Close: callers
// stop blocked operations by cancelling their contexts.
type Buffer[Item any] struct {
	policy   Policy
	capacity int
	metrics  *metrics

	mu       sync.Mutex
	store    store.Store[Item]
	notFull  waiters
	notEmpty waiters
}

// New creates a buffer with the provided capacity policy and options.
//
// Returns an error matching [ErrConfig] if the policy is not set or its capacity is < 1.
func New[Item any](policy Policy, options ...Option) (*Buffer[Item], error) {
	if err := policy.validate(); err != nil {
		return nil, err
	}

	cfg := newConfig(options...)

	var s store.Store[Item]
	switch policy.kind {
	case policySingle:
		s = store.Cell[Item]()
	case policyFixed:
		s = store.Ring[Item](policy.capacity)
	case policyUnbounded:
		s = store.Queue[Item](cfg.queueSize)
	}

	capacity, _ := policy.Capacity()

	buffer := Buffer[Item]{
		policy:   policy,
		capacity: capacity,
		metrics:  cfg.prometheus.metrics(),
		store:    s,
	}

	return &buffer, nil
}

// Put appends the item to the tail of the buffer, blocking while the buffer is full.
//
// A done context only matters once the call has to wait: a put into a buffer with room always
// succeeds.
func (b *Buffer[Item]) Put(ctx context.Context, item Item) error {
	b.mu.Lock()
	if b.full() {
		started := time.Now()
		for b.full() {
			wake := b.notFull.wait()
			b.mu.Unlock()
			select {
			case <-ctx.Done():
				b.metrics.cancellations.WithLabelValues(opPut).Inc()
				b.metrics.waitSeconds.WithLabelValues(opPut).Observe(time.Since(started).Seconds())
				return cancelled(ctx)
			case <-wake:
			}
			b.mu.Lock()
		}
		b.metrics.waitSeconds.WithLabelValues(opPut).Observe(time.Since(started).Seconds())
	}
	b.push(item)
	b.mu.Unlock()
	return nil
}

// Get removes and returns the item at the head of the buffer, blocking while the buffer is
// empty.
func (b *Buffer[Item]) Get(ctx context.Context) (Item, error) {
	b.mu.Lock()
	if b.empty() {
		started := time.Now()
		for b.empty() {
			wake := b.notEmpty.wait()
			b.mu.Unlock()
			select {
			case <-ctx.Done():
				b.metrics.cancellations.WithLabelValues(opGet).Inc()
				b.metrics.waitSeconds.WithLabelValues(opGet).Observe(time.Since(started).Seconds())
				var zero Item
				return zero, cancelled(ctx)
			case <-wake:
			}
			b.mu.Lock()
		}
		b.metrics.waitSeconds.WithLabelValues(opGet).Observe(time.Since(started).Seconds())
	}
	item := b.pop()
	b.mu.Unlock()
	return item, nil
}

// TryPut appends the item if the buffer has room and reports whether it did. It never blocks.
func (b *Buffer[Item]) TryPut(item Item) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.full() {
		return false
	}
	b.push(item)
	return true
}

// TryGet removes and returns the head item if there is one. It never blocks.
func (b *Buffer[Item]) TryGet() (Item, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.empty() {
		var zero Item
		return zero, false
	}
	return b.pop(), true
}

// Len returns the number of items currently held.
func (b *Buffer[Item]) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.store.Len()
}

// Cap returns the maximum number of held items, or false if the buffer is unbounded.
func (b *Buffer[Item]) Cap() (int, bool) {
	return b.policy.Capacity()
}

// State returns the current occupancy of the buffer.
func (b *Buffer[Item]) State() State {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.state()
}

// Policy returns the capacity policy the buffer was created with.
func (b *Buffer[Item]) Policy() Policy {
	return b.policy
}

// Snapshot returns a copy of the held items, oldest first.
func (b *Buffer[Item]) Snapshot() []Item {
	b.mu.Lock()
	defer b.mu.Unlock()
	return slices.Collect(b.store.Iter())
}

func (b *Buffer[Item]) state() State {
	return occupancy(b.store.Len(), b.capacity)
}

func (b *Buffer[Item]) full() bool {
	return b.state() == Full
}

func (b *Buffer[Item]) empty() bool {
	return b.state() == Empty
}

// push and pop wake the other side only when occupancy leaves the state that side is
// blocked on.
func (b *Buffer[Item]) push(item Item) {
	before := b.state()
	b.store.Push(item)
	if before == Empty {
		b.notEmpty.broadcast()
	}
	b.metrics.puts.Inc()
	b.metrics.items.Inc()
}

func (b *Buffer[Item]) pop() Item {
	before := b.state()
	item := b.store.Pop()
	if before == Full {
		b.notFull.broadcast()
	}
	b.metrics.gets.Inc()
	b.metrics.items.Dec()
	return item
}
