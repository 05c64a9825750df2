// Package watch provides a single-slot, latest-value-wins broadcast cell.
//
// A Value holds one current item. Setting it wakes every subscribed
// Receiver; a receiver that is slow to drain its Changed channel misses
// intermediate values but is guaranteed a pending notification for the most
// recent one, because the notification slot is armed on every Set and
// Latest always reads the current slot. That terminal-value guarantee is
// what shutdown signalling over a Value relies on.
package watch

import "sync"

// Value is a shared cell observed by any number of receivers.
type Value[T any] struct {
	mu        sync.Mutex
	latest    T
	receivers map[*Receiver[T]]struct{}
}

// NewValue creates a Value holding initial.
func NewValue[T any](initial T) *Value[T] {
	return &Value[T]{
		latest:    initial,
		receivers: make(map[*Receiver[T]]struct{}),
	}
}

// Set replaces the current value and notifies all receivers.
func (v *Value[T]) Set(val T) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.latest = val
	for r := range v.receivers {
		select {
		case r.changed <- struct{}{}:
		default: // notification already pending, latest wins
		}
	}
}

// Latest returns the current value.
func (v *Value[T]) Latest() T {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.latest
}

// Subscribe registers a new receiver. The receiver starts with no pending
// notification; callers that need the current value first should read
// Latest before waiting on Changed.
func (v *Value[T]) Subscribe() *Receiver[T] {
	r := &Receiver[T]{
		value:   v,
		changed: make(chan struct{}, 1),
	}
	v.mu.Lock()
	v.receivers[r] = struct{}{}
	v.mu.Unlock()
	return r
}

// Receiver observes a Value.
type Receiver[T any] struct {
	value   *Value[T]
	changed chan struct{}
}

// Changed delivers one notification per burst of Sets since the last drain.
func (r *Receiver[T]) Changed() <-chan struct{} {
	return r.changed
}

// Latest returns the observed Value's current item.
func (r *Receiver[T]) Latest() T {
	return r.value.Latest()
}

// Close unregisters the receiver. Pending notifications remain readable.
func (r *Receiver[T]) Close() {
	r.value.mu.Lock()
	delete(r.value.receivers, r)
	r.value.mu.Unlock()
}
