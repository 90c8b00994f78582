// Package pubsub provides a state holder, which pushes every new
// snapshot of the state to its subscribers.
package pubsub

import "sync"

// Value holds the latest snapshot of some state and broadcasts
// its changes. Each subscriber has a single-slot mailbox, so a slow
// subscriber skips intermediate snapshots and always reads the latest one.
type Value[T any] struct {
	mu   sync.Mutex
	val  T
	subs map[uint64]chan T
	seq  uint64
}

// NewValue makes a new Value with the given initial snapshot.
func NewValue[T any](initial T) *Value[T] {
	return &Value[T]{val: initial, subs: map[uint64]chan T{}}
}

// Get returns the current snapshot.
func (v *Value[T]) Get() T {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.val
}

// Set replaces the snapshot and notifies subscribers.
func (v *Value[T]) Set(val T) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.val = val
	v.publish()
}

// Update applies fn to the current snapshot, stores and publishes the result.
// fn is called under the lock and must not call methods of v.
func (v *Value[T]) Update(fn func(T) T) T {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.val = fn(v.val)
	v.publish()
	return v.val
}

// Subscribe returns a channel that receives the current snapshot
// immediately and every following one. The returned function cancels
// the subscription and closes the channel, it is safe to call it twice.
func (v *Value[T]) Subscribe() (<-chan T, func()) {
	v.mu.Lock()
	defer v.mu.Unlock()

	id := v.seq
	v.seq++

	ch := make(chan T, 1)
	ch <- v.val
	v.subs[id] = ch

	once := sync.Once{}
	return ch, func() {
		once.Do(func() {
			v.mu.Lock()
			defer v.mu.Unlock()
			delete(v.subs, id)
			close(ch)
		})
	}
}

// publish must be called under the lock, as only the publisher sends
// to the mailboxes, the send after draining never blocks.
func (v *Value[T]) publish() {
	for _, ch := range v.subs {
		select {
		case <-ch:
		default:
		}
		ch <- v.val
	}
}
