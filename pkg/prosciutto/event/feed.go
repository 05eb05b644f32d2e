// Package event provides typed observer lists used by the managers to announce
// state changes (screen changed, language changed, auth state changed, ...).
//
// Subscribers are invoked synchronously, in the order they subscribed, on the
// goroutine that calls Emit.
package event

import "sync"

// Feed is a list of subscribers for values of type T.
// The zero value is ready to use.
type Feed[T any] struct {
	mu     sync.Mutex
	subs   []*Subscription
	nextID uint64
}

// Subscription is returned by Subscribe and removes the subscriber when
// Unsubscribe is called.
type Subscription struct {
	id     uint64
	fn     any
	remove func(id uint64)
	once   sync.Once
}

// Subscribe registers fn to be called on every Emit.
func (f *Feed[T]) Subscribe(fn func(T)) *Subscription {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.nextID++
	sub := &Subscription{id: f.nextID, fn: fn, remove: f.remove}
	f.subs = append(f.subs, sub)
	return sub
}

// Unsubscribe removes the subscriber. Calling it more than once is harmless.
func (s *Subscription) Unsubscribe() {
	if s == nil {
		return
	}
	s.once.Do(func() {
		s.remove(s.id)
	})
}

func (f *Feed[T]) remove(id uint64) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for i, sub := range f.subs {
		if sub.id == id {
			f.subs = append(f.subs[:i:i], f.subs[i+1:]...)
			return
		}
	}
}

// Emit delivers v to a snapshot of the current subscribers. Subscribers added
// or removed while Emit runs take effect on the next Emit.
func (f *Feed[T]) Emit(v T) {
	f.mu.Lock()
	snapshot := make([]*Subscription, len(f.subs))
	copy(snapshot, f.subs)
	f.mu.Unlock()

	for _, sub := range snapshot {
		sub.fn.(func(T))(v)
	}
}

// Len returns the number of active subscribers.
func (f *Feed[T]) Len() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.subs)
}

// Clear drops every subscriber.
func (f *Feed[T]) Clear() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.subs = nil
}
