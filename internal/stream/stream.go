// Package stream provides the replay-latest publisher shared by the state
// owners: the last published value is retained and handed to every new
// subscriber immediately, so a late subscriber never starts without a value.
package stream

import "sync"

type entry[T any] struct {
	id int
	fn func(T)
}

// Stream holds the latest value of T and the registered observers.
// Publishes are synchronous: every observer runs before Publish returns,
// in registration order. There is no queuing or batching.
type Stream[T any] struct {
	mu     sync.Mutex
	last   T
	nextID int
	subs   []entry[T]
}

// New returns a Stream seeded with an initial value.
func New[T any](initial T) *Stream[T] {
	return &Stream[T]{last: initial}
}

// Current returns the last published value (or the seed).
func (s *Stream[T]) Current() T {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.last
}

// Subscribe registers fn and immediately replays the current value to it.
// The returned cancel func removes the observer; calling it twice is safe.
func (s *Stream[T]) Subscribe(fn func(T)) (cancel func()) {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.subs = append(s.subs, entry[T]{id: id, fn: fn})
	v := s.last
	s.mu.Unlock()

	fn(v)

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		for i, e := range s.subs {
			if e.id == id {
				s.subs = append(s.subs[:i:i], s.subs[i+1:]...)
				return
			}
		}
	}
}

// Publish stores v and delivers it to every subscriber in registration order.
func (s *Stream[T]) Publish(v T) {
	s.mu.Lock()
	s.last = v
	subs := make([]entry[T], len(s.subs))
	copy(subs, s.subs)
	s.mu.Unlock()

	for _, e := range subs {
		e.fn(v)
	}
}
