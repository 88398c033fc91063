// Package observable holds a value of state behind a mutex and publishes every change to
// subscribers.
package observable

import "sync"

// Observable is safe for concurrent use. Snapshot returns the value as stored, so state types
// must treat their slices and maps as copy-on-write.
type Observable[S any] struct {
	mu     sync.RWMutex
	state  S
	subs   map[int]chan S
	nextID int
}

func New[S any](initial S) *Observable[S] {
	return &Observable[S]{
		state: initial,
		subs:  make(map[int]chan S),
	}
}

func (o *Observable[S]) Snapshot() S {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.state
}

// Update applies fn to the current state under the write lock and publishes the result.
func (o *Observable[S]) Update(fn func(S) S) S {
	o.mu.Lock()
	o.state = fn(o.state)
	next := o.state
	for _, ch := range o.subs {
		publish(ch, next)
	}
	o.mu.Unlock()
	return next
}

func (o *Observable[S]) Set(s S) {
	o.Update(func(S) S { return s })
}

// Subscribe returns a channel that always holds the most recent state. Slow subscribers miss
// intermediate states, never the latest one. The returned func unsubscribes.
func (o *Observable[S]) Subscribe() (<-chan S, func()) {
	ch := make(chan S, 1)

	o.mu.Lock()
	id := o.nextID
	o.nextID++
	o.subs[id] = ch
	ch <- o.state
	o.mu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			o.mu.Lock()
			delete(o.subs, id)
			close(ch)
			o.mu.Unlock()
		})
	}
}

func publish[S any](ch chan S, s S) {
	select {
	case <-ch:
	default:
	}
	ch <- s
}
