// Package events provides the settings change bus.
//
// A Bus is a plain value owned by a session and handed to whoever publishes
// or observes changes. Subscribers receive no payload: on notification they
// re-read whatever state they care about.
package events

import "sync"

// Bus fans a change notification out to its subscribers.
// The zero value is ready to use.
type Bus struct {
	mu     sync.Mutex
	nextID uint64
	subs   []subscription
}

type subscription struct {
	id uint64
	fn func()
}

// Subscribe registers fn and returns a function that removes it.
// Calling the returned function more than once has no further effect.
func (b *Bus) Subscribe(fn func()) (unsubscribe func()) {
	b.mu.Lock()
	b.nextID++
	id := b.nextID
	b.subs = append(b.subs, subscription{id: id, fn: fn})
	b.mu.Unlock()

	var once sync.Once

	return func() {
		once.Do(func() { b.remove(id) })
	}
}

func (b *Bus) remove(id uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for i, s := range b.subs {
		if s.id == id {
			b.subs = append(b.subs[:i:i], b.subs[i+1:]...)
			return
		}
	}
}

// Publish calls every callback registered at the time of the call, in
// registration order, on the caller's goroutine. A panicking callback stops
// delivery and the panic reaches the caller.
func (b *Bus) Publish() {
	b.mu.Lock()
	snapshot := make([]func(), len(b.subs))
	for i, s := range b.subs {
		snapshot[i] = s.fn
	}
	b.mu.Unlock()

	for _, fn := range snapshot {
		fn()
	}
}

// Len returns the number of active subscribers.
func (b *Bus) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()

	return len(b.subs)
}
