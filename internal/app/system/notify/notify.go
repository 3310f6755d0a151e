// Package notify is a minimal observer registry. Subscribers register a
// zero-argument callback and are told "something changed"; they re-read
// whatever state they need themselves. No payload travels on the bus.
package notify

import "sync"

type subscription struct {
	id uint64
	fn func()
}

// Bus fans a notification out to every registered callback, synchronously and
// in registration order. The zero value is ready to use.
type Bus struct {
	mu     sync.Mutex
	subs   []subscription
	nextID uint64
}

// New returns an empty Bus.
func New() *Bus {
	return &Bus{}
}

// Subscribe registers fn and returns a function that removes exactly this
// registration. Calling the returned function more than once is harmless.
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
			// Build a new slice so snapshots held by an in-flight Notify stay intact.
			next := make([]subscription, 0, len(b.subs)-1)
			next = append(next, b.subs[:i]...)
			b.subs = append(next, b.subs[i+1:]...)
			return
		}
	}
}

// Notify invokes every callback registered at the moment of the call.
// Callbacks run outside the bus lock, so they may subscribe or unsubscribe
// (themselves or others) without affecting the current round.
func (b *Bus) Notify() {
	if b == nil {
		return
	}
	b.mu.Lock()
	snapshot := b.subs
	b.mu.Unlock()

	for _, s := range snapshot {
		s.fn()
	}
}

// Len returns the number of live subscriptions.
func (b *Bus) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subs)
}
