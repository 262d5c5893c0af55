// Package events carries authChange notifications between in-process components.
package events

import (
	"sync"

	"github.com/jonathan/careerpath/internal/types"
)

// Handler receives an auth change.
type Handler func(types.AuthChange)

// Bus is a synchronous publish/subscribe channel for auth changes.
// Handlers run on the publisher's goroutine in subscription order.
type Bus struct {
	mu       sync.RWMutex
	nextID   int
	handlers []subscription
}

type subscription struct {
	id int
	fn Handler
}

// NewBus creates an empty bus.
func NewBus() *Bus {
	return &Bus{}
}

// Subscribe registers fn and returns a function that removes it.
func (b *Bus) Subscribe(fn Handler) (unsubscribe func()) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.nextID++
	id := b.nextID
	b.handlers = append(b.handlers, subscription{id: id, fn: fn})

	var once sync.Once
	return func() {
		once.Do(func() {
			b.mu.Lock()
			defer b.mu.Unlock()
			for i, s := range b.handlers {
				if s.id == id {
					b.handlers = append(b.handlers[:i:i], b.handlers[i+1:]...)
					return
				}
			}
		})
	}
}

// Publish delivers change to every current subscriber.
func (b *Bus) Publish(change types.AuthChange) {
	b.mu.RLock()
	snapshot := make([]Handler, len(b.handlers))
	for i, s := range b.handlers {
		snapshot[i] = s.fn
	}
	b.mu.RUnlock()

	for _, fn := range snapshot {
		fn(change)
	}
}

// Len returns the number of subscribers.
func (b *Bus) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.handlers)
}
