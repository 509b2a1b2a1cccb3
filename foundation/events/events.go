// Package events distributes mining and chain events to any interested
// subscriber, such as a websocket handler streaming progress to a client.
package events

import (
	"fmt"
	"sync"
)

// Since a message is dropped when a subscriber is not ready to receive,
// this buffer gives a slow websocket writer room to catch up.
const messageBuffer = 100

// Events maintains a mapping of unique id and channels so goroutines
// can subscribe and receive events.
type Events struct {
	mu   sync.RWMutex
	subs map[string]chan string
}

// New constructs an events value for subscribing and publishing.
func New() *Events {
	return &Events{
		subs: make(map[string]chan string),
	}
}

// Shutdown closes and removes every subscription.
func (evt *Events) Shutdown() {
	evt.mu.Lock()
	defer evt.mu.Unlock()

	for id, ch := range evt.subs {
		delete(evt.subs, id)
		close(ch)
	}
}

// Acquire takes a unique id and returns a channel that can be used
// to receive events. Acquiring an id twice returns the same channel.
func (evt *Events) Acquire(id string) chan string {
	evt.mu.Lock()
	defer evt.mu.Unlock()

	if ch, exists := evt.subs[id]; exists {
		return ch
	}

	evt.subs[id] = make(chan string, messageBuffer)
	return evt.subs[id]
}

// Release closes and removes the channel that was provided by
// the call to Acquire.
func (evt *Events) Release(id string) error {
	evt.mu.Lock()
	defer evt.mu.Unlock()

	ch, exists := evt.subs[id]
	if !exists {
		return fmt.Errorf("id %q does not exist", id)
	}

	delete(evt.subs, id)
	close(ch)

	return nil
}

// Send publishes a formatted message to every subscriber. Send never
// blocks waiting for a receiver on any given channel.
func (evt *Events) Send(v string, args ...any) {
	evt.mu.RLock()
	defer evt.mu.RUnlock()

	msg := fmt.Sprintf(v, args...)
	for _, ch := range evt.subs {
		select {
		case ch <- msg:
		default:
		}
	}
}
