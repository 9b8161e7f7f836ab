// Package notifier fans out message change events to any number of display
// consumers. Subscribers receive events on their own buffered channel;
// delivery is in-order per subscriber, and no ordering is promised across
// independent subscribers.
package notifier

import (
	"errors"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/lucmas92/message-wall/internal/models"
)

// ErrClosed is returned by Subscribe after the hub has been shut down.
// Callers must treat it as a hard failure, not silently fall back to polling.
var ErrClosed = errors.New("notifier: hub closed")

// subscriberBuffer is the per-subscriber channel capacity. A subscriber that
// falls this far behind starts losing events rather than blocking publishers.
const subscriberBuffer = 16

// Hub is an in-process publish/subscribe channel for message change events.
// All methods are safe for concurrent use.
type Hub struct {
	mu     sync.Mutex
	subs   map[int]chan models.Event
	nextID int
	closed bool
}

// NewHub creates an empty hub.
func NewHub() *Hub {
	return &Hub{subs: make(map[int]chan models.Event)}
}

// Subscribe registers a new consumer and returns its receive channel plus an
// unsubscribe function. Unsubscribing closes the channel, is safe to call
// before any event has arrived, and is an idempotent no-op after the first
// call. Unsubscribing one consumer never affects the others.
func (h *Hub) Subscribe() (<-chan models.Event, func(), error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return nil, nil, ErrClosed
	}

	id := h.nextID
	h.nextID++
	ch := make(chan models.Event, subscriberBuffer)
	h.subs[id] = ch

	unsubscribe := func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		if sub, ok := h.subs[id]; ok {
			delete(h.subs, id)
			close(sub)
		}
	}
	return ch, unsubscribe, nil
}

// Publish delivers the event to every current subscriber. Delivery is
// non-blocking: a subscriber whose buffer is full loses the event, which is
// acceptable for a display feed that can re-query the selector at any time.
func (h *Hub) Publish(ev models.Event) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return
	}
	for id, ch := range h.subs {
		select {
		case ch <- ev:
		default:
			log.Warn().Int("subscriber", id).Msg("notifier: subscriber buffer full, dropping event")
		}
	}
}

// Len returns the current subscriber count.
func (h *Hub) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs)
}

// Close shuts the hub down: every subscriber channel is closed and later
// Subscribe calls fail with ErrClosed. Close is idempotent.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return
	}
	h.closed = true
	for id, ch := range h.subs {
		delete(h.subs, id)
		close(ch)
	}
}
