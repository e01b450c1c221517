// Copyright (c) 2026 Veilpoll Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package events

import (
	"context"
	"sync"
)

const subscriberBuffer = 16

type subscriber struct {
	pollID uint64
	all    bool
	ch     chan Event
	once   sync.Once
}

func (s *subscriber) close() {
	s.once.Do(func() { close(s.ch) })
}

// Hub is an in-process fan-out publisher. Subscribers receive events on a
// buffered channel; a subscriber that falls behind is dropped rather than
// allowed to block the publishing path.
type Hub struct {
	mu     sync.Mutex
	subs   map[*subscriber]struct{}
	closed bool
}

func NewHub() *Hub {
	return &Hub{subs: make(map[*subscriber]struct{})}
}

// Subscribe returns a channel of events for one poll and a cancel function.
// The channel is closed on cancel or when the hub shuts down.
func (h *Hub) Subscribe(pollID uint64) (<-chan Event, func()) {
	return h.add(&subscriber{pollID: pollID, ch: make(chan Event, subscriberBuffer)})
}

// SubscribeAll returns a channel carrying every event the hub publishes.
func (h *Hub) SubscribeAll() (<-chan Event, func()) {
	return h.add(&subscriber{all: true, ch: make(chan Event, subscriberBuffer)})
}

func (h *Hub) add(s *subscriber) (<-chan Event, func()) {
	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		s.close()
		return s.ch, func() {}
	}
	h.subs[s] = struct{}{}
	h.mu.Unlock()

	cancel := func() {
		h.mu.Lock()
		if _, ok := h.subs[s]; ok {
			delete(h.subs, s)
			s.close()
		}
		h.mu.Unlock()
	}
	return s.ch, cancel
}

// Publish delivers the event to every matching subscriber without blocking.
func (h *Hub) Publish(_ context.Context, e Event) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	for s := range h.subs {
		if !s.all && s.pollID != e.PollID {
			continue
		}
		select {
		case s.ch <- e:
		default:
			// Slow consumer: disconnect it instead of stalling publishers.
			delete(h.subs, s)
			s.close()
		}
	}
	return nil
}

// Close disconnects all subscribers. Further Publish calls are no-ops.
func (h *Hub) Close() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.closed = true
	for s := range h.subs {
		delete(h.subs, s)
		s.close()
	}
	return nil
}
