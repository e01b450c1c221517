// Copyright (c) 2026 Veilpoll Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package events

import (
	"context"
	"testing"
	"time"
)

var eventTime = time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

func TestHubSubscribeFiltersByPoll(t *testing.T) {
	hub := NewHub()
	defer hub.Close()

	ch, cancel := hub.Subscribe(1)
	defer cancel()

	hub.Publish(context.Background(), NewEvent(TypePollCreated, 0, eventTime))
	hub.Publish(context.Background(), NewEvent(TypeResponseSubmitted, 1, eventTime))

	select {
	case e := <-ch:
		if e.PollID != 1 || e.Type != TypeResponseSubmitted {
			t.Errorf("received %+v, want the poll 1 event", e)
		}
	case <-time.After(time.Second):
		t.Fatal("no event received")
	}

	select {
	case e := <-ch:
		t.Errorf("received unexpected second event %+v", e)
	default:
	}
}

func TestHubSubscribeAll(t *testing.T) {
	hub := NewHub()
	defer hub.Close()

	ch, cancel := hub.SubscribeAll()
	defer cancel()

	hub.Publish(context.Background(), NewEvent(TypePollCreated, 0, eventTime))
	hub.Publish(context.Background(), NewEvent(TypePollClosed, 7, eventTime))

	first, second := <-ch, <-ch
	if first.PollID != 0 || second.PollID != 7 {
		t.Errorf("received polls %d, %d; want 0, 7 in order", first.PollID, second.PollID)
	}
}

func TestHubCancelClosesChannel(t *testing.T) {
	hub := NewHub()
	defer hub.Close()

	ch, cancel := hub.Subscribe(1)
	cancel()

	if _, ok := <-ch; ok {
		t.Error("channel still open after cancel")
	}

	// Publishing after cancel must not panic or deliver
	hub.Publish(context.Background(), NewEvent(TypePollCreated, 1, eventTime))
}

func TestHubDropsSlowConsumer(t *testing.T) {
	hub := NewHub()
	defer hub.Close()

	ch, cancel := hub.Subscribe(1)
	defer cancel()

	// Fill the buffer and one more; the overflowing event evicts the
	// subscriber instead of blocking the publisher.
	for i := 0; i <= subscriberBuffer; i++ {
		hub.Publish(context.Background(), NewEvent(TypeResponseSubmitted, 1, eventTime))
	}

	received := 0
	for range ch {
		received++
	}
	if received != subscriberBuffer {
		t.Errorf("received %d buffered events before close, want %d", received, subscriberBuffer)
	}
}

func TestHubClose(t *testing.T) {
	hub := NewHub()
	ch, _ := hub.Subscribe(1)

	if err := hub.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if _, ok := <-ch; ok {
		t.Error("channel still open after hub close")
	}

	// Subscribing after close yields an already-closed channel
	ch2, cancel := hub.Subscribe(2)
	defer cancel()
	if _, ok := <-ch2; ok {
		t.Error("subscription after close returned an open channel")
	}
}
