// Copyright (c) 2026 Veilpoll Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package events

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Event types, one per successful registry mutation.
const (
	TypePollCreated       = "PollCreated"
	TypeResponseSubmitted = "ResponseSubmitted"
	TypePollClosed        = "PollClosed"
)

// Event is one mutation notification. Fields beyond Type and PollID are
// populated per type: PollCreated carries the creator, question, range and
// deadline; ResponseSubmitted the respondent; PollClosed the creator.
type Event struct {
	ID           string    `json:"id"`
	Type         string    `json:"type"`
	PollID       uint64    `json:"poll_id"`
	CreatorID    string    `json:"creator_id,omitempty"`
	RespondentID string    `json:"respondent_id,omitempty"`
	Question     string    `json:"question,omitempty"`
	MinValue     int64     `json:"min_value,omitempty"`
	MaxValue     int64     `json:"max_value,omitempty"`
	EndTime      time.Time `json:"end_time,omitzero"`
	At           time.Time `json:"at"`
}

// NewEvent builds an event with a fresh unique id.
func NewEvent(eventType string, pollID uint64, at time.Time) Event {
	return Event{
		ID:     uuid.NewString(),
		Type:   eventType,
		PollID: pollID,
		At:     at,
	}
}

// Publisher delivers mutation events to subscribers or an external broker.
type Publisher interface {
	Publish(ctx context.Context, e Event) error
	Close() error
}
