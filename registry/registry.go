// Copyright (c) 2026 Veilpoll Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package registry

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/veilpoll/veilpoll/events"
	"github.com/veilpoll/veilpoll/models"
)

// Granter is the encryption provider's access-control hook. After a response
// is accepted, the registry grants decryption capability on the stored
// ciphertext handle to the respondent and the poll creator.
type Granter interface {
	Allow(handle []byte, identities ...string)
}

// Journal receives every accepted mutation so state can be rebuilt after a
// restart. Journal failures are logged and never unwind the in-memory commit.
type Journal interface {
	PollCreated(p models.Poll) error
	PollClosed(pollID uint64) error
	ResponseRecorded(pollID uint64, seq int, resp models.EncryptedResponse) error
}

// Registry is the authoritative poll registry and response ledger. All state
// is guarded by one mutex; every mutating operation performs its checks and
// its writes as a single critical section, and side effects (journal, events,
// capability grants) run only after the lock is released.
type Registry struct {
	mu     sync.RWMutex
	nextID uint64

	// Arena-style storage: polls are never deleted and ids are dense, so
	// the slot index is the poll id. The three slices grow in lockstep.
	polls     []*models.Poll
	responses [][]models.EncryptedResponse
	responded []map[string]bool

	createdBy   map[string][]uint64
	respondedBy map[string][]uint64

	now       func() time.Time
	publisher events.Publisher
	granter   Granter
	journal   Journal
}

type Option func(*Registry)

// WithClock replaces the wall clock, used by tests to control expiry.
func WithClock(now func() time.Time) Option {
	return func(r *Registry) { r.now = now }
}

func WithPublisher(p events.Publisher) Option {
	return func(r *Registry) { r.publisher = p }
}

func WithGranter(g Granter) Option {
	return func(r *Registry) { r.granter = g }
}

func WithJournal(j Journal) Option {
	return func(r *Registry) { r.journal = j }
}

func New(opts ...Option) *Registry {
	r := &Registry{
		createdBy:   make(map[string][]uint64),
		respondedBy: make(map[string][]uint64),
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// CreatePoll validates the poll parameters, allocates the next sequential id
// and stores the poll as active. The creator is recorded in the "created"
// reverse index and a PollCreated event is emitted.
func (r *Registry) CreatePoll(creatorID, question string, minValue, maxValue int64, endTime time.Time) (uint64, error) {
	now := r.now()

	if question == "" {
		return 0, &ValidationError{Field: "question", Reason: "must not be empty"}
	}
	if minValue >= maxValue {
		return 0, &ValidationError{Field: "range", Reason: "min_value must be less than max_value"}
	}
	if !endTime.After(now) {
		return 0, &ValidationError{Field: "end_time", Reason: "must be in the future"}
	}

	r.mu.Lock()
	id := r.nextID
	r.nextID++
	poll := &models.Poll{
		ID:        id,
		CreatorID: creatorID,
		Question:  question,
		MinValue:  minValue,
		MaxValue:  maxValue,
		EndTime:   endTime,
		CreatedAt: now,
		IsActive:  true,
	}
	r.polls = append(r.polls, poll)
	r.responses = append(r.responses, nil)
	r.responded = append(r.responded, make(map[string]bool))
	r.createdBy[creatorID] = append(r.createdBy[creatorID], id)
	snapshot := *poll
	r.mu.Unlock()

	r.record("create", func(j Journal) error { return j.PollCreated(snapshot) })

	e := events.NewEvent(events.TypePollCreated, id, now)
	e.CreatorID = creatorID
	e.Question = question
	e.MinValue = minValue
	e.MaxValue = maxValue
	e.EndTime = endTime
	r.publish(e)

	return id, nil
}

// SubmitResponse appends an encrypted response to a poll's ledger. The five
// preconditions are checked in order, each with its own error, and together
// with the mutation form one atomic unit: a failed call leaves no trace.
func (r *Registry) SubmitResponse(pollID uint64, respondentID string, payload models.ResponsePayload) error {
	now := r.now()

	r.mu.Lock()
	poll, ok := r.lookup(pollID)
	if !ok {
		r.mu.Unlock()
		return ErrPollNotFound
	}
	if !poll.IsActive {
		r.mu.Unlock()
		return ErrPollInactive
	}
	// A poll can be past its deadline while still marked active; expiry is
	// re-derived here regardless of the activity check above.
	if now.After(poll.EndTime) {
		r.mu.Unlock()
		return ErrPollExpired
	}
	if r.responded[pollID][respondentID] {
		r.mu.Unlock()
		return ErrDuplicateResponse
	}
	if len(payload.Ciphertext) != models.HandleSize {
		r.mu.Unlock()
		return ErrInvalidPayload
	}

	resp := models.EncryptedResponse{
		RespondentID: respondentID,
		Payload:      payload,
		SubmittedAt:  now,
	}
	r.responses[pollID] = append(r.responses[pollID], resp)
	r.responded[pollID][respondentID] = true
	poll.ResponseCount++
	seq := len(r.responses[pollID]) - 1
	// First response by this respondent on this poll (the membership check
	// above guarantees it), so the reverse index cannot already hold the id.
	r.respondedBy[respondentID] = append(r.respondedBy[respondentID], pollID)
	creatorID := poll.CreatorID
	r.mu.Unlock()

	r.record("submit", func(j Journal) error { return j.ResponseRecorded(pollID, seq, resp) })
	if r.granter != nil {
		r.granter.Allow(payload.Ciphertext, respondentID, creatorID)
	}

	e := events.NewEvent(events.TypeResponseSubmitted, pollID, now)
	e.RespondentID = respondentID
	r.publish(e)

	return nil
}

// ClosePoll marks a poll inactive. Only the creator may close, and closing is
// one-way: there is no reopen.
func (r *Registry) ClosePoll(pollID uint64, callerID string) error {
	now := r.now()

	r.mu.Lock()
	poll, ok := r.lookup(pollID)
	if !ok {
		r.mu.Unlock()
		return ErrPollNotFound
	}
	if poll.CreatorID != callerID {
		r.mu.Unlock()
		return ErrNotCreator
	}
	if !poll.IsActive {
		r.mu.Unlock()
		return ErrAlreadyClosed
	}
	poll.IsActive = false
	creatorID := poll.CreatorID
	r.mu.Unlock()

	r.record("close", func(j Journal) error { return j.PollClosed(pollID) })

	e := events.NewEvent(events.TypePollClosed, pollID, now)
	e.CreatorID = creatorID
	r.publish(e)

	return nil
}

// Poll returns a snapshot copy of the poll record.
func (r *Registry) Poll(pollID uint64) (models.Poll, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	poll, ok := r.lookup(pollID)
	if !ok {
		return models.Poll{}, ErrPollNotFound
	}
	return *poll, nil
}

// OpenForResponses reports whether the poll currently accepts submissions,
// judged by the registry's clock. An unknown poll yields false.
func (r *Registry) OpenForResponses(pollID uint64) bool {
	now := r.now()

	r.mu.RLock()
	defer r.mu.RUnlock()
	poll, ok := r.lookup(pollID)
	return ok && poll.OpenForResponses(now)
}

// Responses returns a fresh snapshot of a poll's responses in submission
// order.
func (r *Registry) Responses(pollID uint64) ([]models.EncryptedResponse, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if _, ok := r.lookup(pollID); !ok {
		return nil, ErrPollNotFound
	}
	out := make([]models.EncryptedResponse, len(r.responses[pollID]))
	copy(out, r.responses[pollID])
	return out, nil
}

// HasResponded reports whether the identity has a recorded response for the
// poll. It never fails; an unknown poll yields false.
func (r *Registry) HasResponded(pollID uint64, identity string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if pollID >= uint64(len(r.polls)) {
		return false
	}
	return r.responded[pollID][identity]
}

// ActivePolls scans poll ids from the most recently created downward and
// returns up to limit ids that are active and unexpired. The order is
// creation-reverse-chronological only.
func (r *Registry) ActivePolls(limit int) []uint64 {
	now := r.now()

	r.mu.RLock()
	defer r.mu.RUnlock()
	ids := []uint64{}
	if limit <= 0 {
		return ids
	}
	for i := len(r.polls) - 1; i >= 0 && len(ids) < limit; i-- {
		if r.polls[i].OpenForResponses(now) {
			ids = append(ids, r.polls[i].ID)
		}
	}
	return ids
}

// CreatedBy returns the ids of polls created by the identity, oldest first.
func (r *Registry) CreatedBy(identity string) []uint64 {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]uint64{}, r.createdBy[identity]...)
}

// RespondedBy returns the ids of polls the identity has responded to, in
// submission order. Each id appears at most once.
func (r *Registry) RespondedBy(identity string) []uint64 {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]uint64{}, r.respondedBy[identity]...)
}

// Restore reinstates a journaled poll and its responses without validation.
// Polls must be restored in ascending id order; the sequence counter resumes
// past the highest restored id. Capability grants are re-issued for every
// restored response, since a grant is a permanent consequence of acceptance
// and the ledger itself is not journaled.
func (r *Registry) Restore(p models.Poll, responses []models.EncryptedResponse) error {
	r.mu.Lock()

	if p.ID != uint64(len(r.polls)) {
		r.mu.Unlock()
		return fmt.Errorf("restore out of order: expected poll %d, got %d", len(r.polls), p.ID)
	}

	poll := p
	poll.ResponseCount = len(responses)
	r.polls = append(r.polls, &poll)

	rs := append([]models.EncryptedResponse(nil), responses...)
	member := make(map[string]bool, len(rs))
	for _, resp := range rs {
		member[resp.RespondentID] = true
		r.respondedBy[resp.RespondentID] = append(r.respondedBy[resp.RespondentID], p.ID)
	}
	r.responses = append(r.responses, rs)
	r.responded = append(r.responded, member)
	r.createdBy[p.CreatorID] = append(r.createdBy[p.CreatorID], p.ID)
	r.nextID = p.ID + 1
	r.mu.Unlock()

	if r.granter != nil {
		for _, resp := range rs {
			r.granter.Allow(resp.Payload.Ciphertext, resp.RespondentID, p.CreatorID)
		}
	}
	return nil
}

// lookup must be called with the lock held.
func (r *Registry) lookup(pollID uint64) (*models.Poll, bool) {
	if pollID >= uint64(len(r.polls)) {
		return nil, false
	}
	return r.polls[pollID], true
}

func (r *Registry) record(op string, fn func(Journal) error) {
	if r.journal == nil {
		return
	}
	if err := fn(r.journal); err != nil {
		slog.Error("journal write failed", "op", op, "error", err)
	}
}

func (r *Registry) publish(e events.Event) {
	if r.publisher == nil {
		return
	}
	if err := r.publisher.Publish(context.Background(), e); err != nil {
		slog.Error("event publish failed", "type", e.Type, "poll_id", e.PollID, "error", err)
	}
}
