// Copyright (c) 2026 Veilpoll Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package registry

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

// TestConcurrentDuplicateSubmissions verifies that racing submissions from
// the same respondent can never both land: exactly one wins, the rest fail
// with the duplicate error.
func TestConcurrentDuplicateSubmissions(t *testing.T) {
	reg, _ := newTestRegistry()
	pollID, _ := reg.CreatePoll("creator", "Rate the service", 1, 5, baseTime.Add(time.Hour))

	const attempts = 20
	var successes, duplicates atomic.Int32
	var wg sync.WaitGroup

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(seed byte) {
			defer wg.Done()
			err := reg.SubmitResponse(pollID, "r1", payload(seed))
			switch {
			case err == nil:
				successes.Add(1)
			case errors.Is(err, ErrDuplicateResponse):
				duplicates.Add(1)
			default:
				t.Errorf("SubmitResponse() unexpected error = %v", err)
			}
		}(byte(i))
	}
	wg.Wait()

	if successes.Load() != 1 {
		t.Errorf("successes = %d, want exactly 1", successes.Load())
	}
	if duplicates.Load() != attempts-1 {
		t.Errorf("duplicates = %d, want %d", duplicates.Load(), attempts-1)
	}

	poll, _ := reg.Poll(pollID)
	responses, _ := reg.Responses(pollID)
	if poll.ResponseCount != 1 || len(responses) != 1 {
		t.Errorf("ResponseCount = %d, len(responses) = %d, want 1 and 1", poll.ResponseCount, len(responses))
	}
	if got := reg.RespondedBy("r1"); len(got) != 1 {
		t.Errorf("RespondedBy() = %v, want a single entry", got)
	}
}

// TestConcurrentCreatesUniqueIDs verifies that racing creations never share
// an id.
func TestConcurrentCreatesUniqueIDs(t *testing.T) {
	reg, _ := newTestRegistry()

	const creators = 50
	ids := make([]uint64, creators)
	var wg sync.WaitGroup

	for i := 0; i < creators; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			id, err := reg.CreatePoll("creator", "Rate the service", 1, 5, baseTime.Add(time.Hour))
			if err != nil {
				t.Errorf("CreatePoll() error = %v", err)
				return
			}
			ids[idx] = id
		}(i)
	}
	wg.Wait()

	seen := make(map[uint64]bool, creators)
	for _, id := range ids {
		if seen[id] {
			t.Fatalf("duplicate poll id %d", id)
		}
		seen[id] = true
	}
	if got := reg.ActivePolls(creators + 1); len(got) != creators {
		t.Errorf("ActivePolls() = %d polls, want %d", len(got), creators)
	}
}

// TestConcurrentDistinctRespondents verifies the counter matches the ledger
// under parallel submissions from different respondents.
func TestConcurrentDistinctRespondents(t *testing.T) {
	reg, _ := newTestRegistry()
	pollID, _ := reg.CreatePoll("creator", "Rate the service", 1, 5, baseTime.Add(time.Hour))

	const respondents = 32
	var wg sync.WaitGroup
	for i := 0; i < respondents; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			respondent := "respondent-" + string(rune('A'+idx%26)) + string(rune('a'+idx/26))
			if err := reg.SubmitResponse(pollID, respondent, payload(byte(idx))); err != nil {
				t.Errorf("SubmitResponse() error = %v", err)
			}
		}(i)
	}
	wg.Wait()

	poll, _ := reg.Poll(pollID)
	responses, _ := reg.Responses(pollID)
	if poll.ResponseCount != respondents || len(responses) != respondents {
		t.Errorf("ResponseCount = %d, len(responses) = %d, want %d", poll.ResponseCount, len(responses), respondents)
	}
}
