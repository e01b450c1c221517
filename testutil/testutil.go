// Copyright (c) 2026 Veilpoll Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/veilpoll/veilpoll/auth"
	"github.com/veilpoll/veilpoll/cliparse"
	"github.com/veilpoll/veilpoll/models"
	"github.com/veilpoll/veilpoll/registry"
)

// NewTestConfig returns a standard test configuration
func NewTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:         3318,
		DatabaseURL:  "file:veilpoll_test.db",
		DatabaseType: "sqlite",
		IdentitySalt: "test-identity-salt",
		KafkaTopic:   "veilpoll.events.test",
	}
}

// Clock is a controllable clock for expiry tests
type Clock struct {
	mu  sync.Mutex
	now time.Time
}

func NewClock(start time.Time) *Clock {
	return &Clock{now: start}
}

func (c *Clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *Clock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

// NewIdentity mints an identity and token under the test config's salt
func NewIdentity(t *testing.T, cfg cliparse.Config) (identity, token string) {
	t.Helper()

	identity, token, err := auth.NewIdentity(cfg.IdentitySalt)
	if err != nil {
		t.Fatalf("Failed to mint test identity: %v", err)
	}
	return identity, token
}

// Payload builds a well-formed deterministic encrypted payload
func Payload(seed byte) models.ResponsePayload {
	return models.ResponsePayload{
		Ciphertext: bytes.Repeat([]byte{seed}, models.HandleSize),
		Proof:      []byte{seed, 0xa5},
	}
}

// CreateTestPoll creates an open poll ending an hour from now
func CreateTestPoll(t *testing.T, reg *registry.Registry, creatorID string) uint64 {
	t.Helper()

	pollID, err := reg.CreatePoll(creatorID, "Rate the service", 1, 5, time.Now().Add(time.Hour))
	if err != nil {
		t.Fatalf("Failed to create test poll: %v", err)
	}
	return pollID
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
