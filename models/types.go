// Copyright (c) 2026 Veilpoll Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import "time"

// HandleSize is the exact byte length of a ciphertext handle produced by the
// encryption provider. The registry validates length only; the bytes are
// never interpreted.
const HandleSize = 32

// ResponsePayload is the opaque encrypted response: a fixed-size ciphertext
// handle plus an optional validity proof. Both fields are uninterpreted
// bytes from the encryption provider's point of view of this service.
type ResponsePayload struct {
	Ciphertext []byte `json:"ciphertext"`
	Proof      []byte `json:"proof,omitempty"`
}

// Poll is the authoritative poll record. All fields except ResponseCount and
// IsActive are immutable after creation.
type Poll struct {
	ID            uint64    `json:"id"`
	CreatorID     string    `json:"creator_id"`
	Question      string    `json:"question"`
	MinValue      int64     `json:"min_value"`
	MaxValue      int64     `json:"max_value"`
	EndTime       time.Time `json:"end_time"`
	CreatedAt     time.Time `json:"created_at"`
	ResponseCount int       `json:"response_count"`
	IsActive      bool      `json:"is_active"`
}

// OpenForResponses reports whether the poll accepts submissions at the given
// instant. Expiry is derived here on every call, never stored.
func (p Poll) OpenForResponses(now time.Time) bool {
	return p.IsActive && !now.After(p.EndTime)
}

// EncryptedResponse is one accepted submission. Immutable once recorded.
type EncryptedResponse struct {
	RespondentID string          `json:"respondent_id"`
	Payload      ResponsePayload `json:"payload"`
	SubmittedAt  time.Time       `json:"submitted_at"`
}

// Request types

type CreatePollRequest struct {
	Question string    `json:"question"`
	MinValue int64     `json:"min_value"`
	MaxValue int64     `json:"max_value"`
	EndTime  time.Time `json:"end_time"`
}

type SubmitResponseRequest struct {
	Ciphertext []byte `json:"ciphertext"`
	Proof      []byte `json:"proof,omitempty"`
}

// Response types

type CreatePollResponse struct {
	PollID uint64 `json:"poll_id"`
	EndsIn string `json:"ends_in"`
}

type PollView struct {
	Poll    Poll   `json:"poll"`
	Open    bool   `json:"open"`
	EndsIn  string `json:"ends_in"`
	Created string `json:"created"`
}

type ResponsesView struct {
	PollID    uint64              `json:"poll_id"`
	Responses []EncryptedResponse `json:"responses"`
}

type ActivePollsResponse struct {
	PollIDs []uint64 `json:"poll_ids"`
}

type UserPollsResponse struct {
	Identity string   `json:"identity"`
	PollIDs  []uint64 `json:"poll_ids"`
}

type RespondedResponse struct {
	PollID    uint64 `json:"poll_id"`
	Identity  string `json:"identity"`
	Responded bool   `json:"responded"`
}

type NewIdentityResponse struct {
	Identity string `json:"identity"`
	Token    string `json:"token"`
}

type GrantsResponse struct {
	Handle     string   `json:"handle"`
	Identities []string `json:"identities"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
