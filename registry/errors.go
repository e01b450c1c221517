// Copyright (c) 2026 Veilpoll Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package registry

import (
	"errors"
	"fmt"
)

var (
	ErrPollNotFound      = errors.New("poll not found")
	ErrNotCreator        = errors.New("caller is not the poll creator")
	ErrAlreadyClosed     = errors.New("poll is already closed")
	ErrPollInactive      = errors.New("poll is not active")
	ErrPollExpired       = errors.New("poll deadline has passed")
	ErrDuplicateResponse = errors.New("respondent has already submitted a response")
	ErrInvalidPayload    = errors.New("response payload is malformed")
)

// ValidationError reports a rejected CreatePoll argument, naming the field
// that failed. No registry state is mutated when one is returned.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}
