// Copyright (c) 2026 Veilpoll Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/veilpoll/veilpoll/auth"
	"github.com/veilpoll/veilpoll/middleware"
	"github.com/veilpoll/veilpoll/registry"
)

// writeRegistryError maps the registry's error taxonomy onto HTTP statuses.
func writeRegistryError(w http.ResponseWriter, err error) {
	var verr *registry.ValidationError
	switch {
	case errors.As(err, &verr):
		middleware.ErrorResponse(w, http.StatusBadRequest, verr.Error())
	case errors.Is(err, registry.ErrInvalidPayload):
		middleware.ErrorResponse(w, http.StatusBadRequest, "Response payload is malformed")
	case errors.Is(err, registry.ErrPollNotFound):
		middleware.ErrorResponse(w, http.StatusNotFound, "Poll not found")
	case errors.Is(err, registry.ErrNotCreator):
		middleware.ErrorResponse(w, http.StatusForbidden, "Only the poll creator may do this")
	case errors.Is(err, registry.ErrAlreadyClosed):
		middleware.ErrorResponse(w, http.StatusConflict, "Poll is already closed")
	case errors.Is(err, registry.ErrPollInactive):
		middleware.ErrorResponse(w, http.StatusConflict, "Poll is not active")
	case errors.Is(err, registry.ErrPollExpired):
		middleware.ErrorResponse(w, http.StatusConflict, "Poll deadline has passed")
	case errors.Is(err, registry.ErrDuplicateResponse):
		middleware.ErrorResponse(w, http.StatusConflict, "Already responded to this poll")
	default:
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Internal error")
	}
}

// identityFromRequest resolves the caller's identity from X-Identity-Token.
func identityFromRequest(r *http.Request, salt string) (string, error) {
	token := r.Header.Get("X-Identity-Token")
	if token == "" {
		return "", auth.ErrInvalidToken
	}
	return auth.VerifyToken(token, salt)
}

// pollIDFromPath parses the {id} path segment.
func pollIDFromPath(r *http.Request) (uint64, error) {
	return strconv.ParseUint(r.PathValue("id"), 10, 64)
}
