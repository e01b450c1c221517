// Copyright (c) 2026 Veilpoll Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/dustin/go-humanize"

	"github.com/veilpoll/veilpoll/cliparse"
	"github.com/veilpoll/veilpoll/middleware"
	"github.com/veilpoll/veilpoll/models"
	"github.com/veilpoll/veilpoll/registry"
)

type PollHandler struct {
	reg *registry.Registry
	cfg cliparse.Config
}

func NewPollHandler(reg *registry.Registry, cfg cliparse.Config) *PollHandler {
	return &PollHandler{reg: reg, cfg: cfg}
}

// CreatePoll handles POST /polls
// The authenticated caller becomes the poll's creator.
func (h *PollHandler) CreatePoll(w http.ResponseWriter, r *http.Request) {
	creatorID, err := identityFromRequest(r, h.cfg.IdentitySalt)
	if err != nil {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Valid X-Identity-Token header required")
		return
	}

	var req models.CreatePollRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	pollID, err := h.reg.CreatePoll(creatorID, req.Question, req.MinValue, req.MaxValue, req.EndTime)
	if err != nil {
		writeRegistryError(w, err)
		return
	}

	slog.Info("poll created", "poll_id", pollID, "creator", creatorID)

	middleware.JSONResponse(w, http.StatusCreated, models.CreatePollResponse{
		PollID: pollID,
		EndsIn: humanize.Time(req.EndTime),
	})
}

// ClosePoll handles POST /polls/{id}/close
func (h *PollHandler) ClosePoll(w http.ResponseWriter, r *http.Request) {
	callerID, err := identityFromRequest(r, h.cfg.IdentitySalt)
	if err != nil {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Valid X-Identity-Token header required")
		return
	}

	pollID, err := pollIDFromPath(r)
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid poll id")
		return
	}

	if err := h.reg.ClosePoll(pollID, callerID); err != nil {
		writeRegistryError(w, err)
		return
	}

	slog.Info("poll closed", "poll_id", pollID, "creator", callerID)

	w.WriteHeader(http.StatusNoContent)
}

// GetPoll handles GET /polls/{id}
func (h *PollHandler) GetPoll(w http.ResponseWriter, r *http.Request) {
	pollID, err := pollIDFromPath(r)
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid poll id")
		return
	}

	poll, err := h.reg.Poll(pollID)
	if err != nil {
		writeRegistryError(w, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.PollView{
		Poll:    poll,
		Open:    h.reg.OpenForResponses(pollID),
		EndsIn:  humanize.Time(poll.EndTime),
		Created: humanize.Time(poll.CreatedAt),
	})
}

// GetActivePolls handles GET /polls/active?limit=N
// Returns up to limit active, unexpired poll ids, newest first.
func (h *PollHandler) GetActivePolls(w http.ResponseWriter, r *http.Request) {
	limit := 20 // default page size
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		parsed, err := strconv.Atoi(limitStr)
		if err != nil || parsed < 0 {
			middleware.ErrorResponse(w, http.StatusBadRequest, "limit must be a non-negative integer")
			return
		}
		limit = parsed
	}

	middleware.JSONResponse(w, http.StatusOK, models.ActivePollsResponse{
		PollIDs: h.reg.ActivePolls(limit),
	})
}
