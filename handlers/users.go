// Copyright (c) 2026 Veilpoll Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"log/slog"
	"net/http"

	"github.com/veilpoll/veilpoll/auth"
	"github.com/veilpoll/veilpoll/cliparse"
	"github.com/veilpoll/veilpoll/middleware"
	"github.com/veilpoll/veilpoll/models"
	"github.com/veilpoll/veilpoll/registry"
)

type UserHandler struct {
	reg *registry.Registry
	cfg cliparse.Config
}

func NewUserHandler(reg *registry.Registry, cfg cliparse.Config) *UserHandler {
	return &UserHandler{reg: reg, cfg: cfg}
}

// NewIdentity handles POST /identities
// Mints a fresh identity and its token. Identity issuance is deliberately
// thin; the registry trusts whatever identity the token resolves to.
func (h *UserHandler) NewIdentity(w http.ResponseWriter, r *http.Request) {
	identity, token, err := auth.NewIdentity(h.cfg.IdentitySalt)
	if err != nil {
		slog.Error("failed to mint identity", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create identity")
		return
	}

	slog.Info("identity issued", "identity", identity)

	middleware.JSONResponse(w, http.StatusCreated, models.NewIdentityResponse{
		Identity: identity,
		Token:    token,
	})
}

// GetUserPolls handles GET /users/{identity}/polls
// Returns ids of polls the identity created, oldest first.
func (h *UserHandler) GetUserPolls(w http.ResponseWriter, r *http.Request) {
	identity := r.PathValue("identity")
	if identity == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "identity is required")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.UserPollsResponse{
		Identity: identity,
		PollIDs:  h.reg.CreatedBy(identity),
	})
}

// GetUserResponses handles GET /users/{identity}/responses
// Returns ids of polls the identity responded to, each at most once.
func (h *UserHandler) GetUserResponses(w http.ResponseWriter, r *http.Request) {
	identity := r.PathValue("identity")
	if identity == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "identity is required")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.UserPollsResponse{
		Identity: identity,
		PollIDs:  h.reg.RespondedBy(identity),
	})
}
