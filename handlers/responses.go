// Copyright (c) 2026 Veilpoll Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"log/slog"
	"net/http"

	"github.com/veilpoll/veilpoll/cliparse"
	"github.com/veilpoll/veilpoll/middleware"
	"github.com/veilpoll/veilpoll/models"
	"github.com/veilpoll/veilpoll/registry"
)

type ResponseHandler struct {
	reg *registry.Registry
	cfg cliparse.Config
}

func NewResponseHandler(reg *registry.Registry, cfg cliparse.Config) *ResponseHandler {
	return &ResponseHandler{reg: reg, cfg: cfg}
}

// SubmitResponse handles POST /polls/{id}/responses
// The body carries the encrypted payload produced by the encryption
// provider; the service stores it without interpretation.
func (h *ResponseHandler) SubmitResponse(w http.ResponseWriter, r *http.Request) {
	respondentID, err := identityFromRequest(r, h.cfg.IdentitySalt)
	if err != nil {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Valid X-Identity-Token header required")
		return
	}

	pollID, err := pollIDFromPath(r)
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid poll id")
		return
	}

	var req models.SubmitResponseRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	payload := models.ResponsePayload{
		Ciphertext: req.Ciphertext,
		Proof:      req.Proof,
	}

	if err := h.reg.SubmitResponse(pollID, respondentID, payload); err != nil {
		writeRegistryError(w, err)
		return
	}

	slog.Info("response submitted", "poll_id", pollID, "respondent", respondentID)

	w.WriteHeader(http.StatusCreated)
}

// GetResponses handles GET /polls/{id}/responses
// Returns the encrypted responses in submission order.
func (h *ResponseHandler) GetResponses(w http.ResponseWriter, r *http.Request) {
	pollID, err := pollIDFromPath(r)
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid poll id")
		return
	}

	responses, err := h.reg.Responses(pollID)
	if err != nil {
		writeRegistryError(w, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.ResponsesView{
		PollID:    pollID,
		Responses: responses,
	})
}

// CheckResponded handles GET /polls/{id}/responded?identity=X
func (h *ResponseHandler) CheckResponded(w http.ResponseWriter, r *http.Request) {
	pollID, err := pollIDFromPath(r)
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid poll id")
		return
	}

	identity := r.URL.Query().Get("identity")
	if identity == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "identity query parameter is required")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.RespondedResponse{
		PollID:    pollID,
		Identity:  identity,
		Responded: h.reg.HasResponded(pollID, identity),
	})
}
