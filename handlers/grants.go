// Copyright (c) 2026 Veilpoll Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"encoding/hex"
	"net/http"

	"github.com/veilpoll/veilpoll/grants"
	"github.com/veilpoll/veilpoll/middleware"
	"github.com/veilpoll/veilpoll/models"
)

type GrantHandler struct {
	ledger *grants.Ledger
}

func NewGrantHandler(ledger *grants.Ledger) *GrantHandler {
	return &GrantHandler{ledger: ledger}
}

// GetGrants handles GET /handles/{handle}/grants
// The encryption provider's access-control layer queries this to learn which
// identities may request decryption of a handle.
func (h *GrantHandler) GetGrants(w http.ResponseWriter, r *http.Request) {
	handleHex := r.PathValue("handle")
	handle, err := hex.DecodeString(handleHex)
	if err != nil || len(handle) != models.HandleSize {
		middleware.ErrorResponse(w, http.StatusBadRequest, "handle must be a 32-byte hex string")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.GrantsResponse{
		Handle:     handleHex,
		Identities: h.ledger.Identities(handle),
	})
}
