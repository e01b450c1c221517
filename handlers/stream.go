// Copyright (c) 2026 Veilpoll Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/coder/websocket"

	"github.com/veilpoll/veilpoll/events"
	"github.com/veilpoll/veilpoll/middleware"
	"github.com/veilpoll/veilpoll/registry"
)

type StreamHandler struct {
	reg *registry.Registry
	hub *events.Hub
}

func NewStreamHandler(reg *registry.Registry, hub *events.Hub) *StreamHandler {
	return &StreamHandler{reg: reg, hub: hub}
}

// Events handles GET /polls/{id}/events
// Upgrades to a websocket and streams the poll's mutation events as JSON
// until the client disconnects or falls too far behind.
func (h *StreamHandler) Events(w http.ResponseWriter, r *http.Request) {
	pollID, err := pollIDFromPath(r)
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid poll id")
		return
	}
	if _, err := h.reg.Poll(pollID); err != nil {
		writeRegistryError(w, err)
		return
	}

	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		OriginPatterns: []string{"*"},
	})
	if err != nil {
		slog.Error("websocket accept failed", "poll_id", pollID, "error", err)
		return
	}

	ch, cancel := h.hub.Subscribe(pollID)
	defer cancel()

	ctx := r.Context()
	for {
		select {
		case <-ctx.Done():
			conn.Close(websocket.StatusNormalClosure, "")
			return
		case e, ok := <-ch:
			if !ok {
				conn.Close(websocket.StatusNormalClosure, "")
				return
			}
			b, err := json.Marshal(e)
			if err != nil {
				slog.Error("failed to marshal event", "error", err)
				continue
			}
			if err := conn.Write(ctx, websocket.MessageText, b); err != nil {
				slog.Info("event stream closed", "poll_id", pollID, "error", err)
				return
			}
		}
	}
}
