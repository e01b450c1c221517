// Copyright (c) 2026 Veilpoll Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"net/http"

	"github.com/veilpoll/veilpoll/cliparse"
	"github.com/veilpoll/veilpoll/events"
	"github.com/veilpoll/veilpoll/grants"
	"github.com/veilpoll/veilpoll/handlers"
	"github.com/veilpoll/veilpoll/middleware"
	"github.com/veilpoll/veilpoll/registry"
)

func NewRouter(reg *registry.Registry, hub *events.Hub, ledger *grants.Ledger, cfg cliparse.Config) *http.ServeMux {
	mux := http.NewServeMux()

	// Initialize handlers
	pollHandler := handlers.NewPollHandler(reg, cfg)
	responseHandler := handlers.NewResponseHandler(reg, cfg)
	userHandler := handlers.NewUserHandler(reg, cfg)
	grantHandler := handlers.NewGrantHandler(ledger)
	streamHandler := handlers.NewStreamHandler(reg, hub)

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Identity issuance
	mux.HandleFunc("POST /identities", middleware.WithLogging(userHandler.NewIdentity))

	// Poll lifecycle (authenticated)
	mux.HandleFunc("POST /polls", middleware.WithLogging(pollHandler.CreatePoll))
	mux.HandleFunc("POST /polls/{id}/close", middleware.WithLogging(pollHandler.ClosePoll))

	// Response ledger
	mux.HandleFunc("POST /polls/{id}/responses", middleware.WithLogging(responseHandler.SubmitResponse))
	mux.HandleFunc("GET /polls/{id}/responses", middleware.WithLogging(responseHandler.GetResponses))
	mux.HandleFunc("GET /polls/{id}/responded", middleware.WithLogging(responseHandler.CheckResponded))

	// Queries
	mux.HandleFunc("GET /polls/active", middleware.WithLogging(pollHandler.GetActivePolls))
	mux.HandleFunc("GET /polls/{id}", middleware.WithLogging(pollHandler.GetPoll))
	mux.HandleFunc("GET /users/{identity}/polls", middleware.WithLogging(userHandler.GetUserPolls))
	mux.HandleFunc("GET /users/{identity}/responses", middleware.WithLogging(userHandler.GetUserResponses))

	// Capability grants (encryption provider's access-control layer)
	mux.HandleFunc("GET /handles/{handle}/grants", middleware.WithLogging(grantHandler.GetGrants))

	// Event stream (long-lived, not wrapped in request logging)
	mux.HandleFunc("GET /polls/{id}/events", streamHandler.Events)

	// Root endpoint
	mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("veilpoll API v1"))
	})

	return mux
}
