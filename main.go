// Copyright (c) 2026 Veilpoll Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package main

import (
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/veilpoll/veilpoll/cliparse"
	"github.com/veilpoll/veilpoll/db"
	"github.com/veilpoll/veilpoll/events"
	"github.com/veilpoll/veilpoll/grants"
	"github.com/veilpoll/veilpoll/middleware"
	"github.com/veilpoll/veilpoll/registry"
	"github.com/veilpoll/veilpoll/router"
)

func main() {
	var err error

	// Parse configuration
	cfg, err := cliparse.ParseFlags(os.Args[1:])
	if err != nil {
		slog.Error("Error parsing flags", "error", err)
		os.Exit(1)
	}

	// Open the mutation journal
	journal, err := db.Open(cfg.DatabaseType, cfg.DatabaseURL)
	if err != nil {
		slog.Error("journal open failed", "error", err)
		os.Exit(1)
	}
	defer journal.Close()

	// Event publishing: in-process hub, plus Kafka when brokers are set
	hub := events.NewHub()
	defer hub.Close()
	var publisher events.Publisher = hub
	if len(cfg.KafkaBrokers) > 0 {
		kafkaPublisher := events.NewKafkaPublisher(cfg.KafkaBrokers, cfg.KafkaTopic)
		defer kafkaPublisher.Close()
		publisher = events.NewFanout(hub, kafkaPublisher)
		slog.Info("kafka publishing enabled", "brokers", cfg.KafkaBrokers, "topic", cfg.KafkaTopic)
	}

	// Capability grants for the encryption provider
	ledger := grants.NewLedger()

	reg := registry.New(
		registry.WithPublisher(publisher),
		registry.WithGranter(ledger),
		registry.WithJournal(journal),
	)

	// Replay journaled state
	stored, err := journal.Load()
	if err != nil {
		slog.Error("journal load failed", "error", err)
		os.Exit(1)
	}
	for _, sp := range stored {
		if err := reg.Restore(sp.Poll, sp.Responses); err != nil {
			slog.Error("journal replay failed", "poll_id", sp.Poll.ID, "error", err)
			os.Exit(1)
		}
	}
	if len(stored) > 0 {
		slog.Info("journal replayed", "polls", len(stored))
	}

	// Create router
	mux := router.NewRouter(reg, hub, ledger, cfg)

	// Create server
	server := http.Server{
		Handler: middleware.CORS(mux),
		Addr:    ":" + strconv.Itoa(cfg.Port),
	}

	// signal.Notify requires the channel to be buffered
	ctrlc := make(chan os.Signal, 1)
	signal.Notify(ctrlc, os.Interrupt, syscall.SIGTERM)
	go func() {
		// Wait for Ctrl-C signal
		<-ctrlc
		server.Close()
	}()

	// Start server
	slog.Info("Listening", "port", cfg.Port)
	err = server.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		slog.Error("Server closed", "error", err)
	} else {
		slog.Info("Server closed", "error", err)
	}
}
