// Copyright (c) 2026 Veilpoll Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the veilpoll API server.

Veilpoll is a confidential polling service: a creator publishes a question
with a bounded integer response range and a deadline, participants submit
exactly one encrypted response each, and the creator can close the poll
early. Submitted values are opaque ciphertext handles from an external
encryption provider; the service stores and indexes them without ever seeing
plaintext.

# Starting the Server

	IDENTITY_SALT=secret go run .

Or with flags:

	go run . -p 3318 -d "file:veilpoll.db" --identity-salt secret

# Configuration

Required settings:

  - IDENTITY_SALT (--identity-salt): secret for identity token HMAC

Optional settings:

  - PORT (-p): server port (default: 3318)
  - DATABASE_URL (-d): journal database URL (default: file:veilpoll.db)
  - DATABASE_TYPE (-t): sqlite or postgres (default: sqlite)
  - KAFKA_BROKERS (--kafka-brokers): enables Kafka event publishing
  - KAFKA_TOPIC (--kafka-topic): event topic (default: veilpoll.events)

# Architecture

The server wires a mutex-guarded in-memory registry behind HTTP handlers:

  - registry: poll store, response ledger, reverse indexes, active-poll scan
  - events: mutation notifications (in-process hub, optional Kafka)
  - grants: decryption capability lists for the encryption provider
  - db: write-behind journal and startup replay
  - handlers, router, middleware: HTTP surface
  - auth: identity token issuance and verification
  - cliparse: configuration parsing

See package documentation for each component.
*/
package main
