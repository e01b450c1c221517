// Copyright (c) 2026 Veilpoll Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package events carries the registry's mutation notifications: PollCreated,
ResponseSubmitted and PollClosed, one per successful mutation.

Hub fans events out to in-process subscribers (the websocket stream).
KafkaPublisher ships the same events to a broker for external consumers, and
Fanout composes the two behind the single Publisher interface the registry
depends on.
*/
package events
