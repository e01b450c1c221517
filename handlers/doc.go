// Copyright (c) 2026 Veilpoll Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers implements the HTTP surface over the registry.

Each handler struct receives its dependencies at construction and maps
request parameters onto one registry call. Caller identity is resolved from
the X-Identity-Token header and passed to the registry as an explicit
argument; the registry never reads ambient request state.

Handlers:

  - PollHandler: create, close, get, list active
  - ResponseHandler: submit, list, responded check
  - UserHandler: identity issuance and reverse-index queries
  - GrantHandler: capability lookups for the encryption provider
  - StreamHandler: per-poll websocket event stream
*/
package handlers
