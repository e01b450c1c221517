// Copyright (c) 2026 Veilpoll Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db persists the registry's mutation journal.

The journal is write-behind: the in-memory registry commits first, then the
accepted mutation is recorded here. On startup, Load returns the journaled
polls and responses for registry.Restore to replay.

Two drivers are supported, selected by configuration:

  - sqlite (modernc.org/sqlite), the default, using a local file
  - postgres (lib/pq), for shared deployments
*/
package db
