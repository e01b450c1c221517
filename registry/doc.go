// Copyright (c) 2026 Veilpoll Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package registry implements the poll registry and response ledger: the state
machine that creates polls, accepts and deduplicates encrypted responses,
enforces lifecycle and authorization rules, and maintains reverse indexes.

# Model

A poll carries an integer response range, a deadline, and a one-way
active→closed flag. A poll is open for responses iff it is active AND the
current time is not past its deadline; expiry is derived on every access,
never stored. Responses are opaque encrypted payloads appended at most once
per (poll, respondent) pair.

# Operations

	id, err := reg.CreatePoll(creator, "Rate the service", 1, 5, deadline)
	err = reg.SubmitResponse(id, respondent, payload)
	err = reg.ClosePoll(id, creator)

Reads (Poll, Responses, ActivePolls, CreatedBy, RespondedBy, HasResponded)
return snapshots and never mutate state.

# Failure semantics

Submit checks run in a fixed order, each with a distinct error: poll exists,
poll active, not expired, not a duplicate, payload well-formed. Every
operation is all-or-nothing; a failure leaves no partial mutation behind.

# Collaborators

The registry never interprets payload bytes. On acceptance it asks the
Granter to permit the respondent and the creator to later request decryption
of the stored handle, notifies the Journal for durability, and publishes one
event per successful mutation. All three run outside the critical section and
their failures are logged, not surfaced.
*/
package registry
