// Copyright (c) 2026 Veilpoll Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"fmt"
)

// createSchema creates the journal tables for the configured driver.
// Safe to call multiple times - uses IF NOT EXISTS.
func createSchema(conn *sql.DB, driver string) error {
	schema := schemaSQLite
	if driver == "postgres" {
		schema = schemaPostgres
	}
	if _, err := conn.Exec(schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

const schemaSQLite = `
-- Polls
CREATE TABLE IF NOT EXISTS poll (
    id INTEGER PRIMARY KEY,
    creator_id TEXT NOT NULL,
    question TEXT NOT NULL,
    min_value INTEGER NOT NULL,
    max_value INTEGER NOT NULL,
    end_time TIMESTAMP NOT NULL,
    created_at TIMESTAMP NOT NULL,
    is_active INTEGER NOT NULL DEFAULT 1
);

-- Encrypted responses, in submission order per poll
CREATE TABLE IF NOT EXISTS response (
    poll_id INTEGER NOT NULL REFERENCES poll(id),
    seq INTEGER NOT NULL,
    respondent_id TEXT NOT NULL,
    ciphertext BLOB NOT NULL,
    proof BLOB,
    submitted_at TIMESTAMP NOT NULL,
    PRIMARY KEY (poll_id, seq),
    UNIQUE (poll_id, respondent_id)
);

CREATE INDEX IF NOT EXISTS idx_response_poll_id ON response(poll_id);
`

const schemaPostgres = `
-- Polls
CREATE TABLE IF NOT EXISTS poll (
    id BIGINT PRIMARY KEY,
    creator_id TEXT NOT NULL,
    question TEXT NOT NULL,
    min_value BIGINT NOT NULL,
    max_value BIGINT NOT NULL,
    end_time TIMESTAMP NOT NULL,
    created_at TIMESTAMP NOT NULL,
    is_active BOOLEAN NOT NULL DEFAULT TRUE
);

-- Encrypted responses, in submission order per poll
CREATE TABLE IF NOT EXISTS response (
    poll_id BIGINT NOT NULL REFERENCES poll(id),
    seq INTEGER NOT NULL,
    respondent_id TEXT NOT NULL,
    ciphertext BYTEA NOT NULL,
    proof BYTEA,
    submitted_at TIMESTAMP NOT NULL,
    PRIMARY KEY (poll_id, seq),
    UNIQUE (poll_id, respondent_id)
);

CREATE INDEX IF NOT EXISTS idx_response_poll_id ON response(poll_id);
`
