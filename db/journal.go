// Copyright (c) 2026 Veilpoll Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"fmt"
	"strconv"
	"strings"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"github.com/veilpoll/veilpoll/models"
)

// Journal is a write-behind record of accepted registry mutations. The
// in-memory registry remains authoritative; the journal exists so a restart
// can rebuild state via Load and registry.Restore.
type Journal struct {
	conn   *sql.DB
	driver string
}

// StoredPoll is one journaled poll with its responses in submission order.
type StoredPoll struct {
	Poll      models.Poll
	Responses []models.EncryptedResponse
}

// Open connects to the journal database ("sqlite" or "postgres") and creates
// the schema.
func Open(driver, dsn string) (*Journal, error) {
	if driver != "sqlite" && driver != "postgres" {
		return nil, fmt.Errorf("unsupported journal driver %q", driver)
	}

	conn, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open journal database: %w", err)
	}
	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to ping journal database: %w", err)
	}
	if err := createSchema(conn, driver); err != nil {
		conn.Close()
		return nil, err
	}

	return &Journal{conn: conn, driver: driver}, nil
}

// PollCreated records a freshly created poll.
func (j *Journal) PollCreated(p models.Poll) error {
	_, err := j.conn.Exec(j.rebind(`
		INSERT INTO poll (id, creator_id, question, min_value, max_value, end_time, created_at, is_active)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`), p.ID, p.CreatorID, p.Question, p.MinValue, p.MaxValue, p.EndTime, p.CreatedAt, p.IsActive)
	if err != nil {
		return fmt.Errorf("failed to journal poll %d: %w", p.ID, err)
	}
	return nil
}

// PollClosed records the one-way active→closed transition.
func (j *Journal) PollClosed(pollID uint64) error {
	_, err := j.conn.Exec(j.rebind(`UPDATE poll SET is_active = ? WHERE id = ?`), false, pollID)
	if err != nil {
		return fmt.Errorf("failed to journal close of poll %d: %w", pollID, err)
	}
	return nil
}

// ResponseRecorded records an accepted response at its position in the
// poll's ledger.
func (j *Journal) ResponseRecorded(pollID uint64, seq int, resp models.EncryptedResponse) error {
	_, err := j.conn.Exec(j.rebind(`
		INSERT INTO response (poll_id, seq, respondent_id, ciphertext, proof, submitted_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`), pollID, seq, resp.RespondentID, resp.Payload.Ciphertext, resp.Payload.Proof, resp.SubmittedAt)
	if err != nil {
		return fmt.Errorf("failed to journal response for poll %d: %w", pollID, err)
	}
	return nil
}

// Load returns every journaled poll with its responses, ordered by poll id
// ascending so they can be restored in sequence.
func (j *Journal) Load() ([]StoredPoll, error) {
	rows, err := j.conn.Query(`
		SELECT id, creator_id, question, min_value, max_value, end_time, created_at, is_active
		FROM poll
		ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to load polls: %w", err)
	}
	defer rows.Close()

	var stored []StoredPoll
	for rows.Next() {
		var p models.Poll
		if err := rows.Scan(&p.ID, &p.CreatorID, &p.Question, &p.MinValue, &p.MaxValue,
			&p.EndTime, &p.CreatedAt, &p.IsActive); err != nil {
			return nil, fmt.Errorf("failed to scan poll: %w", err)
		}
		stored = append(stored, StoredPoll{Poll: p})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to load polls: %w", err)
	}

	for i := range stored {
		responses, err := j.loadResponses(stored[i].Poll.ID)
		if err != nil {
			return nil, err
		}
		stored[i].Responses = responses
	}
	return stored, nil
}

func (j *Journal) loadResponses(pollID uint64) ([]models.EncryptedResponse, error) {
	rows, err := j.conn.Query(j.rebind(`
		SELECT respondent_id, ciphertext, proof, submitted_at
		FROM response
		WHERE poll_id = ?
		ORDER BY seq
	`), pollID)
	if err != nil {
		return nil, fmt.Errorf("failed to load responses for poll %d: %w", pollID, err)
	}
	defer rows.Close()

	var responses []models.EncryptedResponse
	for rows.Next() {
		var r models.EncryptedResponse
		if err := rows.Scan(&r.RespondentID, &r.Payload.Ciphertext, &r.Payload.Proof, &r.SubmittedAt); err != nil {
			return nil, fmt.Errorf("failed to scan response: %w", err)
		}
		responses = append(responses, r)
	}
	return responses, rows.Err()
}

func (j *Journal) Close() error {
	return j.conn.Close()
}

// rebind rewrites ? placeholders to $N for postgres; sqlite takes them as-is.
func (j *Journal) rebind(query string) string {
	if j.driver != "postgres" {
		return query
	}
	var b strings.Builder
	n := 0
	for _, ch := range query {
		if ch == '?' {
			n++
			b.WriteString("$")
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(ch)
	}
	return b.String()
}
