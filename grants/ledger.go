// Copyright (c) 2026 Veilpoll Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package grants tracks which identities may ask the encryption provider to
// decrypt a stored ciphertext handle. The registry grants capability to the
// respondent and the poll creator when a response is accepted.
package grants

import (
	"encoding/hex"
	"sync"
)

// Ledger is a capability list keyed by ciphertext handle.
type Ledger struct {
	mu      sync.RWMutex
	members map[string]map[string]bool
	order   map[string][]string
}

func NewLedger() *Ledger {
	return &Ledger{
		members: make(map[string]map[string]bool),
		order:   make(map[string][]string),
	}
}

// Allow grants the identities decryption capability on the handle. Granting
// an identity twice is a no-op.
func (l *Ledger) Allow(handle []byte, identities ...string) {
	key := hex.EncodeToString(handle)

	l.mu.Lock()
	defer l.mu.Unlock()
	set := l.members[key]
	if set == nil {
		set = make(map[string]bool)
		l.members[key] = set
	}
	for _, id := range identities {
		if !set[id] {
			set[id] = true
			l.order[key] = append(l.order[key], id)
		}
	}
}

// Allowed reports whether the identity holds capability on the handle.
func (l *Ledger) Allowed(handle []byte, identity string) bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.members[hex.EncodeToString(handle)][identity]
}

// Identities returns the identities granted on the handle, in grant order.
func (l *Ledger) Identities(handle []byte) []string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return append([]string{}, l.order[hex.EncodeToString(handle)]...)
}
