// Copyright (c) 2026 Veilpoll Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
)

var ErrInvalidToken = errors.New("invalid identity token")

// NewIdentity mints a random identity and its signed token. The identity is
// what the registry stores; the token is what callers present.
func NewIdentity(salt string) (identity, token string, err error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", "", fmt.Errorf("failed to generate identity: %w", err)
	}
	identity = hex.EncodeToString(b)
	return identity, TokenFor(identity, salt), nil
}

// TokenFor derives the signed token for an identity. Deterministic, so
// tokens can be verified without storing them.
func TokenFor(identity, salt string) string {
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte(identity))
	sig := strings.TrimRight(base64.URLEncoding.EncodeToString(h.Sum(nil)), "=")
	return identity + "." + sig
}

// VerifyToken checks a presented token and returns the identity it carries.
func VerifyToken(token, salt string) (string, error) {
	identity, _, ok := strings.Cut(token, ".")
	if !ok || identity == "" {
		return "", ErrInvalidToken
	}
	if !hmac.Equal([]byte(token), []byte(TokenFor(identity, salt))) {
		return "", ErrInvalidToken
	}
	return identity, nil
}
