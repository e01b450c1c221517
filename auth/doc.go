// Copyright (c) 2026 Veilpoll Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth issues and verifies identity tokens.

An identity is 16 random bytes, hex encoded. Its token appends an HMAC-SHA256
signature over the identity:

	identity, token, err := auth.NewIdentity(salt)
	identity, err = auth.VerifyToken(token, salt)

Tokens are deterministic from identity and salt, so verification needs no
storage. The registry itself never sees tokens; handlers resolve the token to
an identity and pass the identity explicitly.
*/
package auth
