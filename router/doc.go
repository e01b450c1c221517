// Copyright (c) 2026 Veilpoll Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package router defines the route table using Go 1.22+ pattern routing.
package router
