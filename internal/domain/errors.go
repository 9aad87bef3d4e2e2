package domain

import "errors"

// Sentinel errors for domain-level error discrimination.
// Services wrap these so handlers can map to HTTP status codes without leaking infrastructure details.
var (
	ErrBadRequest = errors.New("bad request")
	ErrNotFound   = errors.New("not found")
	ErrExpired    = errors.New("expired")
	ErrMismatch   = errors.New("mismatch")
	ErrUnverified = errors.New("unverified")

	// Upstream failures come in three flavours so handlers can tell an
	// upstream auth problem and upstream throttling apart from a generic
	// delivery failure without inspecting provider payloads.
	ErrUpstream            = errors.New("upstream failure")
	ErrUpstreamAuth        = errors.New("upstream authentication failure")
	ErrUpstreamRateLimited = errors.New("upstream rate limited")
)
