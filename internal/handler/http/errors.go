// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import "errors"

// Sentinel errors produced by the transport middleware. Callers can match
// against them with [errors.Is].
var (
	// ErrEmptyAuthorizationHeader is returned when the request carries no
	// "Authorization" header at all.
	ErrEmptyAuthorizationHeader = errors.New("empty `Authorization` header")

	// ErrInvalidAuthorizationHeader is returned when the header is not of the
	// form "Bearer <token>".
	ErrInvalidAuthorizationHeader = errors.New("invalid `Authorization` header")

	// ErrMissingDeviceID is returned when the X-Device-ID header is absent on
	// a device-scoped route.
	ErrMissingDeviceID = errors.New("missing `X-Device-ID` header")

	// ErrTooManyRequests is returned when a device exceeds its request rate.
	ErrTooManyRequests = errors.New("too many requests")

	// ErrInvalidLimit is returned for a malformed audit page size.
	ErrInvalidLimit = errors.New("limit must be a positive integer")
)
