// Package common defines shared constants and sentinel errors used across
// client and server layers of the billing system. Callers should use
// errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// ErrDuplicateNumber is returned by the store when an insert collides
	// with an already persisted invoice number. It triggers allocator retry
	// and is not surfaced to callers unless retries are exhausted.
	ErrDuplicateNumber = errors.New("duplicate invoice number")

	// ErrAllocationExhausted means the allocator could not converge on a
	// free invoice number within its retry budget. Fatal for the operation.
	ErrAllocationExhausted = errors.New("invoice number allocation exhausted")

	// Service-level errors (generic/internal flow control).
	ErrorInternal = errors.New("internal error")

	// ErrServerUnavailable classifies network/timeout failures talking to
	// the billing server. The client treats it as the trigger for offline
	// queueing rather than a user-facing failure.
	ErrServerUnavailable = errors.New("server unavailable")

	// ErrQueueEmpty is returned by the local queue when a drain finds no
	// pending invoices.
	ErrQueueEmpty = errors.New("offline queue is empty")
)
