package domain

import "errors"

// Sentinel errors for domain-level error discrimination.
// Services wrap these so handlers can map to HTTP status codes without leaking infrastructure details.
var (
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrBadRequest   = errors.New("bad request")

	// ErrDelivery marks a failed PIN delivery. The pending code stays valid
	// until its TTL; callers log the failure and still report success to the
	// client so that whether an identity exists is never confirmed.
	ErrDelivery = errors.New("delivery failed")
)
