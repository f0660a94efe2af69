// Package sentinel holds the store-level errors shared by every backend.
package sentinel

import "errors"

// Stores wrap these so services can map a backend fact onto a domain error
// without knowing which store produced it. Input validation belongs in
// pkg/domain-errors instead.
var (
	// ErrNotFound: the record does not exist.
	ErrNotFound = errors.New("not found")
	// ErrConflict: a uniqueness rule rejected the write.
	ErrConflict = errors.New("conflict")
	// ErrInvalidState: the record exists but cannot take the requested transition.
	ErrInvalidState = errors.New("invalid state")
	// ErrUnavailable: the backend could not be reached.
	ErrUnavailable = errors.New("unavailable")
)
