// Package repositories contains the MongoDB persistence layer, one
// repository per collection, plus in-memory implementations used by
// tests and by local development without a database.
//
// Repositories speak in storage terms only: they return ErrNotFound,
// ErrDuplicate and ErrInsufficientStock sentinels and leave the
// client-facing error taxonomy to the services.
package repositories

import "errors"

var (
	// ErrNotFound is returned when a document does not exist.
	ErrNotFound = errors.New("repositories: document not found")

	// ErrDuplicate is returned when a unique index rejects a write.
	ErrDuplicate = errors.New("repositories: duplicate key")

	// ErrInsufficientStock is returned when a conditional stock
	// decrement finds fewer units than requested.
	ErrInsufficientStock = errors.New("repositories: insufficient stock")
)
