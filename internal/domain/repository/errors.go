package repository

import "errors"

// Sentinel errors every implementation must use so the application layer can
// translate them into operation-specific failures with errors.Is.
var (
	// ErrNotFound is returned by reads that match no row.
	ErrNotFound = errors.New("not found")

	// ErrNoRowsAffected is returned by writes that did not affect exactly
	// one row. It is the sole failure signal for save/update operations.
	ErrNoRowsAffected = errors.New("no rows affected")

	// ErrDuplicateKey is returned when a write violates a uniqueness
	// constraint (login, email, role name, assignment pair).
	ErrDuplicateKey = errors.New("duplicate key")
)
