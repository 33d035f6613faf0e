package errors

import "errors"

var (
	ErrNotFound = errors.New("booking not found")

	ErrInvalidID = errors.New("invalid booking ID format")

	// ErrLockHeld means another request is creating the same booking.
	ErrLockHeld = errors.New("booking lock already held")
)
