package domain

import "errors"

// Error kinds shared across bounded contexts. Context packages declare
// specific sentinels wrapping one of these so callers can match either the
// kind or the exact cause with errors.Is.
var (
	// ErrValidation marks malformed input such as an empty name or
	// negative hours.
	ErrValidation = errors.New("validation failed")

	// ErrNotFound marks a reference to a nonexistent task, subtask or slot.
	ErrNotFound = errors.New("not found")

	// ErrInvalidTransition marks an illegal slot status transition. It
	// usually indicates a stale view of the slot on the caller's side.
	ErrInvalidTransition = errors.New("invalid transition")

	// ErrNoAvailableSlot is returned when an operation needs an empty slot
	// and the day has none left.
	ErrNoAvailableSlot = errors.New("no available slot")
)
