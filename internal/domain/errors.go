package domain

import (
	"errors"
	"fmt"
)

// Errors shared by every layer. Callers distinguish them with errors.Is.
var (
	// ErrValidation malformed window, outside business hours, bad capacity or type
	ErrValidation = errors.New("validation error")

	// ErrDuplicate a slot with the same date, window, scope and interview type exists
	ErrDuplicate = errors.New("duplicate slot")

	ErrSlotNotFound = errors.New("slot not found")

	// ErrConflict the slot state does not allow the operation right now
	ErrConflict = errors.New("conflict")

	// ErrVersionConflict the slot changed since it was read
	ErrVersionConflict = fmt.Errorf("%w: version mismatch", ErrConflict)

	// ErrSlotHasBookings cancel or delete of a slot with active bookings
	ErrSlotHasBookings = fmt.Errorf("%w: slot has active bookings", ErrConflict)

	// ErrTerminalState transition between CANCELLED and COMPLETED
	ErrTerminalState = fmt.Errorf("%w: slot is in a terminal state", ErrConflict)

	// ErrBookingFailed the booking attempt did not go through; re-query availability
	ErrBookingFailed = errors.New("booking failed")

	// ErrReleaseFailed release gave up after repeated concurrent changes
	ErrReleaseFailed = fmt.Errorf("%w: release did not go through", ErrBookingFailed)

	// ErrNotAvailable slot is full, cancelled or completed
	ErrNotAvailable = fmt.Errorf("%w: slot not available", ErrBookingFailed)

	// ErrNoMatchingSlot the selected window has no backing slot
	ErrNoMatchingSlot = errors.New("no matching slot")

	// ErrOutcomeUnknown the deadline expired while a write may have been applied;
	// re-read the slot instead of retrying
	ErrOutcomeUnknown = errors.New("booking outcome unknown")
)
