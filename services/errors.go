package services

import "errors"

// Sentinel errors for the reservation core. Callers classify with errors.Is;
// controllers translate them to HTTP status codes.
var (
	// ErrValidation covers malformed or missing input.
	ErrValidation = errors.New("validation failed")

	// ErrNotFound means the referenced room, guest or booking does not exist.
	ErrNotFound = errors.New("not found")

	// ErrRoomUnavailable means the requested date range overlaps an active
	// booking on the same room.
	ErrRoomUnavailable = errors.New("room unavailable")

	// ErrConflict means a uniqueness invariant was violated (duplicate room
	// number, duplicate guest identity) or a dependent record blocks a delete.
	ErrConflict = errors.New("conflict")

	// ErrBusy means the per-room exclusion could not be acquired within the
	// configured timeout. The request is safe to retry.
	ErrBusy = errors.New("room busy, retry later")

	// ErrPaymentDeclined means the payment gateway processed the charge and
	// rejected it.
	ErrPaymentDeclined = errors.New("payment declined")

	// ErrExternalService means an external collaborator (payment gateway,
	// mail relay) could not be reached or answered garbage.
	ErrExternalService = errors.New("external service failure")
)
