package service

import "errors"

// Common service errors
var (
	// ErrPermissionDenied is returned when the actor may not perform an action
	ErrPermissionDenied = errors.New("permission denied")

	// ErrNotFound is returned when a resource is not found
	ErrNotFound = errors.New("resource not found")

	// ErrInvalidInput is returned when input validation fails
	ErrInvalidInput = errors.New("invalid input")

	// ErrConflict is returned when there's a conflict (e.g., duplicate)
	ErrConflict = errors.New("resource conflict")

	// ErrUnauthorized is returned when the request carries no identity
	ErrUnauthorized = errors.New("unauthorized")

	// ErrNoProfile is returned when the acting identity has no profile row
	ErrNoProfile = errors.New("no profile for acting identity")
)
