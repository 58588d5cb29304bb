package domain

import "errors"

// Data-layer errors. Repositories translate driver errors into these so
// services and handlers never inspect driver-specific error types.
var (
	// ErrNotFound is returned when a row does not exist or is soft-deleted
	ErrNotFound = errors.New("resource not found")

	// ErrConflict is returned on uniqueness violations (duplicate role name,
	// duplicate assignee pair, second opportunity for a lead, ...)
	ErrConflict = errors.New("resource conflict")

	// ErrInvalidEnum is returned when a closed-enumeration field is given a
	// value outside its set
	ErrInvalidEnum = errors.New("invalid enumeration value")

	// ErrOutOfRange is returned when a bounded numeric field is out of range
	ErrOutOfRange = errors.New("value out of range")

	// ErrOrphanAssignment is returned when a mutually-exclusive reference pair
	// is both set or both empty
	ErrOrphanAssignment = errors.New("assignment must target exactly one of profile or team")

	// ErrForbidden is returned when the acting identity may not touch the row.
	// Vault reads surface this as not-found so restricted rows never leak.
	ErrForbidden = errors.New("forbidden")

	// ErrInvalidInput is returned when input validation fails
	ErrInvalidInput = errors.New("invalid input")
)

// APIError represents a standardized API error with HTTP status code
type APIError struct {
	Type   string            `json:"type"`
	Title  string            `json:"title"`
	Status int               `json:"status"`
	Detail string            `json:"detail,omitempty"`
	Errors map[string]string `json:"errors,omitempty"`
}

// Error implements the error interface
func (e *APIError) Error() string {
	if e.Detail != "" {
		return e.Detail
	}
	return e.Title
}

// Common error types for RFC 7807 Problem Details
const (
	ErrorTypeValidation   = "validation_error"
	ErrorTypeNotFound     = "not_found"
	ErrorTypeBadRequest   = "bad_request"
	ErrorTypeConflict     = "conflict"
	ErrorTypeUnauthorized = "unauthorized"
	ErrorTypeForbidden    = "forbidden"
	ErrorTypeInternal     = "internal_error"
)
