package repository

import "errors"

// ErrDuplicateEmail is returned when creating a user whose email is already
// registered.
var ErrDuplicateEmail = errors.New("email already registered")

// NotFoundError is an error type for when a resource is not found.
type NotFoundError struct {
	message string
}

// NewNotFoundError creates a NotFoundError with the given message.
func NewNotFoundError(message string) NotFoundError {
	return NotFoundError{message: message}
}

// Error returns the error message.
func (e NotFoundError) Error() string {
	return e.message
}
