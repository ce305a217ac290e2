package domain

import "errors"

// Sentinel errors for the application.
var (
	ErrNotFound        = errors.New("resource not found")
	ErrUnauthenticated = errors.New("authentication required")
	ErrForbidden       = errors.New("forbidden")
	ErrConflict        = errors.New("resource already exists")
	ErrInvalidInput    = errors.New("invalid input")
	ErrInternal        = errors.New("internal server error")
)
