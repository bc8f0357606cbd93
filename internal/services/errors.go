package services

import "errors"

// Sentinel errors the handlers map onto HTTP status codes.
var (
	ErrNotFound     = errors.New("resource not found")
	ErrInvalidState = errors.New("operation not allowed in current state")
	ErrValidation   = errors.New("validation failed")
	ErrForbidden    = errors.New("resource belongs to another user")
)
