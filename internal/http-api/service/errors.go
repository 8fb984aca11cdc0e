package service

import "errors"

// Sentinel errors returned by the service layer. Handlers map these to
// HTTP status codes.
var (
	ErrNotFound   = errors.New("resource not found")
	ErrForbidden  = errors.New("operation not allowed")
	ErrValidation = errors.New("invalid input")
	ErrConflict   = errors.New("resource already exists")
)
