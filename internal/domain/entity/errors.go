package entity

import "errors"

// Domain errors shared by repositories, usecases and handlers.
// Callers match them with errors.Is; infrastructure wraps driver errors around them.
var (
	ErrNotFound       = errors.New("not found")
	ErrUnauthorized   = errors.New("unauthorized")
	ErrInvalidRequest = errors.New("invalid request")
	ErrForbidden      = errors.New("forbidden")
	ErrConflict       = errors.New("already exists")
)
