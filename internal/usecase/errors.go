package usecase

import "errors"

// Business rule failures. Services wrap these with context; handlers map
// them to HTTP statuses with errors.Is.
var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("not found")
	ErrForbidden    = errors.New("forbidden")
	ErrConflict     = errors.New("conflict")
	ErrInvalidState = errors.New("invalid state")
)
