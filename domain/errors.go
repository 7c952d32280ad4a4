package domain

import "errors"

// Shared errors; delivery.StatusOf maps each of them to an HTTP status.
var (
	ErrInternalServerError = errors.New("internal server error")
	ErrNotFound            = errors.New("not found")
	ErrConflict            = errors.New("already exists")
	ErrBadParamInput       = errors.New("invalid parameter")
	ErrInvalidNumberFormat = errors.New("invalid number format")

	// auth
	ErrInvalidAddress   = errors.New("invalid address")
	ErrInvalidSignature = errors.New("invalid signature")
)
