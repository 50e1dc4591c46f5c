package models

import "errors"

// Stable error kinds. Repositories and services wrap these with context via
// fmt.Errorf("...: %w", err); handlers unwrap with errors.Is to pick the
// response status and code.
var (
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("already exists")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrValidation   = errors.New("validation failed")

	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token expired")
)
