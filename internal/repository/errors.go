package repository

import "errors"

// Storage-level errors shared by every repository implementation.
var (
	ErrNotFound     = errors.New("no matching row")
	ErrInvalidInput = errors.New("invalid repository input")
)
