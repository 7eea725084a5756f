package review

import "errors"

var (
	// ErrInvalidInput is returned when a project key or review key is malformed.
	ErrInvalidInput = errors.New("invalid review input")
	// ErrInvalidSnapshot is returned when an import document cannot be decoded.
	ErrInvalidSnapshot = errors.New("invalid review snapshot")
)
