package activity

import "errors"

// ErrInvalidInput is returned when an entry is missing required fields.
var ErrInvalidInput = errors.New("invalid activity input")
