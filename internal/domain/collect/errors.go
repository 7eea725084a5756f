package collect

import (
	"errors"
	"fmt"
)

var (
	// ErrUnauthorized indicates the review API rejected the request with 401.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrSuperseded indicates the retrieval was cancelled before completing.
	// It is never published as collector state.
	ErrSuperseded = errors.New("retrieval superseded")
	// ErrInvalidInput indicates invalid collector input.
	ErrInvalidInput = errors.New("invalid collector input")
)

// TransportError reports a non-success response or a network failure.
// Status is 0 when no response was received.
type TransportError struct {
	Status int
	Err    error
}

func (e *TransportError) Error() string {
	switch {
	case e.Status == 0 && e.Err != nil:
		return fmt.Sprintf("transport error: %v", e.Err)
	case e.Status == 0:
		return "transport error: unknown"
	case e.Err != nil:
		return fmt.Sprintf("transport error: HTTP %d: %v", e.Status, e.Err)
	default:
		return fmt.Sprintf("transport error: HTTP %d", e.Status)
	}
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// ErrorKind classifies a retrieval failure.
type ErrorKind string

const (
	KindNone         ErrorKind = ""
	KindUnauthorized ErrorKind = "unauthorized"
	KindTransport    ErrorKind = "transport"
)

// KindOf classifies err. Anything that is not unauthorized is a transport failure.
func KindOf(err error) ErrorKind {
	if err == nil {
		return KindNone
	}
	if errors.Is(err, ErrUnauthorized) {
		return KindUnauthorized
	}
	return KindTransport
}

// StatusOf returns the HTTP status carried by a transport error, or 0.
func StatusOf(err error) int {
	var te *TransportError
	if errors.As(err, &te) {
		return te.Status
	}
	return 0
}
