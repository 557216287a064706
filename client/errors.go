package client

import (
	"errors"
	"fmt"
)

// ErrCancelled is delivered when an invocation is cancelled before its
// outcome was determined.
var ErrCancelled = errors.New("invocation cancelled")

// NetworkError reports a transport-level failure (connection refused,
// timeout, TLS failure) before any response was received.
type NetworkError struct {
	Cause error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network error: %v", e.Cause)
}

func (e *NetworkError) Unwrap() error {
	return e.Cause
}

// StatusError reports a response whose status code falls outside 2xx.
// Value carries the best-effort decoded body, so structured error payloads
// remain inspectable.
type StatusError struct {
	Code  int
	Body  []byte
	Value any
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("received status code: %d", e.Code)
}
