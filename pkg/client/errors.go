package client

import (
	"errors"
	"fmt"
)

// ErrConnect marks exhaustion of all connection attempts to the remote API.
var ErrConnect = errors.New("could not connect to API")

// ConnectError reports that every connection attempt for a URL failed.
type ConnectError struct {
	URL      string
	Attempts int
	Err      error
}

// Error implements the error interface.
func (e *ConnectError) Error() string {
	return fmt.Sprintf("could not connect to %s after %d attempts: %v", e.URL, e.Attempts, e.Err)
}

// Unwrap implements error unwrapping for errors.Is/As.
func (e *ConnectError) Unwrap() error {
	return e.Err
}

// Is lets errors.Is(err, ErrConnect) match any ConnectError.
func (e *ConnectError) Is(target error) bool {
	return target == ErrConnect
}
