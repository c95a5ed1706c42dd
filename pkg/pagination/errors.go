package pagination

import "fmt"

// APIError is an error the remote API reported inside a well-formed error
// envelope.
type APIError struct {
	ID    string
	Key   string
	Value string
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return fmt.Sprintf("got error %s (%s): %s", e.ID, e.Key, e.Value)
}

// UnexpectedResponseError reports a response matching neither the success
// nor the known error envelope. Dump carries the raw response for diagnosis.
type UnexpectedResponseError struct {
	Dump string
}

// Error implements the error interface.
func (e *UnexpectedResponseError) Error() string {
	return fmt.Sprintf("got unexpected response:\n%s", e.Dump)
}
