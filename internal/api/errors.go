package api

import (
	"errors"
	"fmt"
)

// APIError is the failure outcome of an outbound call. Status 0 means the
// request never produced a response (network or encoding failure).
type APIError struct {
	Status  int
	Code    string
	Message string
	Err     error
}

func (e *APIError) Error() string {
	if e.Status == 0 {
		return fmt.Sprintf("connection error: %v", e.Err)
	}
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("request failed with status %d", e.Status)
}

func (e *APIError) Unwrap() error {
	return e.Err
}

// IsNetwork reports whether the call failed before a response was received.
func (e *APIError) IsNetwork() bool {
	return e.Status == 0
}

// AsAPIError unwraps an APIError from an error chain.
func AsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}
