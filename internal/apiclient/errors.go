package apiclient

import (
	"errors"
	"fmt"
)

// ErrAuthRequired is returned before any network I/O when a call requires
// authentication and no session token is present.
var ErrAuthRequired = errors.New("authentication required")

// RequestError is the uniform failure kind for non-2xx responses. Message
// comes from the backend's error payload when one can be parsed, otherwise
// from a generic status-keyed fallback.
type RequestError struct {
	Status  int
	Message string
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("request failed (%d): %s", e.Status, e.Message)
}

// NetworkError is the failure kind for transport errors where no response was
// received at all.
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network error: %v", e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// statusFallbackMessage is used when the error payload cannot be parsed.
func statusFallbackMessage(status int) string {
	return fmt.Sprintf("API error: %d", status)
}
