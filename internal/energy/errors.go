package energy

import (
	"fmt"
)

// constError is an immutable error type for sentinel errors.
type constError string

func (e constError) Error() string { return string(e) }

var (
	// ErrFetchFailure matches every failed series request via errors.Is.
	ErrFetchFailure = constError("fetch failure")

	// ErrUnexpectedStatus indicates a non-2xx response.
	ErrUnexpectedStatus = constError("unexpected status")

	// ErrMalformedPayload indicates a body that is not a JSON array of numbers.
	ErrMalformedPayload = constError("malformed payload")

	// ErrPayloadTooLarge indicates a body larger than maxPayloadBytes.
	ErrPayloadTooLarge = constError("payload too large")

	// ErrInvalidFetchMode indicates an unknown FetchMode string.
	ErrInvalidFetchMode = constError("invalid fetch mode")
)

// FetchError describes a failed request to one backend endpoint.
// StatusCode is zero when no response was received.
type FetchError struct {
	Endpoint   Endpoint
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("fetching %s: status %d: %v", e.Endpoint, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("fetching %s: %v", e.Endpoint, e.Err)
}

// Unwrap returns the underlying cause.
func (e *FetchError) Unwrap() error {
	return e.Err
}

// Is reports whether target is ErrFetchFailure.
func (e *FetchError) Is(target error) bool {
	return target == ErrFetchFailure
}
