package zendesk

import (
	"errors"
	"fmt"
)

// Fetch failure kinds. Every transport-level failure is wrapped in a
// FetchError that unwraps to exactly one of these sentinels.
var (
	// ErrHTTPStatus indicates the API answered with an error status code.
	ErrHTTPStatus = errors.New("http error status")

	// ErrConnection indicates the API could not be reached.
	ErrConnection = errors.New("connection failed")

	// ErrTimeout indicates the request exceeded the client timeout.
	ErrTimeout = errors.New("request timed out")

	// ErrMalformedResponse indicates a response body that could not be decoded.
	ErrMalformedResponse = errors.New("malformed response")
)

// FetchError is a classified failure from the ticketing API. It carries the
// offending endpoint and, when available, the status code and response body,
// so the run log shows exactly which call aborted the fetch.
type FetchError struct {
	Kind       error
	Endpoint   string
	StatusCode int
	Body       string
	Err        error
}

func (e *FetchError) Error() string {
	switch {
	case e.StatusCode != 0:
		return fmt.Sprintf("zendesk %s: %v: status %d: %s", e.Endpoint, e.Kind, e.StatusCode, e.Body)
	case e.Err != nil:
		return fmt.Sprintf("zendesk %s: %v: %v", e.Endpoint, e.Kind, e.Err)
	default:
		return fmt.Sprintf("zendesk %s: %v", e.Endpoint, e.Kind)
	}
}

func (e *FetchError) Unwrap() []error {
	if e.Err != nil {
		return []error{e.Kind, e.Err}
	}
	return []error{e.Kind}
}
