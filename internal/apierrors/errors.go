// Package apierrors provides shared error types for the iNaturalist client.
package apierrors

import (
	"errors"
	"fmt"
	"net/http"
)

// Sentinel errors for errors.Is() checks
var (
	// ErrMissingRouteParameter is returned when a route placeholder has no
	// matching parameter.
	ErrMissingRouteParameter = errors.New("required route parameter missing")

	// ErrMalformedResponse is returned when a successful response body is
	// not valid JSON.
	ErrMalformedResponse = errors.New("malformed response body")

	// ErrUnauthorized is returned for 401 responses.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrForbidden is returned for 403 responses.
	ErrForbidden = errors.New("forbidden")

	// ErrNotFound is returned for 404 responses.
	ErrNotFound = errors.New("not found")

	// ErrUnprocessable is returned for 422 responses.
	ErrUnprocessable = errors.New("unprocessable entity")

	// ErrRateLimited is returned for 429 responses.
	ErrRateLimited = errors.New("rate limit exceeded")
)

// MissingRouteParameterError is returned before any network activity when a
// route placeholder cannot be resolved.
type MissingRouteParameterError struct {
	// Param is the name of the first placeholder without a usable value.
	Param string
	// Route holds the template as it stood when interpolation stopped.
	// Substitutions made before the failure are kept.
	Route string
}

func (e *MissingRouteParameterError) Error() string {
	return fmt.Sprintf("%s required", e.Param)
}

// Is implements errors.Is for sentinel error matching.
func (e *MissingRouteParameterError) Is(target error) bool {
	return target == ErrMissingRouteParameter
}

// HTTPError represents a response whose status fell outside [200, 300).
// The body is never parsed. Up to a fixed limit it is buffered on
// Response.Body so callers can read it after the connection is released.
type HTTPError struct {
	StatusCode int
	Status     string
	Response   *http.Response
	// BodyErr is set when reading the body failed. Response.Body then holds
	// whatever was read before the failure.
	BodyErr error
}

func (e *HTTPError) Error() string {
	if e.Status != "" {
		return e.Status
	}
	if text := http.StatusText(e.StatusCode); text != "" {
		return fmt.Sprintf("%d %s", e.StatusCode, text)
	}
	return fmt.Sprintf("HTTP error %d", e.StatusCode)
}

// Is implements errors.Is for sentinel error matching.
func (e *HTTPError) Is(target error) bool {
	switch e.StatusCode {
	case http.StatusUnauthorized:
		return target == ErrUnauthorized
	case http.StatusForbidden:
		return target == ErrForbidden
	case http.StatusNotFound:
		return target == ErrNotFound
	case http.StatusUnprocessableEntity:
		return target == ErrUnprocessable
	case http.StatusTooManyRequests:
		return target == ErrRateLimited
	}
	return false
}

// Unwrap returns the body read error, if any.
func (e *HTTPError) Unwrap() error {
	return e.BodyErr
}

// MalformedResponseBodyError wraps a JSON decoding failure on a non-empty
// 2xx body.
type MalformedResponseBodyError struct {
	StatusCode int
	Body       string
	Err        error
}

func (e *MalformedResponseBodyError) Error() string {
	return fmt.Sprintf("malformed response body: %v", e.Err)
}

// Unwrap returns the underlying error.
func (e *MalformedResponseBodyError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is for sentinel error matching.
func (e *MalformedResponseBodyError) Is(target error) bool {
	return target == ErrMalformedResponse
}

// NetworkError represents a network-level failure.
type NetworkError struct {
	Err    error
	URL    string
	Method string
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network error: %v", e.Err)
}

// Unwrap returns the underlying error.
func (e *NetworkError) Unwrap() error {
	return e.Err
}
