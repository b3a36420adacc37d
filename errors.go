package inaturalist

import "github.com/inaturalist/inaturalist-go/internal/apierrors"

// Sentinel errors for errors.Is() checks
var (
	// ErrMissingRouteParameter is returned before any request is sent when
	// a route placeholder has no usable param.
	ErrMissingRouteParameter = apierrors.ErrMissingRouteParameter

	// ErrMalformedResponse is returned when a successful response body is
	// not JSON.
	ErrMalformedResponse = apierrors.ErrMalformedResponse

	// ErrUnauthorized matches 401 responses.
	ErrUnauthorized = apierrors.ErrUnauthorized

	// ErrForbidden matches 403 responses.
	ErrForbidden = apierrors.ErrForbidden

	// ErrNotFound matches 404 responses.
	ErrNotFound = apierrors.ErrNotFound

	// ErrUnprocessable matches 422 responses.
	ErrUnprocessable = apierrors.ErrUnprocessable

	// ErrRateLimited matches 429 responses.
	ErrRateLimited = apierrors.ErrRateLimited
)

// Error types returned by calls.
type (
	// MissingRouteParameterError names the first unresolved placeholder
	// and the partially substituted route.
	MissingRouteParameterError = apierrors.MissingRouteParameterError

	// HTTPError is a response outside [200, 300). The body is left
	// unparsed on Response.
	HTTPError = apierrors.HTTPError

	// MalformedResponseBodyError is a 2xx body that failed to parse.
	MalformedResponseBodyError = apierrors.MalformedResponseBodyError

	// NetworkError is a transport failure.
	NetworkError = apierrors.NetworkError
)
