package rendevo

import "github.com/rendevo/client-go/internal/apierrors"

// Sentinel errors for errors.Is() checks
var (
	// ErrMissingBaseURL is returned when no base URL is provided.
	ErrMissingBaseURL = apierrors.ErrMissingBaseURL

	// ErrUnauthorized matches API errors with status 401.
	ErrUnauthorized = apierrors.ErrUnauthorized

	// ErrForbidden matches API errors with status 403.
	ErrForbidden = apierrors.ErrForbidden

	// ErrNotFound matches API errors with status 404.
	ErrNotFound = apierrors.ErrNotFound

	// ErrConflict matches API errors with status 409.
	ErrConflict = apierrors.ErrConflict

	// ErrRateLimited matches API errors with status 429.
	ErrRateLimited = apierrors.ErrRateLimited

	// ErrTimeout matches every *TimeoutError.
	ErrTimeout = apierrors.ErrTimeout

	// ErrNetwork matches every *NetworkError.
	ErrNetwork = apierrors.ErrNetwork

	// ErrRetriesExhausted is returned when retrying ended without a captured error.
	ErrRetriesExhausted = apierrors.ErrRetriesExhausted

	// ErrNoToken is returned when an operation needs a token the client does not hold.
	ErrNoToken = apierrors.ErrNoToken
)

// RendevoError is implemented by all SDK errors of a known Kind.
type RendevoError = apierrors.RendevoError

// Kind classifies an error. The set is closed: every failure returned by
// the client is one of KindAPI, KindNetwork, KindTimeout or KindFormat,
// or KindUnknown for context cancellation and local errors such as an
// unmarshalable request body.
type Kind = apierrors.Kind

// Error kinds.
const (
	KindUnknown = apierrors.KindUnknown
	KindAPI     = apierrors.KindAPI
	KindNetwork = apierrors.KindNetwork
	KindTimeout = apierrors.KindTimeout
	KindFormat  = apierrors.KindFormat
)

// KindOf returns the Kind of err, unwrapping as needed.
func KindOf(err error) Kind {
	return apierrors.KindOf(err)
}

// APIError is a structured rejection from the Rendevo API. Error() returns
// the server's message; StatusCode is the HTTP status.
type APIError = apierrors.APIError

// ErrorPayload is the normalized error body carried by APIError.
type ErrorPayload = apierrors.ErrorPayload

// NetworkError represents a connectivity failure. It has no status code.
type NetworkError = apierrors.NetworkError

// TimeoutError represents an attempt that exceeded its timeout.
type TimeoutError = apierrors.TimeoutError

// ResponseFormatError represents a response that was not JSON or could not
// be decoded.
type ResponseFormatError = apierrors.ResponseFormatError
