// Package api provides HTTP client functionality for communicating with the
// Rendevo API. It handles bearer authentication, request/response
// serialization, response envelope normalization and automatic retry with
// exponential backoff for transient failures.
//
// # Client Creation
//
// The package provides two ways to create a client:
//
//   - [NewClient]: Struct-based configuration for explicit, type-safe setup.
//   - [New]: Functional options pattern for flexible configuration.
//
// Both require a base URL. Every request carries Content-Type:
// application/json, the configured default headers, per-call overrides and,
// when a token is held in the shared [AuthState], an Authorization: Bearer
// header.
//
// # Response Envelope
//
// Successful responses are normalized to [Envelope]. Bodies that already
// have the success/data/timestamp shape pass through; any other JSON body is
// wrapped as the envelope's data. The verb methods ([Client.Get],
// [Client.Post], ...) decode only the data.
//
// # Retry Behavior
//
// With [RetriesDefault] a request is attempted up to 3 times. Only server
// errors (5xx) and network failures are retried, after 1s and then 2s.
// Client errors, timeouts and malformed responses fail immediately.
// [RetriesDisabled] makes a single attempt.
//
// # Error Handling
//
// Failures are one of [apierrors.APIError], [apierrors.NetworkError],
// [apierrors.TimeoutError] or [apierrors.ResponseFormatError]. A
// cancellation of the caller's context is returned as the context error.
//
// # Thread Safety
//
// The [Client] type is safe for concurrent use. A request captures the
// bearer token when its headers are built, so a concurrent logout does not
// affect a request that is already in flight.
package api
