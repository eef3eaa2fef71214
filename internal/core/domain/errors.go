package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrInputNotFound indicates the input document path does not resolve.
	ErrInputNotFound = errors.New("input document not found")

	// ErrUnsupportedFormat indicates the input file is not a readable
	// document container (e.g. not a valid DOCX archive).
	ErrUnsupportedFormat = errors.New("unsupported document format")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrConfig indicates an invalid or missing configuration value.
	// Configuration errors are fatal and abort the run before any work starts.
	ErrConfig = errors.New("invalid configuration")

	// Provider errors.

	// ErrAuthFailed indicates the provider rejected the credential.
	// Authentication failures are never retried.
	ErrAuthFailed = errors.New("provider authentication failed")

	// ErrBadRequest indicates the provider rejected the request itself
	// (malformed payload, unknown model, oversized input). Not retried.
	ErrBadRequest = errors.New("provider rejected request")

	// ErrProviderUnavailable indicates a transient provider failure
	// (timeout, rate limit, 5xx). Retried up to the configured limit.
	ErrProviderUnavailable = errors.New("provider unavailable")

	// Output errors.

	// ErrOutputWrite indicates the output document could not be persisted.
	// Further progress cannot be saved safely, so the run aborts.
	ErrOutputWrite = errors.New("output write failed")
)

// IsTransient reports whether err is worth retrying against the provider.
// Authentication and request errors are permanent; everything classified as
// provider unavailability is transient.
func IsTransient(err error) bool {
	return errors.Is(err, ErrProviderUnavailable)
}
