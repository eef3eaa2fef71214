// Package llm provides shared plumbing for the provider adapters, chiefly
// the mapping from HTTP and transport failures onto the domain error
// taxonomy. The pipeline retries only what this package marks transient.
package llm

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"

	"github.com/kavya-labs/kavya-cli/internal/core/domain"
)

// ClassifyStatus maps a non-2xx provider response onto a domain error.
//
// 401/403 are credential problems and 4xx in general means the request
// itself is unacceptable; neither will succeed on retry. 408, 429 and all
// 5xx are transient.
func ClassifyStatus(provider string, statusCode int, detail string) error {
	switch {
	case statusCode == http.StatusUnauthorized || statusCode == http.StatusForbidden:
		return fmt.Errorf("%w: %s returned status %d: %s", domain.ErrAuthFailed, provider, statusCode, detail)
	case statusCode == http.StatusRequestTimeout || statusCode == http.StatusTooManyRequests || statusCode >= 500:
		return fmt.Errorf("%w: %s returned status %d: %s", domain.ErrProviderUnavailable, provider, statusCode, detail)
	case statusCode >= 400:
		return fmt.Errorf("%w: %s returned status %d: %s", domain.ErrBadRequest, provider, statusCode, detail)
	default:
		return fmt.Errorf("%w: %s returned unexpected status %d: %s", domain.ErrProviderUnavailable, provider, statusCode, detail)
	}
}

// ClassifyTransport maps a failed HTTP round trip onto a domain error.
// Cancellation is passed through untouched so callers can distinguish an
// operator abort from a provider outage; everything else (timeouts, DNS,
// connection resets) is transient.
func ClassifyTransport(provider string, err error) error {
	if errors.Is(err, context.Canceled) {
		return err
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return fmt.Errorf("%w: %s request timed out: %v", domain.ErrProviderUnavailable, provider, err)
	}
	return fmt.Errorf("%w: %s request failed: %v", domain.ErrProviderUnavailable, provider, err)
}
