package carboncue

import (
	"errors"
	"fmt"
)

// ErrClientClosed is returned when a retrieval is attempted outside an open
// session. This is a caller bug, not a network failure: call Open (or use
// Session) before fetching.
var ErrClientClosed = errors.New("carboncue: client session is not open")

// InvalidProviderError indicates the requested cloud provider is not in the
// supported set.
type InvalidProviderError struct {
	Provider string
}

func (e *InvalidProviderError) Error() string {
	return fmt.Sprintf("Unsupported cloud provider: %s", e.Provider)
}

// InvalidRegionError indicates the region is unknown to the region mapper for
// the given provider.
type InvalidRegionError struct {
	Provider string
	Region   string
}

func (e *InvalidRegionError) Error() string {
	return fmt.Sprintf("Unsupported region: %s for provider %s", e.Region, e.Provider)
}

// AuthenticationError indicates a missing credential or an upstream 401.
type AuthenticationError struct {
	Reason string
}

func (e *AuthenticationError) Error() string {
	return e.Reason
}

// DataNotAvailableError indicates the upstream provider has no data for the
// resolved zone (HTTP 404).
type DataNotAvailableError struct {
	Region string
	Zone   string
}

func (e *DataNotAvailableError) Error() string {
	return fmt.Sprintf("Data not available for zone %s (region %s)", e.Zone, e.Region)
}

// RateLimitError indicates the upstream provider rejected the request with
// HTTP 429.
type RateLimitError struct {
	Zone string
}

func (e *RateLimitError) Error() string {
	return "API rate limit exceeded"
}

// APIError is the generic upstream failure: any non-success status outside the
// specifically classified ones, or a transport-level failure (StatusCode 0).
type APIError struct {
	StatusCode int
	Message    string
	Err        error
}

func (e *APIError) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("Electricity Maps request failed: %s", e.Message)
	}
	return fmt.Sprintf("Electricity Maps API error (status %d): %s", e.StatusCode, e.Message)
}

func (e *APIError) Unwrap() error {
	return e.Err
}

// InvalidFunctionalUnitError indicates an SCI calculation was attempted with a
// non-positive functional unit.
type InvalidFunctionalUnitError struct {
	FunctionalUnit int
}

func (e *InvalidFunctionalUnitError) Error() string {
	return "Functional unit must be greater than 0"
}

// ValidationError indicates a value container constructor rejected its inputs.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}
