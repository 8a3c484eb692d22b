package carboncue

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorMessages(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			name: "invalid provider",
			err:  &InvalidProviderError{Provider: "invalid"},
			want: "Unsupported cloud provider: invalid",
		},
		{
			name: "invalid region",
			err:  &InvalidRegionError{Provider: "aws", Region: "moon-base-1"},
			want: "Unsupported region: moon-base-1 for provider aws",
		},
		{
			name: "authentication",
			err:  &AuthenticationError{Reason: "API key not configured"},
			want: "API key not configured",
		},
		{
			name: "data not available",
			err:  &DataNotAvailableError{Region: "us-west-2", Zone: "US-NW-PACW"},
			want: "Data not available for zone US-NW-PACW (region us-west-2)",
		},
		{
			name: "rate limit",
			err:  &RateLimitError{Zone: "US-NW-PACW"},
			want: "API rate limit exceeded",
		},
		{
			name: "api error with status",
			err:  &APIError{StatusCode: 503, Message: "maintenance"},
			want: "Electricity Maps API error (status 503): maintenance",
		},
		{
			name: "api error transport",
			err:  &APIError{Message: "connection refused"},
			want: "Electricity Maps request failed: connection refused",
		},
		{
			name: "invalid functional unit",
			err:  &InvalidFunctionalUnitError{FunctionalUnit: 0},
			want: "Functional unit must be greater than 0",
		},
		{
			name: "validation",
			err:  &ValidationError{Field: "carbon_intensity", Message: "must be greater than 0, got -1"},
			want: "invalid carbon_intensity: must be greater than 0, got -1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Error())
		})
	}
}

// Callers branch on error kind to tell configuration problems from transient
// upstream problems; each kind must be distinguishable with errors.As.
func TestErrorKinds_Distinguishable(t *testing.T) {
	var wrapped error = fmt.Errorf("retrieval failed: %w", &RateLimitError{})

	var rateErr *RateLimitError
	assert.True(t, errors.As(wrapped, &rateErr))

	var authErr *AuthenticationError
	assert.False(t, errors.As(wrapped, &authErr))
}

func TestAPIError_Unwrap(t *testing.T) {
	cause := errors.New("dial tcp: connection refused")
	err := &APIError{Message: cause.Error(), Err: cause}

	assert.ErrorIs(t, err, cause)
}
