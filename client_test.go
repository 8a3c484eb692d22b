package carboncue

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() zerolog.Logger {
	return zerolog.Nop()
}

// newIntensityServer returns an httptest server that answers the Electricity
// Maps carbon-intensity endpoint, counting requests and validating the wire
// contract (zone query parameter and auth-token header).
func newIntensityServer(t *testing.T, requests *atomic.Int64, status int, body string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)

		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/carbon-intensity/latest", r.URL.Path)
		assert.NotEmpty(t, r.URL.Query().Get("zone"), "request should carry a zone parameter")
		assert.NotEmpty(t, r.Header.Get("auth-token"), "request should carry the API credential")

		w.WriteHeader(status)
		fmt.Fprint(w, body)
	}))
}

func newTestClient(t *testing.T, cfg Config) *Client {
	t.Helper()
	client, err := NewClient(cfg, testLogger())
	require.NoError(t, err)
	require.NoError(t, client.Open())
	t.Cleanup(func() { _ = client.Close() })
	return client
}

const intensityBody = `{"zone":"US-NW-PACW","carbonIntensity":250.5,"fossilFuelPercentage":60.0,"renewablePercentage":40.0}`

func TestGetCurrentIntensity_ParsesResponse(t *testing.T) {
	var requests atomic.Int64
	server := newIntensityServer(t, &requests, http.StatusOK, intensityBody)
	defer server.Close()

	client := newTestClient(t, Config{APIKey: "test-key", BaseURL: server.URL})

	intensity, err := client.GetCurrentIntensity(context.Background(), "us-west-2", ProviderAWS)
	require.NoError(t, err)

	assert.Equal(t, "us-west-2", intensity.Region())
	assert.Equal(t, 250.5, intensity.Intensity())
	assert.Equal(t, "electricitymaps", intensity.Source())
	assert.False(t, intensity.Timestamp().IsZero())

	fossil, ok := intensity.FossilFuelPercentage()
	require.True(t, ok)
	assert.Equal(t, 60.0, fossil)

	renewable, ok := intensity.RenewablePercentage()
	require.True(t, ok)
	assert.Equal(t, 40.0, renewable)

	assert.Equal(t, int64(1), requests.Load())
}

func TestGetCurrentIntensity_OptionalPercentagesAbsent(t *testing.T) {
	var requests atomic.Int64
	server := newIntensityServer(t, &requests, http.StatusOK, `{"zone":"IE","carbonIntensity":300}`)
	defer server.Close()

	client := newTestClient(t, Config{APIKey: "test-key", BaseURL: server.URL})

	intensity, err := client.GetCurrentIntensity(context.Background(), "eu-west-1", ProviderAWS)
	require.NoError(t, err)

	_, ok := intensity.FossilFuelPercentage()
	assert.False(t, ok)
	_, ok = intensity.RenewablePercentage()
	assert.False(t, ok)
}

func TestGetCurrentIntensity_CacheHit(t *testing.T) {
	var requests atomic.Int64
	server := newIntensityServer(t, &requests, http.StatusOK, intensityBody)
	defer server.Close()

	client := newTestClient(t, Config{
		APIKey:   "test-key",
		BaseURL:  server.URL,
		CacheTTL: 60 * time.Second,
	})

	first, err := client.GetCurrentIntensity(context.Background(), "us-west-2", ProviderAWS)
	require.NoError(t, err)

	second, err := client.GetCurrentIntensity(context.Background(), "us-west-2", ProviderAWS)
	require.NoError(t, err)

	assert.Equal(t, int64(1), requests.Load(), "second call within TTL should not reach the network")
	assert.Equal(t, first.Timestamp(), second.Timestamp(), "cache hits must not refresh the timestamp")
	assert.Equal(t, first.Intensity(), second.Intensity())
}

func TestGetCurrentIntensity_CacheExpiry(t *testing.T) {
	var requests atomic.Int64
	server := newIntensityServer(t, &requests, http.StatusOK, intensityBody)
	defer server.Close()

	client := newTestClient(t, Config{
		APIKey:   "test-key",
		BaseURL:  server.URL,
		CacheTTL: 30 * time.Millisecond,
	})

	first, err := client.GetCurrentIntensity(context.Background(), "us-west-2", ProviderAWS)
	require.NoError(t, err)

	time.Sleep(60 * time.Millisecond)

	second, err := client.GetCurrentIntensity(context.Background(), "us-west-2", ProviderAWS)
	require.NoError(t, err)

	assert.Equal(t, int64(2), requests.Load(), "call after TTL expiry should refetch")
	assert.True(t, second.Timestamp().After(first.Timestamp()), "refetch should carry a new timestamp")
}

func TestGetCurrentIntensity_CacheKeysAreIndependent(t *testing.T) {
	var requests atomic.Int64
	server := newIntensityServer(t, &requests, http.StatusOK, intensityBody)
	defer server.Close()

	client := newTestClient(t, Config{
		APIKey:   "test-key",
		BaseURL:  server.URL,
		CacheTTL: 60 * time.Second,
	})

	_, err := client.GetCurrentIntensity(context.Background(), "us-west-2", ProviderAWS)
	require.NoError(t, err)
	_, err = client.GetCurrentIntensity(context.Background(), "eu-west-1", ProviderAWS)
	require.NoError(t, err)
	// Same region code under a different provider is a distinct key.
	_, err = client.GetCurrentIntensity(context.Background(), "us-west1", ProviderGCP)
	require.NoError(t, err)

	assert.Equal(t, int64(3), requests.Load())
}

func TestGetCurrentIntensity_SparseConfigCachesByDefault(t *testing.T) {
	var requests atomic.Int64
	server := newIntensityServer(t, &requests, http.StatusOK, intensityBody)
	defer server.Close()

	// Only the key and URL set: caching and the TTL come from defaults.
	client := newTestClient(t, Config{APIKey: "test-key", BaseURL: server.URL})

	first, err := client.GetCurrentIntensity(context.Background(), "us-west-2", ProviderAWS)
	require.NoError(t, err)

	second, err := client.GetCurrentIntensity(context.Background(), "us-west-2", ProviderAWS)
	require.NoError(t, err)

	assert.Equal(t, int64(1), requests.Load(), "a sparse config must still cache")
	assert.Equal(t, first.Timestamp(), second.Timestamp())
}

func TestGetCurrentIntensity_CachingDisabled(t *testing.T) {
	var requests atomic.Int64
	server := newIntensityServer(t, &requests, http.StatusOK, intensityBody)
	defer server.Close()

	client := newTestClient(t, Config{
		APIKey:         "test-key",
		BaseURL:        server.URL,
		DisableCaching: true,
	})

	_, err := client.GetCurrentIntensity(context.Background(), "us-west-2", ProviderAWS)
	require.NoError(t, err)
	_, err = client.GetCurrentIntensity(context.Background(), "us-west-2", ProviderAWS)
	require.NoError(t, err)

	assert.Equal(t, int64(2), requests.Load(), "with caching disabled every call reaches the network")
}

func TestGetCurrentIntensity_StatusMapping(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		check  func(t *testing.T, err error)
	}{
		{
			name:   "401 maps to AuthenticationError",
			status: http.StatusUnauthorized,
			check: func(t *testing.T, err error) {
				var authErr *AuthenticationError
				require.ErrorAs(t, err, &authErr)
				assert.Equal(t, "Invalid API key", authErr.Reason)
			},
		},
		{
			name:   "404 maps to DataNotAvailableError",
			status: http.StatusNotFound,
			check: func(t *testing.T, err error) {
				var dataErr *DataNotAvailableError
				require.ErrorAs(t, err, &dataErr)
				assert.Equal(t, "us-west-2", dataErr.Region)
				assert.Equal(t, "US-NW-PACW", dataErr.Zone)
			},
		},
		{
			name:   "429 maps to RateLimitError",
			status: http.StatusTooManyRequests,
			check: func(t *testing.T, err error) {
				var rateErr *RateLimitError
				require.ErrorAs(t, err, &rateErr)
				assert.Equal(t, "API rate limit exceeded", err.Error())
			},
		},
		{
			name:   "500 maps to APIError with status code",
			status: http.StatusInternalServerError,
			body:   "upstream exploded",
			check: func(t *testing.T, err error) {
				var apiErr *APIError
				require.ErrorAs(t, err, &apiErr)
				assert.Equal(t, http.StatusInternalServerError, apiErr.StatusCode)
				assert.Contains(t, apiErr.Message, "upstream exploded")
			},
		},
		{
			name:   "malformed 200 body maps to APIError",
			status: http.StatusOK,
			body:   `{"carbonIntensity":`,
			check: func(t *testing.T, err error) {
				var apiErr *APIError
				require.ErrorAs(t, err, &apiErr)
				assert.Equal(t, http.StatusOK, apiErr.StatusCode)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var requests atomic.Int64
			server := newIntensityServer(t, &requests, tt.status, tt.body)
			defer server.Close()

			client := newTestClient(t, Config{APIKey: "test-key", BaseURL: server.URL})

			_, err := client.GetCurrentIntensity(context.Background(), "us-west-2", ProviderAWS)
			require.Error(t, err)
			tt.check(t, err)
			assert.Equal(t, int64(1), requests.Load())
		})
	}
}

func TestGetCurrentIntensity_FailedFetchDoesNotPopulateCache(t *testing.T) {
	var requests atomic.Int64
	server := newIntensityServer(t, &requests, http.StatusInternalServerError, "boom")
	defer server.Close()

	client := newTestClient(t, Config{
		APIKey:   "test-key",
		BaseURL:  server.URL,
		CacheTTL: 60 * time.Second,
	})

	_, err := client.GetCurrentIntensity(context.Background(), "us-west-2", ProviderAWS)
	require.Error(t, err)
	_, err = client.GetCurrentIntensity(context.Background(), "us-west-2", ProviderAWS)
	require.Error(t, err)

	assert.Equal(t, int64(2), requests.Load(), "failures must not be cached")
}

func TestGetCurrentIntensity_MissingAPIKey(t *testing.T) {
	var requests atomic.Int64
	server := newIntensityServer(t, &requests, http.StatusOK, intensityBody)
	defer server.Close()

	client := newTestClient(t, Config{BaseURL: server.URL})

	_, err := client.GetCurrentIntensity(context.Background(), "us-west-2", ProviderAWS)

	var authErr *AuthenticationError
	require.ErrorAs(t, err, &authErr)
	assert.Equal(t, "API key not configured", authErr.Reason)
	assert.Equal(t, int64(0), requests.Load(), "credential check must precede any network call")
}

func TestGetCurrentIntensity_InvalidProvider(t *testing.T) {
	var requests atomic.Int64
	server := newIntensityServer(t, &requests, http.StatusOK, intensityBody)
	defer server.Close()

	client := newTestClient(t, Config{APIKey: "test-key", BaseURL: server.URL})

	_, err := client.GetCurrentIntensity(context.Background(), "us-west-2", Provider("invalid"))

	var providerErr *InvalidProviderError
	require.ErrorAs(t, err, &providerErr)
	assert.Equal(t, "invalid", providerErr.Provider)
	assert.Equal(t, int64(0), requests.Load())
}

func TestGetCurrentIntensity_InvalidRegion(t *testing.T) {
	var requests atomic.Int64
	server := newIntensityServer(t, &requests, http.StatusOK, intensityBody)
	defer server.Close()

	client := newTestClient(t, Config{APIKey: "test-key", BaseURL: server.URL})

	_, err := client.GetCurrentIntensity(context.Background(), "invalid-region", ProviderAWS)

	var regionErr *InvalidRegionError
	require.ErrorAs(t, err, &regionErr)
	assert.Equal(t, "invalid-region", regionErr.Region)
	assert.Equal(t, int64(0), requests.Load())
}

func TestGetCurrentIntensity_DefaultProviderIsAWS(t *testing.T) {
	var requests atomic.Int64
	server := newIntensityServer(t, &requests, http.StatusOK, intensityBody)
	defer server.Close()

	client := newTestClient(t, Config{APIKey: "test-key", BaseURL: server.URL})

	intensity, err := client.GetCurrentIntensity(context.Background(), "us-west-2", "")
	require.NoError(t, err)
	assert.Equal(t, "us-west-2", intensity.Region())
}

func TestGetCurrentIntensity_ClosedClient(t *testing.T) {
	client, err := NewClient(Config{APIKey: "test-key"}, testLogger())
	require.NoError(t, err)

	// Never opened.
	_, err = client.GetCurrentIntensity(context.Background(), "us-west-2", ProviderAWS)
	assert.ErrorIs(t, err, ErrClientClosed)
}

func TestGetCurrentIntensity_ContextCancelled(t *testing.T) {
	var requests atomic.Int64
	server := newIntensityServer(t, &requests, http.StatusOK, intensityBody)
	defer server.Close()

	client := newTestClient(t, Config{APIKey: "test-key", BaseURL: server.URL})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.GetCurrentIntensity(ctx, "us-west-2", ProviderAWS)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestGetCurrentIntensity_SlowFetchLogsWarning(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(20 * time.Millisecond)
		fmt.Fprint(w, intensityBody)
	}))
	defer server.Close()

	var logs bytes.Buffer
	client, err := NewClient(Config{APIKey: "test-key", BaseURL: server.URL}, zerolog.New(&logs))
	require.NoError(t, err)
	client.slowFetchWarn = time.Millisecond
	require.NoError(t, client.Open())
	defer func() { _ = client.Close() }()

	_, err = client.GetCurrentIntensity(context.Background(), "us-west-2", ProviderAWS)
	require.NoError(t, err)

	assert.Contains(t, logs.String(), "slow carbon intensity fetch")
}

func TestClient_OpenCloseIdempotent(t *testing.T) {
	client, err := NewClient(Config{APIKey: "test-key"}, testLogger())
	require.NoError(t, err)

	require.NoError(t, client.Open())
	require.NoError(t, client.Open())
	require.NoError(t, client.Close())
	require.NoError(t, client.Close())
}

func TestClient_Session(t *testing.T) {
	var requests atomic.Int64
	server := newIntensityServer(t, &requests, http.StatusOK, intensityBody)
	defer server.Close()

	client, err := NewClient(Config{APIKey: "test-key", BaseURL: server.URL}, testLogger())
	require.NoError(t, err)

	err = client.Session(context.Background(), func(ctx context.Context) error {
		_, err := client.GetCurrentIntensity(ctx, "us-west-2", ProviderAWS)
		return err
	})
	require.NoError(t, err)

	// The session is released on exit; further retrieval is a lifecycle error.
	_, err = client.GetCurrentIntensity(context.Background(), "us-west-2", ProviderAWS)
	assert.ErrorIs(t, err, ErrClientClosed)
}

func TestClient_SessionReleasesOnError(t *testing.T) {
	client, err := NewClient(Config{APIKey: "test-key"}, testLogger())
	require.NoError(t, err)

	wantErr := errors.New("caller failure")
	err = client.Session(context.Background(), func(ctx context.Context) error {
		return wantErr
	})
	assert.ErrorIs(t, err, wantErr)

	_, err = client.GetCurrentIntensity(context.Background(), "us-west-2", ProviderAWS)
	assert.ErrorIs(t, err, ErrClientClosed)
}

func TestClient_SessionReleasesOnPanic(t *testing.T) {
	client, err := NewClient(Config{APIKey: "test-key"}, testLogger())
	require.NoError(t, err)

	assert.Panics(t, func() {
		_ = client.Session(context.Background(), func(ctx context.Context) error {
			panic("caller panic")
		})
	})

	_, err = client.GetCurrentIntensity(context.Background(), "us-west-2", ProviderAWS)
	assert.ErrorIs(t, err, ErrClientClosed)
}

func TestGetCurrentIntensity_CacheSurvivesReopen(t *testing.T) {
	var requests atomic.Int64
	server := newIntensityServer(t, &requests, http.StatusOK, intensityBody)
	defer server.Close()

	client := newTestClient(t, Config{
		APIKey:   "test-key",
		BaseURL:  server.URL,
		CacheTTL: 60 * time.Second,
	})

	first, err := client.GetCurrentIntensity(context.Background(), "us-west-2", ProviderAWS)
	require.NoError(t, err)

	require.NoError(t, client.Close())
	require.NoError(t, client.Open())

	second, err := client.GetCurrentIntensity(context.Background(), "us-west-2", ProviderAWS)
	require.NoError(t, err)

	assert.Equal(t, int64(1), requests.Load())
	assert.Equal(t, first.Timestamp(), second.Timestamp())
}

func TestNewClient_RejectsInvalidConfig(t *testing.T) {
	_, err := NewClient(Config{APIKey: "test-key", CacheTTL: -time.Second}, testLogger())

	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "cache_ttl", validationErr.Field)
}
