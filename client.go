package carboncue

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sync"
	"time"

	json "github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/rshade/carboncue-go/internal/cache"
	"github.com/rshade/carboncue-go/region"
)

// sourceName labels CarbonIntensity snapshots produced by this client.
const sourceName = "electricitymaps"

// maxErrorBodyBytes bounds how much of an upstream error body is kept for the
// APIError message.
const maxErrorBodyBytes = 512

// defaultSlowFetchWarn is how long an upstream fetch may take before the
// client logs it at warn level.
const defaultSlowFetchWarn = 5 * time.Second

// cacheKey identifies one cached intensity snapshot. Caching is strictly
// per (region, provider) pair, never cross-region.
type cacheKey struct {
	Region   string
	Provider Provider
}

// Client retrieves grid carbon intensity for cloud regions from Electricity
// Maps and computes SCI scores.
//
// The network session is scoped: call Open before retrieval and Close when
// done, or wrap the work in Session. Retrieval outside an open session fails
// with ErrClientClosed. A Client is safe for concurrent use; concurrent
// requests for the same uncached key may each reach the network (last response
// wins the cache slot).
type Client struct {
	cfg    Config
	logger zerolog.Logger

	mu    sync.Mutex
	httpc *http.Client // nil while the session is closed

	cache *cache.Cache[cacheKey, CarbonIntensity] // nil when caching is disabled

	slowFetchWarn time.Duration
}

// NewClient validates cfg (filling defaults for zero-valued fields) and
// returns a Client in the closed state.
func NewClient(cfg Config, logger zerolog.Logger) (*Client, error) {
	cfg = cfg.withDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	c := &Client{
		cfg:           cfg,
		logger:        logger,
		slowFetchWarn: defaultSlowFetchWarn,
	}
	if !cfg.DisableCaching {
		c.cache = cache.New[cacheKey, CarbonIntensity](cfg.CacheTTL)
	}
	return c, nil
}

// Open starts the network session. Opening an already-open client is a no-op.
func (c *Client) Open() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.httpc != nil {
		return nil
	}
	c.httpc = &http.Client{Timeout: c.cfg.HTTPTimeout}
	return nil
}

// Close tears down the network session and clears the internal handle.
// Closing an already-closed client is a no-op. The cache survives Close; a
// reopened client serves unexpired entries.
func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.httpc != nil {
		c.httpc.CloseIdleConnections()
		c.httpc = nil
	}
	return nil
}

// Session runs fn inside an open session, guaranteeing the session is released
// on every exit path, including a panic inside fn.
func (c *Client) Session(ctx context.Context, fn func(ctx context.Context) error) error {
	if err := c.Open(); err != nil {
		return err
	}
	defer func() { _ = c.Close() }()
	return fn(ctx)
}

// session returns the live HTTP client, or nil when closed.
func (c *Client) session() *http.Client {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.httpc
}

// intensityResponse mirrors the Electricity Maps carbon-intensity payload.
type intensityResponse struct {
	Zone                 string   `json:"zone"`
	CarbonIntensity      float64  `json:"carbonIntensity"`
	FossilFuelPercentage *float64 `json:"fossilFuelPercentage"`
	RenewablePercentage  *float64 `json:"renewablePercentage"`
}

// GetCurrentIntensity returns the current grid carbon intensity for a cloud
// region.
//
// The region is resolved to an Electricity Maps zone first; unknown regions or
// providers fail with *InvalidRegionError / *InvalidProviderError before any
// network activity. With caching enabled, an unexpired snapshot is returned
// verbatim, original timestamp included. On a miss the client issues a single
// GET and classifies the response: 401 → *AuthenticationError, 404 →
// *DataNotAvailableError, 429 → *RateLimitError, any other non-200 →
// *APIError. A successful fetch atomically replaces the cache entry for the
// key. A failed retrieval never populates the cache.
func (c *Client) GetCurrentIntensity(ctx context.Context, regionCode string, provider Provider) (CarbonIntensity, error) {
	if provider == "" {
		provider = ProviderAWS
	}

	zone, err := region.ZoneID(regionCode, string(provider))
	if err != nil {
		return CarbonIntensity{}, translateMapperError(err)
	}

	key := cacheKey{Region: regionCode, Provider: provider}
	if c.cache != nil {
		if snapshot, ok := c.cache.Get(key); ok {
			c.logger.Debug().
				Str("region", regionCode).
				Str("provider", string(provider)).
				Str("zone", zone).
				Time("fetched_at", snapshot.Timestamp()).
				Msg("carbon intensity served from cache")
			return snapshot, nil
		}
	}

	if c.cfg.APIKey == "" {
		return CarbonIntensity{}, &AuthenticationError{Reason: "API key not configured"}
	}

	httpc := c.session()
	if httpc == nil {
		return CarbonIntensity{}, ErrClientClosed
	}

	requestID := uuid.New().String()
	start := time.Now()

	body, err := c.fetchIntensity(ctx, httpc, zone, regionCode)
	if err != nil {
		c.logger.Error().
			Str("request_id", requestID).
			Str("region", regionCode).
			Str("zone", zone).
			Err(err).
			Msg("carbon intensity fetch failed")
		return CarbonIntensity{}, err
	}

	opts := []CarbonIntensityOption{WithTimestamp(time.Now().UTC())}
	if body.FossilFuelPercentage != nil {
		opts = append(opts, WithFossilFuelPercentage(*body.FossilFuelPercentage))
	}
	if body.RenewablePercentage != nil {
		opts = append(opts, WithRenewablePercentage(*body.RenewablePercentage))
	}

	snapshot, err := NewCarbonIntensity(regionCode, body.CarbonIntensity, sourceName, opts...)
	if err != nil {
		return CarbonIntensity{}, err
	}

	if c.cache != nil {
		c.cache.Set(key, snapshot)
	}

	duration := time.Since(start)
	c.logger.Info().
		Str("request_id", requestID).
		Str("region", regionCode).
		Str("provider", string(provider)).
		Str("zone", zone).
		Float64("carbon_intensity", snapshot.Intensity()).
		Int64("duration_ms", duration.Milliseconds()).
		Msg("carbon intensity fetched")
	if duration >= c.slowFetchWarn {
		c.logger.Warn().
			Str("request_id", requestID).
			Str("region", regionCode).
			Str("zone", zone).
			Int64("duration_ms", duration.Milliseconds()).
			Msg("slow carbon intensity fetch")
	}

	return snapshot, nil
}

// fetchIntensity issues the upstream GET and maps the response status onto the
// error taxonomy. Only a 200 returns a decoded body.
func (c *Client) fetchIntensity(ctx context.Context, httpc *http.Client, zone, regionCode string) (*intensityResponse, error) {
	endpoint := fmt.Sprintf("%s/carbon-intensity/latest?zone=%s", c.cfg.BaseURL, url.QueryEscape(zone))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, &APIError{Message: err.Error(), Err: err}
	}
	req.Header.Set("auth-token", c.cfg.APIKey)

	resp, err := httpc.Do(req)
	if err != nil {
		return nil, &APIError{Message: err.Error(), Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	switch resp.StatusCode {
	case http.StatusOK:
		var body intensityResponse
		if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
			return nil, &APIError{
				StatusCode: resp.StatusCode,
				Message:    "malformed response body",
				Err:        err,
			}
		}
		return &body, nil
	case http.StatusUnauthorized:
		return nil, &AuthenticationError{Reason: "Invalid API key"}
	case http.StatusNotFound:
		return nil, &DataNotAvailableError{Region: regionCode, Zone: zone}
	case http.StatusTooManyRequests:
		return nil, &RateLimitError{Zone: zone}
	default:
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes))
		return nil, &APIError{
			StatusCode: resp.StatusCode,
			Message:    string(detail),
		}
	}
}

// translateMapperError converts region package errors into the public error
// taxonomy; anything unexpected passes through unchanged.
func translateMapperError(err error) error {
	var providerErr *region.UnsupportedProviderError
	if errors.As(err, &providerErr) {
		return &InvalidProviderError{Provider: providerErr.Provider}
	}
	var regionErr *region.UnsupportedRegionError
	if errors.As(err, &regionErr) {
		return &InvalidRegionError{Provider: regionErr.Provider, Region: regionErr.Region}
	}
	return err
}
