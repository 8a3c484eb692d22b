package carboncue

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Defaults applied by DefaultConfig and NewClient.
const (
	// DefaultBaseURL is the Electricity Maps API root.
	DefaultBaseURL = "https://api.electricitymap.org/v3"

	// DefaultCacheTTL is how long a fetched intensity snapshot is served from
	// cache before a refetch.
	DefaultCacheTTL = 5 * time.Minute

	// DefaultHTTPTimeout bounds a single upstream request at the transport
	// layer. The client itself imposes no timeout beyond this; callers can
	// tighten it per call with a context deadline.
	DefaultHTTPTimeout = 30 * time.Second
)

// Config holds client construction settings.
type Config struct {
	// APIKey is the Electricity Maps credential. Retrieval fails with an
	// *AuthenticationError when it is empty.
	APIKey string

	// BaseURL overrides the upstream API root. Defaults to DefaultBaseURL.
	BaseURL string

	// DisableCaching turns off the per-(region, provider) TTL cache. The zero
	// value keeps caching enabled, so a sparse Config literal still caches.
	DisableCaching bool

	// CacheTTL is the cache entry lifetime. Defaults to DefaultCacheTTL.
	CacheTTL time.Duration

	// HTTPTimeout is the transport-level timeout for upstream requests.
	// Defaults to DefaultHTTPTimeout.
	HTTPTimeout time.Duration
}

// DefaultConfig returns a Config with caching enabled and all defaults filled
// in. The API key is left empty.
func DefaultConfig() Config {
	return Config{
		BaseURL:     DefaultBaseURL,
		CacheTTL:    DefaultCacheTTL,
		HTTPTimeout: DefaultHTTPTimeout,
	}
}

// withDefaults fills zero-valued fields so that a sparse struct literal still
// yields a usable configuration.
func (c Config) withDefaults() Config {
	if c.BaseURL == "" {
		c.BaseURL = DefaultBaseURL
	}
	if c.CacheTTL == 0 {
		c.CacheTTL = DefaultCacheTTL
	}
	if c.HTTPTimeout == 0 {
		c.HTTPTimeout = DefaultHTTPTimeout
	}
	return c
}

// Validate rejects configurations NewClient cannot honor.
func (c Config) Validate() error {
	if !c.DisableCaching && c.CacheTTL < 0 {
		return &ValidationError{
			Field:   "cache_ttl",
			Message: fmt.Sprintf("must not be negative, got %s", c.CacheTTL),
		}
	}
	if c.HTTPTimeout < 0 {
		return &ValidationError{
			Field:   "http_timeout",
			Message: fmt.Sprintf("must not be negative, got %s", c.HTTPTimeout),
		}
	}
	return nil
}

// fileConfig is the YAML representation of Config. Durations are expressed in
// seconds; enable_caching is a pointer so that an absent key keeps the default
// rather than disabling the cache.
type fileConfig struct {
	APIKey             string `yaml:"api_key"`
	BaseURL            string `yaml:"base_url"`
	EnableCaching      *bool  `yaml:"enable_caching"`
	CacheTTLSeconds    int    `yaml:"cache_ttl_seconds"`
	HTTPTimeoutSeconds int    `yaml:"http_timeout_seconds"`
}

// LoadConfig reads a YAML configuration file and merges it over DefaultConfig.
func LoadConfig(path string) (Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}

	var fc fileConfig
	if err := yaml.Unmarshal(raw, &fc); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}

	cfg := DefaultConfig()
	if fc.APIKey != "" {
		cfg.APIKey = fc.APIKey
	}
	if fc.BaseURL != "" {
		cfg.BaseURL = fc.BaseURL
	}
	if fc.EnableCaching != nil {
		cfg.DisableCaching = !*fc.EnableCaching
	}
	if fc.CacheTTLSeconds > 0 {
		cfg.CacheTTL = time.Duration(fc.CacheTTLSeconds) * time.Second
	}
	if fc.HTTPTimeoutSeconds > 0 {
		cfg.HTTPTimeout = time.Duration(fc.HTTPTimeoutSeconds) * time.Second
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// ConfigFromEnv builds a Config from environment variables, starting from
// DefaultConfig:
//
//	CARBONCUE_API_KEY          credential (ELECTRICITY_MAPS_API_KEY also accepted)
//	CARBONCUE_BASE_URL         upstream API root
//	CARBONCUE_DISABLE_CACHE    "true" disables caching
//	CARBONCUE_CACHE_TTL_SECONDS cache entry lifetime in seconds
func ConfigFromEnv() Config {
	cfg := DefaultConfig()

	if key := os.Getenv("CARBONCUE_API_KEY"); key != "" {
		cfg.APIKey = key
	} else if key := os.Getenv("ELECTRICITY_MAPS_API_KEY"); key != "" {
		cfg.APIKey = key
	}
	if base := os.Getenv("CARBONCUE_BASE_URL"); base != "" {
		cfg.BaseURL = base
	}
	if strings.EqualFold(os.Getenv("CARBONCUE_DISABLE_CACHE"), "true") {
		cfg.DisableCaching = true
	}
	if ttl := os.Getenv("CARBONCUE_CACHE_TTL_SECONDS"); ttl != "" {
		if seconds, err := strconv.Atoi(ttl); err == nil && seconds > 0 {
			cfg.CacheTTL = time.Duration(seconds) * time.Second
		}
	}

	return cfg
}
