// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - New returns a Config populated with defaults.
// - Load layers defaults, an optional YAML file and TOURGUIDE_* env vars.
// - Errors are wrapped with this package's sentinel kinds.
package config

import (
	"time"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFormat selects the log handler: text or json.
	LogFormat string `koanf:"log_format"`

	// Addr configures the HTTP listen address, e.g. ":9080".
	Addr string `koanf:"addr"`

	// MuseumBaseURL is the root of the collection API; objects live under /object/{id}.
	MuseumBaseURL string `koanf:"museum_base_url"`

	// MuseumAPIKey is forwarded verbatim as the apikey query parameter.
	MuseumAPIKey string `koanf:"museum_api_key"`

	// MuseumTimeoutMS bounds a single museum API call.
	MuseumTimeoutMS int `koanf:"museum_timeout_ms"`

	// CacheSize caps the in-memory object cache. Ignored when RedisAddr is set.
	CacheSize int `koanf:"cache_size"`

	// CacheTTLSeconds is how long a fetched object is reused. 0 disables caching.
	CacheTTLSeconds int `koanf:"cache_ttl_seconds"`

	// RedisAddr switches the object cache to a shared Redis instance.
	RedisAddr     string `koanf:"redis_addr"`
	RedisPassword string `koanf:"redis_password"`
	RedisDB       int    `koanf:"redis_db"`
}

// New creates a Config with defaults.
func New() *Config {
	return &Config{
		LogLevel:        "info",
		LogFormat:       "text",
		Addr:            ":9080",
		MuseumBaseURL:   "https://api.harvardartmuseums.org",
		MuseumTimeoutMS: 10_000,
		CacheSize:       1_000,
		CacheTTLSeconds: 300,
	}
}

// MuseumTimeout returns MuseumTimeoutMS as a duration.
func (c *Config) MuseumTimeout() time.Duration {
	return time.Duration(c.MuseumTimeoutMS) * time.Millisecond
}

// CacheTTL returns CacheTTLSeconds as a duration.
func (c *Config) CacheTTL() time.Duration {
	return time.Duration(c.CacheTTLSeconds) * time.Second
}
