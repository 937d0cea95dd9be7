// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// HTTPConfig holds shared HTTP settings used by components that make
// network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout" mapstructure:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "signal-scout/0.1"). Reddit rejects requests without one.
	UserAgent string `json:"user_agent" yaml:"user_agent" mapstructure:"user_agent"`
}

// RedditConfig holds reddit adapter settings.
type RedditConfig struct {
	// AccessToken is an optional OAuth token. When set, requests go to
	// the authenticated endpoint for higher rate limits.
	AccessToken string `json:"access_token,omitempty" yaml:"access_token,omitempty" mapstructure:"access_token"`

	// RequireAuth refuses to call the public endpoint when no token is
	// configured, instead of degrading to anonymous access.
	RequireAuth bool `json:"require_auth" yaml:"require_auth" mapstructure:"require_auth"`
}

// DevtoConfig holds dev.to adapter settings.
type DevtoConfig struct {
	// APIKey is an optional dev.to API key for higher rate limits.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty" mapstructure:"api_key"`
}

// SearchConfig holds settings for the search pipeline.
type SearchConfig struct {
	HTTPConfig `yaml:",inline" mapstructure:",squash"`

	// MaxPerPlatform caps items returned by one adapter (default 25).
	MaxPerPlatform int `json:"max_per_platform" yaml:"max_per_platform" mapstructure:"max_per_platform"`

	// MaxResults caps the ranked result set (default 40). Truncation
	// happens after scoring, so it never drops a higher-scored item.
	MaxResults int `json:"max_results" yaml:"max_results" mapstructure:"max_results"`

	// AdapterTimeout bounds one adapter call, retries included (default 8s).
	AdapterTimeout time.Duration `json:"adapter_timeout" yaml:"adapter_timeout" mapstructure:"adapter_timeout"`

	// RequestsPerSecond rate-limits outbound calls per adapter (default 1).
	RequestsPerSecond float64 `json:"requests_per_second" yaml:"requests_per_second" mapstructure:"requests_per_second"`

	Reddit RedditConfig `json:"reddit" yaml:"reddit" mapstructure:"reddit"`
	Devto  DevtoConfig  `json:"devto" yaml:"devto" mapstructure:"devto"`
}

// ServerConfig holds settings for the HTTP boundary.
type ServerConfig struct {
	// Addr is the listen address (default ":8080").
	Addr string `json:"addr" yaml:"addr" mapstructure:"addr"`

	// AllowOrigins configures CORS (default "*").
	AllowOrigins []string `json:"allow_origins" yaml:"allow_origins" mapstructure:"allow_origins"`
}

// HistoryConfig holds settings for the boundary-owned run history.
type HistoryConfig struct {
	// DBPath is the SQLite file path (default "data/history.db").
	DBPath string `json:"db_path" yaml:"db_path" mapstructure:"db_path"`

	// MaxEntries bounds the history size; older runs are pruned
	// (default 50).
	MaxEntries int `json:"max_entries" yaml:"max_entries" mapstructure:"max_entries"`
}

// PipelineConfig groups all component configurations.
type PipelineConfig struct {
	Search  SearchConfig  `json:"search" yaml:"search" mapstructure:"search"`
	Server  ServerConfig  `json:"server" yaml:"server" mapstructure:"server"`
	History HistoryConfig `json:"history" yaml:"history" mapstructure:"history"`
}

// DefaultConfig returns the configuration used when no config file or
// environment overrides are present.
func DefaultConfig() PipelineConfig {
	return PipelineConfig{
		Search: SearchConfig{
			HTTPConfig: HTTPConfig{
				Timeout:   10 * time.Second,
				UserAgent: "signal-scout/0.1",
			},
			MaxPerPlatform:    25,
			MaxResults:        40,
			AdapterTimeout:    8 * time.Second,
			RequestsPerSecond: 1,
		},
		Server: ServerConfig{
			Addr:         ":8080",
			AllowOrigins: []string{"*"},
		},
		History: HistoryConfig{
			DBPath:     "data/history.db",
			MaxEntries: 50,
		},
	}
}
