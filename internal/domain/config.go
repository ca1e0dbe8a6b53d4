// Copyright (c) 2025, s0up and the autobrr contributors.
// SPDX-License-Identifier: GPL-2.0-or-later

package domain

import "strings"

// Config represents the application configuration
type Config struct {
	Version       string
	Host          string `toml:"host" mapstructure:"host"`
	Port          int    `toml:"port" mapstructure:"port"`
	BaseURL       string `toml:"baseUrl" mapstructure:"baseUrl"`
	APIKey        string `toml:"apiKey" mapstructure:"apiKey"`
	LogLevel      string `toml:"logLevel" mapstructure:"logLevel"`
	LogPath       string `toml:"logPath" mapstructure:"logPath"`
	LogMaxSize    int    `toml:"logMaxSize" mapstructure:"logMaxSize"`
	LogMaxBackups int    `toml:"logMaxBackups" mapstructure:"logMaxBackups"`

	// NZBHydra2 metasearch aggregator
	HydraURL           string `toml:"hydraUrl" mapstructure:"hydraUrl"`
	HydraAPIKey        string `toml:"hydraApiKey" mapstructure:"hydraApiKey"`
	SearchTimeout      int    `toml:"searchTimeout" mapstructure:"searchTimeout"`
	TitleLookupTimeout int    `toml:"titleLookupTimeout" mapstructure:"titleLookupTimeout"`

	// Cross-seed filtering
	MinDuplicates   int      `toml:"minDuplicates" mapstructure:"minDuplicates"`
	PrivateTrackers []string `toml:"privateTrackers" mapstructure:"privateTrackers"`
	CacheTTL        int      `toml:"cacheTtl" mapstructure:"cacheTtl"`

	// Optional title lookup services
	RadarrURL    string `toml:"radarrUrl" mapstructure:"radarrUrl"`
	RadarrAPIKey string `toml:"radarrApiKey" mapstructure:"radarrApiKey"`
	SonarrURL    string `toml:"sonarrUrl" mapstructure:"sonarrUrl"`
	SonarrAPIKey string `toml:"sonarrApiKey" mapstructure:"sonarrApiKey"`

	MetricsEnabled bool   `toml:"metricsEnabled" mapstructure:"metricsEnabled"`
	MetricsHost    string `toml:"metricsHost" mapstructure:"metricsHost"`
	MetricsPort    int    `toml:"metricsPort" mapstructure:"metricsPort"`
}

// PrivateTrackerList returns the configured private trackers with blanks and
// surrounding whitespace removed.
func (c *Config) PrivateTrackerList() []string {
	trackers := make([]string, 0, len(c.PrivateTrackers))
	for _, tracker := range c.PrivateTrackers {
		if trimmed := strings.TrimSpace(tracker); trimmed != "" {
			trackers = append(trackers, trimmed)
		}
	}
	return trackers
}
