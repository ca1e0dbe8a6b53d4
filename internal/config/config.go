// Copyright (c) 2025, s0up and the autobrr contributors.
// SPDX-License-Identifier: GPL-2.0-or-later

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"

	"github.com/genie-coder21/seedable/internal/domain"
)

// EnvPrefix is the prefix for environment variable overrides, e.g.
// SEEDABLE__MIN_DUPLICATES=3.
const EnvPrefix = "SEEDABLE__"

// AppConfig wraps the loaded configuration and its viper instance.
type AppConfig struct {
	Config *domain.Config
	viper  *viper.Viper
}

// New loads configuration from defaults, an optional TOML file, and
// SEEDABLE__ environment variables, in increasing priority.
func New(configPath string, version string) (*AppConfig, error) {
	c := &AppConfig{
		viper: viper.New(),
	}

	c.defaults(version)

	if err := c.load(configPath); err != nil {
		return nil, err
	}

	if err := c.viper.Unmarshal(c.Config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return c, nil
}

func (c *AppConfig) defaults(version string) {
	c.Config = &domain.Config{
		Version: version,
	}

	c.viper.SetDefault("host", "0.0.0.0")
	c.viper.SetDefault("port", 5000)
	c.viper.SetDefault("baseUrl", "/")
	c.viper.SetDefault("apiKey", "seedable-default-key")
	c.viper.SetDefault("logLevel", "INFO")
	c.viper.SetDefault("logPath", "")
	c.viper.SetDefault("logMaxSize", 50)
	c.viper.SetDefault("logMaxBackups", 3)

	c.viper.SetDefault("hydraUrl", "http://localhost:5076")
	c.viper.SetDefault("hydraApiKey", "")
	c.viper.SetDefault("searchTimeout", 60)
	c.viper.SetDefault("titleLookupTimeout", 10)

	c.viper.SetDefault("minDuplicates", 2)
	c.viper.SetDefault("privateTrackers", []string{})
	c.viper.SetDefault("cacheTtl", 60)

	c.viper.SetDefault("radarrUrl", "")
	c.viper.SetDefault("radarrApiKey", "")
	c.viper.SetDefault("sonarrUrl", "")
	c.viper.SetDefault("sonarrApiKey", "")

	c.viper.SetDefault("metricsEnabled", false)
	c.viper.SetDefault("metricsHost", "127.0.0.1")
	c.viper.SetDefault("metricsPort", 9074)
}

func (c *AppConfig) load(configPath string) error {
	c.viper.SetConfigType("toml")

	if configPath != "" {
		info, err := os.Stat(configPath)
		switch {
		case err == nil && info.IsDir():
			c.viper.SetConfigFile(filepath.Join(configPath, "config.toml"))
		default:
			c.viper.SetConfigFile(configPath)
		}

		if err := c.viper.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok && !os.IsNotExist(err) {
				return fmt.Errorf("failed to read config file: %w", err)
			}
			log.Debug().Str("configPath", configPath).Msg("no config file found, using defaults")
		}
	}

	c.bindEnvs()

	return nil
}

// bindEnvs maps SEEDABLE__SNAKE_CASE environment variables onto config keys.
func (c *AppConfig) bindEnvs() {
	for _, key := range []string{
		"host", "port", "baseUrl", "apiKey",
		"logLevel", "logPath", "logMaxSize", "logMaxBackups",
		"hydraUrl", "hydraApiKey", "searchTimeout", "titleLookupTimeout",
		"minDuplicates", "privateTrackers", "cacheTtl",
		"radarrUrl", "radarrApiKey", "sonarrUrl", "sonarrApiKey",
		"metricsEnabled", "metricsHost", "metricsPort",
	} {
		envKey := EnvPrefix + toEnvName(key)
		if err := c.viper.BindEnv(key, envKey); err != nil {
			log.Error().Err(err).Str("key", key).Msg("failed to bind env var")
		}
	}
}

// toEnvName converts a camelCase config key to SNAKE_CASE.
func toEnvName(key string) string {
	var b strings.Builder
	for i, r := range key {
		if r >= 'A' && r <= 'Z' && i > 0 {
			b.WriteByte('_')
		}
		b.WriteRune(r)
	}
	return strings.ToUpper(b.String())
}
