// Copyright 2025 SirSeer, LLC
//
// Licensed under the Business Source License 1.1 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     https://mariadb.com/bsl11
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package config provides configuration management for crabby with support
// for multiple configuration sources and a well-defined precedence order.
//
// Configuration sources (in precedence order, highest to lowest):
//  1. Command-line flags
//  2. Environment variables
//  3. Configuration file
//  4. Built-in defaults
//
// The package supports YAML configuration files and provides automatic
// discovery of configuration in standard locations.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// LoadConfig loads configuration from multiple sources and applies them in
// the correct precedence order. If configPath is provided, it loads from
// that specific file. Otherwise, it searches standard locations:
//   - .crabby.yaml (current directory)
//   - .crabby.yml (current directory)
//   - ~/.crabby/config.yaml
//   - ~/.crabby/config.yml
//
// Environment variables are applied after loading the config file, allowing
// runtime overrides.
//
// Returns an error if the specified config file cannot be loaded, but will
// succeed with defaults if no config file is found in standard locations.
func LoadConfig(configPath string) (*Config, error) {
	cfg := DefaultConfig()

	if configPath != "" {
		if err := loadConfigFile(configPath, cfg); err != nil {
			return nil, fmt.Errorf("failed to load config file: %w", err)
		}
	} else {
		defaultPaths := []string{
			".crabby.yaml",
			".crabby.yml",
			filepath.Join(os.Getenv("HOME"), ".crabby", "config.yaml"),
			filepath.Join(os.Getenv("HOME"), ".crabby", "config.yml"),
		}

		for _, path := range defaultPaths {
			if _, err := os.Stat(path); err == nil {
				if err := loadConfigFile(path, cfg); err != nil {
					return nil, fmt.Errorf("failed to load config from %s: %w", path, err)
				}
				break
			}
		}
	}

	applyEnvOverrides(cfg)

	return cfg, nil
}

// loadConfigFile reads and parses a YAML config file
func loadConfigFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	return nil
}

// applyEnvOverrides applies environment variable overrides to config
func applyEnvOverrides(cfg *Config) {
	if endpoint := os.Getenv("GITHUB_API_ENDPOINT"); endpoint != "" {
		cfg.GitHub.APIEndpoint = endpoint
	}

	if pageSize := os.Getenv("CRABBY_PAGE_SIZE"); pageSize != "" {
		if size, err := parsePositiveInt(pageSize); err == nil {
			cfg.Defaults.PageSize = size
		}
	}
	if exclusions := os.Getenv("CRABBY_EXCLUSIONS_FILE"); exclusions != "" {
		cfg.Defaults.ExclusionsFile = exclusions
	}
	if retries := os.Getenv("CRABBY_MAX_RETRIES"); retries != "" {
		if n, err := parsePositiveInt(retries); err == nil {
			cfg.Retry.MaxRetries = n
		}
	}
	if autoWait := os.Getenv("CRABBY_RATE_LIMIT_AUTO_WAIT"); autoWait != "" {
		cfg.RateLimit.AutoWait = parseBool(autoWait)
	}
}

// parsePositiveInt parses a string to a positive integer
func parsePositiveInt(s string) (int, error) {
	var i int
	_, err := fmt.Sscanf(s, "%d", &i)
	if err != nil {
		return 0, fmt.Errorf("failed to parse integer from '%s': %w", s, err)
	}
	if i <= 0 {
		return 0, fmt.Errorf("value must be positive, got: %d", i)
	}
	return i, nil
}

// parseBool parses various boolean representations
func parseBool(s string) bool {
	s = strings.ToLower(strings.TrimSpace(s))
	return s == "true" || s == "yes" || s == "1" || s == "on"
}

// Token returns the credential from the configured environment variable,
// or the empty string when unauthenticated.
func (c *Config) Token() string {
	return os.Getenv(c.GitHub.TokenEnv)
}

// Validate checks if the configuration contains valid values. This should
// be called after loading configuration to catch invalid settings early.
func (c *Config) Validate() error {
	if c.Defaults.PageSize <= 0 {
		return fmt.Errorf("page size must be positive, got: %d", c.Defaults.PageSize)
	}
	if c.Defaults.PageSize > 100 {
		return fmt.Errorf("page size %d exceeds GitHub API limit of 100", c.Defaults.PageSize)
	}
	if c.Retry.MaxRetries < 0 {
		return fmt.Errorf("max retries cannot be negative, got: %d", c.Retry.MaxRetries)
	}
	if c.GitHub.APIEndpoint == "" {
		return fmt.Errorf("GitHub API endpoint cannot be empty")
	}
	return nil
}
