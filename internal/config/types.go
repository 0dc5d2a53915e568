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

// Package config types define the configuration structures used throughout
// crabby. These types represent settings that can be loaded from YAML
// configuration files, environment variables, or command-line flags.
package config

// Config represents the complete configuration for crabby. It consolidates
// settings from various sources and provides a unified interface for
// accessing configuration values throughout the application.
type Config struct {
	GitHub    GitHubConfig    `yaml:"github"`
	Defaults  DefaultsConfig  `yaml:"defaults"`
	Retry     RetryConfig     `yaml:"retry"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
}

// GitHubConfig contains GitHub-specific settings including the API
// endpoint and the name of the environment variable the token is read
// from. This allows easy configuration for GitHub Enterprise deployments.
type GitHubConfig struct {
	APIEndpoint string `yaml:"api_endpoint"`
	TokenEnv    string `yaml:"token_env"`
}

// DefaultsConfig contains default settings that apply to all operations
// unless overridden by command-line flags.
type DefaultsConfig struct {
	PageSize       int    `yaml:"page_size"`
	ExclusionsFile string `yaml:"exclusions_file"`
}

// RetryConfig bounds the transport-failure retry loop. Beyond MaxRetries
// the current stream fails; there is deliberately no configurable timeout
// on top of this.
type RetryConfig struct {
	MaxRetries int `yaml:"max_retries"`
}

// RateLimitConfig controls rate limit handling. With AutoWait enabled the
// paginator sleeps until the reported reset and retries the page once;
// disabled, the first rate limit fails the run.
type RateLimitConfig struct {
	AutoWait bool `yaml:"auto_wait"`
}

// DefaultConfig returns a Config with sensible defaults suitable for most
// use cases. These defaults are optimized for public GitHub.com usage but
// can be overridden for GitHub Enterprise or special requirements.
func DefaultConfig() *Config {
	return &Config{
		GitHub: GitHubConfig{
			APIEndpoint: "https://api.github.com",
			TokenEnv:    "GITHUB_TOKEN",
		},
		Defaults: DefaultsConfig{
			PageSize:       100,
			ExclusionsFile: "data/exclusions.csv",
		},
		Retry: RetryConfig{
			MaxRetries: 3,
		},
		RateLimit: RateLimitConfig{
			AutoWait: true,
		},
	}
}
