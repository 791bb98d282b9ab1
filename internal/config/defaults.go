// Package config provides centralized configuration defaults for RepoWing.
// All default values should be defined here to ensure a single source of truth.
package config

import (
	"time"

	"github.com/spf13/viper"
)

const (
	// EnvPrefix is prepended to every environment override, e.g. REPOWING_GITHUB_TOKEN.
	EnvPrefix = "REPOWING"

	// ConfigName is the config file base name searched in ./ and $HOME.
	ConfigName = ".repowing"
)

// GitHub defaults
const (
	DefaultGitHubBaseURL           = "https://api.github.com"
	DefaultGitHubTimeout           = 15 * time.Second
	DefaultGitHubRequestsPerSecond = 5.0
)

// Analysis defaults
const (
	DefaultMaxConcurrentFetches = 8
)

// Cache defaults
const (
	DefaultCacheSize = 256
	DefaultCacheTTL  = 10 * time.Minute
)

// Server defaults
const (
	DefaultServerPort = 7777
)

// SetDefaults registers every default on v. manifestPaths is passed in so
// this package does not depend on the engine.
func SetDefaults(v *viper.Viper, manifestPaths []string) {
	v.SetDefault("github.baseURL", DefaultGitHubBaseURL)
	v.SetDefault("github.timeout", DefaultGitHubTimeout)
	v.SetDefault("github.requestsPerSecond", DefaultGitHubRequestsPerSecond)

	v.SetDefault("analysis.manifestPaths", manifestPaths)
	v.SetDefault("analysis.maxConcurrentFetches", DefaultMaxConcurrentFetches)

	v.SetDefault("cache.size", DefaultCacheSize)
	v.SetDefault("cache.ttl", DefaultCacheTTL)

	v.SetDefault("memory.path", "")

	v.SetDefault("server.port", DefaultServerPort)
	v.SetDefault("server.origins", []string{})
}
