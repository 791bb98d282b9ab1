package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// ErrInvalidConfig wraps validation failures of the resolved configuration.
var ErrInvalidConfig = errors.New("invalid configuration")

var validate *validator.Validate

func init() {
	validate = validator.New()
}

// GitHubConfig configures the GitHub REST fetcher.
type GitHubConfig struct {
	Token             string        `mapstructure:"token"`
	BaseURL           string        `mapstructure:"baseURL" validate:"required,url"`
	Timeout           time.Duration `mapstructure:"timeout" validate:"gt=0"`
	RequestsPerSecond float64       `mapstructure:"requestsPerSecond" validate:"gt=0"`
}

// AnalysisConfig configures the analysis engine.
type AnalysisConfig struct {
	ManifestPaths        []string `mapstructure:"manifestPaths" validate:"required,min=1,dive,required"`
	MaxConcurrentFetches int      `mapstructure:"maxConcurrentFetches" validate:"gte=1"`
}

// CacheConfig configures the fetch cache.
type CacheConfig struct {
	Size int           `mapstructure:"size" validate:"gte=1"`
	TTL  time.Duration `mapstructure:"ttl" validate:"gt=0"`
}

// MemoryConfig points at the report history directory.
type MemoryConfig struct {
	Path string `mapstructure:"path"`
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Port    int      `mapstructure:"port" validate:"gte=1,lte=65535"`
	Origins []string `mapstructure:"origins"`
}

// Config is the fully resolved application configuration.
type Config struct {
	Verbose  bool           `mapstructure:"verbose"`
	GitHub   GitHubConfig   `mapstructure:"github"`
	Analysis AnalysisConfig `mapstructure:"analysis"`
	Cache    CacheConfig    `mapstructure:"cache"`
	Memory   MemoryConfig   `mapstructure:"memory"`
	Server   ServerConfig   `mapstructure:"server"`
}

// Load unmarshals v into a Config and validates it. Defaults must already be
// registered with SetDefaults.
func Load(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if cfg.GitHub.Token == "" {
		cfg.GitHub.Token = os.Getenv("GITHUB_TOKEN")
	}
	if cfg.Memory.Path == "" {
		cfg.Memory.Path = DefaultMemoryPath()
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks cfg against its struct tags.
func Validate(cfg *Config) error {
	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return nil
}

// HistoryDBPath returns the SQLite file inside the memory directory.
func (c *Config) HistoryDBPath() string {
	return filepath.Join(c.Memory.Path, "history.db")
}

// GetGlobalConfigDir returns ~/.repowing.
// It's a variable to allow overriding in tests.
var GetGlobalConfigDir = func() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ConfigName), nil
}

// DefaultMemoryPath resolves the history directory when memory.path is unset.
// Resolution order (first match wins):
// 1. XDG_DATA_HOME/repowing (if XDG_DATA_HOME is set)
// 2. ~/.repowing
func DefaultMemoryPath() string {
	if xdgData := os.Getenv("XDG_DATA_HOME"); xdgData != "" {
		return filepath.Join(xdgData, "repowing")
	}
	dir, err := GetGlobalConfigDir()
	if err != nil {
		return "./" + ConfigName
	}
	return dir
}
