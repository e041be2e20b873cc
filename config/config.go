// Package config loads the xeedo configuration from YAML with environment
// variable expansion, defaults, and validation.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds every tunable of the resume search tool.
type Config struct {
	HTTP    HTTPConfig    `yaml:"http"`
	Search  SearchConfig  `yaml:"search"`
	Extract ExtractConfig `yaml:"extract"`
	Logging LoggingConfig `yaml:"logging"`
}

// HTTPConfig holds server settings for --serve mode.
type HTTPConfig struct {
	Addr            string `yaml:"addr"`
	ReadTimeoutSec  int    `yaml:"read_timeout_sec"`
	WriteTimeoutSec int    `yaml:"write_timeout_sec"`
	ShutdownSec     int    `yaml:"shutdown_timeout_sec"`
	MaxUploadMB     int    `yaml:"max_upload_mb"`
}

// SearchConfig holds matching and excerpt settings.
type SearchConfig struct {
	ExcerptWindow int `yaml:"excerpt_window"`
}

// ExtractConfig holds extraction concurrency settings.
type ExtractConfig struct {
	Workers        int `yaml:"workers"`
	FileTimeoutSec int `yaml:"file_timeout_sec"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
}

// Load reads the config file at path. An empty path falls back to the first
// config.yaml found near the binary or source tree; no file at all yields
// the defaults.
func Load(path string) (Config, error) {
	if path == "" {
		path = findConfigPath()
	}

	var cfg Config
	if path != "" {
		data, err := os.ReadFile(filepath.Clean(path))
		if err != nil {
			return Config{}, fmt.Errorf("failed to read config %s: %w", path, err)
		}
		data = expandEnvVars(data)
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	cfg.ApplyDefaults()

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// Default returns a validated configuration with every field defaulted.
func Default() Config {
	var cfg Config
	cfg.ApplyDefaults()
	return cfg
}

// FileTimeout returns the per-file extraction deadline as a duration.
func (c *Config) FileTimeout() time.Duration {
	return time.Duration(c.Extract.FileTimeoutSec) * time.Second
}

// ApplyDefaults fills empty fields with default values.
func (c *Config) ApplyDefaults() {
	if c.HTTP.Addr == "" {
		c.HTTP.Addr = ":8080"
	}
	if c.HTTP.ReadTimeoutSec <= 0 {
		c.HTTP.ReadTimeoutSec = 10
	}
	if c.HTTP.WriteTimeoutSec <= 0 {
		c.HTTP.WriteTimeoutSec = 30
	}
	if c.HTTP.ShutdownSec <= 0 {
		c.HTTP.ShutdownSec = 10
	}
	if c.HTTP.MaxUploadMB <= 0 {
		c.HTTP.MaxUploadMB = 64
	}
	if c.Search.ExcerptWindow <= 0 {
		c.Search.ExcerptWindow = 200
	}
	if c.Extract.Workers <= 0 {
		c.Extract.Workers = runtime.NumCPU()
	}
	if c.Extract.FileTimeoutSec <= 0 {
		c.Extract.FileTimeoutSec = 30
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
}

// Validate checks the configuration for correctness.
func (c *Config) Validate() error {
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be debug, info, warn or error, got %q", c.Logging.Level)
	}
	if c.Search.ExcerptWindow < 2 {
		return fmt.Errorf("search.excerpt_window must be at least 2, got %d", c.Search.ExcerptWindow)
	}
	return nil
}

// findConfigPath locates config.yaml next to the working directory or the
// project root; returns "" when neither exists.
func findConfigPath() string {
	if path := "config.yaml"; fileExists(path) {
		return path
	}
	_, b, _, _ := runtime.Caller(0)
	projectRoot := filepath.Dir(filepath.Dir(b)) // config -> project root
	if path := filepath.Join(projectRoot, "config.yaml"); fileExists(path) {
		return path
	}
	return ""
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// expandEnvVars replaces ${VAR} and ${VAR:-default} with environment
// variable values.
var envVarRegex = regexp.MustCompile(`\$\{([^}]+)\}`)

func expandEnvVars(data []byte) []byte {
	return envVarRegex.ReplaceAllFunc(data, func(match []byte) []byte {
		expr := string(match[2 : len(match)-1])
		varName, defaultVal, hasDefault := strings.Cut(expr, ":-")
		val := os.Getenv(varName)
		if val == "" && hasDefault {
			val = defaultVal
		}
		return []byte(val)
	})
}
