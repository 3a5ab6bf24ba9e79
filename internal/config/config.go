// Package config centralizes application configuration loaded from files,
// environment variables, and command-line flags.
package config

import (
	"fmt"
	"slices"
)

// Config represents the complete configuration for the receiptly application.
type Config struct {
	// Global settings
	LogLevel string `mapstructure:"log_level" yaml:"log_level" json:"log_level"`
	Verbose  bool   `mapstructure:"verbose" yaml:"verbose" json:"verbose"`

	// Parsing pipeline configuration
	Pipeline PipelineConfig `mapstructure:"pipeline" yaml:"pipeline" json:"pipeline"`

	// Output configuration
	Output OutputConfig `mapstructure:"output" yaml:"output" json:"output"`

	// Server configuration (for serve command)
	Server ServerConfig `mapstructure:"server" yaml:"server" json:"server"`

	// Expense storage configuration
	Store StoreConfig `mapstructure:"store" yaml:"store" json:"store"`
}

// PipelineConfig contains receipt parsing settings.
type PipelineConfig struct {
	Preprocess bool             `mapstructure:"preprocess" yaml:"preprocess" json:"preprocess"`
	Recognizer RecognizerConfig `mapstructure:"recognizer" yaml:"recognizer" json:"recognizer"`
}

// RecognizerConfig contains text recognition engine settings.
type RecognizerConfig struct {
	Binary   string `mapstructure:"binary" yaml:"binary" json:"binary"`
	Language string `mapstructure:"language" yaml:"language" json:"language"`
	PSM      string `mapstructure:"psm" yaml:"psm" json:"psm"`
}

// OutputConfig contains CLI output formatting settings.
type OutputConfig struct {
	Format string `mapstructure:"format" yaml:"format" json:"format"`
	File   string `mapstructure:"file" yaml:"file" json:"file"`
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	Host            string `mapstructure:"host" yaml:"host" json:"host"`
	Port            int    `mapstructure:"port" yaml:"port" json:"port"`
	CORSOrigin      string `mapstructure:"cors_origin" yaml:"cors_origin" json:"cors_origin"`
	MaxUploadMB     int64  `mapstructure:"max_upload_mb" yaml:"max_upload_mb" json:"max_upload_mb"`
	TimeoutSec      int    `mapstructure:"timeout_sec" yaml:"timeout_sec" json:"timeout_sec"`
	ShutdownTimeout int    `mapstructure:"shutdown_timeout" yaml:"shutdown_timeout" json:"shutdown_timeout"`

	// Rate limiting
	RateLimitEnabled  bool  `mapstructure:"rate_limit_enabled" yaml:"rate_limit_enabled" json:"rate_limit_enabled"`
	RequestsPerMinute int   `mapstructure:"requests_per_minute" yaml:"requests_per_minute" json:"requests_per_minute"`
	MaxRequestsPerDay int   `mapstructure:"max_requests_per_day" yaml:"max_requests_per_day" json:"max_requests_per_day"`
	MaxDataPerDay     int64 `mapstructure:"max_data_per_day" yaml:"max_data_per_day" json:"max_data_per_day"`
}

// StoreConfig contains expense persistence settings.
type StoreConfig struct {
	Path string `mapstructure:"path" yaml:"path" json:"path"`
}

var validLogLevels = []string{"debug", "info", "warn", "error"}

var validOutputFormats = []string{"json", "yaml", "text"}

// Validate checks the configuration for invalid combinations.
func (c *Config) Validate() error {
	if c.LogLevel != "" && !slices.Contains(validLogLevels, c.LogLevel) {
		return fmt.Errorf("invalid log level %q (valid: %v)", c.LogLevel, validLogLevels)
	}
	if c.Output.Format != "" && !slices.Contains(validOutputFormats, c.Output.Format) {
		return fmt.Errorf("invalid output format %q (valid: %v)", c.Output.Format, validOutputFormats)
	}
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port %d", c.Server.Port)
	}
	if c.Server.MaxUploadMB <= 0 {
		return fmt.Errorf("max upload size must be positive, got %d", c.Server.MaxUploadMB)
	}
	if c.Pipeline.Recognizer.Binary == "" {
		return fmt.Errorf("recognizer binary must not be empty")
	}
	return nil
}
