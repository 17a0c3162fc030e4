// Package config provides configuration management for the rank generator.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"podrank/internal/clock"
	"podrank/pkg/utils"
)

// Source types that can be declared in configuration.
const (
	SourceTypeFile = "file"
	SourceTypeJSON = "json"
	SourceTypeHTML = "html"
)

// Configuration validation errors.
var (
	ErrMissingOutputDir         = errors.New("output.dir is required")
	ErrMissingHistoryDir        = errors.New("output.history_dir is required")
	ErrInvalidTimezone          = errors.New("clock.timezone is not a known IANA zone")
	ErrInvalidMaxAttempts       = errors.New("retry.max_attempts must be at least 1")
	ErrInvalidInitialDelay      = errors.New("retry.initial_delay_ms must be non-negative")
	ErrInvalidBackoffMultiplier = errors.New("retry.backoff_multiplier must be >= 1.0")
	ErrInvalidTimeout           = errors.New("retry.timeout_sec must be at least 1")
	ErrInvalidBodyLimit         = errors.New("retry.max_body_kb must be at least 1")
	ErrInvalidLogLevel          = errors.New("logging.level must be one of: debug, info, warn, error")
	ErrInvalidLogFormat         = errors.New("logging.format must be 'text' or 'json'")
	ErrSourceMissingName        = errors.New("name is required")
	ErrSourceDuplicateName      = errors.New("name is declared more than once")
	ErrSourceInvalidType        = errors.New("type must be one of: file, json, html")
	ErrSourceMissingFile        = errors.New("file is required for file sources")
	ErrSourceInvalidURL         = errors.New("url must be an absolute http(s) URL")
)

// Config represents the complete configuration.
type Config struct {
	Output  OutputConfig   `koanf:"output" yaml:"output"`
	Clock   ClockConfig    `koanf:"clock" yaml:"clock"`
	Logging LoggingConfig  `koanf:"logging" yaml:"logging"`
	Retry   RetryPolicy    `koanf:"retry" yaml:"retry"`
	Metrics MetricsConfig  `koanf:"metrics" yaml:"metrics"`
	Sources []SourceConfig `koanf:"sources" yaml:"sources"`
}

// OutputConfig defines where and how artifacts are written.
type OutputConfig struct {
	Dir           string `koanf:"dir" yaml:"dir"`
	HistoryDir    string `koanf:"history_dir" yaml:"history_dir"`
	Title         string `koanf:"title" yaml:"title"`
	AlignTables   bool   `koanf:"align_tables" yaml:"align_tables"`
	SignDocuments bool   `koanf:"sign_documents" yaml:"sign_documents"`
}

// ClockConfig selects the civil time zone of published timestamps.
type ClockConfig struct {
	Timezone string `koanf:"timezone" yaml:"timezone"`
}

// LoggingConfig defines logging behavior.
type LoggingConfig struct {
	Level  string `koanf:"level" yaml:"level"`
	Format string `koanf:"format" yaml:"format"`
}

// RetryPolicy defines retry behavior for HTTP-backed sources.
type RetryPolicy struct {
	MaxAttempts       int     `koanf:"max_attempts" yaml:"max_attempts"`
	InitialDelayMs    int     `koanf:"initial_delay_ms" yaml:"initial_delay_ms"`
	MaxDelayMs        int     `koanf:"max_delay_ms" yaml:"max_delay_ms"`
	BackoffMultiplier float64 `koanf:"backoff_multiplier" yaml:"backoff_multiplier"`
	TimeoutSec        int     `koanf:"timeout_sec" yaml:"timeout_sec"`
	MaxBodyKb         int     `koanf:"max_body_kb" yaml:"max_body_kb"`
}

// MetricsConfig controls the Prometheus textfile export.
type MetricsConfig struct {
	Textfile string `koanf:"textfile" yaml:"textfile"`
}

// SourceConfig declares an additional source for the registry.
type SourceConfig struct {
	Name     string `koanf:"name" yaml:"name"`
	Type     string `koanf:"type" yaml:"type"`
	URL      string `koanf:"url" yaml:"url,omitempty"`
	File     string `koanf:"file" yaml:"file,omitempty"`
	Selector string `koanf:"selector" yaml:"selector,omitempty"`
	Enabled  bool   `koanf:"enabled" yaml:"enabled"`
}

// Default returns the configuration used when nothing overrides it.
func Default() *Config {
	return &Config{
		Output: OutputConfig{
			Dir:        "docs",
			HistoryDir: "data",
			Title:      "中文播客热榜(自动抓取)",
		},
		Clock: ClockConfig{
			Timezone: clock.DefaultTimezone,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
		Retry: RetryPolicy{
			MaxAttempts:       3,
			InitialDelayMs:    500,
			MaxDelayMs:        30000,
			BackoffMultiplier: 2.0,
			TimeoutSec:        30,
			MaxBodyKb:         4096,
		},
	}
}

// SaveConfig saves configuration to YAML file.
func (c *Config) SaveConfig(filepath string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(filepath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Output.Dir == "" {
		return ErrMissingOutputDir
	}

	if c.Output.HistoryDir == "" {
		return ErrMissingHistoryDir
	}

	if _, err := clock.New(c.Clock.Timezone); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidTimezone, c.Clock.Timezone)
	}

	if err := c.Retry.Validate(); err != nil {
		return err
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[c.Logging.Level] {
		return ErrInvalidLogLevel
	}

	if c.Logging.Format != "text" && c.Logging.Format != "json" {
		return ErrInvalidLogFormat
	}

	return c.validateSources()
}

// Validate checks the retry policy bounds.
func (rp *RetryPolicy) Validate() error {
	if rp.MaxAttempts < 1 {
		return ErrInvalidMaxAttempts
	}

	if rp.InitialDelayMs < 0 {
		return ErrInvalidInitialDelay
	}

	if rp.BackoffMultiplier < 1.0 {
		return ErrInvalidBackoffMultiplier
	}

	if rp.TimeoutSec < 1 {
		return ErrInvalidTimeout
	}

	if rp.MaxBodyKb < 1 {
		return ErrInvalidBodyLimit
	}

	return nil
}

func (c *Config) validateSources() error {
	helper := utils.NewHTTPHelper()
	seen := make(map[string]bool, len(c.Sources))

	for i, src := range c.Sources {
		if src.Name == "" {
			return fmt.Errorf("%w: sources[%d]", ErrSourceMissingName, i)
		}

		if seen[src.Name] {
			return fmt.Errorf("%w: sources[%d] %q", ErrSourceDuplicateName, i, src.Name)
		}

		seen[src.Name] = true

		switch src.Type {
		case SourceTypeFile:
			if src.File == "" {
				return fmt.Errorf("%w: sources[%d] %q", ErrSourceMissingFile, i, src.Name)
			}
		case SourceTypeJSON, SourceTypeHTML:
			if !helper.IsValidURL(src.URL) {
				return fmt.Errorf("%w: sources[%d] %q", ErrSourceInvalidURL, i, src.Name)
			}
		default:
			return fmt.Errorf("%w: sources[%d] %q has type %q", ErrSourceInvalidType, i, src.Name, src.Type)
		}
	}

	return nil
}

// GetEnabledSources returns only enabled sources.
func (c *Config) GetEnabledSources() []SourceConfig {
	var enabled []SourceConfig

	for _, src := range c.Sources {
		if src.Enabled {
			enabled = append(enabled, src)
		}
	}

	return enabled
}

// GetRetryDelay calculates exponential backoff delay for attempt number.
func (rp *RetryPolicy) GetRetryDelay(attempt int) time.Duration {
	if attempt <= 1 {
		return 0
	}

	delayMs := float64(rp.InitialDelayMs)
	for i := 1; i < attempt; i++ {
		delayMs *= rp.BackoffMultiplier
	}

	if int(delayMs) > rp.MaxDelayMs {
		delayMs = float64(rp.MaxDelayMs)
	}

	return time.Duration(int(delayMs)) * time.Millisecond
}

// GetTimeout returns the timeout duration.
func (rp *RetryPolicy) GetTimeout() time.Duration {
	return time.Duration(rp.TimeoutSec) * time.Second
}

// BodyLimit returns the response body cap in bytes.
func (rp *RetryPolicy) BodyLimit() int64 {
	return int64(rp.MaxBodyKb) * 1024
}

// String returns a string representation of the config.
func (c *Config) String() string {
	return fmt.Sprintf(
		"Config{Output: %s, History: %s, Sources: %d, MaxAttempts: %d}",
		c.Output.Dir,
		c.Output.HistoryDir,
		len(c.Sources),
		c.Retry.MaxAttempts,
	)
}
