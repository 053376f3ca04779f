// Package config provides configuration management for the symposium fetcher.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultTopicURL is the listing page scanned when no topic URL is configured.
const DefaultTopicURL = "https://www.yalejreg.com/topic/symposium-on-ai-and-the-apa/"

// DefaultUserAgent identifies the fetcher to the remote site.
const DefaultUserAgent = "Mozilla/5.0 (compatible; yale-symposium-fetch/1.0)"

// DefaultOutputDir is where article files are written unless overridden.
const DefaultOutputDir = "docs/yale_symposium"

// Converter engines.
const (
	EngineBuiltin = "builtin"
	EnginePandoc  = "pandoc"
)

// Configuration validation errors.
var (
	ErrMissingTopicURL          = errors.New("crawler.topic_url is required")
	ErrInvalidTopicURL          = errors.New("crawler.topic_url must be an absolute http(s) URL")
	ErrInvalidConcurrency       = errors.New("crawler.concurrency must be at least 1")
	ErrInvalidMaxAttempts       = errors.New("fetch.retry.max_attempts must be at least 1")
	ErrInvalidInitialDelay      = errors.New("fetch.retry.initial_delay_ms must be non-negative")
	ErrInvalidBackoffMultiplier = errors.New("fetch.retry.backoff_multiplier must be >= 1.0")
	ErrInvalidTimeout           = errors.New("fetch.timeout_sec must be at least 1")
	ErrInvalidBufferSize        = errors.New("fetch.buffer_size_kb must be at least 1")
	ErrMissingUserAgent         = errors.New("fetch.user_agent is required")
	ErrMissingOutputDir         = errors.New("output.dir is required")
	ErrInvalidEngine            = errors.New("converter.engine must be 'builtin' or 'pandoc'")
	ErrMissingPandocPath        = errors.New("converter.pandoc_path is required for the pandoc engine")
	ErrInvalidLogLevel          = errors.New("logging.level must be one of: debug, info, warn, error")
)

// Config represents the complete fetcher configuration.
type Config struct {
	Crawler   CrawlerConfig   `yaml:"crawler"`
	Fetch     FetchConfig     `yaml:"fetch"`
	Converter ConverterConfig `yaml:"converter"`
	Output    OutputConfig    `yaml:"output"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// CrawlerConfig contains run-level settings.
type CrawlerConfig struct {
	TopicURL    string `yaml:"topic_url"`
	Concurrency int    `yaml:"concurrency"`
}

// FetchConfig controls the page fetcher.
type FetchConfig struct {
	UserAgent    string      `yaml:"user_agent"`
	Retry        RetryPolicy `yaml:"retry"`
	TimeoutSec   int         `yaml:"timeout_sec"`
	BufferSizeKb int         `yaml:"buffer_size_kb"`
}

// RetryPolicy defines retry behavior.
type RetryPolicy struct {
	MaxAttempts       int     `yaml:"max_attempts"`
	InitialDelayMs    int     `yaml:"initial_delay_ms"`
	MaxDelayMs        int     `yaml:"max_delay_ms"`
	BackoffMultiplier float64 `yaml:"backoff_multiplier"`
}

// ConverterConfig selects the HTML to Markdown engine.
type ConverterConfig struct {
	Engine     string `yaml:"engine"`
	PandocPath string `yaml:"pandoc_path"`
}

// OutputConfig defines output behavior.
type OutputConfig struct {
	Dir          string `yaml:"dir"`
	Overwrite    bool   `yaml:"overwrite"`
	FormatTables bool   `yaml:"format_tables"`
	Sign         bool   `yaml:"sign"`
}

// LoggingConfig defines logging behavior.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Crawler: CrawlerConfig{
			TopicURL:    DefaultTopicURL,
			Concurrency: 1,
		},
		Fetch: FetchConfig{
			UserAgent: DefaultUserAgent,
			Retry: RetryPolicy{
				MaxAttempts:       3,
				InitialDelayMs:    0,
				MaxDelayMs:        30000,
				BackoffMultiplier: 2.0,
			},
			TimeoutSec:   30,
			BufferSizeKb: 8192,
		},
		Converter: ConverterConfig{
			Engine:     EngineBuiltin,
			PandocPath: "pandoc",
		},
		Output: OutputConfig{
			Dir: DefaultOutputDir,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// LoadConfig loads configuration from a YAML file on top of Default.
func LoadConfig(filepath string) (*Config, error) {
	data, err := os.ReadFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Crawler.TopicURL == "" {
		return ErrMissingTopicURL
	}

	u, err := url.Parse(c.Crawler.TopicURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("%w: %q", ErrInvalidTopicURL, c.Crawler.TopicURL)
	}

	if c.Crawler.Concurrency < 1 {
		return ErrInvalidConcurrency
	}

	if c.Fetch.UserAgent == "" {
		return ErrMissingUserAgent
	}

	if c.Fetch.Retry.MaxAttempts < 1 {
		return ErrInvalidMaxAttempts
	}

	if c.Fetch.Retry.InitialDelayMs < 0 {
		return ErrInvalidInitialDelay
	}

	if c.Fetch.Retry.BackoffMultiplier < 1.0 {
		return ErrInvalidBackoffMultiplier
	}

	if c.Fetch.TimeoutSec < 1 {
		return ErrInvalidTimeout
	}

	if c.Fetch.BufferSizeKb < 1 {
		return ErrInvalidBufferSize
	}

	switch c.Converter.Engine {
	case EngineBuiltin:
	case EnginePandoc:
		if c.Converter.PandocPath == "" {
			return ErrMissingPandocPath
		}
	default:
		return fmt.Errorf("%w: %q", ErrInvalidEngine, c.Converter.Engine)
	}

	if c.Output.Dir == "" {
		return ErrMissingOutputDir
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[c.Logging.Level] {
		return ErrInvalidLogLevel
	}

	return nil
}

// GetRetryDelay calculates exponential backoff delay for attempt number.
func (rp *RetryPolicy) GetRetryDelay(attempt int) time.Duration {
	if attempt <= 1 || rp.InitialDelayMs == 0 {
		return 0
	}

	delayMs := float64(rp.InitialDelayMs)
	for i := 2; i < attempt; i++ {
		delayMs *= rp.BackoffMultiplier
	}

	// Cap at max delay
	if rp.MaxDelayMs > 0 && int(delayMs) > rp.MaxDelayMs {
		delayMs = float64(rp.MaxDelayMs)
	}

	return time.Duration(int(delayMs)) * time.Millisecond
}

// GetTimeout returns the per-request timeout.
func (f *FetchConfig) GetTimeout() time.Duration {
	return time.Duration(f.TimeoutSec) * time.Second
}

// String returns a string representation of the config.
func (c *Config) String() string {
	return fmt.Sprintf(
		"Config{Topic: %s, MaxAttempts: %d, Engine: %s, Output: %s}",
		c.Crawler.TopicURL,
		c.Fetch.Retry.MaxAttempts,
		c.Converter.Engine,
		c.Output.Dir,
	)
}
