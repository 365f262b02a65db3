package model

import "path/filepath"

// Config holds the full moodbot configuration
type Config struct {
	Classifier  ClassifierConfig  `yaml:"classifier" mapstructure:"classifier"`
	Storage     StorageConfig     `yaml:"storage" mapstructure:"storage"`
	Cache       CacheConfig       `yaml:"cache" mapstructure:"cache"`
	Bot         BotConfig         `yaml:"bot" mapstructure:"bot"`
	Metrics     MetricsConfig     `yaml:"metrics" mapstructure:"metrics"`
	Concurrency ConcurrencyConfig `yaml:"concurrency" mapstructure:"concurrency"`
	Logging     LoggingConfig     `yaml:"logging" mapstructure:"logging"`
}

// ClassifierConfig configures the external sentiment classifier provider
type ClassifierConfig struct {
	// Provider name: "openai", "hf", "" (disabled)
	Provider string `yaml:"provider" mapstructure:"provider"`

	// Model name (provider-specific)
	Model string `yaml:"model" mapstructure:"model"`

	// APIKey for hosted providers
	APIKey string `yaml:"api_key" mapstructure:"api_key"`

	// BaseURL for custom endpoints (e.g., a self-hosted inference server)
	BaseURL string `yaml:"base_url" mapstructure:"base_url"`

	// Timeout for classification requests, in seconds
	Timeout int `yaml:"timeout" mapstructure:"timeout"`
}

// StorageConfig configures the durable event log
type StorageConfig struct {
	Dir  string `yaml:"dir" mapstructure:"dir"`
	File string `yaml:"file" mapstructure:"file"`
}

// Path returns the full path of the event log file.
func (s StorageConfig) Path() string {
	return filepath.Join(s.Dir, s.File)
}

// CacheConfig configures the classifier result cache
type CacheConfig struct {
	Enabled    bool   `yaml:"enabled" mapstructure:"enabled"`
	Dir        string `yaml:"dir" mapstructure:"dir"`
	TTLMinutes int    `yaml:"ttl_minutes" mapstructure:"ttl_minutes"`
}

// BotConfig configures the Telegram transport
type BotConfig struct {
	Token string `yaml:"token" mapstructure:"token"`

	// Per-user rate limit for text messages
	PerUserRate float64 `yaml:"per_user_rate" mapstructure:"per_user_rate"` // messages per second
	Burst       int     `yaml:"burst" mapstructure:"burst"`
}

// MetricsConfig configures the optional Prometheus endpoint
type MetricsConfig struct {
	Enabled bool   `yaml:"enabled" mapstructure:"enabled"`
	Addr    string `yaml:"addr" mapstructure:"addr"`
}

// ConcurrencyConfig configures worker counts
type ConcurrencyConfig struct {
	Workers int `yaml:"workers" mapstructure:"workers"`
}

// LoggingConfig configures structured logging
type LoggingConfig struct {
	// Env selects the handler: "dev" (text, with source) or "prod" (JSON)
	Env string `yaml:"env" mapstructure:"env"`
}

// DefaultConfig returns sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Classifier: ClassifierConfig{
			Provider: "", // Disabled by default
			Timeout:  30,
		},
		Storage: StorageConfig{
			Dir:  "data",
			File: "requests.csv",
		},
		Cache: CacheConfig{
			Enabled:    true,
			Dir:        ".moodbot-cache",
			TTLMinutes: 60,
		},
		Bot: BotConfig{
			PerUserRate: 1,
			Burst:       3,
		},
		Metrics: MetricsConfig{
			Enabled: false,
			Addr:    ":9090",
		},
		Concurrency: ConcurrencyConfig{
			Workers: 4,
		},
		Logging: LoggingConfig{
			Env: "dev",
		},
	}
}
