package config

import "time"

// Config represents the complete configuration structure
type Config struct {
	PX6     PX6Config     `mapstructure:"px6"`
	Check   CheckConfig   `mapstructure:"check"`
	Filter  FilterConfig  `mapstructure:"filter"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// PX6Config holds proxy6 API connection details
type PX6Config struct {
	APIKey    string        `mapstructure:"api_key"`
	BaseURL   string        `mapstructure:"base_url"`
	Timeout   time.Duration `mapstructure:"timeout"`
	UserAgent string        `mapstructure:"user_agent"`
	// RateLimit is the number of requests per second, 0 disables throttling
	RateLimit float64 `mapstructure:"rate_limit"`
	Burst     int     `mapstructure:"burst"`
}

// CheckConfig contains settings for bulk proxy checks
type CheckConfig struct {
	Concurrency int `mapstructure:"concurrency"`
}

// FilterConfig contains named filter presets
type FilterConfig struct {
	// Default is the preset applied by list when no filter is given
	Default string            `mapstructure:"default"`
	Presets map[string]string `mapstructure:"presets"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Color  bool   `mapstructure:"color"`
}
