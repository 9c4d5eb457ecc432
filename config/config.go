package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/s0up4200/proxy6/filter"
	"github.com/s0up4200/proxy6/px6"
	"github.com/spf13/viper"
)

// EnvPrefix is the prefix of environment variable overrides,
// e.g. PROXY6_PX6_TIMEOUT for px6.timeout.
const EnvPrefix = "PROXY6"

// Load loads the configuration from file, .env and the environment.
// Without an explicit path a missing config file is not an error, so the
// tool can run from PROXY6_API_KEY alone.
func Load(configPath string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("error reading .env: %w", err)
	}

	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	_ = v.BindEnv("px6.api_key", EnvPrefix+"_API_KEY", EnvPrefix+"_PX6_API_KEY")

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")

		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".proxy6"))
		}
		v.AddConfigPath("/etc/proxy6/")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configPath != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	v.SetDefault("px6.base_url", px6.DefaultBaseURL)
	v.SetDefault("px6.timeout", "30s")
	v.SetDefault("px6.user_agent", "")
	v.SetDefault("px6.rate_limit", 3)
	v.SetDefault("px6.burst", 1)

	v.SetDefault("check.concurrency", 4)

	v.SetDefault("filter.default", "")

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("logging.color", true)
}

// validate checks if the configuration is valid
func validate(cfg *Config) error {
	if cfg.PX6.APIKey == "" || cfg.PX6.APIKey == "your-api-key-here" {
		return fmt.Errorf("px6.api_key must be set to a valid API key")
	}

	if cfg.PX6.Timeout <= 0 {
		return fmt.Errorf("px6.timeout must be positive, got %s", cfg.PX6.Timeout)
	}

	if cfg.PX6.RateLimit < 0 {
		return fmt.Errorf("px6.rate_limit must not be negative, got %v", cfg.PX6.RateLimit)
	}

	if cfg.Check.Concurrency < 1 {
		return fmt.Errorf("check.concurrency must be at least 1, got %d", cfg.Check.Concurrency)
	}

	if len(cfg.Filter.Presets) > 0 {
		if err := filter.NewManager().RegisterFilters(cfg.Filter.Presets); err != nil {
			return fmt.Errorf("invalid filter preset: %w", err)
		}
	}

	if cfg.Filter.Default != "" {
		// viper lowercases map keys, so preset names are matched case-insensitively
		if _, ok := cfg.Filter.Presets[strings.ToLower(cfg.Filter.Default)]; !ok {
			return fmt.Errorf("filter.default %q is not a defined preset", cfg.Filter.Default)
		}
	}

	validLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLevels[cfg.Logging.Level] {
		return fmt.Errorf("invalid logging level: %s", cfg.Logging.Level)
	}

	validFormats := map[string]bool{
		"console": true,
		"json":    true,
	}
	if !validFormats[cfg.Logging.Format] {
		return fmt.Errorf("invalid logging format: %s", cfg.Logging.Format)
	}

	return nil
}
