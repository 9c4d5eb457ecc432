package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return &Config{
		PX6: PX6Config{
			APIKey:    "valid-api-key",
			BaseURL:   "https://px6.link",
			Timeout:   30 * time.Second,
			RateLimit: 3,
			Burst:     1,
		},
		Check: CheckConfig{Concurrency: 4},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// isolate runs the test in an empty directory with no proxy6 variables set
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	for _, key := range []string{"PROXY6_API_KEY", "PROXY6_PX6_API_KEY", "PROXY6_PX6_TIMEOUT"} {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}
	return dir
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(cfg *Config)
		wantErr string
	}{
		{
			name:   "valid",
			mutate: func(cfg *Config) {},
		},
		{
			name:    "missing api key",
			mutate:  func(cfg *Config) { cfg.PX6.APIKey = "" },
			wantErr: "px6.api_key",
		},
		{
			name:    "placeholder api key",
			mutate:  func(cfg *Config) { cfg.PX6.APIKey = "your-api-key-here" },
			wantErr: "px6.api_key",
		},
		{
			name:    "zero timeout",
			mutate:  func(cfg *Config) { cfg.PX6.Timeout = 0 },
			wantErr: "px6.timeout",
		},
		{
			name:    "negative rate limit",
			mutate:  func(cfg *Config) { cfg.PX6.RateLimit = -1 },
			wantErr: "px6.rate_limit",
		},
		{
			name:   "rate limit disabled",
			mutate: func(cfg *Config) { cfg.PX6.RateLimit = 0 },
		},
		{
			name:    "zero concurrency",
			mutate:  func(cfg *Config) { cfg.Check.Concurrency = 0 },
			wantErr: "check.concurrency",
		},
		{
			name: "valid presets",
			mutate: func(cfg *Config) {
				cfg.Filter.Presets = map[string]string{"expiring": "expiresWithin(3)"}
				cfg.Filter.Default = "expiring"
			},
		},
		{
			name: "default preset in other case",
			mutate: func(cfg *Config) {
				cfg.Filter.Presets = map[string]string{"russia": `inCountry("ru")`}
				cfg.Filter.Default = "Russia"
			},
		},
		{
			name: "preset does not compile",
			mutate: func(cfg *Config) {
				cfg.Filter.Presets = map[string]string{"broken": "Active and"}
			},
			wantErr: "broken",
		},
		{
			name:    "default preset missing",
			mutate:  func(cfg *Config) { cfg.Filter.Default = "nope" },
			wantErr: "filter.default",
		},
		{
			name:    "invalid level",
			mutate:  func(cfg *Config) { cfg.Logging.Level = "trace" },
			wantErr: "invalid logging level",
		},
		{
			name:    "invalid format",
			mutate:  func(cfg *Config) { cfg.Logging.Format = "xml" },
			wantErr: "invalid logging format",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)

			err := validate(cfg)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoadFile(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "proxy6.yaml")
	writeFile(t, path, `
px6:
  api_key: file-key
  timeout: 10s
  rate_limit: 1.5
check:
  concurrency: 8
filter:
  default: russia
  presets:
    russia: inCountry("ru")
    expiring: expiresWithin(3)
logging:
  level: debug
  format: json
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "file-key", cfg.PX6.APIKey)
	assert.Equal(t, "https://px6.link", cfg.PX6.BaseURL)
	assert.Equal(t, 10*time.Second, cfg.PX6.Timeout)
	assert.InDelta(t, 1.5, cfg.PX6.RateLimit, 1e-9)
	assert.Equal(t, 1, cfg.PX6.Burst)
	assert.Equal(t, 8, cfg.Check.Concurrency)
	assert.Equal(t, "russia", cfg.Filter.Default)
	assert.Len(t, cfg.Filter.Presets, 2)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.True(t, cfg.Logging.Color)
}

func TestLoadMixedCasePreset(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "proxy6.yaml")
	writeFile(t, path, `
px6:
  api_key: file-key
filter:
  default: Russia
  presets:
    Russia: inCountry("ru")
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "Russia", cfg.Filter.Default)
	assert.Contains(t, cfg.Filter.Presets, "russia")
}

func TestLoadMissingExplicitFile(t *testing.T) {
	dir := isolate(t)

	_, err := Load(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)
}

func TestLoadFromEnvironment(t *testing.T) {
	isolate(t)
	t.Setenv("PROXY6_API_KEY", "env-key")
	t.Setenv("PROXY6_PX6_TIMEOUT", "5s")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "env-key", cfg.PX6.APIKey)
	assert.Equal(t, 5*time.Second, cfg.PX6.Timeout)
	assert.Equal(t, 4, cfg.Check.Concurrency)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	dir := isolate(t)
	writeFile(t, filepath.Join(dir, "config.yaml"), "px6:\n  api_key: file-key\n")
	t.Setenv("PROXY6_API_KEY", "env-key")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "env-key", cfg.PX6.APIKey)
}

func TestLoadDotEnv(t *testing.T) {
	dir := isolate(t)
	writeFile(t, filepath.Join(dir, ".env"), "PROXY6_API_KEY=dotenv-key\n")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "dotenv-key", cfg.PX6.APIKey)
	require.NoError(t, os.Unsetenv("PROXY6_API_KEY"))
}

func TestLoadWithoutKey(t *testing.T) {
	isolate(t)

	_, err := Load("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "px6.api_key")
}
