package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	tests := []struct {
		name     string
		envVars  map[string]string
		validate func(*testing.T, *Config)
	}{
		{
			name:    "default values",
			envVars: map[string]string{},
			validate: func(t *testing.T, cfg *Config) {
				assert.Equal(t, ":8080", cfg.ListenAddr)
				assert.Equal(t, SourceBuiltin, cfg.RatesSource)
				assert.Equal(t, "strict", cfg.AmountPolicy)
				assert.Equal(t, "http://data.fixer.io/api", cfg.Provider.URL)
				assert.Equal(t, 5*time.Second, cfg.Provider.Timeout)
				assert.Equal(t, 1.0, cfg.Provider.RateLimit)
			},
		},
		{
			name: "custom values",
			envVars: map[string]string{
				"LISTEN_ADDR":         ":9090",
				"RATES_SOURCE":        "remote",
				"AMOUNT_POLICY":       "loose",
				"LOG_LEVEL":           "debug",
				"PROVIDER_URL":        "http://localhost:1234",
				"PROVIDER_ACCESS_KEY": "secret",
				"PROVIDER_TIMEOUT":    "2s",
				"PROVIDER_RATE_LIMIT": "0.5",
			},
			validate: func(t *testing.T, cfg *Config) {
				assert.Equal(t, ":9090", cfg.ListenAddr)
				assert.Equal(t, SourceRemote, cfg.RatesSource)
				assert.Equal(t, "loose", cfg.AmountPolicy)
				assert.Equal(t, "debug", cfg.LogLevel)
				assert.Equal(t, "http://localhost:1234", cfg.Provider.URL)
				assert.Equal(t, "secret", cfg.Provider.AccessKey)
				assert.Equal(t, 2*time.Second, cfg.Provider.Timeout)
				assert.Equal(t, 0.5, cfg.Provider.RateLimit)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for key, value := range tt.envVars {
				t.Setenv(key, value)
			}

			cfg, err := Load()

			require.NoError(t, err)
			tt.validate(t, cfg)
		})
	}
}

func TestLoad_File(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
listen_addr: ":7000"
rates_source: remote
provider:
  access_key: from-file
  timeout: 3s
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	t.Setenv("CONFIG_FILE", path)
	t.Setenv("LISTEN_ADDR", ":7001")

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, ":7001", cfg.ListenAddr, "env overrides file")
	assert.Equal(t, SourceRemote, cfg.RatesSource)
	assert.Equal(t, "from-file", cfg.Provider.AccessKey)
	assert.Equal(t, 3*time.Second, cfg.Provider.Timeout)
	assert.Equal(t, "http://data.fixer.io/api", cfg.Provider.URL, "defaults survive")
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		envVars map[string]string
	}{
		{"unknown source", map[string]string{"RATES_SOURCE": "carrier-pigeon"}},
		{"remote without key", map[string]string{"RATES_SOURCE": "remote"}},
		{"bad timeout", map[string]string{"PROVIDER_TIMEOUT": "soon"}},
		{"bad rate limit", map[string]string{"PROVIDER_RATE_LIMIT": "lots"}},
		{"missing file", map[string]string{"CONFIG_FILE": "/does/not/exist.yaml"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for key, value := range tt.envVars {
				t.Setenv(key, value)
			}

			_, err := Load()

			assert.Error(t, err)
		})
	}
}

func TestGetEnv(t *testing.T) {
	t.Setenv("TEST_KEY", "")
	assert.Equal(t, "default", getEnv("TEST_KEY", "default"))

	t.Setenv("TEST_KEY", "custom")
	assert.Equal(t, "custom", getEnv("TEST_KEY", "default"))
}

// clearEnv blanks all config environment variables for the duration of the test
func clearEnv(t *testing.T) {
	for _, key := range []string{
		"CONFIG_FILE",
		"LISTEN_ADDR",
		"RATES_SOURCE",
		"AMOUNT_POLICY",
		"LOG_LEVEL",
		"PROVIDER_URL",
		"PROVIDER_ACCESS_KEY",
		"PROVIDER_TIMEOUT",
		"PROVIDER_RATE_LIMIT",
	} {
		t.Setenv(key, "")
	}
}
