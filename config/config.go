package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Rate sources
const (
	SourceBuiltin = "builtin"
	SourceRemote  = "remote"
)

// Config holds all configuration for the converter server
type Config struct {
	ListenAddr   string         `yaml:"listen_addr"`
	RatesSource  string         `yaml:"rates_source"`
	AmountPolicy string         `yaml:"amount_policy"`
	LogLevel     string         `yaml:"log_level"`
	Provider     ProviderConfig `yaml:"provider"`
}

// ProviderConfig holds the remote rate provider configuration
type ProviderConfig struct {
	URL       string        `yaml:"url"`
	AccessKey string        `yaml:"access_key"`
	Timeout   time.Duration `yaml:"timeout"`
	// RateLimit requests per second
	RateLimit float64 `yaml:"rate_limit"`
}

// Default returns the configuration used when nothing is set
func Default() *Config {
	return &Config{
		ListenAddr:   ":8080",
		RatesSource:  SourceBuiltin,
		AmountPolicy: "strict",
		LogLevel:     "info",
		Provider: ProviderConfig{
			URL:       "http://data.fixer.io/api",
			Timeout:   5 * time.Second,
			RateLimit: 1,
		},
	}
}

// Load builds the configuration from defaults, then the YAML file named by CONFIG_FILE
// if any, then environment variables.
func Load() (*Config, error) {
	cfg := Default()

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		content, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		if err := yaml.Unmarshal(content, cfg); err != nil {
			return nil, fmt.Errorf("decoding config file: %w", err)
		}
	}

	cfg.ListenAddr = getEnv("LISTEN_ADDR", cfg.ListenAddr)
	cfg.RatesSource = getEnv("RATES_SOURCE", cfg.RatesSource)
	cfg.AmountPolicy = getEnv("AMOUNT_POLICY", cfg.AmountPolicy)
	cfg.LogLevel = getEnv("LOG_LEVEL", cfg.LogLevel)
	cfg.Provider.URL = getEnv("PROVIDER_URL", cfg.Provider.URL)
	cfg.Provider.AccessKey = getEnv("PROVIDER_ACCESS_KEY", cfg.Provider.AccessKey)

	if v := os.Getenv("PROVIDER_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("PROVIDER_TIMEOUT: %w", err)
		}
		cfg.Provider.Timeout = d
	}
	if v := os.Getenv("PROVIDER_RATE_LIMIT"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return nil, fmt.Errorf("PROVIDER_RATE_LIMIT: %w", err)
		}
		cfg.Provider.RateLimit = f
	}

	return cfg, cfg.Validate()
}

// Validate checks the configuration is usable
func (c *Config) Validate() error {
	switch c.RatesSource {
	case SourceBuiltin:
	case SourceRemote:
		if c.Provider.AccessKey == "" {
			return fmt.Errorf("remote rates need a provider access key")
		}
	default:
		return fmt.Errorf("unknown rates source %q", c.RatesSource)
	}
	return nil
}

// getEnv retrieves an environment variable or returns a default value if not set
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
