// Package config provides configuration management functionality.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Defaults for the SPARQL fetch layer. The endpoint is a shared public
// service, so the retry budget and backoff are deliberately modest.
const (
	DefaultEndpointURL = "https://query.wikidata.org/sparql"
	DefaultTopologyURL = "https://cdn.jsdelivr.net/npm/world-atlas@2/countries-110m.json"

	DefaultMaxRetries = 3
	DefaultBaseDelay  = 400 * time.Millisecond
	DefaultTimeout    = 15 * time.Second
)

// Config holds application configuration
type Config struct {
	Port        int
	LogLevel    string
	DevMode     bool
	EndpointURL string // SPARQL query endpoint
	TopologyURL string // TopoJSON world topology

	// Fetch client tuning
	FetchMaxRetries int
	FetchBaseDelay  time.Duration
	FetchTimeout    time.Duration
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	cfg := &Config{
		Port:            getEnvAsInt("ATLAS_PORT", 8001),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		DevMode:         getEnvAsBool("DEV_MODE", false),
		EndpointURL:     getEnv("SPARQL_ENDPOINT_URL", DefaultEndpointURL),
		TopologyURL:     getEnv("TOPOLOGY_URL", DefaultTopologyURL),
		FetchMaxRetries: getEnvAsInt("FETCH_MAX_RETRIES", DefaultMaxRetries),
		FetchBaseDelay:  getEnvAsDuration("FETCH_BASE_DELAY_MS", DefaultBaseDelay),
		FetchTimeout:    getEnvAsDuration("FETCH_TIMEOUT_MS", DefaultTimeout),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks if the configuration is usable
func (c *Config) Validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid port: %d", c.Port)
	}
	if c.FetchMaxRetries < 0 {
		return fmt.Errorf("invalid fetch max retries: %d", c.FetchMaxRetries)
	}
	if c.FetchBaseDelay <= 0 {
		return fmt.Errorf("invalid fetch base delay: %s", c.FetchBaseDelay)
	}
	if c.FetchTimeout <= 0 {
		return fmt.Errorf("invalid fetch timeout: %s", c.FetchTimeout)
	}
	return nil
}

// Helper functions
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if ms, err := strconv.Atoi(value); err == nil && ms > 0 {
			return time.Duration(ms) * time.Millisecond
		}
	}
	return defaultValue
}
