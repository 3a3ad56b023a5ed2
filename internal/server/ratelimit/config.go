package ratelimit

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// EndpointConfig represents rate limiting configuration for a specific endpoint.
type EndpointConfig struct {
	Path   string        // Endpoint path pattern (supports prefix matching)
	Method string        // HTTP method (GET, POST, etc.)
	Limit  int           // Maximum requests per window
	Window time.Duration // Time window
	Burst  int           // Burst capacity (defaults to Limit if 0)
	// Deferred endpoints are skipped by the middleware and charged by the
	// handler only when the request will call the model.
	Deferred bool
}

// Default limits applied by LoadConfig.
const (
	DefaultLimit      = 600
	DefaultWindow     = time.Minute
	DefaultMaxBuckets = 10000
	// Each generate or compare request may cost one model call.
	DefaultModelLimit = 30
	DefaultModelBurst = 5
)

// LoadConfig loads rate limiting configuration from environment variables.
func LoadConfig() *Config {
	enabled := getEnvBool("RATE_LIMIT_ENABLED", true)
	if !enabled {
		return &Config{
			Enabled: false,
		}
	}

	defaultLimit := getEnvInt("RATE_LIMIT_DEFAULT_LIMIT", DefaultLimit)
	defaultWindow := getEnvDuration("RATE_LIMIT_DEFAULT_WINDOW", DefaultWindow)
	maxBuckets := getEnvInt("RATE_LIMIT_MAX_BUCKETS", DefaultMaxBuckets)
	modelLimit := getEnvInt("RATE_LIMIT_MODEL_LIMIT", DefaultModelLimit)
	modelBurst := getEnvInt("RATE_LIMIT_MODEL_BURST", DefaultModelBurst)

	whitelist := parseIPList(getEnvString("RATE_LIMIT_WHITELIST", ""))
	blacklist := parseIPList(getEnvString("RATE_LIMIT_BLACKLIST", ""))

	return &Config{
		Enabled:         enabled,
		DefaultLimit:    defaultLimit,
		DefaultWindow:   defaultWindow,
		MaxBuckets:      maxBuckets,
		Whitelist:       whitelist,
		Blacklist:       blacklist,
		EndpointConfigs: ModelEndpointConfigs(modelLimit, modelBurst),
	}
}

// DefaultEndpointConfigs returns the endpoint-specific configurations used
// when no environment overrides are present.
func DefaultEndpointConfigs() []EndpointConfig {
	return ModelEndpointConfigs(DefaultModelLimit, DefaultModelBurst)
}

// ModelEndpointConfigs limits the endpoints that can reach the model.
// Generate is deferred because table hits are answered without one.
// Health checks are unlimited and handled by the matcher.
func ModelEndpointConfigs(limit, burst int) []EndpointConfig {
	return []EndpointConfig{
		{Path: "/api/generate", Method: "POST", Limit: limit, Window: time.Minute, Burst: burst, Deferred: true},
		{Path: "/api/compare", Method: "POST", Limit: limit, Window: time.Minute, Burst: burst},
	}
}

// getEnvString gets an environment variable as a string with a default value.
func getEnvString(key string, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt gets an environment variable as an integer with a default value.
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvBool gets an environment variable as a boolean with a default value.
func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

// getEnvDuration gets an environment variable as a duration with a default value.
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

// parseIPList parses a comma-separated list of IP addresses into a set.
func parseIPList(list string) map[string]bool {
	result := make(map[string]bool)
	for _, ip := range strings.Split(list, ",") {
		if ip = strings.TrimSpace(ip); ip != "" {
			result[ip] = true
		}
	}
	return result
}
