package ratelimit

import (
	"net/http"
	"strings"
)

// HealthPath is never rate limited
const HealthPath = "/api/health"

// unlimited is returned for requests that bypass limiting
var unlimited = EndpointConfig{}

// MatchEndpoint matches a request path and method to an endpoint configuration.
// Returns the matching EndpointConfig or nil if no match is found.
// Configs whose path ends with "/" match any path below it.
func MatchEndpoint(path string, method string, configs []EndpointConfig) *EndpointConfig {
	// Health checks and CORS preflights never count against a client
	if (path == HealthPath && method == http.MethodGet) || method == http.MethodOptions {
		u := unlimited
		return &u
	}

	for i := range configs {
		config := &configs[i]
		if config.Path == path && config.Method == method {
			return config
		}
	}

	for i := range configs {
		config := &configs[i]
		if config.Method == method && strings.HasSuffix(config.Path, "/") && strings.HasPrefix(path, config.Path) {
			return config
		}
	}

	return nil
}
