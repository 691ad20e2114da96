package ratelimit

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

// EndpointConfig represents rate limiting configuration for a specific endpoint.
type EndpointConfig struct {
	Path   string        // Exact path, "*" segment pattern or "/"-terminated prefix
	Method string        // HTTP method
	Limit  int           // Maximum requests per window
	Window time.Duration // Time window
	Burst  int           // Burst capacity (defaults to Limit if 0)
}

// Environment variables read by LoadConfig
var envKeys = map[string]string{
	"rate_limit.enabled":          "RATE_LIMIT_ENABLED",
	"rate_limit.default_limit":    "RATE_LIMIT_DEFAULT_LIMIT",
	"rate_limit.default_window":   "RATE_LIMIT_DEFAULT_WINDOW",
	"rate_limit.cleanup_interval": "RATE_LIMIT_CLEANUP_INTERVAL",
	"rate_limit.whitelist":        "RATE_LIMIT_WHITELIST",
	"rate_limit.blacklist":        "RATE_LIMIT_BLACKLIST",
}

// LoadConfig reads rate limiting settings from v, falling back to the RATE_LIMIT_*
// environment variables.
func LoadConfig(v *viper.Viper) *Config {
	for key, env := range envKeys {
		_ = v.BindEnv(key, env)
	}
	v.SetDefault("rate_limit.enabled", true)
	v.SetDefault("rate_limit.default_limit", 1000)
	v.SetDefault("rate_limit.default_window", time.Minute)
	v.SetDefault("rate_limit.cleanup_interval", 5*time.Minute)

	if !v.GetBool("rate_limit.enabled") {
		return &Config{Enabled: false}
	}

	return &Config{
		Enabled:         true,
		DefaultLimit:    v.GetInt("rate_limit.default_limit"),
		DefaultWindow:   v.GetDuration("rate_limit.default_window"),
		CleanupInterval: v.GetDuration("rate_limit.cleanup_interval"),
		Whitelist:       parseIPList(v.GetString("rate_limit.whitelist")),
		Blacklist:       parseIPList(v.GetString("rate_limit.blacklist")),
		EndpointConfigs: DefaultEndpointConfigs(),
	}
}

// DefaultEndpointConfigs returns the endpoint-specific limits. Matching and search
// score the whole corpus per request, so they are tighter than catalog reads.
func DefaultEndpointConfigs() []EndpointConfig {
	return []EndpointConfig{
		{Path: "/users/*/matches/search", Method: "GET", Limit: 30, Window: time.Minute, Burst: 5},
		{Path: "/users/*/matches", Method: "GET", Limit: 60, Window: time.Minute, Burst: 10},
		{Path: "/opportunities/", Method: "GET", Limit: 300, Window: time.Minute, Burst: 50},
	}
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
