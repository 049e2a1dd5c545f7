package config

import (
	"fmt"
	"strings"
)

// PrefixConfig holds the API endpoint prefixes of each route group.
//
// Example environment variables:
//
//	API_PREFIX_BASE=/api/v1
//	API_PREFIX_REGISTER=/api/v1/register
//	API_PREFIX_PROFILE=/api/v1/profile
//	API_PREFIX_USER_TYPES=/api/v1/user-types
type PrefixConfig struct {
	Register  string // Registration form and submit endpoints
	Profile   string // Profile form and update endpoints
	UserTypes string // User type listing and selection endpoints
}

// DefaultPrefixes returns the default prefix configuration
func DefaultPrefixes() PrefixConfig {
	return BuildPrefixesFromBase("/api")
}

// BuildPrefixesFromBase appends the route segments to basePath.
//
//	BuildPrefixesFromBase("/api/v1")
//	// PrefixConfig{Register: "/api/v1/register", Profile: "/api/v1/profile", UserTypes: "/api/v1/user-types"}
func BuildPrefixesFromBase(basePath string) PrefixConfig {
	basePath = strings.TrimSuffix(basePath, "/")

	return PrefixConfig{
		Register:  basePath + "/register",
		Profile:   basePath + "/profile",
		UserTypes: basePath + "/user-types",
	}
}

// LoadPrefixConfig loads prefixes from the environment. API_PREFIX_BASE
// replaces the default base; individual API_PREFIX_* variables override it.
func LoadPrefixConfig() PrefixConfig {
	defaults := DefaultPrefixes()
	if basePath := GetEnvOrDefault("API_PREFIX_BASE", ""); basePath != "" {
		defaults = BuildPrefixesFromBase(basePath)
	}

	return PrefixConfig{
		Register:  GetEnvOrDefault("API_PREFIX_REGISTER", defaults.Register),
		Profile:   GetEnvOrDefault("API_PREFIX_PROFILE", defaults.Profile),
		UserTypes: GetEnvOrDefault("API_PREFIX_USER_TYPES", defaults.UserTypes),
	}
}

// Validate checks that all prefix paths are non-empty and start with /
func (p PrefixConfig) Validate() error {
	prefixes := []struct{ name, prefix string }{
		{"Register", p.Register},
		{"Profile", p.Profile},
		{"UserTypes", p.UserTypes},
	}

	for _, item := range prefixes {
		if item.prefix == "" {
			return fmt.Errorf("prefix configuration missing: %s", item.name)
		}
		if item.prefix[0] != '/' {
			return fmt.Errorf("prefix must start with '/': %s = %s", item.name, item.prefix)
		}
	}
	return nil
}
