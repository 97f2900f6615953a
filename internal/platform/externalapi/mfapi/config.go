// Package mfapi provides a client for the mfapi.in mutual fund NAV API.
package mfapi

import (
	"os"
	"time"
)

// DefaultBaseURL is used when MFAPI_BASE_URL is not set.
const DefaultBaseURL = "https://api.mfapi.in"

// Config holds configuration for the mfapi.in client.
type Config struct {
	BaseURL string        // Base URL for the API (e.g., "https://api.mfapi.in")
	Timeout time.Duration // HTTP request timeout
}

// LoadConfig loads mfapi configuration from environment variables.
func LoadConfig() Config {
	base := os.Getenv("MFAPI_BASE_URL")
	if base == "" {
		base = DefaultBaseURL
	}
	return Config{
		BaseURL: base,
		Timeout: 10 * time.Second,
	}
}
