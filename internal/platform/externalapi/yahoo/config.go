// Package yahoo provides a client for the Yahoo Finance chart and quote summary APIs.
package yahoo

import (
	"os"
	"time"
)

// DefaultBaseURL is used when YAHOO_BASE_URL is not set.
const DefaultBaseURL = "https://query2.finance.yahoo.com"

// Config holds configuration for the Yahoo Finance client.
type Config struct {
	BaseURL string        // Base URL for the API (e.g., "https://query2.finance.yahoo.com")
	Crumb   string        // optional crumb some quote summary endpoints require
	Timeout time.Duration // HTTP request timeout
}

// LoadConfig loads Yahoo Finance configuration from environment variables.
func LoadConfig() Config {
	base := os.Getenv("YAHOO_BASE_URL")
	if base == "" {
		base = DefaultBaseURL
	}
	return Config{
		BaseURL: base,
		Crumb:   os.Getenv("YAHOO_CRUMB"),
		Timeout: 15 * time.Second,
	}
}
