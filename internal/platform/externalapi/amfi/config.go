// Package amfi reads the AMFI daily NAV list to profile the asset management companies.
package amfi

import (
	"os"
	"time"
)

// DefaultBaseURL is used when AMFI_BASE_URL is not set.
const DefaultBaseURL = "https://www.amfiindia.com"

// NAVAllPath is the semicolon separated list of every scheme and its latest NAV.
const NAVAllPath = "/spages/NAVAll.txt"

// Config holds configuration for the AMFI client.
type Config struct {
	BaseURL string
	Timeout time.Duration // the list is several megabytes
}

// LoadConfig loads AMFI configuration from environment variables.
func LoadConfig() Config {
	base := os.Getenv("AMFI_BASE_URL")
	if base == "" {
		base = DefaultBaseURL
	}
	return Config{
		BaseURL: base,
		Timeout: 30 * time.Second,
	}
}
