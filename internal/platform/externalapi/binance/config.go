// Package binance provides a client for the Binance spot market data API.
package binance

import (
	"os"
	"time"
)

// Config holds configuration for the Binance API client.
type Config struct {
	BaseURL string        // Base URL for the API (e.g., "https://api.binance.com")
	Timeout time.Duration // HTTP request timeout
}

// LoadConfig loads Binance configuration from environment variables.
// The klines endpoint used here is public and needs no API key.
func LoadConfig() Config {
	baseURL := os.Getenv("BINANCE_BASE_URL")
	if baseURL == "" {
		baseURL = "https://api.binance.com"
	}
	return Config{
		BaseURL: baseURL,
		Timeout: 10 * time.Second,
	}
}
