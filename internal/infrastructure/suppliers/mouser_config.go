package suppliers

import (
	"errors"
	"time"
)

// MouserConfig holds configuration for Mouser API integration
type MouserConfig struct {
	// APIKey is the part search API key from the Mouser developer portal
	APIKey string
	// BaseURL is the base URL for the Mouser API
	BaseURL string
	// Timeout is the HTTP request timeout
	Timeout time.Duration
	// RequestsPerMinute caps the request rate against the Mouser API
	RequestsPerMinute int
}

const (
	// MouserProductionAPIURL is the production API endpoint
	MouserProductionAPIURL = "https://api.mouser.com"

	// mouserPartSearchPath is the part number search endpoint path
	mouserPartSearchPath = "/api/v1/search/partnumber"

	// defaultMouserRequestsPerMinute matches the documented Mouser API quota
	defaultMouserRequestsPerMinute = 30
)

// ErrMouserConfigMissingAPIKey indicates a missing Mouser API key
var ErrMouserConfigMissingAPIKey = errors.New("mouser: API key is required")

// NewMouserConfig creates a new Mouser configuration with defaults
func NewMouserConfig(apiKey string) *MouserConfig {
	return &MouserConfig{
		APIKey:            apiKey,
		BaseURL:           MouserProductionAPIURL,
		Timeout:           30 * time.Second,
		RequestsPerMinute: defaultMouserRequestsPerMinute,
	}
}

// Validate validates the Mouser configuration
func (c *MouserConfig) Validate() error {
	if c.APIKey == "" {
		return ErrMouserConfigMissingAPIKey
	}
	if c.BaseURL == "" {
		c.BaseURL = MouserProductionAPIURL
	}
	if c.Timeout <= 0 {
		c.Timeout = 30 * time.Second
	}
	if c.RequestsPerMinute <= 0 {
		c.RequestsPerMinute = defaultMouserRequestsPerMinute
	}
	return nil
}
