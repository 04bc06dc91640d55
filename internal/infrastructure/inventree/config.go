package inventree

import (
	"errors"
	"strings"
	"time"
)

// Config holds configuration for the InvenTree API client
type Config struct {
	// BaseURL is the server URL without the /api suffix
	BaseURL string
	// Token is the API token of the syncing user
	Token string
	// Timeout is the HTTP request timeout
	Timeout time.Duration
}

// Errors for InvenTree configuration
var (
	ErrConfigMissingBaseURL = errors.New("inventree: server URL is required")
	ErrConfigMissingToken   = errors.New("inventree: API token is required")
)

// NewConfig creates a new InvenTree client configuration with defaults
func NewConfig(baseURL, token string) *Config {
	return &Config{
		BaseURL: baseURL,
		Token:   token,
		Timeout: 30 * time.Second,
	}
}

// Validate validates the InvenTree client configuration
func (c *Config) Validate() error {
	c.BaseURL = strings.TrimRight(strings.TrimSpace(c.BaseURL), "/")
	if c.BaseURL == "" {
		return ErrConfigMissingBaseURL
	}
	if c.Token == "" {
		return ErrConfigMissingToken
	}
	if c.Timeout <= 0 {
		c.Timeout = 30 * time.Second
	}
	return nil
}
