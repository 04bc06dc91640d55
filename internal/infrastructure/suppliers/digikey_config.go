package suppliers

import (
	"errors"
	"time"
)

// DigikeyConfig holds configuration for Digikey API integration
type DigikeyConfig struct {
	// ClientID is the application client ID from the Digikey developer portal
	ClientID string
	// ClientSecret is the application client secret
	ClientSecret string
	// BaseURL is the base URL for the Digikey API (production or sandbox)
	BaseURL string
	// TokenURL is the OAuth2 token endpoint
	TokenURL string
	// StoragePath is the directory where the OAuth token cache is kept.
	// Empty disables the file cache; tokens are then held in memory only.
	StoragePath string
	// IsSandbox indicates if this is a sandbox environment
	IsSandbox bool
	// Timeout is the HTTP request timeout
	Timeout time.Duration
}

const (
	// DigikeyProductionAPIURL is the production API endpoint
	DigikeyProductionAPIURL = "https://api.digikey.com"
	// DigikeySandboxAPIURL is the sandbox API endpoint
	DigikeySandboxAPIURL = "https://sandbox-api.digikey.com"

	// digikeyTokenPath is the OAuth2 token endpoint path
	digikeyTokenPath = "/v1/oauth2/token"
	// digikeyProductPath is the product details endpoint path
	digikeyProductPath = "/Search/v3/Products/"
	// digikeyKeywordPath is the keyword search endpoint path
	digikeyKeywordPath = "/Search/v3/Products/Keyword"
)

// Errors for Digikey configuration
var (
	ErrDigikeyConfigMissingClientID     = errors.New("digikey: client ID is required")
	ErrDigikeyConfigMissingClientSecret = errors.New("digikey: client secret is required")
)

// NewDigikeyConfig creates a new Digikey configuration with defaults
func NewDigikeyConfig(clientID, clientSecret string) *DigikeyConfig {
	return &DigikeyConfig{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		BaseURL:      DigikeyProductionAPIURL,
		TokenURL:     DigikeyProductionAPIURL + digikeyTokenPath,
		IsSandbox:    false,
		Timeout:      30 * time.Second,
	}
}

// NewSandboxDigikeyConfig creates a new Digikey configuration for sandbox environment
func NewSandboxDigikeyConfig(clientID, clientSecret string) *DigikeyConfig {
	return &DigikeyConfig{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		BaseURL:      DigikeySandboxAPIURL,
		TokenURL:     DigikeySandboxAPIURL + digikeyTokenPath,
		IsSandbox:    true,
		Timeout:      30 * time.Second,
	}
}

// Validate validates the Digikey configuration
func (c *DigikeyConfig) Validate() error {
	if c.ClientID == "" {
		return ErrDigikeyConfigMissingClientID
	}
	if c.ClientSecret == "" {
		return ErrDigikeyConfigMissingClientSecret
	}
	if c.BaseURL == "" {
		if c.IsSandbox {
			c.BaseURL = DigikeySandboxAPIURL
		} else {
			c.BaseURL = DigikeyProductionAPIURL
		}
	}
	if c.TokenURL == "" {
		c.TokenURL = c.BaseURL + digikeyTokenPath
	}
	if c.Timeout <= 0 {
		c.Timeout = 30 * time.Second
	}
	return nil
}
