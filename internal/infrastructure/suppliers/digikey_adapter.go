package suppliers

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/partsync/partsync/internal/domain/shared"
	"github.com/partsync/partsync/internal/domain/supplier"
)

const (
	// maxResponseSize is the maximum allowed response size from Digikey API (10MB)
	maxResponseSize = 10 * 1024 * 1024
	// digikeyTokenFile is the token cache file name inside StoragePath
	digikeyTokenFile = "token.json"
	// digikeyTokenMargin refreshes cached tokens this long before they expire
	digikeyTokenMargin = 60 * time.Second
)

// digikeyToken is the persisted form of an OAuth2 access token
type digikeyToken struct {
	AccessToken string    `json:"access_token"`
	TokenType   string    `json:"token_type"`
	ExpiresAt   time.Time `json:"expires_at"`
}

// usable returns true if the token is still valid at the given time
func (t *digikeyToken) usable(now time.Time) bool {
	return t != nil && t.AccessToken != "" && now.Add(digikeyTokenMargin).Before(t.ExpiresAt)
}

// DigikeyAdapter implements the CatalogGateway interface for the Digikey catalog
type DigikeyAdapter struct {
	config     *DigikeyConfig
	httpClient *http.Client

	mu    sync.Mutex // Protects token
	token *digikeyToken
}

// NewDigikeyAdapter creates a new Digikey adapter with the given configuration
func NewDigikeyAdapter(config *DigikeyConfig) (*DigikeyAdapter, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &DigikeyAdapter{
		config: config,
		httpClient: &http.Client{
			Timeout: config.Timeout,
		},
	}, nil
}

// Code returns the supplier code this adapter handles
func (a *DigikeyAdapter) Code() supplier.Code {
	return supplier.CodeDigikey
}

// ---------------------------------------------------------------------------
// Part Lookup
// ---------------------------------------------------------------------------

// GetPart retrieves normalized part data for a Digikey or manufacturer part
// number. An exact product lookup is tried first; when the catalog has no
// product under that number, a keyword search picks the closest match and its
// Digikey part number is fetched again for the full product record.
func (a *DigikeyAdapter) GetPart(ctx context.Context, partNumber string) (*supplier.PartInfo, error) {
	if strings.TrimSpace(partNumber) == "" {
		return nil, shared.NewDomainError("INVALID_PART_NUMBER", "Part number is required")
	}

	token, err := a.getToken(ctx)
	if err != nil {
		return nil, err
	}

	product, status, err := a.fetchProduct(ctx, token, partNumber)
	if err != nil {
		return nil, err
	}
	if status == http.StatusNotFound {
		return a.searchKeyword(ctx, token, partNumber)
	}

	return convertDigikeyProduct(product), nil
}

// fetchProduct performs an exact product details lookup. A 404 is not an
// error here; callers check the returned status code.
func (a *DigikeyAdapter) fetchProduct(ctx context.Context, token, partNumber string) (*digikeyProduct, int, error) {
	productURL := a.config.BaseURL + digikeyProductPath + url.PathEscape(partNumber)

	body, status, err := a.doRequest(ctx, http.MethodGet, productURL, nil, token)
	if err != nil {
		return nil, 0, err
	}

	switch {
	case status == http.StatusNotFound:
		return nil, status, nil
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return nil, status, fmt.Errorf("%w: HTTP %d: %s", supplier.ErrAuthFailed, status, digikeyErrorMessage(body))
	case status >= 400:
		return nil, status, fmt.Errorf("%w: HTTP %d: %s", supplier.ErrRequestFailed, status, digikeyErrorMessage(body))
	}

	var product digikeyProduct
	if err := json.Unmarshal(body, &product); err != nil {
		return nil, status, fmt.Errorf("%w: failed to parse response: %v", supplier.ErrInvalidResponse, err)
	}

	return &product, status, nil
}

// searchKeyword searches the catalog for a part number that failed the exact
// lookup and re-fetches the best match by its Digikey part number
func (a *DigikeyAdapter) searchKeyword(ctx context.Context, token, partNumber string) (*supplier.PartInfo, error) {
	payload, err := json.Marshal(digikeyKeywordRequest{
		Keywords:    partNumber,
		RecordCount: 1,
	})
	if err != nil {
		return nil, fmt.Errorf("digikey: failed to marshal keyword request: %w", err)
	}

	keywordURL := a.config.BaseURL + digikeyKeywordPath
	body, status, err := a.doRequest(ctx, http.MethodPost, keywordURL, strings.NewReader(string(payload)), token)
	if err != nil {
		return nil, err
	}

	switch {
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return nil, fmt.Errorf("%w: HTTP %d: %s", supplier.ErrAuthFailed, status, digikeyErrorMessage(body))
	case status >= 400:
		return nil, fmt.Errorf("%w: HTTP %d: %s", supplier.ErrRequestFailed, status, digikeyErrorMessage(body))
	}

	var resp digikeyKeywordResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("%w: failed to parse response: %v", supplier.ErrInvalidResponse, err)
	}

	if len(resp.Products) == 0 {
		return nil, fmt.Errorf("%w: %s", supplier.ErrPartNotFound, partNumber)
	}

	match := resp.Products[0]
	if match.DigiKeyPartNumber == "" {
		return convertDigikeyProduct(&match), nil
	}

	product, status, err := a.fetchProduct(ctx, token, match.DigiKeyPartNumber)
	if err != nil {
		return nil, err
	}
	if status == http.StatusNotFound {
		return nil, fmt.Errorf("%w: %s", supplier.ErrPartNotFound, partNumber)
	}

	return convertDigikeyProduct(product), nil
}

// ---------------------------------------------------------------------------
// OAuth2 Token Handling
// ---------------------------------------------------------------------------

// getToken returns a valid access token, reusing the in-memory or on-disk
// cache and requesting a fresh token from the OAuth2 endpoint when both miss
func (a *DigikeyAdapter) getToken(ctx context.Context) (string, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	now := time.Now()
	if a.token.usable(now) {
		return a.token.AccessToken, nil
	}

	if cached := a.loadToken(); cached.usable(now) {
		a.token = cached
		return cached.AccessToken, nil
	}

	token, err := a.requestToken(ctx)
	if err != nil {
		return "", err
	}

	a.token = token
	a.saveToken(token)
	return token.AccessToken, nil
}

// requestToken performs the OAuth2 client credentials exchange
func (a *DigikeyAdapter) requestToken(ctx context.Context) (*digikeyToken, error) {
	values := url.Values{}
	values.Set("client_id", a.config.ClientID)
	values.Set("client_secret", a.config.ClientSecret)
	values.Set("grant_type", "client_credentials")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.config.TokenURL, strings.NewReader(values.Encode()))
	if err != nil {
		return nil, fmt.Errorf("digikey: failed to create token request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := a.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("%w: %v", supplier.ErrUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, fmt.Errorf("digikey: failed to read token response: %w", err)
	}

	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("%w: HTTP %d: %s", supplier.ErrAuthFailed, resp.StatusCode, digikeyErrorMessage(body))
	}

	var tokenResp digikeyTokenResponse
	if err := json.Unmarshal(body, &tokenResp); err != nil {
		return nil, fmt.Errorf("%w: failed to parse token response: %v", supplier.ErrInvalidResponse, err)
	}
	if tokenResp.AccessToken == "" {
		return nil, fmt.Errorf("%w: token response carried no access token", supplier.ErrAuthFailed)
	}

	return &digikeyToken{
		AccessToken: tokenResp.AccessToken,
		TokenType:   tokenResp.TokenType,
		ExpiresAt:   time.Now().Add(time.Duration(tokenResp.ExpiresIn) * time.Second),
	}, nil
}

// loadToken reads the cached token from StoragePath, returning nil when the
// cache is disabled, missing, or unreadable
func (a *DigikeyAdapter) loadToken() *digikeyToken {
	if a.config.StoragePath == "" {
		return nil
	}

	data, err := os.ReadFile(filepath.Join(a.config.StoragePath, digikeyTokenFile))
	if err != nil {
		return nil
	}

	var token digikeyToken
	if err := json.Unmarshal(data, &token); err != nil {
		return nil
	}
	return &token
}

// saveToken persists the token to StoragePath. The token still works from
// memory when the cache cannot be written, so write failures are ignored.
func (a *DigikeyAdapter) saveToken(token *digikeyToken) {
	if a.config.StoragePath == "" {
		return
	}

	data, err := json.MarshalIndent(token, "", "  ")
	if err != nil {
		return
	}

	if err := os.MkdirAll(a.config.StoragePath, 0o700); err != nil {
		return
	}
	_ = os.WriteFile(filepath.Join(a.config.StoragePath, digikeyTokenFile), data, 0o600)
}

// ---------------------------------------------------------------------------
// Internal Helpers
// ---------------------------------------------------------------------------

// doRequest performs an authenticated HTTP request to the Digikey API.
// The response body and status code are returned for any completed request;
// callers decide which status codes are errors.
func (a *DigikeyAdapter) doRequest(ctx context.Context, method, rawURL string, body io.Reader, token string) ([]byte, int, error) {
	req, err := http.NewRequestWithContext(ctx, method, rawURL, body)
	if err != nil {
		return nil, 0, fmt.Errorf("digikey: failed to create request: %w", err)
	}

	req.Header.Set("X-DIGIKEY-Client-Id", a.config.ClientID)
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := a.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, 0, ctx.Err()
		}
		return nil, 0, fmt.Errorf("%w: %v", supplier.ErrUnavailable, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, resp.StatusCode, fmt.Errorf("digikey: failed to read response: %w", err)
	}

	return respBody, resp.StatusCode, nil
}

// Ensure DigikeyAdapter implements CatalogGateway interface
var _ supplier.CatalogGateway = (*DigikeyAdapter)(nil)
