package inventree

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/partsync/partsync/internal/domain/inventory"
)

// maxResponseSize is the maximum allowed response size from the backend (10MB)
const maxResponseSize = 10 * 1024 * 1024

// API endpoint paths
const (
	apiRootPath             = "/api/"
	companyPath             = "/api/company/"
	categoryPath            = "/api/part/category/"
	partPath                = "/api/part/"
	manufacturerPartPath    = "/api/company/part/manufacturer/"
	manufacturerParamPath   = "/api/company/part/manufacturer/parameter/"
	supplierPartPath        = "/api/company/part/"
	supplierPriceBreaksPath = "/api/company/price-break/"
	bomPath                 = "/api/bom/"
)

// Client is an InvenTree REST API client implementing the inventory store port
type Client struct {
	config     *Config
	httpClient *http.Client
}

// NewClient creates a new InvenTree client with the given configuration
func NewClient(config *Config) (*Client, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &Client{
		config: config,
		httpClient: &http.Client{
			Timeout: config.Timeout,
		},
	}, nil
}

// Ping reports backend reachability and version information
func (c *Client) Ping(ctx context.Context) (*inventory.ServerInfo, error) {
	var resource serverInfoResource
	if err := c.get(ctx, apiRootPath, nil, &resource); err != nil {
		return nil, err
	}
	return &inventory.ServerInfo{
		Server:     resource.Server,
		Version:    resource.Version,
		APIVersion: resource.APIVersion,
	}, nil
}

// ---------------------------------------------------------------------------
// Internal Helpers
// ---------------------------------------------------------------------------

// get performs a GET request and decodes the JSON response into out
func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	body, err := c.doRequest(ctx, http.MethodGet, path, query, "", nil)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("%w: failed to parse response: %v", inventory.ErrInvalidResponse, err)
	}
	return nil
}

// send performs a POST or PATCH request with a JSON payload, decoding the
// response into out when out is non-nil
func (c *Client) send(ctx context.Context, method, path string, payload, out any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("inventree: failed to marshal request: %w", err)
	}

	body, err := c.doRequest(ctx, method, path, nil, "application/json", bytes.NewReader(data))
	if err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("%w: failed to parse response: %v", inventory.ErrInvalidResponse, err)
	}
	return nil
}

// delete performs a DELETE request
func (c *Client) delete(ctx context.Context, path string) error {
	_, err := c.doRequest(ctx, http.MethodDelete, path, nil, "", nil)
	return err
}

// doRequest performs an HTTP request to the InvenTree API
func (c *Client) doRequest(ctx context.Context, method, path string, query url.Values, contentType string, body io.Reader) ([]byte, error) {
	requestURL := c.config.BaseURL + path
	if len(query) > 0 {
		requestURL += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, requestURL, body)
	if err != nil {
		return nil, fmt.Errorf("inventree: failed to create request: %w", err)
	}

	req.Header.Set("Authorization", "Token "+c.config.Token)
	req.Header.Set("Accept", "application/json")
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("%w: %v", inventory.ErrUnavailable, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, fmt.Errorf("inventree: failed to read response: %w", err)
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return nil, fmt.Errorf("%w: HTTP %d", inventory.ErrUnauthorized, resp.StatusCode)
	case resp.StatusCode == http.StatusNotFound:
		return nil, fmt.Errorf("%w: %s", inventory.ErrNotFound, path)
	case resp.StatusCode >= 400:
		return nil, fmt.Errorf("%w: HTTP %d: %s", inventory.ErrRequestFailed, resp.StatusCode, bodyPreview(respBody))
	}

	return respBody, nil
}

// bodyPreview trims a response body for error messages
func bodyPreview(body []byte) string {
	preview := strings.TrimSpace(string(body))
	if len(preview) > 200 {
		preview = preview[:200]
	}
	return preview
}

// detailPath builds the detail endpoint path for a resource ID
func detailPath(base string, id int) string {
	return fmt.Sprintf("%s%d/", base, id)
}

// Ensure Client implements Store interface
var _ inventory.Store = (*Client)(nil)
