package suppliers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/partsync/partsync/internal/domain/shared"
	"github.com/partsync/partsync/internal/domain/supplier"
)

// maxMouserResponseSize limits the response body size from the Mouser API (10MB)
const maxMouserResponseSize = 10 * 1024 * 1024

// MouserAdapter implements the CatalogGateway interface for the Mouser catalog
type MouserAdapter struct {
	config     *MouserConfig
	httpClient *http.Client
	limiter    *rate.Limiter
}

// NewMouserAdapter creates a new Mouser adapter with the given configuration
func NewMouserAdapter(config *MouserConfig) (*MouserAdapter, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &MouserAdapter{
		config: config,
		httpClient: &http.Client{
			Timeout: config.Timeout,
		},
		limiter: rate.NewLimiter(
			rate.Every(time.Minute/time.Duration(config.RequestsPerMinute)),
			config.RequestsPerMinute,
		),
	}, nil
}

// Code returns the supplier code this adapter handles
func (a *MouserAdapter) Code() supplier.Code {
	return supplier.CodeMouser
}

// GetPart retrieves normalized part data for a Mouser or manufacturer part
// number. The search endpoint matches both, so no fallback pass is needed.
func (a *MouserAdapter) GetPart(ctx context.Context, partNumber string) (*supplier.PartInfo, error) {
	if strings.TrimSpace(partNumber) == "" {
		return nil, shared.NewDomainError("INVALID_PART_NUMBER", "Part number is required")
	}

	if err := a.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	payload, err := json.Marshal(mouserSearchRequest{
		SearchByPartRequest: mouserPartSearch{
			MouserPartNumber:  partNumber,
			PartSearchOptions: "",
		},
	})
	if err != nil {
		return nil, fmt.Errorf("mouser: failed to marshal search request: %w", err)
	}

	body, err := a.doRequest(ctx, payload)
	if err != nil {
		return nil, err
	}

	var resp mouserSearchResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("%w: failed to parse response: %v", supplier.ErrInvalidResponse, err)
	}

	if !resp.IsSuccess() {
		e := resp.Errors[0]
		return nil, fmt.Errorf("%w: %s - %s", supplier.ErrRequestFailed, e.Code, e.Message)
	}

	if resp.SearchResults == nil || len(resp.SearchResults.Parts) == 0 {
		return nil, fmt.Errorf("%w: %s", supplier.ErrPartNotFound, partNumber)
	}

	return convertMouserPart(&resp.SearchResults.Parts[0]), nil
}

// doRequest performs an HTTP request to the Mouser search API
func (a *MouserAdapter) doRequest(ctx context.Context, payload []byte) ([]byte, error) {
	searchURL := a.config.BaseURL + mouserPartSearchPath + "?apiKey=" + url.QueryEscape(a.config.APIKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, searchURL, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("mouser: failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := a.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("%w: %v", supplier.ErrUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxMouserResponseSize))
	if err != nil {
		return nil, fmt.Errorf("mouser: failed to read response: %w", err)
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return nil, fmt.Errorf("%w: HTTP %d", supplier.ErrAuthFailed, resp.StatusCode)
	case resp.StatusCode >= 400:
		return nil, fmt.Errorf("%w: HTTP %d", supplier.ErrRequestFailed, resp.StatusCode)
	}

	return body, nil
}

// Ensure MouserAdapter implements CatalogGateway interface
var _ supplier.CatalogGateway = (*MouserAdapter)(nil)
