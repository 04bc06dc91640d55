package inventree

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/partsync/partsync/internal/domain/inventory"
)

// ---------------------------------------------------------------------------
// Company Operations
// ---------------------------------------------------------------------------

// FindCompany looks a company up by name and role. The backend matches
// ?name= as a substring, so the exact match is picked client-side.
func (c *Client) FindCompany(ctx context.Context, name string, role inventory.CompanyRole) (*inventory.Company, error) {
	query := url.Values{}
	query.Set("name", name)
	switch role {
	case inventory.RoleManufacturer:
		query.Set("is_manufacturer", "true")
	case inventory.RoleSupplier:
		query.Set("is_supplier", "true")
	}

	var resources []companyResource
	if err := c.get(ctx, companyPath, query, &resources); err != nil {
		return nil, err
	}

	for i := range resources {
		if strings.EqualFold(resources[i].Name, name) {
			return convertCompany(&resources[i]), nil
		}
	}
	return nil, nil
}

// CreateCompany creates a company and returns it with its assigned ID
func (c *Client) CreateCompany(ctx context.Context, company *inventory.Company) (*inventory.Company, error) {
	var created companyResource
	if err := c.send(ctx, http.MethodPost, companyPath, companyPayload(company), &created); err != nil {
		return nil, err
	}
	return convertCompany(&created), nil
}

// ---------------------------------------------------------------------------
// Category Operations
// ---------------------------------------------------------------------------

// FindCategory looks a part category up by name, matching exactly client-side
func (c *Client) FindCategory(ctx context.Context, name string) (*inventory.Category, error) {
	query := url.Values{}
	query.Set("name", name)

	var resources []categoryResource
	if err := c.get(ctx, categoryPath, query, &resources); err != nil {
		return nil, err
	}

	for i := range resources {
		if strings.EqualFold(resources[i].Name, name) {
			return convertCategory(&resources[i]), nil
		}
	}
	return nil, nil
}

// CreateCategory creates a part category
func (c *Client) CreateCategory(ctx context.Context, category *inventory.Category) (*inventory.Category, error) {
	var created categoryResource
	if err := c.send(ctx, http.MethodPost, categoryPath, categoryPayload(category), &created); err != nil {
		return nil, err
	}
	return convertCategory(&created), nil
}
