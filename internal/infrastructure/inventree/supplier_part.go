package inventree

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/partsync/partsync/internal/domain/inventory"
)

// ---------------------------------------------------------------------------
// Manufacturer Part Operations
// ---------------------------------------------------------------------------

// FindManufacturerPart looks a manufacturer part up by manufacturer and MPN
func (c *Client) FindManufacturerPart(ctx context.Context, manufacturerID int, mpn string) (*inventory.ManufacturerPart, error) {
	query := url.Values{}
	query.Set("manufacturer", strconv.Itoa(manufacturerID))
	query.Set("MPN", mpn)

	var resources []manufacturerPartResource
	if err := c.get(ctx, manufacturerPartPath, query, &resources); err != nil {
		return nil, err
	}

	for i := range resources {
		if strings.EqualFold(resources[i].MPN, mpn) {
			return convertManufacturerPart(&resources[i]), nil
		}
	}
	return nil, nil
}

// CreateManufacturerPart creates a manufacturer part
func (c *Client) CreateManufacturerPart(ctx context.Context, mp *inventory.ManufacturerPart) (*inventory.ManufacturerPart, error) {
	var created manufacturerPartResource
	if err := c.send(ctx, http.MethodPost, manufacturerPartPath, manufacturerPartPayload(mp), &created); err != nil {
		return nil, err
	}
	return convertManufacturerPart(&created), nil
}

// CreateManufacturerPartParameter creates a technical parameter on a manufacturer part
func (c *Client) CreateManufacturerPartParameter(ctx context.Context, param *inventory.ManufacturerPartParameter) (*inventory.ManufacturerPartParameter, error) {
	var created manufacturerPartParameterResource
	if err := c.send(ctx, http.MethodPost, manufacturerParamPath, manufacturerPartParameterPayload(param), &created); err != nil {
		return nil, err
	}
	return convertManufacturerPartParameter(&created), nil
}

// ---------------------------------------------------------------------------
// Supplier Part Operations
// ---------------------------------------------------------------------------

// FindSupplierPart looks a supplier part up by supplier and SKU
func (c *Client) FindSupplierPart(ctx context.Context, supplierID int, sku string) (*inventory.SupplierPart, error) {
	query := url.Values{}
	query.Set("supplier", strconv.Itoa(supplierID))
	query.Set("SKU", sku)

	var resources []supplierPartResource
	if err := c.get(ctx, supplierPartPath, query, &resources); err != nil {
		return nil, err
	}

	for i := range resources {
		if strings.EqualFold(resources[i].SKU, sku) {
			return convertSupplierPart(&resources[i]), nil
		}
	}
	return nil, nil
}

// ListSupplierParts returns every supplier part belonging to a supplier
func (c *Client) ListSupplierParts(ctx context.Context, supplierID int) ([]inventory.SupplierPart, error) {
	query := url.Values{}
	query.Set("supplier", strconv.Itoa(supplierID))

	var resources []supplierPartResource
	if err := c.get(ctx, supplierPartPath, query, &resources); err != nil {
		return nil, err
	}

	parts := make([]inventory.SupplierPart, 0, len(resources))
	for i := range resources {
		parts = append(parts, *convertSupplierPart(&resources[i]))
	}
	return parts, nil
}

// CreateSupplierPart creates a supplier part
func (c *Client) CreateSupplierPart(ctx context.Context, sp *inventory.SupplierPart) (*inventory.SupplierPart, error) {
	var created supplierPartResource
	if err := c.send(ctx, http.MethodPost, supplierPartPath, supplierPartPayload(sp), &created); err != nil {
		return nil, err
	}
	return convertSupplierPart(&created), nil
}

// UpdateSupplierPartActive updates the active flag on a supplier part
func (c *Client) UpdateSupplierPartActive(ctx context.Context, id int, active bool) error {
	payload := map[string]bool{"active": active}
	return c.send(ctx, http.MethodPatch, detailPath(supplierPartPath, id), payload, nil)
}

// ---------------------------------------------------------------------------
// Price Break Operations
// ---------------------------------------------------------------------------

// ListPriceBreaks returns the stored price breaks of a supplier part
func (c *Client) ListPriceBreaks(ctx context.Context, supplierPartID int) ([]inventory.PriceBreak, error) {
	query := url.Values{}
	query.Set("part", strconv.Itoa(supplierPartID))

	var resources []priceBreakResource
	if err := c.get(ctx, supplierPriceBreaksPath, query, &resources); err != nil {
		return nil, err
	}

	breaks := make([]inventory.PriceBreak, 0, len(resources))
	for i := range resources {
		breaks = append(breaks, *convertPriceBreak(&resources[i]))
	}
	return breaks, nil
}

// CreatePriceBreak creates a price break
func (c *Client) CreatePriceBreak(ctx context.Context, pb *inventory.PriceBreak) (*inventory.PriceBreak, error) {
	var created priceBreakResource
	if err := c.send(ctx, http.MethodPost, supplierPriceBreaksPath, priceBreakPayload(pb), &created); err != nil {
		return nil, err
	}
	return convertPriceBreak(&created), nil
}

// DeletePriceBreak deletes a price break
func (c *Client) DeletePriceBreak(ctx context.Context, id int) error {
	return c.delete(ctx, detailPath(supplierPriceBreaksPath, id))
}
