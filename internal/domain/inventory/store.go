package inventory

import (
	"context"
	"errors"
)

// ---------------------------------------------------------------------------
// Store Errors
// ---------------------------------------------------------------------------

var (
	ErrUnavailable     = errors.New("inventory: backend unavailable")
	ErrRequestFailed   = errors.New("inventory: backend request failed")
	ErrInvalidResponse = errors.New("inventory: invalid backend response")
	ErrUnauthorized    = errors.New("inventory: backend rejected credentials")
	ErrNotFound        = errors.New("inventory: resource not found")
)

// ---------------------------------------------------------------------------
// Store Port Interface
// ---------------------------------------------------------------------------

// Store defines the port interface for the inventory backend.
// Find methods probe by natural key and return (nil, nil) when nothing
// matches; errors are reserved for transport and protocol failures.
type Store interface {
	// Ping reports backend reachability and version information
	Ping(ctx context.Context) (*ServerInfo, error)

	// ---------------------------------------------------------------------------
	// Company Operations
	// ---------------------------------------------------------------------------

	// FindCompany looks a company up by exact name and role
	FindCompany(ctx context.Context, name string, role CompanyRole) (*Company, error)

	// CreateCompany creates a company and returns it with its assigned ID
	CreateCompany(ctx context.Context, company *Company) (*Company, error)

	// ---------------------------------------------------------------------------
	// Category Operations
	// ---------------------------------------------------------------------------

	// FindCategory looks a part category up by exact name
	FindCategory(ctx context.Context, name string) (*Category, error)

	// CreateCategory creates a part category
	CreateCategory(ctx context.Context, category *Category) (*Category, error)

	// ---------------------------------------------------------------------------
	// Part Operations
	// ---------------------------------------------------------------------------

	// FindPartByName looks a part up by exact name
	FindPartByName(ctx context.Context, name string) (*Part, error)

	// FindPartByIPN looks a part up by internal part number
	FindPartByIPN(ctx context.Context, ipn string) (*Part, error)

	// CreatePart creates a part
	CreatePart(ctx context.Context, part *Part) (*Part, error)

	// UploadPartImage attaches a local image file to a part
	UploadPartImage(ctx context.Context, partID int, path string) error

	// ---------------------------------------------------------------------------
	// Manufacturer Part Operations
	// ---------------------------------------------------------------------------

	// FindManufacturerPart looks a manufacturer part up by manufacturer and MPN
	FindManufacturerPart(ctx context.Context, manufacturerID int, mpn string) (*ManufacturerPart, error)

	// CreateManufacturerPart creates a manufacturer part
	CreateManufacturerPart(ctx context.Context, mp *ManufacturerPart) (*ManufacturerPart, error)

	// CreateManufacturerPartParameter creates a technical parameter on a manufacturer part
	CreateManufacturerPartParameter(ctx context.Context, param *ManufacturerPartParameter) (*ManufacturerPartParameter, error)

	// ---------------------------------------------------------------------------
	// Supplier Part Operations
	// ---------------------------------------------------------------------------

	// FindSupplierPart looks a supplier part up by supplier and SKU
	FindSupplierPart(ctx context.Context, supplierID int, sku string) (*SupplierPart, error)

	// ListSupplierParts returns every supplier part belonging to a supplier
	ListSupplierParts(ctx context.Context, supplierID int) ([]SupplierPart, error)

	// CreateSupplierPart creates a supplier part
	CreateSupplierPart(ctx context.Context, sp *SupplierPart) (*SupplierPart, error)

	// UpdateSupplierPartActive updates the active flag on a supplier part
	UpdateSupplierPartActive(ctx context.Context, id int, active bool) error

	// ---------------------------------------------------------------------------
	// Price Break Operations
	// ---------------------------------------------------------------------------

	// ListPriceBreaks returns the stored price breaks of a supplier part
	ListPriceBreaks(ctx context.Context, supplierPartID int) ([]PriceBreak, error)

	// CreatePriceBreak creates a price break
	CreatePriceBreak(ctx context.Context, pb *PriceBreak) (*PriceBreak, error)

	// DeletePriceBreak deletes a price break
	DeletePriceBreak(ctx context.Context, id int) error

	// ---------------------------------------------------------------------------
	// BOM Operations
	// ---------------------------------------------------------------------------

	// FindBomItem looks a BOM line up by assembly and component
	FindBomItem(ctx context.Context, assemblyID, componentID int) (*BomItem, error)

	// CreateBomItem creates a BOM line
	CreateBomItem(ctx context.Context, item *BomItem) (*BomItem, error)
}
