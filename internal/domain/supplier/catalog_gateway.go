package supplier

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/partsync/partsync/internal/domain/shared"
)

// ---------------------------------------------------------------------------
// CatalogGateway Errors
// ---------------------------------------------------------------------------

var (
	// Gateway errors
	ErrNotConfigured     = errors.New("supplier: supplier not configured")
	ErrUnavailable       = errors.New("supplier: supplier temporarily unavailable")
	ErrRequestFailed     = errors.New("supplier: supplier request failed")
	ErrInvalidResponse   = errors.New("supplier: invalid supplier response")
	ErrAuthFailed        = errors.New("supplier: supplier authentication failed")
	ErrAlreadyRegistered = errors.New("supplier: supplier already registered")

	// Lookup errors
	ErrPartNotFound = errors.New("supplier: part not found")
)

// ---------------------------------------------------------------------------
// Code represents a supported supplier catalog
// ---------------------------------------------------------------------------

// Code represents a supported supplier catalog
type Code string

const (
	// CodeDigikey represents the Digikey product catalog
	CodeDigikey Code = "digikey"
	// CodeMouser represents the Mouser product catalog
	CodeMouser Code = "mouser"
)

// AllCodes returns every supported supplier code
func AllCodes() []Code {
	return []Code{CodeDigikey, CodeMouser}
}

// ParseCode parses a case-insensitive supplier name into a Code
func ParseCode(s string) (Code, error) {
	code := Code(strings.ToLower(strings.TrimSpace(s)))
	if !code.IsValid() {
		return "", shared.NewDomainError("INVALID_SUPPLIER",
			"Supplier must be one of: digikey, mouser")
	}
	return code, nil
}

// IsValid returns true if the supplier code is valid
func (c Code) IsValid() bool {
	switch c {
	case CodeDigikey, CodeMouser:
		return true
	default:
		return false
	}
}

// String returns the string representation of Code
func (c Code) String() string {
	return string(c)
}

// DisplayName returns a human-readable name for the supplier
func (c Code) DisplayName() string {
	switch c {
	case CodeDigikey:
		return "Digikey"
	case CodeMouser:
		return "Mouser"
	default:
		return string(c)
	}
}

// ---------------------------------------------------------------------------
// Value Objects
// ---------------------------------------------------------------------------

// PriceBreak represents a quantity price break from a supplier catalog
type PriceBreak struct {
	// Quantity is the minimum order quantity for this break
	Quantity int
	// Price is the unit price at this quantity
	Price decimal.Decimal
}

// PriceBreaks is an ordered list of quantity price breaks
type PriceBreaks []PriceBreak

// Sort orders the breaks by ascending quantity
func (p PriceBreaks) Sort() {
	sort.Slice(p, func(i, j int) bool { return p[i].Quantity < p[j].Quantity })
}

// Equal reports whether both break lists carry the same quantities and prices.
// Order is ignored; both sides are compared sorted.
func (p PriceBreaks) Equal(other PriceBreaks) bool {
	if len(p) != len(other) {
		return false
	}
	a := make(PriceBreaks, len(p))
	b := make(PriceBreaks, len(other))
	copy(a, p)
	copy(b, other)
	a.Sort()
	b.Sort()
	for i := range a {
		if a[i].Quantity != b[i].Quantity || !a[i].Price.Equal(b[i].Price) {
			return false
		}
	}
	return true
}

// String renders the breaks as "quantity: price" pairs for change reports
func (p PriceBreaks) String() string {
	if len(p) == 0 {
		return "none"
	}
	pairs := make([]string, len(p))
	for i, pb := range p {
		pairs[i] = fmt.Sprintf("%d: %s", pb.Quantity, pb.Price.String())
	}
	return strings.Join(pairs, ", ")
}

// UnitPrice returns the price of the lowest quantity break, or zero
func (p PriceBreaks) UnitPrice() decimal.Decimal {
	if len(p) == 0 {
		return decimal.Zero
	}
	best := p[0]
	for _, pb := range p[1:] {
		if pb.Quantity < best.Quantity {
			best = pb
		}
	}
	return best.Price
}

// Parameter represents a technical parameter reported by a supplier
type Parameter struct {
	// Name is the parameter name (e.g. "Resistance")
	Name string
	// Value is the parameter value (e.g. "10 kOhms")
	Value string
}

// PartInfo represents normalized part data retrieved from a supplier catalog
type PartInfo struct {
	// ManufacturerName is the manufacturer company name
	ManufacturerName string
	// ManufacturerPartNumber is the manufacturer's part number (MPN)
	ManufacturerPartNumber string
	// SupplierName is the supplier company name
	SupplierName string
	// SupplierPartNumber is the supplier's own part number (SKU)
	SupplierPartNumber string
	// Description is the catalog description
	Description string
	// DatasheetURL is the datasheet link, if any
	DatasheetURL string
	// ImageURL is the product photo link, if any
	ImageURL string
	// ProductURL is the supplier product page link, if any
	ProductURL string
	// Category is the supplier-reported category name
	Category string
	// Packaging is the packaging type (e.g. "Cut Tape")
	Packaging string
	// Stock is the quantity available at the supplier
	Stock int
	// Active reports whether the part is orderable
	Active bool
	// PriceBreaks contains the quantity price breaks
	PriceBreaks PriceBreaks
	// Parameters contains technical parameters
	Parameters []Parameter
}

// Validate validates that the part info carries enough data to sync
func (p *PartInfo) Validate() error {
	if p.SupplierName == "" {
		return shared.NewDomainError("INVALID_PART_INFO", "Supplier name is required")
	}
	if p.ManufacturerPartNumber == "" && p.SupplierPartNumber == "" {
		return shared.NewDomainError("INVALID_PART_INFO",
			"Part must carry a manufacturer or supplier part number")
	}
	return nil
}

// ---------------------------------------------------------------------------
// CatalogGateway Port Interface
// ---------------------------------------------------------------------------

// CatalogGateway defines the port interface for external supplier catalogs.
// This interface follows the Ports & Adapters pattern - it's defined in the domain
// layer, and concrete implementations (Digikey, Mouser) are in the infrastructure layer.
type CatalogGateway interface {
	// Code returns the supplier code this gateway handles
	Code() Code

	// GetPart retrieves normalized part data for a part number.
	// The part number may be a supplier SKU or a manufacturer part number;
	// gateways fall back to their catalog search when an exact lookup misses.
	// Returns ErrPartNotFound when the catalog has no match.
	GetPart(ctx context.Context, partNumber string) (*PartInfo, error)
}

// Registry provides access to configured supplier gateways.
// This allows selecting the appropriate gateway based on supplier code.
type Registry interface {
	// Register adds a gateway; registration order is preserved
	Register(gateway CatalogGateway) error

	// Get returns the gateway for the specified code
	Get(code Code) (CatalogGateway, error)

	// Codes returns the registered supplier codes in registration order
	Codes() []Code
}
