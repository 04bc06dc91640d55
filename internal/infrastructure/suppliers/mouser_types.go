package suppliers

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/partsync/partsync/internal/domain/supplier"
)

// ---------------------------------------------------------------------------
// Search Request Types
// ---------------------------------------------------------------------------

// mouserSearchRequest is the request envelope for the part number search API
type mouserSearchRequest struct {
	SearchByPartRequest mouserPartSearch `json:"SearchByPartRequest"`
}

// mouserPartSearch carries the part number search parameters
type mouserPartSearch struct {
	MouserPartNumber  string `json:"mouserPartNumber"`
	PartSearchOptions string `json:"partSearchOptions"`
}

// ---------------------------------------------------------------------------
// Search Response Types
// ---------------------------------------------------------------------------

// mouserSearchResponse is the response envelope for all Mouser search APIs
type mouserSearchResponse struct {
	Errors        []mouserError        `json:"Errors"`
	SearchResults *mouserSearchResults `json:"SearchResults,omitempty"`
}

// mouserError represents an API-level error entry
type mouserError struct {
	ID                    int    `json:"Id"`
	Code                  string `json:"Code"`
	Message               string `json:"Message"`
	ResourceKey           string `json:"ResourceKey,omitempty"`
	ResourceFormatString  string `json:"ResourceFormatString,omitempty"`
	ResourceFormatString2 string `json:"ResourceFormatString2,omitempty"`
	PropertyName          string `json:"PropertyName,omitempty"`
}

// IsSuccess returns true if the response carries no API-level errors
func (r *mouserSearchResponse) IsSuccess() bool {
	return len(r.Errors) == 0
}

// mouserSearchResults contains the matched parts
type mouserSearchResults struct {
	NumberOfResult int          `json:"NumberOfResult"`
	Parts          []mouserPart `json:"Parts"`
}

// mouserPart represents a part record from the Mouser API
type mouserPart struct {
	MouserPartNumber       string             `json:"MouserPartNumber"`
	ManufacturerPartNumber string             `json:"ManufacturerPartNumber"`
	Manufacturer           string             `json:"Manufacturer"`
	Description            string             `json:"Description"`
	DataSheetURL           string             `json:"DataSheetUrl,omitempty"`
	ImagePath              string             `json:"ImagePath,omitempty"`
	ProductDetailURL       string             `json:"ProductDetailUrl,omitempty"`
	Category               string             `json:"Category,omitempty"`
	LifecycleStatus        string             `json:"LifecycleStatus,omitempty"`
	Availability           string             `json:"Availability,omitempty"`
	AvailabilityInStock    string             `json:"AvailabilityInStock,omitempty"`
	PriceBreaks            []mouserPriceBreak `json:"PriceBreaks,omitempty"`
}

// mouserPriceBreak represents one price break entry.
// Price strings carry locale noise such as "$1,234.56".
type mouserPriceBreak struct {
	Quantity int    `json:"Quantity"`
	Price    string `json:"Price"`
	Currency string `json:"Currency,omitempty"`
}

// ---------------------------------------------------------------------------
// Conversion
// ---------------------------------------------------------------------------

// mouserInactiveStatuses are the lifecycle statuses treated as not orderable
var mouserInactiveStatuses = []string{"Obsolete", "End of Life", "Discontinued"}

// parseMoney parses a price string that may carry currency symbols, thousands
// separators, and currency codes (e.g. "$1,234.56" or "0.15 USD")
func parseMoney(s string) (decimal.Decimal, error) {
	cleaned := strings.Map(func(r rune) rune {
		switch {
		case r >= '0' && r <= '9', r == '.', r == '-':
			return r
		default:
			return -1
		}
	}, s)
	if cleaned == "" {
		return decimal.Zero, fmt.Errorf("mouser: no numeric value in price %q", s)
	}
	return decimal.NewFromString(cleaned)
}

// parseStock leniently parses an availability count; empty or non-numeric
// values count as zero stock
func parseStock(s string) int {
	cleaned := strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	if cleaned == "" {
		return 0
	}
	n, err := strconv.Atoi(cleaned)
	if err != nil || n < 0 {
		return 0
	}
	return n
}

// mouserLifecycleActive maps a lifecycle status to orderability
func mouserLifecycleActive(status string) bool {
	for _, inactive := range mouserInactiveStatuses {
		if strings.EqualFold(strings.TrimSpace(status), inactive) {
			return false
		}
	}
	return true
}

// convertMouserPart converts a Mouser part to normalized part info.
// Price breaks with unparsable prices are dropped.
func convertMouserPart(p *mouserPart) *supplier.PartInfo {
	info := &supplier.PartInfo{
		ManufacturerName:       p.Manufacturer,
		ManufacturerPartNumber: p.ManufacturerPartNumber,
		SupplierName:           supplier.CodeMouser.DisplayName(),
		SupplierPartNumber:     p.MouserPartNumber,
		Description:            p.Description,
		DatasheetURL:           p.DataSheetURL,
		ImageURL:               p.ImagePath,
		ProductURL:             p.ProductDetailURL,
		Category:               p.Category,
		Stock:                  parseStock(p.AvailabilityInStock),
		Active:                 mouserLifecycleActive(p.LifecycleStatus),
		PriceBreaks:            make(supplier.PriceBreaks, 0, len(p.PriceBreaks)),
	}

	for _, pb := range p.PriceBreaks {
		price, err := parseMoney(pb.Price)
		if err != nil {
			continue
		}
		info.PriceBreaks = append(info.PriceBreaks, supplier.PriceBreak{
			Quantity: pb.Quantity,
			Price:    price,
		})
	}
	info.PriceBreaks.Sort()

	return info
}
