package suppliers

import (
	"encoding/json"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/partsync/partsync/internal/domain/supplier"
)

// ---------------------------------------------------------------------------
// OAuth2 Token Types
// ---------------------------------------------------------------------------

// digikeyTokenResponse is the response from the OAuth2 token endpoint
type digikeyTokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
}

// ---------------------------------------------------------------------------
// Product Related Types
// ---------------------------------------------------------------------------

// digikeyValue is a wrapper Digikey uses for named attribute values
type digikeyValue struct {
	Value string `json:"Value"`
}

// digikeyPriceBreak represents one standard pricing entry
type digikeyPriceBreak struct {
	BreakQuantity int     `json:"BreakQuantity"`
	UnitPrice     float64 `json:"UnitPrice"`
	TotalPrice    float64 `json:"TotalPrice"`
}

// digikeyParameter represents a technical parameter of a product
type digikeyParameter struct {
	Parameter string `json:"Parameter"`
	Value     string `json:"Value"`
}

// digikeyProduct represents product details from the Digikey API
type digikeyProduct struct {
	DigiKeyPartNumber      string              `json:"DigiKeyPartNumber"`
	ManufacturerPartNumber string              `json:"ManufacturerPartNumber"`
	Manufacturer           digikeyValue        `json:"Manufacturer"`
	ProductDescription     string              `json:"ProductDescription"`
	DetailedDescription    string              `json:"DetailedDescription,omitempty"`
	PrimaryDatasheet       string              `json:"PrimaryDatasheet,omitempty"`
	PrimaryPhoto           string              `json:"PrimaryPhoto,omitempty"`
	ProductURL             string              `json:"ProductUrl,omitempty"`
	ProductStatus          string              `json:"ProductStatus,omitempty"`
	QuantityAvailable      int64               `json:"QuantityAvailable"`
	Packaging              digikeyValue        `json:"Packaging"`
	Category               digikeyValue        `json:"Category"`
	StandardPricing        []digikeyPriceBreak `json:"StandardPricing,omitempty"`
	Parameters             []digikeyParameter  `json:"Parameters,omitempty"`
}

// digikeyKeywordRequest is the request body for the keyword search endpoint
type digikeyKeywordRequest struct {
	Keywords    string `json:"Keywords"`
	RecordCount int    `json:"RecordCount"`
}

// digikeyKeywordResponse is the response from the keyword search endpoint
type digikeyKeywordResponse struct {
	ProductsCount int              `json:"ProductsCount"`
	Products      []digikeyProduct `json:"Products"`
}

// digikeyErrorResponse is the error body returned by the Digikey API
type digikeyErrorResponse struct {
	ErrorMessage string `json:"ErrorMessage"`
	ErrorDetails string `json:"ErrorDetails,omitempty"`
}

// digikeyErrorMessage extracts a human-readable error message from an error
// body, falling back to a trimmed body preview
func digikeyErrorMessage(body []byte) string {
	var errResp digikeyErrorResponse
	if err := json.Unmarshal(body, &errResp); err == nil && errResp.ErrorMessage != "" {
		if errResp.ErrorDetails != "" {
			return errResp.ErrorMessage + ": " + errResp.ErrorDetails
		}
		return errResp.ErrorMessage
	}
	preview := strings.TrimSpace(string(body))
	if len(preview) > 200 {
		preview = preview[:200]
	}
	return preview
}

// ---------------------------------------------------------------------------
// Conversion
// ---------------------------------------------------------------------------

// convertDigikeyProduct converts a Digikey product to normalized part info
func convertDigikeyProduct(p *digikeyProduct) *supplier.PartInfo {
	info := &supplier.PartInfo{
		ManufacturerName:       p.Manufacturer.Value,
		ManufacturerPartNumber: p.ManufacturerPartNumber,
		SupplierName:           supplier.CodeDigikey.DisplayName(),
		SupplierPartNumber:     p.DigiKeyPartNumber,
		Description:            p.ProductDescription,
		DatasheetURL:           p.PrimaryDatasheet,
		ImageURL:               p.PrimaryPhoto,
		ProductURL:             p.ProductURL,
		Category:               p.Category.Value,
		Packaging:              p.Packaging.Value,
		Stock:                  int(p.QuantityAvailable),
		Active:                 strings.EqualFold(p.ProductStatus, "Active"),
		PriceBreaks:            make(supplier.PriceBreaks, 0, len(p.StandardPricing)),
		Parameters:             make([]supplier.Parameter, 0, len(p.Parameters)),
	}

	if info.Description == "" {
		info.Description = p.DetailedDescription
	}

	for _, pb := range p.StandardPricing {
		info.PriceBreaks = append(info.PriceBreaks, supplier.PriceBreak{
			Quantity: pb.BreakQuantity,
			Price:    decimal.NewFromFloat(pb.UnitPrice),
		})
	}
	info.PriceBreaks.Sort()

	for _, param := range p.Parameters {
		if param.Parameter == "" {
			continue
		}
		info.Parameters = append(info.Parameters, supplier.Parameter{
			Name:  param.Parameter,
			Value: param.Value,
		})
	}

	return info
}
