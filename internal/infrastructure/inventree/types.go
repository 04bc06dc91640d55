package inventree

import (
	"github.com/shopspring/decimal"

	"github.com/partsync/partsync/internal/domain/inventory"
)

// The backend serializes decimal fields as JSON strings ("0.42000");
// decimal.Decimal decodes both the quoted and the bare form.

// ---------------------------------------------------------------------------
// Wire Resources
// ---------------------------------------------------------------------------

// serverInfoResource is the response of the API root endpoint
type serverInfoResource struct {
	Server     string `json:"server"`
	Version    string `json:"version"`
	APIVersion int    `json:"apiVersion"`
}

// companyResource represents a company record on the wire
type companyResource struct {
	PK             int    `json:"pk,omitempty"`
	Name           string `json:"name"`
	Description    string `json:"description,omitempty"`
	IsManufacturer bool   `json:"is_manufacturer"`
	IsSupplier     bool   `json:"is_supplier"`
	IsCustomer     bool   `json:"is_customer"`
}

// categoryResource represents a part category record on the wire
type categoryResource struct {
	PK     int    `json:"pk,omitempty"`
	Name   string `json:"name"`
	Parent *int   `json:"parent"`
}

// partResource represents a part record on the wire
type partResource struct {
	PK           int    `json:"pk,omitempty"`
	Name         string `json:"name"`
	IPN          string `json:"IPN,omitempty"`
	Description  string `json:"description,omitempty"`
	Revision     string `json:"revision,omitempty"`
	Category     *int   `json:"category,omitempty"`
	Component    bool   `json:"component"`
	Assembly     bool   `json:"assembly"`
	Purchaseable bool   `json:"purchaseable"`
	Active       bool   `json:"active"`
	Image        string `json:"image,omitempty"`
}

// manufacturerPartResource represents a manufacturer part record on the wire
type manufacturerPartResource struct {
	PK           int    `json:"pk,omitempty"`
	Part         int    `json:"part"`
	Manufacturer int    `json:"manufacturer"`
	MPN          string `json:"MPN"`
	Description  string `json:"description,omitempty"`
	Link         string `json:"link,omitempty"`
}

// manufacturerPartParameterResource represents a parameter record on the wire
type manufacturerPartParameterResource struct {
	PK               int    `json:"pk,omitempty"`
	ManufacturerPart int    `json:"manufacturer_part"`
	Name             string `json:"name"`
	Value            string `json:"value"`
}

// supplierPartResource represents a supplier part record on the wire
type supplierPartResource struct {
	PK               int    `json:"pk,omitempty"`
	Part             int    `json:"part"`
	Supplier         int    `json:"supplier"`
	ManufacturerPart int    `json:"manufacturer_part,omitempty"`
	SKU              string `json:"SKU"`
	Description      string `json:"description,omitempty"`
	Link             string `json:"link,omitempty"`
	Note             string `json:"note,omitempty"`
	Packaging        string `json:"packaging,omitempty"`
	Active           bool   `json:"active"`
}

// priceBreakResource represents a supplier price break on the wire.
// The part field references the supplier part, not the base part.
type priceBreakResource struct {
	PK       int             `json:"pk,omitempty"`
	Part     int             `json:"part"`
	Quantity decimal.Decimal `json:"quantity"`
	Price    decimal.Decimal `json:"price"`
}

// bomItemResource represents a BOM line on the wire.
// The part field references the assembly; sub_part is the component.
type bomItemResource struct {
	PK        int             `json:"pk,omitempty"`
	Part      int             `json:"part"`
	SubPart   int             `json:"sub_part"`
	Quantity  decimal.Decimal `json:"quantity"`
	Reference string          `json:"reference,omitempty"`
}

// ---------------------------------------------------------------------------
// Conversions
// ---------------------------------------------------------------------------

func convertCompany(r *companyResource) *inventory.Company {
	return &inventory.Company{
		ID:             r.PK,
		Name:           r.Name,
		Description:    r.Description,
		IsManufacturer: r.IsManufacturer,
		IsSupplier:     r.IsSupplier,
		IsCustomer:     r.IsCustomer,
	}
}

func companyPayload(c *inventory.Company) companyResource {
	return companyResource{
		Name:           c.Name,
		Description:    c.Description,
		IsManufacturer: c.IsManufacturer,
		IsSupplier:     c.IsSupplier,
		IsCustomer:     c.IsCustomer,
	}
}

func convertCategory(r *categoryResource) *inventory.Category {
	return &inventory.Category{
		ID:     r.PK,
		Name:   r.Name,
		Parent: r.Parent,
	}
}

func categoryPayload(c *inventory.Category) categoryResource {
	return categoryResource{
		Name:   c.Name,
		Parent: c.Parent,
	}
}

func convertPart(r *partResource) *inventory.Part {
	return &inventory.Part{
		ID:           r.PK,
		Name:         r.Name,
		IPN:          r.IPN,
		Description:  r.Description,
		Revision:     r.Revision,
		CategoryID:   r.Category,
		Component:    r.Component,
		Assembly:     r.Assembly,
		Purchaseable: r.Purchaseable,
		Active:       r.Active,
		HasImage:     r.Image != "",
	}
}

func partPayload(p *inventory.Part) partResource {
	return partResource{
		Name:         p.Name,
		IPN:          p.IPN,
		Description:  p.Description,
		Revision:     p.Revision,
		Category:     p.CategoryID,
		Component:    p.Component,
		Assembly:     p.Assembly,
		Purchaseable: p.Purchaseable,
		Active:       p.Active,
	}
}

func convertManufacturerPart(r *manufacturerPartResource) *inventory.ManufacturerPart {
	return &inventory.ManufacturerPart{
		ID:             r.PK,
		PartID:         r.Part,
		ManufacturerID: r.Manufacturer,
		MPN:            r.MPN,
		Description:    r.Description,
		Link:           r.Link,
	}
}

func manufacturerPartPayload(mp *inventory.ManufacturerPart) manufacturerPartResource {
	return manufacturerPartResource{
		Part:         mp.PartID,
		Manufacturer: mp.ManufacturerID,
		MPN:          mp.MPN,
		Description:  mp.Description,
		Link:         mp.Link,
	}
}

func convertManufacturerPartParameter(r *manufacturerPartParameterResource) *inventory.ManufacturerPartParameter {
	return &inventory.ManufacturerPartParameter{
		ID:                 r.PK,
		ManufacturerPartID: r.ManufacturerPart,
		Name:               r.Name,
		Value:              r.Value,
	}
}

func manufacturerPartParameterPayload(p *inventory.ManufacturerPartParameter) manufacturerPartParameterResource {
	return manufacturerPartParameterResource{
		ManufacturerPart: p.ManufacturerPartID,
		Name:             p.Name,
		Value:            p.Value,
	}
}

func convertSupplierPart(r *supplierPartResource) *inventory.SupplierPart {
	return &inventory.SupplierPart{
		ID:                 r.PK,
		PartID:             r.Part,
		SupplierID:         r.Supplier,
		ManufacturerPartID: r.ManufacturerPart,
		SKU:                r.SKU,
		Description:        r.Description,
		Link:               r.Link,
		Note:               r.Note,
		Packaging:          r.Packaging,
		Active:             r.Active,
	}
}

func supplierPartPayload(sp *inventory.SupplierPart) supplierPartResource {
	return supplierPartResource{
		Part:             sp.PartID,
		Supplier:         sp.SupplierID,
		ManufacturerPart: sp.ManufacturerPartID,
		SKU:              sp.SKU,
		Description:      sp.Description,
		Link:             sp.Link,
		Note:             sp.Note,
		Packaging:        sp.Packaging,
		Active:           sp.Active,
	}
}

func convertPriceBreak(r *priceBreakResource) *inventory.PriceBreak {
	return &inventory.PriceBreak{
		ID:             r.PK,
		SupplierPartID: r.Part,
		Quantity:       int(r.Quantity.IntPart()),
		Price:          r.Price,
	}
}

func priceBreakPayload(pb *inventory.PriceBreak) priceBreakResource {
	return priceBreakResource{
		Part:     pb.SupplierPartID,
		Quantity: decimal.NewFromInt(int64(pb.Quantity)),
		Price:    pb.Price,
	}
}

func convertBomItem(r *bomItemResource) *inventory.BomItem {
	return &inventory.BomItem{
		ID:          r.PK,
		AssemblyID:  r.Part,
		ComponentID: r.SubPart,
		Quantity:    r.Quantity,
		Reference:   r.Reference,
	}
}

func bomItemPayload(item *inventory.BomItem) bomItemResource {
	return bomItemResource{
		Part:      item.AssemblyID,
		SubPart:   item.ComponentID,
		Quantity:  item.Quantity,
		Reference: item.Reference,
	}
}
