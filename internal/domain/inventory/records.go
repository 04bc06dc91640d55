package inventory

import (
	"github.com/shopspring/decimal"
)

// The inventory backend keys every resource with an integer primary key.
// Records mirror the REST resources the backend exposes; fields the sync
// flow never touches are omitted.

// CompanyRole selects which company role a lookup targets
type CompanyRole string

const (
	// RoleManufacturer selects companies flagged as manufacturers
	RoleManufacturer CompanyRole = "manufacturer"
	// RoleSupplier selects companies flagged as suppliers
	RoleSupplier CompanyRole = "supplier"
)

// IsValid returns true if the company role is valid
func (r CompanyRole) IsValid() bool {
	switch r {
	case RoleManufacturer, RoleSupplier:
		return true
	default:
		return false
	}
}

// String returns the string representation of CompanyRole
func (r CompanyRole) String() string {
	return string(r)
}

// Company represents a manufacturer or supplier company
type Company struct {
	ID             int
	Name           string
	Description    string
	IsManufacturer bool
	IsSupplier     bool
	IsCustomer     bool
}

// Category represents a part category
type Category struct {
	ID     int
	Name   string
	Parent *int
}

// Part represents a stored part
type Part struct {
	ID           int
	Name         string
	IPN          string
	Description  string
	Revision     string
	CategoryID   *int
	Component    bool
	Assembly     bool
	Purchaseable bool
	Active       bool
	HasImage     bool
}

// ManufacturerPart links a part to its manufacturer under an MPN
type ManufacturerPart struct {
	ID             int
	PartID         int
	ManufacturerID int
	MPN            string
	Description    string
	Link           string
}

// ManufacturerPartParameter represents a technical parameter on a manufacturer part
type ManufacturerPartParameter struct {
	ID                 int
	ManufacturerPartID int
	Name               string
	Value              string
}

// SupplierPart links a part to a supplier under a SKU
type SupplierPart struct {
	ID                 int
	PartID             int
	SupplierID         int
	ManufacturerPartID int
	SKU                string
	Description        string
	Link               string
	Note               string
	Packaging          string
	Active             bool
}

// PriceBreak represents a stored quantity price break on a supplier part
type PriceBreak struct {
	ID             int
	SupplierPartID int
	Quantity       int
	Price          decimal.Decimal
}

// BomItem represents one line of an assembly's bill of materials
type BomItem struct {
	ID          int
	AssemblyID  int
	ComponentID int
	Quantity    decimal.Decimal
	Reference   string
}

// ServerInfo describes the inventory backend server
type ServerInfo struct {
	Server     string
	Version    string
	APIVersion int
}
