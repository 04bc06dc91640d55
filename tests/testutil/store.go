// Package testutil provides common test utilities for partsync.
package testutil

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/partsync/partsync/internal/domain/inventory"
)

// MockStore is a mock implementation of inventory.Store.
type MockStore struct {
	mock.Mock
}

func (m *MockStore) Ping(ctx context.Context) (*inventory.ServerInfo, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inventory.ServerInfo), args.Error(1)
}

func (m *MockStore) FindCompany(ctx context.Context, name string, role inventory.CompanyRole) (*inventory.Company, error) {
	args := m.Called(ctx, name, role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inventory.Company), args.Error(1)
}

func (m *MockStore) CreateCompany(ctx context.Context, company *inventory.Company) (*inventory.Company, error) {
	args := m.Called(ctx, company)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inventory.Company), args.Error(1)
}

func (m *MockStore) FindCategory(ctx context.Context, name string) (*inventory.Category, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inventory.Category), args.Error(1)
}

func (m *MockStore) CreateCategory(ctx context.Context, category *inventory.Category) (*inventory.Category, error) {
	args := m.Called(ctx, category)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inventory.Category), args.Error(1)
}

func (m *MockStore) FindPartByName(ctx context.Context, name string) (*inventory.Part, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inventory.Part), args.Error(1)
}

func (m *MockStore) FindPartByIPN(ctx context.Context, ipn string) (*inventory.Part, error) {
	args := m.Called(ctx, ipn)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inventory.Part), args.Error(1)
}

func (m *MockStore) CreatePart(ctx context.Context, part *inventory.Part) (*inventory.Part, error) {
	args := m.Called(ctx, part)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inventory.Part), args.Error(1)
}

func (m *MockStore) UploadPartImage(ctx context.Context, partID int, path string) error {
	args := m.Called(ctx, partID, path)
	return args.Error(0)
}

func (m *MockStore) FindManufacturerPart(ctx context.Context, manufacturerID int, mpn string) (*inventory.ManufacturerPart, error) {
	args := m.Called(ctx, manufacturerID, mpn)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inventory.ManufacturerPart), args.Error(1)
}

func (m *MockStore) CreateManufacturerPart(ctx context.Context, mp *inventory.ManufacturerPart) (*inventory.ManufacturerPart, error) {
	args := m.Called(ctx, mp)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inventory.ManufacturerPart), args.Error(1)
}

func (m *MockStore) CreateManufacturerPartParameter(ctx context.Context, param *inventory.ManufacturerPartParameter) (*inventory.ManufacturerPartParameter, error) {
	args := m.Called(ctx, param)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inventory.ManufacturerPartParameter), args.Error(1)
}

func (m *MockStore) FindSupplierPart(ctx context.Context, supplierID int, sku string) (*inventory.SupplierPart, error) {
	args := m.Called(ctx, supplierID, sku)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inventory.SupplierPart), args.Error(1)
}

func (m *MockStore) ListSupplierParts(ctx context.Context, supplierID int) ([]inventory.SupplierPart, error) {
	args := m.Called(ctx, supplierID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]inventory.SupplierPart), args.Error(1)
}

func (m *MockStore) CreateSupplierPart(ctx context.Context, sp *inventory.SupplierPart) (*inventory.SupplierPart, error) {
	args := m.Called(ctx, sp)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inventory.SupplierPart), args.Error(1)
}

func (m *MockStore) UpdateSupplierPartActive(ctx context.Context, id int, active bool) error {
	args := m.Called(ctx, id, active)
	return args.Error(0)
}

func (m *MockStore) ListPriceBreaks(ctx context.Context, supplierPartID int) ([]inventory.PriceBreak, error) {
	args := m.Called(ctx, supplierPartID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]inventory.PriceBreak), args.Error(1)
}

func (m *MockStore) CreatePriceBreak(ctx context.Context, pb *inventory.PriceBreak) (*inventory.PriceBreak, error) {
	args := m.Called(ctx, pb)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inventory.PriceBreak), args.Error(1)
}

func (m *MockStore) DeletePriceBreak(ctx context.Context, id int) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockStore) FindBomItem(ctx context.Context, assemblyID, componentID int) (*inventory.BomItem, error) {
	args := m.Called(ctx, assemblyID, componentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inventory.BomItem), args.Error(1)
}

func (m *MockStore) CreateBomItem(ctx context.Context, item *inventory.BomItem) (*inventory.BomItem, error) {
	args := m.Called(ctx, item)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inventory.BomItem), args.Error(1)
}

// Ensure MockStore implements Store interface
var _ inventory.Store = (*MockStore)(nil)
