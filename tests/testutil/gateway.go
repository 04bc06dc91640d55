package testutil

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/partsync/partsync/internal/domain/supplier"
)

// MockGateway is a mock implementation of supplier.CatalogGateway.
type MockGateway struct {
	mock.Mock
	code supplier.Code
}

// NewMockGateway creates a mock gateway answering for the given supplier code.
func NewMockGateway(code supplier.Code) *MockGateway {
	return &MockGateway{code: code}
}

// Code returns the supplier code this gateway handles.
func (m *MockGateway) Code() supplier.Code {
	return m.code
}

// GetPart retrieves normalized part data for a part number.
func (m *MockGateway) GetPart(ctx context.Context, partNumber string) (*supplier.PartInfo, error) {
	args := m.Called(ctx, partNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*supplier.PartInfo), args.Error(1)
}

// Ensure MockGateway implements CatalogGateway interface
var _ supplier.CatalogGateway = (*MockGateway)(nil)
