package sync

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/partsync/partsync/internal/domain/inventory"
	"github.com/partsync/partsync/internal/domain/supplier"
	"github.com/partsync/partsync/internal/infrastructure/imagecache"
	"github.com/partsync/partsync/internal/infrastructure/suppliers"
	"github.com/partsync/partsync/tests/testutil"
)

func TestService_AddPart(t *testing.T) {
	t.Run("creates the full record chain for a new part", func(t *testing.T) {
		store := new(testutil.MockStore)
		gateway := testutil.NewMockGateway(supplier.CodeDigikey)
		gateway.On("GetPart", mock.Anything, "NE555DR").Return(testPartInfo(), nil)

		store.On("FindCompany", mock.Anything, "Texas Instruments", inventory.RoleManufacturer).
			Return(nil, nil)
		store.On("CreateCompany", mock.Anything, mock.MatchedBy(func(c *inventory.Company) bool {
			return c.Name == "Texas Instruments" && c.IsManufacturer && !c.IsSupplier
		})).Return(&inventory.Company{ID: 12, Name: "Texas Instruments", IsManufacturer: true}, nil)

		store.On("FindCompany", mock.Anything, "Digikey", inventory.RoleSupplier).
			Return(nil, nil)
		store.On("CreateCompany", mock.Anything, mock.MatchedBy(func(c *inventory.Company) bool {
			return c.Name == "Digikey" && c.IsSupplier && c.Description == "Supplier: Digikey"
		})).Return(&inventory.Company{ID: 7, Name: "Digikey", IsSupplier: true}, nil)

		store.On("FindCategory", mock.Anything, "Integrated Circuits").Return(nil, nil)
		store.On("CreateCategory", mock.Anything, mock.MatchedBy(func(c *inventory.Category) bool {
			return c.Name == "Integrated Circuits"
		})).Return(&inventory.Category{ID: 5, Name: "Integrated Circuits"}, nil)

		store.On("FindPartByName", mock.Anything, "NE555DR").Return(nil, nil)
		store.On("CreatePart", mock.Anything, mock.MatchedBy(func(p *inventory.Part) bool {
			return p.Name == "NE555DR" && p.Component && p.Purchaseable && p.Active &&
				p.CategoryID != nil && *p.CategoryID == 5
		})).Return(&inventory.Part{ID: 9, Name: "NE555DR", Component: true, Purchaseable: true, Active: true}, nil)

		store.On("FindManufacturerPart", mock.Anything, 12, "NE555DR").Return(nil, nil)
		store.On("CreateManufacturerPart", mock.Anything, mock.MatchedBy(func(mp *inventory.ManufacturerPart) bool {
			return mp.PartID == 9 && mp.ManufacturerID == 12 && mp.MPN == "NE555DR" &&
				mp.Link == "https://www.ti.com/lit/ds/symlink/ne555.pdf"
		})).Return(&inventory.ManufacturerPart{ID: 31, PartID: 9, ManufacturerID: 12, MPN: "NE555DR"}, nil)
		store.On("CreateManufacturerPartParameter", mock.Anything, mock.Anything).
			Return(&inventory.ManufacturerPartParameter{ID: 1}, nil).Twice()

		store.On("FindSupplierPart", mock.Anything, 7, "296-NE555DR-ND").Return(nil, nil)
		store.On("CreateSupplierPart", mock.Anything, mock.MatchedBy(func(sp *inventory.SupplierPart) bool {
			return sp.PartID == 9 && sp.SupplierID == 7 && sp.ManufacturerPartID == 31 &&
				sp.SKU == "296-NE555DR-ND" && sp.Note == "Synced from Digikey" && sp.Active
		})).Return(&inventory.SupplierPart{ID: 44, PartID: 9, SupplierID: 7, SKU: "296-NE555DR-ND", Active: true}, nil)
		store.On("CreatePriceBreak", mock.Anything, mock.Anything).
			Return(&inventory.PriceBreak{ID: 100}, nil).Twice()

		service := newTestService(t, store, gateway)

		result, err := service.AddPart(context.Background(), "NE555DR", "")
		require.NoError(t, err)
		assert.Equal(t, supplier.CodeDigikey, result.SupplierCode)
		assert.Equal(t, "Texas Instruments", result.ManufacturerName)
		assert.Equal(t, "NE555DR", result.MPN)
		assert.Equal(t, "296-NE555DR-ND", result.SKU)
		assert.Equal(t, 9, result.PartID)
		assert.Equal(t, 44, result.SupplierPartID)
		assert.True(t, result.Created)

		store.AssertExpectations(t)
		gateway.AssertExpectations(t)
	})

	t.Run("performs zero creates when every record exists", func(t *testing.T) {
		store := new(testutil.MockStore)
		gateway := testutil.NewMockGateway(supplier.CodeDigikey)
		gateway.On("GetPart", mock.Anything, "NE555DR").Return(testPartInfo(), nil)
		expectExistingChain(store, true)

		service := newTestService(t, store, gateway)

		result, err := service.AddPart(context.Background(), "NE555DR", "")
		require.NoError(t, err)
		assert.False(t, result.Created)
		assert.Equal(t, 9, result.PartID)
		assert.Equal(t, 44, result.SupplierPartID)

		store.AssertExpectations(t)
		store.AssertNotCalled(t, "CreateCompany", mock.Anything, mock.Anything)
		store.AssertNotCalled(t, "CreatePart", mock.Anything, mock.Anything)
		store.AssertNotCalled(t, "CreateSupplierPart", mock.Anything, mock.Anything)
		store.AssertNotCalled(t, "CreatePriceBreak", mock.Anything, mock.Anything)
	})

	t.Run("tries gateways in registration order", func(t *testing.T) {
		store := new(testutil.MockStore)
		digikey := testutil.NewMockGateway(supplier.CodeDigikey)
		digikey.On("GetPart", mock.Anything, "NE555DR").Return(nil, supplier.ErrPartNotFound)
		mouser := testutil.NewMockGateway(supplier.CodeMouser)
		info := testPartInfo()
		info.SupplierName = "Mouser"
		info.SupplierPartNumber = "595-NE555DR"
		mouser.On("GetPart", mock.Anything, "NE555DR").Return(info, nil)
		expectMouserChain(store)

		service := newTestService(t, store, digikey, mouser)

		result, err := service.AddPart(context.Background(), "NE555DR", "")
		require.NoError(t, err)
		assert.Equal(t, supplier.CodeMouser, result.SupplierCode)

		digikey.AssertExpectations(t)
		mouser.AssertExpectations(t)
	})

	t.Run("returns not found when no gateway has the part", func(t *testing.T) {
		store := new(testutil.MockStore)
		digikey := testutil.NewMockGateway(supplier.CodeDigikey)
		digikey.On("GetPart", mock.Anything, "GHOST-1").Return(nil, supplier.ErrPartNotFound)
		mouser := testutil.NewMockGateway(supplier.CodeMouser)
		mouser.On("GetPart", mock.Anything, "GHOST-1").Return(nil, supplier.ErrPartNotFound)

		service := newTestService(t, store, digikey, mouser)

		result, err := service.AddPart(context.Background(), "GHOST-1", "")
		assert.Nil(t, result)
		assert.ErrorIs(t, err, supplier.ErrPartNotFound)
		assert.Contains(t, err.Error(), "Digikey, Mouser")
	})

	t.Run("transport error aborts without trying the next gateway", func(t *testing.T) {
		store := new(testutil.MockStore)
		digikey := testutil.NewMockGateway(supplier.CodeDigikey)
		digikey.On("GetPart", mock.Anything, "NE555DR").Return(nil, supplier.ErrUnavailable)
		mouser := testutil.NewMockGateway(supplier.CodeMouser)

		service := newTestService(t, store, digikey, mouser)

		_, err := service.AddPart(context.Background(), "NE555DR", "")
		assert.ErrorIs(t, err, supplier.ErrUnavailable)
		mouser.AssertNotCalled(t, "GetPart", mock.Anything, mock.Anything)
	})

	t.Run("named supplier must be registered", func(t *testing.T) {
		store := new(testutil.MockStore)
		digikey := testutil.NewMockGateway(supplier.CodeDigikey)

		service := newTestService(t, store, digikey)

		_, err := service.AddPart(context.Background(), "NE555DR", supplier.CodeMouser)
		assert.ErrorIs(t, err, supplier.ErrNotConfigured)
	})

	t.Run("no registered gateways", func(t *testing.T) {
		service := newTestService(t, new(testutil.MockStore))

		_, err := service.AddPart(context.Background(), "NE555DR", "")
		assert.ErrorIs(t, err, supplier.ErrNotConfigured)
	})

	t.Run("incomplete supplier data is rejected", func(t *testing.T) {
		store := new(testutil.MockStore)
		gateway := testutil.NewMockGateway(supplier.CodeDigikey)
		gateway.On("GetPart", mock.Anything, "NE555DR").Return(&supplier.PartInfo{}, nil)

		service := newTestService(t, store, gateway)

		_, err := service.AddPart(context.Background(), "NE555DR", "")
		assert.ErrorIs(t, err, supplier.ErrInvalidResponse)
	})

	t.Run("parts without an MPN are named after the SKU", func(t *testing.T) {
		store := new(testutil.MockStore)
		gateway := testutil.NewMockGateway(supplier.CodeDigikey)
		info := testPartInfo()
		info.ManufacturerPartNumber = ""
		gateway.On("GetPart", mock.Anything, "296-NE555DR-ND").Return(info, nil)

		store.On("FindCompany", mock.Anything, "Digikey", inventory.RoleSupplier).
			Return(&inventory.Company{ID: 7, Name: "Digikey", IsSupplier: true}, nil)
		store.On("FindCategory", mock.Anything, "Integrated Circuits").
			Return(&inventory.Category{ID: 5, Name: "Integrated Circuits"}, nil)
		store.On("FindPartByName", mock.Anything, "296-NE555DR-ND").Return(nil, nil)
		store.On("CreatePart", mock.Anything, mock.MatchedBy(func(p *inventory.Part) bool {
			return p.Name == "296-NE555DR-ND"
		})).Return(&inventory.Part{ID: 9, Name: "296-NE555DR-ND", Component: true, Purchaseable: true, Active: true}, nil)
		store.On("FindSupplierPart", mock.Anything, 7, "296-NE555DR-ND").Return(nil, nil)
		store.On("CreateSupplierPart", mock.Anything, mock.MatchedBy(func(sp *inventory.SupplierPart) bool {
			return sp.PartID == 9 && sp.ManufacturerPartID == 0
		})).Return(&inventory.SupplierPart{ID: 44, PartID: 9, SupplierID: 7, SKU: "296-NE555DR-ND", Active: true}, nil)
		store.On("CreatePriceBreak", mock.Anything, mock.Anything).
			Return(&inventory.PriceBreak{ID: 100}, nil).Twice()

		service := newTestService(t, store, gateway)

		result, err := service.AddPart(context.Background(), "296-NE555DR-ND", "")
		require.NoError(t, err)
		assert.Equal(t, "296-NE555DR-ND", result.SKU)
		assert.Equal(t, 9, result.PartID)
		store.AssertNotCalled(t, "FindCompany", mock.Anything, "Texas Instruments", inventory.RoleManufacturer)
		store.AssertNotCalled(t, "CreateManufacturerPart", mock.Anything, mock.Anything)
	})

	t.Run("unbranded stock skips the manufacturer records", func(t *testing.T) {
		store := new(testutil.MockStore)
		gateway := testutil.NewMockGateway(supplier.CodeDigikey)
		info := testPartInfo()
		info.ManufacturerName = ""
		gateway.On("GetPart", mock.Anything, "NE555DR").Return(info, nil)

		store.On("FindCompany", mock.Anything, "Digikey", inventory.RoleSupplier).
			Return(&inventory.Company{ID: 7, Name: "Digikey", IsSupplier: true}, nil)
		store.On("FindCategory", mock.Anything, "Integrated Circuits").
			Return(&inventory.Category{ID: 5, Name: "Integrated Circuits"}, nil)
		store.On("FindPartByName", mock.Anything, "NE555DR").
			Return(&inventory.Part{ID: 9, Name: "NE555DR", Component: true, Purchaseable: true, Active: true, HasImage: true}, nil)
		store.On("FindSupplierPart", mock.Anything, 7, "296-NE555DR-ND").
			Return(&inventory.SupplierPart{ID: 44, PartID: 9, SupplierID: 7, SKU: "296-NE555DR-ND", Active: true}, nil)

		service := newTestService(t, store, gateway)

		result, err := service.AddPart(context.Background(), "NE555DR", "")
		require.NoError(t, err)
		assert.Equal(t, 44, result.SupplierPartID)
		store.AssertNotCalled(t, "CreateCompany", mock.Anything, mock.Anything)
		store.AssertNotCalled(t, "FindManufacturerPart", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestService_AddPart_Image(t *testing.T) {
	t.Run("attaches supplier image to a part without one", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("image bytes"))
		}))
		defer server.Close()

		store := new(testutil.MockStore)
		gateway := testutil.NewMockGateway(supplier.CodeDigikey)
		info := testPartInfo()
		info.ImageURL = server.URL + "/media/ne555.jpg"
		gateway.On("GetPart", mock.Anything, "NE555DR").Return(info, nil)
		expectExistingChain(store, false)
		store.On("UploadPartImage", mock.Anything, 9, mock.MatchedBy(func(path string) bool {
			return strings.HasSuffix(path, ".jpg")
		})).Return(nil)

		cache, err := imagecache.New(t.TempDir(), nil)
		require.NoError(t, err)
		service := NewService(store, newTestRegistry(t, gateway), cache, zap.NewNop())

		_, err = service.AddPart(context.Background(), "NE555DR", "")
		require.NoError(t, err)
		store.AssertExpectations(t)
	})

	t.Run("image failures never fail the sync", func(t *testing.T) {
		store := new(testutil.MockStore)
		gateway := testutil.NewMockGateway(supplier.CodeDigikey)
		info := testPartInfo()
		info.ImageURL = "http://127.0.0.1:1/unreachable.jpg"
		gateway.On("GetPart", mock.Anything, "NE555DR").Return(info, nil)
		expectExistingChain(store, false)

		cache, err := imagecache.New(t.TempDir(), nil)
		require.NoError(t, err)
		service := NewService(store, newTestRegistry(t, gateway), cache, zap.NewNop())

		result, err := service.AddPart(context.Background(), "NE555DR", "")
		require.NoError(t, err)
		assert.Equal(t, 44, result.SupplierPartID)
		store.AssertNotCalled(t, "UploadPartImage", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("parts already carrying an image are left alone", func(t *testing.T) {
		store := new(testutil.MockStore)
		gateway := testutil.NewMockGateway(supplier.CodeDigikey)
		info := testPartInfo()
		info.ImageURL = "http://127.0.0.1:1/never-fetched.jpg"
		gateway.On("GetPart", mock.Anything, "NE555DR").Return(info, nil)
		expectExistingChain(store, true)

		cache, err := imagecache.New(t.TempDir(), nil)
		require.NoError(t, err)
		service := NewService(store, newTestRegistry(t, gateway), cache, zap.NewNop())

		_, err = service.AddPart(context.Background(), "NE555DR", "")
		require.NoError(t, err)
		store.AssertNotCalled(t, "UploadPartImage", mock.Anything, mock.Anything, mock.Anything)
	})
}

// ---------------------------------------------------------------------------
// Test Helpers
// ---------------------------------------------------------------------------

// testPartInfo returns a fully populated Digikey-flavored catalog record
func testPartInfo() *supplier.PartInfo {
	return &supplier.PartInfo{
		ManufacturerName:       "Texas Instruments",
		ManufacturerPartNumber: "NE555DR",
		SupplierName:           "Digikey",
		SupplierPartNumber:     "296-NE555DR-ND",
		Description:            "IC OSC SINGLE TIMER 100KHZ 8SOIC",
		DatasheetURL:           "https://www.ti.com/lit/ds/symlink/ne555.pdf",
		ProductURL:             "https://www.digikey.com/en/products/detail/296-NE555DR-ND",
		Category:               "Integrated Circuits",
		Packaging:              "Tape & Reel (TR)",
		Stock:                  25000,
		Active:                 true,
		PriceBreaks: supplier.PriceBreaks{
			{Quantity: 1, Price: decimal.NewFromFloat(0.46)},
			{Quantity: 100, Price: decimal.NewFromFloat(0.234)},
		},
		Parameters: []supplier.Parameter{
			{Name: "Frequency", Value: "100 kHz"},
			{Name: "Package / Case", Value: "8-SOIC"},
		},
	}
}

func newTestRegistry(t *testing.T, gateways ...supplier.CatalogGateway) *suppliers.GatewayRegistry {
	registry := suppliers.NewGatewayRegistry()
	for _, gateway := range gateways {
		require.NoError(t, registry.Register(gateway))
	}
	return registry
}

func newTestService(t *testing.T, store *testutil.MockStore, gateways ...supplier.CatalogGateway) *Service {
	return NewService(store, newTestRegistry(t, gateways...), nil, zap.NewNop())
}

// expectExistingChain primes the store with every record already present
func expectExistingChain(store *testutil.MockStore, hasImage bool) {
	categoryID := 5
	store.On("FindCompany", mock.Anything, "Texas Instruments", inventory.RoleManufacturer).
		Return(&inventory.Company{ID: 12, Name: "Texas Instruments", IsManufacturer: true}, nil)
	store.On("FindCompany", mock.Anything, "Digikey", inventory.RoleSupplier).
		Return(&inventory.Company{ID: 7, Name: "Digikey", Description: "Supplier: Digikey", IsSupplier: true}, nil)
	store.On("FindCategory", mock.Anything, "Integrated Circuits").
		Return(&inventory.Category{ID: 5, Name: "Integrated Circuits"}, nil)
	store.On("FindPartByName", mock.Anything, "NE555DR").
		Return(&inventory.Part{
			ID: 9, Name: "NE555DR", CategoryID: &categoryID,
			Component: true, Purchaseable: true, Active: true, HasImage: hasImage,
		}, nil)
	store.On("FindManufacturerPart", mock.Anything, 12, "NE555DR").
		Return(&inventory.ManufacturerPart{ID: 31, PartID: 9, ManufacturerID: 12, MPN: "NE555DR"}, nil)
	store.On("FindSupplierPart", mock.Anything, 7, "296-NE555DR-ND").
		Return(&inventory.SupplierPart{ID: 44, PartID: 9, SupplierID: 7, ManufacturerPartID: 31, SKU: "296-NE555DR-ND", Active: true}, nil)
}

// expectMouserChain primes the store for a part reaching it through Mouser
func expectMouserChain(store *testutil.MockStore) {
	store.On("FindCompany", mock.Anything, "Texas Instruments", inventory.RoleManufacturer).
		Return(&inventory.Company{ID: 12, Name: "Texas Instruments", IsManufacturer: true}, nil)
	store.On("FindCompany", mock.Anything, "Mouser", inventory.RoleSupplier).
		Return(&inventory.Company{ID: 8, Name: "Mouser", IsSupplier: true}, nil)
	store.On("FindCategory", mock.Anything, "Integrated Circuits").
		Return(&inventory.Category{ID: 5, Name: "Integrated Circuits"}, nil)
	store.On("FindPartByName", mock.Anything, "NE555DR").
		Return(&inventory.Part{ID: 9, Name: "NE555DR", Component: true, Purchaseable: true, Active: true, HasImage: true}, nil)
	store.On("FindManufacturerPart", mock.Anything, 12, "NE555DR").
		Return(&inventory.ManufacturerPart{ID: 31, PartID: 9, ManufacturerID: 12, MPN: "NE555DR"}, nil)
	store.On("FindSupplierPart", mock.Anything, 8, "595-NE555DR").
		Return(&inventory.SupplierPart{ID: 45, PartID: 9, SupplierID: 8, SKU: "595-NE555DR", Active: true}, nil)
}
