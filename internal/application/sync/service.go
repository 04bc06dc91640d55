package sync

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/partsync/partsync/internal/domain/inventory"
	"github.com/partsync/partsync/internal/domain/supplier"
	"github.com/partsync/partsync/internal/infrastructure/imagecache"
)

// Service synchronizes supplier catalog data into the inventory backend
type Service struct {
	store    inventory.Store
	gateways supplier.Registry
	images   *imagecache.Cache
	logger   *zap.Logger
}

// NewService creates a new sync service
func NewService(store inventory.Store, gateways supplier.Registry, images *imagecache.Cache, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Service{
		store:    store,
		gateways: gateways,
		images:   images,
		logger:   logger,
	}
}

// AddPart fetches partNumber from a supplier catalog and upserts the full
// record chain into the inventory backend. An empty code tries every
// registered gateway in registration order. Nothing is written before a
// supplier returns the part.
func (s *Service) AddPart(ctx context.Context, partNumber string, code supplier.Code) (*AddResult, error) {
	codes, err := s.targetCodes(code)
	if err != nil {
		return nil, err
	}

	info, hit, err := s.fetchPart(ctx, partNumber, codes)
	if err != nil {
		return nil, err
	}

	return s.upsertPart(ctx, hit, info)
}

// targetCodes resolves which gateways a request addresses
func (s *Service) targetCodes(code supplier.Code) ([]supplier.Code, error) {
	if code == "" {
		codes := s.gateways.Codes()
		if len(codes) == 0 {
			return nil, supplier.ErrNotConfigured
		}
		return codes, nil
	}

	if _, err := s.gateways.Get(code); err != nil {
		return nil, err
	}
	return []supplier.Code{code}, nil
}

// fetchPart queries the gateways in order until one returns the part.
// ErrPartNotFound moves to the next gateway; any other failure aborts.
func (s *Service) fetchPart(ctx context.Context, partNumber string, codes []supplier.Code) (*supplier.PartInfo, supplier.Code, error) {
	for _, code := range codes {
		gateway, err := s.gateways.Get(code)
		if err != nil {
			return nil, "", err
		}

		info, err := gateway.GetPart(ctx, partNumber)
		if errors.Is(err, supplier.ErrPartNotFound) {
			s.logger.Debug("part not in catalog",
				zap.String("supplier", code.String()),
				zap.String("part_number", partNumber))
			continue
		}
		if err != nil {
			return nil, "", fmt.Errorf("querying %s: %w", code.DisplayName(), err)
		}

		if err := info.Validate(); err != nil {
			return nil, "", fmt.Errorf("%w: %s returned incomplete data: %v",
				supplier.ErrInvalidResponse, code.DisplayName(), err)
		}
		return info, code, nil
	}

	return nil, "", fmt.Errorf("%w: %s (searched %s)",
		supplier.ErrPartNotFound, partNumber, joinCodes(codes))
}

// upsertPart walks the record chain, creating whatever is absent
func (s *Service) upsertPart(ctx context.Context, code supplier.Code, info *supplier.PartInfo) (*AddResult, error) {
	supplierCompany, err := s.ensureCompany(ctx, info.SupplierName, inventory.RoleSupplier,
		fmt.Sprintf("Supplier: %s", info.SupplierName))
	if err != nil {
		return nil, err
	}

	category, err := s.ensureCategory(ctx, info.Category)
	if err != nil {
		return nil, err
	}

	part, created, err := s.ensurePart(ctx, info, category)
	if err != nil {
		return nil, err
	}

	s.attachImage(ctx, part, info.ImageURL)

	// The manufacturer link needs both a company name and an MPN to key on.
	// Catalogs occasionally return neither for house-branded stock.
	var manufacturerPartID int
	if info.ManufacturerName != "" && info.ManufacturerPartNumber != "" {
		manufacturer, err := s.ensureCompany(ctx, info.ManufacturerName, inventory.RoleManufacturer, "")
		if err != nil {
			return nil, err
		}

		manufacturerPart, err := s.ensureManufacturerPart(ctx, part, manufacturer, info)
		if err != nil {
			return nil, err
		}
		manufacturerPartID = manufacturerPart.ID
	}

	supplierPart, err := s.ensureSupplierPart(ctx, part, supplierCompany, manufacturerPartID, code, info)
	if err != nil {
		return nil, err
	}

	s.logger.Info("part synced",
		zap.String("supplier", code.String()),
		zap.String("mpn", info.ManufacturerPartNumber),
		zap.String("sku", info.SupplierPartNumber),
		zap.Bool("created", created))

	return &AddResult{
		SupplierCode:     code,
		SupplierName:     info.SupplierName,
		ManufacturerName: info.ManufacturerName,
		MPN:              info.ManufacturerPartNumber,
		SKU:              info.SupplierPartNumber,
		Description:      info.Description,
		PartID:           part.ID,
		SupplierPartID:   supplierPart.ID,
		Created:          created,
	}, nil
}

// ensureCompany finds a company by name and role, creating it when absent
func (s *Service) ensureCompany(ctx context.Context, name string, role inventory.CompanyRole, description string) (*inventory.Company, error) {
	company, err := s.store.FindCompany(ctx, name, role)
	if err != nil {
		return nil, err
	}
	if company != nil {
		return company, nil
	}

	s.logger.Info("creating company",
		zap.String("name", name),
		zap.String("role", role.String()))

	return s.store.CreateCompany(ctx, &inventory.Company{
		Name:           name,
		Description:    description,
		IsManufacturer: role == inventory.RoleManufacturer,
		IsSupplier:     role == inventory.RoleSupplier,
	})
}

// ensureCategory resolves the supplier-reported category, creating it when
// absent. Parts without a category stay uncategorized.
func (s *Service) ensureCategory(ctx context.Context, name string) (*inventory.Category, error) {
	if name == "" {
		return nil, nil
	}

	category, err := s.store.FindCategory(ctx, name)
	if err != nil {
		return nil, err
	}
	if category != nil {
		return category, nil
	}

	s.logger.Info("creating category", zap.String("name", name))
	return s.store.CreateCategory(ctx, &inventory.Category{Name: name})
}

// ensurePart finds the base part by name, creating it when absent. Parts are
// named after the MPN, falling back to the SKU for catalog entries without
// one. The second return value reports whether this call created it.
func (s *Service) ensurePart(ctx context.Context, info *supplier.PartInfo, category *inventory.Category) (*inventory.Part, bool, error) {
	name := info.ManufacturerPartNumber
	if name == "" {
		name = info.SupplierPartNumber
	}

	part, err := s.store.FindPartByName(ctx, name)
	if err != nil {
		return nil, false, err
	}
	if part != nil {
		return part, false, nil
	}

	var categoryID *int
	if category != nil {
		categoryID = &category.ID
	}

	s.logger.Info("creating part", zap.String("name", name))
	created, err := s.store.CreatePart(ctx, &inventory.Part{
		Name:         name,
		Description:  info.Description,
		CategoryID:   categoryID,
		Component:    true,
		Purchaseable: true,
		Active:       true,
	})
	if err != nil {
		return nil, false, err
	}
	return created, true, nil
}

// attachImage caches the supplier image and uploads it to the part. Image
// problems never fail a sync.
func (s *Service) attachImage(ctx context.Context, part *inventory.Part, imageURL string) {
	if s.images == nil || imageURL == "" || part.HasImage {
		return
	}

	path, err := s.images.Fetch(ctx, imageURL)
	if err != nil {
		s.logger.Warn("failed to cache part image",
			zap.String("part", part.Name),
			zap.String("url", imageURL),
			zap.Error(err))
		return
	}

	if err := s.store.UploadPartImage(ctx, part.ID, path); err != nil {
		s.logger.Warn("failed to upload part image",
			zap.String("part", part.Name),
			zap.Error(err))
		return
	}

	part.HasImage = true
}

// ensureManufacturerPart finds the manufacturer part by manufacturer and MPN,
// creating it with its parameters when absent
func (s *Service) ensureManufacturerPart(ctx context.Context, part *inventory.Part, manufacturer *inventory.Company, info *supplier.PartInfo) (*inventory.ManufacturerPart, error) {
	mp, err := s.store.FindManufacturerPart(ctx, manufacturer.ID, info.ManufacturerPartNumber)
	if err != nil {
		return nil, err
	}
	if mp != nil {
		return mp, nil
	}

	s.logger.Info("creating manufacturer part",
		zap.String("manufacturer", manufacturer.Name),
		zap.String("mpn", info.ManufacturerPartNumber))

	mp, err = s.store.CreateManufacturerPart(ctx, &inventory.ManufacturerPart{
		PartID:         part.ID,
		ManufacturerID: manufacturer.ID,
		MPN:            info.ManufacturerPartNumber,
		Description:    info.Description,
		Link:           info.DatasheetURL,
	})
	if err != nil {
		return nil, err
	}

	// Parameters are created only alongside a new manufacturer part, so a
	// re-sync never duplicates them
	for _, param := range info.Parameters {
		if _, err := s.store.CreateManufacturerPartParameter(ctx, &inventory.ManufacturerPartParameter{
			ManufacturerPartID: mp.ID,
			Name:               param.Name,
			Value:              param.Value,
		}); err != nil {
			return nil, err
		}
	}

	return mp, nil
}

// ensureSupplierPart finds the supplier part by supplier and SKU, creating it
// with its price breaks when absent
func (s *Service) ensureSupplierPart(ctx context.Context, part *inventory.Part, company *inventory.Company, manufacturerPartID int, code supplier.Code, info *supplier.PartInfo) (*inventory.SupplierPart, error) {
	sp, err := s.store.FindSupplierPart(ctx, company.ID, info.SupplierPartNumber)
	if err != nil {
		return nil, err
	}
	if sp != nil {
		return sp, nil
	}

	s.logger.Info("creating supplier part",
		zap.String("supplier", company.Name),
		zap.String("sku", info.SupplierPartNumber))

	sp, err = s.store.CreateSupplierPart(ctx, &inventory.SupplierPart{
		PartID:             part.ID,
		SupplierID:         company.ID,
		ManufacturerPartID: manufacturerPartID,
		SKU:                info.SupplierPartNumber,
		Description:        info.Description,
		Link:               info.ProductURL,
		Note:               fmt.Sprintf("Synced from %s", code.DisplayName()),
		Packaging:          info.Packaging,
		Active:             info.Active,
	})
	if err != nil {
		return nil, err
	}

	// Price breaks are created only alongside a new supplier part; resync
	// reconciles them afterwards
	for _, pb := range info.PriceBreaks {
		if _, err := s.store.CreatePriceBreak(ctx, &inventory.PriceBreak{
			SupplierPartID: sp.ID,
			Quantity:       pb.Quantity,
			Price:          pb.Price,
		}); err != nil {
			return nil, err
		}
	}

	return sp, nil
}

// joinCodes renders supplier display names for error and status messages
func joinCodes(codes []supplier.Code) string {
	names := make([]string, len(codes))
	for i, code := range codes {
		names[i] = code.DisplayName()
	}
	return strings.Join(names, ", ")
}
