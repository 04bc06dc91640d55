package sync

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"go.uber.org/zap"

	"github.com/partsync/partsync/internal/domain/inventory"
	"github.com/partsync/partsync/internal/domain/supplier"
)

// ResyncAll re-validates every stored supplier part against live catalog
// data, writing drift back to the inventory backend. Each per-part result is
// handed to observe as it is produced; observe may be nil.
func (s *Service) ResyncAll(ctx context.Context, code supplier.Code, observe func(ResyncResult)) (*ResyncSummary, error) {
	codes, err := s.targetCodes(code)
	if err != nil {
		return nil, err
	}

	if observe == nil {
		observe = func(ResyncResult) {}
	}

	summary := &ResyncSummary{}
	for _, target := range codes {
		if err := s.resyncSupplier(ctx, target, summary, observe); err != nil {
			return nil, err
		}
	}

	s.logger.Info("resync finished",
		zap.Int("total", summary.Total),
		zap.Int("up_to_date", summary.UpToDate),
		zap.Int("updated", summary.Updated),
		zap.Int("not_found", summary.NotFound),
		zap.Int("errors", summary.Errors))

	return summary, nil
}

// resyncSupplier re-validates every stored part of one supplier
func (s *Service) resyncSupplier(ctx context.Context, code supplier.Code, summary *ResyncSummary, observe func(ResyncResult)) error {
	gateway, err := s.gateways.Get(code)
	if err != nil {
		return err
	}

	company, err := s.store.FindCompany(ctx, code.DisplayName(), inventory.RoleSupplier)
	if err != nil {
		return err
	}
	if company == nil {
		// Nothing was ever synced from this supplier
		s.logger.Info("supplier company not in backend, nothing to resync",
			zap.String("supplier", code.String()))
		return nil
	}

	parts, err := s.store.ListSupplierParts(ctx, company.ID)
	if err != nil {
		return err
	}

	s.logger.Info("resyncing supplier parts",
		zap.String("supplier", code.String()),
		zap.Int("count", len(parts)))

	for i := range parts {
		if err := ctx.Err(); err != nil {
			return err
		}

		result := s.resyncPart(ctx, gateway, code, &parts[i])

		// A part interrupted by cancellation aborts the run instead of
		// counting as an error
		if err := ctx.Err(); err != nil {
			return err
		}

		summary.add(result.Status)
		observe(result)
	}

	return nil
}

// resyncPart compares one stored supplier part against the live catalog and
// applies whatever drifted
func (s *Service) resyncPart(ctx context.Context, gateway supplier.CatalogGateway, code supplier.Code, stored *inventory.SupplierPart) ResyncResult {
	result := ResyncResult{SupplierCode: code, SKU: stored.SKU}

	live, err := gateway.GetPart(ctx, stored.SKU)
	if errors.Is(err, supplier.ErrPartNotFound) {
		result.Status = StatusNotFound
		result.Message = fmt.Sprintf("not found at %s", code.DisplayName())
		return result
	}
	if err != nil {
		result.Status = StatusError
		result.Message = err.Error()
		return result
	}

	changes := make(map[string]Change)

	if stored.Active != live.Active {
		changes["active"] = Change{
			Old: strconv.FormatBool(stored.Active),
			New: strconv.FormatBool(live.Active),
		}
		if err := s.store.UpdateSupplierPartActive(ctx, stored.ID, live.Active); err != nil {
			result.Status = StatusUpdateFailed
			result.Message = err.Error()
			result.Changes = changes
			return result
		}
	}

	priceChange, err := s.resyncPrices(ctx, stored.ID, live.PriceBreaks)
	if err != nil {
		result.Status = StatusUpdateFailed
		result.Message = err.Error()
		result.Changes = changes
		return result
	}
	if priceChange != nil {
		changes["pricing"] = *priceChange
	}

	if len(changes) == 0 {
		result.Status = StatusUpToDate
		return result
	}

	result.Status = StatusUpdated
	result.Changes = changes
	return result
}

// resyncPrices replaces the stored price breaks wholesale when they differ
// from the live catalog. Returns nil when nothing drifted.
func (s *Service) resyncPrices(ctx context.Context, supplierPartID int, live supplier.PriceBreaks) (*Change, error) {
	stored, err := s.store.ListPriceBreaks(ctx, supplierPartID)
	if err != nil {
		return nil, err
	}

	current := make(supplier.PriceBreaks, len(stored))
	for i := range stored {
		current[i] = supplier.PriceBreak{
			Quantity: stored[i].Quantity,
			Price:    stored[i].Price,
		}
	}
	current.Sort()

	liveSorted := make(supplier.PriceBreaks, len(live))
	copy(liveSorted, live)
	liveSorted.Sort()

	if current.Equal(liveSorted) {
		return nil, nil
	}

	for i := range stored {
		if err := s.store.DeletePriceBreak(ctx, stored[i].ID); err != nil {
			return nil, err
		}
	}
	for _, pb := range liveSorted {
		if _, err := s.store.CreatePriceBreak(ctx, &inventory.PriceBreak{
			SupplierPartID: supplierPartID,
			Quantity:       pb.Quantity,
			Price:          pb.Price,
		}); err != nil {
			return nil, err
		}
	}

	return &Change{Old: current.String(), New: liveSorted.String()}, nil
}
