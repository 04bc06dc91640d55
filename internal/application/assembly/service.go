package assembly

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/partsync/partsync/internal/application/sync"
	"github.com/partsync/partsync/internal/domain/inventory"
	"github.com/partsync/partsync/internal/domain/supplier"
	"github.com/partsync/partsync/internal/infrastructure/bomfile"
)

// defaultRevision is the revision stamped on newly created assemblies
const defaultRevision = "R100"

// PartResolver resolves a part number into a synced inventory part
type PartResolver interface {
	AddPart(ctx context.Context, partNumber string, code supplier.Code) (*sync.AddResult, error)
}

// Service builds assemblies from BOM documents
type Service struct {
	store  inventory.Store
	parts  PartResolver
	logger *zap.Logger
}

// NewService creates a new assembly service
func NewService(store inventory.Store, parts PartResolver, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Service{
		store:  store,
		parts:  parts,
		logger: logger,
	}
}

// EnsureAssembly finds the assembly part by IPN, creating it when absent.
// The bool reports whether this call created it.
func (s *Service) EnsureAssembly(ctx context.Context, name string) (*inventory.Part, bool, error) {
	part, err := s.store.FindPartByIPN(ctx, name)
	if err != nil {
		return nil, false, err
	}
	if part != nil {
		return part, false, nil
	}

	s.logger.Info("creating assembly", zap.String("name", name))
	part, err = s.store.CreatePart(ctx, &inventory.Part{
		Name:        name,
		IPN:         name,
		Description: fmt.Sprintf("Assembly: %s", name),
		Revision:    defaultRevision,
		Assembly:    true,
		Active:      true,
	})
	if err != nil {
		return nil, false, err
	}
	return part, true, nil
}

// Build parses the BOM file at path and links every resolvable line to the
// assembly named assemblyName, syncing components from their suppliers on
// the way. Each per-line result is handed to observe as it is produced;
// observe may be nil.
func (s *Service) Build(ctx context.Context, assemblyName, path string, observe func(LineResult)) (*BuildResult, error) {
	doc, err := bomfile.ReadFile(path)
	if err != nil {
		return nil, err
	}

	assembly, created, err := s.EnsureAssembly(ctx, assemblyName)
	if err != nil {
		return nil, err
	}

	if observe == nil {
		observe = func(LineResult) {}
	}

	result := &BuildResult{
		AssemblyPartID:  assembly.ID,
		AssemblyCreated: created,
		Skipped:         doc.Skipped,
	}

	s.logger.Info("building assembly",
		zap.String("assembly", assemblyName),
		zap.Int("lines", len(doc.Lines)),
		zap.Int("skipped", len(doc.Skipped)))

	for i := range doc.Lines {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		lineResult := s.buildLine(ctx, assembly, &doc.Lines[i])

		// A line interrupted by cancellation aborts the run instead of
		// counting as a line error
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		result.add(lineResult.Status)
		observe(lineResult)
	}

	s.logger.Info("assembly build finished",
		zap.String("assembly", assemblyName),
		zap.Int("added", result.Added),
		zap.Int("existing", result.Existing),
		zap.Int("not_found", result.NotFound),
		zap.Int("errors", result.Errors))

	return result, nil
}

// buildLine resolves one BOM line into a component part and links it to the
// assembly. Line failures never abort the run.
func (s *Service) buildLine(ctx context.Context, assembly *inventory.Part, line *bomfile.Line) LineResult {
	result := LineResult{
		LineNumber: line.LineNumber,
		PartNumber: line.PartNumber(),
		MPN:        line.MPN,
	}

	var code supplier.Code
	if line.Supplier != "" {
		parsed, err := supplier.ParseCode(line.Supplier)
		if err != nil {
			result.Status = LineError
			result.Message = fmt.Sprintf("unknown supplier %q", line.Supplier)
			return result
		}
		code = parsed
	}

	added, err := s.parts.AddPart(ctx, line.PartNumber(), code)
	if errors.Is(err, supplier.ErrPartNotFound) {
		result.Status = LineNotFound
		result.Message = err.Error()
		return result
	}
	if err != nil {
		result.Status = LineError
		result.Message = err.Error()
		return result
	}

	existing, err := s.store.FindBomItem(ctx, assembly.ID, added.PartID)
	if err != nil {
		result.Status = LineError
		result.Message = err.Error()
		return result
	}
	if existing != nil {
		result.Status = LineExists
		return result
	}

	if _, err := s.store.CreateBomItem(ctx, &inventory.BomItem{
		AssemblyID:  assembly.ID,
		ComponentID: added.PartID,
		Quantity:    line.Quantity,
		Reference:   line.Designators,
	}); err != nil {
		result.Status = LineError
		result.Message = err.Error()
		return result
	}

	result.Status = LineAdded
	return result
}
