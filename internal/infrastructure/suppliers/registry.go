package suppliers

import (
	"fmt"
	"sync"

	"github.com/partsync/partsync/internal/domain/supplier"
)

// GatewayRegistry is an ordered registry of supplier catalog gateways.
// Registration order determines the lookup order when a part is searched
// across all suppliers.
type GatewayRegistry struct {
	mu       sync.RWMutex // Protects gateways map and order slice
	gateways map[supplier.Code]supplier.CatalogGateway
	order    []supplier.Code
}

// NewGatewayRegistry creates an empty gateway registry
func NewGatewayRegistry() *GatewayRegistry {
	return &GatewayRegistry{
		gateways: make(map[supplier.Code]supplier.CatalogGateway),
	}
}

// Register adds a gateway to the registry, preserving registration order
func (r *GatewayRegistry) Register(gateway supplier.CatalogGateway) error {
	code := gateway.Code()

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.gateways[code]; ok {
		return fmt.Errorf("%w: %s", supplier.ErrAlreadyRegistered, code)
	}
	r.gateways[code] = gateway
	r.order = append(r.order, code)
	return nil
}

// Get returns the gateway registered for the specified supplier code
func (r *GatewayRegistry) Get(code supplier.Code) (supplier.CatalogGateway, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	gateway, ok := r.gateways[code]
	if !ok {
		return nil, fmt.Errorf("%w: %s", supplier.ErrNotConfigured, code)
	}
	return gateway, nil
}

// Codes returns the registered supplier codes in registration order
func (r *GatewayRegistry) Codes() []supplier.Code {
	r.mu.RLock()
	defer r.mu.RUnlock()

	codes := make([]supplier.Code, len(r.order))
	copy(codes, r.order)
	return codes
}

// Ensure GatewayRegistry implements Registry interface
var _ supplier.Registry = (*GatewayRegistry)(nil)
