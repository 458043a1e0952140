// Package memory provides in-process CatalogRepository and
// MappingRepository implementations, grounded on the teacher's
// persistence-adapter shape (internal/infrastructure/persistence in
// PriFo-HttpServer): a thin struct wrapping a backing store, returning
// domain types, errors wrapped with fmt.Errorf. Here the backing store
// is just a slice/map instead of database.ServiceDB, since the spec
// treats storage as out of scope and the demo command needs a
// zero-dependency stand-in.
package memory

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/narvinIR/PriceOrders/internal/domain/repositories"
)

// CatalogRepository is a read-mostly, in-memory product catalog. It is
// safe for concurrent use; products loaded at construction time are
// treated as immutable thereafter.
type CatalogRepository struct {
	mu       sync.RWMutex
	products []repositories.Product
	byID     map[string]*repositories.Product
}

// NewCatalogRepository copies products into the repository's own
// storage so later mutation of the caller's slice has no effect.
func NewCatalogRepository(products []repositories.Product) *CatalogRepository {
	owned := make([]repositories.Product, len(products))
	copy(owned, products)

	byID := make(map[string]*repositories.Product, len(owned))
	for i := range owned {
		byID[owned[i].ID.String()] = &owned[i]
	}

	return &CatalogRepository{products: owned, byID: byID}
}

// ListAll returns every product. Callers must not mutate the result.
func (r *CatalogRepository) ListAll(ctx context.Context) ([]repositories.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.products, nil
}

// GetByID returns the product with the given id, or an error if absent.
func (r *CatalogRepository) GetByID(ctx context.Context, id string) (*repositories.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.byID[id]
	if !ok {
		return nil, fmt.Errorf("product %s: %w", id, errNotFound)
	}
	return p, nil
}

// Replace swaps the whole catalog, e.g. for a periodic reimport. It
// does not invalidate any matching.Service cache; callers must call
// Service.ClearCache separately.
func (r *CatalogRepository) Replace(products []repositories.Product) {
	owned := make([]repositories.Product, len(products))
	copy(owned, products)

	byID := make(map[string]*repositories.Product, len(owned))
	for i := range owned {
		byID[owned[i].ID.String()] = &owned[i]
	}

	r.mu.Lock()
	r.products = owned
	r.byID = byID
	r.mu.Unlock()
}

var errNotFound = errors.New("not found")

// NewProductID is a small convenience so callers building fixture
// catalogs don't need to import google/uuid directly.
func NewProductID() uuid.UUID {
	return uuid.New()
}
