package matching

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/narvinIR/PriceOrders/internal/domain/normalize"
	"github.com/narvinIR/PriceOrders/internal/domain/repositories"
)

type fakeCatalog struct {
	products []repositories.Product
	calls    int32
}

func (f *fakeCatalog) ListAll(ctx context.Context) ([]repositories.Product, error) {
	atomic.AddInt32(&f.calls, 1)
	return f.products, nil
}

func (f *fakeCatalog) GetByID(ctx context.Context, id string) (*repositories.Product, error) {
	for i := range f.products {
		if f.products[i].ID.String() == id {
			return &f.products[i], nil
		}
	}
	return nil, errors.New("not found")
}

type fakeMappings struct {
	mu       sync.Mutex
	byClient map[string]map[string]repositories.ClientMapping
}

func newFakeMappings() *fakeMappings {
	return &fakeMappings{byClient: make(map[string]map[string]repositories.ClientMapping)}
}

func (f *fakeMappings) ListVerified(ctx context.Context, clientID string) (map[string]repositories.ClientMapping, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make(map[string]repositories.ClientMapping)
	for k, v := range f.byClient[clientID] {
		if v.Verified {
			out[k] = v
		}
	}
	return out, nil
}

func (f *fakeMappings) Upsert(ctx context.Context, mapping repositories.ClientMapping) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.byClient[mapping.ClientID] == nil {
		f.byClient[mapping.ClientID] = make(map[string]repositories.ClientMapping)
	}
	f.byClient[mapping.ClientID][normalize.SKU(mapping.ClientSKU)] = mapping
	return nil
}

func product(sku, name string) repositories.Product {
	return repositories.Product{ID: uuid.New(), SKU: sku, Name: name, PackQty: 1}
}
