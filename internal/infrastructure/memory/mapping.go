package memory

import (
	"context"
	"sync"

	"github.com/narvinIR/PriceOrders/internal/domain/normalize"
	"github.com/narvinIR/PriceOrders/internal/domain/repositories"
)

// MappingRepository is an in-memory, per-client mapping store. Rows
// are keyed by (client_id, normalized client sku).
type MappingRepository struct {
	mu       sync.RWMutex
	byClient map[string]map[string]repositories.ClientMapping
}

// NewMappingRepository returns an empty store.
func NewMappingRepository() *MappingRepository {
	return &MappingRepository{byClient: make(map[string]map[string]repositories.ClientMapping)}
}

// ListVerified returns only Verified==true rows for clientID, per the
// MappingRepository contract.
func (r *MappingRepository) ListVerified(ctx context.Context, clientID string) (map[string]repositories.ClientMapping, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make(map[string]repositories.ClientMapping)
	for k, v := range r.byClient[clientID] {
		if v.Verified {
			out[k] = v
		}
	}
	return out, nil
}

// Upsert stores mapping under (ClientID, normalized ClientSKU),
// overwriting any prior row for the same key.
func (r *MappingRepository) Upsert(ctx context.Context, mapping repositories.ClientMapping) error {
	key := normalize.SKU(mapping.ClientSKU)

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.byClient[mapping.ClientID] == nil {
		r.byClient[mapping.ClientID] = make(map[string]repositories.ClientMapping)
	}
	r.byClient[mapping.ClientID][key] = mapping
	return nil
}

// Count returns the total number of stored mapping rows across all
// clients, verified or not. Useful for the demo command's summary.
func (r *MappingRepository) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	n := 0
	for _, m := range r.byClient {
		n += len(m)
	}
	return n
}
