// Package cache implements the write-once catalog cache and the
// per-client mapping cache the Matching Service depends on (spec §5,
// §9: "a lock covering the check-load-store sequence to guarantee
// at-most-one concurrent load"). Both wrap golang.org/x/sync/singleflight
// so concurrent first-callers collapse into a single upstream load.
package cache

import (
	"context"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/narvinIR/PriceOrders/internal/domain/repositories"
)

// CatalogCache memoizes a CatalogRepository.ListAll result for process
// lifetime, until Clear is called.
type CatalogCache struct {
	repo repositories.CatalogRepository

	mu    sync.RWMutex
	ready bool
	data  []repositories.Product

	group singleflight.Group
}

// NewCatalogCache wraps repo.
func NewCatalogCache(repo repositories.CatalogRepository) *CatalogCache {
	return &CatalogCache{repo: repo}
}

// Get returns the cached catalog, loading it on the first call. N
// concurrent first-time callers observe exactly one ListAll invocation.
func (c *CatalogCache) Get(ctx context.Context) ([]repositories.Product, error) {
	c.mu.RLock()
	if c.ready {
		data := c.data
		c.mu.RUnlock()
		return data, nil
	}
	c.mu.RUnlock()

	v, err, _ := c.group.Do("catalog", func() (interface{}, error) {
		c.mu.RLock()
		if c.ready {
			data := c.data
			c.mu.RUnlock()
			return data, nil
		}
		c.mu.RUnlock()

		data, err := c.repo.ListAll(ctx)
		if err != nil {
			return nil, err
		}

		c.mu.Lock()
		c.data = data
		c.ready = true
		c.mu.Unlock()
		return data, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]repositories.Product), nil
}

// Clear drops the cached catalog, forcing the next Get to reload.
func (c *CatalogCache) Clear() {
	c.mu.Lock()
	c.data = nil
	c.ready = false
	c.mu.Unlock()
}

// MappingLoader fetches verified mappings for one client from the
// backing repository.
type MappingLoader func(ctx context.Context, clientID string) (map[string]repositories.ClientMapping, error)

// MappingCache memoizes per-client verified mappings, keyed by
// client_id, invalidated individually on upsert.
type MappingCache struct {
	mu    sync.RWMutex
	byKey map[string]map[string]repositories.ClientMapping

	group singleflight.Group
}

// NewMappingCache returns an empty cache.
func NewMappingCache() *MappingCache {
	return &MappingCache{byKey: make(map[string]map[string]repositories.ClientMapping)}
}

// Get returns clientID's cached mapping table, loading it at most once
// per invalidation cycle via load.
func (c *MappingCache) Get(ctx context.Context, clientID string, load MappingLoader) (map[string]repositories.ClientMapping, error) {
	c.mu.RLock()
	if m, ok := c.byKey[clientID]; ok {
		c.mu.RUnlock()
		return m, nil
	}
	c.mu.RUnlock()

	v, err, _ := c.group.Do(clientID, func() (interface{}, error) {
		c.mu.RLock()
		if m, ok := c.byKey[clientID]; ok {
			c.mu.RUnlock()
			return m, nil
		}
		c.mu.RUnlock()

		m, err := load(ctx, clientID)
		if err != nil {
			return nil, err
		}

		c.mu.Lock()
		c.byKey[clientID] = m
		c.mu.Unlock()
		return m, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(map[string]repositories.ClientMapping), nil
}

// Invalidate drops clientID's cached entry.
func (c *MappingCache) Invalidate(clientID string) {
	c.mu.Lock()
	delete(c.byKey, clientID)
	c.mu.Unlock()
}

// Clear drops every client's cached entry.
func (c *MappingCache) Clear() {
	c.mu.Lock()
	c.byKey = make(map[string]map[string]repositories.ClientMapping)
	c.mu.Unlock()
}
