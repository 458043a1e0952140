package cache

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/google/uuid"

	"github.com/narvinIR/PriceOrders/internal/domain/repositories"
)

type countingCatalog struct {
	calls    int32
	products []repositories.Product
}

func (c *countingCatalog) ListAll(ctx context.Context) ([]repositories.Product, error) {
	atomic.AddInt32(&c.calls, 1)
	return c.products, nil
}

func (c *countingCatalog) GetByID(ctx context.Context, id string) (*repositories.Product, error) {
	return nil, nil
}

func TestCatalogCacheLoadsOnce(t *testing.T) {
	repo := &countingCatalog{products: []repositories.Product{{ID: uuid.New(), SKU: "1"}}}
	c := NewCatalogCache(repo)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := c.Get(context.Background()); err != nil {
				t.Error(err)
			}
		}()
	}
	wg.Wait()

	if repo.calls != 1 {
		t.Fatalf("expected exactly one ListAll call, got %d", repo.calls)
	}
}

func TestCatalogCacheClearForcesReload(t *testing.T) {
	repo := &countingCatalog{}
	c := NewCatalogCache(repo)

	if _, err := c.Get(context.Background()); err != nil {
		t.Fatal(err)
	}
	c.Clear()
	if _, err := c.Get(context.Background()); err != nil {
		t.Fatal(err)
	}

	if repo.calls != 2 {
		t.Fatalf("expected reload after Clear, got %d calls", repo.calls)
	}
}

func TestMappingCacheIsPerClient(t *testing.T) {
	c := NewMappingCache()
	var callsA, callsB int32

	loadA := func(ctx context.Context, clientID string) (map[string]repositories.ClientMapping, error) {
		atomic.AddInt32(&callsA, 1)
		return map[string]repositories.ClientMapping{"x": {ClientID: clientID}}, nil
	}
	loadB := func(ctx context.Context, clientID string) (map[string]repositories.ClientMapping, error) {
		atomic.AddInt32(&callsB, 1)
		return map[string]repositories.ClientMapping{"y": {ClientID: clientID}}, nil
	}

	if _, err := c.Get(context.Background(), "a", loadA); err != nil {
		t.Fatal(err)
	}
	if _, err := c.Get(context.Background(), "a", loadA); err != nil {
		t.Fatal(err)
	}
	if _, err := c.Get(context.Background(), "b", loadB); err != nil {
		t.Fatal(err)
	}

	if callsA != 1 || callsB != 1 {
		t.Fatalf("expected one load per client, got a=%d b=%d", callsA, callsB)
	}
}

func TestMappingCacheInvalidateForcesReload(t *testing.T) {
	c := NewMappingCache()
	var calls int32
	load := func(ctx context.Context, clientID string) (map[string]repositories.ClientMapping, error) {
		atomic.AddInt32(&calls, 1)
		return map[string]repositories.ClientMapping{}, nil
	}

	if _, err := c.Get(context.Background(), "a", load); err != nil {
		t.Fatal(err)
	}
	c.Invalidate("a")
	if _, err := c.Get(context.Background(), "a", load); err != nil {
		t.Fatal(err)
	}

	if calls != 2 {
		t.Fatalf("expected reload after Invalidate, got %d calls", calls)
	}
}
