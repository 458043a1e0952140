package matching

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/narvinIR/PriceOrders/internal/domain/repositories"
)

func TestExactSkuMatch(t *testing.T) {
	p := product("202051110R", "Труба ПП канализационная 110×2000")
	catalog := &fakeCatalog{products: []repositories.Product{p}}
	svc := NewService(catalog, nil, nil, nil, DefaultConfig())

	result, err := svc.MatchItem(context.Background(), repositories.MatchRequest{ClientSKU: "202051110R"})
	if err != nil {
		t.Fatal(err)
	}
	if result.MatchType != repositories.MatchExactSKU || result.Confidence != 100 || result.NeedsReview {
		t.Fatalf("got %+v", result)
	}
	if result.ProductID == nil || *result.ProductID != p.ID {
		t.Fatalf("expected product id %v, got %+v", p.ID, result.ProductID)
	}
}

func TestExactNameMatch(t *testing.T) {
	p := product("202001", "Труба ПП канализационная 110×2000")
	other := product("999999", "Совсем другое изделие")
	catalog := &fakeCatalog{products: []repositories.Product{p, other}}
	svc := NewService(catalog, nil, nil, nil, DefaultConfig())

	result, err := svc.MatchItem(context.Background(), repositories.MatchRequest{ClientName: "Труба ПП канализационная 110×2000"})
	if err != nil {
		t.Fatal(err)
	}
	if result.MatchType != repositories.MatchExactName || result.Confidence != 95 || result.NeedsReview {
		t.Fatalf("got %+v", result)
	}
}

func TestHybridMatchesClampByFitRange(t *testing.T) {
	p := product("900001", `Хомут в комплекте 4" (107-115)`)
	catalog := &fakeCatalog{products: []repositories.Product{p}}
	svc := NewService(catalog, nil, nil, nil, DefaultConfig())

	result, err := svc.MatchItem(context.Background(), repositories.MatchRequest{ClientName: "хомут 110"})
	if err != nil {
		t.Fatal(err)
	}
	if result.MatchType != repositories.MatchFuzzyName {
		t.Fatalf("got %+v", result)
	}
	if result.Confidence < 70 {
		t.Fatalf("expected confidence >= 70, got %v", result.Confidence)
	}
	wantReview := result.Confidence < 90
	if result.NeedsReview != wantReview {
		t.Fatalf("needs_review mismatch: got %v want %v (confidence %v)", result.NeedsReview, wantReview, result.Confidence)
	}
}

func TestHybridPicksSewerOverOutdoorOnColorAndCategory(t *testing.T) {
	outdoor := product("303110045", "Отвод наружная канализация 110×45 рыжий")
	sewer := product("202110045", "Отвод канализационный 110×45 серый")
	catalog := &fakeCatalog{products: []repositories.Product{outdoor, sewer}}
	svc := NewService(catalog, nil, nil, nil, DefaultConfig())

	result, err := svc.MatchItem(context.Background(), repositories.MatchRequest{ClientName: "Отвод 110/45 серый"})
	if err != nil {
		t.Fatal(err)
	}
	if result.ProductID == nil || *result.ProductID != sewer.ID {
		t.Fatalf("expected sewer candidate to win, got %+v", result)
	}
}

func TestHybridThreadSizeGateExcludesPlainCoupling(t *testing.T) {
	threaded := product("700001", `Муфта трубная НР 32×1"`)
	plain := product("700002", "Муфта 32")
	catalog := &fakeCatalog{products: []repositories.Product{threaded, plain}}
	svc := NewService(catalog, nil, nil, nil, DefaultConfig())

	result, err := svc.MatchItem(context.Background(), repositories.MatchRequest{ClientName: `Муфта НР 32×1"`})
	if err != nil {
		t.Fatal(err)
	}
	if result.MatchType != repositories.MatchFuzzyName {
		t.Fatalf("got %+v", result)
	}
	if result.ProductID == nil || *result.ProductID != threaded.ID {
		t.Fatalf("expected the threaded coupling to win, got %+v", result)
	}
}

func TestCriticalTypeMismatchYieldsNotFound(t *testing.T) {
	cross50 := product("110050050", "Крестовина 50")
	catalog := &fakeCatalog{products: []repositories.Product{cross50}}
	svc := NewService(catalog, nil, nil, nil, DefaultConfig())

	result, err := svc.MatchItem(context.Background(), repositories.MatchRequest{ClientName: "Крестовина 110"})
	if err != nil {
		t.Fatal(err)
	}
	if result.MatchType != repositories.MatchNotFound || !result.NeedsReview || result.Confidence != 0 {
		t.Fatalf("expected not_found for critical-type size mismatch, got %+v", result)
	}
}

func TestCachedMappingWinsOverFuzzy(t *testing.T) {
	p := product("555000", "Муфта компрессионная 32")
	catalog := &fakeCatalog{products: []repositories.Product{p}}
	mappingRepo := newFakeMappings()
	now := time.Now()
	mappingRepo.byClient["client-1"] = map[string]repositories.ClientMapping{
		"ABC123": {ClientID: "client-1", ClientSKU: "abc-123", ProductID: p.ID, Confidence: 100, MatchType: repositories.MatchCached, Verified: true, VerifiedAt: &now},
	}
	svc := NewService(catalog, mappingRepo, nil, nil, DefaultConfig())

	result, err := svc.MatchItem(context.Background(), repositories.MatchRequest{ClientID: "client-1", ClientSKU: "abc-123"})
	if err != nil {
		t.Fatal(err)
	}
	if result.MatchType != repositories.MatchCached {
		t.Fatalf("expected cached_mapping, got %+v", result)
	}
	if result.ProductID == nil || *result.ProductID != p.ID {
		t.Fatalf("got %+v", result)
	}
}

func TestExactSkuShortCircuitsBeforeCachedMapping(t *testing.T) {
	exact := product("ABC123", "Труба 1")
	wrongTarget := product("OTHER", "Труба 2")
	catalog := &fakeCatalog{products: []repositories.Product{exact, wrongTarget}}
	mappingRepo := newFakeMappings()
	now := time.Now()
	mappingRepo.byClient["client-1"] = map[string]repositories.ClientMapping{
		"ABC123": {ClientID: "client-1", ClientSKU: "ABC123", ProductID: wrongTarget.ID, Confidence: 100, MatchType: repositories.MatchCached, Verified: true, VerifiedAt: &now},
	}
	svc := NewService(catalog, mappingRepo, nil, nil, DefaultConfig())

	result, err := svc.MatchItem(context.Background(), repositories.MatchRequest{ClientID: "client-1", ClientSKU: "ABC123"})
	if err != nil {
		t.Fatal(err)
	}
	if result.MatchType != repositories.MatchExactSKU {
		t.Fatalf("expected exact_sku to win over cached_mapping, got %+v", result)
	}
	if *result.ProductID != exact.ID {
		t.Fatalf("expected exact product, got %+v", result)
	}
}

func TestInvalidInputReturnsNotFound(t *testing.T) {
	catalog := &fakeCatalog{}
	svc := NewService(catalog, nil, nil, nil, DefaultConfig())

	result, err := svc.MatchItem(context.Background(), repositories.MatchRequest{})
	if err != nil {
		t.Fatal(err)
	}
	if result.MatchType != repositories.MatchNotFound || !result.NeedsReview {
		t.Fatalf("got %+v", result)
	}
}

func TestRoundTripEveryProductMatchesByOwnSku(t *testing.T) {
	products := []repositories.Product{
		product("202051110R", "Труба ПП канализационная 110×2000"),
		product("501016200", "Труба PERT 16-200"),
		product("110050050", "Крестовина 50"),
	}
	catalog := &fakeCatalog{products: products}
	svc := NewService(catalog, nil, nil, nil, DefaultConfig())

	for _, p := range products {
		result, err := svc.MatchItem(context.Background(), repositories.MatchRequest{ClientSKU: p.SKU, ClientName: p.Name})
		if err != nil {
			t.Fatal(err)
		}
		if result.MatchType != repositories.MatchExactSKU {
			t.Fatalf("product %s: expected exact_sku, got %+v", p.SKU, result)
		}
		if result.ProductID == nil || *result.ProductID != p.ID {
			t.Fatalf("product %s: expected id %v, got %+v", p.SKU, p.ID, result)
		}
	}
}

func TestDeterministicReplay(t *testing.T) {
	p := product("202051110R", "Труба ПП канализационная 110×2000")
	catalog := &fakeCatalog{products: []repositories.Product{p}}
	svc := NewService(catalog, nil, nil, nil, DefaultConfig())

	req := repositories.MatchRequest{ClientName: "труба пп канализационная 110 2000"}
	first, err := svc.MatchItem(context.Background(), req)
	if err != nil {
		t.Fatal(err)
	}
	second, err := svc.MatchItem(context.Background(), req)
	if err != nil {
		t.Fatal(err)
	}
	if *first.ProductID != *second.ProductID || first.Confidence != second.Confidence || first.MatchType != second.MatchType {
		t.Fatalf("expected identical results, got %+v vs %+v", first, second)
	}
}

func TestCatalogLoadedExactlyOnceUnderConcurrency(t *testing.T) {
	catalog := &fakeCatalog{products: []repositories.Product{product("1", "труба")}}
	svc := NewService(catalog, nil, nil, nil, DefaultConfig())

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = svc.MatchItem(context.Background(), repositories.MatchRequest{ClientSKU: "1"})
		}()
	}
	wg.Wait()

	if catalog.calls != 1 {
		t.Fatalf("expected exactly one catalog load, got %d", catalog.calls)
	}
}

func TestSaveMappingMakesSubsequentMatchCached(t *testing.T) {
	p := product("900777", "Отвод 45")
	catalog := &fakeCatalog{products: []repositories.Product{p}}
	mappingRepo := newFakeMappings()
	svc := NewService(catalog, mappingRepo, nil, nil, DefaultConfig())

	ctx := context.Background()
	now := time.Now()
	if err := svc.SaveMapping(ctx, repositories.ClientMapping{
		ClientID: "client-9", ClientSKU: "weird-sku", ProductID: p.ID,
		Confidence: 100, MatchType: repositories.MatchCached, Verified: true, VerifiedAt: &now,
	}); err != nil {
		t.Fatal(err)
	}

	result, err := svc.MatchItem(ctx, repositories.MatchRequest{ClientID: "client-9", ClientSKU: "weird-sku"})
	if err != nil {
		t.Fatal(err)
	}
	if result.MatchType != repositories.MatchCached {
		t.Fatalf("expected cached_mapping after save, got %+v", result)
	}
}

func TestAutoSaveSkipsUnverifiedLowConfidenceKinds(t *testing.T) {
	p := product("900778", `Хомут в комплекте 4" (107-115)`)
	catalog := &fakeCatalog{products: []repositories.Product{p}}
	mappingRepo := newFakeMappings()
	svc := NewService(catalog, mappingRepo, nil, nil, DefaultConfig())

	_, err := svc.MatchItem(context.Background(), repositories.MatchRequest{ClientID: "client-5", ClientSKU: "hom-110", ClientName: "хомут 110"})
	if err != nil {
		t.Fatal(err)
	}

	mappingRepo.mu.Lock()
	saved := mappingRepo.byClient["client-5"]
	mappingRepo.mu.Unlock()
	if len(saved) != 0 {
		t.Fatalf("fuzzy_name must never auto-save, got %+v", saved)
	}
}

func TestClearCacheForcesReload(t *testing.T) {
	catalog := &fakeCatalog{products: []repositories.Product{product("1", "труба")}}
	svc := NewService(catalog, nil, nil, nil, DefaultConfig())

	_, _ = svc.MatchItem(context.Background(), repositories.MatchRequest{ClientSKU: "1"})
	svc.ClearCache()
	_, _ = svc.MatchItem(context.Background(), repositories.MatchRequest{ClientSKU: "1"})

	if catalog.calls != 2 {
		t.Fatalf("expected reload after ClearCache, got %d calls", catalog.calls)
	}
}

func TestStatsTrackSuccessRate(t *testing.T) {
	p := product("1", "труба")
	catalog := &fakeCatalog{products: []repositories.Product{p}}
	svc := NewService(catalog, nil, nil, nil, DefaultConfig())

	_, _ = svc.MatchItem(context.Background(), repositories.MatchRequest{ClientSKU: "1"})
	_, _ = svc.MatchItem(context.Background(), repositories.MatchRequest{ClientSKU: "does-not-exist-anywhere"})

	snap := svc.GetStats()
	if snap.Total != 2 {
		t.Fatalf("expected 2 total, got %d", snap.Total)
	}
	if snap.SuccessRate != 0.5 {
		t.Fatalf("expected 0.5 success rate, got %v", snap.SuccessRate)
	}

	svc.ResetStats()
	if svc.GetStats().Total != 0 {
		t.Fatal("expected stats to reset")
	}
}
