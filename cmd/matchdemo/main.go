// Command matchdemo wires the matching.Service against an in-memory
// catalog and mapping store and runs a small fixed order through it,
// printing each result and a stats summary. It exists to exercise the
// pipeline end to end without a database or HTTP layer, the way the
// teacher's cmd/check_stats and cmd/analyze_csv are small standalone
// drivers over the domain packages rather than full servers.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/google/uuid"

	"github.com/narvinIR/PriceOrders/internal/domain/matching"
	"github.com/narvinIR/PriceOrders/internal/domain/repositories"
	"github.com/narvinIR/PriceOrders/internal/infrastructure/capability"
	"github.com/narvinIR/PriceOrders/internal/infrastructure/memory"
)

func main() {
	configPath := flag.String("config", "", "path to a matcher config JSON file (optional)")
	orderPath := flag.String("order", "", "path to a JSON array of {client_sku, client_name} lines (optional, uses a built-in sample order otherwise)")
	clientID := flag.String("client", "demo-client", "client id to match the order under")
	autoSave := flag.Bool("autosave", true, "persist eligible high-confidence matches as client mappings")
	flag.Parse()

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stderr, nil)))
	log := slog.Default().With("component", "cmd.matchdemo")

	cfg, err := matching.LoadConfig(*configPath)
	if err != nil {
		log.Warn("config load failed, using defaults", "error", err)
	}

	catalogRepo := memory.NewCatalogRepository(sampleCatalog())
	mappingRepo := memory.NewMappingRepository()
	svc := matching.NewService(catalogRepo, mappingRepo, capability.NoopEmbeddingIndex{}, capability.NoopLLMMatcher{}, cfg)

	items, err := loadOrder(*orderPath)
	if err != nil {
		log.Error("failed to load order", "path", *orderPath, "error", err)
		os.Exit(1)
	}

	ctx := context.Background()
	results, err := svc.MatchOrderItems(ctx, *clientID, items, *autoSave)
	if err != nil {
		log.Error("match_order_items failed", "error", err)
		os.Exit(1)
	}

	for _, r := range results {
		fmt.Printf("%-28s %-40s -> %-14s conf=%-5.1f review=%-5v saved=%v\n",
			r.Request.ClientSKU, r.Request.ClientName, r.Result.MatchType, r.Result.Confidence, r.Result.NeedsReview, r.AutoSaved)
	}

	snap := svc.GetStats()
	fmt.Printf("\ntotal=%d avg_confidence=%.1f success_rate=%.2f by_type=%v\n",
		snap.Total, snap.AvgConf, snap.SuccessRate, snap.ByType)
}

func loadOrder(path string) ([]repositories.MatchRequest, error) {
	if path == "" {
		return sampleOrder(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading order file: %w", err)
	}
	var items []repositories.MatchRequest
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("parsing order file: %w", err)
	}
	return items, nil
}

func sampleOrder() []repositories.MatchRequest {
	return []repositories.MatchRequest{
		{ClientSKU: "202051110R"},
		{ClientName: "Труба ПП канализационная 110х2000"},
		{ClientName: "Отвод 110/45 серый"},
		{ClientName: "хомут 110"},
		{ClientName: "Крестовина 110"},
		{ClientSKU: "does-not-exist"},
	}
}

// sampleCatalog is a small fixture standing in for the ~1000-SKU
// plumbing catalog the spec targets.
func sampleCatalog() []repositories.Product {
	return []repositories.Product{
		{ID: uuid.New(), SKU: "202051110R", Name: "Труба ПП канализационная 110×2000", PackQty: 1},
		{ID: uuid.New(), SKU: "501016200", Name: "Труба PERT 16-200", PackQty: 1},
		{ID: uuid.New(), SKU: "202110045", Name: "Отвод канализационный 110×45 серый", PackQty: 1},
		{ID: uuid.New(), SKU: "303110045", Name: "Отвод наружная канализация 110×45 рыжий", PackQty: 1},
		{ID: uuid.New(), SKU: "900001", Name: `Хомут в комплекте 4" (107-115)`, PackQty: 1},
		{ID: uuid.New(), SKU: "110050050", Name: "Крестовина 50", PackQty: 1},
		{ID: uuid.New(), SKU: "700001", Name: `Муфта трубная НР 32×1"`, PackQty: 1},
	}
}
