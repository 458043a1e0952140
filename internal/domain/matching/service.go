// Package matching implements the ordered strategy pipeline and the
// Matching Service orchestrator (spec §4.7-§4.13): the component that
// turns a free-form order line into a confidence-scored catalog match.
package matching

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"unicode"

	"github.com/narvinIR/PriceOrders/internal/domain/repositories"
	"github.com/narvinIR/PriceOrders/internal/infrastructure/cache"
)

// pipeline is the fixed, compile-time-registered strategy order (spec
// §4.7, §9 "Strategy dispatch"). ExactSku and ExactName come before
// CachedMapping per the spec's resolution of the "open question" in
// §9: exact equivalence is stronger evidence than a historical
// mapping.
var pipeline = []strategy{
	exactSkuStrategy{},
	exactNameStrategy{},
	cachedMappingStrategy{},
	fuzzySkuStrategy{},
	hybridStrategy{},
	llmStrategy{},
}

// Service orchestrates the catalog cache, per-client mapping cache,
// strategy pipeline, Stats, and Auto-Save (spec §4.11).
type Service struct {
	mappingRepo repositories.MappingRepository
	embedding   repositories.EmbeddingIndex
	llm         repositories.LLMMatcher
	cfg         Config
	log         *slog.Logger

	stats *Stats

	catalog  *cache.CatalogCache
	mappings *cache.MappingCache
}

// NewService wires a Service from its collaborators. embedding and llm
// may be nil: the pipeline degrades gracefully per spec §7.
func NewService(catalogRepo repositories.CatalogRepository, mappingRepo repositories.MappingRepository, embedding repositories.EmbeddingIndex, llm repositories.LLMMatcher, cfg Config) *Service {
	return &Service{
		mappingRepo: mappingRepo,
		embedding:   embedding,
		llm:         llm,
		cfg:         cfg,
		log:         slog.Default().With("component", "matching.Service"),
		stats:       NewStats(),
		catalog:     cache.NewCatalogCache(catalogRepo),
		mappings:    cache.NewMappingCache(),
	}
}

// MatchItem runs the full pipeline for one request (spec §4.11).
func (s *Service) MatchItem(ctx context.Context, req repositories.MatchRequest) (*repositories.MatchResult, error) {
	result, _, err := s.matchItem(ctx, req, true)
	return result, err
}

// matchItem is the shared implementation behind MatchItem and
// MatchOrderItems; the latter also needs to know whether the result
// was auto-saved, and may disable auto-save altogether without
// affecting the per-client mapping cache lookup.
func (s *Service) matchItem(ctx context.Context, req repositories.MatchRequest, allowAutoSave bool) (*repositories.MatchResult, bool, error) {
	req = applyNameSkuSwap(req)

	if req.ClientSKU == "" && req.ClientName == "" {
		result := repositories.NotFound()
		s.stats.Record(result)
		return result, false, nil
	}

	products, err := s.loadCatalog(ctx)
	if err != nil {
		return nil, false, fmt.Errorf("loading catalog: %w", err)
	}

	mappings := s.loadMappings(ctx, req.ClientID)
	caps := capabilities{embedding: s.embedding, llm: s.llm}

	result, err := s.runPipeline(ctx, req, products, mappings, caps)
	if err != nil {
		return nil, false, err
	}

	s.stats.Record(result)
	var saved bool
	if allowAutoSave {
		saved = s.autoSave(ctx, req, result)
	}

	return result, saved, nil
}

func (s *Service) runPipeline(ctx context.Context, req repositories.MatchRequest, products []repositories.Product, mappings map[string]repositories.ClientMapping, caps capabilities) (*repositories.MatchResult, error) {
	for _, st := range pipeline {
		result, err := st.match(ctx, req, products, mappings, caps, s.cfg)
		if err != nil {
			s.log.Warn("strategy error, continuing pipeline", "error", err)
			continue
		}
		if result != nil {
			return result, nil
		}
	}
	return repositories.NotFound(), nil
}

// applyNameSkuSwap implements the spec §4.11 heuristic: a SKU typed
// into the wrong field looks like a long string containing whitespace.
func applyNameSkuSwap(req repositories.MatchRequest) repositories.MatchRequest {
	if req.ClientName != "" || len(req.ClientSKU) <= 10 {
		return req
	}
	if !strings.ContainsFunc(req.ClientSKU, unicode.IsSpace) {
		return req
	}
	req.ClientName = req.ClientSKU
	req.ClientSKU = ""
	return req
}

// loadCatalog is a write-once, single-loader-guarded cache (spec §5, §9).
func (s *Service) loadCatalog(ctx context.Context) ([]repositories.Product, error) {
	products, err := s.catalog.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", repositories.ErrCatalogUnavailable, err)
	}
	return products, nil
}

// loadMappings loads verified mappings for one client, lazily and
// at-most-once per invalidation cycle. Mapping load failures degrade
// to an empty map rather than propagating (spec §7: mapping_unavailable).
func (s *Service) loadMappings(ctx context.Context, clientID string) map[string]repositories.ClientMapping {
	if clientID == "" || s.mappingRepo == nil {
		return nil
	}

	m, _ := s.mappings.Get(ctx, clientID, func(ctx context.Context, clientID string) (map[string]repositories.ClientMapping, error) {
		m, err := s.mappingRepo.ListVerified(ctx, clientID)
		if err != nil {
			s.log.Warn("mapping load failed, proceeding with empty cache", "client_id", clientID, "error", err)
			return map[string]repositories.ClientMapping{}, nil
		}
		return m, nil
	})
	return m
}

// autoSave persists high-confidence results per spec §4.12 and reports
// whether it did. Failures are logged and swallowed; they never affect
// the returned result.
func (s *Service) autoSave(ctx context.Context, req repositories.MatchRequest, result *repositories.MatchResult) bool {
	if s.mappingRepo == nil || req.ClientID == "" {
		return false
	}
	if !shouldAutoSave(s.cfg, req.ClientSKU, result) {
		return false
	}

	mapping := repositories.ClientMapping{
		ClientID:   req.ClientID,
		ClientSKU:  req.ClientSKU,
		ProductID:  *result.ProductID,
		Confidence: result.Confidence,
		MatchType:  result.MatchType,
		Verified:   false,
	}
	if err := s.mappingRepo.Upsert(ctx, mapping); err != nil {
		s.log.Warn("autosave failed, result unaffected", "client_id", req.ClientID, "error", err)
		return false
	}
	s.invalidateMappingCache(req.ClientID)
	return true
}

// SaveMapping upserts a (typically verified) mapping and invalidates
// that client's cache entry (spec §4.11).
func (s *Service) SaveMapping(ctx context.Context, mapping repositories.ClientMapping) error {
	if s.mappingRepo == nil {
		return repositories.ErrMappingUnavailable
	}
	if err := s.mappingRepo.Upsert(ctx, mapping); err != nil {
		return fmt.Errorf("saving mapping: %w", err)
	}
	s.invalidateMappingCache(mapping.ClientID)
	return nil
}

func (s *Service) invalidateMappingCache(clientID string) {
	s.mappings.Invalidate(clientID)
}

// ClearCache drops the product cache and every per-client mapping
// cache (spec §4.11).
func (s *Service) ClearCache() {
	s.catalog.Clear()
	s.mappings.Clear()
}

// GetStats returns a point-in-time snapshot of the match counters.
func (s *Service) GetStats() Snapshot {
	return s.stats.Snapshot()
}

// ResetStats zeroes every counter.
func (s *Service) ResetStats() {
	s.stats.Reset()
}

// OrderItem pairs one match outcome with whether it was auto-saved.
type OrderItem struct {
	Request   repositories.MatchRequest
	Result    *repositories.MatchResult
	AutoSaved bool
}

// MatchOrderItems is a convenience wrapper over MatchItem for a whole
// order (spec §4.11 match_order_items). When autoSave is false, items
// are matched and counted in Stats as usual but nothing is persisted.
func (s *Service) MatchOrderItems(ctx context.Context, clientID string, items []repositories.MatchRequest, autoSave bool) ([]OrderItem, error) {
	out := make([]OrderItem, 0, len(items))
	for _, item := range items {
		item.ClientID = clientID

		result, saved, err := s.matchItem(ctx, item, autoSave)
		if err != nil {
			return out, err
		}

		out = append(out, OrderItem{Request: item, Result: result, AutoSaved: saved})
	}
	return out, nil
}
