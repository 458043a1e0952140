package matching

import (
	"sync"

	"github.com/narvinIR/PriceOrders/internal/domain/repositories"
)

// Stats collects per-match-kind counters under a single lock (spec
// §4.13). A snapshot is a plain copy safe to read without further
// synchronization.
type Stats struct {
	mu         sync.Mutex
	byType     map[repositories.MatchType]int
	total      int
	totalConf  float64
}

// NewStats returns an empty collector.
func NewStats() *Stats {
	return &Stats{byType: make(map[repositories.MatchType]int)}
}

// Record folds one MatchResult into the running counters.
func (s *Stats) Record(result *repositories.MatchResult) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.byType[result.MatchType]++
	s.total++
	s.totalConf += result.Confidence
}

// Reset zeroes every counter.
func (s *Stats) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.byType = make(map[repositories.MatchType]int)
	s.total = 0
	s.totalConf = 0
}

// Snapshot is a point-in-time, lock-free copy of the collected stats.
type Snapshot struct {
	ByType      map[repositories.MatchType]int
	Total       int
	AvgConf     float64
	SuccessRate float64
}

// Snapshot takes a consistent copy of the current counters and derives
// avg_confidence / success_rate (spec §4.13); both are 0 when Total==0.
func (s *Stats) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	byType := make(map[repositories.MatchType]int, len(s.byType))
	for k, v := range s.byType {
		byType[k] = v
	}

	snap := Snapshot{ByType: byType, Total: s.total}
	if s.total == 0 {
		return snap
	}
	snap.AvgConf = s.totalConf / float64(s.total)
	notFound := s.byType[repositories.MatchNotFound]
	snap.SuccessRate = float64(s.total-notFound) / float64(s.total)
	return snap
}
