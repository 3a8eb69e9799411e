// Package extractor decides the extraction strategy per document: an
// ordered list of strategies is tried in sequence and the first accepted
// result wins, so failures never surface to callers as errors.
package extractor

import (
	"context"
	"log"
	"time"

	"github.com/philipeduarte001/licitacao/internal/domain"
	"github.com/philipeduarte001/licitacao/internal/port"
)

// Orchestrator tries strategies in order, accepting the first record that
// carries at least one key field. It implements port.NoticeExtractor.
type Orchestrator struct {
	strategies []port.ExtractStrategy
	now        func() time.Time
}

// NewOrchestrator creates an Orchestrator from an ordered strategy list.
func NewOrchestrator(strategies ...port.ExtractStrategy) *Orchestrator {
	return &Orchestrator{strategies: strategies, now: time.Now}
}

// NewOrchestratorWithClock creates an Orchestrator with an injected clock
// (tests).
func NewOrchestratorWithClock(now func() time.Time, strategies ...port.ExtractStrategy) *Orchestrator {
	return &Orchestrator{strategies: strategies, now: now}
}

// Extract never fails: on any internal problem the best-effort result of
// the last strategy that produced one is returned, and when every strategy
// comes up empty an explanatory default record is built instead.
func (o *Orchestrator) Extract(ctx context.Context, input port.ExtractInput) *domain.Notice {
	var fallback *domain.Notice

	for _, s := range o.strategies {
		if !s.Available() {
			log.Printf("extractor.Orchestrator: skipping %s (unavailable)", s.Name())
			continue
		}

		rec, err := s.Extract(ctx, input)
		if err != nil {
			log.Printf("extractor.Orchestrator: %s failed: %v", s.Name(), err)
			continue
		}
		if rec == nil {
			continue
		}
		if rec.HasKeyField() {
			log.Printf("extractor.Orchestrator: accepted result from %s for %q", s.Name(), input.FileName)
			return rec
		}
		log.Printf("extractor.Orchestrator: rejected result from %s (no key fields)", s.Name())
		fallback = rec
	}

	if fallback != nil {
		return fallback
	}
	return &domain.Notice{
		Timestamp: o.now(),
		Notes:     "no extraction strategy produced a result; returning empty record",
		Items:     []domain.LineItem{},
	}
}
