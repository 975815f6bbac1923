// Package intelligence is the rule-based analytics engine: categorization
// suggestions, statistical insights, budget recommendations, spending
// forecasts and conversational advice, all computed deterministically from a
// user's transaction history. No external AI services, no retained state;
// every operation is a fresh synchronous computation over store reads.
//
// Public operations never fail hard. These are advisory features: on an
// internal error each operation logs the cause and returns its documented
// degraded default with Degraded set, so callers can still render something
// and can tell a computed answer from a fallback.
package intelligence

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/finsight/finsight/internal/analytics"
	"github.com/finsight/finsight/internal/store"
)

// Confidence labels how much a heuristic output should be trusted.
type Confidence string

const (
	ConfidenceLow    Confidence = "low"
	ConfidenceMedium Confidence = "medium"
	ConfidenceHigh   Confidence = "high"
)

// Service exposes the five advisory operations.
type Service struct {
	store   store.Store
	agg     *analytics.Aggregator
	lexicon Lexicon
	log     zerolog.Logger
	now     func() time.Time
}

// NewService creates a Service over the given store.
func NewService(s store.Store, lexicon Lexicon, log zerolog.Logger) *Service {
	return &Service{
		store:   s,
		agg:     analytics.New(s),
		lexicon: lexicon,
		log:     log,
		now:     time.Now,
	}
}

// Aggregator exposes the underlying period aggregator for callers that need
// raw analytics alongside the advisory operations.
func (s *Service) Aggregator() *analytics.Aggregator {
	return s.agg
}
