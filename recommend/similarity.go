// Wayfinder - Activity Recommendation and Preference Learning Core
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/wayfinder

package recommend

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/tomtom215/wayfinder/internal/metrics"
)

// ConstantSimilarity is a SimilarityProvider returning a fixed signal for
// every (user, candidate) pair. Useful for tests and for disabling the
// collaborative component (value 0) while keeping the wiring in place.
type ConstantSimilarity float64

// Similarity implements SimilarityProvider.
func (c ConstantSimilarity) Similarity(_ context.Context, _ string, _ Candidate) (float64, error) {
	return float64(c), nil
}

// ResilientSimilarity wraps a SimilarityProvider with circuit breaker
// protection. Collaborative signals are best-effort: when the backing
// service degrades, the breaker opens and calls fail fast instead of
// holding ranking requests hostage. Callers treat any error as "no
// signal" and score the component zero.
//
// The breaker uses real time for its interval and timeout calculations;
// tests should exercise the wrapped provider directly.
type ResilientSimilarity struct {
	provider SimilarityProvider
	cb       *gobreaker.CircuitBreaker[float64]
	logger   zerolog.Logger
}

// NewResilientSimilarity wraps provider with a circuit breaker.
// Breaker configuration:
// - Max 3 concurrent requests in half-open state
// - 1 minute measurement window
// - 30 second timeout before attempting recovery
// - Opens after 60% failure rate with minimum 10 requests
func NewResilientSimilarity(provider SimilarityProvider, logger zerolog.Logger) *ResilientSimilarity {
	log := logger.With().Str("component", "similarity_breaker").Logger()

	cb := gobreaker.NewCircuitBreaker[float64](gobreaker.Settings{
		Name:        "similarity-provider",
		MaxRequests: 3,
		Interval:    time.Minute,
		Timeout:     30 * time.Second,

		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < 10 {
				return false // need a minimum sample before tripping
			}
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return failureRatio >= 0.6
		},

		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Info().
				Str("breaker", name).
				Str("from", from.String()).
				Str("to", to.String()).
				Msg("Circuit breaker state transition")
		},
	})

	return &ResilientSimilarity{
		provider: provider,
		cb:       cb,
		logger:   log,
	}
}

// Similarity implements SimilarityProvider with breaker protection.
func (r *ResilientSimilarity) Similarity(ctx context.Context, userID string, cand Candidate) (float64, error) {
	value, err := r.cb.Execute(func() (float64, error) {
		return r.provider.Similarity(ctx, userID, cand)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			metrics.RecordSimilarity("open")
			return 0, err
		}
		metrics.RecordSimilarity("error")
		return 0, err
	}

	metrics.RecordSimilarity("ok")
	return value, nil
}
