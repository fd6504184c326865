// Wayfinder - Activity Recommendation and Preference Learning Core
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/wayfinder

package recommend

import (
	"context"
	"sync"

	"github.com/tomtom215/wayfinder/recommend/profile"
)

// PopularitySimilarity is a built-in SimilarityProvider that scores a
// candidate by how popular its category is across all journaled
// feedback. It provides a simple but effective baseline signal:
//
//   - Cold start users with no personal history
//   - Fallback when an external similarity service is unavailable
//   - Blending with personalized scores
//
// The popularity score is the net thumbs-up weight per category,
// normalized so the most popular category maps to 1.0. User identity is
// ignored; the signal is global by construction.
//
// Train replaces the model atomically, so Similarity can be called
// concurrently with retraining.
type PopularitySimilarity struct {
	mu     sync.RWMutex
	scores map[string]float64 // category -> normalized [0, 1]
}

// NewPopularitySimilarity creates an untrained provider. Until Train is
// called every candidate scores zero.
func NewPopularitySimilarity() *PopularitySimilarity {
	return &PopularitySimilarity{scores: make(map[string]float64)}
}

// Train computes per-category popularity from feedback events. A thumbs
// up counts +1, a thumbs down -1; categories that net negative score
// zero. Deterministic for a given event slice.
func (p *PopularitySimilarity) Train(ctx context.Context, events []profile.FeedbackEvent) error {
	raw := make(map[string]float64)
	for _, ev := range events {
		if err := ctx.Err(); err != nil {
			return err
		}
		switch ev.Rating {
		case profile.ThumbsUp:
			raw[ev.Category]++
		case profile.ThumbsDown:
			raw[ev.Category]--
		}
	}

	// Normalize onto [0, 1] against the most popular category.
	var top float64
	for _, score := range raw {
		if score > top {
			top = score
		}
	}

	scores := make(map[string]float64, len(raw))
	if top > 0 {
		for cat, score := range raw {
			if score > 0 {
				scores[cat] = score / top
			}
		}
	}

	p.mu.Lock()
	p.scores = scores
	p.mu.Unlock()
	return nil
}

// Similarity implements SimilarityProvider.
func (p *PopularitySimilarity) Similarity(_ context.Context, _ string, cand Candidate) (float64, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.scores[cand.Category], nil
}
