// Wayfinder - Activity Recommendation and Preference Learning Core
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/wayfinder

package recommend

import (
	"context"
	"testing"
	"time"

	"github.com/tomtom215/wayfinder/recommend/profile"
)

func popEvent(category string, rating profile.Rating) profile.FeedbackEvent {
	return profile.NewFeedbackEvent("someone", category, rating, time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC))
}

func TestPopularitySimilarity(t *testing.T) {
	ctx := context.Background()

	t.Run("untrained scores zero", func(t *testing.T) {
		p := NewPopularitySimilarity()
		v, err := p.Similarity(ctx, "u1", testCandidate("c1", "dining", 1))
		if err != nil {
			t.Fatalf("Similarity() error = %v", err)
		}
		if v != 0 {
			t.Errorf("Similarity() = %f, want 0 before training", v)
		}
	})

	t.Run("most popular category maps to 1", func(t *testing.T) {
		p := NewPopularitySimilarity()
		events := []profile.FeedbackEvent{
			popEvent("coffee", profile.ThumbsUp),
			popEvent("coffee", profile.ThumbsUp),
			popEvent("coffee", profile.ThumbsUp),
			popEvent("coffee", profile.ThumbsUp),
			popEvent("dining", profile.ThumbsUp),
			popEvent("dining", profile.ThumbsUp),
		}
		if err := p.Train(ctx, events); err != nil {
			t.Fatalf("Train() error = %v", err)
		}

		coffee, _ := p.Similarity(ctx, "u1", testCandidate("c1", "coffee", 1))
		dining, _ := p.Similarity(ctx, "u1", testCandidate("c2", "dining", 1))

		if coffee != 1.0 {
			t.Errorf("coffee = %f, want 1.0", coffee)
		}
		if dining != 0.5 {
			t.Errorf("dining = %f, want 0.5", dining)
		}
	})

	t.Run("net negative categories score zero", func(t *testing.T) {
		p := NewPopularitySimilarity()
		events := []profile.FeedbackEvent{
			popEvent("coffee", profile.ThumbsUp),
			popEvent("nightlife", profile.ThumbsDown),
			popEvent("nightlife", profile.ThumbsDown),
		}
		if err := p.Train(ctx, events); err != nil {
			t.Fatalf("Train() error = %v", err)
		}

		v, _ := p.Similarity(ctx, "u1", testCandidate("c1", "nightlife", 1))
		if v != 0 {
			t.Errorf("net negative category = %f, want 0", v)
		}
	})

	t.Run("retraining replaces the model", func(t *testing.T) {
		p := NewPopularitySimilarity()
		if err := p.Train(ctx, []profile.FeedbackEvent{popEvent("coffee", profile.ThumbsUp)}); err != nil {
			t.Fatalf("Train() error = %v", err)
		}
		if err := p.Train(ctx, []profile.FeedbackEvent{popEvent("hiking", profile.ThumbsUp)}); err != nil {
			t.Fatalf("Train() error = %v", err)
		}

		coffee, _ := p.Similarity(ctx, "u1", testCandidate("c1", "coffee", 1))
		hiking, _ := p.Similarity(ctx, "u1", testCandidate("c2", "hiking", 1))
		if coffee != 0 || hiking != 1.0 {
			t.Errorf("after retrain coffee = %f, hiking = %f; want 0 and 1", coffee, hiking)
		}
	})
}
