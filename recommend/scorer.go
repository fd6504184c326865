// Wayfinder - Activity Recommendation and Preference Learning Core
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/wayfinder

package recommend

import (
	"fmt"
	"math"

	"github.com/tomtom215/wayfinder/internal/validation"
	"github.com/tomtom215/wayfinder/recommend/profile"
)

// Scorer computes match scores for candidates against a preference
// profile. Score is pure: deterministic for identical inputs, no I/O, no
// clock or randomness. External signals (collaborative similarity, rating
// aggregates) enter through ScoreInputs, gathered by the caller.
//
// A Scorer is immutable after construction and safe for concurrent use.
type Scorer struct {
	cfg *Config
}

// NewScorer creates a scorer with the given configuration. A nil config
// uses DefaultConfig.
func NewScorer(cfg *Config) (*Scorer, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("scorer config: %w", err)
	}
	return &Scorer{cfg: cfg.Clone()}, nil
}

// Score computes the component breakdown for one candidate. Candidates
// are untrusted input: a candidate missing required attributes returns an
// error wrapping ErrInvalidCandidate and a zero breakdown.
//
// The five organic components are individually capped (40/20/15/15/10)
// and their clamped sum is the final score in [0, 100]. The sponsor boost
// sits outside that budget and only affects ranking order.
func (s *Scorer) Score(cand Candidate, prof profile.PreferenceProfile, rctx Context) (ScoreBreakdown, error) {
	return s.ScoreWithInputs(cand, prof, rctx, ScoreInputs{})
}

// ScoreWithInputs is Score with externally gathered signals attached.
func (s *Scorer) ScoreWithInputs(cand Candidate, prof profile.PreferenceProfile, rctx Context, in ScoreInputs) (ScoreBreakdown, error) {
	if err := s.validateCandidate(cand); err != nil {
		return ScoreBreakdown{}, err
	}

	b := ScoreBreakdown{
		Base:          s.baseScore(cand, prof),
		Location:      s.locationScore(cand, prof),
		Time:          s.timeScore(prof, rctx),
		Feedback:      s.feedbackScore(cand, prof, in.Stats),
		Collaborative: s.collaborativeScore(in),
	}
	if cand.Sponsored {
		b.SponsorBoost = s.cfg.Sponsor.BoostCap
	}

	b.Final = clamp(b.Base+b.Location+b.Time+b.Feedback+b.Collaborative, 0, MaxFinalScore)
	return b, nil
}

// validateCandidate rejects candidates that cannot be scored. A nil
// location means the upstream source failed to geocode the place; such
// candidates are excluded rather than scored with a fabricated position.
func (s *Scorer) validateCandidate(cand Candidate) error {
	if verr := validation.ValidateStruct(&cand); verr != nil {
		first := verr.First()
		if first == nil {
			return invalidCandidate(cand.ID, "candidate", verr.Error())
		}
		return invalidCandidate(cand.ID, first.Field(), first.Error())
	}
	if math.IsNaN(cand.DistanceMiles) || math.IsInf(cand.DistanceMiles, 0) {
		return invalidCandidate(cand.ID, "distance_miles", "must be a finite distance")
	}
	return nil
}

// baseScore is the interest-match component (0-40). Favorites score
// linearly in recency between the configured min and max so a freshly
// affirmed interest outranks a stale one; disliked categories score near
// zero but not zero, keeping them rankable when nothing else is left.
func (s *Scorer) baseScore(cand Candidate, prof profile.PreferenceProfile) float64 {
	if prof.IsDisliked(cand.Category) {
		return s.cfg.Affinity.Disliked
	}

	rank, ok := prof.FavoriteRecency(cand.Category)
	if !ok {
		return s.cfg.Affinity.Neutral
	}

	n := len(prof.FavoriteCategories)
	if n <= 1 {
		return s.cfg.Affinity.FavoriteMax
	}
	span := s.cfg.Affinity.FavoriteMax - s.cfg.Affinity.FavoriteMin
	return s.cfg.Affinity.FavoriteMin + span*float64(rank)/float64(n-1)
}

// locationScore is the distance component (0-20). The score decays as
// max * (1 - d/preferred)^gamma: full credit at distance zero, zero at or
// beyond the preferred distance, monotonically non-increasing in between.
// The exponent comes from the profile's distance tolerance.
func (s *Scorer) locationScore(cand Candidate, prof profile.PreferenceProfile) float64 {
	preferred := prof.PreferredDistanceMiles
	if preferred <= 0 {
		preferred = profile.MinPreferredDistanceMiles
	}

	r := cand.DistanceMiles / preferred
	if r >= 1 {
		return 0
	}
	if r < 0 {
		r = 0
	}

	gamma := s.cfg.gammaFor(prof.DistanceTolerance)
	return MaxLocationScore * math.Pow(1-r, gamma)
}

// timeScore is the time-of-day alignment component (0-15). An empty
// preference set is neutral, not a mismatch.
func (s *Scorer) timeScore(prof profile.PreferenceProfile, rctx Context) float64 {
	if len(prof.TimePreferences) == 0 {
		return s.cfg.Time.Neutral
	}
	if prof.PrefersBucket(rctx.TimeOfDay) {
		return s.cfg.Time.Match
	}
	return s.cfg.Time.Mismatch
}

// feedbackScore is the historical-satisfaction component (0-15). With a
// trusted rating aggregate it is proportional to the positive ratio;
// without one it falls back to list membership, which still separates
// loved, unknown and disliked categories.
func (s *Scorer) feedbackScore(cand Candidate, prof profile.PreferenceProfile, stats *CategoryStats) float64 {
	if stats != nil && stats.SampleSize >= s.cfg.Feedback.MinSample {
		return MaxFeedbackScore * clamp(stats.PositiveRatio, 0, 1)
	}

	switch {
	case prof.IsFavorite(cand.Category):
		return s.cfg.Feedback.Favorite
	case prof.IsDisliked(cand.Category):
		return s.cfg.Feedback.Disliked
	default:
		return s.cfg.Feedback.Neutral
	}
}

// collaborativeScore is the pluggable similarity component (0-10). No
// provider signal scores zero: the component rewards evidence rather than
// presuming it.
func (s *Scorer) collaborativeScore(in ScoreInputs) float64 {
	if !in.HasCollaborative {
		return 0
	}
	return MaxCollaborativeScore * clamp(in.Collaborative, 0, 1)
}

// clamp bounds v to [lo, hi].
func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
