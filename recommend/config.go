// Wayfinder - Activity Recommendation and Preference Learning Core
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/wayfinder

package recommend

import (
	"fmt"
	"time"

	"github.com/tomtom215/wayfinder/recommend/profile"
)

// Config contains all tunables for the scoring engine and ranker. The
// component maxima (40/20/15/15/10) are fixed contract; the config pins
// down the interpolation points the contract leaves open.
type Config struct {
	// Affinity sets the category-affinity levels for the base component.
	Affinity AffinityConfig `json:"affinity" koanf:"affinity"`

	// Location shapes the distance decay curve.
	Location LocationConfig `json:"location" koanf:"location"`

	// Time sets the time-of-day alignment levels.
	Time TimeConfig `json:"time" koanf:"time"`

	// Feedback sets the historical-satisfaction levels.
	Feedback FeedbackConfig `json:"feedback" koanf:"feedback"`

	// Sponsor bounds the paid-placement nudge.
	Sponsor SponsorConfig `json:"sponsor" koanf:"sponsor"`

	// Ranking contains batch-ranking operational settings.
	Ranking RankingConfig `json:"ranking" koanf:"ranking"`

	// Engine contains orchestration settings (retries, timeouts).
	Engine EngineConfig `json:"engine" koanf:"engine"`
}

// AffinityConfig sets the base-score level for each affinity class.
// Invariant: Disliked < Neutral < FavoriteMin <= FavoriteMax <= 40.
// Favorites score linearly in recency between FavoriteMin (oldest) and
// FavoriteMax (most recently affirmed).
type AffinityConfig struct {
	// FavoriteMax is the score for the most recently affirmed favorite.
	// Default: 40.
	FavoriteMax float64 `json:"favorite_max" koanf:"favorite_max"`

	// FavoriteMin is the score for the oldest favorite.
	// Default: 32.
	FavoriteMin float64 `json:"favorite_min" koanf:"favorite_min"`

	// Neutral is the score for categories on neither list.
	// Default: 20.
	Neutral float64 `json:"neutral" koanf:"neutral"`

	// Disliked is the near-zero score for disliked categories.
	// Default: 2.
	Disliked float64 `json:"disliked" koanf:"disliked"`
}

// LocationConfig shapes the distance falloff. The curve is
// max * (1 - d/preferred)^gamma for d < preferred, 0 at or beyond, which
// keeps the component monotonically non-increasing in distance and full
// at distance zero. Gamma above 1 drops steeply near the user (tight
// tolerance); below 1 holds score longer (relaxed).
type LocationConfig struct {
	// GammaLow is the exponent for low distance tolerance.
	// Default: 2.0 (steep falloff).
	GammaLow float64 `json:"gamma_low" koanf:"gamma_low"`

	// GammaMedium is the exponent for medium distance tolerance.
	// Default: 1.0 (linear).
	GammaMedium float64 `json:"gamma_medium" koanf:"gamma_medium"`

	// GammaHigh is the exponent for high distance tolerance.
	// Default: 0.5 (relaxed).
	GammaHigh float64 `json:"gamma_high" koanf:"gamma_high"`
}

// TimeConfig sets the time-of-day alignment levels. An empty preference
// set scores Neutral, never Mismatch: no stated preference must stay
// distinguishable from an explicit negative one.
type TimeConfig struct {
	// Match is the score when the context bucket is preferred.
	// Default: 15 (full credit).
	Match float64 `json:"match" koanf:"match"`

	// Neutral is the score when the user has no time preferences.
	// Default: 8.
	Neutral float64 `json:"neutral" koanf:"neutral"`

	// Mismatch is the score when preferences exist but exclude the bucket.
	// Default: 3.
	Mismatch float64 `json:"mismatch" koanf:"mismatch"`
}

// FeedbackConfig sets the historical-satisfaction levels. When a category
// aggregate with at least MinSample ratings is available the component is
// 15 * positive ratio; otherwise it falls back to list membership.
type FeedbackConfig struct {
	// Favorite is the fallback score for favorite categories. Default: 12.
	Favorite float64 `json:"favorite" koanf:"favorite"`

	// Neutral is the fallback score for unlisted categories. Default: 7.
	Neutral float64 `json:"neutral" koanf:"neutral"`

	// Disliked is the fallback score for disliked categories. Default: 1.
	Disliked float64 `json:"disliked" koanf:"disliked"`

	// MinSample is the minimum aggregate sample size before the rating
	// ratio is trusted over list membership. Default: 3.
	MinSample int `json:"min_sample" koanf:"min_sample"`
}

// SponsorConfig bounds the paid-placement nudge.
type SponsorConfig struct {
	// BoostCap is the maximum additive boost for sponsored candidates.
	// The cap is what keeps sponsorship a tie-breaker rather than an
	// override. Default: 5.
	BoostCap float64 `json:"boost_cap" koanf:"boost_cap"`
}

// RankingConfig contains batch-ranking operational settings.
type RankingConfig struct {
	// Workers is the scoring concurrency. 0 means GOMAXPROCS.
	Workers int `json:"workers" koanf:"workers"`

	// MaxCandidates caps the batch size; surplus candidates are dropped
	// from the tail and reported as discarded. Default: 500.
	MaxCandidates int `json:"max_candidates" koanf:"max_candidates"`

	// ExcludeClosed discards candidates known to be closed right now.
	// Unknown open state is never treated as closed. Default: false.
	ExcludeClosed bool `json:"exclude_closed" koanf:"exclude_closed"`
}

// EngineConfig contains orchestration settings.
type EngineConfig struct {
	// FeedbackMaxAttempts bounds the optimistic read-modify-write retry
	// loop for concurrent profile updates. Default: 3.
	FeedbackMaxAttempts int `json:"feedback_max_attempts" koanf:"feedback_max_attempts"`

	// ProviderTimeout bounds a single similarity/stats provider call.
	// Default: 2s.
	ProviderTimeout time.Duration `json:"provider_timeout" koanf:"provider_timeout"`
}

// DefaultConfig returns a Config with the documented defaults.
func DefaultConfig() *Config {
	return &Config{
		Affinity: AffinityConfig{
			FavoriteMax: MaxBaseScore,
			FavoriteMin: 32,
			Neutral:     20,
			Disliked:    2,
		},
		Location: LocationConfig{
			GammaLow:    2.0,
			GammaMedium: 1.0,
			GammaHigh:   0.5,
		},
		Time: TimeConfig{
			Match:    MaxTimeScore,
			Neutral:  8,
			Mismatch: 3,
		},
		Feedback: FeedbackConfig{
			Favorite:  12,
			Neutral:   7,
			Disliked:  1,
			MinSample: 3,
		},
		Sponsor: SponsorConfig{
			BoostCap: 5,
		},
		Ranking: RankingConfig{
			Workers:       0,
			MaxCandidates: 500,
			ExcludeClosed: false,
		},
		Engine: EngineConfig{
			FeedbackMaxAttempts: 3,
			ProviderTimeout:     2 * time.Second,
		},
	}
}

// Validate checks the configuration for errors.
//
//nolint:gocyclo // validation needs to check many fields
func (c *Config) Validate() error {
	a := c.Affinity
	if a.Disliked < 0 {
		return fmt.Errorf("affinity.disliked must be non-negative, got %f", a.Disliked)
	}
	if a.Disliked >= a.Neutral {
		return fmt.Errorf("affinity levels must order disliked < neutral, got %f >= %f", a.Disliked, a.Neutral)
	}
	if a.Neutral >= a.FavoriteMin {
		return fmt.Errorf("affinity levels must order neutral < favorite_min, got %f >= %f", a.Neutral, a.FavoriteMin)
	}
	if a.FavoriteMin > a.FavoriteMax {
		return fmt.Errorf("affinity.favorite_min must be <= favorite_max, got %f > %f", a.FavoriteMin, a.FavoriteMax)
	}
	if a.FavoriteMax > MaxBaseScore {
		return fmt.Errorf("affinity.favorite_max must be <= %0.f, got %f", MaxBaseScore, a.FavoriteMax)
	}

	if c.Location.GammaLow <= 0 || c.Location.GammaMedium <= 0 || c.Location.GammaHigh <= 0 {
		return fmt.Errorf("location gammas must be positive, got %f/%f/%f",
			c.Location.GammaLow, c.Location.GammaMedium, c.Location.GammaHigh)
	}

	t := c.Time
	if t.Match > MaxTimeScore {
		return fmt.Errorf("time.match must be <= %0.f, got %f", MaxTimeScore, t.Match)
	}
	if t.Neutral <= 0 {
		return fmt.Errorf("time.neutral must be positive so empty preferences stay distinguishable from mismatch, got %f", t.Neutral)
	}
	if t.Mismatch < 0 || t.Mismatch >= t.Neutral || t.Neutral >= t.Match {
		return fmt.Errorf("time levels must order 0 <= mismatch < neutral < match, got %f/%f/%f", t.Mismatch, t.Neutral, t.Match)
	}

	f := c.Feedback
	if f.Disliked < 0 || f.Disliked >= f.Neutral || f.Neutral >= f.Favorite {
		return fmt.Errorf("feedback levels must order 0 <= disliked < neutral < favorite, got %f/%f/%f", f.Disliked, f.Neutral, f.Favorite)
	}
	if f.Favorite > MaxFeedbackScore {
		return fmt.Errorf("feedback.favorite must be <= %0.f, got %f", MaxFeedbackScore, f.Favorite)
	}
	if f.MinSample < 1 {
		return fmt.Errorf("feedback.min_sample must be positive, got %d", f.MinSample)
	}

	if c.Sponsor.BoostCap < 0 {
		return fmt.Errorf("sponsor.boost_cap must be non-negative, got %f", c.Sponsor.BoostCap)
	}

	if c.Ranking.Workers < 0 {
		return fmt.Errorf("ranking.workers must be non-negative, got %d", c.Ranking.Workers)
	}
	if c.Ranking.MaxCandidates < 1 {
		return fmt.Errorf("ranking.max_candidates must be positive, got %d", c.Ranking.MaxCandidates)
	}

	if c.Engine.FeedbackMaxAttempts < 1 {
		return fmt.Errorf("engine.feedback_max_attempts must be positive, got %d", c.Engine.FeedbackMaxAttempts)
	}
	if c.Engine.ProviderTimeout <= 0 {
		return fmt.Errorf("engine.provider_timeout must be positive, got %v", c.Engine.ProviderTimeout)
	}

	return nil
}

// Clone returns a deep copy of the configuration.
func (c *Config) Clone() *Config {
	// Direct field copy - all nested structs contain only value types.
	out := *c
	return &out
}

// gammaFor returns the falloff exponent for a distance tolerance level.
func (c *Config) gammaFor(tol profile.Tolerance) float64 {
	switch tol {
	case profile.ToleranceLow:
		return c.Location.GammaLow
	case profile.ToleranceHigh:
		return c.Location.GammaHigh
	default:
		return c.Location.GammaMedium
	}
}
