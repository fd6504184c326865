// Wayfinder - Activity Recommendation and Preference Learning Core
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/wayfinder

package recommend

import (
	"context"
	"time"

	"github.com/tomtom215/wayfinder/recommend/profile"
)

// Score component budgets. The five organic components sum to at most 100;
// the sponsor boost sits outside that budget and only nudges ranking order.
const (
	// MaxBaseScore is the interest-match component cap.
	MaxBaseScore = 40.0
	// MaxLocationScore is the distance component cap.
	MaxLocationScore = 20.0
	// MaxTimeScore is the time-of-day alignment component cap.
	MaxTimeScore = 15.0
	// MaxFeedbackScore is the historical-satisfaction component cap.
	MaxFeedbackScore = 15.0
	// MaxCollaborativeScore is the pluggable similarity component cap.
	MaxCollaborativeScore = 10.0
	// MaxFinalScore is the organic score ceiling.
	MaxFinalScore = 100.0
)

// Coordinates is a WGS84 point.
type Coordinates struct {
	// Latitude in degrees.
	Latitude float64 `json:"latitude" validate:"gte=-90,lte=90"`

	// Longitude in degrees.
	Longitude float64 `json:"longitude" validate:"gte=-180,lte=180"`
}

// Candidate is a single activity or place under consideration. Candidates
// arrive from an external places source already geocoded and
// distance-annotated, and are treated as untrusted input: the scorer
// validates every candidate before scoring it. Immutable per scoring call.
type Candidate struct {
	// ID uniquely identifies the candidate and is the deterministic
	// ranking tie-break.
	ID string `json:"id" validate:"required"`

	// Category is the activity category tag (e.g. "dining", "coffee").
	Category string `json:"category" validate:"required"`

	// Location is the candidate's coordinates. Nil means the source
	// failed to geocode it, which fails validation.
	Location *Coordinates `json:"location" validate:"required"`

	// PriceTier is the price band (0 = free .. 4 = $$$$).
	PriceTier int `json:"price_tier" validate:"gte=0,lte=4"`

	// Rating is the venue's aggregate rating (0.0-5.0). Nil means unrated.
	Rating *float64 `json:"rating,omitempty" validate:"omitempty,gte=0,lte=5"`

	// DistanceMiles is the precomputed distance from the user.
	DistanceMiles float64 `json:"distance_miles" validate:"gte=0"`

	// OpenNow reports whether the venue is currently open. Nil means
	// unknown; unknown is never treated as closed.
	OpenNow *bool `json:"open_now,omitempty"`

	// Sponsored marks paid placement, eligible for the bounded boost.
	Sponsored bool `json:"sponsored,omitempty"`
}

// Context carries the caller-supplied scoring context. The core never
// reads the system clock or device location itself.
type Context struct {
	// Now is the current time as observed by the caller.
	Now time.Time `json:"now" validate:"required"`

	// UserLocation is the user's current position.
	UserLocation Coordinates `json:"user_location"`

	// TimeOfDay is the bucket derived from Now. Use ContextAt to derive
	// it consistently.
	TimeOfDay profile.TimeBucket `json:"time_of_day" validate:"gte=0,lte=3"`
}

// ContextAt builds a Context for the given instant and position, deriving
// the time-of-day bucket from the instant's local hour.
func ContextAt(now time.Time, loc Coordinates) Context {
	return Context{
		Now:          now,
		UserLocation: loc,
		TimeOfDay:    profile.BucketForHour(now.Hour()),
	}
}

// CategoryStats is an optional externally aggregated rating history for a
// (user, category) pair, used to refine the feedback component beyond
// plain list membership.
type CategoryStats struct {
	// PositiveRatio is the share of thumbs_up among recorded ratings, in [0, 1].
	PositiveRatio float64 `json:"positive_ratio"`

	// SampleSize is how many ratings back the ratio.
	SampleSize int `json:"sample_size"`
}

// ScoreInputs carries the externally supplied signals for one candidate,
// gathered by the Engine so the scorer itself stays pure and I/O-free.
type ScoreInputs struct {
	// Collaborative is the similarity provider's signal in [0, 1].
	Collaborative float64

	// HasCollaborative reports whether a provider supplied a signal.
	// Absent scores zero rather than neutral: the component rewards
	// evidence, it does not presume it.
	HasCollaborative bool

	// Stats is the optional per-category rating aggregate.
	Stats *CategoryStats
}

// ScoreBreakdown is the per-component decomposition of a candidate's match
// score. It is a computation result derived from exactly one
// (candidate, profile, context) triple, not stored state.
type ScoreBreakdown struct {
	// Base is the interest-match component (0-40).
	Base float64 `json:"base"`

	// Location is the distance component (0-20).
	Location float64 `json:"location"`

	// Time is the time-of-day alignment component (0-15).
	Time float64 `json:"time"`

	// Feedback is the historical-satisfaction component (0-15).
	Feedback float64 `json:"feedback"`

	// Collaborative is the similarity component (0-10).
	Collaborative float64 `json:"collaborative"`

	// SponsorBoost is the additive placement nudge, outside the 100-point
	// budget. Capped by config; zero for organic candidates.
	SponsorBoost float64 `json:"sponsor_boost"`

	// Final is the sum of the five organic components, clamped to [0, 100].
	Final float64 `json:"final"`
}

// RankingScore is the value candidates are ordered by: the organic score
// plus the bounded sponsor nudge. Because the boost is capped, sponsorship
// can break near-ties but never overrides a clear organic quality gap.
func (b ScoreBreakdown) RankingScore() float64 {
	return b.Final + b.SponsorBoost
}

// TopComponent returns the name of the largest organic component, used to
// headline "why recommended" explanations.
func (b ScoreBreakdown) TopComponent() string {
	name, top := "base", b.Base
	if b.Location > top {
		name, top = "location", b.Location
	}
	if b.Time > top {
		name, top = "time", b.Time
	}
	if b.Feedback > top {
		name, top = "feedback", b.Feedback
	}
	if b.Collaborative > top {
		name = "collaborative"
	}
	return name
}

// Reason returns an interpretable explanation for the recommendation,
// derived from the dominant component.
func (b ScoreBreakdown) Reason() string {
	switch b.TopComponent() {
	case "location":
		return "close to you"
	case "time":
		return "fits this time of day"
	case "feedback":
		return "you have enjoyed this category"
	case "collaborative":
		return "popular with similar users"
	default:
		return "matches your interests"
	}
}

// RankedCandidate pairs a candidate with its score breakdown.
type RankedCandidate struct {
	// Candidate is the scored activity.
	Candidate Candidate `json:"candidate"`

	// Breakdown is the component decomposition behind the position.
	Breakdown ScoreBreakdown `json:"breakdown"`
}

// DiscardedCandidate reports a candidate excluded from ranking and why.
// Discards are reported, never silently swallowed, and never fail the batch.
type DiscardedCandidate struct {
	// Candidate is the excluded input.
	Candidate Candidate `json:"candidate"`

	// Err explains the exclusion.
	Err error `json:"-"`

	// Reason is the stable label for the exclusion (metrics, clients).
	Reason string `json:"reason"`
}

// RankResult is the outcome of ranking one candidate batch.
type RankResult struct {
	// Ranked is ordered by RankingScore descending, candidate ID ascending
	// on ties, so equal-scoring candidates keep a reproducible order.
	Ranked []RankedCandidate `json:"ranked"`

	// Discarded lists candidates that failed validation or filters.
	Discarded []DiscardedCandidate `json:"discarded,omitempty"`

	// RequestID is a unique identifier for tracing.
	RequestID string `json:"request_id,omitempty"`
}

// SimilarityProvider supplies the pluggable collaborative signal: how
// similar users rated this candidate's category or venue. Implementations
// return a value in [0, 1]; the scorer scales it onto the 10-point
// component. The core mandates no particular similarity algorithm.
type SimilarityProvider interface {
	// Similarity returns the collaborative signal for (user, candidate).
	Similarity(ctx context.Context, userID string, candidate Candidate) (float64, error)
}

// StatsProvider supplies the optional per-category rating aggregate
// consumed by the feedback component. Implementations may return a nil
// stats pointer when no history exists.
type StatsProvider interface {
	// CategoryStats returns the rating aggregate for (user, category).
	CategoryStats(ctx context.Context, userID, category string) (*CategoryStats, error)
}
