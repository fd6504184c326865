// Wayfinder - Activity Recommendation and Preference Learning Core
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/wayfinder

package profile

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Rating is the polarity of a feedback event.
type Rating int

const (
	// ThumbsUp marks a positive experience with the activity's category.
	ThumbsUp Rating = iota
	// ThumbsDown marks a negative experience.
	ThumbsDown
)

// String returns a human-readable name for the rating.
func (r Rating) String() string {
	switch r {
	case ThumbsUp:
		return "thumbs_up"
	case ThumbsDown:
		return "thumbs_down"
	default:
		return "unknown"
	}
}

// ParseRating converts a wire-format rating name to a Rating.
func ParseRating(s string) (Rating, error) {
	switch s {
	case "thumbs_up":
		return ThumbsUp, nil
	case "thumbs_down":
		return ThumbsDown, nil
	default:
		return 0, fmt.Errorf("unknown rating %q", s)
	}
}

// Tag is a member of the closed feedback tag vocabulary.
type Tag int

const (
	// TagTooExpensive lowers the budget tier and raises price sensitivity.
	TagTooExpensive Tag = iota
	// TagTooFar tightens distance tolerance and shrinks preferred distance.
	TagTooFar
	// TagTooCrowded carries no numeric effect.
	TagTooCrowded
	// TagBoring carries no numeric effect.
	TagBoring
	// TagBadWeather carries no numeric effect.
	TagBadWeather
	// TagGreatValue relaxes price sensitivity.
	TagGreatValue
	// TagConvenient tightens distance tolerance with a gentler floor.
	TagConvenient
	// TagLovedIt carries no numeric effect.
	TagLovedIt
	// TagOther is the free-text escape hatch and carries no scoring effect.
	TagOther
)

// String returns the wire-format name for the tag.
func (t Tag) String() string {
	switch t {
	case TagTooExpensive:
		return "too_expensive"
	case TagTooFar:
		return "too_far"
	case TagTooCrowded:
		return "too_crowded"
	case TagBoring:
		return "boring"
	case TagBadWeather:
		return "bad_weather"
	case TagGreatValue:
		return "great_value"
	case TagConvenient:
		return "convenient"
	case TagLovedIt:
		return "loved_it"
	case TagOther:
		return "other"
	default:
		return "unknown"
	}
}

// ParseTag converts a wire-format tag name to a Tag.
func ParseTag(s string) (Tag, error) {
	for t := TagTooExpensive; t <= TagOther; t++ {
		if t.String() == s {
			return t, nil
		}
	}
	return 0, fmt.Errorf("unknown feedback tag %q", s)
}

// tagEffect declares the numeric field adjustments a tag carries. Zero
// fields mean no effect; each entry is independently bounded when applied.
type tagEffect struct {
	priceSensitivity  *Sensitivity
	budgetDelta       int
	distanceTolerance *Tolerance
	distanceDelta     float64
	distanceFloor     float64
}

var (
	sensitivityLow    = SensitivityLow
	sensitivityHigh   = SensitivityHigh
	toleranceLowValue = ToleranceLow
)

// tagEffects is the effect table: adding a tag with numeric consequences
// is a new entry here, nothing else. Tags absent from the table affect
// category membership only.
var tagEffects = map[Tag]tagEffect{
	TagGreatValue: {
		priceSensitivity: &sensitivityLow,
	},
	TagTooExpensive: {
		budgetDelta:      -1,
		priceSensitivity: &sensitivityHigh,
	},
	TagConvenient: {
		distanceTolerance: &toleranceLowValue,
		distanceDelta:     -0.5,
		distanceFloor:     3.0,
	},
	TagTooFar: {
		distanceTolerance: &toleranceLowValue,
		distanceDelta:     -1.0,
		distanceFloor:     MinPreferredDistanceMiles,
	},
}

// FeedbackEvent is a single user rating for a completed activity's
// category. It is immutable once created and consumed exactly once by
// Apply. Notes are passed through for storage only and never influence
// scoring.
type FeedbackEvent struct {
	// ID uniquely identifies the event for journaling and tracing.
	ID string `json:"id" validate:"required"`

	// UserID is the user the event belongs to.
	UserID string `json:"user_id" validate:"required"`

	// Category is the activity category being rated (e.g. "dining").
	Category string `json:"category" validate:"required"`

	// Rating is the thumbs_up / thumbs_down polarity.
	Rating Rating `json:"rating" validate:"gte=0,lte=1"`

	// Tags qualify the rating; drawn from the closed vocabulary.
	Tags []Tag `json:"tags,omitempty" validate:"dive,gte=0,lte=8"`

	// Notes is optional free text, stored verbatim, ignored by scoring.
	Notes string `json:"notes,omitempty"`

	// Timestamp is when the user submitted the rating. Supplied by the
	// caller; the core does not read the clock.
	Timestamp time.Time `json:"timestamp" validate:"required"`
}

// NewFeedbackEvent builds a feedback event with a generated ID.
func NewFeedbackEvent(userID, category string, rating Rating, at time.Time, tags ...Tag) FeedbackEvent {
	return FeedbackEvent{
		ID:        uuid.NewString(),
		UserID:    userID,
		Category:  category,
		Rating:    rating,
		Tags:      tags,
		Timestamp: at,
	}
}

// ErrInvalidEvent reports a feedback event that cannot be applied.
var ErrInvalidEvent = errors.New("invalid feedback event")

// Apply folds a feedback event into a profile and returns the updated
// profile. It is pure: deterministic for a given (profile, event) pair,
// reads no clock or randomness, and never modifies its input.
//
// Rules, symmetric by polarity:
//   - thumbs_up adds the category to favorites (refreshing recency if
//     already present) and removes it from dislikes.
//   - thumbs_down adds the category to dislikes and removes it from
//     favorites.
//   - Both lists are FIFO-bounded: inserting past capacity evicts the
//     oldest member, never the newest.
//   - Tags apply their declared numeric adjustments, each independently
//     clamped to its floor or range.
func Apply(p PreferenceProfile, ev FeedbackEvent) (PreferenceProfile, error) {
	if ev.Category == "" {
		return p, fmt.Errorf("%w: empty category", ErrInvalidEvent)
	}
	if ev.Rating != ThumbsUp && ev.Rating != ThumbsDown {
		return p, fmt.Errorf("%w: rating %d out of range", ErrInvalidEvent, ev.Rating)
	}

	out := p.Clone()

	switch ev.Rating {
	case ThumbsUp:
		out.FavoriteCategories = addBounded(out.FavoriteCategories, ev.Category, MaxFavoriteCategories)
		out.DislikedCategories = removeCategory(out.DislikedCategories, ev.Category)
	case ThumbsDown:
		out.DislikedCategories = addBounded(out.DislikedCategories, ev.Category, MaxDislikedCategories)
		out.FavoriteCategories = removeCategory(out.FavoriteCategories, ev.Category)
	}

	for _, tag := range ev.Tags {
		applyTagEffect(&out, tag)
	}

	return out, nil
}

// applyTagEffect applies a single tag's declared adjustments with bounds.
func applyTagEffect(p *PreferenceProfile, tag Tag) {
	eff, ok := tagEffects[tag]
	if !ok {
		return
	}

	if eff.priceSensitivity != nil {
		p.PriceSensitivity = *eff.priceSensitivity
	}

	if eff.budgetDelta != 0 {
		p.BudgetLevel = clampInt(p.BudgetLevel+eff.budgetDelta, MinBudgetLevel, MaxBudgetLevel)
	}

	if eff.distanceTolerance != nil {
		p.DistanceTolerance = *eff.distanceTolerance
	}

	if eff.distanceDelta != 0 {
		// Each tag carries its own floor: max(floor, preferred + delta).
		next := p.PreferredDistanceMiles + eff.distanceDelta
		if next < eff.distanceFloor {
			next = eff.distanceFloor
		}
		if next < MinPreferredDistanceMiles {
			next = MinPreferredDistanceMiles
		}
		p.PreferredDistanceMiles = next
	}
}

// clampInt clamps v to [lo, hi].
func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
