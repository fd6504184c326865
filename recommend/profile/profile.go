// Wayfinder - Activity Recommendation and Preference Learning Core
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/wayfinder

package profile

import "slices"

// Capacity and floor invariants for preference profiles.
const (
	// MaxFavoriteCategories bounds the favorite list; oldest evicted first.
	MaxFavoriteCategories = 10

	// MaxDislikedCategories bounds the disliked list; oldest evicted first.
	MaxDislikedCategories = 5

	// MinPreferredDistanceMiles is the hard floor for preferred distance.
	// No feedback sequence may drive the preference below this.
	MinPreferredDistanceMiles = 2.0

	// MinBudgetLevel and MaxBudgetLevel bound the budget tier (0 = free, 4 = $$$$).
	MinBudgetLevel = 0
	MaxBudgetLevel = 4

	// DefaultPreferredDistanceMiles is the preferred distance for new profiles.
	DefaultPreferredDistanceMiles = 5.0

	// DefaultBudgetLevel is the budget tier for new profiles.
	DefaultBudgetLevel = 2
)

// Sensitivity expresses how strongly a user reacts to a signal (price).
type Sensitivity int

const (
	// SensitivityLow indicates the user is relaxed about the signal.
	SensitivityLow Sensitivity = iota
	// SensitivityMedium is the default sensitivity.
	SensitivityMedium
	// SensitivityHigh indicates the user reacts strongly to the signal.
	SensitivityHigh
)

// String returns a human-readable name for the sensitivity level.
func (s Sensitivity) String() string {
	switch s {
	case SensitivityLow:
		return "low"
	case SensitivityMedium:
		return "medium"
	case SensitivityHigh:
		return "high"
	default:
		return "unknown"
	}
}

// Tolerance expresses how much of a cost (distance) a user will absorb.
type Tolerance int

const (
	// ToleranceLow indicates the user wants nearby options only.
	ToleranceLow Tolerance = iota
	// ToleranceMedium is the default tolerance.
	ToleranceMedium
	// ToleranceHigh indicates the user will travel further for a good match.
	ToleranceHigh
)

// String returns a human-readable name for the tolerance level.
func (t Tolerance) String() string {
	switch t {
	case ToleranceLow:
		return "low"
	case ToleranceMedium:
		return "medium"
	case ToleranceHigh:
		return "high"
	default:
		return "unknown"
	}
}

// TimeBucket is a coarse time-of-day bucket for time preferences.
type TimeBucket int

const (
	// BucketMorning covers 05:00-11:59.
	BucketMorning TimeBucket = iota
	// BucketAfternoon covers 12:00-16:59.
	BucketAfternoon
	// BucketEvening covers 17:00-21:59.
	BucketEvening
	// BucketNight covers 22:00-04:59.
	BucketNight
)

// String returns a human-readable name for the time bucket.
func (b TimeBucket) String() string {
	switch b {
	case BucketMorning:
		return "morning"
	case BucketAfternoon:
		return "afternoon"
	case BucketEvening:
		return "evening"
	case BucketNight:
		return "night"
	default:
		return "unknown"
	}
}

// BucketForHour maps an hour of day (0-23) to its time bucket.
func BucketForHour(hour int) TimeBucket {
	switch {
	case hour >= 5 && hour < 12:
		return BucketMorning
	case hour >= 12 && hour < 17:
		return BucketAfternoon
	case hour >= 17 && hour < 22:
		return BucketEvening
	default:
		return BucketNight
	}
}

// PreferenceProfile is the durable, per-user learned-preference record.
// It is the sole mutable entity in the recommendation core, and is mutated
// only through Apply, which returns a new value. The zero value is not a
// valid profile; use DefaultProfile for first use.
type PreferenceProfile struct {
	// PreferredDistanceMiles is how far the user is willing to travel.
	// Never below MinPreferredDistanceMiles.
	PreferredDistanceMiles float64 `json:"preferred_distance_miles" koanf:"preferred_distance_miles"`

	// BudgetLevel is the preferred price tier (0 = free .. 4 = $$$$).
	BudgetLevel int `json:"budget_level" koanf:"budget_level"`

	// FavoriteCategories is an ordered set, oldest first, capacity
	// MaxFavoriteCategories.
	FavoriteCategories []string `json:"favorite_categories" koanf:"favorite_categories"`

	// DislikedCategories is an ordered set, oldest first, capacity
	// MaxDislikedCategories.
	DislikedCategories []string `json:"disliked_categories" koanf:"disliked_categories"`

	// PriceSensitivity expresses reaction strength to price.
	PriceSensitivity Sensitivity `json:"price_sensitivity" koanf:"price_sensitivity"`

	// DistanceTolerance shapes the location score falloff.
	DistanceTolerance Tolerance `json:"distance_tolerance" koanf:"distance_tolerance"`

	// TimePreferences is the set of time-of-day buckets the user favors.
	// Empty means no stated preference, which scores as neutral, never as
	// a negative preference.
	TimePreferences []TimeBucket `json:"time_preferences" koanf:"time_preferences"`
}

// DefaultProfile returns the documented first-use profile: 5.0 mile
// preferred distance, budget tier 2, no favorites or dislikes, medium
// price sensitivity and distance tolerance, no time preferences.
func DefaultProfile() PreferenceProfile {
	return PreferenceProfile{
		PreferredDistanceMiles: DefaultPreferredDistanceMiles,
		BudgetLevel:            DefaultBudgetLevel,
		PriceSensitivity:       SensitivityMedium,
		DistanceTolerance:      ToleranceMedium,
	}
}

// Clone returns a deep copy of the profile. Apply uses this to keep the
// input untouched.
func (p PreferenceProfile) Clone() PreferenceProfile {
	out := p
	out.FavoriteCategories = slices.Clone(p.FavoriteCategories)
	out.DislikedCategories = slices.Clone(p.DislikedCategories)
	out.TimePreferences = slices.Clone(p.TimePreferences)
	return out
}

// IsFavorite reports whether category is in the favorite list.
func (p PreferenceProfile) IsFavorite(category string) bool {
	return slices.Contains(p.FavoriteCategories, category)
}

// IsDisliked reports whether category is in the disliked list.
func (p PreferenceProfile) IsDisliked(category string) bool {
	return slices.Contains(p.DislikedCategories, category)
}

// FavoriteRecency returns the recency rank of category within the favorite
// list: 0 for the oldest favorite through len-1 for the most recent, and
// ok=false when the category is not a favorite.
func (p PreferenceProfile) FavoriteRecency(category string) (rank int, ok bool) {
	idx := slices.Index(p.FavoriteCategories, category)
	if idx < 0 {
		return 0, false
	}
	return idx, true
}

// PrefersBucket reports whether the bucket is in the time preference set.
func (p PreferenceProfile) PrefersBucket(b TimeBucket) bool {
	return slices.Contains(p.TimePreferences, b)
}

// addBounded inserts category at the most-recent end of list, moving it
// there if already present, and evicts the oldest member when the list
// exceeds capacity. Returns the updated list.
func addBounded(list []string, category string, capacity int) []string {
	if idx := slices.Index(list, category); idx >= 0 {
		list = slices.Delete(list, idx, idx+1)
	}
	list = append(list, category)
	if len(list) > capacity {
		list = slices.Delete(list, 0, len(list)-capacity)
	}
	return list
}

// removeCategory deletes category from list if present.
func removeCategory(list []string, category string) []string {
	if idx := slices.Index(list, category); idx >= 0 {
		list = slices.Delete(list, idx, idx+1)
	}
	return list
}
