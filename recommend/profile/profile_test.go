// Wayfinder - Activity Recommendation and Preference Learning Core
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/wayfinder

package profile

import (
	"fmt"
	"testing"
)

func TestDefaultProfile(t *testing.T) {
	p := DefaultProfile()

	t.Run("documented first-use values", func(t *testing.T) {
		if p.PreferredDistanceMiles != DefaultPreferredDistanceMiles {
			t.Errorf("PreferredDistanceMiles = %f, want %f", p.PreferredDistanceMiles, DefaultPreferredDistanceMiles)
		}
		if p.BudgetLevel != DefaultBudgetLevel {
			t.Errorf("BudgetLevel = %d, want %d", p.BudgetLevel, DefaultBudgetLevel)
		}
		if p.PriceSensitivity != SensitivityMedium {
			t.Errorf("PriceSensitivity = %v, want medium", p.PriceSensitivity)
		}
		if p.DistanceTolerance != ToleranceMedium {
			t.Errorf("DistanceTolerance = %v, want medium", p.DistanceTolerance)
		}
	})

	t.Run("empty lists", func(t *testing.T) {
		if len(p.FavoriteCategories) != 0 {
			t.Errorf("FavoriteCategories = %v, want empty", p.FavoriteCategories)
		}
		if len(p.DislikedCategories) != 0 {
			t.Errorf("DislikedCategories = %v, want empty", p.DislikedCategories)
		}
		if len(p.TimePreferences) != 0 {
			t.Errorf("TimePreferences = %v, want empty", p.TimePreferences)
		}
	})
}

func TestClone_Independence(t *testing.T) {
	p := DefaultProfile()
	p.FavoriteCategories = []string{"dining", "coffee"}
	p.TimePreferences = []TimeBucket{BucketEvening}

	clone := p.Clone()
	clone.FavoriteCategories[0] = "hiking"
	clone.TimePreferences[0] = BucketMorning

	if p.FavoriteCategories[0] != "dining" {
		t.Errorf("mutating clone changed original favorites: %v", p.FavoriteCategories)
	}
	if p.TimePreferences[0] != BucketEvening {
		t.Errorf("mutating clone changed original time preferences: %v", p.TimePreferences)
	}
}

func TestBucketForHour(t *testing.T) {
	tests := []struct {
		hour     int
		expected TimeBucket
	}{
		{0, BucketNight},
		{4, BucketNight},
		{5, BucketMorning},
		{11, BucketMorning},
		{12, BucketAfternoon},
		{16, BucketAfternoon},
		{17, BucketEvening},
		{21, BucketEvening},
		{22, BucketNight},
		{23, BucketNight},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("hour %d", tt.hour), func(t *testing.T) {
			if got := BucketForHour(tt.hour); got != tt.expected {
				t.Errorf("BucketForHour(%d) = %v, want %v", tt.hour, got, tt.expected)
			}
		})
	}
}

func TestAddBounded(t *testing.T) {
	t.Run("appends at most-recent end", func(t *testing.T) {
		list := addBounded([]string{"a", "b"}, "c", 5)
		want := []string{"a", "b", "c"}
		if !equalStrings(list, want) {
			t.Errorf("list = %v, want %v", list, want)
		}
	})

	t.Run("re-adding moves to most-recent end", func(t *testing.T) {
		list := addBounded([]string{"a", "b", "c"}, "a", 5)
		want := []string{"b", "c", "a"}
		if !equalStrings(list, want) {
			t.Errorf("list = %v, want %v", list, want)
		}
	})

	t.Run("evicts oldest past capacity", func(t *testing.T) {
		list := []string{"a", "b", "c"}
		list = addBounded(list, "d", 3)
		want := []string{"b", "c", "d"}
		if !equalStrings(list, want) {
			t.Errorf("list = %v, want %v", list, want)
		}
	})

	t.Run("never exceeds capacity under sustained inserts", func(t *testing.T) {
		var list []string
		for i := 0; i < 50; i++ {
			list = addBounded(list, fmt.Sprintf("cat%d", i), MaxFavoriteCategories)
			if len(list) > MaxFavoriteCategories {
				t.Fatalf("list grew to %d, cap is %d", len(list), MaxFavoriteCategories)
			}
		}
		// Survivors are the most recent inserts, oldest first.
		if list[0] != "cat40" || list[len(list)-1] != "cat49" {
			t.Errorf("list = %v, want cat40..cat49", list)
		}
	})
}

func TestFavoriteRecency(t *testing.T) {
	p := DefaultProfile()
	p.FavoriteCategories = []string{"oldest", "middle", "newest"}

	tests := []struct {
		category string
		rank     int
		ok       bool
	}{
		{"oldest", 0, true},
		{"middle", 1, true},
		{"newest", 2, true},
		{"absent", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.category, func(t *testing.T) {
			rank, ok := p.FavoriteRecency(tt.category)
			if rank != tt.rank || ok != tt.ok {
				t.Errorf("FavoriteRecency(%q) = (%d, %v), want (%d, %v)", tt.category, rank, ok, tt.rank, tt.ok)
			}
		})
	}
}

func TestEnumStrings(t *testing.T) {
	tests := []struct {
		name     string
		got      string
		expected string
	}{
		{"sensitivity low", SensitivityLow.String(), "low"},
		{"sensitivity high", SensitivityHigh.String(), "high"},
		{"sensitivity unknown", Sensitivity(99).String(), "unknown"},
		{"tolerance medium", ToleranceMedium.String(), "medium"},
		{"tolerance unknown", Tolerance(-1).String(), "unknown"},
		{"bucket morning", BucketMorning.String(), "morning"},
		{"bucket night", BucketNight.String(), "night"},
		{"bucket unknown", TimeBucket(99).String(), "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.expected {
				t.Errorf("String() = %q, want %q", tt.got, tt.expected)
			}
		})
	}
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
