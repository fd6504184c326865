// Wayfinder - Activity Recommendation and Preference Learning Core
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/wayfinder

package recommend

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	t.Run("validates", func(t *testing.T) {
		if err := cfg.Validate(); err != nil {
			t.Errorf("DefaultConfig().Validate() = %v", err)
		}
	})

	t.Run("affinity levels ordered", func(t *testing.T) {
		a := cfg.Affinity
		if !(a.Disliked < a.Neutral && a.Neutral < a.FavoriteMin && a.FavoriteMin <= a.FavoriteMax) {
			t.Errorf("affinity levels not ordered: %+v", a)
		}
		if a.FavoriteMax != MaxBaseScore {
			t.Errorf("FavoriteMax = %f, want component cap %f", a.FavoriteMax, MaxBaseScore)
		}
	})

	t.Run("time levels ordered", func(t *testing.T) {
		tc := cfg.Time
		if !(tc.Mismatch < tc.Neutral && tc.Neutral < tc.Match) {
			t.Errorf("time levels not ordered: %+v", tc)
		}
	})

	t.Run("component caps respected", func(t *testing.T) {
		if cfg.Time.Match > MaxTimeScore {
			t.Errorf("Time.Match = %f exceeds cap", cfg.Time.Match)
		}
		if cfg.Feedback.Favorite > MaxFeedbackScore {
			t.Errorf("Feedback.Favorite = %f exceeds cap", cfg.Feedback.Favorite)
		}
	})

	t.Run("operational defaults sane", func(t *testing.T) {
		if cfg.Ranking.MaxCandidates <= 0 {
			t.Errorf("MaxCandidates = %d, want > 0", cfg.Ranking.MaxCandidates)
		}
		if cfg.Engine.FeedbackMaxAttempts <= 0 {
			t.Errorf("FeedbackMaxAttempts = %d, want > 0", cfg.Engine.FeedbackMaxAttempts)
		}
		if cfg.Engine.ProviderTimeout <= 0 {
			t.Errorf("ProviderTimeout = %v, want > 0", cfg.Engine.ProviderTimeout)
		}
	})
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"negative disliked affinity", func(c *Config) { c.Affinity.Disliked = -1 }},
		{"disliked above neutral", func(c *Config) { c.Affinity.Disliked = 25 }},
		{"neutral above favorite min", func(c *Config) { c.Affinity.Neutral = 35 }},
		{"favorite min above max", func(c *Config) { c.Affinity.FavoriteMin = 41 }},
		{"favorite max above cap", func(c *Config) { c.Affinity.FavoriteMax = 50; c.Affinity.FavoriteMin = 45 }},
		{"zero gamma", func(c *Config) { c.Location.GammaMedium = 0 }},
		{"negative gamma", func(c *Config) { c.Location.GammaLow = -2 }},
		{"time match above cap", func(c *Config) { c.Time.Match = 16 }},
		{"zero time neutral", func(c *Config) { c.Time.Neutral = 0 }},
		{"time mismatch above neutral", func(c *Config) { c.Time.Mismatch = 9 }},
		{"feedback levels inverted", func(c *Config) { c.Feedback.Disliked = 8 }},
		{"feedback favorite above cap", func(c *Config) { c.Feedback.Favorite = 16 }},
		{"zero min sample", func(c *Config) { c.Feedback.MinSample = 0 }},
		{"negative boost cap", func(c *Config) { c.Sponsor.BoostCap = -1 }},
		{"negative workers", func(c *Config) { c.Ranking.Workers = -1 }},
		{"zero max candidates", func(c *Config) { c.Ranking.MaxCandidates = 0 }},
		{"zero feedback attempts", func(c *Config) { c.Engine.FeedbackMaxAttempts = 0 }},
		{"zero provider timeout", func(c *Config) { c.Engine.ProviderTimeout = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("Validate() = nil, want error")
			}
		})
	}
}

func TestConfig_Clone(t *testing.T) {
	cfg := DefaultConfig()
	clone := cfg.Clone()

	clone.Sponsor.BoostCap = 99
	clone.Ranking.Workers = 7

	if cfg.Sponsor.BoostCap == 99 || cfg.Ranking.Workers == 7 {
		t.Error("mutating clone changed original config")
	}
}

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := loadConfigFrom("")
	if err != nil {
		t.Fatalf("loadConfigFrom() error = %v", err)
	}

	def := DefaultConfig()
	if cfg.Affinity != def.Affinity || cfg.Sponsor != def.Sponsor || cfg.Ranking != def.Ranking {
		t.Errorf("loaded config = %+v, want defaults", cfg)
	}
}

func TestLoadConfigFile_YAMLOverrides(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "wayfinder.yaml")

	yaml := `sponsor:
  boost_cap: 2.5
ranking:
  workers: 4
  exclude_closed: true
`
	if err := os.WriteFile(path, []byte(yaml), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := LoadConfigFile(path)
	if err != nil {
		t.Fatalf("LoadConfigFile() error = %v", err)
	}

	if cfg.Sponsor.BoostCap != 2.5 {
		t.Errorf("BoostCap = %f, want 2.5", cfg.Sponsor.BoostCap)
	}
	if cfg.Ranking.Workers != 4 {
		t.Errorf("Workers = %d, want 4", cfg.Ranking.Workers)
	}
	if !cfg.Ranking.ExcludeClosed {
		t.Error("ExcludeClosed = false, want true")
	}
	// Untouched sections keep their defaults.
	if cfg.Affinity != DefaultConfig().Affinity {
		t.Errorf("Affinity = %+v, want defaults", cfg.Affinity)
	}
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	t.Setenv("WAYFINDER_SPONSOR_BOOST_CAP", "1.5")
	t.Setenv("WAYFINDER_RANKING_MAX_CANDIDATES", "50")
	t.Setenv("UNRELATED_VAR", "ignored")

	cfg, err := loadConfigFrom("")
	if err != nil {
		t.Fatalf("loadConfigFrom() error = %v", err)
	}

	if cfg.Sponsor.BoostCap != 1.5 {
		t.Errorf("BoostCap = %f, want env override 1.5", cfg.Sponsor.BoostCap)
	}
	if cfg.Ranking.MaxCandidates != 50 {
		t.Errorf("MaxCandidates = %d, want env override 50", cfg.Ranking.MaxCandidates)
	}
}

func TestLoadConfigFile_InvalidRejected(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "wayfinder.yaml")

	// Inverted affinity ordering must fail validation.
	yaml := `affinity:
  neutral: 39
`
	if err := os.WriteFile(path, []byte(yaml), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	if _, err := LoadConfigFile(path); err == nil {
		t.Error("LoadConfigFile() = nil error for invalid config")
	}
}

func TestLoadConfigFile_Missing(t *testing.T) {
	if _, err := LoadConfigFile(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("LoadConfigFile() = nil error for missing file")
	}
}

func TestEnvTransformFunc(t *testing.T) {
	tests := []struct {
		key      string
		expected string
	}{
		{"WAYFINDER_SPONSOR_BOOST_CAP", "sponsor.boost_cap"},
		{"WAYFINDER_RANKING_WORKERS", "ranking.workers"},
		{"WAYFINDER_AFFINITY_FAVORITE_MAX", "affinity.favorite_max"},
		{"WAYFINDER_PROVIDER_TIMEOUT", "engine.provider_timeout"},
		{"WAYFINDER_UNKNOWN_KEY", ""},
		{"PATH", ""},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			if got := envTransformFunc(tt.key); got != tt.expected {
				t.Errorf("envTransformFunc(%q) = %q, want %q", tt.key, got, tt.expected)
			}
		})
	}
}
