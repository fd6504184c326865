// Wayfinder - Activity Recommendation and Preference Learning Core
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/wayfinder

package recommend

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths lists the paths where config files are searched in
// order of priority. The first file found wins.
var DefaultConfigPaths = []string{
	"wayfinder.yaml",
	"wayfinder.yml",
	"/etc/wayfinder/config.yaml",
	"/etc/wayfinder/config.yml",
}

// ConfigPathEnvVar overrides the config file search path.
const ConfigPathEnvVar = "WAYFINDER_CONFIG_PATH"

// envPrefix namespaces the tunable environment variables.
const envPrefix = "WAYFINDER_"

// LoadConfig loads the engine configuration with layered sources:
//  1. Defaults: DefaultConfig values
//  2. Config file: optional YAML file, first hit in DefaultConfigPaths
//  3. Environment variables: WAYFINDER_* overrides, highest priority
//
// Precedence is ENV > file > defaults. The merged configuration is
// validated before being returned.
func LoadConfig() (*Config, error) {
	return loadConfigFrom(findConfigFile())
}

// LoadConfigFile loads configuration from an explicit YAML file layered
// over the defaults, with environment overrides on top.
func LoadConfigFile(path string) (*Config, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("config file %s: %w", path, err)
	}
	return loadConfigFrom(path)
}

func loadConfigFrom(configPath string) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(DefaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// findConfigFile searches for a config file in the default paths.
func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}

	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// envTransformFunc maps WAYFINDER_* environment variables to koanf config
// paths. Unmapped keys return empty string so random environment variables
// never pollute the configuration.
//
// Examples:
//   - WAYFINDER_SPONSOR_BOOST_CAP -> sponsor.boost_cap
//   - WAYFINDER_RANKING_WORKERS -> ranking.workers
func envTransformFunc(key string) string {
	if !strings.HasPrefix(key, envPrefix) {
		return ""
	}
	key = strings.ToLower(strings.TrimPrefix(key, envPrefix))

	envMappings := map[string]string{
		// Affinity levels
		"affinity_favorite_max": "affinity.favorite_max",
		"affinity_favorite_min": "affinity.favorite_min",
		"affinity_neutral":      "affinity.neutral",
		"affinity_disliked":     "affinity.disliked",

		// Location falloff exponents
		"location_gamma_low":    "location.gamma_low",
		"location_gamma_medium": "location.gamma_medium",
		"location_gamma_high":   "location.gamma_high",

		// Time-of-day levels
		"time_match":    "time.match",
		"time_neutral":  "time.neutral",
		"time_mismatch": "time.mismatch",

		// Feedback fallback levels
		"feedback_favorite":   "feedback.favorite",
		"feedback_neutral":    "feedback.neutral",
		"feedback_disliked":   "feedback.disliked",
		"feedback_min_sample": "feedback.min_sample",

		// Sponsor boost
		"sponsor_boost_cap": "sponsor.boost_cap",

		// Batch ranking
		"ranking_workers":        "ranking.workers",
		"ranking_max_candidates": "ranking.max_candidates",
		"ranking_exclude_closed": "ranking.exclude_closed",

		// Engine orchestration
		"feedback_max_attempts": "engine.feedback_max_attempts",
		"provider_timeout":      "engine.provider_timeout",
	}

	if mapped, ok := envMappings[key]; ok {
		return mapped
	}
	return ""
}
