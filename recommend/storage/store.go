// Wayfinder - Activity Recommendation and Preference Learning Core
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/wayfinder

package storage

import (
	"context"
	"errors"
	"time"

	"github.com/tomtom215/wayfinder/recommend/profile"
)

// Sentinel errors returned by profile stores.
var (
	// ErrNotFound is returned by Load for users without a stored profile.
	// Callers fall back to profile.DefaultProfile.
	ErrNotFound = errors.New("profile not found")

	// ErrVersionConflict is returned by Save when the expected version no
	// longer matches the stored one. The caller re-reads and re-applies.
	ErrVersionConflict = errors.New("profile version conflict")

	// ErrStore wraps unexpected backend failures.
	ErrStore = errors.New("profile store error")
)

// StoredProfile pairs a profile with its concurrency version.
type StoredProfile struct {
	// Profile is the persisted preference state.
	Profile profile.PreferenceProfile `json:"profile"`

	// Version increases by one on every successful Save. Version 0 is
	// never stored; it is the expected version for initial creation.
	Version uint64 `json:"version"`

	// UpdatedAt is when the profile was last written.
	UpdatedAt time.Time `json:"updated_at"`
}

// ProfileStore is the persistence contract for preference profiles and
// their feedback journals. Implementations must be safe for concurrent
// use.
type ProfileStore interface {
	// Load returns the stored profile for userID, or ErrNotFound.
	Load(ctx context.Context, userID string) (StoredProfile, error)

	// Save writes prof for userID if the stored version still equals
	// expectedVersion, and returns the new stored record. expectedVersion
	// 0 creates the profile and fails with ErrVersionConflict when one
	// already exists.
	Save(ctx context.Context, userID string, prof profile.PreferenceProfile, expectedVersion uint64) (StoredProfile, error)

	// AppendEvent journals a feedback event. The journal is append-only
	// and independent of profile state: an event is durable even when the
	// profile update it triggers is later abandoned.
	AppendEvent(ctx context.Context, ev profile.FeedbackEvent) error

	// Events returns the journaled events for userID in submission order,
	// oldest first. limit <= 0 returns all events.
	Events(ctx context.Context, userID string, limit int) ([]profile.FeedbackEvent, error)
}
