// Wayfinder - Activity Recommendation and Preference Learning Core
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/wayfinder

package storage

import (
	"context"
	"sync"
	"time"

	"github.com/tomtom215/wayfinder/recommend/profile"
)

// MemoryStore is an in-memory ProfileStore. Suitable for tests and for
// embedding applications that handle durability themselves. Safe for
// concurrent use.
type MemoryStore struct {
	mu       sync.RWMutex
	profiles map[string]StoredProfile
	journal  map[string][]profile.FeedbackEvent
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		profiles: make(map[string]StoredProfile),
		journal:  make(map[string][]profile.FeedbackEvent),
	}
}

// Load implements ProfileStore.
func (s *MemoryStore) Load(_ context.Context, userID string) (StoredProfile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.profiles[userID]
	if !ok {
		return StoredProfile{}, ErrNotFound
	}
	rec.Profile = rec.Profile.Clone()
	return rec, nil
}

// Save implements ProfileStore with optimistic concurrency.
func (s *MemoryStore) Save(_ context.Context, userID string, prof profile.PreferenceProfile, expectedVersion uint64) (StoredProfile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, exists := s.profiles[userID]
	switch {
	case !exists && expectedVersion != 0:
		return StoredProfile{}, ErrVersionConflict
	case exists && current.Version != expectedVersion:
		return StoredProfile{}, ErrVersionConflict
	}

	rec := StoredProfile{
		Profile:   prof.Clone(),
		Version:   expectedVersion + 1,
		UpdatedAt: time.Now().UTC(),
	}
	s.profiles[userID] = rec

	rec.Profile = rec.Profile.Clone()
	return rec, nil
}

// AppendEvent implements ProfileStore.
func (s *MemoryStore) AppendEvent(_ context.Context, ev profile.FeedbackEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.journal[ev.UserID] = append(s.journal[ev.UserID], ev)
	return nil
}

// Events implements ProfileStore.
func (s *MemoryStore) Events(_ context.Context, userID string, limit int) ([]profile.FeedbackEvent, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	events := s.journal[userID]
	if limit > 0 && len(events) > limit {
		events = events[len(events)-limit:]
	}

	out := make([]profile.FeedbackEvent, len(events))
	copy(out, events)
	return out, nil
}
