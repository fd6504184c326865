// Wayfinder - Activity Recommendation and Preference Learning Core
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/wayfinder

package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"

	"github.com/tomtom215/wayfinder/recommend/profile"
)

// Key prefixes for BadgerDB storage
const (
	profileKeyPrefix  = "profile:"
	feedbackKeyPrefix = "feedback:"
)

// BadgerStore implements ProfileStore using BadgerDB for durable storage.
// Profiles survive restarts; the feedback journal is append-only with
// keys ordered by event timestamp so iteration returns submission order.
type BadgerStore struct {
	db     *badger.DB
	ownsDB bool
}

// NewBadgerStore wraps an existing BadgerDB handle. The caller keeps
// ownership of the handle and is responsible for closing it.
func NewBadgerStore(db *badger.DB) *BadgerStore {
	return &BadgerStore{db: db}
}

// OpenBadgerStore opens (or creates) a BadgerDB at path and returns a
// store that owns the handle. Close releases it.
func OpenBadgerStore(path string) (*BadgerStore, error) {
	opts := badger.DefaultOptions(path).WithLogger(nil)
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("%w: open badger at %s: %v", ErrStore, path, err)
	}
	return &BadgerStore{db: db, ownsDB: true}, nil
}

// Close releases the underlying database when this store owns it.
func (s *BadgerStore) Close() error {
	if !s.ownsDB {
		return nil
	}
	return s.db.Close()
}

// profileKey builds the storage key for a user's profile record.
func profileKey(userID string) []byte {
	return []byte(profileKeyPrefix + userID)
}

// feedbackKey builds the journal key for one event. The zero-padded
// nanosecond timestamp keeps lexicographic key order equal to submission
// order; the event ID disambiguates same-instant events.
func feedbackKey(ev profile.FeedbackEvent) []byte {
	return []byte(fmt.Sprintf("%s%s:%020d:%s", feedbackKeyPrefix, ev.UserID, ev.Timestamp.UnixNano(), ev.ID))
}

// Load implements ProfileStore.
func (s *BadgerStore) Load(_ context.Context, userID string) (StoredProfile, error) {
	var rec StoredProfile

	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(profileKey(userID))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("%w: get profile: %v", ErrStore, err)
		}

		return item.Value(func(val []byte) error {
			if err := json.Unmarshal(val, &rec); err != nil {
				return fmt.Errorf("%w: unmarshal profile: %v", ErrStore, err)
			}
			return nil
		})
	})
	if err != nil {
		return StoredProfile{}, err
	}

	return rec, nil
}

// Save implements ProfileStore with optimistic concurrency. The version
// check and write happen inside one transaction, so concurrent savers
// cannot both succeed against the same expected version.
func (s *BadgerStore) Save(_ context.Context, userID string, prof profile.PreferenceProfile, expectedVersion uint64) (StoredProfile, error) {
	rec := StoredProfile{
		Profile:   prof.Clone(),
		Version:   expectedVersion + 1,
		UpdatedAt: time.Now().UTC(),
	}

	err := s.db.Update(func(txn *badger.Txn) error {
		key := profileKey(userID)

		item, err := txn.Get(key)
		switch {
		case errors.Is(err, badger.ErrKeyNotFound):
			if expectedVersion != 0 {
				return ErrVersionConflict
			}
		case err != nil:
			return fmt.Errorf("%w: get profile: %v", ErrStore, err)
		default:
			var current StoredProfile
			verr := item.Value(func(val []byte) error {
				return json.Unmarshal(val, &current)
			})
			if verr != nil {
				return fmt.Errorf("%w: unmarshal profile: %v", ErrStore, verr)
			}
			if current.Version != expectedVersion {
				return ErrVersionConflict
			}
		}

		data, err := json.Marshal(&rec)
		if err != nil {
			return fmt.Errorf("%w: marshal profile: %v", ErrStore, err)
		}
		return txn.Set(key, data)
	})
	if err != nil {
		return StoredProfile{}, err
	}

	return rec, nil
}

// AppendEvent implements ProfileStore.
func (s *BadgerStore) AppendEvent(_ context.Context, ev profile.FeedbackEvent) error {
	data, err := json.Marshal(&ev)
	if err != nil {
		return fmt.Errorf("%w: marshal event: %v", ErrStore, err)
	}

	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(feedbackKey(ev), data)
	})
}

// Events implements ProfileStore. Events come back oldest first; a
// positive limit returns the most recent limit events, still oldest
// first.
func (s *BadgerStore) Events(_ context.Context, userID string, limit int) ([]profile.FeedbackEvent, error) {
	var events []profile.FeedbackEvent

	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = true
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := []byte(feedbackKeyPrefix + userID + ":")
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			item := it.Item()

			var ev profile.FeedbackEvent
			err := item.Value(func(val []byte) error {
				return json.Unmarshal(val, &ev)
			})
			if err != nil {
				return fmt.Errorf("%w: unmarshal event: %v", ErrStore, err)
			}
			events = append(events, ev)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if limit > 0 && len(events) > limit {
		events = events[len(events)-limit:]
	}
	return events, nil
}
