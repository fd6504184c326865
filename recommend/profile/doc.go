// Wayfinder - Activity Recommendation and Preference Learning Core
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/wayfinder

// Package profile defines the per-user preference profile and the pure
// feedback transition that mutates it.
//
// A PreferenceProfile is an immutable value: Apply never modifies its
// input, it returns a new profile with the event's effects folded in.
// Persistence, versioning, and concurrency control belong to the caller
// (see the storage package); this package is deterministic and performs
// no I/O.
//
// # Bounded Growth
//
// Category lists are bounded (10 favorites, 5 dislikes) and ordered
// oldest-first. Inserting past capacity evicts the oldest member, never
// the newest. Re-affirming a category moves it to the most-recent
// position so recency-sensitive scoring stays meaningful.
//
// # Tag Effects
//
// Feedback tags form a closed enum with a declarative effect table
// (tag -> field adjustment). Adding a new tag is a table entry, not a
// new branch scattered across the codebase.
package profile
