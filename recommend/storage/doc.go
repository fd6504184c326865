// Wayfinder - Activity Recommendation and Preference Learning Core
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/wayfinder

// Package storage persists preference profiles and feedback event
// journals.
//
// Two implementations are provided: MemoryStore for tests and embedding
// applications with their own persistence, and BadgerStore for durable
// embedded storage across restarts.
//
// Profile writes use optimistic concurrency: every stored profile carries
// a monotonically increasing version, Save demands the version the caller
// read, and a mismatch returns ErrVersionConflict so the caller can
// re-read and re-apply. Feedback events are journaled independently of
// profile state, so an abandoned profile update never loses the event
// that triggered it.
package storage
