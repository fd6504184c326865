// Wayfinder - Activity Recommendation and Preference Learning Core
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/wayfinder

package recommend

import (
	"errors"
	"fmt"
)

// ErrInvalidCandidate marks candidates missing attributes required by a
// requested score component. The ranker excludes such candidates and
// reports them; a malformed candidate never fails the batch.
var ErrInvalidCandidate = errors.New("invalid candidate data")

// ErrNoStore is returned by Engine operations that need a profile store
// when none was configured.
var ErrNoStore = errors.New("profile store not configured")

// InvalidCandidateError describes which attribute of a candidate was
// unusable. It wraps ErrInvalidCandidate for errors.Is checks.
type InvalidCandidateError struct {
	// CandidateID is the offending candidate, when known.
	CandidateID string

	// Field is the attribute that failed (e.g. "location", "distance_miles").
	Field string

	// Detail explains the failure.
	Detail string
}

// Error implements the error interface.
func (e *InvalidCandidateError) Error() string {
	if e.CandidateID == "" {
		return fmt.Sprintf("invalid candidate data: %s: %s", e.Field, e.Detail)
	}
	return fmt.Sprintf("invalid candidate data: candidate %s: %s: %s", e.CandidateID, e.Field, e.Detail)
}

// Unwrap ties the typed error to the ErrInvalidCandidate sentinel.
func (e *InvalidCandidateError) Unwrap() error {
	return ErrInvalidCandidate
}

// invalidCandidate builds an InvalidCandidateError for a candidate field.
func invalidCandidate(id, field, detail string) *InvalidCandidateError {
	return &InvalidCandidateError{CandidateID: id, Field: field, Detail: detail}
}
