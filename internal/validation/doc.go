// Wayfinder - Activity Recommendation and Preference Learning Core
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/wayfinder

// Package validation provides struct validation using go-playground/validator v10.
//
// The package wraps the go-playground/validator library behind a
// thread-safe singleton instance with human-readable error translation.
// Candidates and feedback events are untrusted input; the recommendation
// core routes both through this package before acting on them.
//
// # Quick Start
//
//	type FeedbackEvent struct {
//	    UserID   string `validate:"required"`
//	    Category string `validate:"required"`
//	    Rating   int    `validate:"gte=0,lte=1"`
//	}
//
//	if verr := validation.ValidateStruct(&ev); verr != nil {
//	    return fmt.Errorf("rejecting event: %w", verr)
//	}
//
// # Common Validation Tags
//
// String validations:
//   - required: Field must not be empty
//   - min=n / max=n: Length bounds
//
// Numeric validations:
//   - gte=n / lte=n: Inclusive range bounds
//   - gt=n / lt=n: Exclusive range bounds
//
// Slice validations:
//   - dive: Apply the following tags to each element
//
// # Thread Safety
//
// The singleton validator caches struct metadata and is safe for
// concurrent use across ranking workers.
package validation
