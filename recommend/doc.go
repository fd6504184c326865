// Wayfinder - Activity Recommendation and Preference Learning Core
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/wayfinder

// Package recommend implements the activity recommendation core: scoring
// candidate activities against a learned preference profile, ranking
// candidate batches, and folding user feedback back into the profile.
//
// # Architecture
//
// The core is split along a purity boundary:
//
//   - Scorer: pure scoring. Score and Rank are deterministic for
//     identical inputs, read no clock, device state or network, and take
//     external signals only through ScoreInputs.
//   - profile.Apply: pure profile transition. One feedback event in, one
//     updated profile out, input untouched.
//   - Engine: all I/O. Loads profiles from storage, gathers provider
//     signals, journals feedback, and runs the optimistic update loop.
//
// # Scoring Model
//
// Five capped components sum to the final score in [0, 100]:
//
//   - Base interest match (0-40): category affinity with recency-weighted
//     favorites
//   - Location (0-20): distance falloff shaped by distance tolerance
//   - Time of day (0-15): alignment with preferred time buckets
//   - Feedback history (0-15): rating aggregates, or list membership
//   - Collaborative (0-10): pluggable similarity signal
//
// Sponsored candidates additionally receive a capped boost that affects
// ranking order but never the organic score, so paid placement can break
// near-ties without overriding relevance.
//
// # Usage
//
//	cfg := recommend.DefaultConfig()
//	engine, err := recommend.NewEngine(cfg, logger)
//	if err != nil {
//	    return err
//	}
//	engine.SetStore(store)
//
//	res, err := engine.RankForUser(ctx, userID, candidates,
//	    recommend.ContextAt(time.Now(), userLoc))
//
//	_, err = engine.SubmitFeedback(ctx,
//	    profile.NewFeedbackEvent(userID, "dining", profile.ThumbsUp, time.Now()))
//
// # Thread Safety
//
// Scorer and Engine are safe for concurrent use. Profiles and candidates
// are value types; nothing in the core mutates caller-owned data.
package recommend
