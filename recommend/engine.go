// Wayfinder - Activity Recommendation and Preference Learning Core
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/wayfinder

package recommend

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/tomtom215/wayfinder/internal/metrics"
	"github.com/tomtom215/wayfinder/internal/validation"
	"github.com/tomtom215/wayfinder/recommend/profile"
	"github.com/tomtom215/wayfinder/recommend/storage"
)

// Engine orchestrates the recommendation core: it loads profiles, gathers
// external signals, runs batch ranking, and folds feedback events back
// into stored profiles. It is safe for concurrent use.
//
// The Engine owns all I/O so the scorer and the profile transition stay
// pure and independently testable.
type Engine struct {
	cfg    *Config
	logger zerolog.Logger
	scorer *Scorer

	store      storage.ProfileStore
	similarity SimilarityProvider
	stats      StatsProvider
}

// ErrConflictRetriesExhausted is returned by SubmitFeedback when the
// optimistic update loses the version race on every attempt. The event
// itself is already journaled and is not lost.
var ErrConflictRetriesExhausted = errors.New("profile update retries exhausted")

// NewEngine creates a recommendation engine.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewEngine(cfg *Config, logger zerolog.Logger) (*Engine, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	scorer, err := NewScorer(cfg)
	if err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Engine{
		cfg:    scorer.cfg,
		logger: logger.With().Str("component", "recommend").Logger(),
		scorer: scorer,
	}, nil
}

// SetStore sets the profile store. Without a store, RankForUser scores
// against the default profile and SubmitFeedback returns ErrNoStore.
func (e *Engine) SetStore(store storage.ProfileStore) {
	e.store = store
}

// SetSimilarityProvider sets the collaborative signal source. Without a
// provider the collaborative component scores zero. Remote providers
// should be wrapped with NewResilientSimilarity so a degraded service
// trips a breaker instead of timing out on every candidate.
func (e *Engine) SetSimilarityProvider(p SimilarityProvider) {
	e.similarity = p
}

// SetStatsProvider sets the per-category rating aggregate source. Without
// one the feedback component uses list membership only.
func (e *Engine) SetStatsProvider(p StatsProvider) {
	e.stats = p
}

// Scorer returns the engine's scorer for callers that want direct pure
// scoring without profile loading or provider signals.
func (e *Engine) Scorer() *Scorer {
	return e.scorer
}

// RankForUser loads the user's profile and ranks the candidate batch
// against it. Users without a stored profile rank against the default
// profile; provider failures degrade the affected component to its
// absent value rather than failing the request.
func (e *Engine) RankForUser(ctx context.Context, userID string, cands []Candidate, rctx Context) (RankResult, error) {
	start := time.Now()
	requestID := uuid.NewString()
	log := e.logger.With().Str("request_id", requestID).Str("user_id", userID).Logger()

	prof := e.loadProfile(ctx, userID, log)

	res, err := e.scorer.Rank(ctx, cands, prof, rctx, e.inputsFunc(ctx, userID))
	if err != nil {
		log.Warn().Err(err).Msg("ranking aborted")
		return RankResult{}, err
	}
	res.RequestID = requestID

	metrics.RecordRank(time.Since(start), len(cands))
	for _, d := range res.Discarded {
		metrics.RecordDiscard(d.Reason)
	}

	log.Debug().
		Int("candidates", len(cands)).
		Int("ranked", len(res.Ranked)).
		Int("discarded", len(res.Discarded)).
		Dur("duration", time.Since(start)).
		Msg("ranked candidate batch")

	return res, nil
}

// loadProfile fetches the stored profile, falling back to the default
// profile for unknown users and for store failures. A degraded read must
// not take recommendations down with it.
func (e *Engine) loadProfile(ctx context.Context, userID string, log zerolog.Logger) profile.PreferenceProfile {
	if e.store == nil {
		metrics.RecordProfileLoad("default")
		return profile.DefaultProfile()
	}

	rec, err := e.store.Load(ctx, userID)
	switch {
	case errors.Is(err, storage.ErrNotFound):
		metrics.RecordProfileLoad("default")
		return profile.DefaultProfile()
	case err != nil:
		metrics.RecordProfileLoad("error")
		log.Warn().Err(err).Msg("profile load failed, using default profile")
		return profile.DefaultProfile()
	default:
		metrics.RecordProfileLoad("store")
		return rec.Profile
	}
}

// inputsFunc builds the per-candidate signal gatherer for one ranking
// request. Provider calls are bounded by the configured timeout and
// degrade to absent signals on failure.
func (e *Engine) inputsFunc(ctx context.Context, userID string) InputsFunc {
	if e.similarity == nil && e.stats == nil {
		return nil
	}

	return func(cand Candidate) ScoreInputs {
		var in ScoreInputs

		callCtx, cancel := context.WithTimeout(ctx, e.cfg.Engine.ProviderTimeout)
		defer cancel()

		if e.similarity != nil {
			if v, err := e.similarity.Similarity(callCtx, userID, cand); err == nil {
				in.Collaborative = v
				in.HasCollaborative = true
			}
		}

		if e.stats != nil {
			if st, err := e.stats.CategoryStats(callCtx, userID, cand.Category); err == nil {
				in.Stats = st
			}
		}

		return in
	}
}

// SubmitFeedback validates and journals a feedback event, then folds it
// into the stored profile under optimistic concurrency. The journal write
// comes first: once SubmitFeedback accepts an event it is durable even if
// every profile update attempt loses the version race.
func (e *Engine) SubmitFeedback(ctx context.Context, ev profile.FeedbackEvent) (storage.StoredProfile, error) {
	if e.store == nil {
		return storage.StoredProfile{}, ErrNoStore
	}

	log := e.logger.With().Str("event_id", ev.ID).Str("user_id", ev.UserID).Logger()

	if verr := validation.ValidateStruct(&ev); verr != nil {
		metrics.RecordFeedbackRejected()
		return storage.StoredProfile{}, fmt.Errorf("%w: %s", profile.ErrInvalidEvent, verr.Error())
	}

	if err := e.store.AppendEvent(ctx, ev); err != nil {
		return storage.StoredProfile{}, fmt.Errorf("journal feedback event: %w", err)
	}

	rec, err := e.applyWithRetry(ctx, ev, log)
	if err != nil {
		return storage.StoredProfile{}, err
	}

	metrics.RecordFeedback(ev.Rating.String())
	log.Debug().
		Str("category", ev.Category).
		Str("rating", ev.Rating.String()).
		Uint64("version", rec.Version).
		Msg("applied feedback event")

	return rec, nil
}

// applyWithRetry runs the optimistic read-apply-save loop. Each conflict
// re-reads the current profile and re-applies the event, so a concurrent
// writer's changes are never overwritten.
func (e *Engine) applyWithRetry(ctx context.Context, ev profile.FeedbackEvent, log zerolog.Logger) (storage.StoredProfile, error) {
	for attempt := 1; attempt <= e.cfg.Engine.FeedbackMaxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return storage.StoredProfile{}, err
		}

		current := profile.DefaultProfile()
		var version uint64

		rec, err := e.store.Load(ctx, ev.UserID)
		switch {
		case errors.Is(err, storage.ErrNotFound):
			// First feedback for this user creates the profile.
		case err != nil:
			return storage.StoredProfile{}, fmt.Errorf("load profile: %w", err)
		default:
			current = rec.Profile
			version = rec.Version
		}

		next, err := profile.Apply(current, ev)
		if err != nil {
			return storage.StoredProfile{}, err
		}

		saved, err := e.store.Save(ctx, ev.UserID, next, version)
		if err == nil {
			return saved, nil
		}
		if !errors.Is(err, storage.ErrVersionConflict) {
			return storage.StoredProfile{}, fmt.Errorf("save profile: %w", err)
		}

		metrics.RecordSaveConflict()
		log.Debug().Int("attempt", attempt).Msg("profile version conflict, retrying")
	}

	metrics.RecordFeedbackRetriesExhausted()
	return storage.StoredProfile{}, ErrConflictRetriesExhausted
}

// ReplayEvents rebuilds a profile by folding the user's journaled events
// over the default profile, oldest first. Useful for store recovery and
// for verifying that profile state matches its event history.
func (e *Engine) ReplayEvents(ctx context.Context, userID string) (profile.PreferenceProfile, error) {
	if e.store == nil {
		return profile.PreferenceProfile{}, ErrNoStore
	}

	events, err := e.store.Events(ctx, userID, 0)
	if err != nil {
		return profile.PreferenceProfile{}, fmt.Errorf("load events: %w", err)
	}

	prof := profile.DefaultProfile()
	for _, ev := range events {
		next, err := profile.Apply(prof, ev)
		if err != nil {
			// A journaled event that no longer validates is skipped, not
			// fatal: the journal may span vocabulary changes.
			continue
		}
		prof = next
	}

	return prof, nil
}
