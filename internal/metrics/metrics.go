// Wayfinder - Activity Recommendation and Preference Learning Core
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/wayfinder

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Prometheus instrumentation for the recommendation core:
// - Batch ranking throughput, latency and discard reasons
// - Profile store reads and optimistic-write conflicts
// - Feedback event processing
// - Similarity provider health

var (
	// Ranking Metrics
	RankRequestsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "wayfinder_rank_requests_total",
			Help: "Total number of batch ranking requests",
		},
	)

	RankDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "wayfinder_rank_duration_seconds",
			Help:    "Duration of batch ranking in seconds",
			Buckets: []float64{0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		},
	)

	RankBatchSize = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "wayfinder_rank_batch_size",
			Help:    "Number of candidates per ranking request",
			Buckets: []float64{1, 5, 10, 25, 50, 100, 250, 500, 1000},
		},
	)

	CandidatesDiscarded = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wayfinder_candidates_discarded_total",
			Help: "Total number of candidates excluded from ranking",
		},
		[]string{"reason"}, // "invalid", "closed", "overflow"
	)

	// Profile Store Metrics
	ProfileLoadsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wayfinder_profile_loads_total",
			Help: "Total number of profile loads",
		},
		[]string{"source"}, // "store", "default", "error"
	)

	ProfileSaveConflicts = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "wayfinder_profile_save_conflicts_total",
			Help: "Total number of optimistic concurrency conflicts on profile save",
		},
	)

	// Feedback Metrics
	FeedbackEventsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wayfinder_feedback_events_total",
			Help: "Total number of feedback events processed",
		},
		[]string{"rating"}, // "thumbs_up", "thumbs_down"
	)

	FeedbackRejectedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "wayfinder_feedback_rejected_total",
			Help: "Total number of feedback events rejected by validation",
		},
	)

	FeedbackRetriesExhausted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "wayfinder_feedback_retries_exhausted_total",
			Help: "Total number of feedback applications abandoned after conflict retries",
		},
	)

	// Similarity Provider Metrics
	SimilarityRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wayfinder_similarity_requests_total",
			Help: "Total number of similarity provider calls",
		},
		[]string{"outcome"}, // "ok", "error", "open"
	)
)

// RecordRank records one completed ranking request.
func RecordRank(duration time.Duration, batchSize int) {
	RankRequestsTotal.Inc()
	RankDuration.Observe(duration.Seconds())
	RankBatchSize.Observe(float64(batchSize))
}

// RecordDiscard records a candidate exclusion by reason.
func RecordDiscard(reason string) {
	CandidatesDiscarded.WithLabelValues(reason).Inc()
}

// RecordProfileLoad records a profile load by source.
func RecordProfileLoad(source string) {
	ProfileLoadsTotal.WithLabelValues(source).Inc()
}

// RecordSaveConflict records an optimistic concurrency conflict.
func RecordSaveConflict() {
	ProfileSaveConflicts.Inc()
}

// RecordFeedback records one processed feedback event by rating polarity.
func RecordFeedback(rating string) {
	FeedbackEventsTotal.WithLabelValues(rating).Inc()
}

// RecordFeedbackRejected records a feedback event rejected by validation.
func RecordFeedbackRejected() {
	FeedbackRejectedTotal.Inc()
}

// RecordFeedbackRetriesExhausted records an abandoned feedback application.
func RecordFeedbackRetriesExhausted() {
	FeedbackRetriesExhausted.Inc()
}

// RecordSimilarity records a similarity provider call outcome.
func RecordSimilarity(outcome string) {
	SimilarityRequestsTotal.WithLabelValues(outcome).Inc()
}
