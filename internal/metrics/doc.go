// Wayfinder - Activity Recommendation and Preference Learning Core
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/wayfinder

// Package metrics provides Prometheus instrumentation for the
// recommendation core.
//
// All collectors are registered with the default registry via promauto at
// package init. Embedding applications expose them by mounting
// promhttp.Handler() wherever their metrics endpoint lives; the core
// itself owns no HTTP surface.
//
// Metric names are prefixed "wayfinder_" to keep them distinguishable in
// a shared registry.
package metrics
