// Package metrics defines the Prometheus metrics exported by the gallery
// server: HTTP request counters and latencies, album repository scan
// statistics, EXIF read outcomes, and thumbnail cache hit/miss/staleness
// counters.
//
// Metrics are registered via promauto at package initialization and served
// on the /metrics endpoint. InitializeMetrics pre-populates known label
// combinations so dashboards see zero-valued series before first use.
package metrics
